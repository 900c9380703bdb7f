package sched

// StepSource is a FrameSource whose refresh boundaries are advanced
// explicitly by the owner's frame loop (or by a test). Request stores
// the fire function; Step invokes it, modelling one display refresh.
type StepSource struct {
	fire   func()
	nextID int
}

// NewStepSource creates an owner-stepped frame source.
func NewStepSource() *StepSource {
	return &StepSource{}
}

// Request arms a fire for the next Step. Only one request can be armed
// at a time, matching the scheduler's contract.
func (s *StepSource) Request(fire func()) int {
	s.nextID++
	s.fire = fire
	return s.nextID
}

// CancelRequest disarms the pending fire if the id matches.
func (s *StepSource) CancelRequest(id int) {
	if id == s.nextID {
		s.fire = nil
	}
}

// Armed returns true if a fire is waiting for the next Step.
func (s *StepSource) Armed() bool {
	return s.fire != nil
}

// Step runs one display-refresh boundary. Returns true if a fire ran.
func (s *StepSource) Step() bool {
	if s.fire == nil {
		return false
	}
	fire := s.fire
	s.fire = nil
	fire()
	return true
}
