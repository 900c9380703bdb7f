// Package core provides shared types for the render subsystem.
//
// It defines the per-frame data model exchanged between the owning
// terminal widget and the drawing backends: cells, row flags, selection
// geometry, hover ranges, resolved themes, cell metrics, and the
// render-input record itself. The package has no drawing logic; it
// exists so the scheduler, theme resolver, and backend variants can
// share types without import cycles.
package core
