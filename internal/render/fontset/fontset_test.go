package fontset

import (
	"testing"

	"golang.org/x/image/font/basicfont"
)

func TestBuiltinMetrics(t *testing.T) {
	fam := Builtin()
	m := fam.Metrics()

	if m.Width != 7 {
		t.Errorf("Width = %d, want 7 for the builtin face", m.Width)
	}
	if m.Height < 10 {
		t.Errorf("Height = %d, want at least 10", m.Height)
	}
	if m.Baseline <= 0 || m.Baseline > m.Height {
		t.Errorf("Baseline = %d, want within (0, %d]", m.Baseline, m.Height)
	}
}

func TestFaceVariantsAlwaysPresent(t *testing.T) {
	fam := Builtin()

	for _, bold := range []bool{false, true} {
		for _, italic := range []bool{false, true} {
			if fam.Face(bold, italic) == nil {
				t.Errorf("Face(bold=%v, italic=%v) is nil", bold, italic)
			}
		}
	}
}

func TestMeasureMatchesFaceMetrics(t *testing.T) {
	face := basicfont.Face7x13
	m := Measure(face)

	fm := face.Metrics()
	wantHeight := (fm.Ascent + fm.Descent).Ceil()
	if m.Height != wantHeight {
		t.Errorf("Height = %d, want %d", m.Height, wantHeight)
	}
	if m.Baseline != fm.Ascent.Ceil() {
		t.Errorf("Baseline = %d, want %d", m.Baseline, fm.Ascent.Ceil())
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load("/nonexistent/font.ttf", 12, 1); err == nil {
		t.Error("Load should fail for a missing file")
	}
}

func TestCloseIsIdempotent(t *testing.T) {
	fam := Builtin()
	if err := fam.Close(); err != nil {
		t.Errorf("first Close: %v", err)
	}
	if err := fam.Close(); err != nil {
		t.Errorf("second Close: %v", err)
	}
}
