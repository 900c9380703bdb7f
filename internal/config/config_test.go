package config

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/dshills/termpaint/internal/render/backend"
	"github.com/dshills/termpaint/internal/render/theme"
)

func writeProfile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "termpaint.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing profile: %v", err)
	}
	return path
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	p, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatalf("Load() error = %v, want nil for missing file", err)
	}
	if !reflect.DeepEqual(p, Default()) {
		t.Errorf("Load() = %+v, want defaults %+v", p, Default())
	}
}

func TestLoadProfile(t *testing.T) {
	path := writeProfile(t, `
font_path = "/usr/share/fonts/mono.ttf"
font_size = 14.5
device_pixel_ratio = 2.0
backend = "gpu"
scrollbar_fade_millis = 500

[theme]
foreground = "#abcdef"
selectionOpacity = 0.25
`)
	p, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if p.FontPath != "/usr/share/fonts/mono.ttf" {
		t.Errorf("FontPath = %q", p.FontPath)
	}
	if p.FontSize != 14.5 {
		t.Errorf("FontSize = %g, want 14.5", p.FontSize)
	}
	if p.DevicePixelRatio != 2.0 {
		t.Errorf("DevicePixelRatio = %g, want 2", p.DevicePixelRatio)
	}
	kind, err := p.BackendKind()
	if err != nil {
		t.Fatalf("BackendKind() error = %v", err)
	}
	if kind != backend.KindGPU {
		t.Errorf("BackendKind() = %v, want KindGPU", kind)
	}
	if p.ScrollbarFadeMillis != 500 {
		t.Errorf("ScrollbarFadeMillis = %d, want 500", p.ScrollbarFadeMillis)
	}

	ov := p.ThemeOverrides()
	if ov.Foreground != "#abcdef" {
		t.Errorf("Foreground override = %q, want #abcdef", ov.Foreground)
	}
	if ov.SelectionOpacity == nil || *ov.SelectionOpacity != 0.25 {
		t.Errorf("SelectionOpacity override = %v, want 0.25", ov.SelectionOpacity)
	}

	th := theme.Resolve(ov)
	if th.Foreground.R != 0xab || th.Foreground.G != 0xcd || th.Foreground.B != 0xef {
		t.Errorf("resolved Foreground = %v, want #abcdef", th.Foreground)
	}
	if th.SelectionOpacity != 0.25 {
		t.Errorf("resolved SelectionOpacity = %g, want 0.25", th.SelectionOpacity)
	}
}

func TestLoadPartialProfileKeepsDefaults(t *testing.T) {
	path := writeProfile(t, `font_size = 16.0`)
	p, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if p.FontSize != 16 {
		t.Errorf("FontSize = %g, want 16", p.FontSize)
	}
	if p.DevicePixelRatio != 1 {
		t.Errorf("DevicePixelRatio = %g, want default 1", p.DevicePixelRatio)
	}
	if p.Backend != "2d" {
		t.Errorf("Backend = %q, want default 2d", p.Backend)
	}
}

func TestLoadMalformedTOML(t *testing.T) {
	path := writeProfile(t, `font_size = [broken`)
	if _, err := Load(path); err == nil {
		t.Error("Load() succeeded on malformed TOML")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Profile)
		wantErr bool
	}{
		{"defaults valid", func(p *Profile) {}, false},
		{"zero font size", func(p *Profile) { p.FontSize = 0 }, true},
		{"negative font size", func(p *Profile) { p.FontSize = -3 }, true},
		{"zero dpr", func(p *Profile) { p.DevicePixelRatio = 0 }, true},
		{"unknown backend", func(p *Profile) { p.Backend = "vulkan" }, true},
		{"empty backend", func(p *Profile) { p.Backend = "" }, false},
		{"negative fade", func(p *Profile) { p.ScrollbarFadeMillis = -1 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Default()
			tt.mutate(&p)
			err := p.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidProfile) {
				t.Errorf("Validate() error = %v, want ErrInvalidProfile", err)
			}
		})
	}
}

func TestLoadInvalidValues(t *testing.T) {
	path := writeProfile(t, `font_size = -2.0`)
	_, err := Load(path)
	if !errors.Is(err, ErrInvalidProfile) {
		t.Errorf("Load() error = %v, want ErrInvalidProfile", err)
	}
}

func TestBackendOptions(t *testing.T) {
	p := Default()
	p.FontPath = "/tmp/f.ttf"
	p.FontSize = 13
	p.DevicePixelRatio = 2

	opts, err := p.BackendOptions()
	if err != nil {
		t.Fatalf("BackendOptions() error = %v", err)
	}
	if opts.Kind != backend.Kind2D {
		t.Errorf("Kind = %v, want Kind2D", opts.Kind)
	}
	if opts.FontPath != "/tmp/f.ttf" || opts.FontSize != 13 || opts.DevicePixelRatio != 2 {
		t.Errorf("options = %+v", opts)
	}

	p.Backend = "bogus"
	if _, err := p.BackendOptions(); err == nil {
		t.Error("BackendOptions() succeeded with unknown backend")
	}
}
