// Package config loads and watches renderer profiles.
//
// A profile carries the font, backend, and theme settings the owning
// terminal widget feeds into the render subsystem. Profiles are TOML
// files; a missing file yields the defaults without error, while a
// malformed file or invalid values fail immediately.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/dshills/termpaint/internal/render/backend"
	"github.com/dshills/termpaint/internal/render/theme"
)

// ErrInvalidProfile wraps profile validation failures.
var ErrInvalidProfile = errors.New("config: invalid profile")

// Profile is the renderer configuration.
type Profile struct {
	// FontPath is a TTF file path; empty selects the builtin face.
	FontPath string `toml:"font_path"`

	// FontSize is the font point size.
	FontSize float64 `toml:"font_size"`

	// DevicePixelRatio scales css pixels to device pixels.
	DevicePixelRatio float64 `toml:"device_pixel_ratio"`

	// Backend selects the variant: "2d" or "gpu".
	Backend string `toml:"backend"`

	// Theme holds partial color-slot overrides, resolved totally by
	// the theme package.
	Theme map[string]any `toml:"theme"`

	// ScrollbarFadeMillis is how long the scrollbar stays visible
	// after scrolling stops.
	ScrollbarFadeMillis int `toml:"scrollbar_fade_millis"`
}

// Default returns the built-in profile.
func Default() Profile {
	return Profile{
		FontSize:            12,
		DevicePixelRatio:    1,
		Backend:             "2d",
		ScrollbarFadeMillis: 800,
	}
}

// Load reads a profile from path. A missing file is not an error and
// returns the defaults; anything else malformed is.
func Load(path string) (Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return Profile{}, fmt.Errorf("reading profile %s: %w", path, err)
	}

	p := Default()
	if err := toml.Unmarshal(data, &p); err != nil {
		return Profile{}, fmt.Errorf("parsing profile %s: %w", path, err)
	}
	if err := p.Validate(); err != nil {
		return Profile{}, err
	}
	return p, nil
}

// Validate rejects out-of-range settings at load time rather than
// letting them surface later as drawing glitches.
func (p Profile) Validate() error {
	if p.FontSize <= 0 {
		return fmt.Errorf("%w: font_size %g must be positive", ErrInvalidProfile, p.FontSize)
	}
	if p.DevicePixelRatio <= 0 {
		return fmt.Errorf("%w: device_pixel_ratio %g must be positive", ErrInvalidProfile, p.DevicePixelRatio)
	}
	if _, err := p.BackendKind(); err != nil {
		return err
	}
	if p.ScrollbarFadeMillis < 0 {
		return fmt.Errorf("%w: scrollbar_fade_millis %d must not be negative", ErrInvalidProfile, p.ScrollbarFadeMillis)
	}
	return nil
}

// BackendKind maps the profile's backend name to a construction kind.
func (p Profile) BackendKind() (backend.Kind, error) {
	switch p.Backend {
	case "", "2d":
		return backend.Kind2D, nil
	case "gpu":
		return backend.KindGPU, nil
	default:
		return 0, fmt.Errorf("%w: unknown backend %q", ErrInvalidProfile, p.Backend)
	}
}

// ThemeOverrides converts the profile's theme table to resolver input.
func (p Profile) ThemeOverrides() theme.Overrides {
	return theme.FromMap(p.Theme)
}

// BackendOptions builds backend construction options from the profile.
func (p Profile) BackendOptions() (backend.Options, error) {
	kind, err := p.BackendKind()
	if err != nil {
		return backend.Options{}, err
	}
	return backend.Options{
		Kind:             kind,
		FontPath:         p.FontPath,
		FontSize:         p.FontSize,
		DevicePixelRatio: p.DevicePixelRatio,
	}, nil
}
