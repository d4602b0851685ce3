package cli

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// params holds the analysis parameters loadable from a TOML file. Flags set
// on the command line take precedence over file values.
type params struct {
	Scale          float64 `toml:"mpp"`
	Alpha          float64 `toml:"alpha"`
	DilationFactor float64 `toml:"dilation_factor"`
	Width          int     `toml:"width"`
	Height         int     `toml:"height"`
}

// loadParams reads a TOML parameter file. Unknown keys are rejected so typos
// fail loudly instead of being silently ignored.
func loadParams(path string) (params, error) {
	var p params
	meta, err := toml.DecodeFile(path, &p)
	if err != nil {
		return params{}, fmt.Errorf("cli: parameter file %s: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return params{}, fmt.Errorf("cli: parameter file %s: unknown key %q", path, undecoded[0].String())
	}
	return p, nil
}

// merge overlays the non-zero command-line values onto the file values.
func (p params) merge(flags params) params {
	if flags.Scale != 0 {
		p.Scale = flags.Scale
	}
	if flags.Alpha != 0 {
		p.Alpha = flags.Alpha
	}
	if flags.DilationFactor != 0 {
		p.DilationFactor = flags.DilationFactor
	}
	if flags.Width != 0 {
		p.Width = flags.Width
	}
	if flags.Height != 0 {
		p.Height = flags.Height
	}
	return p
}
