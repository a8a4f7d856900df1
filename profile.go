package splat

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// Profile holds the tunable rendering constants that were historically
// baked into the shader source. A profile is supplied at renderer
// construction, so hosts can switch rendering profiles without
// recompiling anything.
type Profile struct {
	// SizeGain scales the distance-derived point size, in screen pixels
	// per world unit of average splat scale at unit distance.
	SizeGain float32 `toml:"size_gain"`

	// MinDist floors the camera distance used by the size model,
	// guarding the division when camera and splat coincide.
	MinDist float32 `toml:"min_dist"`

	// MinSize and MaxSize clamp the derived point size, in pixels.
	// MaxSize is bounded by the rasterizer's maximum point size.
	MinSize float32 `toml:"min_size"`
	MaxSize float32 `toml:"max_size"`

	// Sigma is the standard deviation of the isotropic screen-space
	// Gaussian falloff, in point-local units where the point radius is 1.
	Sigma float32 `toml:"sigma"`

	// Epsilon is the opacity threshold below which a fragment is
	// discarded rather than blended.
	Epsilon float32 `toml:"epsilon"`
}

// DefaultProfile returns the reference constants: a 100x size gain,
// 0.1 distance floor, [1, 100] pixel size clamp, sigma 0.5, and a 1%
// opacity discard threshold.
func DefaultProfile() Profile {
	return Profile{
		SizeGain: 100,
		MinDist:  0.1,
		MinSize:  1,
		MaxSize:  100,
		Sigma:    0.5,
		Epsilon:  0.01,
	}
}

// Validate checks that the profile is internally consistent. Unlike
// splat data, profiles come from configuration files and are checked.
func (p Profile) Validate() error {
	switch {
	case p.SizeGain <= 0:
		return fmt.Errorf("splat: profile size_gain %v must be > 0", p.SizeGain)
	case p.MinDist <= 0:
		return fmt.Errorf("splat: profile min_dist %v must be > 0", p.MinDist)
	case p.MinSize <= 0 || p.MaxSize < p.MinSize:
		return fmt.Errorf("splat: profile size clamp [%v, %v] is invalid", p.MinSize, p.MaxSize)
	case p.Sigma <= 0:
		return fmt.Errorf("splat: profile sigma %v must be > 0", p.Sigma)
	case p.Epsilon < 0 || p.Epsilon >= 1:
		return fmt.Errorf("splat: profile epsilon %v must be in [0, 1)", p.Epsilon)
	}
	return nil
}

// ParseProfile decodes a TOML profile. Fields absent from the document
// keep their default values.
func ParseProfile(data []byte) (Profile, error) {
	p := DefaultProfile()
	if err := toml.Unmarshal(data, &p); err != nil {
		return Profile{}, fmt.Errorf("splat: parse profile: %w", err)
	}
	if err := p.Validate(); err != nil {
		return Profile{}, err
	}
	return p, nil
}

// LoadProfile reads and decodes a TOML profile file.
func LoadProfile(path string) (Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Profile{}, fmt.Errorf("splat: load profile: %w", err)
	}
	return ParseProfile(data)
}
