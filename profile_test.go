package splat

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultProfile(t *testing.T) {
	p := DefaultProfile()
	if err := p.Validate(); err != nil {
		t.Fatalf("default profile invalid: %v", err)
	}
	if p.SizeGain != 100 || p.MinDist != 0.1 || p.MinSize != 1 || p.MaxSize != 100 {
		t.Errorf("unexpected size model defaults: %+v", p)
	}
	if p.Sigma != 0.5 || p.Epsilon != 0.01 {
		t.Errorf("unexpected falloff defaults: %+v", p)
	}
}

func TestProfile_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Profile)
		wantOK bool
	}{
		{"default", func(*Profile) {}, true},
		{"zero_gain", func(p *Profile) { p.SizeGain = 0 }, false},
		{"zero_min_dist", func(p *Profile) { p.MinDist = 0 }, false},
		{"inverted_clamp", func(p *Profile) { p.MaxSize = p.MinSize - 1 }, false},
		{"zero_sigma", func(p *Profile) { p.Sigma = 0 }, false},
		{"epsilon_one", func(p *Profile) { p.Epsilon = 1 }, false},
		{"epsilon_zero", func(p *Profile) { p.Epsilon = 0 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := DefaultProfile()
			tt.mutate(&p)
			err := p.Validate()
			if tt.wantOK && err != nil {
				t.Errorf("Validate() = %v, want nil", err)
			}
			if !tt.wantOK && err == nil {
				t.Error("Validate() = nil, want error")
			}
		})
	}
}

func TestParseProfile(t *testing.T) {
	p, err := ParseProfile([]byte("size_gain = 50.0\nsigma = 1.0\n"))
	if err != nil {
		t.Fatalf("ParseProfile: %v", err)
	}
	if p.SizeGain != 50 || p.Sigma != 1 {
		t.Errorf("parsed profile = %+v, want overrides applied", p)
	}
	// Unset fields keep defaults.
	if p.MaxSize != 100 || p.Epsilon != 0.01 {
		t.Errorf("parsed profile lost defaults: %+v", p)
	}
}

func TestParseProfile_Errors(t *testing.T) {
	if _, err := ParseProfile([]byte("size_gain = \"loud\"")); err == nil {
		t.Error("ParseProfile accepted malformed TOML")
	}
	if _, err := ParseProfile([]byte("sigma = -1.0")); err == nil {
		t.Error("ParseProfile accepted an invalid profile")
	}
}

func TestLoadProfile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profile.toml")
	if err := os.WriteFile(path, []byte("max_size = 64.0\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	p, err := LoadProfile(path)
	if err != nil {
		t.Fatalf("LoadProfile: %v", err)
	}
	if p.MaxSize != 64 {
		t.Errorf("MaxSize = %v, want 64", p.MaxSize)
	}

	if _, err := LoadProfile(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Error("LoadProfile accepted a missing file")
	} else if !strings.Contains(err.Error(), "load profile") {
		t.Errorf("error %q does not wrap load context", err)
	}
}
