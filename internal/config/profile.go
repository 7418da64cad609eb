package config

import (
	"errors"
	"fmt"
	"io"
	"os"

	"insertion-route-service/internal/domain"

	"gopkg.in/yaml.v3"
)

// Profile is a YAML run description for the solve command.
//
//	instance: data/instances/C101.txt
//	output_dir: out/c101
//	fleet:
//	  vehicle_capacity: 50
//	  vehicle_limit: 25
//	instance_fleet: false
//	show_diagnostics: true
//	workers: 1
type Profile struct {
	Instance        string             `yaml:"instance"`
	OutputDir       string             `yaml:"output_dir"`
	Fleet           domain.FleetConfig `yaml:"fleet"`
	InstanceFleet   bool               `yaml:"instance_fleet"`
	ShowDiagnostics bool               `yaml:"show_diagnostics"`
	Workers         int                `yaml:"workers"`
}

func DefaultProfile() Profile {
	return Profile{
		OutputDir:       ".",
		Fleet:           domain.FleetConfig{VehicleCapacity: 50, VehicleLimit: 25},
		ShowDiagnostics: true,
		Workers:         1,
	}
}

// LoadProfile reads a YAML profile on top of DefaultProfile, so keys the
// file leaves out keep their defaults. Unknown keys are rejected.
func LoadProfile(path string) (Profile, error) {
	f, err := os.Open(path)
	if err != nil {
		return Profile{}, fmt.Errorf("load profile: %w", err)
	}
	defer f.Close()

	p := DefaultProfile()
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&p); err != nil && !errors.Is(err, io.EOF) {
		return Profile{}, fmt.Errorf("load profile %s: %w", path, err)
	}

	if err := p.Validate(); err != nil {
		return Profile{}, fmt.Errorf("load profile %s: %w", path, err)
	}
	return p, nil
}

func (p Profile) Validate() error {
	if p.Workers < 1 {
		return fmt.Errorf("workers must be at least 1, got %d", p.Workers)
	}
	if p.InstanceFleet {
		return nil
	}
	return p.Fleet.Validate()
}
