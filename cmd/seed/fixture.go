package main

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

//go:embed fixture.yaml
var defaultFixture []byte

// Fixture is the demo data set.
type Fixture struct {
	Users      []UserFixture      `yaml:"users"`
	Aircraft   []AircraftFixture  `yaml:"aircraft"`
	Flights    []FlightFixture    `yaml:"flights"`
	Passengers []PassengerFixture `yaml:"passengers"`
}

type UserFixture struct {
	Email     string `yaml:"email"`
	FirstName string `yaml:"first_name"`
	LastName  string `yaml:"last_name"`
	Role      string `yaml:"role"`
}

type AircraftFixture struct {
	Key     string `yaml:"key"`
	Model   string `yaml:"model"`
	Rows    int    `yaml:"rows"`
	Columns int    `yaml:"columns"`
}

type FlightFixture struct {
	FlightNumber string        `yaml:"flight_number"`
	Origin       string        `yaml:"origin"`
	Destination  string        `yaml:"destination"`
	Aircraft     string        `yaml:"aircraft"`
	DepartsIn    time.Duration `yaml:"departs_in"`
	Duration     time.Duration `yaml:"duration"`
	BasePrice    float64       `yaml:"base_price"`
}

type PassengerFixture struct {
	Owner          string `yaml:"owner"`
	FirstName      string `yaml:"first_name"`
	LastName       string `yaml:"last_name"`
	DocumentType   string `yaml:"document_type"`
	DocumentNumber string `yaml:"document_number"`
	DateOfBirth    string `yaml:"date_of_birth"`
	Email          string `yaml:"email"`
}

// LoadFixture reads path, or the embedded demo set when path is empty.
func LoadFixture(path string) (*Fixture, error) {
	data := defaultFixture
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read fixture: %w", err)
		}
		data = raw
	}
	return ParseFixture(data)
}

func ParseFixture(data []byte) (*Fixture, error) {
	var f Fixture
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse fixture: %w", err)
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return &f, nil
}

// Validate checks cross references between sections.
func (f *Fixture) Validate() error {
	var errs []error

	admins := 0
	emails := make(map[string]bool, len(f.Users))
	for _, u := range f.Users {
		emails[u.Email] = true
		if u.Role == "ADMIN" {
			admins++
		}
	}
	if admins == 0 {
		errs = append(errs, errors.New("fixture needs at least one ADMIN user"))
	}

	keys := make(map[string]bool, len(f.Aircraft))
	for _, a := range f.Aircraft {
		if a.Key == "" {
			errs = append(errs, fmt.Errorf("aircraft %q has no key", a.Model))
			continue
		}
		keys[a.Key] = true
	}

	for _, fl := range f.Flights {
		if !keys[fl.Aircraft] {
			errs = append(errs, fmt.Errorf("flight %s references unknown aircraft %q", fl.FlightNumber, fl.Aircraft))
		}
		if fl.Duration <= 0 {
			errs = append(errs, fmt.Errorf("flight %s needs a positive duration", fl.FlightNumber))
		}
	}

	for _, p := range f.Passengers {
		if !emails[p.Owner] {
			errs = append(errs, fmt.Errorf("passenger %s references unknown owner %q", p.DocumentNumber, p.Owner))
		}
	}

	return errors.Join(errs...)
}
