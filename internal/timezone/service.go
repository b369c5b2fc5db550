package timezone

import (
	"fmt"
	"sync"
	"time"
	_ "time/tzdata" // zone database for minimal images

	"github.com/ringsaturn/tzf"
)

// Service resolves coordinates to the IANA zone observed there
type Service interface {
	GetTimezone(latitude, longitude float64) (string, error)
	Location(latitude, longitude float64) (*time.Location, error)
}

// Finder is the subset of tzf.F used for lookups
type Finder interface {
	GetTimezoneName(lng, lat float64) string
}

type service struct {
	finder Finder
}

var (
	defaultService *service
	defaultErr     error
	defaultOnce    sync.Once
)

// NewService returns the shared tzf-backed service. The finder keeps its
// polygon data in memory, so it is built once per process.
func NewService() (Service, error) {
	defaultOnce.Do(func() {
		finder, err := tzf.NewDefaultFinder()
		if err != nil {
			defaultErr = fmt.Errorf("failed to initialize timezone finder: %w", err)
			return
		}
		defaultService = &service{finder: finder}
	})
	if defaultErr != nil {
		return nil, defaultErr
	}
	return defaultService, nil
}

// NewServiceWithFinder builds a service around a custom finder
func NewServiceWithFinder(finder Finder) Service {
	return &service{finder: finder}
}

// GetTimezone returns names like "America/Los_Angeles"
func (s *service) GetTimezone(latitude, longitude float64) (string, error) {
	name := s.finder.GetTimezoneName(longitude, latitude)
	if name == "" {
		return "", fmt.Errorf("could not determine timezone for coordinates lat=%f, lon=%f", latitude, longitude)
	}
	return name, nil
}

func (s *service) Location(latitude, longitude float64) (*time.Location, error) {
	name, err := s.GetTimezone(latitude, longitude)
	if err != nil {
		return nil, err
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("failed to load timezone %s: %w", name, err)
	}
	return loc, nil
}
