package time

import (
	"fmt"
	"time"

	"github.com/amirhossein-jamali/finance-dashboard/internal/domain/port/core"
)

// RealTimeProvider implements the TimeProvider interface with the wall clock,
// reporting times in a fixed location
type RealTimeProvider struct {
	loc *time.Location
}

// NewRealTimeProvider creates a time provider in the local time zone
func NewRealTimeProvider() core.TimeProvider {
	return &RealTimeProvider{loc: time.Local}
}

// NewRealTimeProviderIn creates a time provider whose Now is reported in loc
func NewRealTimeProviderIn(loc *time.Location) core.TimeProvider {
	if loc == nil {
		loc = time.Local
	}
	return &RealTimeProvider{loc: loc}
}

// NewRealTimeProviderForZone loads an IANA zone name such as "America/Sao_Paulo".
// An empty name selects the local zone.
func NewRealTimeProviderForZone(name string) (core.TimeProvider, error) {
	if name == "" {
		return NewRealTimeProvider(), nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", name, err)
	}
	return NewRealTimeProviderIn(loc), nil
}

// Now returns the current time
func (p *RealTimeProvider) Now() time.Time {
	return time.Now().In(p.loc)
}

// Since returns the time elapsed since t
func (p *RealTimeProvider) Since(t time.Time) core.Duration {
	return core.Duration(time.Since(t))
}

// Location returns the zone the ledger calendar runs in
func (p *RealTimeProvider) Location() *time.Location {
	return p.loc
}
