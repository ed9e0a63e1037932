package timezone

import (
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/ringsaturn/tzf"

	"github.com/kozaktomas/photo-memories/internal/geo"
)

// Zone is the resolved local timezone for a timestamp+location pair.
type Zone struct {
	Name      string // IANA identifier, or a synthesized "UTC±HH:MM" fallback
	OffsetMin int    // UTC offset in minutes at the queried instant
	Location  *time.Location
}

// Resolver maps a capture timestamp and GPS position to the local timezone
// that was in effect there at that instant (DST included).
type Resolver interface {
	Resolve(ts time.Time, p geo.Point) (Zone, error)
}

// FinderResolver resolves timezones through a tzf polygon lookup with the
// tz database supplying historical offsets. Positions outside any polygon
// (open sea, partial data) fall back to a longitude-derived fixed zone so a
// photo never ends up without a local calendar day.
type FinderResolver struct {
	finder tzf.F

	mu    sync.Mutex
	cache map[string]*time.Location
}

// NewFinderResolver builds a resolver backed by the embedded tzf dataset.
func NewFinderResolver() (*FinderResolver, error) {
	finder, err := tzf.NewDefaultFinder()
	if err != nil {
		return nil, fmt.Errorf("init timezone finder: %w", err)
	}
	return &FinderResolver{
		finder: finder,
		cache:  make(map[string]*time.Location),
	}, nil
}

// Resolve implements Resolver.
func (r *FinderResolver) Resolve(ts time.Time, p geo.Point) (Zone, error) {
	name := r.finder.GetTimezoneName(p.Lon, p.Lat)
	if name == "" {
		return nauticalZone(p), nil
	}

	loc, err := r.location(name)
	if err != nil {
		// The finder knows the polygon but the local tz database does not
		// carry the zone. Degrade to the nautical fallback.
		return nauticalZone(p), nil
	}

	_, offsetSec := ts.In(loc).Zone()
	return Zone{Name: name, OffsetMin: offsetSec / 60, Location: loc}, nil
}

func (r *FinderResolver) location(name string) (*time.Location, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if loc, ok := r.cache[name]; ok {
		return loc, nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("load location %q: %w", name, err)
	}
	r.cache[name] = loc
	return loc, nil
}

// nauticalZone derives a fixed zone from longitude alone, one hour per 15°.
func nauticalZone(p geo.Point) Zone {
	hours := int(math.Round(p.Lon / 15))
	offsetMin := hours * 60
	name := fmt.Sprintf("UTC%+03d:%02d", hours, 0)
	return Zone{
		Name:      name,
		OffsetMin: offsetMin,
		Location:  time.FixedZone(name, offsetMin*60),
	}
}

// Fixed is a Resolver that always answers with one static zone. It backs
// corpora without usable GPS and keeps tests hermetic.
type Fixed struct {
	Zone Zone
}

// NewFixed builds a fixed resolver for the given IANA zone name.
func NewFixed(name string) (*Fixed, error) {
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("load location %q: %w", name, err)
	}
	now := time.Now().In(loc)
	_, offsetSec := now.Zone()
	return &Fixed{Zone: Zone{Name: name, OffsetMin: offsetSec / 60, Location: loc}}, nil
}

// Resolve implements Resolver.
func (f *Fixed) Resolve(ts time.Time, _ geo.Point) (Zone, error) {
	z := f.Zone
	if z.Location != nil {
		_, offsetSec := ts.In(z.Location).Zone()
		z.OffsetMin = offsetSec / 60
	}
	return z, nil
}
