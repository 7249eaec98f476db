package location

import (
	"strings"
)

// Coordinates is a latitude/longitude pair in decimal degrees
type Coordinates struct {
	Lat float64 `mapstructure:"lat" json:"lat"`
	Lon float64 `mapstructure:"lon" json:"lon"`
}

// Landmark maps a keyword found in free-text locations to a point on the map
type Landmark struct {
	Keyword string      `mapstructure:"keyword" json:"keyword"`
	Coords  Coordinates `mapstructure:"coords" json:"coords"`
}

// DefaultLandmarks is the campus lookup table. Order matters: the first keyword contained in the text wins.
var DefaultLandmarks = []Landmark{
	{Keyword: "leavey", Coords: Coordinates{Lat: 34.0217, Lon: -118.2828}},
	{Keyword: "doheny", Coords: Coordinates{Lat: 34.0202, Lon: -118.2837}},
	{Keyword: "village", Coords: Coordinates{Lat: 34.0250, Lon: -118.2851}},
	{Keyword: "tutor", Coords: Coordinates{Lat: 34.0200, Lon: -118.2850}},
}

// DefaultFallback is where sessions at unknown places are pinned
var DefaultFallback = Coordinates{Lat: 34.0205, Lon: -118.2856}

// Config for the resolver
type Config struct {
	// Landmarks overrides DefaultLandmarks when non-empty
	Landmarks []Landmark

	// Fallback overrides DefaultFallback when non-nil
	Fallback *Coordinates
}

// Resolver turns a location string into approximate coordinates
type Resolver struct {
	landmarks []Landmark
	fallback  Coordinates
}

// New creates a resolver. A nil config uses the campus defaults.
func New(cfg *Config) *Resolver {
	r := &Resolver{
		landmarks: DefaultLandmarks,
		fallback:  DefaultFallback,
	}
	if cfg == nil {
		return r
	}

	if len(cfg.Landmarks) > 0 {
		landmarks := make([]Landmark, 0, len(cfg.Landmarks))
		for _, l := range cfg.Landmarks {
			kw := strings.ToLower(strings.TrimSpace(l.Keyword))
			if kw == "" {
				continue
			}
			landmarks = append(landmarks, Landmark{Keyword: kw, Coords: l.Coords})
		}
		r.landmarks = landmarks
	}
	if cfg.Fallback != nil {
		r.fallback = *cfg.Fallback
	}

	return r
}

// Resolve returns the coordinates of the first landmark whose keyword appears in text,
// or the fallback. It never fails.
func (r *Resolver) Resolve(text string) (float64, float64) {
	c := r.Lookup(text)
	return c.Lat, c.Lon
}

// Lookup is Resolve returning the pair as Coordinates
func (r *Resolver) Lookup(text string) Coordinates {
	lowered := strings.ToLower(text)
	for _, l := range r.landmarks {
		if strings.Contains(lowered, l.Keyword) {
			return l.Coords
		}
	}
	return r.fallback
}

// Landmarks returns a copy of the table in match order
func (r *Resolver) Landmarks() []Landmark {
	out := make([]Landmark, len(r.landmarks))
	copy(out, r.landmarks)
	return out
}
