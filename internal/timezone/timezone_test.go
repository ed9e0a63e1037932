package timezone

import (
	"testing"
	"time"

	"github.com/kozaktomas/photo-memories/internal/geo"
)

func TestFixedResolverDST(t *testing.T) {
	r, err := NewFixed("Europe/Prague")
	if err != nil {
		t.Fatalf("NewFixed: %v", err)
	}

	tests := []struct {
		name      string
		ts        time.Time
		offsetMin int
	}{
		{
			name:      "winter CET",
			ts:        time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC),
			offsetMin: 60,
		},
		{
			name:      "summer CEST",
			ts:        time.Date(2024, 7, 15, 12, 0, 0, 0, time.UTC),
			offsetMin: 120,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			zone, err := r.Resolve(tt.ts, geo.Point{})
			if err != nil {
				t.Fatalf("Resolve: %v", err)
			}
			if zone.OffsetMin != tt.offsetMin {
				t.Errorf("offset = %d min, want %d", zone.OffsetMin, tt.offsetMin)
			}
			if zone.Name != "Europe/Prague" {
				t.Errorf("name = %q, want Europe/Prague", zone.Name)
			}
		})
	}
}

func TestNauticalZone(t *testing.T) {
	tests := []struct {
		name      string
		point     geo.Point
		offsetMin int
	}{
		{name: "greenwich", point: geo.Point{Lat: 51.4779, Lon: 0}, offsetMin: 0},
		{name: "mid atlantic", point: geo.Point{Lat: 30, Lon: -30}, offsetMin: -120},
		{name: "pacific east of japan", point: geo.Point{Lat: 35, Lon: 150}, offsetMin: 600},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			zone := nauticalZone(tt.point)
			if zone.OffsetMin != tt.offsetMin {
				t.Errorf("offset = %d min, want %d", zone.OffsetMin, tt.offsetMin)
			}
			if zone.Location == nil {
				t.Error("expected a usable fixed location")
			}
		})
	}
}
