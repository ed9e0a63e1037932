package vacation

import (
	"context"
	"sort"

	"github.com/kozaktomas/photo-memories/internal/holiday"
	"github.com/kozaktomas/photo-memories/internal/memories"
	"github.com/kozaktomas/photo-memories/internal/monitor"
	"github.com/kozaktomas/photo-memories/internal/timezone"
)

// jobName identifies the strategy in monitoring events.
const jobName = "memories.vacation"

// Lifecycle statuses emitted over one Cluster invocation, in order.
const (
	EventStart          = "start"
	EventFiltered       = "filtered"
	EventHomeDetermined = "home_determined"
	EventDaysAggregated = "days_aggregated"
	EventCompleted      = "completed"
)

// ClusterStrategy is the vacation/trip detection entry point. It implements
// memories.Strategy.
type ClusterStrategy struct {
	locator   HomeLocator
	builder   DaySummaryBuilder
	assembler SegmentAssembler
	emitter   monitor.Emitter
}

// Deps are the collaborators the strategy needs. Catalog and Emitter may be
// nil; Resolver must not.
type Deps struct {
	Resolver       timezone.Resolver
	Catalog        memories.PlaceCatalog
	Holidays       holiday.Resolver
	Emitter        monitor.Emitter
	ConfiguredHome *memories.Home
	Lang           string
}

// New wires a strategy from options and collaborators.
func New(opts Options, deps Deps) *ClusterStrategy {
	emitter := deps.Emitter
	if emitter == nil {
		emitter = noopEmitter{}
	}
	holidays := deps.Holidays
	if holidays == nil {
		holidays = holiday.None{}
	}

	return &ClusterStrategy{
		locator: HomeLocator{
			Configured: deps.ConfiguredHome,
			Resolver:   deps.Resolver,
			Catalog:    deps.Catalog,
			Opts:       opts.Home,
		},
		builder: DaySummaryBuilder{
			Resolver:   deps.Resolver,
			Catalog:    deps.Catalog,
			Classifier: PoiClassifier{},
			Opts:       opts.Day,
		},
		assembler: SegmentAssembler{
			Detector: RunDetector{
				Extender:       TransportDayExtender{TransitSpeedKmh: opts.Day.TransitSpeedKmh},
				Opts:           opts.Run,
				MinItemsPerDay: opts.Day.MinItemsPerDay,
			},
			Calculator: ScoreCalculator{
				Holidays:   holidays,
				Catalog:    deps.Catalog,
				Opts:       opts.Score,
				Thresholds: opts.Thresholds,
				Lang:       deps.Lang,
			},
		},
		emitter: emitter,
	}
}

// Name implements memories.Strategy.
func (s *ClusterStrategy) Name() string { return "vacation" }

// Cluster implements memories.Strategy. The pipeline is synchronous and
// pure apart from emitter calls: the same corpus always yields the same
// drafts, regardless of input order.
func (s *ClusterStrategy) Cluster(ctx context.Context, photos []memories.Photo) ([]memories.ClusterDraft, error) {
	_ = ctx // no I/O inside the core; kept for the Strategy contract

	s.emitter.Emit(jobName, EventStart, map[string]any{"photos": len(photos)})

	filtered := filterAndSort(photos)
	s.emitter.Emit(jobName, EventFiltered, map[string]any{
		"kept":    len(filtered),
		"dropped": len(photos) - len(filtered),
	})

	home := s.locator.DetermineHome(filtered)
	if home == nil {
		s.emitter.Emit(jobName, monitor.StatusWarning, map[string]any{
			"reason": "no location-bearing photos, vacation detection disabled",
		})
		return nil, nil
	}
	if home.Point.IsZero() {
		// A (0,0) home is an uninitialized configuration, not geography.
		s.emitter.Emit(jobName, monitor.StatusWarning, map[string]any{
			"reason": "degenerate home location (0,0)",
		})
		return nil, nil
	}
	s.emitter.Emit(jobName, EventHomeDetermined, map[string]any{
		"lat":       home.Point.Lat,
		"lon":       home.Point.Lon,
		"radius_km": home.RadiusKm,
	})

	days, err := s.builder.Build(filtered, *home)
	if err != nil {
		s.emitter.Emit(jobName, monitor.StatusFailed, map[string]any{"error": err.Error()})
		return nil, err
	}
	s.emitter.Emit(jobName, EventDaysAggregated, map[string]any{"days": len(days)})

	drafts := s.assembler.Assemble(days, *home)
	s.emitter.Emit(jobName, EventCompleted, map[string]any{"clusters": len(drafts)})
	return drafts, nil
}

// filterAndSort drops photos without a timestamp, deduplicates by id and
// sorts by (timestamp, checksum, id). Every later stage relies on this
// order; callers must never depend on insertion order instead.
func filterAndSort(photos []memories.Photo) []memories.Photo {
	out := make([]memories.Photo, 0, len(photos))
	seen := make(map[string]bool, len(photos))
	for _, p := range photos {
		if p.TakenAt.IsZero() || seen[p.ID] {
			continue
		}
		seen[p.ID] = true
		out = append(out, p)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].TakenAt.Equal(out[j].TakenAt) {
			return out[i].TakenAt.Before(out[j].TakenAt)
		}
		if out[i].Checksum != out[j].Checksum {
			return out[i].Checksum < out[j].Checksum
		}
		return out[i].ID < out[j].ID
	})
	return out
}

type noopEmitter struct{}

func (noopEmitter) Emit(string, string, map[string]any) {}

var _ memories.Strategy = (*ClusterStrategy)(nil)
