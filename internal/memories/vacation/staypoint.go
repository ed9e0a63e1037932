package vacation

import (
	"time"

	"github.com/kozaktomas/photo-memories/internal/geo"
)

// Staypoints describes the dwell structure of one day.
type Staypoints struct {
	Clusters     []geo.Cluster
	NoiseCount   int
	DwellSeconds int64 // total time span covered inside dwell clusters
}

// StaypointDetector groups a day's GPS samples into dwell clusters.
// Samples that never reach a dense neighbourhood stay noise and are kept
// out of every distance aggregate downstream.
type StaypointDetector struct {
	RadiusKm   float64
	MinSamples int
}

// Detect clusters the given samples. points and takenAt are parallel slices
// in chronological order.
func (d StaypointDetector) Detect(points []geo.Point, takenAt []time.Time) Staypoints {
	if len(points) == 0 {
		return Staypoints{}
	}

	res := geo.DBSCAN(points, d.RadiusKm, d.MinSamples)

	var dwell int64
	for _, cluster := range res.Clusters {
		first := takenAt[cluster.Indices[0]]
		last := takenAt[cluster.Indices[0]]
		for _, idx := range cluster.Indices[1:] {
			ts := takenAt[idx]
			if ts.Before(first) {
				first = ts
			}
			if ts.After(last) {
				last = ts
			}
		}
		dwell += int64(last.Sub(first) / time.Second)
	}

	return Staypoints{
		Clusters:     res.Clusters,
		NoiseCount:   len(res.Noise),
		DwellSeconds: dwell,
	}
}

// clusteredIndexSet returns the indices that belong to some dwell cluster.
func (s Staypoints) clusteredIndexSet() map[int]bool {
	out := make(map[int]bool)
	for _, c := range s.Clusters {
		for _, idx := range c.Indices {
			out[idx] = true
		}
	}
	return out
}
