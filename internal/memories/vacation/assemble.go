package vacation

import (
	"github.com/kozaktomas/photo-memories/internal/memories"
)

// SegmentAssembler orchestrates run detection and scoring over final day
// summaries.
type SegmentAssembler struct {
	Detector   RunDetector
	Calculator ScoreCalculator
}

// Assemble detects runs, materializes synthetic summaries for bridged gap
// days and scores every run. Runs below threshold contribute nothing.
func (a SegmentAssembler) Assemble(days map[string]*DaySummary, home memories.Home) []memories.ClusterDraft {
	runs := a.Detector.Detect(days)
	if len(runs) == 0 {
		return nil
	}

	// Work on a copy so repeated invocations see the builder's original
	// output; synthetic gap days exist only for scoring.
	enriched := make(map[string]*DaySummary, len(days))
	for k, v := range days {
		enriched[k] = v
	}
	for _, run := range runs {
		for i, key := range run {
			if enriched[key] != nil {
				continue
			}
			// A bridged day inherits the zone of the nearest preceding day
			// with data, so its local calendar stays consistent.
			zone, offset := neighbourZone(run, i, enriched)
			enriched[key] = newSyntheticDay(key, zone, offset)
		}
	}

	var drafts []memories.ClusterDraft
	for _, run := range runs {
		if draft := a.Calculator.BuildDraft(run, enriched, home); draft != nil {
			drafts = append(drafts, *draft)
		}
	}
	return drafts
}

func neighbourZone(run Run, idx int, days map[string]*DaySummary) (string, int) {
	for i := idx - 1; i >= 0; i-- {
		if day := days[run[i]]; day != nil {
			return day.ZoneName, day.OffsetMin
		}
	}
	for i := idx + 1; i < len(run); i++ {
		if day := days[run[i]]; day != nil {
			return day.ZoneName, day.OffsetMin
		}
	}
	return "UTC", 0
}
