package vacation

import "time"

// Run is one candidate away-period: strictly increasing date keys, gaps only
// where bridging inserted them.
type Run []string

// RunDetector walks day summaries chronologically and cuts them into
// candidate away-runs.
type RunDetector struct {
	Extender TransportDayExtender
	Opts     RunOptions
	// MinItemsPerDay mirrors the day option so a detector can be built
	// stand-alone in tests.
	MinItemsPerDay int
}

// Detect returns disjoint runs in chronological order. Bridged gap days are
// included as date keys; they have no entry in days until the assembler
// materializes synthetic summaries for them.
func (r RunDetector) Detect(days map[string]*DaySummary) []Run {
	keys := sortedKeys(days)
	if len(keys) == 0 {
		return nil
	}

	start, err := time.Parse(dateKeyLayout, keys[0])
	if err != nil {
		return nil
	}
	end, _ := time.Parse(dateKeyLayout, keys[len(keys)-1])

	var (
		runs    []Run
		open    Run
		gapKeys []string
	)

	closeRun := func() {
		if len(open) >= r.Opts.MinRunDays && len(open) > 0 {
			runs = append(runs, open)
		}
		open = nil
		gapKeys = nil
	}

	inLastRun := func(key string) bool {
		if len(runs) == 0 {
			return false
		}
		last := runs[len(runs)-1]
		return last[len(last)-1] >= key && last[0] <= key
	}

	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		key := d.Format(dateKeyLayout)
		day := days[key]

		switch {
		case day != nil && day.isAwayCandidate(r.MinItemsPerDay):
			if len(open) == 0 {
				// Pull in a directly preceding transport day: an arrival
				// with only airport shots belongs to the trip it opens.
				prevKey := d.AddDate(0, 0, -1).Format(dateKeyLayout)
				if prev := days[prevKey]; r.Extender.IsExtendable(prev) && !inLastRun(prevKey) {
					open = append(open, prevKey)
				}
			} else if len(gapKeys) > 0 {
				// Bridge the bounded data gap between two qualifying days.
				open = append(open, gapKeys...)
				gapKeys = nil
			}
			open = append(open, key)

		case len(open) > 0 && day != nil && len(gapKeys) == 0 && (r.Extender.IsExtendable(day) || r.weakAway(day)):
			// Transport or low-data away day directly adjacent to the run.
			open = append(open, key)

		case len(open) > 0 && day == nil:
			gapKeys = append(gapKeys, key)
			if len(gapKeys) > r.Opts.MaxBridgeDays {
				// Too long to be the same trip; whatever follows is a new
				// candidate.
				closeRun()
			}

		default:
			// A day with data and no away signal is positive evidence of
			// being home again.
			closeRun()
		}
	}
	closeRun()
	return runs
}

// weakAway reports a day with too few photos to qualify on its own but with
// an away flag set. Such days extend an adjacent run without opening one.
func (r RunDetector) weakAway(day *DaySummary) bool {
	if day.IsSynthetic || len(day.Members) == 0 {
		return false
	}
	return day.BaseAway || day.AwayByDistance
}
