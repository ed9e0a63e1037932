package vacation

import (
	"sort"

	"github.com/kozaktomas/photo-memories/internal/memories"
)

// qualityScore ranks a photo for member selection. Resolution carries the
// most weight, sharpness scales it when the metric was computed upstream,
// high ISO discounts night noise. Photos without any metrics all score zero
// and fall back to chronological order.
func qualityScore(p memories.Photo) float64 {
	score := float64(p.Width) * float64(p.Height)
	if p.Sharpness > 0 {
		score *= p.Sharpness
	}
	switch {
	case p.ISO > 1600:
		score *= 0.5
	case p.ISO > 800:
		score *= 0.8
	}
	return score
}

// orderCandidates sorts one day's member candidates: best quality first,
// ties broken by capture time and then content checksum so the order never
// depends on input permutation.
func orderCandidates(photos []memories.Photo) []memories.Photo {
	out := append([]memories.Photo(nil), photos...)
	sort.SliceStable(out, func(i, j int) bool {
		qi, qj := qualityScore(out[i]), qualityScore(out[j])
		if qi != qj {
			return qi > qj
		}
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

// balanceMembers builds the final member list for a run by round-robin over
// its days: the best remaining candidate of each day in turn, cycling.
// A later fixed-size clamp of N ≥ day-count therefore still keeps at least
// one representative per day with real members.
func balanceMembers(run Run, days map[string]*DaySummary) []string {
	perDay := make([][]memories.Photo, 0, len(run))
	for _, key := range run {
		day := days[key]
		if day == nil || day.IsSynthetic || len(day.Members) == 0 {
			continue
		}
		perDay = append(perDay, orderCandidates(day.Members))
	}

	var out []string
	seen := make(map[string]bool)
	for round := 0; ; round++ {
		advanced := false
		for _, candidates := range perDay {
			if round >= len(candidates) {
				continue
			}
			advanced = true
			id := candidates[round].ID
			if seen[id] {
				continue
			}
			seen[id] = true
			out = append(out, id)
		}
		if !advanced {
			break
		}
	}
	return out
}
