package vacation

// TransportDayExtender decides whether a day that fails the away-candidate
// test can still be absorbed into an adjacent run. Arrival and departure
// days often carry just a couple of airport or train-window shots, yet they
// clearly belong to the trip.
type TransportDayExtender struct {
	TransitSpeedKmh float64
}

// IsExtendable reports whether the day shows a transport signal.
func (e TransportDayExtender) IsExtendable(day *DaySummary) bool {
	if day == nil || day.IsSynthetic {
		return false
	}
	if day.HasAirportPoi || day.HasTransitPoi {
		return true
	}
	return day.MaxSpeedKmh > e.TransitSpeedKmh
}
