package vacation

// Options carries every tunable threshold and weight of the vacation
// detector. The numbers are empirical; the defaults live in the embedded
// internal/config/detection.yaml and can be overridden per deployment.
// Changing a weight must never flip the direction of its effect: more
// qualifying days, countries or spots can only raise a score, more plain
// workdays can only lower it.
type Options struct {
	Home       HomeOptions      `yaml:"home"`
	Day        DayOptions       `yaml:"day"`
	Run        RunOptions       `yaml:"run"`
	Score      ScoreOptions     `yaml:"score"`
	Thresholds ThresholdOptions `yaml:"thresholds"`
}

// HomeOptions controls home inference.
type HomeOptions struct {
	DefaultRadiusKm  float64 `yaml:"default_radius_km"`  // radius when none is configured or observed
	DaylightFromHour int     `yaml:"daylight_from_hour"` // local hour window for inference samples
	DaylightToHour   int     `yaml:"daylight_to_hour"`
	MinSampleDays    int     `yaml:"min_sample_days"` // distinct days required before inferring
	ClusterRadiusKm  float64 `yaml:"cluster_radius_km"`
}

// DayOptions controls per-day summary construction.
type DayOptions struct {
	AwayDistanceKm     float64 `yaml:"away_distance_km"`     // max distance that still counts as home
	MinItemsPerDay     int     `yaml:"min_items_per_day"`    // real members needed for an away candidate
	StaypointRadiusKm  float64 `yaml:"staypoint_radius_km"`  // DBSCAN eps for dwell clusters
	StaypointMinPhotos int     `yaml:"staypoint_min_photos"` // DBSCAN min samples
	TransitSpeedKmh    float64 `yaml:"transit_speed_kmh"`    // above this a day shows high-speed transit
	CohortMinDays      int     `yaml:"cohort_min_days"`      // days a subject must recur on to join the cohort
}

// RunOptions controls run detection.
type RunOptions struct {
	MaxBridgeDays int `yaml:"max_bridge_days"` // longest data gap bridged inside one run
	MinRunDays    int `yaml:"min_run_days"`    // shorter closed runs are dropped
}

// ScoreOptions are the weights of the score sum.
type ScoreOptions struct {
	DistanceWeight      float64 `yaml:"distance_weight"`
	TravelWeight        float64 `yaml:"travel_weight"`
	CountryBonus        float64 `yaml:"country_bonus"`
	TimezoneBonus       float64 `yaml:"timezone_bonus"`
	TourismWeight       float64 `yaml:"tourism_weight"`
	SpotBonus           float64 `yaml:"spot_bonus"`
	WeekendHolidayBonus float64 `yaml:"weekend_holiday_bonus"`
	SocialBonus         float64 `yaml:"social_bonus"`
	WorkdayPenalty      float64 `yaml:"workday_penalty"`
}

// ThresholdOptions is the classification ladder.
type ThresholdOptions struct {
	MinScore          float64 `yaml:"min_score"`            // below this a run yields no cluster at all
	ShortTripMinScore float64 `yaml:"short_trip_min_score"` // multi-day runs at or above become short trips
	VacationMinScore  float64 `yaml:"vacation_min_score"`
	VacationMinDays   int     `yaml:"vacation_min_days"`
}

// DefaultOptions returns the tuned defaults shipped with the binary.
func DefaultOptions() Options {
	return Options{
		Home: HomeOptions{
			DefaultRadiusKm:  1.5,
			DaylightFromHour: 9,
			DaylightToHour:   18,
			MinSampleDays:    3,
			ClusterRadiusKm:  2.0,
		},
		Day: DayOptions{
			AwayDistanceKm:     45,
			MinItemsPerDay:     3,
			StaypointRadiusKm:  0.3,
			StaypointMinPhotos: 3,
			TransitSpeedKmh:    150,
			CohortMinDays:      3,
		},
		Run: RunOptions{
			MaxBridgeDays: 2,
			MinRunDays:    1,
		},
		Score: ScoreOptions{
			DistanceWeight:      2.0,
			TravelWeight:        1.0,
			CountryBonus:        6.0,
			TimezoneBonus:       4.0,
			TourismWeight:       8.0,
			SpotBonus:           1.5,
			WeekendHolidayBonus: 1.0,
			SocialBonus:         0.5,
			WorkdayPenalty:      2.0,
		},
		Thresholds: ThresholdOptions{
			MinScore:          8,
			ShortTripMinScore: 14,
			VacationMinScore:  24,
			VacationMinDays:   4,
		},
	}
}
