package holiday

import (
	"strings"
	"time"

	"github.com/rickar/cal/v2"
	"github.com/rickar/cal/v2/at"
	"github.com/rickar/cal/v2/cz"
	"github.com/rickar/cal/v2/de"
	"github.com/rickar/cal/v2/es"
	"github.com/rickar/cal/v2/fr"
	"github.com/rickar/cal/v2/gb"
	"github.com/rickar/cal/v2/it"
	"github.com/rickar/cal/v2/pl"
	"github.com/rickar/cal/v2/sk"
	"github.com/rickar/cal/v2/us"
)

// Resolver answers whether a local calendar date is a public holiday.
type Resolver interface {
	IsHoliday(date time.Time) bool
}

// regionHolidays maps lowercase ISO country codes to holiday definitions.
var regionHolidays = map[string][]*cal.Holiday{
	"at": at.Holidays,
	"cz": cz.Holidays,
	"de": de.Holidays,
	"es": es.Holidays,
	"fr": fr.Holidays,
	"gb": gb.Holidays,
	"it": it.Holidays,
	"pl": pl.Holidays,
	"sk": sk.Holidays,
	"us": us.Holidays,
}

// CalendarResolver resolves holidays against one region's public calendar.
type CalendarResolver struct {
	calendar *cal.BusinessCalendar
}

// NewCalendarResolver builds a resolver for the given ISO country code.
// Unknown regions get an empty calendar, which simply never matches; trip
// scoring degrades to weekend-only bonuses rather than failing.
func NewCalendarResolver(region string) *CalendarResolver {
	c := cal.NewBusinessCalendar()
	if holidays, ok := regionHolidays[strings.ToLower(region)]; ok {
		c.AddHoliday(holidays...)
	}
	return &CalendarResolver{calendar: c}
}

// IsHoliday implements Resolver.
func (r *CalendarResolver) IsHoliday(date time.Time) bool {
	actual, observed, _ := r.calendar.IsHoliday(date)
	return actual || observed
}

// None is a Resolver that never reports a holiday.
type None struct{}

// IsHoliday implements Resolver.
func (None) IsHoliday(time.Time) bool { return false }
