package vacation

import (
	"fmt"

	"golang.org/x/text/language"
)

// Classification values produced by the score calculator.
const (
	ClassDayTrip   = "day_trip"
	ClassShortTrip = "short_trip"
	ClassVacation  = "vacation"
)

var labelLanguages = []language.Tag{
	language.English, // first entry is the fallback
	language.Czech,
	language.German,
}

var labelMatcher = language.NewMatcher(labelLanguages)

var labelCatalog = map[language.Tag]map[string]string{
	language.English: {
		ClassDayTrip:   "Day trip to %s",
		ClassShortTrip: "Trip to %s",
		ClassVacation:  "Vacation in %s",
	},
	language.Czech: {
		ClassDayTrip:   "Výlet do %s",
		ClassShortTrip: "Cesta do %s",
		ClassVacation:  "Dovolená v %s",
	},
	language.German: {
		ClassDayTrip:   "Tagesausflug nach %s",
		ClassShortTrip: "Reise nach %s",
		ClassVacation:  "Urlaub in %s",
	},
}

// Label renders a localized cluster title for the given classification and
// destination name. lang is a BCP 47 tag ("cs", "de-AT"); anything
// unsupported falls back to English.
func Label(lang, classification, destination string) string {
	// The matcher may answer with an extended tag, so index back into the
	// supported list instead of using the returned tag as a map key.
	_, idx := language.MatchStrings(labelMatcher, lang)
	templates := labelCatalog[labelLanguages[idx]]
	tmpl, ok := templates[classification]
	if !ok {
		return destination
	}
	return fmt.Sprintf(tmpl, destination)
}
