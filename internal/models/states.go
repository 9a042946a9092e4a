package models

import "strings"

// US state codes mapped to full names. Postings were historically stored with
// either form in the state column, so filters must match both.
var stateNames = map[string]string{
	"AL": "Alabama", "AK": "Alaska", "AZ": "Arizona", "AR": "Arkansas",
	"CA": "California", "CO": "Colorado", "CT": "Connecticut", "DE": "Delaware",
	"FL": "Florida", "GA": "Georgia", "HI": "Hawaii", "ID": "Idaho",
	"IL": "Illinois", "IN": "Indiana", "IA": "Iowa", "KS": "Kansas",
	"KY": "Kentucky", "LA": "Louisiana", "ME": "Maine", "MD": "Maryland",
	"MA": "Massachusetts", "MI": "Michigan", "MN": "Minnesota", "MS": "Mississippi",
	"MO": "Missouri", "MT": "Montana", "NE": "Nebraska", "NV": "Nevada",
	"NH": "New Hampshire", "NJ": "New Jersey", "NM": "New Mexico", "NY": "New York",
	"NC": "North Carolina", "ND": "North Dakota", "OH": "Ohio", "OK": "Oklahoma",
	"OR": "Oregon", "PA": "Pennsylvania", "RI": "Rhode Island", "SC": "South Carolina",
	"SD": "South Dakota", "TN": "Tennessee", "TX": "Texas", "UT": "Utah",
	"VT": "Vermont", "VA": "Virginia", "WA": "Washington", "WV": "West Virginia",
	"WI": "Wisconsin", "WY": "Wyoming", "DC": "District of Columbia",
}

var stateCodes = func() map[string]string {
	m := make(map[string]string, len(stateNames))
	for code, name := range stateNames {
		m[strings.ToLower(name)] = code
	}
	return m
}()

// ResolveState accepts either a two-letter code or a full state name and
// returns both representations, lowercased for case-insensitive matching.
// A filter against either form must match records stored in the other, so
// callers match the state column against both returned values. Unknown input
// is returned as-is so it matches nothing rather than erroring.
func ResolveState(input string) (code string, name string) {
	trimmed := strings.TrimSpace(input)

	if full, ok := stateNames[strings.ToUpper(trimmed)]; ok {
		return strings.ToLower(trimmed), strings.ToLower(full)
	}
	if abbr, ok := stateCodes[strings.ToLower(trimmed)]; ok {
		return strings.ToLower(abbr), strings.ToLower(trimmed)
	}
	return strings.ToLower(trimmed), strings.ToLower(trimmed)
}

// StateMatches reports whether a stored state value equals the filter input
// in either code or name form, case-insensitively.
func StateMatches(stored, input string) bool {
	code, name := ResolveState(input)
	s := strings.ToLower(strings.TrimSpace(stored))
	return s == code || s == name
}
