package utils

import (
	"regexp"
	"strconv"
	"strings"
)

var nonAlnum = regexp.MustCompile(`[^a-z0-9]`)

// markerRule maps substrings of a stripped marker name to a canonical key.
// Rules are evaluated in order and the first match wins, so the hba1c rule
// must precede the hemoglobin rule.
type markerRule struct {
	substrings []string
	key        string
}

var markerRules = []markerRule{
	{[]string{"hba1c", "hemoglobina1c"}, "hba1c"},
	{[]string{"glucose", "sugar", "fbs"}, "bloodglucose"},
	{[]string{"wbc", "whiteblood"}, "wbc"},
	{[]string{"creatinine"}, "creatinine"},
	{[]string{"hemoglobin"}, "hemoglobin"},
	{[]string{"tsh", "thyroid"}, "tsh"},
	{[]string{"totalcholesterol"}, "totalcholesterol"},
}

// NormalizeMarkerName maps a free-text biomarker name to a canonical key so
// that differently-worded mentions of the same analyte line up across
// reports. Total function: every input yields exactly one key.
func NormalizeMarkerName(raw string) string {
	n := strings.TrimSpace(nonAlnum.ReplaceAllString(strings.ToLower(raw), ""))
	for _, rule := range markerRules {
		for _, sub := range rule.substrings {
			if strings.Contains(n, sub) {
				return rule.key
			}
		}
	}
	return n
}

// adverseHigh lists markers for which an increase is the adverse direction.
// Matched against the lowercased raw marker name.
var adverseHigh = []string{"glucose", "hba1c", "cholesterol", "creatinine", "wbc"}

// HigherIsWorse reports whether an increase in the named marker is
// clinically adverse. Everything not listed defaults to higher-is-better.
func HigherIsWorse(name string) bool {
	n := strings.ToLower(name)
	for _, sub := range adverseHigh {
		if strings.Contains(n, sub) {
			return true
		}
	}
	return false
}

var leadingFloat = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)([eE][+-]?\d+)?`)

// ParseMarkerValue extracts the leading numeric portion of a marker value
// string, tolerating trailing units ("5.2 mg/dL" parses as 5.2). Returns
// false when no numeric prefix exists.
func ParseMarkerValue(value string) (float64, bool) {
	s := strings.TrimSpace(value)
	m := leadingFloat.FindString(s)
	if m == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(m, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}
