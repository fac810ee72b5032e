package utils

import "regexp"

// timeTokenRegex matches clock tokens like "05:21" or "5:21". Values are
// taken verbatim from the source document; hour/minute ranges are not
// validated.
var timeTokenRegex = regexp.MustCompile(`\d{1,2}:\d{2}`)

// ExtractTime returns the first HH:MM token in text, or "" if none exists.
func ExtractTime(text string) string {
	return timeTokenRegex.FindString(text)
}

// ExtractTimes returns every HH:MM token in text in declaration order.
func ExtractTimes(text string) []string {
	return timeTokenRegex.FindAllString(text, -1)
}

// ContainsTime reports whether text holds at least one HH:MM token.
func ContainsTime(text string) bool {
	return timeTokenRegex.MatchString(text)
}
