// Package discovery translates the public filter vocabulary into the
// upstream discovery query grammar and drives the discover calls, including
// the graceful-degradation policy for unresolvable filter dimensions.
package discovery

// FilterRequest is the user-facing search intent. Every field is optional;
// an empty Category means both content categories.
type FilterRequest struct {
	// Category is "movie", "tv" (plus the aliases the UI sends) or empty/"any".
	Category string
	// Genres holds user-chosen genre labels, in selection order.
	Genres []string
	// Mood is an advisory label implying extra genres (never exclusive).
	Mood string
	// Duration is a bucket label: "court", "moyen" or "long".
	Duration string
	// Platforms holds canonical platform names.
	Platforms []string
	// OriginalLanguage is an ISO 639-1 code.
	OriginalLanguage string
	// YearFrom / YearTo bound the release year, inclusive; zero means open.
	YearFrom int
	YearTo   int
	Page     int
}
