package discovery

import "github.com/example/watch-gateway/internal/catalog"

// Upstream genre identifiers are stable per category, so the label tables are
// static data rather than an extra upstream round-trip per search. Keys are
// folded (lowercase, diacritics stripped); matching goes through
// catalog.Fold so "Comédie" and "comedie" both hit.

var movieGenreIDs = map[string]int64{
	"action":          28,
	"aventure":        12,
	"animation":       16,
	"comedie":         35,
	"crime":           80,
	"documentaire":    99,
	"drame":           18,
	"familial":        10751,
	"fantastique":     14,
	"histoire":        36,
	"horreur":         27,
	"musique":         10402,
	"mystere":         9648,
	"romance":         10749,
	"science-fiction": 878,
	"telefilm":        10770,
	"thriller":        53,
	"guerre":          10752,
	"western":         37,
}

// Series genres differ structurally: some labels are merged upstream
// ("Action & Adventure", "Science-Fiction & Fantastique"), so the individual
// labels alias to the merged identifier.
var seriesGenreIDs = map[string]int64{
	"action & adventure":            10759,
	"action":                        10759,
	"aventure":                      10759,
	"animation":                     16,
	"comedie":                       35,
	"crime":                         80,
	"documentaire":                  99,
	"drame":                         18,
	"familial":                      10751,
	"enfants":                       10762,
	"mystere":                       9648,
	"news":                          10763,
	"realite":                       10764,
	"science-fiction & fantastique": 10765,
	"science-fiction":               10765,
	"fantastique":                   10765,
	"soap":                          10766,
	"talk":                          10767,
	"war & politics":                10768,
	"guerre":                        10768,
	"western":                       37,
}

// moodGenres maps a mood label to the genre labels it implies. Moods are
// advisory: the implied labels are unioned with the user's explicit genres
// before identifier lookup, never replacing them.
var moodGenres = map[string][]string{
	"rire":      {"Comédie"},
	"frissons":  {"Horreur", "Thriller"},
	"action":    {"Action", "Aventure"},
	"famille":   {"Familial", "Animation"},
	"romance":   {"Romance"},
	"evasion":   {"Science-Fiction", "Fantastique", "Aventure"},
	"pleurer":   {"Drame", "Romance"},
	"reflexion": {"Documentaire", "Histoire"},
}

// genreID resolves one label for one category. Labels with no match in the
// category's table are dropped by the caller, never failed.
func genreID(cat catalog.Category, label string) (int64, bool) {
	table := seriesGenreIDs
	if cat.IsMovie() {
		table = movieGenreIDs
	}
	id, ok := table[catalog.Fold(label)]
	return id, ok
}
