package tmdb

const imageBaseURL = "https://image.tmdb.org/t/p/"

// Image size tokens chosen per usage.
const (
	LogoSize     = "w45"
	PosterSize   = "w342"
	BackdropSize = "w780"
)

// ImageURL combines the fixed image base, a size token and an upstream
// relative path. An absent path yields nil so it serializes as JSON null.
func ImageURL(size, path string) *string {
	if path == "" {
		return nil
	}
	u := imageBaseURL + size + path
	return &u
}
