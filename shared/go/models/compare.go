package models

// ComparisonKey matches the same title across two users' independent
// collections. Only entries with a known TMDB ID produce a valid key.
type ComparisonKey struct {
	TMDBID    int64     `json:"tmdb_id"`
	MediaType MediaType `json:"media_type"`
}

// ItemCategory classifies how two ratings of the same title relate.
type ItemCategory string

const (
	CategorySharedLove ItemCategory = "Shared Love"
	CategorySharedHate ItemCategory = "Shared Hate"
	CategoryDebate     ItemCategory = "Debate"
	CategoryNormal     ItemCategory = "Normal"
)

// ItemComparison is the per-title breakdown for one commonly rated entry.
// Movie is the viewer's copy of the title.
type ItemComparison struct {
	Movie       Movie        `json:"movie"`
	MyRating    int          `json:"my_rating"`
	TheirRating int          `json:"their_rating"`
	Diff        int          `json:"diff"`
	Category    ItemCategory `json:"category"`
}

// Comparison is the full outcome of comparing two users' taste.
type Comparison struct {
	Score           int              `json:"score"`
	Badge           string           `json:"badge"`
	Description     string           `json:"description"`
	CommonCount     int              `json:"common_count"`
	Items           []ItemComparison `json:"items"`
	Recommendations []Movie          `json:"recommendations"`

	// Self is set when a user compares against themselves; Score and Items
	// are meaningless in that case and no data was loaded.
	Self bool `json:"self,omitempty"`
}
