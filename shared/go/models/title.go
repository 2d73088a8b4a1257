package models

// TitleSummary is a normalized search or trending result. TV payloads use
// "name"/"first_air_date" upstream; normalization happens before anything
// reaches this type.
type TitleSummary struct {
	TMDBID     int64     `json:"id"`
	Title      string    `json:"title"`
	PosterPath string    `json:"poster_path,omitempty"`
	MediaType  MediaType `json:"media_type"`
}

// TitleDetails is the normalized detail payload for a single title.
type TitleDetails struct {
	TMDBID      int64     `json:"id"`
	Title       string    `json:"title"`
	Overview    string    `json:"overview,omitempty"`
	PosterPath  string    `json:"poster_path,omitempty"`
	ReleaseDate string    `json:"release_date,omitempty"`
	Runtime     int       `json:"runtime,omitempty"`
	VoteAverage float64   `json:"vote_average,omitempty"`
	Genres      []string  `json:"genres,omitempty"`
	Cast        []string  `json:"cast,omitempty"`
	MediaType   MediaType `json:"media_type"`
}
