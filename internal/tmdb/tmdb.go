package tmdb

import (
	"encoding/json"
	"fmt"

	"bingelist/shared/go/models"
)

// TMDB wire structures. TV payloads use "name" and "first_air_date" where
// movie payloads use "title" and "release_date"; normalization into the
// shared title types happens here so nothing downstream sees the split.

type searchResponse struct {
	Results []searchItem `json:"results"`
}

type searchItem struct {
	ID           int64  `json:"id"`
	Title        string `json:"title"`
	Name         string `json:"name"`
	PosterPath   string `json:"poster_path"`
}

type detailsResponse struct {
	ID             int64   `json:"id"`
	Title          string  `json:"title"`
	Name           string  `json:"name"`
	Overview       string  `json:"overview"`
	PosterPath     string  `json:"poster_path"`
	ReleaseDate    string  `json:"release_date"`
	FirstAirDate   string  `json:"first_air_date"`
	Runtime        int     `json:"runtime"`
	EpisodeRunTime []int   `json:"episode_run_time"`
	VoteAverage    float64 `json:"vote_average"`
	Genres         []struct {
		Name string `json:"name"`
	} `json:"genres"`
	Credits struct {
		Cast []struct {
			Name string `json:"name"`
		} `json:"cast"`
	} `json:"credits"`
}

// maxCastNames bounds how many cast members a details payload carries.
const maxCastNames = 10

// ParseSearchResults normalizes a search payload into title summaries.
func ParseSearchResults(payload []byte, mediaType models.MediaType) ([]models.TitleSummary, error) {
	var resp searchResponse
	if err := json.Unmarshal(payload, &resp); err != nil {
		return nil, fmt.Errorf("decode search response: %w", err)
	}

	results := make([]models.TitleSummary, 0, len(resp.Results))
	for _, item := range resp.Results {
		results = append(results, models.TitleSummary{
			TMDBID:     item.ID,
			Title:      titleFor(item.Title, item.Name, mediaType),
			PosterPath: item.PosterPath,
			MediaType:  mediaType,
		})
	}
	return results, nil
}

// ParseDetails normalizes a details payload for a single title.
func ParseDetails(payload []byte, mediaType models.MediaType) (models.TitleDetails, error) {
	var resp detailsResponse
	if err := json.Unmarshal(payload, &resp); err != nil {
		return models.TitleDetails{}, fmt.Errorf("decode details response: %w", err)
	}

	details := models.TitleDetails{
		TMDBID:      resp.ID,
		Title:       titleFor(resp.Title, resp.Name, mediaType),
		Overview:    resp.Overview,
		PosterPath:  resp.PosterPath,
		ReleaseDate: resp.ReleaseDate,
		Runtime:     resp.Runtime,
		VoteAverage: resp.VoteAverage,
		MediaType:   mediaType,
	}

	if mediaType == models.MediaTypeTV {
		details.ReleaseDate = resp.FirstAirDate
		details.Runtime = 0
		if len(resp.EpisodeRunTime) > 0 {
			details.Runtime = resp.EpisodeRunTime[0]
		}
	}

	for _, genre := range resp.Genres {
		details.Genres = append(details.Genres, genre.Name)
	}
	for i, member := range resp.Credits.Cast {
		if i == maxCastNames {
			break
		}
		details.Cast = append(details.Cast, member.Name)
	}

	return details, nil
}

func titleFor(title, name string, mediaType models.MediaType) string {
	if mediaType == models.MediaTypeTV {
		return name
	}
	return title
}
