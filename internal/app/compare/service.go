package compare

import (
	"context"
	"sort"

	"bingelist/shared/go/models"
)

// Store defines the persistence hooks for taste comparison.
type Store interface {
	RatedMoviesByUser(ctx context.Context, userID int64) ([]models.RatedMovie, error)
}

// Service compares two users' rating histories.
type Service interface {
	Compare(ctx context.Context, userID, otherID int64) (models.Comparison, error)
}

type service struct {
	store Store
}

// New constructs a comparison Service backed by the given Store.
func New(store Store) Service {
	return &service{store: store}
}

const (
	selfBadge       = "Self"
	selfDescription = "You are always 100% compatible with yourself!"

	strangersBadge       = "Strangers"
	strangersDescription = "You haven't watched any of the same movies yet!"

	// Ratings run 0-10, so two ratings of the same title differ by at most 9.
	maxItemDiff = 9

	maxRecommendations = 3
)

// badgeFor maps a score to its badge and description, highest band first.
func badgeFor(score int) (string, string) {
	switch {
	case score >= 90:
		return "Soulmates", "It's like you share the same brain! Cinematic destiny."
	case score >= 70:
		return "Besties", "Great minds think alike. You trust each other's taste."
	case score >= 50:
		return "Casual Friends", "You agree on the big stuff, but argue about the details."
	case score >= 30:
		return "Frenemies", "You respect each other, but your tastes are wildly different."
	default:
		return "Rivals", "Total opposites. If they hate it, you'll probably love it."
	}
}

// classify buckets one commonly rated title. Shared sentiment wins over the
// size of the disagreement, so the checks run in this exact order.
func classify(mine, theirs int) models.ItemCategory {
	diff := absDiff(mine, theirs)
	switch {
	case mine >= 8 && theirs >= 8:
		return models.CategorySharedLove
	case mine <= 4 && theirs <= 4:
		return models.CategorySharedHate
	case diff >= 4:
		return models.CategoryDebate
	default:
		return models.CategoryNormal
	}
}

// Compare produces the full taste comparison between two users. It reads
// stored data only and has no side effects, so repeated calls with the
// same stored state return the same result.
func (s *service) Compare(ctx context.Context, userID, otherID int64) (models.Comparison, error) {
	// Self-comparison short-circuits before any data is loaded.
	if userID == otherID {
		return models.Comparison{
			Self:        true,
			Badge:       selfBadge,
			Description: selfDescription,
		}, nil
	}

	mine, err := s.store.RatedMoviesByUser(ctx, userID)
	if err != nil {
		return models.Comparison{}, err
	}
	theirs, err := s.store.RatedMoviesByUser(ctx, otherID)
	if err != nil {
		return models.Comparison{}, err
	}

	myData := indexByKey(mine)
	theirData := indexByKey(theirs)

	var items []models.ItemComparison
	totalDiff := 0
	for key, minePick := range myData {
		theirPick, ok := theirData[key]
		if !ok {
			continue
		}

		diff := absDiff(minePick.Rating, theirPick.Rating)
		totalDiff += diff
		items = append(items, models.ItemComparison{
			Movie:       minePick.Movie,
			MyRating:    minePick.Rating,
			TheirRating: theirPick.Rating,
			Diff:        diff,
			Category:    classify(minePick.Rating, theirPick.Rating),
		})
	}

	// Map iteration order is random; fix the breakdown order for stable
	// output.
	sort.Slice(items, func(i, j int) bool {
		if items[i].Movie.Title != items[j].Movie.Title {
			return items[i].Movie.Title < items[j].Movie.Title
		}
		return items[i].Movie.ID < items[j].Movie.ID
	})

	result := models.Comparison{
		CommonCount:     len(items),
		Items:           items,
		Recommendations: recommend(myData, theirData),
	}

	if len(items) == 0 {
		result.Score = 0
		result.Badge = strangersBadge
		result.Description = strangersDescription
		return result, nil
	}

	maxPossibleDiff := len(items) * maxItemDiff
	rawScore := 100 - (float64(totalDiff)/float64(maxPossibleDiff))*100
	result.Score = int(rawScore) // truncation, not rounding
	result.Badge, result.Description = badgeFor(result.Score)

	return result, nil
}

// indexByKey maps each user's ratings by (TMDB ID, kind). When a user rated
// the same title more than once the highest rating wins, so the result does
// not depend on iteration order.
func indexByKey(rated []models.RatedMovie) map[models.ComparisonKey]models.RatedMovie {
	index := make(map[models.ComparisonKey]models.RatedMovie, len(rated))
	for _, item := range rated {
		if item.Movie.TMDBID == nil {
			continue
		}
		key := models.ComparisonKey{TMDBID: *item.Movie.TMDBID, MediaType: item.Movie.MediaType}
		if existing, ok := index[key]; ok && existing.Rating >= item.Rating {
			continue
		}
		index[key] = item
	}
	return index
}

// recommend picks titles the other user loves (rating >= 8) that the viewer
// has not rated, best-rated first, capped at three.
func recommend(mine, theirs map[models.ComparisonKey]models.RatedMovie) []models.Movie {
	var picks []models.RatedMovie
	for key, item := range theirs {
		if _, rated := mine[key]; rated {
			continue
		}
		if item.Rating >= 8 {
			picks = append(picks, item)
		}
	}

	sort.Slice(picks, func(i, j int) bool {
		if picks[i].Rating != picks[j].Rating {
			return picks[i].Rating > picks[j].Rating
		}
		return *picks[i].Movie.TMDBID < *picks[j].Movie.TMDBID
	})

	if len(picks) > maxRecommendations {
		picks = picks[:maxRecommendations]
	}

	movies := make([]models.Movie, 0, len(picks))
	for _, pick := range picks {
		movies = append(movies, pick.Movie)
	}
	return movies
}

func absDiff(a, b int) int {
	if a > b {
		return a - b
	}
	return b - a
}
