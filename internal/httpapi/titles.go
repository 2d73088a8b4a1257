package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"bingelist/internal/app/titles"
	"bingelist/shared/go/middleware"
	"bingelist/shared/go/models"
)

func (s *Server) handleTrending(w http.ResponseWriter, r *http.Request) {
	summaries, err := s.titles.Trending(r.Context())
	if err != nil {
		if errors.Is(err, titles.ErrUnavailable) {
			writeJSON(w, http.StatusBadGateway, errorResponse{Error: "title service unavailable"})
			return
		}
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
		return
	}
	if summaries == nil {
		summaries = []models.TitleSummary{}
	}

	writeJSON(w, http.StatusOK, struct {
		Results []models.TitleSummary `json:"results"`
	}{Results: summaries})
}

func (s *Server) handleTitleDetails(w http.ResponseWriter, r *http.Request) {
	mediaType := models.MediaType(r.PathValue("kind"))
	if mediaType != models.MediaTypeMovie && mediaType != models.MediaTypeTV {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "unknown media type"})
		return
	}

	tmdbID, err := pathID(r, "id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid title id"})
		return
	}

	// Details are public; a signed-in viewer also gets their own copy.
	viewerID, _ := middleware.UserID(r.Context())

	details, err := s.titles.Details(r.Context(), viewerID, tmdbID, mediaType)
	if err != nil {
		if errors.Is(err, titles.ErrUnavailable) {
			writeJSON(w, http.StatusBadGateway, errorResponse{Error: "title service unavailable"})
			return
		}
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, details)
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Query     string `json:"query"`
		MediaType string `json:"media_type"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON payload"})
		return
	}

	result, err := s.search.Search(r.Context(), req.Query, models.MediaType(req.MediaType))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}
	if result.Results == nil {
		result.Results = []models.TitleSummary{}
	}

	writeJSON(w, http.StatusOK, result)
}
