package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"bingelist/internal/app/lists"
	"bingelist/internal/app/reviews"
	"bingelist/internal/app/search"
	"bingelist/internal/app/titles"
	"bingelist/internal/store"
	"bingelist/shared/go/middleware"
	"bingelist/shared/go/models"
)

// UserService exposes user profile workflows.
type UserService interface {
	Create(ctx context.Context, username, email string) (models.User, error)
	Get(ctx context.Context, id int64) (models.User, error)
	GetByUsername(ctx context.Context, username string) (models.User, error)
}

// ListService coordinates movie list workflows.
type ListService interface {
	Create(ctx context.Context, userID int64, list models.MovieList) (models.MovieList, error)
	ListByUser(ctx context.Context, userID int64) ([]models.MovieList, error)
	Get(ctx context.Context, userID, listID int64) (models.MovieList, error)
}

// MovieService coordinates collection-entry workflows.
type MovieService interface {
	Add(ctx context.Context, userID int64, movie models.Movie) (models.Movie, error)
	Get(ctx context.Context, id int64) (models.Movie, error)
}

// ReviewService coordinates review workflows.
type ReviewService interface {
	Create(ctx context.Context, userID int64, review models.Review) (models.Review, error)
	ListByUser(ctx context.Context, userID int64) ([]models.Review, error)
}

// MessageService coordinates direct messaging.
type MessageService interface {
	Send(ctx context.Context, senderID int64, recipientUsername, body string) (models.Message, error)
	Conversation(ctx context.Context, userID int64, otherUsername string) ([]models.Message, error)
	Inbox(ctx context.Context, userID int64) ([]models.User, error)
}

// SearchService performs title search with local fallback.
type SearchService interface {
	Search(ctx context.Context, query string, mediaType models.MediaType) (search.Result, error)
}

// TitleService serves trending listings and title detail views.
type TitleService interface {
	Trending(ctx context.Context) ([]models.TitleSummary, error)
	Details(ctx context.Context, viewerID, tmdbID int64, mediaType models.MediaType) (titles.Details, error)
}

// CompareService compares two users' rating histories.
type CompareService interface {
	Compare(ctx context.Context, userID, otherID int64) (models.Comparison, error)
}

// Server wires HTTP handlers to the underlying services.
type Server struct {
	users    UserService
	lists    ListService
	movies   MovieService
	reviews  ReviewService
	messages MessageService
	search   SearchService
	titles   TitleService
	compare  CompareService
}

// New configures a Server with the given services.
func New(
	users UserService,
	lists ListService,
	movies MovieService,
	reviews ReviewService,
	messages MessageService,
	searchSvc SearchService,
	titles TitleService,
	compare CompareService,
) *Server {
	return &Server{
		users:    users,
		lists:    lists,
		movies:   movies,
		reviews:  reviews,
		messages: messages,
		search:   searchSvc,
		titles:   titles,
		compare:  compare,
	}
}

// Routes exposes the HTTP handlers.
func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Title metadata
	mux.HandleFunc("GET /api/v1/titles/trending", s.handleTrending)
	mux.HandleFunc("GET /api/v1/titles/{kind}/{id}", s.handleTitleDetails)
	mux.HandleFunc("POST /api/v1/search", s.handleSearch)

	// Lists and collection entries
	mux.HandleFunc("GET /api/v1/me/lists", s.handleMyLists)
	mux.HandleFunc("POST /api/v1/lists", s.handleCreateList)
	mux.HandleFunc("GET /api/v1/lists/{id}", s.handleGetList)
	mux.HandleFunc("POST /api/v1/me/movies", s.handleAddMovie)

	// Reviews
	mux.HandleFunc("POST /api/v1/movies/{id}/reviews", s.handleCreateReview)
	mux.HandleFunc("GET /api/v1/me/reviews", s.handleMyReviews)

	// Messaging
	mux.HandleFunc("GET /api/v1/inbox", s.handleInbox)
	mux.HandleFunc("GET /api/v1/chat/{username}", s.handleConversation)
	mux.HandleFunc("POST /api/v1/chat/{username}", s.handleSendChat)
	mux.HandleFunc("POST /api/v1/messages", s.handleSendMessage)

	// Taste comparison
	mux.HandleFunc("GET /api/v1/compare/{username}", s.handleCompare)

	// Profiles
	mux.HandleFunc("GET /api/v1/me", s.handleMe)
	mux.HandleFunc("GET /api/v1/users/{username}", s.handleGetUser)
	mux.HandleFunc("POST /api/v1/users", s.handleCreateUser)

	return mux
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		_ = json.NewEncoder(w).Encode(payload)
	}
}

// requireUser resolves the authenticated user or writes a 401.
func requireUser(w http.ResponseWriter, r *http.Request) (int64, bool) {
	userID, err := middleware.UserID(r.Context())
	if err != nil {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "authentication required"})
		return 0, false
	}
	return userID, true
}

func pathID(r *http.Request, name string) (int64, error) {
	return strconv.ParseInt(r.PathValue(name), 10, 64)
}

func (s *Server) handleCreateUser(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		Email    string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON payload"})
		return
	}

	user, err := s.users.Create(r.Context(), req.Username, req.Email)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrUserExists):
			writeJSON(w, http.StatusConflict, errorResponse{Error: "username or email already taken"})
		default:
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		}
		return
	}

	writeJSON(w, http.StatusCreated, user)
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	user, err := s.users.Get(r.Context(), userID)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			writeJSON(w, http.StatusNotFound, errorResponse{Error: "user not found"})
			return
		}
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (s *Server) handleGetUser(w http.ResponseWriter, r *http.Request) {
	user, err := s.users.GetByUsername(r.Context(), r.PathValue("username"))
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			writeJSON(w, http.StatusNotFound, errorResponse{Error: "user not found"})
			return
		}
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (s *Server) handleMyLists(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	userLists, err := s.lists.ListByUser(r.Context(), userID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
		return
	}
	if userLists == nil {
		userLists = []models.MovieList{}
	}

	writeJSON(w, http.StatusOK, struct {
		Lists []models.MovieList `json:"lists"`
	}{Lists: userLists})
}

func (s *Server) handleCreateList(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req struct {
		Name        string `json:"name"`
		Description string `json:"description"`
		CoverURL    string `json:"cover_url"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON payload"})
		return
	}

	created, err := s.lists.Create(r.Context(), userID, models.MovieList{
		Name:        req.Name,
		Description: req.Description,
		CoverURL:    req.CoverURL,
	})
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handleGetList(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	listID, err := pathID(r, "id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid list id"})
		return
	}

	list, err := s.lists.Get(r.Context(), userID, listID)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrListNotFound):
			writeJSON(w, http.StatusNotFound, errorResponse{Error: "list not found"})
		case errors.Is(err, lists.ErrNotOwner):
			writeJSON(w, http.StatusForbidden, errorResponse{Error: "unauthorized access"})
		default:
			writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
		}
		return
	}

	writeJSON(w, http.StatusOK, list)
}

func (s *Server) handleAddMovie(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req struct {
		Title     string `json:"title"`
		Poster    string `json:"poster"`
		TMDBID    *int64 `json:"tmdb_id"`
		ListID    *int64 `json:"list_id"`
		MediaType string `json:"media_type"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON payload"})
		return
	}

	mediaType := models.MediaType(req.MediaType)
	if mediaType == "" {
		mediaType = models.MediaTypeMovie
	}

	created, err := s.movies.Add(r.Context(), userID, models.Movie{
		Title:     req.Title,
		Poster:    req.Poster,
		TMDBID:    req.TMDBID,
		ListID:    req.ListID,
		MediaType: mediaType,
	})
	if err != nil {
		switch {
		case errors.Is(err, store.ErrMovieExists):
			writeJSON(w, http.StatusConflict, errorResponse{Error: "movie already in this list"})
		default:
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		}
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handleCreateReview(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	movieID, err := pathID(r, "id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid movie id"})
		return
	}

	var req struct {
		Rating  int    `json:"rating"`
		Content string `json:"content"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON payload"})
		return
	}

	created, err := s.reviews.Create(r.Context(), userID, models.Review{
		MovieID: movieID,
		Rating:  req.Rating,
		Content: req.Content,
	})
	if err != nil {
		switch {
		case errors.Is(err, store.ErrMovieNotFound):
			writeJSON(w, http.StatusNotFound, errorResponse{Error: "movie not found"})
		case errors.Is(err, reviews.ErrNotOwner):
			writeJSON(w, http.StatusForbidden, errorResponse{Error: err.Error()})
		default:
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		}
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handleMyReviews(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	userReviews, err := s.reviews.ListByUser(r.Context(), userID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
		return
	}
	if userReviews == nil {
		userReviews = []models.Review{}
	}

	writeJSON(w, http.StatusOK, struct {
		Reviews []models.Review `json:"reviews"`
	}{Reviews: userReviews})
}
