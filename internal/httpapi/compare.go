package httpapi

import (
	"errors"
	"net/http"

	"bingelist/internal/store"
)

func (s *Server) handleCompare(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	other, err := s.users.GetByUsername(r.Context(), r.PathValue("username"))
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			writeJSON(w, http.StatusNotFound, errorResponse{Error: "user not found"})
			return
		}
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
		return
	}

	comparison, err := s.compare.Compare(r.Context(), userID, other.ID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, comparison)
}
