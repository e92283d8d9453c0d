package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/soundstage/soundstage/internal/modules/search/application"
)

type SearchHandler struct {
	service *application.SearchService
}

func NewSearchHandler(service *application.SearchService) *SearchHandler {
	return &SearchHandler{service: service}
}

func (h *SearchHandler) Search(w http.ResponseWriter, r *http.Request) {
	results, err := h.service.Search(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		if errors.Is(err, application.ErrEmptyQuery) {
			http.Error(w, `{"error": "search query is empty"}`, http.StatusBadRequest)
			return
		}
		http.Error(w, `{"error": "internal server error"}`, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(results)
}
