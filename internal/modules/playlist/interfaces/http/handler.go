package http

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/google/uuid"

	"github.com/soundstage/soundstage/internal/gateway/middleware"
	"github.com/soundstage/soundstage/internal/modules/playlist/application"
	"github.com/soundstage/soundstage/internal/modules/playlist/domain"
)

type PlaylistService interface {
	CreatePlaylist(ctx context.Context, ownerID uuid.UUID, req application.CreatePlaylistRequest) (*domain.Playlist, error)
	GetPlaylist(ctx context.Context, callerID *uuid.UUID, id uuid.UUID) (*domain.Playlist, error)
	ListPlaylists(ctx context.Context, viewer *uuid.UUID) ([]domain.Playlist, error)
	AddSong(ctx context.Context, callerID, playlistID, songID uuid.UUID) (domain.AddOutcome, error)
}

type PlaylistHandler struct {
	service PlaylistService
}

func NewPlaylistHandler(service PlaylistService) *PlaylistHandler {
	return &PlaylistHandler{service: service}
}

func (h *PlaylistHandler) Create(w http.ResponseWriter, r *http.Request) {
	callerID, ok := r.Context().Value(middleware.ContextKeyUserID).(uuid.UUID)
	if !ok {
		http.Error(w, `{"error": "unauthorized"}`, http.StatusUnauthorized)
		return
	}

	var req application.CreatePlaylistRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error": "invalid request body"}`, http.StatusBadRequest)
		return
	}

	playlist, err := h.service.CreatePlaylist(r.Context(), callerID, req)
	if err != nil {
		writePlaylistError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(playlist)
}

func (h *PlaylistHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		http.Error(w, `{"error": "invalid playlist id"}`, http.StatusBadRequest)
		return
	}

	playlist, err := h.service.GetPlaylist(r.Context(), callerIDFromContext(r), id)
	if err != nil {
		writePlaylistError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(playlist)
}

func (h *PlaylistHandler) List(w http.ResponseWriter, r *http.Request) {
	playlists, err := h.service.ListPlaylists(r.Context(), callerIDFromContext(r))
	if err != nil {
		writePlaylistError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{"playlists": playlists})
}

func (h *PlaylistHandler) AddSong(w http.ResponseWriter, r *http.Request) {
	callerID, ok := r.Context().Value(middleware.ContextKeyUserID).(uuid.UUID)
	if !ok {
		http.Error(w, `{"error": "unauthorized"}`, http.StatusUnauthorized)
		return
	}

	playlistID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		http.Error(w, `{"error": "invalid playlist id"}`, http.StatusBadRequest)
		return
	}

	var req struct {
		SongID uuid.UUID `json:"song_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.SongID == uuid.Nil {
		http.Error(w, `{"error": "invalid request body"}`, http.StatusBadRequest)
		return
	}

	outcome, err := h.service.AddSong(r.Context(), callerID, playlistID, req.SongID)
	if err != nil {
		writePlaylistError(w, err)
		return
	}

	status := http.StatusCreated
	if outcome == domain.OutcomeAlreadyPresent {
		status = http.StatusOK
	}
	log.Printf("playlist %s: song %s %s", playlistID, req.SongID, outcome)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"status": string(outcome)})
}

func callerIDFromContext(r *http.Request) *uuid.UUID {
	if id, ok := r.Context().Value(middleware.ContextKeyUserID).(uuid.UUID); ok {
		return &id
	}
	return nil
}

func writePlaylistError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	message := "internal server error"
	switch {
	case errors.Is(err, domain.ErrValidation):
		status, message = http.StatusBadRequest, err.Error()
	case errors.Is(err, domain.ErrPlaylistNotFound), errors.Is(err, domain.ErrSongNotFound):
		status, message = http.StatusNotFound, err.Error()
	case errors.Is(err, domain.ErrNotOwner):
		status, message = http.StatusForbidden, "forbidden"
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
