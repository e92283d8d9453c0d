package http

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/soundstage/soundstage/internal/gateway/middleware"
	"github.com/soundstage/soundstage/internal/modules/catalog/application"
	"github.com/soundstage/soundstage/internal/modules/catalog/domain"
	eventDomain "github.com/soundstage/soundstage/internal/modules/event/domain"
)

const songListCacheKey = "catalog:songs"

// EventFinder supplies an artist's credited events for the artist page
type EventFinder interface {
	ListByArtist(ctx context.Context, artistID uuid.UUID) ([]eventDomain.Event, error)
}

type SongHandler struct {
	service     *application.SongService
	eventFinder EventFinder
	redisClient *redis.Client
}

func NewSongHandler(service *application.SongService, eventFinder EventFinder, redisClient *redis.Client) *SongHandler {
	return &SongHandler{
		service:     service,
		eventFinder: eventFinder,
		redisClient: redisClient,
	}
}

func (h *SongHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value(middleware.ContextKeyUserID).(uuid.UUID)
	if !ok {
		http.Error(w, `{"error": "user not authenticated"}`, http.StatusUnauthorized)
		return
	}

	var req application.CreateSongRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"invalid request body"}`, http.StatusBadRequest)
		return
	}

	song, err := h.service.CreateSong(r.Context(), req, userID)
	if err != nil {
		if errors.Is(err, domain.ErrValidation) {
			http.Error(w, `{"error": "song name is required"}`, http.StatusBadRequest)
			return
		}
		http.Error(w, `{"error": "internal server error"}`, http.StatusInternalServerError)
		return
	}

	// Stale list entries are dropped so the new song shows up immediately.
	if h.redisClient != nil {
		h.redisClient.Del(context.Background(), songListCacheKey)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(song)
}

func (h *SongHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		http.Error(w, `{"error":"invalid id"}`, http.StatusBadRequest)
		return
	}

	song, err := h.service.GetSong(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrSongNotFound) {
			http.Error(w, `{"error": "song not found"}`, http.StatusNotFound)
			return
		}
		http.Error(w, `{"error": "internal server error"}`, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(song)
}

func (h *SongHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := domain.SongFilter{
		Search: q.Get("search"),
		Limit:  parseIntDefault(q.Get("limit"), 50),
		Offset: parseIntDefault(q.Get("offset"), 0),
	}

	// Cache only the unfiltered first page, which is the hot path.
	cacheable := h.redisClient != nil && filter.Search == "" && filter.Offset == 0 && filter.Limit == 50
	if cacheable {
		if val, err := h.redisClient.Get(r.Context(), songListCacheKey).Result(); err == nil {
			w.Header().Set("Content-Type", "application/json")
			w.Header().Set("X-Cache", "HIT")
			w.Write([]byte(val))
			return
		}
	}

	songs, total, err := h.service.ListSongs(r.Context(), filter)
	if err != nil {
		log.Printf("[SongHandler.List] %v", err)
		http.Error(w, `{"error": "internal server error"}`, http.StatusInternalServerError)
		return
	}

	response := map[string]interface{}{
		"songs":  songs,
		"total":  total,
		"limit":  filter.Limit,
		"offset": filter.Offset,
	}

	if cacheable {
		go func() {
			jsonBytes, _ := json.Marshal(response)
			h.redisClient.Set(context.Background(), songListCacheKey, jsonBytes, 10*time.Minute)
		}()
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Cache", "MISS")
	json.NewEncoder(w).Encode(response)
}

func (h *SongHandler) ListArtists(w http.ResponseWriter, r *http.Request) {
	artists, err := h.service.ListArtists(r.Context())
	if err != nil {
		log.Printf("[SongHandler.ListArtists] %v", err)
		http.Error(w, `{"error": "internal server error"}`, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{"artists": artists})
}

func (h *SongHandler) GetArtist(w http.ResponseWriter, r *http.Request) {
	username := r.PathValue("username")
	if username == "" {
		http.Error(w, `{"error":"username is required"}`, http.StatusBadRequest)
		return
	}

	artist, err := h.service.GetArtist(r.Context(), username)
	if err != nil {
		if errors.Is(err, domain.ErrArtistNotFound) {
			http.Error(w, `{"error": "artist not found"}`, http.StatusNotFound)
			return
		}
		http.Error(w, `{"error": "internal server error"}`, http.StatusInternalServerError)
		return
	}

	events, err := h.eventFinder.ListByArtist(r.Context(), artist.UserID)
	if err != nil {
		log.Printf("[SongHandler.GetArtist] fetch events: %v", err)
		events = nil
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"artist": artist,
		"events": events,
	})
}

func parseIntDefault(s string, def int) int {
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return def
	}
	return n
}
