package http

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/soundstage/soundstage/internal/gateway/middleware"
	accountDomain "github.com/soundstage/soundstage/internal/modules/account/domain"
	"github.com/soundstage/soundstage/internal/modules/stats/application"
)

const overviewCacheKey = "stats:overview"

type StatsHandler struct {
	service     *application.StatsService
	redisClient *redis.Client
}

func NewStatsHandler(service *application.StatsService, redisClient *redis.Client) *StatsHandler {
	return &StatsHandler{service: service, redisClient: redisClient}
}

func (h *StatsHandler) Overview(w http.ResponseWriter, r *http.Request) {
	if h.redisClient != nil {
		cached, err := h.redisClient.Get(r.Context(), overviewCacheKey).Result()
		if err == nil {
			w.Header().Set("Content-Type", "application/json")
			w.Header().Set("X-Cache", "HIT")
			w.Write([]byte(cached))
			return
		}
	}

	overview, err := h.service.Overview(r.Context())
	if err != nil {
		http.Error(w, `{"error": "internal server error"}`, http.StatusInternalServerError)
		return
	}

	payload, err := json.Marshal(overview)
	if err != nil {
		http.Error(w, `{"error": "internal server error"}`, http.StatusInternalServerError)
		return
	}

	if h.redisClient != nil {
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			if err := h.redisClient.Set(ctx, overviewCacheKey, payload, 5*time.Minute).Err(); err != nil {
				log.Printf("failed to cache platform overview: %v", err)
			}
		}()
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Cache", "MISS")
	w.Write(payload)
}

func (h *StatsHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value(middleware.ContextKeyUserID).(uuid.UUID)
	if !ok {
		http.Error(w, `{"error": "unauthorized"}`, http.StatusUnauthorized)
		return
	}
	role, _ := r.Context().Value(middleware.ContextKeyRole).(accountDomain.Role)

	dashboard, err := h.service.Dashboard(r.Context(), userID, role)
	if err != nil {
		http.Error(w, `{"error": "internal server error"}`, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(dashboard)
}
