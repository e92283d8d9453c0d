package gateway

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/soundstage/soundstage/internal/authz"
	"github.com/soundstage/soundstage/internal/gateway/middleware"
	account_http "github.com/soundstage/soundstage/internal/modules/account/interfaces/http"
	catalog_http "github.com/soundstage/soundstage/internal/modules/catalog/interfaces/http"
	event_http "github.com/soundstage/soundstage/internal/modules/event/interfaces/http"
	merch_http "github.com/soundstage/soundstage/internal/modules/merch/interfaces/http"
	notification_http "github.com/soundstage/soundstage/internal/modules/notification/interfaces/http"
	playlist_http "github.com/soundstage/soundstage/internal/modules/playlist/interfaces/http"
	search_http "github.com/soundstage/soundstage/internal/modules/search/interfaces/http"
	stats_http "github.com/soundstage/soundstage/internal/modules/stats/interfaces/http"
	subscription_http "github.com/soundstage/soundstage/internal/modules/subscription/interfaces/http"
)

// RouterConfig holds all the handlers and middleware needed for routing
type RouterConfig struct {
	AuthMiddleware      *middleware.AuthMiddleware
	AccountHandler      *account_http.AccountHandler
	SongHandler         *catalog_http.SongHandler
	PlaylistHandler     *playlist_http.PlaylistHandler
	EventHandler        *event_http.EventHandler
	MerchHandler        *merch_http.MerchHandler
	SearchHandler       *search_http.SearchHandler
	StatsHandler        *stats_http.StatsHandler
	NotificationHandler *notification_http.NotificationHandler
	SubscriptionHandler *subscription_http.SubscriptionHandler
}

// SetupRoutes creates and configures all application routes. Every
// state-mutating route goes through the permission gate; reads are public
// or flexible.
func SetupRoutes(config RouterConfig) *http.ServeMux {
	mux := http.NewServeMux()
	mw := config.AuthMiddleware

	// Health Check
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Prometheus Metrics Endpoint
	mux.Handle("/metrics", promhttp.Handler())

	// Account Routes
	mux.HandleFunc("POST /register", config.AccountHandler.Register)
	mux.HandleFunc("POST /login", config.AccountHandler.Login)
	mux.HandleFunc("POST /auth/google", config.AccountHandler.GoogleLogin)
	mux.Handle("GET /me", mw.RequireAuth(http.HandlerFunc(config.AccountHandler.Me)))
	mux.Handle("PATCH /users/profile", mw.RequirePermission(authz.ActionEditProfile, http.HandlerFunc(config.AccountHandler.UpdateProfile)))
	mux.Handle("POST /users/profile/avatar", mw.RequirePermission(authz.ActionEditProfile, http.HandlerFunc(config.AccountHandler.UploadAvatar)))
	mux.HandleFunc("GET /users/{username}/public", config.AccountHandler.GetPublicProfile)

	// Catalog Routes
	mux.HandleFunc("GET /songs", config.SongHandler.List)
	mux.HandleFunc("GET /songs/{id}", config.SongHandler.Get)
	mux.Handle("POST /songs", mw.RequirePermission(authz.ActionCreateSong, http.HandlerFunc(config.SongHandler.Create)))
	mux.HandleFunc("GET /artists", config.SongHandler.ListArtists)
	mux.HandleFunc("GET /artists/{username}", config.SongHandler.GetArtist)

	// Playlist Routes
	mux.Handle("GET /playlists", mw.FlexibleAuth(http.HandlerFunc(config.PlaylistHandler.List)))
	mux.Handle("GET /playlists/{id}", mw.FlexibleAuth(http.HandlerFunc(config.PlaylistHandler.Get)))
	mux.Handle("POST /playlists", mw.RequirePermission(authz.ActionCreatePlaylist, http.HandlerFunc(config.PlaylistHandler.Create)))
	mux.Handle("POST /playlists/{id}/songs", mw.RequirePermission(authz.ActionAddPlaylistSong, http.HandlerFunc(config.PlaylistHandler.AddSong)))

	// Event Routes
	mux.HandleFunc("GET /events", config.EventHandler.List)
	mux.HandleFunc("GET /events/{id}", config.EventHandler.Get)
	mux.Handle("POST /events", mw.RequirePermission(authz.ActionCreateEvent, http.HandlerFunc(config.EventHandler.Create)))
	mux.HandleFunc("GET /locations", config.EventHandler.ListLocations)
	mux.Handle("POST /locations", mw.RequirePermission(authz.ActionCreateEvent, http.HandlerFunc(config.EventHandler.CreateLocation)))

	// Merch Routes
	mux.HandleFunc("GET /merch", config.MerchHandler.List)
	mux.HandleFunc("GET /merch/{id}", config.MerchHandler.Get)
	mux.Handle("POST /merch", mw.RequirePermission(authz.ActionCreateMerch, http.HandlerFunc(config.MerchHandler.Create)))

	// Search
	mux.HandleFunc("GET /search", config.SearchHandler.Search)

	// Stats Routes
	mux.HandleFunc("GET /stats/overview", config.StatsHandler.Overview)
	mux.Handle("GET /dashboard", mw.RequireAuth(http.HandlerFunc(config.StatsHandler.Dashboard)))

	// Notification Routes
	mux.Handle("GET /notifications", mw.RequireAuth(http.HandlerFunc(config.NotificationHandler.ListNotifications)))
	mux.Handle("PATCH /notifications/{id}/read", mw.RequireAuth(http.HandlerFunc(config.NotificationHandler.MarkAsRead)))
	mux.Handle("PATCH /notifications/read-all", mw.RequireAuth(http.HandlerFunc(config.NotificationHandler.MarkAllAsRead)))
	mux.Handle("GET /notifications/unread-count", mw.RequireAuth(http.HandlerFunc(config.NotificationHandler.UnreadCount)))
	mux.Handle("GET /ws", mw.RequireAuth(http.HandlerFunc(config.NotificationHandler.Subscribe)))

	// Subscription Routes
	mux.Handle("POST /subscriptions", mw.RequirePermission(authz.ActionSubscribe, http.HandlerFunc(config.SubscriptionHandler.CreateOrder)))
	mux.Handle("POST /subscriptions/{id}/verify", mw.RequirePermission(authz.ActionSubscribe, http.HandlerFunc(config.SubscriptionHandler.VerifyPayment)))
	mux.Handle("GET /subscriptions", mw.RequireAuth(http.HandlerFunc(config.SubscriptionHandler.ListOrders)))

	return mux
}
