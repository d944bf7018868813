package api

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/gorilla/handlers"

	"github.com/parleychat/parley/internal/config"
	"github.com/parleychat/parley/internal/database"
	"github.com/parleychat/parley/internal/gateway"
	"github.com/parleychat/parley/internal/rooms"
	"github.com/parleychat/parley/internal/stats"
)

type ParleyApp struct {
	log            *log.Logger
	db             database.ParleyRepository
	mux            *http.Server
	rooms          *rooms.Coordinator
	gateway        *gateway.Gateway
	stats          stats.StatsProvider
	signingKey     []byte
	allowedOrigins []string
}

func NewParleyApp(mux *http.ServeMux, logger *log.Logger, coordinator *rooms.Coordinator, gw *gateway.Gateway, db database.ParleyRepository, sp stats.StatsProvider, cfg *config.Config) *ParleyApp {
	s := &ParleyApp{
		log:            logger,
		db:             db,
		rooms:          coordinator,
		gateway:        gw,
		stats:          sp,
		signingKey:     cfg.SigningKey,
		allowedOrigins: cfg.AllowedOrigins,
	}

	mux.HandleFunc("POST /api/auth/register", s.createAccount)
	mux.HandleFunc("POST /api/auth/login", s.login)
	mux.HandleFunc("GET /api/auth/session", s.authMiddleware(s.session))
	mux.Handle("GET /api/auth/logout", s.authMiddleware(s.logout))
	mux.Handle("/api/account", s.authMiddleware(s.account))
	mux.Handle("POST /api/rooms", s.authMiddleware(s.createRoom))
	mux.Handle("GET /api/rooms", s.authMiddleware(s.getRoom))
	mux.Handle("DELETE /api/rooms", s.authMiddleware(s.deleteRoom))
	mux.Handle("POST /api/rooms/join", s.authMiddleware(s.joinRoom))
	mux.Handle("POST /api/rooms/leave", s.authMiddleware(s.leaveRoom))
	mux.Handle("GET /api/rooms/members", s.authMiddleware(s.listMembers))
	mux.Handle("POST /api/rooms/members/status", s.authMiddleware(s.updateMemberStatus))
	mux.Handle("POST /api/rooms/roles", s.authMiddleware(s.assignRole))
	mux.Handle("DELETE /api/rooms/roles", s.authMiddleware(s.removeRole))
	mux.Handle("POST /api/rooms/subscription", s.authMiddleware(s.upgradeSubscription))
	mux.Handle("POST /api/messages", s.authMiddleware(s.sendMessage))
	mux.Handle("GET /api/messages", s.authMiddleware(s.getMessages))
	mux.HandleFunc("GET /api/tiers", s.listTiers)
	mux.HandleFunc("GET /api/categories", s.listCategories)
	mux.Handle("POST /api/friends", s.authMiddleware(s.addFriend))
	mux.Handle("GET /ws", s.authMiddleware(s.serveWs))

	h := handlers.CORS(
		handlers.MaxAge(3600),
		handlers.AllowedOrigins(cfg.AllowedOrigins),
		handlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions}),
		handlers.AllowedHeaders([]string{"Origin", "Content-Type", "Accept"}),
		handlers.AllowCredentials(),
	)(mux)

	h = s.errorHandler(h)

	srv := &http.Server{
		Addr:    cfg.ServerAddr,
		Handler: h,
	}

	s.mux = srv
	return s
}

func (s *ParleyApp) Start() error {
	s.log.Printf("starting server on %s\n", s.mux.Addr)
	return s.mux.ListenAndServe()
}

func (s *ParleyApp) Shutdown(ctx context.Context) error {
	s.log.Println("shutting down HTTP server...")
	if err := s.mux.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	return nil
}
