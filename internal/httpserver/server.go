package httpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"github.com/adaptfit/macrohub/internal/auth"
	"github.com/adaptfit/macrohub/internal/blob"
	"github.com/adaptfit/macrohub/internal/config"
	"github.com/adaptfit/macrohub/internal/macros"
	"github.com/adaptfit/macrohub/internal/profiles"
	"github.com/adaptfit/macrohub/internal/reports"
	"github.com/adaptfit/macrohub/internal/storage"
	"github.com/adaptfit/macrohub/internal/storage/memory"
	"github.com/adaptfit/macrohub/internal/storage/postgres"
	"github.com/adaptfit/macrohub/internal/weights"
)

// Server представляет HTTP сервер
type Server struct {
	config         *config.Config
	mux            *http.ServeMux
	storage        storage.Storage
	authMiddleware *auth.Middleware
}

// New создаёт новый HTTP сервер
func New(cfg *config.Config) *Server {
	s := &Server{
		config: cfg,
		mux:    http.NewServeMux(),
	}

	// Инициализируем storage
	s.initStorage()

	// Регистрируем маршруты
	s.routes()
	return s
}

// initStorage инициализирует storage (Memory или Postgres)
func (s *Server) initStorage() {
	if s.config.DatabaseURL == "" {
		log.Println("Используется in-memory storage")
		s.storage = memory.New()
	} else {
		log.Println("Подключение к PostgreSQL...")
		ctx := context.Background()
		pgStorage, err := postgres.New(ctx, s.config.DatabaseURL)
		if err != nil {
			log.Printf("Ошибка подключения к PostgreSQL: %v", err)
			log.Println("Fallback на in-memory storage")
			s.storage = memory.New()
		} else {
			log.Println("PostgreSQL подключен успешно")
			s.storage = pgStorage
		}
	}
}

// routes регистрирует маршруты
func (s *Server) routes() {
	// Health check (no auth required)
	s.mux.HandleFunc("/healthz", s.handleHealthz)

	// Auth API (no auth required)
	authService := auth.NewService(s.config, s.storage)
	authHandler := auth.NewHandlers(authService)
	s.authMiddleware = auth.NewMiddleware(s.config, authService)

	// POST /v1/auth/register - create account, issue JWT
	s.mux.HandleFunc("POST /v1/auth/register", authHandler.HandleRegister)

	// POST /v1/auth/login - verify credentials, issue JWT
	s.mux.HandleFunc("POST /v1/auth/login", authHandler.HandleLogin)

	// Body Profile API
	// s.storage реализует и Storage и ProfilesStorage
	profilesStorage := s.storage.(storage.ProfilesStorage)
	weightsStorage := s.storage.(storage.WeightsStorage)

	profileService := profiles.NewService(profilesStorage)
	profileHandler := profiles.NewHandler(profileService)

	// GET /v1/profile - get current user's body profile
	s.mux.HandleFunc("GET /v1/profile", profileHandler.HandleGet)

	// PUT /v1/profile - create or replace body profile
	s.mux.HandleFunc("PUT /v1/profile", profileHandler.HandleUpdate)

	// Weights API
	weightsService := weights.NewService(weightsStorage)

	// POST /v1/weights - log a weight entry (guarded against typos)
	s.mux.HandleFunc("POST /v1/weights", weights.HandleCreate(weightsService))

	// GET /v1/weights - list weight entries
	s.mux.HandleFunc("GET /v1/weights", weights.HandleList(weightsService))

	// GET /v1/weights/stats - aggregate history stats
	s.mux.HandleFunc("GET /v1/weights/stats", weights.HandleStats(weightsService))

	// DELETE /v1/weights/{id} - delete an entry
	s.mux.HandleFunc("DELETE /v1/weights/{id}", weights.HandleDelete(weightsService))

	// Macros API
	macrosService := macros.NewService(profilesStorage, weightsStorage)

	// GET /v1/macros/plan - compute the adaptive macro plan
	s.mux.HandleFunc("GET /v1/macros/plan", macros.HandlePlan(macrosService))

	// POST /v1/macros/check-entry - dry-run plausibility check
	s.mux.HandleFunc("POST /v1/macros/check-entry", macros.HandleCheckEntry(macrosService))

	// Reports API
	reportsBlobStore := s.initBlobStore()
	reportsService := reports.NewService(
		s.storage.(storage.ReportsStorage),
		weightsStorage,
		profilesStorage,
		reportsBlobStore,
		s.config.ReportsMaxRangeDays,
		s.config.Blob.S3.PresignTTLSeconds,
		s.config.Blob.S3.PublicBaseURL,
		s.config.Blob.S3.PreferPublicURL,
	)
	reportsHandler := reports.NewHandlers(reportsService)

	// POST /v1/reports - generate weight progress report (pdf/csv)
	s.mux.HandleFunc("POST /v1/reports", reportsHandler.HandleCreate)

	// GET /v1/reports - list reports
	s.mux.HandleFunc("GET /v1/reports", reportsHandler.HandleList)

	// GET /v1/reports/{id}/download - download report
	s.mux.HandleFunc("GET /v1/reports/{id}/download", reportsHandler.HandleDownload)

	// DELETE /v1/reports/{id} - delete report
	s.mux.HandleFunc("DELETE /v1/reports/{id}", reportsHandler.HandleDelete)
}

// initBlobStore initializes the reports blob store per BLOB_MODE.
// Returns nil when resolved mode is local (reports are stored inline).
func (s *Server) initBlobStore() blob.Store {
	log.Printf("INFO blob: initializing reports store (BLOB_MODE=%s)", s.config.Blob.Mode)
	store, mode, err := blob.NewBlobStore(s.config.Blob, log.Default())
	if err != nil {
		log.Fatalf("FATAL blob: failed to initialize reports store: %v", err)
	}
	log.Printf("INFO blob: reports blob mode: %s", mode)
	return store
}

// handleHealthz возвращает статус сервера
func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{
		"status": "ok",
	})
}

// handler builds the middleware chain (outermost first): CORS → Rate Limit → Auth → Router
func (s *Server) handler() http.Handler {
	var handler http.Handler = s.mux
	if s.authMiddleware != nil {
		if s.config.AuthRequired {
			handler = s.authMiddleware.RequireAuth(handler)
		} else {
			handler = s.authMiddleware.OptionalAuth(handler)
		}
	}
	handler = RateLimitMiddleware(s.config, handler)
	return CORSMiddleware(s.config, handler)
}

// Start запускает HTTP сервер
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.config.Port)
	handler := s.handler()

	log.Printf("Сервер запущен на http://localhost%s\n", addr)
	log.Printf("Health check: http://localhost%s/healthz\n", addr)
	log.Printf("Macros API: http://localhost%s/v1/macros/plan\n", addr)

	return http.ListenAndServe(addr, handler)
}

// Close закрывает storage и освобождает ресурсы
func (s *Server) Close() error {
	if s.storage != nil {
		return s.storage.Close()
	}
	return nil
}
