package api

import (
	"database/sql"
	"net/http"

	"github.com/jlawman/investment-advisory/internal/advisor"
	"github.com/jlawman/investment-advisory/internal/auth"
	"github.com/jlawman/investment-advisory/internal/config"
	"github.com/jlawman/investment-advisory/internal/database"
	"github.com/jlawman/investment-advisory/internal/research"
	"log/slog"
)

// SetupRoutes configures all API routes
func SetupRoutes(mux *http.ServeMux, db *sql.DB, researcher research.Researcher, generator advisor.Generator, authCfg config.AuthConfig, logger *slog.Logger) {
	boardRepo := database.NewBoardRepository(db)
	portfolioRepo := database.NewPortfolioRepository(db)
	stockRepo := database.NewStockRepository(db)
	holdingRepo := database.NewHoldingRepository(db)
	recRepo := database.NewRecommendationRepository(db)
	inferenceLogRepo := database.NewInferenceLogRepository(db)

	boardHandler := NewBoardHandler(boardRepo, logger)
	portfolioHandler := NewPortfolioHandler(portfolioRepo, logger)
	holdingHandler := NewHoldingHandler(holdingRepo, portfolioRepo, stockRepo, logger)
	recommendationHandler := NewRecommendationHandler(researcher, generator, logger)
	savedRecommendationHandler := NewSavedRecommendationHandler(recRepo, boardRepo, stockRepo, logger)
	researchHandler := NewResearchHandler(researcher, logger)
	authHandler := NewAuthHandler(authCfg, logger)
	inferenceLogHandler := NewInferenceLogHandler(inferenceLogRepo, logger)

	// Identity middleware: resolves the caller from a Bearer token when
	// present, otherwise falls back to the demo user.
	identity := auth.IdentityMiddleware(authCfg)

	// Authentication routes (public)
	mux.HandleFunc("/api/auth/login", authHandler.Login)
	mux.HandleFunc("/api/auth/validate", func(w http.ResponseWriter, r *http.Request) {
		identity(http.HandlerFunc(authHandler.ValidateToken)).ServeHTTP(w, r)
	})

	// Board routes
	mux.HandleFunc("/api/boards", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodOptions {
			w.Header().Set("Access-Control-Allow-Origin", "*")
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PATCH, DELETE, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
			w.WriteHeader(http.StatusOK)
			return
		}
		identity(http.HandlerFunc(boardHandler.HandleBoards)).ServeHTTP(w, r)
	})

	// Portfolio routes
	mux.HandleFunc("/api/portfolios", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodOptions {
			w.Header().Set("Access-Control-Allow-Origin", "*")
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PATCH, DELETE, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
			w.WriteHeader(http.StatusOK)
			return
		}
		identity(http.HandlerFunc(portfolioHandler.HandlePortfolios)).ServeHTTP(w, r)
	})

	// Holding routes
	mux.HandleFunc("/api/portfolios/holdings", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodOptions {
			w.Header().Set("Access-Control-Allow-Origin", "*")
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
			w.WriteHeader(http.StatusOK)
			return
		}
		identity(http.HandlerFunc(holdingHandler.HandleHoldings)).ServeHTTP(w, r)
	})

	// Saved recommendation routes
	mux.HandleFunc("/api/portfolios/recommendations", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodOptions {
			w.Header().Set("Access-Control-Allow-Origin", "*")
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
			w.WriteHeader(http.StatusOK)
			return
		}
		identity(http.HandlerFunc(savedRecommendationHandler.HandleSavedRecommendations)).ServeHTTP(w, r)
	})

	// Recommendation pipeline route
	mux.HandleFunc("/api/recommendations", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodOptions {
			w.Header().Set("Access-Control-Allow-Origin", "*")
			w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
			w.WriteHeader(http.StatusOK)
			return
		}
		identity(http.HandlerFunc(recommendationHandler.GenerateRecommendations)).ServeHTTP(w, r)
	})

	// Deep research route
	mux.HandleFunc("/api/research", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodOptions {
			w.Header().Set("Access-Control-Allow-Origin", "*")
			w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
			w.WriteHeader(http.StatusOK)
			return
		}
		identity(http.HandlerFunc(researchHandler.DeepResearch)).ServeHTTP(w, r)
	})

	// Inference log routes (admin)
	mux.HandleFunc("/api/admin/inference-logs", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodOptions {
			w.Header().Set("Access-Control-Allow-Origin", "*")
			w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
			w.WriteHeader(http.StatusOK)
			return
		}
		identity(http.HandlerFunc(inferenceLogHandler.ListInferenceLogs)).ServeHTTP(w, r)
	})

	mux.HandleFunc("/api/admin/inference-logs/stats", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodOptions {
			w.Header().Set("Access-Control-Allow-Origin", "*")
			w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
			w.WriteHeader(http.StatusOK)
			return
		}
		identity(http.HandlerFunc(inferenceLogHandler.GetInferenceStats)).ServeHTTP(w, r)
	})

	// Health check
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		if err := database.HealthCheck(r.Context(), db); err != nil {
			logger.Error("health check failed", "error", err)
			writeError(w, http.StatusServiceUnavailable, "database unavailable")
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	// CORS preflight
	mux.HandleFunc("/api/", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodOptions {
			w.Header().Set("Access-Control-Allow-Origin", "*")
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PATCH, DELETE, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
			w.WriteHeader(http.StatusOK)
			return
		}
		http.NotFound(w, r)
	})
}
