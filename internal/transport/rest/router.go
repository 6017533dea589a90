package rest

import (
	"net/http"
	"os"

	"github.com/gorilla/mux"

	"specanalyzer/internal/service"
	"specanalyzer/internal/transport/rest/handler"
)

// Container holds all dependencies for the router
type Container struct {
	AnalysisService *service.AnalysisService
	TemplateService *service.TemplateService
}

// NewRouter creates the API router with all endpoints
func NewRouter(c *Container) http.Handler {
	r := mux.NewRouter()

	analysisHandler := handler.NewAnalysisHandler(c.AnalysisService)
	templateHandler := handler.NewTemplateHandler(c.TemplateService)

	// CORS middleware (apply first)
	r.Use(corsMiddleware)

	// API v1 routes
	v1 := r.PathPrefix("/v1").Subrouter()

	v1.HandleFunc("/analyze", analysisHandler.Analyze).Methods("POST", "OPTIONS")
	v1.HandleFunc("/sessions", analysisHandler.ListSessions).Methods("GET", "OPTIONS")
	v1.HandleFunc("/sessions/{sessionId}", analysisHandler.GetSession).Methods("GET", "OPTIONS")
	v1.HandleFunc("/sessions/{sessionId}", analysisHandler.DeleteSession).Methods("DELETE", "OPTIONS")
	v1.HandleFunc("/stats", analysisHandler.GetStats).Methods("GET", "OPTIONS")
	v1.HandleFunc("/templates", templateHandler.List).Methods("GET", "OPTIONS")
	v1.HandleFunc("/templates/{templateName}", templateHandler.Get).Methods("GET", "OPTIONS")

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	return r
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		allowedOrigins := os.Getenv("CORS_ALLOWED_ORIGINS")
		if allowedOrigins == "" {
			allowedOrigins = "*"
		}

		allowedMethods := os.Getenv("CORS_ALLOWED_METHODS")
		if allowedMethods == "" {
			allowedMethods = "GET, POST, PUT, DELETE, OPTIONS"
		}

		allowedHeaders := os.Getenv("CORS_ALLOWED_HEADERS")
		if allowedHeaders == "" {
			allowedHeaders = "Content-Type, Authorization"
		}

		w.Header().Set("Access-Control-Allow-Origin", allowedOrigins)
		w.Header().Set("Access-Control-Allow-Methods", allowedMethods)
		w.Header().Set("Access-Control-Allow-Headers", allowedHeaders)

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
