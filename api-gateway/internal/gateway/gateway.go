package gateway

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"foodpos/logger"

	"github.com/gorilla/mux"
)

type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

type Config struct {
	PosSvcURL       string
	AnalyticsSvcURL string
	MediaRoot       string
	FrontendDir     string
}

type Gateway struct {
	config Config
	client HTTPClient
	log    *slog.Logger
}

// posPrefixes are the /api paths served by pos-svc.
var posPrefixes = []string{
	"/api/categories",
	"/api/menu-items",
	"/api/orders",
	"/api/admin/",
	"/api/tables/",
	"/api/settings",
}

func NewGateway(config Config, client HTTPClient, log *slog.Logger) *Gateway {
	if log == nil {
		log = slog.Default()
	}
	return &Gateway{
		config: config,
		client: client,
		log:    log,
	}
}

func (g *Gateway) HealthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":    "healthy",
		"service":   "api-gateway",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

func (g *Gateway) ProxyRequest(w http.ResponseWriter, r *http.Request, targetURL string) {
	log := logger.FromContext(r.Context(), g.log)

	url := strings.TrimRight(targetURL, "/") + r.URL.Path
	if r.URL.RawQuery != "" {
		url += "?" + r.URL.RawQuery
	}

	req, err := http.NewRequestWithContext(r.Context(), r.Method, url, r.Body)
	if err != nil {
		log.Error("failed to build upstream request", "url", url, "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}
	for k, v := range r.Header {
		req.Header[k] = v
	}
	if id := logger.RequestID(r.Context()); id != "" {
		req.Header.Set(logger.RequestIDHeader, id)
	}

	resp, err := g.client.Do(req)
	if err != nil {
		log.Error("upstream request failed", "upstream", targetURL, "path", r.URL.Path, "error", err)
		writeJSON(w, http.StatusBadGateway, map[string]string{"error": "upstream unavailable"})
		return
	}
	defer resp.Body.Close()

	for k, v := range resp.Header {
		// rs/cors on the gateway owns these.
		if strings.HasPrefix(k, "Access-Control-") {
			continue
		}
		w.Header()[k] = v
	}
	w.WriteHeader(resp.StatusCode)

	if _, err := io.Copy(w, resp.Body); err != nil {
		log.Warn("failed to copy upstream response", "path", r.URL.Path, "error", err)
	}
}

func (g *Gateway) RouteHandler(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Path

	if path == "/api/analytics" || strings.HasPrefix(path, "/api/analytics/") {
		g.ProxyRequest(w, r, g.config.AnalyticsSvcURL)
		return
	}

	for _, prefix := range posPrefixes {
		if strings.HasPrefix(path, prefix) {
			g.ProxyRequest(w, r, g.config.PosSvcURL)
			return
		}
	}

	logger.FromContext(r.Context(), g.log).Info("unmatched API route", "path", path)
	writeJSON(w, http.StatusNotFound, map[string]string{"error": "API route not found"})
}

// FrontendHandler serves files from the frontend directory and falls back to
// index.html so client side routes load the app.
func (g *Gateway) FrontendHandler(w http.ResponseWriter, r *http.Request) {
	dir := g.config.FrontendDir
	name := filepath.Join(dir, filepath.FromSlash(filepath.Clean("/"+r.URL.Path)))
	if info, err := os.Stat(name); err == nil && !info.IsDir() {
		http.ServeFile(w, r, name)
		return
	}
	http.ServeFile(w, r, filepath.Join(dir, "index.html"))
}

func (g *Gateway) SetupRoutes() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/health", g.HealthCheck).Methods("GET")
	r.PathPrefix("/api/").HandlerFunc(g.RouteHandler)
	r.PathPrefix("/media/").Handler(http.StripPrefix("/media/", http.FileServer(http.Dir(g.config.MediaRoot))))
	r.PathPrefix("/").HandlerFunc(g.FrontendHandler)
	return r
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
