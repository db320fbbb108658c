package httpapi

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"foodpos/logger"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
)

func NewRouter(handler *Handler, log *slog.Logger) http.Handler {
	r := mux.NewRouter()
	handler.RegisterRoutes(r)
	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "not found"})
	})
	return cors.Default().Handler(logger.Middleware(log)(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		if len(req.URL.Path) > 1 {
			req.URL.Path = strings.TrimRight(req.URL.Path, "/")
		}
		r.ServeHTTP(w, req)
	})))
}

func NewServer(addr string, handler http.Handler, readTimeout, writeTimeout time.Duration) *http.Server {
	return &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
	}
}
