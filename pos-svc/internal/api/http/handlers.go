package httpapi

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"foodpos/logger"
	"foodpos/pos-svc/internal/domain"
	"foodpos/pos-svc/internal/service"

	"github.com/gorilla/mux"
)

type Handler struct {
	Catalog   service.CatalogServiceInterface
	Orders    service.OrderServiceInterface
	Settings  service.SettingsServiceInterface
	Tables    service.TableServiceInterface
	MediaRoot string
	Log       *slog.Logger
}

func NewHandler(catalog service.CatalogServiceInterface, orders service.OrderServiceInterface,
	settings service.SettingsServiceInterface, tables service.TableServiceInterface,
	mediaRoot string, log *slog.Logger) *Handler {
	if log == nil {
		log = slog.Default()
	}
	return &Handler{
		Catalog:   catalog,
		Orders:    orders,
		Settings:  settings,
		Tables:    tables,
		MediaRoot: mediaRoot,
		Log:       log,
	}
}

// RegisterRoutes mounts every endpoint without a trailing slash. NewRouter
// strips the slash clients add, so "/api/orders/" and "/api/orders" match.
func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/health", h.healthCheck).Methods("GET")

	r.HandleFunc("/api/categories", h.getCategories).Methods("GET")
	r.HandleFunc("/api/categories", h.createCategory).Methods("POST")
	r.HandleFunc("/api/categories/{id:[0-9]+}", h.getCategory).Methods("GET")
	r.HandleFunc("/api/categories/{id:[0-9]+}", h.updateCategory).Methods("PUT")
	r.HandleFunc("/api/categories/{id:[0-9]+}", h.deleteCategory).Methods("DELETE")

	r.HandleFunc("/api/menu-items", h.getMenuItems).Methods("GET")
	r.HandleFunc("/api/menu-items", h.createMenuItem).Methods("POST")
	r.HandleFunc("/api/menu-items/{id:[0-9]+}", h.getMenuItem).Methods("GET")
	r.HandleFunc("/api/menu-items/{id:[0-9]+}", h.updateMenuItem).Methods("PUT")
	r.HandleFunc("/api/menu-items/{id:[0-9]+}", h.deleteMenuItem).Methods("DELETE")
	r.HandleFunc("/api/menu-items/{id:[0-9]+}/image", h.uploadMenuItemImage).Methods("POST")
	r.HandleFunc("/api/menu-items/{id:[0-9]+}/options", h.addOption).Methods("POST")
	r.HandleFunc("/api/menu-items/{id:[0-9]+}/options/{optionId:[0-9]+}", h.deleteOption).Methods("DELETE")

	r.HandleFunc("/api/orders", h.getOrders).Methods("GET")
	r.HandleFunc("/api/orders", h.createOrder).Methods("POST")
	r.HandleFunc("/api/orders/{id:[0-9]+}", h.getOrder).Methods("GET")
	r.HandleFunc("/api/orders/{id:[0-9]+}", h.updateOrderStatus).Methods("PATCH")
	r.HandleFunc("/api/orders/{id:[0-9]+}", h.deleteOrder).Methods("DELETE")
	r.HandleFunc("/api/admin/orders/status", h.bulkAdvanceOrders).Methods("POST")

	r.HandleFunc("/api/tables/{number:[0-9]+}/qrcode", h.getTableQRCode).Methods("GET")

	r.HandleFunc("/api/settings", h.getSettings).Methods("GET")
	r.HandleFunc("/api/settings", h.updateSettings).Methods("PUT")
}

func (h *Handler) healthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"service":   "pos-svc",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

type errorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

// writeError maps the domain error taxonomy onto HTTP status codes.
// Unclassified errors are logged and hidden behind a generic 500.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: verr.Message, Field: verr.Field})
	case errors.Is(err, domain.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrConflict):
		writeJSON(w, http.StatusConflict, errorResponse{Error: err.Error()})
	default:
		logger.FromContext(r.Context(), h.Log).Error("request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"error", err,
		)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal server error"})
	}
}

// decodeJSON reports a wrongly typed value against its JSON field path;
// anything else is a malformed body.
func decodeJSON(r *http.Request, dst interface{}) error {
	err := json.NewDecoder(r.Body).Decode(dst)
	if err == nil {
		return nil
	}
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		return domain.NewValidationError(typeErr.Field, "must be a %s, got %s", typeErr.Type, typeErr.Value)
	}
	return domain.NewValidationError("body", "invalid JSON: %v", err)
}

// pathInt reads a numeric route variable. Routes constrain them to digits,
// so failure only happens on overflow.
func pathInt(r *http.Request, name string) (int, error) {
	v, err := strconv.Atoi(mux.Vars(r)[name])
	if err != nil {
		return 0, domain.NewValidationError(name, "must be a number")
	}
	return v, nil
}
