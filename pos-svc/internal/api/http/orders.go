package httpapi

import (
	"net/http"
	"strings"

	"foodpos/pos-svc/internal/domain"
	"foodpos/pos-svc/internal/service"
)

type statusRequest struct {
	Status domain.OrderStatus `json:"status"`
}

type bulkStatusRequest struct {
	IDs    []int              `json:"ids"`
	Status domain.OrderStatus `json:"status"`
}

func (h *Handler) getOrders(w http.ResponseWriter, r *http.Request) {
	var statuses []domain.OrderStatus
	if values, ok := r.URL.Query()["status"]; ok {
		var err error
		statuses, err = service.ParseStatusFilter(strings.Join(values, ","))
		if err != nil {
			h.writeError(w, r, err)
			return
		}
	}
	orders, err := h.Orders.List(r.Context(), statuses)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, orders)
}

func (h *Handler) createOrder(w http.ResponseWriter, r *http.Request) {
	var req service.CreateOrderRequest
	if err := decodeJSON(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	order, err := h.Orders.Create(r.Context(), req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, order)
}

func (h *Handler) getOrder(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt(r, "id")
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	order, err := h.Orders.Get(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, order)
}

func (h *Handler) updateOrderStatus(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt(r, "id")
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	var req statusRequest
	if err := decodeJSON(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	order, err := h.Orders.UpdateStatus(r.Context(), id, req.Status)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, order)
}

func (h *Handler) deleteOrder(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt(r, "id")
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if err := h.Orders.Delete(r.Context(), id); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) bulkAdvanceOrders(w http.ResponseWriter, r *http.Request) {
	var req bulkStatusRequest
	if err := decodeJSON(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	results, err := h.Orders.BulkAdvance(r.Context(), req.IDs, req.Status)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	updated := 0
	for _, res := range results {
		if res.Status == "ok" {
			updated++
		}
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"processed": results,
		"updated":   updated,
		"failed":    len(results) - updated,
	})
}
