package httpapi

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	"foodpos/pos-svc/internal/domain"
	"foodpos/pos-svc/internal/service"
)

var allowedImageTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// categoryListing is the customer view of a category; is_active is only
// shown with ?all=true.
type categoryListing struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

func (h *Handler) getCategories(w http.ResponseWriter, r *http.Request) {
	includeInactive, _ := strconv.ParseBool(r.URL.Query().Get("all"))
	categories, err := h.Catalog.ListCategories(r.Context(), !includeInactive)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if includeInactive {
		writeJSON(w, http.StatusOK, categories)
		return
	}

	listing := make([]categoryListing, 0, len(categories))
	for _, c := range categories {
		listing = append(listing, categoryListing{ID: c.ID, Name: c.Name})
	}
	writeJSON(w, http.StatusOK, listing)
}

func (h *Handler) getCategory(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt(r, "id")
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	category, err := h.Catalog.GetCategory(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, category)
}

func (h *Handler) createCategory(w http.ResponseWriter, r *http.Request) {
	var req service.CategoryRequest
	if err := decodeJSON(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	category, err := h.Catalog.CreateCategory(r.Context(), req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, category)
}

func (h *Handler) updateCategory(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt(r, "id")
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	var req service.CategoryRequest
	if err := decodeJSON(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	category, err := h.Catalog.UpdateCategory(r.Context(), id, req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, category)
}

func (h *Handler) deleteCategory(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt(r, "id")
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if err := h.Catalog.DeleteCategory(r.Context(), id); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) getMenuItems(w http.ResponseWriter, r *http.Request) {
	categoryID := 0
	if raw := r.URL.Query().Get("category"); raw != "" {
		id, err := strconv.Atoi(raw)
		if err != nil {
			h.writeError(w, r, domain.NewValidationError("category", "must be a number"))
			return
		}
		categoryID = id
	}

	items, err := h.Catalog.ListMenuItems(r.Context(), categoryID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (h *Handler) getMenuItem(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt(r, "id")
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	item, err := h.Catalog.GetMenuItem(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (h *Handler) createMenuItem(w http.ResponseWriter, r *http.Request) {
	var req service.MenuItemRequest
	if err := decodeJSON(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	item, err := h.Catalog.CreateMenuItem(r.Context(), req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, item)
}

func (h *Handler) updateMenuItem(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt(r, "id")
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	var req service.MenuItemRequest
	if err := decodeJSON(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	item, err := h.Catalog.UpdateMenuItem(r.Context(), id, req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (h *Handler) deleteMenuItem(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt(r, "id")
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if err := h.Catalog.DeleteMenuItem(r.Context(), id); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) uploadMenuItemImage(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt(r, "id")
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if _, err := h.Catalog.GetMenuItem(r.Context(), id); err != nil {
		h.writeError(w, r, err)
		return
	}

	if err := r.ParseMultipartForm(10 << 20); err != nil {
		h.writeError(w, r, domain.NewValidationError("image", "file too large or malformed form"))
		return
	}
	file, header, err := r.FormFile("image")
	if err != nil {
		h.writeError(w, r, domain.NewValidationError("image", "this field is required"))
		return
	}
	defer file.Close()

	ext, ok := allowedImageTypes[header.Header.Get("Content-Type")]
	if !ok {
		h.writeError(w, r, domain.NewValidationError("image", "only JPEG, PNG, GIF and WebP are allowed"))
		return
	}

	uploadDir := filepath.Join(h.MediaRoot, "menu_items")
	if err := os.MkdirAll(uploadDir, 0755); err != nil {
		h.writeError(w, r, err)
		return
	}

	filename := "item_" + strconv.Itoa(id) + ext
	if err := saveFile(filepath.Join(uploadDir, filename), file); err != nil {
		h.writeError(w, r, err)
		return
	}

	imageURL := "/media/menu_items/" + filename
	if err := h.Catalog.UpdateMenuItemImage(r.Context(), id, imageURL); err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"message": "Image uploaded successfully",
		"image":   imageURL,
	})
}

func (h *Handler) addOption(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt(r, "id")
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	var req service.OptionRequest
	if err := decodeJSON(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	option, err := h.Catalog.AddOption(r.Context(), id, req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, option)
}

func (h *Handler) deleteOption(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt(r, "id")
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	optionID, err := pathInt(r, "optionId")
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if err := h.Catalog.DeleteOption(r.Context(), id, optionID); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// saveFile writes src to path. A failed copy or close leaves no file behind.
func saveFile(path string, src io.Reader) error {
	dst, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		os.Remove(path)
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := dst.Close(); err != nil {
		os.Remove(path)
		return fmt.Errorf("close %s: %w", path, err)
	}
	return nil
}
