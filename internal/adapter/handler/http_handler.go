package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/toomuch2learn/catalogue-service/internal/adapter/storage"
	"github.com/toomuch2learn/catalogue-service/internal/core/domain"
	"github.com/toomuch2learn/catalogue-service/internal/core/service"
)

// HTTPHandler serves the catalogue CRUD endpoints and the item list stream.
type HTTPHandler struct {
	catalogue   *service.CatalogueService
	files       *storage.FileStore
	streamDelay time.Duration
	log         *zap.Logger
}

func NewHTTPHandler(catalogue *service.CatalogueService, files *storage.FileStore, streamDelay time.Duration, log *zap.Logger) *HTTPHandler {
	return &HTTPHandler{catalogue: catalogue, files: files, streamDelay: streamDelay, log: log}
}

type itemRequest struct {
	SKU         string   `json:"sku"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Price       *float64 `json:"price"`
	Inventory   *int     `json:"inventory"`
}

// validate returns one error entry per failing field, mirroring the
// constraint messages of the public API.
func (r itemRequest) validate() []Error {
	var errs []Error
	fail := func(desc string) {
		errs = append(errs, Error{Code: ErrCodeConstraintCheckFailed, Message: "Invalid Request", Description: desc})
	}

	if r.SKU == "" {
		fail("SKU cannot be null or empty")
	}
	if r.Name == "" {
		fail("Name cannot be null or empty")
	}
	if r.Description == "" {
		fail("Description cannot be null or empty")
	}
	if _, ok := domain.ParseCategory(r.Category); !ok {
		fail("Invalid category provided")
	}
	switch {
	case r.Price == nil:
		fail("Price cannot be null or empty")
	case *r.Price < 0:
		fail("Price cannot be negative")
	}
	switch {
	case r.Inventory == nil:
		fail("Inventory cannot be null or empty")
	case *r.Inventory < 0:
		fail("Inventory cannot be negative")
	}
	return errs
}

func (r itemRequest) toDomain() domain.CatalogueItem {
	category, _ := domain.ParseCategory(r.Category)
	item := domain.CatalogueItem{
		SKU:         r.SKU,
		Name:        r.Name,
		Description: r.Description,
		Category:    category,
	}
	if r.Price != nil {
		item.Price = *r.Price
	}
	if r.Inventory != nil {
		item.Inventory = *r.Inventory
	}
	return item
}

func (h *HTTPHandler) decodeItem(w http.ResponseWriter, r *http.Request) (domain.CatalogueItem, bool) {
	var req itemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, Error{
			Code:        ErrCodeRequestBodyInvalid,
			Message:     "Invalid Request",
			Description: "request body could not be parsed",
		})
		return domain.CatalogueItem{}, false
	}
	if errs := req.validate(); len(errs) > 0 {
		writeError(w, http.StatusBadRequest, errs...)
		return domain.CatalogueItem{}, false
	}
	return req.toDomain(), true
}

// List returns every catalogue item, name ascending.
func (h *HTTPHandler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.catalogue.List(r.Context())
	if err != nil {
		h.internalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

// Stream returns the same list as a server-sent-event stream, one item per
// event with a fixed gap between elements.
func (h *HTTPHandler) Stream(w http.ResponseWriter, r *http.Request) {
	items, err := h.catalogue.List(r.Context())
	if err != nil {
		h.internalError(w, err)
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		h.internalError(w, errors.New("response writer does not support streaming"))
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.WriteHeader(http.StatusOK)

	for _, item := range items {
		raw, err := json.Marshal(item)
		if err != nil {
			h.log.Error("encode stream item", zap.String("sku", item.SKU), zap.Error(err))
			return
		}
		fmt.Fprintf(w, "data: %s\n\n", raw)
		flusher.Flush()

		select {
		case <-r.Context().Done():
			return
		case <-time.After(h.streamDelay):
		}
	}
}

// Get returns a single item by sku.
func (h *HTTPHandler) Get(w http.ResponseWriter, r *http.Request) {
	sku := r.PathValue("sku")
	item, err := h.catalogue.Get(r.Context(), sku)
	if err != nil {
		h.serviceError(w, sku, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

// Create inserts a new item and answers 201 with the assigned id.
func (h *HTTPHandler) Create(w http.ResponseWriter, r *http.Request) {
	item, ok := h.decodeItem(w, r)
	if !ok {
		return
	}

	id, err := h.catalogue.Create(r.Context(), item)
	if err != nil {
		h.internalError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]int64{"id": id})
}

// Update replaces the mutable fields of the item identified by sku.
func (h *HTTPHandler) Update(w http.ResponseWriter, r *http.Request) {
	sku := r.PathValue("sku")
	item, ok := h.decodeItem(w, r)
	if !ok {
		return
	}

	if err := h.catalogue.Update(r.Context(), sku, item); err != nil {
		h.serviceError(w, sku, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

// Delete removes the item identified by sku.
func (h *HTTPHandler) Delete(w http.ResponseWriter, r *http.Request) {
	sku := r.PathValue("sku")
	if err := h.catalogue.Delete(r.Context(), sku); err != nil {
		h.serviceError(w, sku, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// UploadImage stores the multipart "file" field for an existing item.
func (h *HTTPHandler) UploadImage(w http.ResponseWriter, r *http.Request) {
	sku := r.PathValue("sku")
	if _, err := h.catalogue.Get(r.Context(), sku); err != nil {
		h.serviceError(w, sku, err)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, Error{
			Code:        ErrCodeRequestBodyInvalid,
			Message:     "Invalid Request",
			Description: "multipart field 'file' is required",
		})
		return
	}
	defer file.Close()

	path, err := h.files.Store(header.Filename, file)
	if err != nil {
		h.log.Error("store uploaded image", zap.String("sku", sku), zap.Error(err))
		writeError(w, http.StatusInternalServerError, Error{
			Code:        ErrCodeRuntime,
			Message:     "Internal error",
			Description: fmt.Sprintf("Error occurred while saving file %s", header.Filename),
		})
		return
	}

	h.log.Info("image stored", zap.String("sku", sku), zap.String("path", path))
	w.WriteHeader(http.StatusCreated)
}

func (h *HTTPHandler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// NotFound answers any route no handler claims.
func (h *HTTPHandler) NotFound(w http.ResponseWriter, r *http.Request) {
	writeError(w, http.StatusNotFound, Error{
		Code:        ErrCodeHandlerNotFound,
		Message:     "Handler not found",
		Description: fmt.Sprintf("No handler for %s %s", r.Method, r.URL.Path),
	})
}

func (h *HTTPHandler) serviceError(w http.ResponseWriter, sku string, err error) {
	if errors.Is(err, service.ErrItemNotFound) {
		writeError(w, http.StatusNotFound, Error{
			Code:        ErrCodeResourceNotFound,
			Message:     "Resource not found",
			Description: fmt.Sprintf("Catalogue Item not found for the provided SKU :: %s", sku),
		})
		return
	}
	h.internalError(w, err)
}

func (h *HTTPHandler) internalError(w http.ResponseWriter, err error) {
	h.log.Error("request failed", zap.Error(err))
	writeError(w, http.StatusInternalServerError, Error{
		Code:        ErrCodeRuntime,
		Message:     "Internal error",
		Description: err.Error(),
	})
}
