package api

import (
	"database/sql"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/erazemk/najdeno/internal/model"
	"github.com/erazemk/najdeno/internal/store"
)

// ItemsHandler handles item endpoints.
type ItemsHandler struct {
	DB *sql.DB
}

type createItemRequest struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	Category    string `json:"category"`
	Location    string `json:"location"`
	Date        string `json:"date"`
	Description string `json:"description"`
}

type itemDetailResponse struct {
	Item    *model.Item  `json:"item"`
	Matches []model.Item `json:"matches"`
}

// List handles GET /api/items with an optional ?type= filter.
func (h *ItemsHandler) List(w http.ResponseWriter, r *http.Request) {
	filter := r.URL.Query().Get("type")
	if filter != "" {
		if _, err := model.ParseType(filter); err != nil {
			jsonError(w, http.StatusBadRequest, err.Error())
			return
		}
	}

	items, err := store.ListItems(r.Context(), h.DB, filter)
	if err != nil {
		slog.Error("failed to list items", "error", err)
		jsonError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if items == nil {
		items = []model.Item{}
	}

	jsonResponse(w, http.StatusOK, items)
}

// Get handles GET /api/items/{id}, returning the item with its candidate
// matches.
func (h *ItemsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid id")
		return
	}

	item, err := store.GetItem(r.Context(), h.DB, id)
	if err != nil {
		slog.Error("failed to get item", "error", err)
		jsonError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if item == nil {
		jsonError(w, http.StatusNotFound, "item not found")
		return
	}

	matches, err := store.FindMatches(r.Context(), h.DB, item)
	if err != nil {
		slog.Error("failed to find matches", "error", err)
		jsonError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if matches == nil {
		matches = []model.Item{}
	}

	jsonResponse(w, http.StatusOK, itemDetailResponse{Item: item, Matches: matches})
}

// Create handles POST /api/items (authenticated). Unlike the web form, a
// failed insert surfaces as a 500 instead of a silent redirect.
func (h *ItemsHandler) Create(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())

	var req createItemRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Name == "" || req.Category == "" {
		jsonError(w, http.StatusBadRequest, "name and category required")
		return
	}
	itemType, err := model.ParseType(req.Type)
	if err != nil {
		jsonError(w, http.StatusBadRequest, err.Error())
		return
	}

	item, err := store.CreateItem(r.Context(), h.DB, store.ItemParams{
		Name:        req.Name,
		Type:        itemType,
		Category:    req.Category,
		Location:    req.Location,
		Date:        req.Date,
		Description: req.Description,
	})
	if err != nil {
		slog.Error("failed to create item", "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to create item")
		return
	}

	slog.Info("item reported", "user", claims.Email, "item", item.Name, "type", item.Type)
	jsonResponse(w, http.StatusCreated, item)
}
