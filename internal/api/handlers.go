package api

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/hyperengineering/cartwright/internal/nlp"
	"github.com/hyperengineering/cartwright/internal/recommend"
	"github.com/hyperengineering/cartwright/internal/store"
	"github.com/hyperengineering/cartwright/internal/types"
	"github.com/hyperengineering/cartwright/internal/validation"
	"github.com/hyperengineering/cartwright/internal/voice"
)

// defaultUserID is assumed when a request carries no user identifier.
const defaultUserID = "default_user"

// maxCommandLength bounds free-text command input.
const maxCommandLength = 500

// Handler implements the API handlers.
type Handler struct {
	store       store.Store
	processor   *nlp.Processor
	engine      *recommend.Engine
	transcriber *voice.Transcriber
	version     string
}

// NewHandler creates a Handler wired to the given collaborators.
func NewHandler(s store.Store, p *nlp.Processor, e *recommend.Engine, t *voice.Transcriber, version string) *Handler {
	return &Handler{
		store:       s,
		processor:   p,
		engine:      e,
		transcriber: t,
		version:     version,
	}
}

// Health returns the health status.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, types.HealthResponse{
		Status:  "ok",
		Version: h.version,
	})
}

// AddItem handles POST /api/shopping/add. The command text is interpreted
// and its extracted items are added to the user's list. Commands whose
// intent is neither ADD nor UNKNOWN, or which yield no items, are rejected.
func (h *Handler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req types.AddItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteProblem(w, r, http.StatusBadRequest, fmt.Sprintf("Invalid JSON: %s", err.Error()))
		return
	}

	var c validation.Collector
	c.Add(validation.ValidateRequired("command", req.Command))
	c.Add(validation.ValidateMaxLength("command", req.Command, maxCommandLength))
	c.Add(validation.ValidateUTF8("command", req.Command))
	if c.HasErrors() {
		WriteProblemWithErrors(w, r, "Command is required", c.Errors())
		return
	}

	result := h.processor.Interpret(req.Command)

	if result.Intent != types.IntentAdd && result.Intent != types.IntentUnknown {
		WriteProblem(w, r, http.StatusBadRequest, "Invalid command for adding items")
		return
	}
	if len(result.Items) == 0 {
		WriteProblem(w, r, http.StatusBadRequest, "No items found in command")
		return
	}

	category := "uncategorized"
	if result.Category != nil {
		category = *result.Category
	}

	items := make([]types.ShoppingItem, 0, len(result.Items))
	for _, name := range result.Items {
		items = append(items, types.ShoppingItem{
			Name:     name,
			Quantity: result.Quantity.Count,
			Unit:     result.Quantity.Unit,
			Category: category,
			AddedAt:  time.Now().UTC(),
		})
	}

	userID := orDefault(req.UserID)
	added, err := h.store.AddItems(r.Context(), userID, items)
	if err != nil {
		slog.Error("add items failed", "error", err, "user_id", userID)
		MapStoreError(w, r, err)
		return
	}

	list, err := h.store.Get(r.Context(), userID)
	if err != nil {
		slog.Error("get list failed", "error", err, "user_id", userID)
		MapStoreError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, types.AddItemResponse{
		Success:      true,
		Message:      fmt.Sprintf("Added %d item(s)", len(added)),
		Items:        added,
		ShoppingList: *list,
	})
}

// GetList handles GET /api/shopping/list.
func (h *Handler) GetList(w http.ResponseWriter, r *http.Request) {
	userID := orDefault(r.URL.Query().Get("user_id"))

	list, err := h.store.Get(r.Context(), userID)
	if err != nil {
		slog.Error("get list failed", "error", err, "user_id", userID)
		MapStoreError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, list)
}

// RemoveItem handles POST /api/shopping/remove.
func (h *Handler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	var req types.RemoveItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteProblem(w, r, http.StatusBadRequest, fmt.Sprintf("Invalid JSON: %s", err.Error()))
		return
	}

	var c validation.Collector
	c.Add(validation.ValidateRequired("item_id", req.ItemID))
	c.Add(validation.ValidateULID("item_id", req.ItemID))
	if c.HasErrors() {
		WriteProblemWithErrors(w, r, "Item ID is required", c.Errors())
		return
	}

	userID := orDefault(req.UserID)
	if err := h.store.RemoveItem(r.Context(), userID, req.ItemID); err != nil {
		MapStoreError(w, r, err)
		return
	}

	list, err := h.store.Get(r.Context(), userID)
	if err != nil {
		MapStoreError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, types.ListMutationResponse{
		Success:      true,
		Message:      "Item removed",
		ShoppingList: list,
	})
}

// ClearList handles POST /api/shopping/clear.
func (h *Handler) ClearList(w http.ResponseWriter, r *http.Request) {
	var req types.ClearListRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteProblem(w, r, http.StatusBadRequest, fmt.Sprintf("Invalid JSON: %s", err.Error()))
		return
	}

	userID := orDefault(req.UserID)
	if err := h.store.Clear(r.Context(), userID); err != nil {
		MapStoreError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, types.ListMutationResponse{
		Success: true,
		Message: "Shopping list cleared",
	})
}

// ItemsByCategory handles GET /api/shopping/category/{category}.
func (h *Handler) ItemsByCategory(w http.ResponseWriter, r *http.Request) {
	category := chi.URLParam(r, "category")
	userID := orDefault(r.URL.Query().Get("user_id"))

	items, err := h.store.ItemsByCategory(r.Context(), userID, category)
	if err != nil {
		MapStoreError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, types.CategoryItemsResponse{
		Category:   category,
		Items:      items,
		TotalItems: len(items),
	})
}

// orDefault substitutes the default user for an absent identifier.
func orDefault(userID string) string {
	if strings.TrimSpace(userID) == "" {
		return defaultUserID
	}
	return userID
}

// writeJSON encodes a JSON response with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
