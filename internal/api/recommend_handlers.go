package api

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/hyperengineering/cartwright/internal/types"
	"github.com/hyperengineering/cartwright/internal/validation"
)

// Personalized handles GET /api/recommendations/personalized. Current list
// items arrive as repeated "items" query parameters.
func (h *Handler) Personalized(w http.ResponseWriter, r *http.Request) {
	userID := orDefault(r.URL.Query().Get("user_id"))
	currentItems := r.URL.Query()["items"]

	recs, err := h.engine.Recommend(r.Context(), userID, currentItems)
	if err != nil {
		slog.Error("recommend failed", "error", err, "user_id", userID)
		MapStoreError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, types.RecommendationsResponse{
		UserID:          userID,
		Recommendations: recs,
		Count:           len(recs),
	})
}

// Substitutes handles POST /api/recommendations/alternatives.
func (h *Handler) Substitutes(w http.ResponseWriter, r *http.Request) {
	var req types.SubstitutesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteProblem(w, r, http.StatusBadRequest, fmt.Sprintf("Invalid JSON: %s", err.Error()))
		return
	}

	if err := validation.ValidateRequired("item", req.Item); err != nil {
		WriteProblemWithErrors(w, r, "Item is required", []validation.ValidationError{*err})
		return
	}

	subs := h.engine.SubstitutesFor(req.Item)

	writeJSON(w, http.StatusOK, types.SubstitutesResponse{
		Item:         req.Item,
		Alternatives: subs,
		Count:        len(subs),
	})
}

// PriceRange handles GET /api/recommendations/price-range.
func (h *Handler) PriceRange(w http.ResponseWriter, r *http.Request) {
	item := r.URL.Query().Get("item")
	if err := validation.ValidateRequired("item", item); err != nil {
		WriteProblemWithErrors(w, r, "Item is required", []validation.ValidationError{*err})
		return
	}

	writeJSON(w, http.StatusOK, types.PriceRangeResponse{
		Item:       item,
		PriceRange: h.engine.PriceRangeFor(item),
	})
}

// RecordPurchase handles POST /api/recommendations/record-purchase.
func (h *Handler) RecordPurchase(w http.ResponseWriter, r *http.Request) {
	var req types.RecordPurchaseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteProblem(w, r, http.StatusBadRequest, fmt.Sprintf("Invalid JSON: %s", err.Error()))
		return
	}

	if len(req.Items) == 0 {
		WriteProblem(w, r, http.StatusBadRequest, "Items are required")
		return
	}

	userID := orDefault(req.UserID)
	if err := h.engine.RecordPurchase(r.Context(), userID, req.Items); err != nil {
		slog.Error("record purchase failed", "error", err, "user_id", userID)
		MapStoreError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, types.RecordPurchaseResponse{
		Success: true,
		Message: "Purchase recorded",
	})
}

// Seasonal handles GET /api/recommendations/seasonal.
func (h *Handler) Seasonal(w http.ResponseWriter, r *http.Request) {
	recs := h.engine.Seasonal()

	writeJSON(w, http.StatusOK, types.RecommendationsResponse{
		Recommendations: recs,
		Count:           len(recs),
	})
}
