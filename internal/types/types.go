package types

import (
	"encoding/json"
	"time"
)

// IntentKind classifies the purpose of a voice command.
type IntentKind string

const (
	IntentAdd     IntentKind = "ADD"
	IntentRemove  IntentKind = "REMOVE"
	IntentList    IntentKind = "LIST"
	IntentSearch  IntentKind = "SEARCH"
	IntentUnknown IntentKind = "UNKNOWN"
)

// Quantity is an extracted count with its unit ("piece" when absent).
type Quantity struct {
	Count int    `json:"count"`
	Unit  string `json:"unit"`
}

// CommandResult is the structured interpretation of a free-text command.
// It is derived purely from the input text and immutable once produced.
type CommandResult struct {
	Original string     `json:"original"`
	Intent   IntentKind `json:"intent"`
	Items    []string   `json:"items"`
	Quantity Quantity   `json:"quantity"`
	// Category is the category of the first extracted item, or nil when the
	// command yielded no items.
	Category *string `json:"category"`
}

// MarshalJSON ensures a nil Items slice marshals as [] not null.
func (c CommandResult) MarshalJSON() ([]byte, error) {
	if c.Items == nil {
		c.Items = []string{}
	}
	type Alias CommandResult
	return json.Marshal(Alias(c))
}

// RecommendationKind identifies which rule source produced a recommendation.
type RecommendationKind string

const (
	RecFrequentlyTogether RecommendationKind = "frequently_together"
	RecSeasonal           RecommendationKind = "seasonal"
	RecRestock            RecommendationKind = "restock"
)

// Recommendation is a single ranked suggestion. Recomputed per request.
type Recommendation struct {
	Item       string             `json:"item"`
	Reason     string             `json:"reason"`
	Confidence float64            `json:"confidence"`
	Kind       RecommendationKind `json:"type"`
}

// Substitute is an alternative product for an unavailable item.
type Substitute struct {
	Item   string `json:"item"`
	Reason string `json:"reason"`
}

// PriceRange is the estimated price spread for an item.
type PriceRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
	Avg float64 `json:"avg"`
}

// ShoppingItem is a single entry on a user's shopping list.
type ShoppingItem struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Quantity      int       `json:"quantity"`
	Unit          string    `json:"unit"`
	Category      string    `json:"category"`
	PriceEstimate float64   `json:"price_estimate"`
	AddedAt       time.Time `json:"added_at"`
}

// ShoppingList is a user's ordered list of items.
type ShoppingList struct {
	ID        string         `json:"id"`
	UserID    string         `json:"user_id"`
	Items     []ShoppingItem `json:"items"`
	CreatedAt time.Time      `json:"created_at"`
}

// MarshalJSON ensures a nil Items slice marshals as [] not null.
func (l ShoppingList) MarshalJSON() ([]byte, error) {
	if l.Items == nil {
		l.Items = []ShoppingItem{}
	}
	type Alias ShoppingList
	return json.Marshal(Alias(l))
}

// PurchaseRecord is one item's last recorded purchase for a user.
type PurchaseRecord struct {
	Item        string    `json:"item"`
	PurchasedAt time.Time `json:"purchased_at"`
}

// --- HTTP request/response types ---

// AddItemRequest is the body of POST /api/shopping/add.
type AddItemRequest struct {
	UserID  string `json:"user_id"`
	Command string `json:"command"`
}

// AddItemResponse reports the items added from a command.
type AddItemResponse struct {
	Success      bool           `json:"success"`
	Message      string         `json:"message"`
	Items        []ShoppingItem `json:"items"`
	ShoppingList ShoppingList   `json:"shopping_list"`
}

// MarshalJSON ensures a nil Items slice marshals as [] not null.
func (r AddItemResponse) MarshalJSON() ([]byte, error) {
	if r.Items == nil {
		r.Items = []ShoppingItem{}
	}
	type Alias AddItemResponse
	return json.Marshal(Alias(r))
}

// RemoveItemRequest is the body of POST /api/shopping/remove.
type RemoveItemRequest struct {
	UserID string `json:"user_id"`
	ItemID string `json:"item_id"`
}

// ClearListRequest is the body of POST /api/shopping/clear.
type ClearListRequest struct {
	UserID string `json:"user_id"`
}

// ListMutationResponse is returned by remove/clear operations.
type ListMutationResponse struct {
	Success      bool          `json:"success"`
	Message      string        `json:"message"`
	ShoppingList *ShoppingList `json:"shopping_list,omitempty"`
}

// CategoryItemsResponse is returned by GET /api/shopping/category/{category}.
type CategoryItemsResponse struct {
	Category   string         `json:"category"`
	Items      []ShoppingItem `json:"items"`
	TotalItems int            `json:"total_items"`
}

// MarshalJSON ensures a nil Items slice marshals as [] not null.
func (r CategoryItemsResponse) MarshalJSON() ([]byte, error) {
	if r.Items == nil {
		r.Items = []ShoppingItem{}
	}
	type Alias CategoryItemsResponse
	return json.Marshal(Alias(r))
}

// ProcessCommandRequest is the body of POST /api/voice/process-command.
type ProcessCommandRequest struct {
	Command  string `json:"command"`
	Language string `json:"language"`
}

// ProcessCommandResponse wraps an interpreted command.
type ProcessCommandResponse struct {
	Command   string        `json:"command"`
	Language  string        `json:"language"`
	Processed CommandResult `json:"processed"`
}

// ExtractItemsRequest is the body of POST /api/voice/extract-items.
type ExtractItemsRequest struct {
	Text string `json:"text"`
}

// ExtractItemsResponse lists the items pulled from free text.
type ExtractItemsResponse struct {
	Text       string   `json:"text"`
	Items      []string `json:"items"`
	Categories []string `json:"categories"`
	Count      int      `json:"count"`
}

// MarshalJSON ensures nil slices marshal as [] not null.
func (r ExtractItemsResponse) MarshalJSON() ([]byte, error) {
	if r.Items == nil {
		r.Items = []string{}
	}
	if r.Categories == nil {
		r.Categories = []string{}
	}
	type Alias ExtractItemsResponse
	return json.Marshal(Alias(r))
}

// AlternativesResponse lists alternative products for an item.
type AlternativesResponse struct {
	Item         string   `json:"item"`
	Alternatives []string `json:"alternatives"`
	Count        int      `json:"count"`
}

// MarshalJSON ensures a nil Alternatives slice marshals as [] not null.
func (r AlternativesResponse) MarshalJSON() ([]byte, error) {
	if r.Alternatives == nil {
		r.Alternatives = []string{}
	}
	type Alias AlternativesResponse
	return json.Marshal(Alias(r))
}

// LanguagesResponse maps supported language codes to display names.
type LanguagesResponse struct {
	Languages map[string]string `json:"languages"`
}

// RecommendationsResponse is returned by the personalized and seasonal endpoints.
type RecommendationsResponse struct {
	UserID          string           `json:"user_id,omitempty"`
	Recommendations []Recommendation `json:"recommendations"`
	Count           int              `json:"count"`
}

// MarshalJSON ensures a nil Recommendations slice marshals as [] not null.
func (r RecommendationsResponse) MarshalJSON() ([]byte, error) {
	if r.Recommendations == nil {
		r.Recommendations = []Recommendation{}
	}
	type Alias RecommendationsResponse
	return json.Marshal(Alias(r))
}

// SubstitutesRequest is the body of POST /api/recommendations/alternatives.
type SubstitutesRequest struct {
	Item string `json:"item"`
}

// SubstitutesResponse lists substitute products for an item.
type SubstitutesResponse struct {
	Item         string       `json:"item"`
	Alternatives []Substitute `json:"alternatives"`
	Count        int          `json:"count"`
}

// MarshalJSON ensures a nil Alternatives slice marshals as [] not null.
func (r SubstitutesResponse) MarshalJSON() ([]byte, error) {
	if r.Alternatives == nil {
		r.Alternatives = []Substitute{}
	}
	type Alias SubstitutesResponse
	return json.Marshal(Alias(r))
}

// PriceRangeResponse is returned by GET /api/recommendations/price-range.
type PriceRangeResponse struct {
	Item       string     `json:"item"`
	PriceRange PriceRange `json:"price_range"`
}

// RecordPurchaseRequest is the body of POST /api/recommendations/record-purchase.
type RecordPurchaseRequest struct {
	UserID string   `json:"user_id"`
	Items  []string `json:"items"`
}

// RecordPurchaseResponse acknowledges a recorded purchase.
type RecordPurchaseResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// HealthResponse is the health check payload.
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}
