// Package recommend produces rule-based shopping suggestions from three
// independent sources: co-purchase associations, seasonal picks, and restock
// reminders driven by per-user purchase history.
package recommend

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/hyperengineering/cartwright/internal/store"
	"github.com/hyperengineering/cartwright/internal/types"
)

// maxRecommendations caps the merged suggestion list per request.
const maxRecommendations = 5

// Engine generates recommendations. Purchase history is owned by the
// injected HistoryStore; all rule tables are static. Safe for concurrent use
// as long as the store is.
type Engine struct {
	history store.HistoryStore
	now     func() time.Time
}

// NewEngine creates an Engine backed by the given history store.
func NewEngine(history store.HistoryStore) *Engine {
	return &Engine{history: history, now: time.Now}
}

// NewEngineWithClock creates an Engine with an injected clock. Used by tests
// to make seasonal and restock rules deterministic.
func NewEngineWithClock(history store.HistoryStore, now func() time.Time) *Engine {
	return &Engine{history: history, now: now}
}

// Recommend merges the three rule sources in fixed order (frequently-together,
// seasonal, restock), deduplicates by item keeping the first occurrence, and
// truncates to five entries. Absent history yields fewer suggestions, never
// an error.
func (e *Engine) Recommend(ctx context.Context, userID string, currentItems []string) ([]types.Recommendation, error) {
	var recs []types.Recommendation

	recs = append(recs, e.frequentlyTogether(currentItems)...)
	recs = append(recs, e.Seasonal()...)

	restock, err := e.restock(ctx, userID)
	if err != nil {
		return nil, err
	}
	recs = append(recs, restock...)

	seen := make(map[string]struct{}, len(recs))
	unique := recs[:0]
	for _, rec := range recs {
		if _, dup := seen[rec.Item]; dup {
			continue
		}
		seen[rec.Item] = struct{}{}
		unique = append(unique, rec)
	}

	if len(unique) > maxRecommendations {
		unique = unique[:maxRecommendations]
	}
	return unique, nil
}

// frequentlyTogether suggests companions of the current items. A companion
// already on the list is skipped; one recommended earlier in the same pass is
// not, since the merge step deduplicates.
func (e *Engine) frequentlyTogether(currentItems []string) []types.Recommendation {
	current := make(map[string]struct{}, len(currentItems))
	for _, item := range currentItems {
		current[item] = struct{}{}
	}

	var recs []types.Recommendation
	for _, item := range currentItems {
		for _, companion := range companionItems[item] {
			if _, onList := current[companion]; onList {
				continue
			}
			recs = append(recs, types.Recommendation{
				Item:       companion,
				Reason:     fmt.Sprintf("Often bought with %s", item),
				Confidence: 0.8,
				Kind:       types.RecFrequentlyTogether,
			})
		}
	}
	return recs
}

// Seasonal returns up to three picks for the current season. Independent of
// user and list contents.
func (e *Engine) Seasonal() []types.Recommendation {
	season := seasonOf(e.now().Month())

	items := seasonalItems[season]
	if len(items) > 3 {
		items = items[:3]
	}

	recs := make([]types.Recommendation, 0, len(items))
	for _, item := range items {
		recs = append(recs, types.Recommendation{
			Item:       item,
			Reason:     fmt.Sprintf("In season this %s", season),
			Confidence: 0.6,
			Kind:       types.RecSeasonal,
		})
	}
	return recs
}

// restock suggests items whose configured interval has elapsed since the
// user's last purchase. A user with no history yields nothing.
func (e *Engine) restock(ctx context.Context, userID string) ([]types.Recommendation, error) {
	history, err := e.history.History(ctx, userID)
	if err != nil {
		return nil, err
	}

	var recs []types.Recommendation
	for item, lastPurchased := range history {
		interval, tracked := restockIntervals[item]
		if !tracked {
			continue
		}

		daysSince := int(e.now().Sub(lastPurchased).Hours() / 24)
		if daysSince > interval {
			recs = append(recs, types.Recommendation{
				Item:       item,
				Reason:     fmt.Sprintf("Time to restock (last bought %d days ago)", daysSince),
				Confidence: 0.9,
				Kind:       types.RecRestock,
			})
		}
	}
	return recs, nil
}

// RecordPurchase stores the purchase time of each item for the user,
// overwriting any earlier last-purchase time.
func (e *Engine) RecordPurchase(ctx context.Context, userID string, items []string) error {
	return e.history.RecordPurchase(ctx, userID, items, e.now())
}

// SubstitutesFor returns replacement products for an unavailable item.
// Unknown items yield an empty result.
func (e *Engine) SubstitutesFor(item string) []types.Substitute {
	lowered := strings.ToLower(item)
	for _, entry := range substituteProducts {
		if strings.Contains(lowered, entry.keyword) {
			subs := make([]types.Substitute, 0, len(entry.substitutes))
			for _, sub := range entry.substitutes {
				subs = append(subs, types.Substitute{
					Item:   sub,
					Reason: fmt.Sprintf("Substitute for %s", item),
				})
			}
			return subs
		}
	}
	return nil
}

// PriceRangeFor returns the estimated price spread for an item, or the
// default range when the item is unknown.
func (e *Engine) PriceRangeFor(item string) types.PriceRange {
	lowered := strings.ToLower(item)
	for _, entry := range priceRanges {
		if strings.Contains(lowered, entry.keyword) {
			return entry.price
		}
	}
	return defaultPriceRange
}

// seasonOf maps a calendar month to its season.
func seasonOf(month time.Month) string {
	switch {
	case month >= time.March && month <= time.May:
		return "spring"
	case month >= time.June && month <= time.August:
		return "summer"
	case month >= time.September && month <= time.November:
		return "fall"
	default:
		return "winter"
	}
}
