// Package nlp interprets free-text shopping commands into structured results.
//
// Interpretation is pure pattern matching over static tables: an ordered
// intent pattern list, a keyword category table, and a stopword set. There is
// no model inference and no state; identical input always yields an identical
// result, and unmatched input yields an UNKNOWN intent rather than an error.
package nlp

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/hyperengineering/cartwright/internal/types"
)

var (
	actionVerbPattern   = regexp.MustCompile(`(?i)(add|buy|get|need|remove|delete|search|find)`)
	quantityExprPattern = regexp.MustCompile(`(?i)(\d+\s*(?:bottle|piece|kg|liter|pack|box))`)
	listPhrasePattern   = regexp.MustCompile(`(?i)(to\s+my\s+list|from\s+my\s+list)`)
	quantityPattern     = regexp.MustCompile(`(\d+)\s*([a-z]+)?`)
)

// Processor interprets voice commands. The zero value is not usable; create
// one with NewProcessor. Safe for concurrent use.
type Processor struct{}

// NewProcessor creates a command Processor.
func NewProcessor() *Processor {
	return &Processor{}
}

// Interpret parses a free-text command into intent, items, quantity, and
// category. It never fails: text matching no pattern produces an UNKNOWN
// intent and an empty item list.
func (p *Processor) Interpret(text string) types.CommandResult {
	normalized := strings.ToLower(strings.TrimSpace(text))

	result := types.CommandResult{
		Original: normalized,
		Intent:   p.classifyIntent(normalized),
		Items:    p.ExtractItems(normalized),
		Quantity: p.extractQuantity(normalized),
	}

	if len(result.Items) > 0 {
		category := p.Categorize(result.Items[0])
		result.Category = &category
	}

	return result
}

// classifyIntent returns the first intent whose any pattern matches the text.
// Declaration order of the rule table resolves ambiguity; no scoring.
func (p *Processor) classifyIntent(text string) types.IntentKind {
	for _, rule := range intentRules {
		for _, pattern := range rule.patterns {
			if pattern.MatchString(text) {
				return rule.intent
			}
		}
	}
	return types.IntentUnknown
}

// ExtractItems derives candidate item names from free text by stripping
// action verbs, quantity expressions, and list-referential phrases, then
// splitting on commas. Segments that are empty, stopwords, or a single
// character are dropped. Order follows the split order.
func (p *Processor) ExtractItems(text string) []string {
	cleaned := actionVerbPattern.ReplaceAllString(text, "")
	cleaned = quantityExprPattern.ReplaceAllString(cleaned, "")
	cleaned = listPhrasePattern.ReplaceAllString(cleaned, "")

	var items []string
	for _, segment := range strings.Split(cleaned, ",") {
		segment = strings.TrimSpace(segment)
		if segment == "" {
			continue
		}
		if _, stop := stopwords[segment]; stop {
			continue
		}
		if len(segment) <= 1 {
			continue
		}
		items = append(items, segment)
	}
	return items
}

// extractQuantity finds the first digits-plus-unit pair in the text. The scan
// runs over the full normalized text, independent of what item extraction
// consumed, so a command with several quantities yields only the first.
func (p *Processor) extractQuantity(text string) types.Quantity {
	match := quantityPattern.FindStringSubmatch(text)
	if match == nil {
		return types.Quantity{Count: 1, Unit: "piece"}
	}

	count, err := strconv.Atoi(match[1])
	if err != nil {
		return types.Quantity{Count: 1, Unit: "piece"}
	}

	return types.Quantity{Count: count, Unit: normalizeUnit(match[2])}
}

// normalizeUnit maps a captured unit token to its canonical singular form.
// Unrecognized tokens pass through unchanged; a missing token means "piece".
func normalizeUnit(token string) string {
	if token == "" {
		return "piece"
	}
	if singular := strings.TrimSuffix(token, "s"); singular != token {
		if _, ok := knownUnits[singular]; ok {
			return singular
		}
	}
	return token
}

// Categorize returns the category of an item by substring-matching its
// lowercased name against the keyword table, or "uncategorized".
func (p *Processor) Categorize(item string) string {
	lowered := strings.ToLower(item)
	for _, rule := range categoryRules {
		for _, keyword := range rule.keywords {
			if strings.Contains(lowered, keyword) {
				return rule.name
			}
		}
	}
	return "uncategorized"
}

// Alternatives suggests alternative products for an item, matched by
// substring containment of a known keyword. Unknown items yield nil.
func (p *Processor) Alternatives(item string) []string {
	lowered := strings.ToLower(item)
	for _, entry := range alternativeProducts {
		if strings.Contains(lowered, entry.keyword) {
			return entry.alternatives
		}
	}
	return nil
}
