package nlp

import (
	"regexp"

	"github.com/hyperengineering/cartwright/internal/types"
)

// intentRule is one intent with its match patterns. Rules are evaluated in
// declaration order and the first pattern hit wins, so the order of this
// table is load-bearing.
type intentRule struct {
	intent   types.IntentKind
	patterns []*regexp.Regexp
}

var intentRules = []intentRule{
	{
		intent: types.IntentAdd,
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)(add|buy|get|need|add me|purchase|put|include)`),
			regexp.MustCompile(`(?i)(i\s+(?:need|want|should|must)\s+(?:to\s+)?(?:buy|get|purchase))`),
		},
	},
	{
		intent: types.IntentRemove,
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)(remove|delete|cancel|take off|strike|eliminate)`),
		},
	},
	{
		intent: types.IntentList,
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)(show|display|list|what.*have|what.*got|check)`),
		},
	},
	{
		intent: types.IntentSearch,
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)(search|find|look for|where)`),
		},
	},
}

// categoryRule maps a category to its keyword set. Matching is by substring
// against the lowercased item name; the first category in this table with a
// matching keyword wins.
type categoryRule struct {
	name     string
	keywords []string
}

var categoryRules = []categoryRule{
	{"dairy", []string{"milk", "cheese", "butter", "yogurt", "cream", "eggs"}},
	{"produce", []string{"apple", "banana", "orange", "carrot", "broccoli", "tomato", "lettuce"}},
	{"meat", []string{"chicken", "beef", "pork", "fish", "turkey", "lamb"}},
	{"snacks", []string{"chips", "cookie", "candy", "chocolate", "popcorn", "nuts"}},
	{"beverages", []string{"water", "juice", "soda", "coffee", "tea", "milk", "wine", "beer"}},
	{"bakery", []string{"bread", "roll", "bagel", "donut", "cake", "pastry"}},
	{"frozen", []string{"ice cream", "frozen vegetable", "frozen pizza", "frozen meal"}},
	{"pantry", []string{"rice", "pasta", "oil", "salt", "sugar", "flour", "spice"}},
	{"personal_care", []string{"soap", "shampoo", "toothpaste", "deodorant", "lotion"}},
	{"household", []string{"detergent", "paper towel", "soap", "cleaner"}},
}

// stopwords are whole segments dropped during item extraction.
var stopwords = map[string]struct{}{
	"the": {}, "a": {}, "an": {}, "of": {}, "to": {}, "and": {},
	"or": {}, "from": {}, "in": {}, "on": {}, "at": {}, "by": {},
}

// alternativeProducts maps a keyword to suggested alternatives. Matched by
// substring containment in the queried item.
var alternativeProducts = []struct {
	keyword      string
	alternatives []string
}{
	{"milk", []string{"almond milk", "soy milk", "oat milk", "coconut milk"}},
	{"bread", []string{"whole wheat bread", "sourdough bread", "multigrain bread"}},
	{"apple", []string{"pear", "orange", "banana"}},
	{"coffee", []string{"tea", "espresso"}},
}

// knownUnits are unit words recognized in quantity expressions. Used to
// normalize plural unit tokens ("bottles" -> "bottle").
var knownUnits = map[string]struct{}{
	"bottle": {}, "piece": {}, "kg": {}, "liter": {}, "pack": {}, "box": {}, "item": {},
}
