package recommend

import "github.com/hyperengineering/cartwright/internal/types"

// seasonalItems lists suggested items per season. Only the first three of a
// season's list are ever recommended.
var seasonalItems = map[string][]string{
	"summer": {"watermelon", "strawberries", "ice cream", "popsicles", "sunscreen"},
	"winter": {"hot chocolate", "soup", "bread", "wine", "cheese"},
	"spring": {"fresh vegetables", "berries", "salad", "spring onions"},
	"fall":   {"pumpkin", "apples", "squash", "cranberries", "turkey"},
}

// companionItems maps a seed item to its frequently-bought-together
// companions.
var companionItems = map[string][]string{
	"milk":    {"bread", "eggs", "butter"},
	"eggs":    {"milk", "butter", "bread"},
	"bread":   {"butter", "jam", "milk"},
	"pasta":   {"sauce", "cheese", "olive oil"},
	"chicken": {"garlic", "onion", "salt"},
}

// restockIntervals holds the number of days after which a previously
// purchased item is suggested again.
var restockIntervals = map[string]int{
	"milk":  7,
	"bread": 3,
	"eggs":  14,
	"water": 7,
}

// substituteProducts maps a keyword to replacement products. Matched by
// case-insensitive substring containment in the queried item.
var substituteProducts = []struct {
	keyword     string
	substitutes []string
}{
	{"milk", []string{"almond milk", "soy milk", "oat milk", "coconut milk"}},
	{"eggs", []string{"tofu", "applesauce", "mashed banana"}},
	{"butter", []string{"coconut oil", "olive oil", "margarine"}},
	{"wheat bread", []string{"rye bread", "sourdough", "multigrain"}},
	{"chicken", []string{"turkey", "tofu", "fish"}},
	{"beef", []string{"ground turkey", "lean pork", "veggie burger"}},
}

// defaultPriceRange is returned for items with no price data.
var defaultPriceRange = types.PriceRange{Min: 1.00, Max: 10.00, Avg: 5.00}

// priceRanges holds estimated price spreads per keyword. Matched by
// case-insensitive substring containment in the queried item.
var priceRanges = []struct {
	keyword string
	price   types.PriceRange
}{
	{"milk", types.PriceRange{Min: 2.50, Max: 4.00, Avg: 3.20}},
	{"bread", types.PriceRange{Min: 1.50, Max: 3.50, Avg: 2.50}},
	{"eggs", types.PriceRange{Min: 2.50, Max: 4.50, Avg: 3.50}},
	{"apple", types.PriceRange{Min: 0.50, Max: 1.50, Avg: 1.00}},
	{"chicken", types.PriceRange{Min: 4.00, Max: 8.00, Avg: 6.00}},
}
