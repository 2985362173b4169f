package collection

import "math"

// MatchRatio is the share of a category's fields an item must carry to be
// listed under that category
const MatchRatio = 0.6

// MatchThreshold is the number of category fields an item needs
func MatchThreshold(fieldCount int) int {
	return int(math.Ceil(float64(fieldCount) * MatchRatio))
}

// Matches reports whether item belongs to category. An item belongs when it
// carries at least ceil(60%) of the category's field names as keys, so items
// saved before a category gained or lost a field still show up.
func Matches(item *Item, category Category) bool {
	present := 0
	for _, name := range category.FieldNames() {
		if item.Has(name) {
			present++
		}
	}
	return present >= MatchThreshold(len(category.Fields))
}

// Filter returns the items that belong to category, in their original order
func Filter(items []*Item, category Category) []*Item {
	out := make([]*Item, 0, len(items))
	for _, it := range items {
		if Matches(it, category) {
			out = append(out, it)
		}
	}
	return out
}
