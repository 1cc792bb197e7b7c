// Package recommend selects mitigation tips from the share each emission
// source contributes to a farm's monthly total.
package recommend

import (
	"github.com/ecosystemplus/farmcarbon/internal/calculator"
	"github.com/ecosystemplus/farmcarbon/internal/farm"
)

// Share thresholds above which a source's tips are included.
const (
	FertilizerShareThreshold = 0.4
	LivestockShareThreshold  = 0.4
	FuelShareThreshold       = 0.3
)

// Output limits.
const (
	// MaxRecommendations caps the number of recommendations in a report.
	MaxRecommendations = 6

	// TipsPerCategory is how many leading tips of a category are used.
	TipsPerCategory = 2
)

// Recommend returns up to MaxRecommendations tips for a farm.
//
// A farm with zero total emissions gets only the catalog's continue message.
// Otherwise each source whose share of the total exceeds its threshold adds
// its first TipsPerCategory tips, general tips are always added, followed by
// the farming-method remark. The list is cut positionally, so a late category
// can be dropped entirely even when its share is large.
func Recommend(c *Catalog, b calculator.Breakdown, method farm.FarmingMethod) []string {
	total := b.Total
	if total == 0 {
		return []string{c.ContinueMessage()}
	}

	var recs []string
	if b.Fertilizer/total > FertilizerShareThreshold {
		recs = append(recs, c.leading(CategoryFertilizer)...)
	}
	if b.Livestock/total > LivestockShareThreshold {
		recs = append(recs, c.leading(CategoryLivestock)...)
	}
	if b.Fuel/total > FuelShareThreshold {
		recs = append(recs, c.leading(CategoryFuel)...)
	}
	recs = append(recs, c.leading(CategoryGeneral)...)

	if remark, ok := c.methodRemark(method); ok {
		recs = append(recs, remark)
	}

	if len(recs) > MaxRecommendations {
		recs = recs[:MaxRecommendations]
	}
	return recs
}

func (c *Catalog) leading(category Category) []string {
	tips := c.tips[category]
	if len(tips) > TipsPerCategory {
		tips = tips[:TipsPerCategory]
	}
	return tips
}
