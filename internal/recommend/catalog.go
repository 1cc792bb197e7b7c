package recommend

import (
	"maps"
	"slices"

	"github.com/ecosystemplus/farmcarbon/internal/farm"
)

// Category groups mitigation tips by the emission source they address.
type Category string

// Tip categories, in the order recommendations are emitted.
const (
	CategoryFertilizer Category = "fertilizer"
	CategoryLivestock  Category = "livestock"
	CategoryFuel       Category = "fuel"
	CategoryGeneral    Category = "general"
)

// Categories lists every tip category in emission order.
func Categories() []Category {
	return []Category{CategoryFertilizer, CategoryLivestock, CategoryFuel, CategoryGeneral}
}

// Catalog is the fixed set of texts recommendations are drawn from.
// A Catalog is never modified after construction.
type Catalog struct {
	tips               map[Category][]string
	continueMessage    string
	transitionRemark   string
	affirmingRemark    string
	methodDescriptions map[farm.FarmingMethod]string
}

// DefaultCatalog returns the built-in tip catalog.
func DefaultCatalog() *Catalog {
	return &Catalog{
		tips: map[Category][]string{
			CategoryFertilizer: {
				"Use local compost made from kitchen waste and residues",
				"Consider using cover crops to fix nitrogen",
				"Apply fertilizer during the early rainy season for better absorption",
			},
			CategoryLivestock: {
				"Practice rotational grazing to prevent overgrazing",
				"Use local feed resources like residues",
				"Consider integrating livestock with farming (mixed farming)",
			},
			CategoryFuel: {
				"Use manual tools where possible to reduce fuel costs",
				"Maintain equipment regularly to improve fuel efficiency",
				"Consider using solar-powered irrigation systems",
			},
			CategoryGeneral: {
				"Plant trees around your farm to provide shade and reduce soil erosion",
				"Use rotation to maintain soil fertility",
				"Consider drought-resistant varieties during dry seasons",
				"Practice water conservation techniques like mulching",
				"Use local varieties adapted to your climate",
			},
		},
		continueMessage:  "Continue your current sustainable practices!",
		transitionRemark: "Consider transitioning to organic or agroforestry methods to reduce emissions",
		affirmingRemark:  "Great choice! Your sustainable farming method is helping reduce emissions",
		methodDescriptions: map[farm.FarmingMethod]string{
			farm.MethodConventional: "You use regular tilling and chemical fertilizers (like NPK or urea)",
			farm.MethodOrganic:      "You use traditional methods like compost, animal manure, and natural pest control",
			farm.MethodAgroforestry: "You grow trees or use alley cropping",
			farm.MethodConservation: "You practice minimum tillage and use cover crops",
			farm.MethodPermaculture: "You farm in a way that mimics natural ecosystems, using local resources efficiently",
		},
	}
}

// Tips returns a copy of the tips in category.
func (c *Catalog) Tips(category Category) []string {
	return slices.Clone(c.tips[category])
}

// AllTips returns a copy of the full tip catalog keyed by category name.
func (c *Catalog) AllTips() map[string][]string {
	out := make(map[string][]string, len(c.tips))
	for k, v := range c.tips {
		out[string(k)] = slices.Clone(v)
	}
	return out
}

// ContinueMessage is the single recommendation given to a farm with no
// measurable emissions.
func (c *Catalog) ContinueMessage() string { return c.continueMessage }

// MethodDescription returns the plain-language description of method, or ""
// when the catalog has none.
func (c *Catalog) MethodDescription(method farm.FarmingMethod) string {
	return c.methodDescriptions[method]
}

// MethodDescriptions returns a copy of all method descriptions.
func (c *Catalog) MethodDescriptions() map[farm.FarmingMethod]string {
	return maps.Clone(c.methodDescriptions)
}

// methodRemark returns the remark for method and whether there is one.
// Conservation farming receives no remark.
func (c *Catalog) methodRemark(method farm.FarmingMethod) (string, bool) {
	switch method {
	case farm.MethodConventional:
		return c.transitionRemark, true
	case farm.MethodOrganic, farm.MethodAgroforestry, farm.MethodPermaculture:
		return c.affirmingRemark, true
	default:
		return "", false
	}
}
