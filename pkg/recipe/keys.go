package recipe

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"freshtrack-backend/domain"
)

// NormalizeIngredients trims, lower-cases, sorts and de-duplicates an
// ingredient list so equivalent queries share one cache entry.
func NormalizeIngredients(in []string) []string {
	out := make([]string, 0, len(in))
	for _, ing := range in {
		ing = strings.ToLower(strings.TrimSpace(ing))
		if ing != "" {
			out = append(out, ing)
		}
	}
	slices.Sort(out)
	return slices.Compact(out)
}

// SplitIngredients parses a comma-separated query value.
func SplitIngredients(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	return NormalizeIngredients(strings.Split(raw, ","))
}

func SearchCacheKey(p domain.RecipeSearchParams) string {
	maxReady := ""
	if p.MaxReadyTime > 0 {
		maxReady = strconv.Itoa(p.MaxReadyTime)
	}
	return fmt.Sprintf("recipes:search:q:%s:i:%s:d:%s:t:%s:n:%d:o:%d",
		strings.TrimSpace(p.Query),
		strings.Join(NormalizeIngredients(p.Ingredients), ","),
		strings.TrimSpace(p.Diet),
		maxReady,
		p.Number,
		p.Offset,
	)
}

func ByIngredientsCacheKey(ingredients []string, number, ranking int) string {
	return fmt.Sprintf("recipes:byingredients:%s:%d:%d",
		strings.Join(NormalizeIngredients(ingredients), ","), number, ranking)
}

func DetailCacheKey(id int) string {
	return "recipes:detail:" + strconv.Itoa(id)
}
