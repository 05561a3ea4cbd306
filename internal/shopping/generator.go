package shopping

import (
	"fmt"
	"hash/fnv"
	"time"

	"github.com/google/uuid"

	"mealmind/internal/plan"
)

// Generate turns a meal plan into a shopping list. Empty slots contribute
// nothing; generation never fails for bad ingredient data, the normalizer
// defaults apply instead.
//
// Item ids are derived from the merge key, so repeated generation against an
// unchanged plan yields the same ids. When existing is non-nil, checked
// state carries forward for items whose merge key is unchanged; new items
// start unchecked and vanished items are dropped, which makes regeneration
// idempotent with respect to user progress.
func Generate(p *plan.MealPlan, existing *ShoppingList) *ShoppingList {
	items := Aggregate(p.Meals())

	checkedByKey := map[string]bool{}
	if existing != nil {
		for _, item := range existing.Items {
			key := item.mergeKey
			if key == "" {
				key = MergeKey(item.Name, item.Unit)
			}
			checkedByKey[key] = item.Checked
		}
	}

	for i := range items {
		items[i].Category = Classify(items[i])
		items[i].ID = itemID(items[i].mergeKey)
		items[i].Checked = checkedByKey[items[i].mergeKey]
	}

	list := &ShoppingList{
		ID:            uuid.NewString(),
		MealPlanID:    p.ID,
		WeekStartDate: p.WeekStartDate,
		Items:         items,
		CreatedAt:     time.Now().UTC(),
	}
	if existing != nil {
		list.ID = existing.ID
		list.CreatedAt = existing.CreatedAt
	}
	return list
}

// itemID derives a stable synthetic id from the merge key.
func itemID(mergeKey string) string {
	h := fnv.New64a()
	h.Write([]byte(mergeKey))
	return fmt.Sprintf("item-%016x", h.Sum64())
}
