package classify

import "github.com/ppiankov/stratclass/internal/model"

// Partition selects one subset per category, in category order, followed by
// the unclassified subset. Row order within each subset follows input order.
func Partition(categories []model.Category, masks *model.Masks, unclassifiedName string) []model.Subset {
	subsets := make([]model.Subset, 0, len(categories)+1)

	for _, cat := range categories {
		subsets = append(subsets, model.Subset{
			Name:       cat.Name,
			CategoryID: cat.ID,
			FileName:   cat.FileName(),
			Rows:       selectRows(masks.ByCategory[cat.ID], true),
		})
	}

	subsets = append(subsets, model.Subset{
		Name:     unclassifiedName,
		FileName: unclassifiedName + ".csv",
		Rows:     selectRows(masks.Any, false),
	})

	return subsets
}

// selectRows returns indices where mask equals want
func selectRows(mask []bool, want bool) []int {
	rows := make([]int, 0)
	for i, v := range mask {
		if v == want {
			rows = append(rows, i)
		}
	}
	return rows
}
