package repo

import "github.com/bookstore/storefront/internal/db"

// DefaultMaxCategoryDepth bounds how many levels BuildCategoryTree descends.
const DefaultMaxCategoryDepth = 16

// CategoryNode is a category with its children resolved.
type CategoryNode struct {
	ID       uint            `json:"id"`
	Name     string          `json:"name"`
	Children []*CategoryNode `json:"children"`
}

// BuildCategoryTree links flat category rows into a forest rooted at the
// categories without a parent. Nodes live in one arena slice and are linked
// through id and parent indexes. Each node is attached at most once and no
// deeper than maxDepth levels, so parent cycles cannot make the walk loop;
// rows that are only reachable through a cycle or a missing parent are left
// out.
func BuildCategoryTree(categories []db.Category, maxDepth int) []*CategoryNode {
	if maxDepth <= 0 {
		maxDepth = DefaultMaxCategoryDepth
	}

	arena := make([]CategoryNode, len(categories))
	children := make(map[uint][]int, len(categories))
	roots := make([]int, 0)

	for i, c := range categories {
		arena[i] = CategoryNode{ID: c.ID, Name: c.Name, Children: []*CategoryNode{}}
		if c.ParentID == nil {
			roots = append(roots, i)
			continue
		}
		children[*c.ParentID] = append(children[*c.ParentID], i)
	}

	attached := make([]bool, len(arena))
	var attach func(i, depth int)
	attach = func(i, depth int) {
		attached[i] = true
		if depth >= maxDepth {
			return
		}
		for _, child := range children[arena[i].ID] {
			if attached[child] {
				continue
			}
			attach(child, depth+1)
			arena[i].Children = append(arena[i].Children, &arena[child])
		}
	}

	forest := make([]*CategoryNode, 0, len(roots))
	for _, i := range roots {
		if attached[i] {
			continue
		}
		attach(i, 1)
		forest = append(forest, &arena[i])
	}

	return forest
}
