package dedup

import (
	"context"
	"slices"
)

// DuplicateGroups folds an owner's recorded duplicate pairs into connected
// components: documents linked through any chain of pairs land in the same
// group. Groups with fewer than two documents cannot occur. The result is
// deterministic: documents are sorted within each group and groups are
// sorted by their first document.
func (d *Detector) DuplicateGroups(ctx context.Context, ownerID string) ([][]string, error) {
	pairs, err := d.duplicates.DuplicatePairsByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	parent := make(map[string]string)

	var find func(id string) string
	find = func(id string) string {
		root, ok := parent[id]
		if !ok {
			parent[id] = id
			return id
		}
		if root == id {
			return id
		}
		// Path compression
		root = find(root)
		parent[id] = root
		return root
	}

	union := func(a, b string) {
		rootA, rootB := find(a), find(b)
		if rootA != rootB {
			parent[rootB] = rootA
		}
	}

	for _, pair := range pairs {
		union(pair.SourceDocumentID, pair.TargetDocumentID)
	}

	members := make(map[string][]string)
	for id := range parent {
		root := find(id)
		members[root] = append(members[root], id)
	}

	groups := make([][]string, 0, len(members))
	for _, group := range members {
		slices.Sort(group)
		groups = append(groups, group)
	}
	slices.SortFunc(groups, func(a, b []string) int {
		if a[0] < b[0] {
			return -1
		}
		if a[0] > b[0] {
			return 1
		}
		return 0
	})

	return groups, nil
}
