package recommend

// Merge concatenates candidate tiers in the order given, skipping items whose
// key was already taken and stopping at limit. Earlier tiers always win.
func Merge[T any](limit int, key func(T) string, tiers ...[]T) []T {
	seen := make(map[string]struct{})
	out := make([]T, 0, limit)
	for _, tier := range tiers {
		for _, item := range tier {
			if len(out) >= limit {
				return out
			}
			k := key(item)
			if _, dup := seen[k]; dup {
				continue
			}
			seen[k] = struct{}{}
			out = append(out, item)
		}
	}
	return out
}

// OrderByRanking returns items in the order of ids. Ids without a matching
// item are skipped.
func OrderByRanking[T any](ids []string, items []T, key func(T) string) []T {
	byKey := make(map[string]T, len(items))
	for _, item := range items {
		byKey[key(item)] = item
	}

	out := make([]T, 0, len(ids))
	for _, id := range ids {
		if item, ok := byKey[id]; ok {
			out = append(out, item)
		}
	}
	return out
}
