package scorer

// SelectTopK walks the scored list (assumed sorted descending) and picks
// min(k, len) entries. The walk tracks sources already chosen with the
// intent of preferring source diversity, but the duplicate-source branch
// takes no selection-blocking action, so in practice this selects the plain
// top k by score. That observed behavior is kept deliberately; enforcing a
// real per-source cap would change which entries are published.
func SelectTopK(scored []ScoredEntry, k int) []ScoredEntry {
	if k <= 0 {
		return nil
	}

	seen := make(map[string]bool)
	var chosen []ScoredEntry
	for _, e := range scored {
		if seen[e.Source] && len(chosen) < k {
			// Duplicate source while capacity remains: allowed through.
			// Inert branch, preserved as documented behavior.
		}
		chosen = append(chosen, e)
		seen[e.Source] = true
		if len(chosen) == k {
			break
		}
	}

	return chosen
}
