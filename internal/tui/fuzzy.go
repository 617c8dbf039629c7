package tui

import "strings"

// FuzzyMatch checks whether all characters of query appear in target in
// order (case-insensitive). Returns whether it matched and a relevance
// score rewarding consecutive runs, start-of-string, and word boundaries.
func FuzzyMatch(query, target string) (bool, int) {
	if query == "" {
		return true, 0
	}

	q := strings.ToLower(query)
	t := strings.ToLower(target)

	qi := 0
	score := 0
	consecutive := 0

	for ti := 0; ti < len(t) && qi < len(q); ti++ {
		if t[ti] != q[qi] {
			consecutive = 0
			continue
		}
		qi++
		consecutive++
		score += consecutive

		if ti == 0 {
			score += 3
		} else {
			switch t[ti-1] {
			case ' ', '/', '-', '_', '.':
				score += 2
			}
		}
	}

	return qi == len(q), score
}
