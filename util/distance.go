package util

// Levenshtein computes the Levenshtein distance between s1 and s2: the
// number of single-byte insertions, deletions, and substitutions it takes
// to transform one string into the other. Unlike the textbook formulation
// it keeps only two rows of the edit matrix, so memory use is linear in
// len(s2).
func Levenshtein(s1, s2 string) int {
	if len(s2) == 0 {
		return len(s1)
	}
	if len(s1) == 0 {
		return len(s2)
	}

	prev := make([]int, len(s2)+1)
	cur := make([]int, len(s2)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(s1); i++ {
		cur[0] = i
		for j := 1; j <= len(s2); j++ {
			del := prev[j] + 1
			ins := cur[j-1] + 1
			sub := prev[j-1]
			if s1[i-1] != s2[j-1] {
				sub++
			}
			min := del
			if ins < min {
				min = ins
			}
			if sub < min {
				min = sub
			}
			cur[j] = min
		}
		prev, cur = cur, prev
	}
	return prev[len(s2)]
}

// Closest returns the candidate with the smallest Levenshtein distance to
// name, provided that distance is at most maxDist. Ties break in favor of
// the earliest candidate. The boolean reports whether any candidate
// qualified.
func Closest(name string, candidates []string, maxDist int) (string, bool) {
	best := ""
	bestDist := maxDist + 1
	for _, c := range candidates {
		if d := Levenshtein(name, c); d < bestDist {
			best = c
			bestDist = d
		}
	}
	return best, bestDist <= maxDist
}
