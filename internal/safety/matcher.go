package safety

// Matcher finds the best candidate for a user-typed exercise name that had
// no exact catalog match. Implementations must be deterministic: the same
// input and candidate list always yields the same answer.
type Matcher interface {
	Match(input string, candidates []string) (best string, ok bool)
}

// LevenshteinMatcher matches within a bounded edit distance. Ties are
// broken by lowest distance, then by candidate order, so passing a sorted
// candidate list makes results fully deterministic.
type LevenshteinMatcher struct {
	MaxDistance int
}

// minFuzzyLen is the shortest input worth fuzzy-matching. Below this,
// almost everything is within two edits of something.
const minFuzzyLen = 3

func (m LevenshteinMatcher) Match(input string, candidates []string) (string, bool) {
	if len([]rune(input)) < minFuzzyLen {
		return "", false
	}

	best := ""
	bestDist := m.MaxDistance + 1
	inputRunes := []rune(input)

	for _, candidate := range candidates {
		candRunes := []rune(candidate)

		// Length gap alone can rule a candidate out.
		lenDiff := len(candRunes) - len(inputRunes)
		if lenDiff < 0 {
			lenDiff = -lenDiff
		}
		if lenDiff >= bestDist {
			continue
		}

		dist := levenshtein(inputRunes, candRunes)
		if dist < bestDist {
			best = candidate
			bestDist = dist
		}
	}

	if bestDist > m.MaxDistance {
		return "", false
	}
	return best, true
}

// levenshtein computes the edit distance between two rune slices using
// two-row dynamic programming, O(min(m,n)) space.
func levenshtein(a, b []rune) int {
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}

	// Keep a as the shorter string so the rows stay small.
	if len(a) > len(b) {
		a, b = b, a
	}

	prev := make([]int, len(a)+1)
	curr := make([]int, len(a)+1)

	for i := range prev {
		prev[i] = i
	}

	for j := 1; j <= len(b); j++ {
		curr[0] = j
		for i := 1; i <= len(a); i++ {
			if a[i-1] == b[j-1] {
				curr[i] = prev[i-1]
			} else {
				curr[i] = 1 + minOf3(prev[i-1], prev[i], curr[i-1])
			}
		}
		prev, curr = curr, prev
	}

	return prev[len(a)]
}

func minOf3(a, b, c int) int {
	if a <= b && a <= c {
		return a
	}
	if b <= c {
		return b
	}
	return c
}
