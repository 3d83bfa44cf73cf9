// Package similarity scores how alike two item posts read. It is the pure
// core of the matching pipeline: no I/O, no state.
package similarity

import "strings"

// ItemText is the free-text surface of an item post that participates in
// matching.
type ItemText struct {
	Title       string
	Description string
	Location    string
}

// Score returns the Sørensen–Dice coefficient over character bigrams of the
// two items' concatenated text, in [0, 1]. Identical non-empty text scores 1,
// disjoint text scores 0, and Score(a, b) == Score(b, a).
func Score(a, b ItemText) float64 {
	sa := normalize(a)
	sb := normalize(b)

	if sa == sb {
		if sa == "" {
			return 0
		}
		return 1
	}

	ba := bigrams(sa)
	bb := bigrams(sb)
	if len(ba) == 0 || len(bb) == 0 {
		return 0
	}

	// Multiset intersection: each bigram occurrence pairs up at most once.
	counts := make(map[string]int, len(ba))
	for _, g := range ba {
		counts[g]++
	}

	overlap := 0
	for _, g := range bb {
		if counts[g] > 0 {
			counts[g]--
			overlap++
		}
	}

	return 2.0 * float64(overlap) / float64(len(ba)+len(bb))
}

// normalize lowercases and collapses whitespace across the item's fields so
// that formatting differences do not affect the score.
func normalize(t ItemText) string {
	joined := t.Title + " " + t.Description + " " + t.Location
	return strings.Join(strings.Fields(strings.ToLower(joined)), " ")
}

func bigrams(s string) []string {
	runes := []rune(s)
	if len(runes) < 2 {
		return nil
	}
	grams := make([]string, 0, len(runes)-1)
	for i := 0; i < len(runes)-1; i++ {
		grams = append(grams, string(runes[i:i+2]))
	}
	return grams
}
