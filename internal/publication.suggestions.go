package internal

import (
	"sort"
	"strings"
)

// Suggest returns up to max candidates close to target by edit distance,
// closest first. Ties keep candidate order. Comparison ignores case.
func Suggest(target string, candidates []string, max int) []string {
	if target == "" || len(candidates) == 0 || max <= 0 {
		return nil
	}

	threshold := len([]rune(target)) / 2
	if threshold < 2 {
		threshold = 2
	}

	type scored struct {
		value    string
		distance int
	}

	lowered := strings.ToLower(target)
	var similar []scored
	for _, candidate := range candidates {
		dist := editDistance(lowered, strings.ToLower(candidate))
		if dist <= threshold {
			similar = append(similar, scored{value: candidate, distance: dist})
		}
	}

	sort.SliceStable(similar, func(i, j int) bool {
		return similar[i].distance < similar[j].distance
	})

	if len(similar) > max {
		similar = similar[:max]
	}
	result := make([]string, len(similar))
	for i, s := range similar {
		result[i] = s.value
	}
	return result
}

// editDistance is the Levenshtein distance between a and b, counted in runes.
func editDistance(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	if len(ra) == 0 {
		return len(rb)
	}
	if len(rb) == 0 {
		return len(ra)
	}

	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			curr[j] = minOf(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(rb)]
}

func minOf(a, b, c int) int {
	if a <= b && a <= c {
		return a
	}
	if b <= c {
		return b
	}
	return c
}

// FormatSuggestions renders suggestions as "'a', 'b' or 'c'".
// It returns "" for no suggestions.
func FormatSuggestions(suggestions []string) string {
	if len(suggestions) == 0 {
		return ""
	}

	var sb strings.Builder
	for i, s := range suggestions {
		if i > 0 {
			if i == len(suggestions)-1 {
				sb.WriteString(" or ")
			} else {
				sb.WriteString(", ")
			}
		}
		sb.WriteByte('\'')
		sb.WriteString(s)
		sb.WriteByte('\'')
	}
	return sb.String()
}
