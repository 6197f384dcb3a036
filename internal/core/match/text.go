package match

import "strings"

// normalizeText lowercases and trims a surface form before any comparison.
func normalizeText(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// foldText additionally strips separators, so "Company A", "company_a" and
// "companyA" collapse to the same key. Used for exact-match classification.
func foldText(s string) string {
	s = normalizeText(s)
	return strings.Map(func(r rune) rune {
		switch r {
		case ' ', '_', '-':
			return -1
		}
		return r
	}, s)
}

// LevenshteinRatio returns an edit-similarity ratio in [0,1].
func LevenshteinRatio(s1, s2 string) float64 {
	s1 = normalizeText(s1)
	s2 = normalizeText(s2)
	maxLen := float64(max(len(s1), len(s2)))
	if maxLen == 0 {
		return 1.0
	}
	return 1.0 - (float64(levenshtein(s1, s2)) / maxLen)
}

// containmentRatio scores substring containment: if one normalized text
// contains the other, the ratio of their lengths, else 0.
func containmentRatio(s1, s2 string) float64 {
	s1 = normalizeText(s1)
	s2 = normalizeText(s2)
	if s1 == "" || s2 == "" {
		return 0
	}
	shorter, longer := s1, s2
	if len(shorter) > len(longer) {
		shorter, longer = longer, shorter
	}
	if strings.Contains(longer, shorter) {
		return float64(len(shorter)) / float64(len(longer))
	}
	return 0
}

// textSimilarity is the best of edit similarity and substring containment.
func textSimilarity(s1, s2 string) float64 {
	if s1 == "" || s2 == "" {
		return 0
	}
	edit := LevenshteinRatio(s1, s2)
	contain := containmentRatio(s1, s2)
	if contain > edit {
		return contain
	}
	return edit
}

func levenshtein(s1, s2 string) int {
	r1, r2 := []rune(s1), []rune(s2)
	len1, len2 := len(r1), len(r2)

	row := make([]int, len2+1)
	for i := 0; i <= len2; i++ {
		row[i] = i
	}

	for i := 1; i <= len1; i++ {
		prev := i
		for j := 1; j <= len2; j++ {
			val := row[j]
			if r1[i-1] == r2[j-1] {
				val = row[j-1]
			} else {
				val = min(min(row[j-1]+1, prev+1), row[j]+1)
			}
			row[j-1] = prev
			prev = val
		}
		row[len2] = prev
	}
	return row[len2]
}
