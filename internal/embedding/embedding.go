// Package embedding turns text into sparse term-frequency vectors. The
// vectors are cheap to build, need no external model, and work well enough
// for ranking document chunks against short chat queries.
package embedding

import (
	"math"
	"regexp"
	"strings"
)

var tokenRE = regexp.MustCompile(`[a-zA-Z0-9]+`)

// Embed builds an L2-normalized term-frequency vector for text. Tokens are
// lowercased alphanumeric runs; single-character tokens are dropped as noise.
func Embed(text string) map[string]float64 {
	tokens := tokenRE.FindAllString(strings.ToLower(text), -1)
	if len(tokens) == 0 {
		return map[string]float64{}
	}

	freq := make(map[string]float64)
	for _, token := range tokens {
		if len(token) < 2 {
			continue
		}
		freq[token]++
	}

	var norm float64
	for _, count := range freq {
		norm += count * count
	}
	if norm == 0 {
		return freq
	}
	norm = math.Sqrt(norm)
	for token, count := range freq {
		freq[token] = count / norm
	}
	return freq
}

// Cosine computes the cosine similarity of two sparse vectors. Vectors with
// no overlapping terms score zero.
func Cosine(a, b map[string]float64) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	var dot float64
	for token, av := range a {
		if bv, ok := b[token]; ok {
			dot += av * bv
		}
	}
	if dot == 0 {
		return 0
	}

	var normA, normB float64
	for _, v := range a {
		normA += v * v
	}
	for _, v := range b {
		normB += v * v
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
