// Package linker pairs article titles collected by different scrape methods.
package linker

import (
	"strings"

	"github.com/antzucaro/matchr"
)

// DefaultThreshold is the minimum similarity for two titles to be
// considered the same article.
const DefaultThreshold = 0.9

type Pair struct {
	Left       string
	Right      string
	Similarity float64
}

func normalizeTitle(title string) string {
	return strings.Join(strings.Fields(strings.ToLower(title)), " ")
}

// Link pairs every title of the shorter list with at most one title of the
// other list. Titles equal after case and whitespace folding are paired first
// with a similarity of 1, the remaining ones are paired greedily with their
// most similar unpaired counterpart by Jaro-Winkler distance.
func Link(leftList, rightList []string) []Pair {
	swapped := false
	if len(rightList) < len(leftList) {
		leftList, rightList = rightList, leftList
		swapped = true
	}
	makePair := func(left, right string, similarity float64) Pair {
		if swapped {
			return Pair{Left: right, Right: left, Similarity: similarity}
		}
		return Pair{Left: left, Right: right, Similarity: similarity}
	}

	leftKeys := make([]string, len(leftList))
	for i, l := range leftList {
		leftKeys[i] = normalizeTitle(l)
	}
	rightKeys := make([]string, len(rightList))
	exact := make(map[string][]int)
	for i, r := range rightList {
		rightKeys[i] = normalizeTitle(r)
		exact[rightKeys[i]] = append(exact[rightKeys[i]], i)
	}

	var result []Pair
	pairedLeft := make([]bool, len(leftList))
	pairedRight := make([]bool, len(rightList))

	for i, key := range leftKeys {
		candidates := exact[key]
		if len(candidates) == 0 {
			continue
		}
		j := candidates[0]
		exact[key] = candidates[1:]
		pairedLeft[i] = true
		pairedRight[j] = true
		result = append(result, makePair(leftList[i], rightList[j], 1))
	}

	for i, key := range leftKeys {
		if pairedLeft[i] {
			continue
		}

		best := -1
		var bestSimilarity float64
		for j, rkey := range rightKeys {
			if pairedRight[j] {
				continue
			}
			similarity := matchr.JaroWinkler(key, rkey, false)
			if similarity > bestSimilarity {
				bestSimilarity = similarity
				best = j
			}
		}
		if best < 0 {
			continue
		}

		pairedLeft[i] = true
		pairedRight[best] = true
		result = append(result, makePair(leftList[i], rightList[best], bestSimilarity))
	}

	return result
}

// Agreement counts the pairs produced by Link whose similarity reaches threshold.
func Agreement(leftList, rightList []string, threshold float64) int {
	count := 0
	for _, p := range Link(leftList, rightList) {
		if p.Similarity >= threshold {
			count++
		}
	}
	return count
}
