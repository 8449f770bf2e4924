// Package ranker scores candidate test cases and selects the most promising.
package ranker

import (
	"sort"
	"strings"

	"github.com/ezyqa/game-tester/pkg/core"
	"github.com/ezyqa/game-tester/pkg/logger"
)

// DefaultTopK is the selection size used when the request does not specify one.
const DefaultTopK = 10

// Category weights reflect how likely each area is to surface bugs in a
// puzzle game: core gameplay first, then account flows, then presentation.
var categoryWeights = map[string]int{
	"gameplay":       30,
	"login":          25,
	"edge":           22,
	"seeded":         20,
	"onboarding":     18,
	"rewards":        15,
	"leaderboard":    12,
	"responsiveness": 10,
}

// Keywords in a description that hint at negative-path coverage.
var bugHints = []string{"invalid", "error", "reject", "rapid", "reload", "slow"}

// Rank orders candidates by descending score and returns the topK best.
// The sort is stable, so equally scored candidates keep their planner order.
// A non-positive topK falls back to DefaultTopK; a topK beyond the input
// size returns all candidates.
func Rank(candidates []core.TestCase, topK int) []core.TestCase {
	if topK <= 0 {
		topK = DefaultTopK
	}

	logger.Info("ranker scoring %d candidates, selecting top %d", len(candidates), topK)

	ranked := append([]core.TestCase(nil), candidates...)
	sort.SliceStable(ranked, func(i, j int) bool {
		return Score(ranked[i]) > Score(ranked[j])
	})

	if topK > len(ranked) {
		topK = len(ranked)
	}
	return ranked[:topK]
}

// Score rates a candidate by importance, coverage and bug-finding ability.
func Score(tc core.TestCase) int {
	score := categoryWeights[tc.Category]
	score += tc.Priority * 10

	// Deeper scenarios exercise more of the site, up to a point.
	steps := len(tc.Steps)
	if steps > 5 {
		steps = 5
	}
	score += steps * 2

	desc := strings.ToLower(tc.Description)
	for _, hint := range bugHints {
		if strings.Contains(desc, hint) {
			score += 5
			break
		}
	}

	return score
}
