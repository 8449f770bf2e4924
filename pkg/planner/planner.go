// Package planner generates candidate test cases for a target game site.
//
// Candidates are drawn from a catalog of QA scenarios for online puzzle and
// gaming platforms covering login, onboarding, gameplay flow, leaderboards,
// rewards, responsiveness and edge cases. Optional seed ideas supplied by
// the caller become exploratory candidates ahead of the catalog.
package planner

import (
	"fmt"

	"github.com/ezyqa/game-tester/pkg/core"
	"github.com/ezyqa/game-tester/pkg/logger"
)

// DefaultCandidates is the number of test cases generated when the request
// does not specify one.
const DefaultCandidates = 20

// blueprint is a catalog entry a candidate is instantiated from.
type blueprint struct {
	category       string
	description    string
	steps          []string
	expectedResult string
	priority       int
}

var catalog = []blueprint{
	{
		category:    "login",
		description: "Verify a registered user can log in with valid credentials",
		steps: []string{
			"Open the site",
			"Click the login button",
			"Enter valid credentials and submit",
			"Wait for the home screen to load",
		},
		expectedResult: "User lands on the home screen with their profile visible",
		priority:       3,
	},
	{
		category:    "login",
		description: "Verify login is rejected for invalid credentials",
		steps: []string{
			"Open the site",
			"Click the login button",
			"Enter an invalid password and submit",
		},
		expectedResult: "An error message is shown and the user stays on the login form",
		priority:       3,
	},
	{
		category:    "onboarding",
		description: "Verify the first-time user tutorial is shown and can be completed",
		steps: []string{
			"Open the site in a fresh session",
			"Start a new game",
			"Follow each tutorial prompt to the end",
		},
		expectedResult: "Tutorial completes and the first puzzle becomes playable",
		priority:       2,
	},
	{
		category:    "gameplay",
		description: "Verify a puzzle can be played from start to completion",
		steps: []string{
			"Start a new puzzle",
			"Make valid moves until the puzzle is solved",
			"Observe the completion screen",
		},
		expectedResult: "Completion screen shows the final score and a next-puzzle option",
		priority:       3,
	},
	{
		category:    "gameplay",
		description: "Verify invalid moves are rejected without breaking game state",
		steps: []string{
			"Start a new puzzle",
			"Attempt an out-of-bounds or illegal move",
			"Continue with a valid move",
		},
		expectedResult: "Invalid move is ignored or flagged, valid play continues normally",
		priority:       3,
	},
	{
		category:    "gameplay",
		description: "Verify game state survives a page reload mid-session",
		steps: []string{
			"Start a puzzle and make several moves",
			"Reload the page",
			"Inspect the board state",
		},
		expectedResult: "Board restores to the pre-reload state or offers a clean resume",
		priority:       2,
	},
	{
		category:    "leaderboard",
		description: "Verify the leaderboard loads and reflects a finished game",
		steps: []string{
			"Complete a puzzle with a known score",
			"Open the leaderboard",
			"Locate the current user entry",
		},
		expectedResult: "Leaderboard lists the new score in the correct rank position",
		priority:       2,
	},
	{
		category:    "rewards",
		description: "Verify daily reward is granted once per day",
		steps: []string{
			"Log in and claim the daily reward",
			"Attempt to claim the reward again",
		},
		expectedResult: "Second claim is refused with a cooldown message",
		priority:       2,
	},
	{
		category:    "responsiveness",
		description: "Verify the layout adapts to a small mobile viewport",
		steps: []string{
			"Open the site at a 375x667 viewport",
			"Start a puzzle",
			"Check that all controls are reachable without horizontal scrolling",
		},
		expectedResult: "Game board and controls fit the viewport and remain usable",
		priority:       1,
	},
	{
		category:    "responsiveness",
		description: "Verify the site stays usable on a slow network connection",
		steps: []string{
			"Throttle the connection to slow 3G",
			"Load the site and start a puzzle",
		},
		expectedResult: "Site loads with progress feedback and the puzzle is playable",
		priority:       1,
	},
	{
		category:    "edge",
		description: "Verify rapid repeated clicks on game controls cause no duplicate actions",
		steps: []string{
			"Start a puzzle",
			"Click the same control many times in quick succession",
		},
		expectedResult: "Only one action is registered per logical interaction",
		priority:       2,
	},
	{
		category:    "edge",
		description: "Verify extremely long text input is handled in the profile name field",
		steps: []string{
			"Open profile settings",
			"Paste a 10,000 character string into the name field",
			"Save the profile",
		},
		expectedResult: "Input is truncated or rejected with a clear validation message",
		priority:       1,
	},
}

// Planner generates candidate test cases.
type Planner struct{}

// New creates a Planner.
func New() *Planner {
	return &Planner{}
}

// Generate produces n candidate test cases for the target URL. Seeds are
// turned into exploratory candidates first; the remainder cycles through the
// scenario catalog, numbering variants when the catalog wraps around.
// A non-positive n falls back to DefaultCandidates.
func (p *Planner) Generate(targetURL string, seeds []string, n int) []core.TestCase {
	if n <= 0 {
		n = DefaultCandidates
	}

	logger.Info("planner generating %d test cases for %s", n, targetURL)

	candidates := make([]core.TestCase, 0, n)

	for _, seed := range seeds {
		if len(candidates) == n {
			break
		}
		candidates = append(candidates, core.TestCase{
			ID:          fmt.Sprintf("cand_%d", len(candidates)+1),
			Description: "Exploratory: " + seed,
			Steps: []string{
				"Open " + targetURL,
				"Explore the scenario: " + seed,
				"Record any unexpected behavior",
			},
			ExpectedResult: "Scenario completes without errors or broken UI",
			Category:       "seeded",
			Priority:       2,
			TargetURL:      targetURL,
		})
	}

	for i := 0; len(candidates) < n; i++ {
		b := catalog[i%len(catalog)]

		description := b.description
		if round := i / len(catalog); round > 0 {
			description = fmt.Sprintf("%s (variant %d)", b.description, round+1)
		}

		candidates = append(candidates, core.TestCase{
			ID:             fmt.Sprintf("cand_%d", len(candidates)+1),
			Description:    description,
			Steps:          append([]string(nil), b.steps...),
			ExpectedResult: b.expectedResult,
			Category:       b.category,
			Priority:       b.priority,
			TargetURL:      targetURL,
		})
	}

	return candidates
}
