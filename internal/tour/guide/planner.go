package guide

import "tourcast/internal/domain/tour"

// Spoken narration pace used to turn minutes into a word budget.
const wordsPerMinute = 150

const (
	introShare    = 10 // percent of the total budget
	outroShare    = 8
	minFrameWords = 40
	maxFrameWords = 180
)

// Plan allocates the spoken-word budget of a tour across its parts.
type Plan struct {
	TotalWords   int
	IntroWords   int
	OutroWords   int
	SectionWords map[tour.Interest]int
}

// BuildPlan splits the word budget for the requested duration: a short
// intro and outro frame the tour, the remainder is shared evenly across
// the chosen interests.
func BuildPlan(req tour.Request) Plan {
	total := req.Duration * wordsPerMinute

	intro := clampWords(total * introShare / 100)
	outro := clampWords(total * outroShare / 100)

	interests := req.OrderedInterests()
	plan := Plan{
		TotalWords:   total,
		IntroWords:   intro,
		OutroWords:   outro,
		SectionWords: make(map[tour.Interest]int, len(interests)),
	}

	if len(interests) == 0 {
		return plan
	}

	remaining := total - intro - outro
	if remaining < 0 {
		remaining = 0
	}
	share := remaining / len(interests)
	for _, interest := range interests {
		plan.SectionWords[interest] = share
	}
	return plan
}

func clampWords(n int) int {
	if n < minFrameWords {
		return minFrameWords
	}
	if n > maxFrameWords {
		return maxFrameWords
	}
	return n
}
