package guide

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"tourcast/internal/domain/tour"
)

func TestBuildPlanSplitsBudgetEvenly(t *testing.T) {
	req := tour.Request{
		Location:  "Rome",
		Interests: []tour.Interest{tour.InterestHistory, tour.InterestCulinary},
		Duration:  10,
	}

	plan := BuildPlan(req)

	assert.Equal(t, 1500, plan.TotalWords)
	assert.Equal(t, 150, plan.IntroWords)
	assert.Equal(t, 120, plan.OutroWords)

	// Remainder split evenly across the two interests.
	assert.Equal(t, 615, plan.SectionWords[tour.InterestHistory])
	assert.Equal(t, 615, plan.SectionWords[tour.InterestCulinary])
}

func TestBuildPlanClampsFrameWords(t *testing.T) {
	short := BuildPlan(tour.Request{
		Location:  "Rome",
		Interests: []tour.Interest{tour.InterestHistory},
		Duration:  5,
	})
	assert.Equal(t, 75, short.IntroWords)
	assert.Equal(t, 60, short.OutroWords)

	tiny := BuildPlan(tour.Request{
		Location:  "Rome",
		Interests: []tour.Interest{tour.InterestHistory},
		Duration:  1, // below the UI minimum; planner still behaves
	})
	assert.GreaterOrEqual(t, tiny.IntroWords, minFrameWords)

	long := BuildPlan(tour.Request{
		Location:  "Rome",
		Interests: []tour.Interest{tour.InterestHistory},
		Duration:  60,
	})
	assert.Equal(t, maxFrameWords, long.IntroWords)
	assert.Equal(t, maxFrameWords, long.OutroWords)
}

func TestBuildPlanAllInterests(t *testing.T) {
	req := tour.Request{
		Location:  "Kyoto",
		Interests: tour.Catalog,
		Duration:  20,
	}

	plan := BuildPlan(req)

	sum := plan.IntroWords + plan.OutroWords
	for _, words := range plan.SectionWords {
		assert.Positive(t, words)
		sum += words
	}
	// Integer division may leave a few words unassigned, never overshoot.
	assert.LessOrEqual(t, sum, plan.TotalWords)
	assert.Len(t, plan.SectionWords, 4)
}
