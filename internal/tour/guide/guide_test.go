package guide

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tourcast/internal/domain/tour"
	"tourcast/internal/llm"
)

// replies per topic keyed on the expert persona in the system prompt.
func fakeGuideProvider(t *testing.T, finalizerErr error) llm.Provider {
	t.Helper()
	return llm.ProviderFunc(func(ctx context.Context, messages []llm.Message) (string, error) {
		require.Len(t, messages, 2)
		system := messages[0].Content

		switch {
		case strings.Contains(system, "narrator of a personal audio tour"):
			if finalizerErr != nil {
				return "", finalizerErr
			}
			return "Welcome! [stitched tour] Goodbye.", nil
		case strings.Contains(system, "historian"):
			return "history section", nil
		case strings.Contains(system, "architecture guide"):
			return "architecture section", nil
		case strings.Contains(system, "culinary guide"):
			return "culinary section", nil
		case strings.Contains(system, "culture guide"):
			return "culture section", nil
		}
		return "", errors.New("unexpected prompt")
	})
}

func TestManagerRunProducesScript(t *testing.T) {
	m := NewManager(fakeGuideProvider(t, nil))

	script, err := m.Run(context.Background(), tour.Request{
		Location:  "Rome",
		Interests: []tour.Interest{tour.InterestCulinary, tour.InterestHistory},
		Duration:  10,
		Style:     tour.StyleFriendly,
	})
	require.NoError(t, err)

	assert.Equal(t, "Rome", script.Location)
	assert.NotEmpty(t, script.ID)
	assert.Equal(t, "Welcome! [stitched tour] Goodbye.", script.Narration)

	// Sections come back in catalog order, not request order.
	require.Len(t, script.Sections, 2)
	assert.Equal(t, tour.InterestHistory, script.Sections[0].Interest)
	assert.Equal(t, "history section", script.Sections[0].Narration)
	assert.Equal(t, tour.InterestCulinary, script.Sections[1].Interest)
	assert.Positive(t, script.Sections[0].WordBudget)
}

func TestManagerRunFallsBackWhenFinalizerFails(t *testing.T) {
	m := NewManager(fakeGuideProvider(t, errors.New("rate limited")))

	script, err := m.Run(context.Background(), tour.Request{
		Location:  "Rome",
		Interests: []tour.Interest{tour.InterestHistory, tour.InterestArchitecture},
		Duration:  10,
	})
	require.NoError(t, err)

	assert.Contains(t, script.Narration, "Welcome to your personal audio tour of Rome")
	assert.Contains(t, script.Narration, "history section")
	assert.Contains(t, script.Narration, "architecture section")
	assert.Contains(t, script.Narration, "tour of Rome to an end")

	// Sections before the intro never appear out of order.
	historyIdx := strings.Index(script.Narration, "history section")
	archIdx := strings.Index(script.Narration, "architecture section")
	assert.Less(t, historyIdx, archIdx)
}

func TestManagerRunValidatesRequest(t *testing.T) {
	m := NewManager(llm.NewScriptProvider())

	_, err := m.Run(context.Background(), tour.Request{Location: ""})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "location")

	_, err = m.Run(context.Background(), tour.Request{Location: "Rome"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "interest")
}

func TestManagerRunPropagatesSectionErrors(t *testing.T) {
	failing := llm.ProviderFunc(func(ctx context.Context, messages []llm.Message) (string, error) {
		return "", errors.New("boom")
	})
	m := NewManager(failing)

	_, err := m.Run(context.Background(), tour.Request{
		Location:  "Rome",
		Interests: []tour.Interest{tour.InterestHistory},
		Duration:  10,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "history section failed")
}

func TestManagerRunAllInterestsSingleProvider(t *testing.T) {
	m := NewManager(fakeGuideProvider(t, nil))

	script, err := m.Run(context.Background(), tour.Request{
		Location:  "Kyoto",
		Interests: tour.Catalog,
		Duration:  30,
		Style:     tour.StyleProfessional,
	})
	require.NoError(t, err)

	require.Len(t, script.Sections, 4)
	assert.Equal(t, tour.InterestHistory, script.Sections[0].Interest)
	assert.Equal(t, tour.InterestArchitecture, script.Sections[1].Interest)
	assert.Equal(t, tour.InterestCulture, script.Sections[2].Interest)
	assert.Equal(t, tour.InterestCulinary, script.Sections[3].Interest)
}

func TestSectionPromptsCarryBudgetAndLocation(t *testing.T) {
	req := tour.Request{Location: "Porto", Style: tour.StyleEnergetic}
	prompt := sectionUserPrompt(req, tour.InterestCulinary, 300)

	assert.Contains(t, prompt, "Porto")
	assert.Contains(t, prompt, "300 words")
	assert.Contains(t, prompt, "culinary")

	system := sectionSystemPrompt(tour.InterestCulinary, tour.StyleEnergetic)
	assert.Contains(t, system, "culinary guide")
	assert.Contains(t, system, "enthusiastic")
}
