package tour

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Interest is a tour topic the guide can cover.
type Interest string

const (
	InterestHistory      Interest = "history"
	InterestArchitecture Interest = "architecture"
	InterestCulinary     Interest = "culinary"
	InterestCulture      Interest = "culture"
)

// Interests in the order sections appear in a finished tour.
var Catalog = []Interest{
	InterestHistory,
	InterestArchitecture,
	InterestCulture,
	InterestCulinary,
}

// ParseInterest maps user input to a known interest.
func ParseInterest(s string) (Interest, error) {
	switch Interest(strings.ToLower(strings.TrimSpace(s))) {
	case InterestHistory:
		return InterestHistory, nil
	case InterestArchitecture:
		return InterestArchitecture, nil
	case InterestCulinary:
		return InterestCulinary, nil
	case InterestCulture:
		return InterestCulture, nil
	}
	return "", fmt.Errorf("unknown interest %q (available: %s)", s, JoinInterests(Catalog))
}

// Display returns the human-readable name of the interest.
func (i Interest) Display() string {
	if i == "" {
		return ""
	}
	return strings.ToUpper(string(i[:1])) + string(i[1:])
}

// JoinInterests renders a list of interests for messages and prompts.
func JoinInterests(interests []Interest) string {
	names := make([]string, 0, len(interests))
	for _, i := range interests {
		names = append(names, string(i))
	}
	return strings.Join(names, ", ")
}

// Style is the guide persona used for the narration.
type Style string

const (
	StyleFriendly     Style = "friendly"
	StyleProfessional Style = "professional"
	StyleEnergetic    Style = "energetic"
)

var Styles = []Style{StyleFriendly, StyleProfessional, StyleEnergetic}

func ParseStyle(s string) (Style, error) {
	switch Style(strings.ToLower(strings.TrimSpace(s))) {
	case StyleFriendly:
		return StyleFriendly, nil
	case StyleProfessional:
		return StyleProfessional, nil
	case StyleEnergetic:
		return StyleEnergetic, nil
	}
	return "", fmt.Errorf("unknown style %q (available: friendly, professional, energetic)", s)
}

// Tone describes the persona to the language model.
func (s Style) Tone() string {
	switch s {
	case StyleProfessional:
		return "professional and detailed, like an expert museum docent"
	case StyleEnergetic:
		return "enthusiastic and energetic, full of genuine excitement"
	default:
		return "friendly and casual, like a knowledgeable local showing a friend around"
	}
}

// Duration limits match the original tour length selector.
const (
	MinDuration  = 5
	MaxDuration  = 60
	DurationStep = 5
)

// Request holds everything needed to generate one tour.
type Request struct {
	Location  string     `json:"location"`
	Interests []Interest `json:"interests"`
	Duration  int        `json:"duration"` // minutes
	Style     Style      `json:"style"`
	Voice     string     `json:"voice"`
}

// Normalize clamps the duration into [MinDuration, MaxDuration] and snaps
// it to the nearest step, and fills in the default style.
func (r *Request) Normalize() {
	if r.Duration < MinDuration {
		r.Duration = MinDuration
	}
	if r.Duration > MaxDuration {
		r.Duration = MaxDuration
	}
	r.Duration = ((r.Duration + DurationStep/2) / DurationStep) * DurationStep
	if r.Duration < MinDuration {
		r.Duration = MinDuration
	}
	if r.Style == "" {
		r.Style = StyleFriendly
	}
	r.Location = strings.TrimSpace(r.Location)
}

// Validate checks the request the same way the original form did:
// location first, then at least one interest.
func (r *Request) Validate() error {
	if strings.TrimSpace(r.Location) == "" {
		return fmt.Errorf("please enter a location")
	}
	if len(r.Interests) == 0 {
		return fmt.Errorf("please select at least one interest")
	}
	seen := make(map[Interest]bool, len(r.Interests))
	for _, i := range r.Interests {
		if _, err := ParseInterest(string(i)); err != nil {
			return err
		}
		if seen[i] {
			return fmt.Errorf("interest %q given more than once", i)
		}
		seen[i] = true
	}
	return nil
}

// OrderedInterests returns the request's interests in canonical section order.
func (r *Request) OrderedInterests() []Interest {
	chosen := make(map[Interest]bool, len(r.Interests))
	for _, i := range r.Interests {
		chosen[i] = true
	}
	ordered := make([]Interest, 0, len(r.Interests))
	for _, i := range Catalog {
		if chosen[i] {
			ordered = append(ordered, i)
		}
	}
	return ordered
}

// Section is one expert-written part of the tour.
type Section struct {
	Interest   Interest `json:"interest"`
	Narration  string   `json:"narration"`
	WordBudget int      `json:"word_budget"`
}

// Script is a finished tour ready for narration.
type Script struct {
	ID        string     `json:"id"`
	Location  string     `json:"location"`
	Interests []Interest `json:"interests"`
	Duration  int        `json:"duration"`
	Style     Style      `json:"style"`
	Sections  []Section  `json:"sections"`
	Narration string     `json:"narration"`
	CreatedAt time.Time  `json:"created_at"`
}

// NewScript creates an empty script for the request.
func NewScript(req Request) *Script {
	return &Script{
		ID:        uuid.NewString(),
		Location:  req.Location,
		Interests: req.OrderedInterests(),
		Duration:  req.Duration,
		Style:     req.Style,
		CreatedAt: time.Now(),
	}
}

// Text returns the full narration.
func (s *Script) Text() string {
	return s.Narration
}

// Words counts the words in the narration.
func (s *Script) Words() int {
	return len(strings.Fields(s.Narration))
}

// OutputFileName is the download name for the tour audio,
// e.g. "New York" -> "new_york_tour.mp3".
func OutputFileName(location string) string {
	name := strings.ToLower(strings.TrimSpace(location))
	name = strings.ReplaceAll(name, " ", "_")
	name = strings.ReplaceAll(name, "/", "_")
	if name == "" {
		name = "audio"
	}
	return name + "_tour.mp3"
}
