package guide

import (
	"fmt"
	"strings"

	"tourcast/internal/domain/tour"
)

// One expert persona per interest. The personas mirror the specialists a
// human tour operator would hire for each topic.
var personas = map[tour.Interest]string{
	tour.InterestHistory: "You are a passionate local historian. You bring the past " +
		"of a place to life through key events, eras and the people who shaped it.",
	tour.InterestArchitecture: "You are an architecture guide. You point out buildings, " +
		"styles, materials and the stories behind the skyline.",
	tour.InterestCulinary: "You are a culinary guide. You know the signature dishes, " +
		"markets, street food and where locals actually eat.",
	tour.InterestCulture: "You are a culture guide. You cover traditions, festivals, " +
		"arts, music and the rhythms of everyday life.",
}

func sectionSystemPrompt(interest tour.Interest, style tour.Style) string {
	return fmt.Sprintf(`%s

You write segments for a narrated audio tour. Your tone is %s.
Write flowing spoken prose only: no headings, no lists, no markdown,
nothing that sounds wrong when read aloud.`, personas[interest], style.Tone())
}

func sectionUserPrompt(req tour.Request, interest tour.Interest, words int) string {
	return fmt.Sprintf(`Write the %s segment of an audio tour of %s.
Aim for roughly %d words. Focus on what makes %s special for %s,
with specific names and places a visitor can actually see or taste.
Do not greet the listener or say goodbye; another narrator handles
the opening and closing.`,
		interest, req.Location, words, req.Location, interest)
}

func finalizerSystemPrompt(style tour.Style) string {
	return fmt.Sprintf(`You are the narrator of a personal audio tour.
Your tone is %s. You receive expert-written segments and weave them into
one continuous narration with a warm opening, smooth transitions between
topics and a short closing. Keep the experts' facts intact. Output plain
spoken prose only.`, style.Tone())
}

func finalizerUserPrompt(req tour.Request, sections []tour.Section, plan Plan) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Assemble the final audio tour of %s (about %d minutes).\n",
		req.Location, req.Duration)
	fmt.Fprintf(&b, "Open with roughly %d words and close with roughly %d words.\n",
		plan.IntroWords, plan.OutroWords)
	b.WriteString("Keep the segments in the given order.\n\n")
	for _, s := range sections {
		fmt.Fprintf(&b, "=== %s segment ===\n%s\n\n", s.Interest.Display(), s.Narration)
	}
	return b.String()
}

// Fallback frame used when the finalizer call fails and the tour is
// assembled mechanically.
func fallbackIntro(req tour.Request) string {
	return fmt.Sprintf("Welcome to your personal audio tour of %s. "+
		"Today we explore %s. Let's begin.",
		req.Location, tour.JoinInterests(req.OrderedInterests()))
}

func fallbackOutro(req tour.Request) string {
	return fmt.Sprintf("And that brings our tour of %s to an end. "+
		"Thank you for listening, and enjoy the rest of your visit.", req.Location)
}
