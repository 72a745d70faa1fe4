package guide

import (
	"context"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"tourcast/internal/domain/tour"
	"tourcast/internal/llm"
)

// How many expert sections are generated at the same time.
const maxConcurrentSections = 2

// Manager orchestrates one tour generation: it plans the word budget,
// lets one expert per interest write its section, and has a finalizer
// stitch everything into a single narration.
type Manager struct {
	provider llm.Provider
	log      *logrus.Entry
}

func NewManager(provider llm.Provider) *Manager {
	return &Manager{
		provider: provider,
		log:      logrus.WithField("component", "guide"),
	}
}

// Run generates the complete tour script for the request.
func (m *Manager) Run(ctx context.Context, req tour.Request) (*tour.Script, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	plan := BuildPlan(req)
	script := tour.NewScript(req)

	m.log.WithFields(logrus.Fields{
		"location":  req.Location,
		"interests": tour.JoinInterests(script.Interests),
		"duration":  req.Duration,
		"words":     plan.TotalWords,
	}).Info("Generating tour")

	sections, err := m.generateSections(ctx, req, plan)
	if err != nil {
		return nil, err
	}
	script.Sections = sections

	narration, err := m.finalize(ctx, req, sections, plan)
	if err != nil {
		// A failed final polish should not throw away finished sections.
		m.log.WithError(err).Warn("Finalizer failed, assembling tour mechanically")
		narration = assemble(req, sections)
	}
	script.Narration = narration

	m.log.WithFields(logrus.Fields{
		"tour_id": script.ID,
		"words":   script.Words(),
	}).Info("Tour ready")
	return script, nil
}

// generateSections runs one expert per interest, a few at a time.
// Section order stays canonical regardless of completion order.
func (m *Manager) generateSections(ctx context.Context, req tour.Request, plan Plan) ([]tour.Section, error) {
	interests := req.OrderedInterests()
	sections := make([]tour.Section, len(interests))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentSections)

	for idx, interest := range interests {
		idx, interest := idx, interest
		g.Go(func() error {
			words := plan.SectionWords[interest]
			reply, err := m.provider.Complete(gctx, []llm.Message{
				{Role: llm.RoleSystem, Content: sectionSystemPrompt(interest, req.Style)},
				{Role: llm.RoleUser, Content: sectionUserPrompt(req, interest, words)},
			})
			if err != nil {
				return fmt.Errorf("%s section failed: %w", interest, err)
			}
			sections[idx] = tour.Section{
				Interest:   interest,
				Narration:  strings.TrimSpace(reply),
				WordBudget: words,
			}
			m.log.WithFields(logrus.Fields{
				"interest": interest,
				"words":    len(strings.Fields(reply)),
			}).Debug("Section generated")
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return sections, nil
}

func (m *Manager) finalize(ctx context.Context, req tour.Request, sections []tour.Section, plan Plan) (string, error) {
	reply, err := m.provider.Complete(ctx, []llm.Message{
		{Role: llm.RoleSystem, Content: finalizerSystemPrompt(req.Style)},
		{Role: llm.RoleUser, Content: finalizerUserPrompt(req, sections, plan)},
	})
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(reply), nil
}

// assemble joins the sections with a templated intro and outro.
func assemble(req tour.Request, sections []tour.Section) string {
	parts := make([]string, 0, len(sections)+2)
	parts = append(parts, fallbackIntro(req))
	for _, s := range sections {
		parts = append(parts, s.Narration)
	}
	parts = append(parts, fallbackOutro(req))
	return strings.Join(parts, "\n\n")
}
