package llm

import (
	"context"
	"fmt"
	"sync"
)

// ScriptProvider replays canned replies in order. Used in tests and dry runs.
type ScriptProvider struct {
	mu       sync.Mutex
	replies  []string
	err      error
	Requests [][]Message
}

func NewScriptProvider(replies ...string) *ScriptProvider {
	return &ScriptProvider{replies: replies}
}

// Fail makes every subsequent call return err.
func (s *ScriptProvider) Fail(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = err
}

func (s *ScriptProvider) Name() string { return "script" }

func (s *ScriptProvider) Complete(ctx context.Context, messages []Message) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.Requests = append(s.Requests, messages)
	if s.err != nil {
		return "", s.err
	}
	if len(s.replies) == 0 {
		return "", fmt.Errorf("script provider: no replies left")
	}
	reply := s.replies[0]
	s.replies = s.replies[1:]
	return reply, nil
}

// Calls returns how many completions have been requested.
func (s *ScriptProvider) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.Requests)
}
