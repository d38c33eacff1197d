package modules

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sofmeright/govdeck/src/lint"
)

func init() {
	lint.Register("structure", func() lint.Module { return &structureModule{} })
}

// structureModule reports deck validation errors and repeated slide titles.
type structureModule struct{}

func (m *structureModule) Name() string        { return "structure" }
func (m *structureModule) DefaultEnabled() bool { return true }

func (m *structureModule) Check(ctx context.Context, target lint.Target) ([]lint.Finding, error) {
	var findings []lint.Finding

	if err := target.Deck.Validate(); err != nil {
		for _, msg := range unwrapJoined(err) {
			findings = append(findings, lint.Finding{
				Severity: lint.SeverityCritical,
				Message:  msg,
			})
		}
	}

	first := make(map[string]int, len(target.Deck.Slides))
	for i, s := range target.Deck.Slides {
		key := strings.ToLower(strings.TrimSpace(s.Title))
		if key == "" {
			continue
		}
		if prev, ok := first[key]; ok {
			findings = append(findings, lint.Finding{
				Slide:    i + 1,
				Severity: lint.SeverityWarning,
				Message:  fmt.Sprintf("title %q repeats slide %d", s.Title, prev),
			})
			continue
		}
		first[key] = i + 1
	}

	return findings, nil
}

// unwrapJoined flattens the errors.Join tree Validate returns into one
// message per violation.
func unwrapJoined(err error) []string {
	var joined interface{ Unwrap() []error }
	for e := err; e != nil; e = errors.Unwrap(e) {
		if j, ok := e.(interface{ Unwrap() []error }); ok {
			joined = j
			break
		}
	}
	if joined == nil {
		return []string{err.Error()}
	}
	var msgs []string
	for _, e := range joined.Unwrap() {
		msgs = append(msgs, e.Error())
	}
	return msgs
}
