package modules

import (
	"context"

	"github.com/zricethezav/gitleaks/v8/detect"

	"github.com/sofmeright/govdeck/src/lint"
)

func init() {
	lint.Register("secrets", func() lint.Module { return &secretsModule{} })
}

type secretsModule struct {
	detector *detect.Detector
}

func (m *secretsModule) Name() string        { return "secrets" }
func (m *secretsModule) DefaultEnabled() bool { return true }

func (m *secretsModule) Check(ctx context.Context, target lint.Target) ([]lint.Finding, error) {
	// Lazy-init the detector; the engine serializes calls per module instance.
	if m.detector == nil {
		d, err := detect.NewDetectorDefaultConfig()
		if err != nil {
			return nil, err
		}
		m.detector = d
	}

	var findings []lint.Finding
	for i, s := range target.Deck.Slides {
		if err := ctx.Err(); err != nil {
			return findings, err
		}
		hits := m.detector.DetectBytes([]byte(lint.SlideText(s)))
		for _, h := range hits {
			findings = append(findings, lint.Finding{
				Slide:    i + 1,
				Severity: lint.SeverityCritical,
				Message:  h.Description + " (" + h.RuleID + ")",
			})
		}
	}
	return findings, nil
}
