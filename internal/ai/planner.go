package ai

import (
	"context"
	"errors"
	"fmt"
)

// ErrNotConfigured means no model key was provided; callers get the
// rule-based plan and surface this as a service error.
var ErrNotConfigured = errors.New("AI API key not configured")

// FallbackApology is the canned chat answer when the model cannot respond.
const FallbackApology = "I'm sorry, I can't answer follow-up questions right now because my AI brain isn't fully connected."

// Planner generates day plans and follow-up answers. A nil Generator puts
// it in fallback-only mode.
type Planner struct {
	gen Generator
}

// NewPlanner creates a Planner. gen may be nil.
func NewPlanner(gen Generator) *Planner {
	return &Planner{gen: gen}
}

// DayPlan generates the itinerary text. On any model failure the returned
// string is still a usable rule-based plan and the error explains the
// degradation; callers record it and render the plan regardless.
func (p *Planner) DayPlan(ctx context.Context, in PlanInput) (string, error) {
	if p.gen == nil {
		return fallbackPlan(in), ErrNotConfigured
	}

	text, err := p.gen.Generate(ctx, buildPlanPrompt(in), planTemperature, planMaxTokens)
	if err != nil {
		return fallbackPlan(in), fmt.Errorf("AI service unavailable, using basic recommendations: %w", err)
	}
	return text, nil
}

// FollowUp answers a chat refinement turn. Unlike DayPlan there is no rule
// engine to fall back on; the error is definitive and the caller renders
// the apology text.
func (p *Planner) FollowUp(ctx context.Context, in FollowUpInput) (string, error) {
	if p.gen == nil {
		return "", ErrNotConfigured
	}

	text, err := p.gen.Generate(ctx, buildFollowUpPrompt(in), followUpTemperature, followUpMaxTokens)
	if err != nil {
		return "", fmt.Errorf("AI service unavailable: %w", err)
	}
	return text, nil
}
