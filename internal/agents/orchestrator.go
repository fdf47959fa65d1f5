package agents

import (
	"context"
	"fmt"
	"time"

	"advisor/internal/adapters/ai"
	"advisor/internal/domain/profile"
	"advisor/internal/domain/session"
	"advisor/internal/metrics"
	"advisor/internal/tools"
	"advisor/pkg/errors"
	"advisor/pkg/logger"
	"advisor/pkg/templates"
)

// chatPromptWindow bounds how many prior turns are replayed into the chat
// prompt. The stored history itself is unbounded.
const chatPromptWindow = 8

// Orchestrator sequences the domain agents for a planning session and
// synthesizes the executive summary, then answers follow-up chat questions
// against the accumulated session context.
type Orchestrator struct {
	provider  ai.ChatProvider
	sessions  session.Repository
	templates *templates.Registry
	agents    map[Domain]*Agent
	log       *logger.Logger
}

// NewOrchestrator creates an orchestrator with one agent per known domain.
func NewOrchestrator(provider ai.ChatProvider, toolClient *tools.Client, sessions session.Repository, registry *templates.Registry) *Orchestrator {
	agents := make(map[Domain]*Agent, len(descriptors))
	for _, desc := range descriptors {
		d := Domain(desc.ID)
		agents[d] = NewAgent(d, provider, toolClient, registry)
	}

	return &Orchestrator{
		provider:  provider,
		sessions:  sessions,
		templates: registry,
		agents:    agents,
		log:       logger.Get().With("component", "orchestrator"),
	}
}

// planEntry pairs a plan name with its generated text for prompt templates.
type planEntry struct {
	Name    string
	Summary string
}

// StartSession runs every selected domain agent in order, synthesizes the
// executive summary, and persists the resulting session. Individual agent
// failures are recorded as inline error text for that domain and never abort
// the remaining domains.
func (o *Orchestrator) StartSession(ctx context.Context, p profile.UserProfile, domains []Domain) (*session.Session, error) {
	if len(domains) == 0 {
		return nil, errors.ErrNoPlansSelected
	}
	for _, d := range domains {
		if !d.Valid() {
			return nil, errors.Wrapf(errors.ErrUnknownDomain, "%s", d)
		}
	}

	names := make([]string, len(domains))
	for i, d := range domains {
		names[i] = d.DisplayName()
	}

	sess := session.New(p, names)
	start := time.Now()
	o.log.Infow("Starting planning session", "session_id", sess.ID, "domains", names)

	for _, d := range domains {
		name := d.DisplayName()
		summary, err := o.agents[d].Generate(ctx, p)
		if err != nil {
			o.log.Errorw("Agent failed, recording inline error", "domain", d, "error", err)
			summary = fmt.Sprintf("Unable to generate %s at this time: %v", name, err)
		}
		sess.PlanSummaries[name] = summary
	}

	sess.PlanSummaries[session.SummaryKey] = o.executiveSummary(ctx, sess)

	if err := o.sessions.Create(ctx, sess); err != nil {
		return nil, errors.Wrap(err, "store planning session")
	}

	metrics.SessionsStarted.Inc()
	o.log.Infow("Planning session complete", "session_id", sess.ID, "duration", time.Since(start))
	return sess, nil
}

// executiveSummary issues the final synthesis completion over all per-domain
// outputs. A failure degrades to inline error text so the session still
// carries an entry under the reserved key.
func (o *Orchestrator) executiveSummary(ctx context.Context, sess *session.Session) string {
	plans := make([]planEntry, 0, len(sess.SelectedPlans))
	for _, name := range sess.SelectedPlans {
		plans = append(plans, planEntry{Name: name, Summary: sess.PlanSummaries[name]})
	}

	prompt, err := o.templates.Render("orchestrator/summary", map[string]any{
		"ProfileJSON": profileJSON(sess.Profile),
		"Plans":       plans,
	})
	if err != nil {
		o.log.Errorw("Summary prompt render failed", "error", err)
		return fmt.Sprintf("Unable to generate executive summary at this time: %v", err)
	}

	start := time.Now()
	resp, err := o.provider.Chat(ctx, ai.ChatRequest{
		Messages: []ai.Message{{Role: ai.RoleUser, Content: prompt}},
	})
	if err != nil {
		metrics.RecordAgentCall("executive_summary", "", time.Since(start), 0, 0, err)
		o.log.Errorw("Executive summary completion failed", "error", err)
		return fmt.Sprintf("Unable to generate executive summary at this time: %v", err)
	}

	metrics.RecordAgentCall("executive_summary", resp.Model, time.Since(start),
		int64(resp.Usage.PromptTokens), int64(resp.Usage.CompletionTokens), nil)
	return resp.Content
}

// Chat answers a follow-up question in the context of an existing session.
// The reply and the question are appended to the stored history before
// returning, so replies are strictly ordered per session.
func (o *Orchestrator) Chat(ctx context.Context, sessionID, message string) (string, error) {
	if message == "" {
		return "", errors.Wrap(errors.ErrInvalidInput, "message is required")
	}

	sess, err := o.sessions.Get(ctx, sessionID)
	if err != nil {
		return "", err
	}

	system, err := o.chatSystemPrompt(sess)
	if err != nil {
		return "", err
	}

	msgs := make([]ai.Message, 0, chatPromptWindow+2)
	msgs = append(msgs, ai.Message{Role: ai.RoleSystem, Content: system})
	for _, turn := range sess.RecentTurns(chatPromptWindow) {
		msgs = append(msgs, ai.Message{Role: ai.MessageRole(turn.Role), Content: turn.Content})
	}
	msgs = append(msgs, ai.Message{Role: ai.RoleUser, Content: message})

	resp, err := o.provider.Chat(ctx, ai.ChatRequest{Messages: msgs})
	if err != nil {
		return "", errors.Wrap(err, "chat completion")
	}

	sess.AppendTurn(string(ai.RoleUser), message)
	sess.AppendTurn(string(ai.RoleAssistant), resp.Content)

	if err := o.sessions.Update(ctx, sess); err != nil {
		return "", errors.Wrap(err, "persist chat history")
	}

	metrics.ChatMessages.Inc()
	return resp.Content, nil
}

func (o *Orchestrator) chatSystemPrompt(sess *session.Session) (string, error) {
	plans := make([]planEntry, 0, len(sess.SelectedPlans)+1)
	for _, name := range sess.SelectedPlans {
		plans = append(plans, planEntry{Name: name, Summary: sess.PlanSummaries[name]})
	}
	if summary, ok := sess.PlanSummaries[session.SummaryKey]; ok {
		plans = append(plans, planEntry{Name: session.SummaryKey, Summary: summary})
	}

	prompt, err := o.templates.Render("chat/system", map[string]any{
		"ProfileJSON": profileJSON(sess.Profile),
		"Plans":       plans,
	})
	if err != nil {
		return "", errors.Wrap(errors.ErrRenderFailed, err.Error())
	}
	return prompt, nil
}
