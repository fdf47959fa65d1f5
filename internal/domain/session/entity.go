package session

import (
	"time"

	"github.com/google/uuid"

	"advisor/internal/domain/profile"
)

// SummaryKey is the reserved plan-summaries key holding the synthesized
// executive summary.
const SummaryKey = "Executive Summary"

// ChatTurn is a single entry in a session's conversation history.
type ChatTurn struct {
	Role    string `json:"role"` // "user" or "assistant"
	Content string `json:"content"`
}

// Session holds all server-side state for one planning interaction.
// Plan summaries are never retroactively edited; chat turns only append.
type Session struct {
	ID            string              `json:"session_id"`
	Profile       profile.UserProfile `json:"user_info"`
	SelectedPlans []string            `json:"selected_plans"`
	PlanSummaries map[string]string   `json:"plan_summaries"`
	ChatHistory   []ChatTurn          `json:"conversation_history"`
	CreatedAt     time.Time           `json:"created_at"`
}

// New creates a planning session with a fresh opaque token.
func New(p profile.UserProfile, selectedPlans []string) *Session {
	return &Session{
		ID:            uuid.NewString(),
		Profile:       p,
		SelectedPlans: selectedPlans,
		PlanSummaries: make(map[string]string, len(selectedPlans)+1),
		ChatHistory:   []ChatTurn{},
		CreatedAt:     time.Now().UTC(),
	}
}

// AppendTurn appends a chat turn to the conversation history.
func (s *Session) AppendTurn(role, content string) {
	s.ChatHistory = append(s.ChatHistory, ChatTurn{Role: role, Content: content})
}

// RecentTurns returns the last n chat turns for prompt construction.
// The full history is kept; only the prompt window is bounded.
func (s *Session) RecentTurns(n int) []ChatTurn {
	if n <= 0 || len(s.ChatHistory) <= n {
		return s.ChatHistory
	}
	return s.ChatHistory[len(s.ChatHistory)-n:]
}
