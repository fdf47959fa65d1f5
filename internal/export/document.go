package export

import (
	"encoding/json"
	"time"

	"advisor/internal/domain/profile"
	"advisor/internal/domain/session"
	"advisor/pkg/errors"
)

const disclaimer = "This financial plan is generated by AI and should be reviewed with a qualified financial advisor."

// Document is the JSON export payload for a planning session.
type Document struct {
	GeneratedAt   time.Time           `json:"generated_at"`
	UserInfo      profile.UserProfile `json:"user_info"`
	SelectedPlans []string            `json:"selected_plans"`
	PlanSummaries map[string]string   `json:"plan_summaries"`
}

// RenderJSON serializes the session's plan summaries as a JSON document.
// Summaries are exported verbatim; only the PDF/DOCX renderers clean text.
func RenderJSON(sess *session.Session) ([]byte, error) {
	doc := Document{
		GeneratedAt:   time.Now().UTC(),
		UserInfo:      sess.Profile,
		SelectedPlans: sess.SelectedPlans,
		PlanSummaries: sess.PlanSummaries,
	}

	raw, err := json.Marshal(doc)
	if err != nil {
		return nil, errors.Wrap(err, "marshal export document")
	}
	return raw, nil
}

// planNames returns the per-domain plan names in selection order, skipping
// the reserved executive summary key and plans without generated text.
func planNames(sess *session.Session) []string {
	names := make([]string, 0, len(sess.SelectedPlans))
	for _, name := range sess.SelectedPlans {
		if name == session.SummaryKey {
			continue
		}
		if _, ok := sess.PlanSummaries[name]; ok {
			names = append(names, name)
		}
	}
	return names
}
