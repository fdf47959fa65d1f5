package agents

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"advisor/internal/adapters/ai"
	"advisor/internal/domain/profile"
	"advisor/internal/metrics"
	"advisor/internal/tools"
	"advisor/pkg/errors"
	"advisor/pkg/logger"
	"advisor/pkg/templates"
)

// Retirement expenses are estimated as a share of pre-retirement income.
const expenseIncomeRatio = 0.8

// Agent generates one planning narrative for a fixed financial domain.
// It runs the deterministic calculators for its domain, optionally pulls
// live data through the tool client, renders the domain prompt, and issues
// exactly one LLM completion.
type Agent struct {
	domain    Domain
	provider  ai.ChatProvider
	toolsc    *tools.Client
	templates *templates.Registry
	log       *logger.Logger
}

// NewAgent creates an agent bound to a planning domain. The tool client may
// be nil, in which case live-data enrichment is skipped.
func NewAgent(domain Domain, provider ai.ChatProvider, toolClient *tools.Client, registry *templates.Registry) *Agent {
	return &Agent{
		domain:    domain,
		provider:  provider,
		toolsc:    toolClient,
		templates: registry,
		log:       logger.Get().With("component", "agent", "domain", string(domain)),
	}
}

// Domain returns the agent's specialization.
func (a *Agent) Domain() Domain { return a.domain }

// promptData is the template context shared by all agent prompts.
type promptData struct {
	Age           int
	RetirementAge int
	AnnualIncome  float64
	Savings       float64
	Debts         float64
	TotalAssets   float64
	RiskTolerance string
	NumDependents int
	NumChildren   int
	ChildrenAges  []int
	FilingStatus  string

	Calculations string
	LiveData     string
}

// Generate produces the plan text for the agent's domain.
func (a *Agent) Generate(ctx context.Context, p profile.UserProfile) (string, error) {
	data := promptData{
		Age:           p.Age,
		RetirementAge: p.EffectiveRetirementAge(),
		AnnualIncome:  p.AnnualIncome,
		Savings:       p.Savings,
		Debts:         p.Debts,
		TotalAssets:   p.EffectiveTotalAssets(),
		RiskTolerance: p.EffectiveRiskTolerance(),
		NumDependents: p.NumDependents,
		NumChildren:   numChildren(p),
		ChildrenAges:  p.ChildrenAges,
		FilingStatus:  p.FilingStatus,
	}

	data.Calculations = a.calculations(p)
	data.LiveData = a.liveData(ctx)

	prompt, err := a.templates.Render("agents/"+string(a.domain), data)
	if err != nil {
		return "", errors.Wrap(errors.ErrRenderFailed, err.Error())
	}

	start := time.Now()
	resp, err := a.provider.Chat(ctx, ai.ChatRequest{
		Messages: []ai.Message{{Role: ai.RoleUser, Content: prompt}},
	})
	if err != nil {
		metrics.RecordAgentCall(string(a.domain), "", time.Since(start), 0, 0, err)
		return "", errors.Wrapf(err, "%s agent completion", a.domain)
	}

	metrics.RecordAgentCall(string(a.domain), resp.Model, time.Since(start),
		int64(resp.Usage.PromptTokens), int64(resp.Usage.CompletionTokens), nil)

	a.log.Infow("Plan generated", "model", resp.Model, "tokens", resp.Usage.TotalTokens)
	return resp.Content, nil
}

// calculations runs the domain's deterministic calculators.
func (a *Agent) calculations(p profile.UserProfile) string {
	annualExpenses := p.AnnualIncome * expenseIncomeRatio

	switch a.domain {
	case DomainRetirement:
		return RetirementNeeds(p.Age, p.EffectiveRetirementAge(), annualExpenses) + "\n\n" +
			WealthAllocation(p.EffectiveTotalAssets(), p.Age, p.EffectiveRiskTolerance())
	case DomainInsurance:
		return LifeInsurance(p.AnnualIncome, p.NumDependents, p.Debts, p.Savings)
	case DomainEstate:
		return EstateTax(p.EffectiveTotalAssets()) + "\n\n" + EducationFund(p.ChildrenAges)
	case DomainWealth:
		return WealthAllocation(p.EffectiveTotalAssets(), p.Age, p.EffectiveRiskTolerance())
	case DomainEducation:
		return EducationFund(p.ChildrenAges)
	case DomainTax:
		return EstateTax(p.EffectiveTotalAssets())
	}
	return ""
}

// liveData enriches this domain's prompt with fresh external data when a tool
// client is configured. Tool failures degrade to an empty block, never abort
// plan generation.
func (a *Agent) liveData(ctx context.Context) string {
	if a.toolsc == nil {
		return ""
	}

	switch a.domain {
	case DomainRetirement:
		result := a.toolsc.CallTool(ctx, "get_inflation_rate", nil)
		if !result.Success {
			a.log.Warnw("Live inflation data unavailable", "detail", result.Result)
			return ""
		}
		if data, ok := result.Result.(map[string]interface{}); ok {
			if yoy, ok := data["inflation_rate_yoy"].(float64); ok {
				return fmt.Sprintf("Inflation rate (CPI year-over-year): %s", templates.FormatPercent(yoy))
			}
		}
	case DomainWealth:
		result := a.toolsc.CallTool(ctx, "get_market_indices", nil)
		if !result.Success {
			a.log.Warnw("Live market data unavailable", "detail", result.Result)
			return ""
		}
		if data, ok := result.Result.(map[string]interface{}); ok {
			return formatIndices(data)
		}
	}
	return ""
}

func formatIndices(data map[string]interface{}) string {
	indices, ok := data["indices"].(map[string]interface{})
	if !ok {
		return ""
	}

	var lines []string
	for name, raw := range indices {
		entry, ok := raw.(map[string]interface{})
		if !ok {
			continue
		}
		price, _ := entry["price"].(float64)
		changePct, _ := entry["change_percent"].(float64)
		lines = append(lines, fmt.Sprintf("- %s: %s (%s)",
			name, templates.FormatMoney(price), templates.FormatPercent(changePct)))
	}
	return strings.Join(lines, "\n")
}

func numChildren(p profile.UserProfile) int {
	if p.NumChildren > 0 {
		return p.NumChildren
	}
	return len(p.ChildrenAges)
}

// profileJSON renders the profile as indented JSON for prompt context.
func profileJSON(p profile.UserProfile) string {
	raw, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return "{}"
	}
	return string(raw)
}
