package agents

// Domain enumerates the supported financial planning specializations.
type Domain string

const (
	DomainRetirement Domain = "retirement"
	DomainInsurance  Domain = "insurance"
	DomainEstate     Domain = "estate"
	DomainWealth     Domain = "wealth"
	DomainEducation  Domain = "education"
	DomainTax        Domain = "tax"
)

// Descriptor is the client-facing description of a planning domain.
type Descriptor struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

var descriptors = []Descriptor{
	{
		ID:          string(DomainRetirement),
		Name:        "Retirement Planning",
		Description: "Calculate retirement needs, savings goals, and withdrawal strategies",
		Icon:        "🏖️",
	},
	{
		ID:          string(DomainInsurance),
		Name:        "Insurance Planning",
		Description: "Determine optimal insurance coverage for life, disability, and liability",
		Icon:        "🛡️",
	},
	{
		ID:          string(DomainEstate),
		Name:        "Estate Planning",
		Description: "Plan for wealth transfer, education funding, and tax minimization",
		Icon:        "📋",
	},
	{
		ID:          string(DomainWealth),
		Name:        "Personal Wealth Management",
		Description: "Build comprehensive investment strategy and asset allocation",
		Icon:        "💰",
	},
	{
		ID:          string(DomainEducation),
		Name:        "Education Planning",
		Description: "Build a college savings plan for each child",
		Icon:        "🎓",
	},
	{
		ID:          string(DomainTax),
		Name:        "Tax Planning",
		Description: "Optimize deductions, credits, and tax-advantaged accounts",
		Icon:        "🧾",
	},
}

// Descriptors returns every planning domain available for selection.
func Descriptors() []Descriptor {
	out := make([]Descriptor, len(descriptors))
	copy(out, descriptors)
	return out
}

// DisplayName returns the client-facing name of the domain.
func (d Domain) DisplayName() string {
	for _, desc := range descriptors {
		if desc.ID == string(d) {
			return desc.Name
		}
	}
	return string(d)
}

// Valid reports whether the domain is a known specialization.
func (d Domain) Valid() bool {
	for _, desc := range descriptors {
		if desc.ID == string(d) {
			return true
		}
	}
	return false
}

// ParseDomain resolves a domain from its ID or display name.
// Returns false when the value matches neither.
func ParseDomain(s string) (Domain, bool) {
	for _, desc := range descriptors {
		if desc.ID == s || desc.Name == s {
			return Domain(desc.ID), true
		}
	}
	return "", false
}
