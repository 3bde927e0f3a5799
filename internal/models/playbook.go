package models

// RulePhase tags a playbook rule by when it applies.
type RulePhase string

const (
	PhaseBefore RulePhase = "before"
	PhaseDuring RulePhase = "during"
	PhaseAfter  RulePhase = "after"
)

// Valid reports whether p is a known phase.
func (p RulePhase) Valid() bool {
	return p == PhaseBefore || p == PhaseDuring || p == PhaseAfter
}

// Rule is a single checklist item inside a playbook strategy.
type Rule struct {
	ID       string    `json:"id"`
	Phase    RulePhase `json:"phase"`
	Text     string    `json:"text"`
	Required bool      `json:"required"`
}

// Strategy is a playbook entry: an ordered list of rules a trade taken
// under this strategy is expected to follow.
type Strategy struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Rules []Rule `json:"rules"`
}

// RequiredRules returns the subset of rules flagged as required, in
// playbook order.
func (s Strategy) RequiredRules() []Rule {
	var req []Rule
	for _, r := range s.Rules {
		if r.Required {
			req = append(req, r)
		}
	}
	return req
}
