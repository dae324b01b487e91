package pricing

// Rule names the promotion step behind an audit entry.
type Rule string

const (
	RuleEmptyOrder             Rule = "empty_order"
	RuleLoyaltyBase            Rule = "loyalty_base"
	RuleFirstPurchase          Rule = "first_purchase"
	RuleChurnRecovery          Rule = "churn_recovery"
	RuleSeasonal               Rule = "seasonal"
	RuleHighRiskSeasonalUplift Rule = "high_risk_seasonal_uplift"
	RuleWeekendBoost           Rule = "weekend_boost"
	RuleCap                    Rule = "cap"
)

// AuditEntry records one rule firing.
type AuditEntry struct {
	Rule    Rule   `json:"rule"`
	Message string `json:"message"`
}

// AuditTrail is the ordered log of rule firings for a single computation.
type AuditTrail []AuditEntry

func (t AuditTrail) record(rule Rule, message string) AuditTrail {
	return append(t, AuditEntry{Rule: rule, Message: message})
}

// Messages returns the human-readable messages in firing order.
func (t AuditTrail) Messages() []string {
	messages := make([]string, 0, len(t))
	for _, entry := range t {
		messages = append(messages, entry.Message)
	}
	return messages
}

// Fired reports whether the rule appears in the trail.
func (t AuditTrail) Fired(rule Rule) bool {
	for _, entry := range t {
		if entry.Rule == rule {
			return true
		}
	}
	return false
}

// Rules returns the fired rule names in firing order.
func (t AuditTrail) Rules() []Rule {
	rules := make([]Rule, 0, len(t))
	for _, entry := range t {
		rules = append(rules, entry.Rule)
	}
	return rules
}
