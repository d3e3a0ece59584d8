package status

// EscalationLevel is the risk classification of a completed audit.
type EscalationLevel string

const (
	EscalationLow      EscalationLevel = "Low"
	EscalationMedium   EscalationLevel = "Medium"
	EscalationHigh     EscalationLevel = "High"
	EscalationCritical EscalationLevel = "Critical"
)

// Score thresholds, inclusive lower bounds.
const (
	ExcellentScore = 90
	PassingScore   = 60
	HighRiskScore  = 40
	MinScore       = 0
	MaxScore       = 100
)

// EscalationLevelFromScore classifies an audit score. A missing score is Low.
//
//	score >= 90 -> Low
//	score >= 60 -> Medium
//	score >= 40 -> High
//	otherwise   -> Critical
func EscalationLevelFromScore(score *float64) EscalationLevel {
	if score == nil {
		return EscalationLow
	}
	switch s := *score; {
	case s >= ExcellentScore:
		return EscalationLow
	case s >= PassingScore:
		return EscalationMedium
	case s >= HighRiskScore:
		return EscalationHigh
	default:
		return EscalationCritical
	}
}

// IsValidEscalationLevel reports whether s names an escalation level.
func IsValidEscalationLevel(s string) bool {
	switch EscalationLevel(s) {
	case EscalationLow, EscalationMedium, EscalationHigh, EscalationCritical:
		return true
	}
	return false
}

// Priority returns the priority name matching the level, for PriorityColor.
func (l EscalationLevel) Priority() string {
	return string(l)
}

// IsValidScore reports whether score is inside the 0..100 range.
func IsValidScore(score float64) bool {
	return score >= MinScore && score <= MaxScore
}
