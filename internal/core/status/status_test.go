package status

import "testing"

func ptr(f float64) *float64 { return &f }

func TestStatusColor(t *testing.T) {
	tests := []struct {
		status string
		want   ColorTag
	}{
		{"Closed", ColorSuccess},
		{"Completed", ColorSuccess},
		{"In_Progress", ColorPrimary},
		{"InProgress", ColorPrimary},
		{"Draft", ColorSecondary},
		{"Pending", ColorSecondary},
		{"Under_Review", ColorInfo},
		{"Overdue", ColorDanger},
		{"Cancelled", ColorDanger},
		{"Extended", ColorWarning},
		{"Escalated", ColorSecondary},
		{"", ColorSecondary},
		{"whatever", ColorSecondary},
	}

	for _, tt := range tests {
		t.Run(tt.status, func(t *testing.T) {
			if got := StatusColor(tt.status); got != tt.want {
				t.Errorf("StatusColor(%q) = %q, want %q", tt.status, got, tt.want)
			}
		})
	}
}

func TestPriorityColor(t *testing.T) {
	tests := []struct {
		priority string
		want     ColorTag
	}{
		{"Critical", ColorDanger},
		{"High", ColorWarning},
		{"Medium", ColorInfo},
		{"Low", ColorSecondary},
		{"urgent", ColorSecondary},
	}

	for _, tt := range tests {
		t.Run(tt.priority, func(t *testing.T) {
			if got := PriorityColor(tt.priority); got != tt.want {
				t.Errorf("PriorityColor(%q) = %q, want %q", tt.priority, got, tt.want)
			}
		})
	}
}

func TestEscalationLevelFromScore(t *testing.T) {
	tests := []struct {
		name  string
		score *float64
		want  EscalationLevel
	}{
		{"missing score", nil, EscalationLow},
		{"perfect", ptr(100), EscalationLow},
		{"boundary 90", ptr(90), EscalationLow},
		{"just below 90", ptr(89.99), EscalationMedium},
		{"boundary 60", ptr(60), EscalationMedium},
		{"just below 60", ptr(59.5), EscalationHigh},
		{"boundary 40", ptr(40), EscalationHigh},
		{"just below 40", ptr(39.99), EscalationCritical},
		{"zero", ptr(0), EscalationCritical},
		{"score 55", ptr(55), EscalationHigh},
		{"score 65", ptr(65), EscalationMedium},
		{"score 95", ptr(95), EscalationLow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := EscalationLevelFromScore(tt.score); got != tt.want {
				t.Errorf("EscalationLevelFromScore() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestEscalationLevelMonotone(t *testing.T) {
	rank := map[EscalationLevel]int{
		EscalationLow:      0,
		EscalationMedium:   1,
		EscalationHigh:     2,
		EscalationCritical: 3,
	}
	prev := rank[EscalationLevelFromScore(ptr(0))]
	for s := 0.0; s <= 100; s += 0.5 {
		cur := rank[EscalationLevelFromScore(ptr(s))]
		if cur > prev {
			t.Fatalf("risk increased at score %.1f", s)
		}
		prev = cur
	}
}

func TestVocabularies(t *testing.T) {
	if !IsValidActionStatus("Escalated") || IsValidActionStatus("Done") {
		t.Error("action vocabulary mismatch")
	}
	if !IsValidAuditStatus("Under_Review") || IsValidAuditStatus("Completed") {
		t.Error("audit vocabulary mismatch")
	}
	if !IsValidScheduleStatus("Postponed") {
		t.Error("schedule vocabulary mismatch")
	}
	if !IsValidAllocationRole("Lead_Auditor") || IsValidAllocationRole("Boss") {
		t.Error("allocation roles mismatch")
	}
	if PriorityColor(EscalationHigh.Priority()) != ColorWarning {
		t.Error("escalation level should map onto priority colours")
	}
}
