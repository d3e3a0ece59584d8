// Package report contains the pure aggregation rules behind performance
// reports and dashboards: percentage rates, score averages, per-plant and
// per-auditor rollups, and the period timeline.
package report

import (
	"math"
	"sort"
)

// Round converts a percentage to an integer using round-half-to-even.
// 66.5 rounds to 66 and 67.5 rounds to 68.
func Round(v float64) int {
	return int(math.RoundToEven(v))
}

// CompletionRate returns completed/total as a whole percentage, 0 when total is 0.
func CompletionRate(total, completed int) int {
	if total == 0 {
		return 0
	}
	return Round(float64(completed) / float64(total) * 100)
}

func sumScores(scores []*float64) float64 {
	var sum float64
	for _, s := range scores {
		if s != nil {
			sum += *s
		}
	}
	return sum
}

// ComplianceRate returns the share of the maximum attainable score that was
// achieved. Missing scores count as 0. 0 when there are no scores.
func ComplianceRate(scores []*float64) int {
	if len(scores) == 0 {
		return 0
	}
	return Round(sumScores(scores) / (float64(len(scores)) * 100) * 100)
}

// AverageScore returns the rounded mean score. Missing scores count as 0.
func AverageScore(scores []*float64) int {
	if len(scores) == 0 {
		return 0
	}
	return Round(sumScores(scores) / float64(len(scores)))
}

// ScoredAudit is the minimal fact set for performance rollups. Scored is set
// once the audit has a completion record; only scored audits feed averages.
type ScoredAudit struct {
	AuditID     string
	PlantID     string
	AuditStatus string
	Scored      bool
	Score       *float64
	AuditorIDs  []string
}

// PlantFacts describes a plant for the plant performance rollup.
type PlantFacts struct {
	PlantID        string
	Name           string
	EquipmentCount int
}

// AuditorFacts describes an auditor for the auditor performance rollup.
type AuditorFacts struct {
	AuditorID string
	Name      string
}

// PlantPerformance is one row of the plant performance table.
type PlantPerformance struct {
	PlantID        string
	Name           string
	AuditCount     int
	AverageScore   int
	EquipmentCount int
	ComplianceRate int
}

// AuditorPerformance is one row of the auditor performance table.
type AuditorPerformance struct {
	AuditorID      string
	Name           string
	AuditCount     int
	AverageScore   int
	CompletionRate int
}

// BuildPlantPerformance rolls audits up per plant, best average first.
// AuditCount covers every audit; averages cover scored ones. Plants with no
// audits are listed with zero values.
func BuildPlantPerformance(plants []PlantFacts, audits []ScoredAudit) []PlantPerformance {
	counts := make(map[string]int)
	byPlant := make(map[string][]*float64)
	for _, a := range audits {
		counts[a.PlantID]++
		if a.Scored {
			byPlant[a.PlantID] = append(byPlant[a.PlantID], a.Score)
		}
	}

	rows := make([]PlantPerformance, 0, len(plants))
	for _, p := range plants {
		scores := byPlant[p.PlantID]
		rows = append(rows, PlantPerformance{
			PlantID:        p.PlantID,
			Name:           p.Name,
			AuditCount:     counts[p.PlantID],
			AverageScore:   AverageScore(scores),
			EquipmentCount: p.EquipmentCount,
			ComplianceRate: ComplianceRate(scores),
		})
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].AverageScore != rows[j].AverageScore {
			return rows[i].AverageScore > rows[j].AverageScore
		}
		return rows[i].PlantID < rows[j].PlantID
	})
	return rows
}

// BuildAuditorPerformance rolls audits up per allocated auditor, best average
// first. Completion counts audits that reached closedStatus; averages cover
// scored audits.
func BuildAuditorPerformance(auditors []AuditorFacts, audits []ScoredAudit, closedStatus string) []AuditorPerformance {
	counts := make(map[string]int)
	scores := make(map[string][]*float64)
	closed := make(map[string]int)
	for _, a := range audits {
		for _, id := range a.AuditorIDs {
			counts[id]++
			if a.Scored {
				scores[id] = append(scores[id], a.Score)
			}
			if a.AuditStatus == closedStatus {
				closed[id]++
			}
		}
	}

	rows := make([]AuditorPerformance, 0, len(auditors))
	for _, au := range auditors {
		n := counts[au.AuditorID]
		rows = append(rows, AuditorPerformance{
			AuditorID:      au.AuditorID,
			Name:           au.Name,
			AuditCount:     n,
			AverageScore:   AverageScore(scores[au.AuditorID]),
			CompletionRate: CompletionRate(n, closed[au.AuditorID]),
		})
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].AverageScore != rows[j].AverageScore {
			return rows[i].AverageScore > rows[j].AverageScore
		}
		return rows[i].AuditorID < rows[j].AuditorID
	})
	return rows
}
