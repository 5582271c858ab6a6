package tracker

import (
	"sort"

	"github.com/workplan/workplan/pkg/model"
)

// TeamEstimate is the rolled-up outstanding work for one department/team
// pair. Done epics are excluded; their hours are already spent.
type TeamEstimate struct {
	Department     string `json:"department"`
	Team           string `json:"team"`
	OpenEpics      int    `json:"open_epics"`
	EstimatedHours int    `json:"estimated_hours"`
}

// Rollup aggregates stored epics into per-team estimates, ordered by
// department then team.
func Rollup(epics []model.Epic) []TeamEstimate {
	type key struct {
		department string
		team       string
	}

	grouped := make(map[key]*TeamEstimate)
	for _, epic := range epics {
		if epic.Status == model.EpicDone {
			continue
		}
		k := key{department: epic.Department, team: epic.Team}
		estimate := grouped[k]
		if estimate == nil {
			estimate = &TeamEstimate{Department: epic.Department, Team: epic.Team}
			grouped[k] = estimate
		}
		estimate.OpenEpics++
		estimate.EstimatedHours += epic.EstimatedHours
	}

	estimates := make([]TeamEstimate, 0, len(grouped))
	for _, estimate := range grouped {
		estimates = append(estimates, *estimate)
	}
	sort.Slice(estimates, func(i, j int) bool {
		if estimates[i].Department != estimates[j].Department {
			return estimates[i].Department < estimates[j].Department
		}
		return estimates[i].Team < estimates[j].Team
	})
	return estimates
}
