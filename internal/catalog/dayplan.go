package catalog

import (
	"sort"
)

// DayAssignment is one static row of the intake plan: module X appears on
// day N at position OrderIndex.
type DayAssignment struct {
	DayNumber  int
	ModuleID   string
	OrderIndex int
}

// PlanEntry is one question slot in a day plan, ready for a presentation
// layer to render in order without further business logic.
type PlanEntry struct {
	ModuleID   string `json:"moduleId"`
	QuestionID string `json:"questionId"`
}

// ModuleSummary describes one module on a day for overview screens.
type ModuleSummary struct {
	ModuleID         string  `json:"moduleId"`
	Name             string  `json:"name"`
	Type             string  `json:"type"`
	QuestionCount    int     `json:"questionCount"`
	EstimatedMinutes float64 `json:"estimatedMinutes"`
}

// Planner maps day numbers to ordered module lists. Core and gateway
// assignments are static; expansion assignments only materialize for users
// whose gateway evaluation unlocked them. Planning is pure: for a fixed
// unlocked set the output is identical across runs.
type Planner struct {
	catalog *Catalog
	days    map[int][]DayAssignment
}

func NewPlanner(c *Catalog, assignments []DayAssignment) *Planner {
	days := make(map[int][]DayAssignment)
	for _, a := range assignments {
		days[a.DayNumber] = append(days[a.DayNumber], a)
	}
	for day := range days {
		rows := days[day]
		sort.Slice(rows, func(i, j int) bool {
			if rows[i].OrderIndex != rows[j].OrderIndex {
				return rows[i].OrderIndex < rows[j].OrderIndex
			}
			return rows[i].ModuleID < rows[j].ModuleID
		})
		days[day] = rows
	}
	return &Planner{catalog: c, days: days}
}

// Days returns the day numbers that have static assignments, ascending.
func (p *Planner) Days() []int {
	days := make([]int, 0, len(p.days))
	for day := range p.days {
		days = append(days, day)
	}
	sort.Ints(days)
	return days
}

// modulesForDay resolves the day's assignments against the registry,
// keeping an expansion module only when the user's gateways unlocked it.
func (p *Planner) modulesForDay(dayNumber int, unlocked []string) []Module {
	unlockedSet := make(map[string]struct{}, len(unlocked))
	for _, id := range unlocked {
		unlockedSet[id] = struct{}{}
	}

	var modules []Module
	for _, assignment := range p.days[dayNumber] {
		module, ok := p.catalog.Module(assignment.ModuleID)
		if !ok {
			continue
		}
		if module.Type == ModuleTypeExpansion {
			if _, ok := unlockedSet[module.ModuleID]; !ok {
				continue
			}
		}
		modules = append(modules, module)
	}
	return modules
}

// PlanDay returns the ordered (module, question) pairs for one day.
// Modules follow their declared day order; questions follow the module's
// declared order.
func (p *Planner) PlanDay(dayNumber int, unlocked []string) []PlanEntry {
	var entries []PlanEntry
	for _, module := range p.modulesForDay(dayNumber, unlocked) {
		for _, qid := range module.QuestionIDs {
			entries = append(entries, PlanEntry{ModuleID: module.ModuleID, QuestionID: qid})
		}
	}
	return entries
}

// DaySummary returns the per-module overview for one day.
func (p *Planner) DaySummary(dayNumber int, unlocked []string) []ModuleSummary {
	var summaries []ModuleSummary
	for _, module := range p.modulesForDay(dayNumber, unlocked) {
		summaries = append(summaries, ModuleSummary{
			ModuleID:         module.ModuleID,
			Name:             module.Name,
			Type:             string(module.Type),
			QuestionCount:    len(module.QuestionIDs),
			EstimatedMinutes: module.EstimatedMinutes,
		})
	}
	return summaries
}
