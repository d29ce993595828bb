// Package catalog holds the immutable module registry and the day planner.
// Both are built once from configuration at startup and treated as
// read-only for the process lifetime.
package catalog

import (
	"fmt"
	"sort"

	"github.com/yungbote/sleepintake-backend/internal/standardize"
)

type ModuleType string

const (
	ModuleTypeCore      ModuleType = "core"
	ModuleTypeGateway   ModuleType = "gateway"
	ModuleTypeExpansion ModuleType = "expansion"
)

// Module is one question module. QuestionIDs are ordered; that order is
// the presentation order within the module.
type Module struct {
	ModuleID         string
	Name             string
	Description      string
	Pillar           string
	Tier             string
	Type             ModuleType
	QuestionIDs      []string
	EstimatedMinutes float64
}

// Catalog is the validated registry of questions and modules.
type Catalog struct {
	questions   map[string]standardize.Question
	questionIDs []string
	modules     map[string]Module
	moduleIDs   []string
}

// New builds the registry. Module entries referencing questions that do
// not exist are a configuration error: the reference is reported in the
// returned warnings and dropped, but the module is kept with whatever
// questions resolve.
func New(questions []standardize.Question, modules []Module) (*Catalog, []string) {
	c := &Catalog{
		questions: make(map[string]standardize.Question, len(questions)),
		modules:   make(map[string]Module, len(modules)),
	}
	var warnings []string

	for _, q := range questions {
		if _, exists := c.questions[q.QuestionID]; exists {
			warnings = append(warnings, fmt.Sprintf("duplicate question id %q", q.QuestionID))
			continue
		}
		c.questions[q.QuestionID] = q
		c.questionIDs = append(c.questionIDs, q.QuestionID)
	}

	for _, m := range modules {
		if _, exists := c.modules[m.ModuleID]; exists {
			warnings = append(warnings, fmt.Sprintf("duplicate module id %q", m.ModuleID))
			continue
		}
		resolved := make([]string, 0, len(m.QuestionIDs))
		for _, qid := range m.QuestionIDs {
			if _, ok := c.questions[qid]; !ok {
				warnings = append(warnings, fmt.Sprintf("module %q references unknown question %q", m.ModuleID, qid))
				continue
			}
			resolved = append(resolved, qid)
		}
		m.QuestionIDs = resolved
		c.modules[m.ModuleID] = m
		c.moduleIDs = append(c.moduleIDs, m.ModuleID)
	}

	return c, warnings
}

func (c *Catalog) Module(moduleID string) (Module, bool) {
	m, ok := c.modules[moduleID]
	return m, ok
}

// Modules returns all modules in registration order.
func (c *Catalog) Modules() []Module {
	modules := make([]Module, 0, len(c.moduleIDs))
	for _, id := range c.moduleIDs {
		modules = append(modules, c.modules[id])
	}
	return modules
}

func (c *Catalog) Question(questionID string) (standardize.Question, bool) {
	q, ok := c.questions[questionID]
	return q, ok
}

// Questions returns all questions in registration order.
func (c *Catalog) Questions() []standardize.Question {
	questions := make([]standardize.Question, 0, len(c.questionIDs))
	for _, id := range c.questionIDs {
		questions = append(questions, c.questions[id])
	}
	return questions
}

// ValidateKeywordTargets checks that the trigger parser's keyword-shortcut
// question ids still exist in the active question set. The shortcuts carry
// hardcoded ids; a catalog revision that renumbers questions would leave
// them pointing at the wrong question with no other signal.
func (c *Catalog) ValidateKeywordTargets(targets map[string]string) []string {
	keywords := make([]string, 0, len(targets))
	for keyword := range targets {
		keywords = append(keywords, keyword)
	}
	sort.Strings(keywords)

	var warnings []string
	for _, keyword := range keywords {
		qid := targets[keyword]
		if _, ok := c.questions[qid]; !ok {
			warnings = append(warnings, fmt.Sprintf("trigger keyword %q targets missing question %q", keyword, qid))
		}
	}
	return warnings
}
