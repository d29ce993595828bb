package engine

import (
	"sort"
)

// Gateway is a named rule that unlocks expansion modules when its condition
// holds against a user's answers.
type Gateway struct {
	GatewayID          string
	Name               string
	TriggerQuestionIDs []string
	Condition          Condition
	TargetModules      []string
	Description        string
	// Optional gateways are skipped, not failed, when their trigger
	// question is absent from the active question set.
	Optional bool
}

// Reasons attached to gateway results that were not (or could not be)
// evaluated. Pending is distinct from a resolved false: planning must not
// withhold or grant modules before the trigger questions are answered.
const (
	ReasonOptionalAbsent = "optional gateway - trigger question not found"
	ReasonPending        = "not all trigger questions answered"
)

// GatewayResult is the explainable outcome of one gateway evaluation.
// EvaluationSnapshot holds exactly the answers the condition read, so a
// reviewer can see why a gateway fired without replaying response history.
type GatewayResult struct {
	GatewayID          string   `json:"gatewayId"`
	Name               string   `json:"name,omitempty"`
	Triggered          bool     `json:"triggered"`
	TargetModules      []string `json:"targetModules,omitempty"`
	EvaluationSnapshot Snapshot `json:"evaluationSnapshot,omitempty"`
	Reason             string   `json:"reason,omitempty"`
}

// Pending reports whether the result is still waiting on answers rather
// than resolved true or false.
func (r GatewayResult) Pending() bool {
	return r.Reason == ReasonPending
}

// EvaluateOne evaluates a single gateway against the snapshot.
func (e *Evaluator) EvaluateOne(gateway Gateway, responses Snapshot) GatewayResult {
	if gateway.Optional {
		anyPresent := false
		for _, qid := range gateway.TriggerQuestionIDs {
			if _, ok := responses[qid]; ok {
				anyPresent = true
				break
			}
		}
		if !anyPresent {
			return GatewayResult{
				GatewayID: gateway.GatewayID,
				Triggered: false,
				Reason:    ReasonOptionalAbsent,
			}
		}
	}

	for _, qid := range gateway.TriggerQuestionIDs {
		if responses[qid] == "" {
			return GatewayResult{
				GatewayID: gateway.GatewayID,
				Triggered: false,
				Reason:    ReasonPending,
			}
		}
	}

	snapshot := make(Snapshot, len(gateway.TriggerQuestionIDs))
	for _, qid := range gateway.TriggerQuestionIDs {
		snapshot[qid] = responses[qid]
	}

	return GatewayResult{
		GatewayID:          gateway.GatewayID,
		Name:               gateway.Name,
		Triggered:          e.Evaluate(gateway.Condition, responses),
		TargetModules:      gateway.TargetModules,
		EvaluationSnapshot: snapshot,
	}
}

// EvaluateAll evaluates every gateway and returns results keyed by gateway
// id. For a fixed input the output is identical across runs.
func (e *Evaluator) EvaluateAll(gateways []Gateway, responses Snapshot) map[string]GatewayResult {
	results := make(map[string]GatewayResult, len(gateways))
	for _, gateway := range gateways {
		results[gateway.GatewayID] = e.EvaluateOne(gateway, responses)
	}
	return results
}

// TriggeredModules returns the union of target modules across all triggered
// gateways, de-duplicated and sorted for deterministic output.
func (e *Evaluator) TriggeredModules(gateways []Gateway, responses Snapshot) []string {
	results := e.EvaluateAll(gateways, responses)
	return ModulesFromResults(results)
}

// ModulesFromResults unions target modules out of already-computed results.
func ModulesFromResults(results map[string]GatewayResult) []string {
	seen := map[string]struct{}{}
	for _, result := range results {
		if !result.Triggered {
			continue
		}
		for _, moduleID := range result.TargetModules {
			seen[moduleID] = struct{}{}
		}
	}
	modules := make([]string, 0, len(seen))
	for moduleID := range seen {
		modules = append(modules, moduleID)
	}
	sort.Strings(modules)
	return modules
}
