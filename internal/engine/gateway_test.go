package engine

import (
	"reflect"
	"testing"
)

func painGateway() Gateway {
	return Gateway{
		GatewayID:          "pain",
		Name:               "Pain Gateway",
		TriggerQuestionIDs: []string{"22", "23"},
		Condition: And{Conditions: []Condition{
			Equals{QuestionID: "22", Value: "Yes"},
			GreaterThanOrEqual{QuestionID: "23", Value: 4},
		}},
		TargetModules: []string{"expansion_physical"},
	}
}

func TestEvaluateOne_PendingIsNotFalse(t *testing.T) {
	e := NewEvaluator(nil)

	pending := e.EvaluateOne(painGateway(), Snapshot{"22": "Yes"})
	if pending.Triggered {
		t.Fatalf("pending gateway must not be triggered")
	}
	if pending.Reason != ReasonPending {
		t.Fatalf("expected pending reason, got %q", pending.Reason)
	}
	if !pending.Pending() {
		t.Fatalf("expected Pending()")
	}
	if pending.EvaluationSnapshot != nil {
		t.Fatalf("pending result must not carry a snapshot")
	}

	resolved := e.EvaluateOne(painGateway(), Snapshot{"22": "Yes", "23": "2"})
	if resolved.Triggered {
		t.Fatalf("pain below severity threshold must not trigger")
	}
	if resolved.Reason != "" {
		t.Fatalf("resolved result must not carry a reason, got %q", resolved.Reason)
	}
	if resolved.EvaluationSnapshot == nil {
		t.Fatalf("resolved result must carry its snapshot")
	}
	if resolved.Pending() {
		t.Fatalf("resolved-false must not look pending")
	}
}

func TestEvaluateOne_EmptyAnswerIsPending(t *testing.T) {
	e := NewEvaluator(nil)
	result := e.EvaluateOne(painGateway(), Snapshot{"22": "Yes", "23": ""})
	if result.Reason != ReasonPending {
		t.Fatalf("empty string answer should leave the gateway pending, got %q", result.Reason)
	}
}

func TestEvaluateOne_SnapshotRestrictedToTriggerQuestions(t *testing.T) {
	e := NewEvaluator(nil)
	responses := Snapshot{"22": "Yes", "23": "6", "99": "unrelated"}
	result := e.EvaluateOne(painGateway(), responses)
	if !result.Triggered {
		t.Fatalf("expected gateway to trigger")
	}
	want := Snapshot{"22": "Yes", "23": "6"}
	if !reflect.DeepEqual(result.EvaluationSnapshot, want) {
		t.Fatalf("snapshot not restricted to trigger questions: %v", result.EvaluationSnapshot)
	}
}

func TestEvaluateOne_OptionalGatewayAbsentQuestion(t *testing.T) {
	e := NewEvaluator(nil)
	gateway := Gateway{
		GatewayID:          "diet_impact",
		TriggerQuestionIDs: []string{"34"},
		Condition:          Equals{QuestionID: "34", Value: "Yes"},
		TargetModules:      []string{"expansion_nutritional"},
		Optional:           true,
	}

	absent := e.EvaluateOne(gateway, Snapshot{"1": "7"})
	if absent.Triggered || absent.Reason != ReasonOptionalAbsent {
		t.Fatalf("expected optional-absent result, got %+v", absent)
	}

	present := e.EvaluateOne(gateway, Snapshot{"34": "Yes"})
	if !present.Triggered {
		t.Fatalf("optional gateway with its question answered should evaluate normally")
	}
}

func TestEvaluateAll_Deterministic(t *testing.T) {
	e := NewEvaluator(nil)
	gateways := []Gateway{painGateway(), {
		GatewayID:          "insomnia",
		TriggerQuestionIDs: []string{"3"},
		Condition:          Equals{QuestionID: "3", Value: "Yes"},
		TargetModules:      []string{"expansion_sleep_quality"},
	}}
	responses := Snapshot{"22": "Yes", "23": "6", "3": "Yes"}

	first := e.EvaluateAll(gateways, responses)
	second := e.EvaluateAll(gateways, responses)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("repeated evaluation differs: %v vs %v", first, second)
	}
}

func TestTriggeredModules_UnionWithoutDuplicates(t *testing.T) {
	e := NewEvaluator(nil)
	gateways := []Gateway{
		{
			GatewayID:          "a",
			TriggerQuestionIDs: []string{"1"},
			Condition:          Equals{QuestionID: "1", Value: "Yes"},
			TargetModules:      []string{"m1", "m2"},
		},
		{
			GatewayID:          "b",
			TriggerQuestionIDs: []string{"2"},
			Condition:          Equals{QuestionID: "2", Value: "Yes"},
			TargetModules:      []string{"m2", "m3"},
		},
	}
	modules := e.TriggeredModules(gateways, Snapshot{"1": "Yes", "2": "Yes"})
	want := []string{"m1", "m2", "m3"}
	if !reflect.DeepEqual(modules, want) {
		t.Fatalf("expected %v, got %v", want, modules)
	}
}

func TestEvaluateOne_PoorSleepQualityScenario(t *testing.T) {
	e := NewEvaluator(nil)
	gateway := Gateway{
		GatewayID:          "poor_sleep_quality",
		Name:               "Poor Sleep Quality",
		TriggerQuestionIDs: []string{"1", "3"},
		Condition: Or{Conditions: []Condition{
			LessThanOrEqual{QuestionID: "1", Value: 5},
			Equals{QuestionID: "3", Value: "Yes"},
		}},
		TargetModules: []string{"expansion_sleep_quality"},
	}

	result := e.EvaluateOne(gateway, Snapshot{"1": "4", "3": "Yes"})
	if !result.Triggered {
		t.Fatalf("expected poor_sleep_quality to trigger on quality=4")
	}
	if result.TargetModules[0] != "expansion_sleep_quality" {
		t.Fatalf("unexpected target modules: %v", result.TargetModules)
	}
}
