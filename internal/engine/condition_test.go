package engine

import (
	"testing"
)

func TestEvaluate_EqualsComparesStrings(t *testing.T) {
	e := NewEvaluator(nil)
	if !e.Evaluate(Equals{QuestionID: "3", Value: "Yes"}, Snapshot{"3": "Yes"}) {
		t.Fatalf("expected equals to match")
	}
	if e.Evaluate(Equals{QuestionID: "3", Value: "Yes"}, Snapshot{"3": "No"}) {
		t.Fatalf("expected equals to miss")
	}
}

func TestEvaluate_EqualsNumericValueCoercedToString(t *testing.T) {
	cond, err := UnmarshalCondition([]byte(`{"type":"equals","questionId":"15","value":2}`))
	if err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	e := NewEvaluator(nil)
	if !e.Evaluate(cond, Snapshot{"15": "2"}) {
		t.Fatalf("configured 2 should match stored \"2\"")
	}
}

func TestEvaluate_NumericComparisonsFailClosed(t *testing.T) {
	e := NewEvaluator(nil)
	if e.Evaluate(GreaterThan{QuestionID: "Q", Value: 5}, Snapshot{"Q": "abc"}) {
		t.Fatalf("non-numeric answer must not satisfy greaterThan")
	}
	if e.Evaluate(LessThanOrEqual{QuestionID: "Q", Value: 5}, Snapshot{}) {
		t.Fatalf("missing answer must not satisfy lessThanOrEqual")
	}
}

func TestEvaluate_NumericComparisons(t *testing.T) {
	e := NewEvaluator(nil)
	responses := Snapshot{"23": "4"}

	if !e.Evaluate(GreaterThanOrEqual{QuestionID: "23", Value: 4}, responses) {
		t.Fatalf("4 >= 4 should hold")
	}
	if e.Evaluate(GreaterThan{QuestionID: "23", Value: 4}, responses) {
		t.Fatalf("4 > 4 should not hold")
	}
	if !e.Evaluate(LessThan{QuestionID: "23", Value: 4.5}, responses) {
		t.Fatalf("4 < 4.5 should hold")
	}
	if !e.Evaluate(LessThanOrEqual{QuestionID: "23", Value: 4}, responses) {
		t.Fatalf("4 <= 4 should hold")
	}
}

func TestEvaluate_EmptyAndIsVacuouslyTrue(t *testing.T) {
	e := NewEvaluator(nil)
	if !e.Evaluate(And{}, Snapshot{}) {
		t.Fatalf("empty and should be vacuously true")
	}
	if e.Evaluate(Or{}, Snapshot{}) {
		t.Fatalf("empty or should be false")
	}
}

func TestEvaluate_LogicalComposition(t *testing.T) {
	e := NewEvaluator(nil)
	responses := Snapshot{"22": "Yes", "23": "6"}

	both := And{Conditions: []Condition{
		Equals{QuestionID: "22", Value: "Yes"},
		GreaterThanOrEqual{QuestionID: "23", Value: 4},
	}}
	if !e.Evaluate(both, responses) {
		t.Fatalf("expected and to hold")
	}

	either := Or{Conditions: []Condition{
		Equals{QuestionID: "22", Value: "No"},
		GreaterThanOrEqual{QuestionID: "23", Value: 4},
	}}
	if !e.Evaluate(either, responses) {
		t.Fatalf("expected or to hold via second branch")
	}
}

func TestEvaluate_UnknownCalculatedFunctionIsFalse(t *testing.T) {
	e := NewEvaluator(nil)
	if e.Evaluate(Calculated{Function: "noSuchFunction", Threshold: 1}, Snapshot{}) {
		t.Fatalf("unknown calculated function should be false")
	}
}

func TestEvaluate_NilConditionIsFalse(t *testing.T) {
	e := NewEvaluator(nil)
	if e.Evaluate(nil, Snapshot{"Q": "Yes"}) {
		t.Fatalf("nil condition should be false")
	}
}

func TestUnmarshalCondition_NestedTree(t *testing.T) {
	data := []byte(`{
		"type": "or",
		"conditions": [
			{"type": "lessThanOrEqual", "questionId": "1", "value": 5},
			{"type": "equals", "questionId": "3", "value": "Yes"}
		]
	}`)
	cond, err := UnmarshalCondition(data)
	if err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	or, ok := cond.(Or)
	if !ok {
		t.Fatalf("expected Or, got %T", cond)
	}
	if len(or.Conditions) != 2 {
		t.Fatalf("expected 2 sub-conditions, got %d", len(or.Conditions))
	}
	if _, ok := or.Conditions[0].(LessThanOrEqual); !ok {
		t.Fatalf("expected LessThanOrEqual first, got %T", or.Conditions[0])
	}

	e := NewEvaluator(nil)
	if !e.Evaluate(cond, Snapshot{"1": "4", "3": "No"}) {
		t.Fatalf("expected tree to hold on quality=4")
	}
}

func TestUnmarshalCondition_UnknownTypeErrors(t *testing.T) {
	if _, err := UnmarshalCondition([]byte(`{"type":"between","questionId":"1"}`)); err == nil {
		t.Fatalf("expected error for unknown condition type")
	}
}

func TestMarshalCondition_RoundTripsCalculated(t *testing.T) {
	data, err := MarshalCondition(Calculated{Function: FuncWeekdayWeekendDifference, Threshold: 1})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	cond, err := UnmarshalCondition(data)
	if err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	calc, ok := cond.(Calculated)
	if !ok {
		t.Fatalf("expected Calculated, got %T", cond)
	}
	if calc.Function != FuncWeekdayWeekendDifference || calc.Threshold != 1 {
		t.Fatalf("unexpected round trip result: %+v", calc)
	}
}
