package engine

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// conditionJSON is the wire shape shared by gateway configuration and the
// audit copies stored next to gateway states:
//
//	{"type":"equals","questionId":"3","value":"Yes"}
//	{"type":"or","conditions":[...]}
//	{"type":"calculated","function":"weekdayWeekendDifference","threshold":1}
type conditionJSON struct {
	Type       string            `json:"type"`
	QuestionID string            `json:"questionId,omitempty"`
	Value      json.RawMessage   `json:"value,omitempty"`
	Conditions []json.RawMessage `json:"conditions,omitempty"`
	Function   string            `json:"function,omitempty"`
	Threshold  float64           `json:"threshold,omitempty"`
}

// UnmarshalCondition decodes a condition tree from its JSON form. Equality
// values may be authored as numbers; they are coerced to strings so a
// configured 2 matches a stored "2".
func UnmarshalCondition(data []byte) (Condition, error) {
	var raw conditionJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode condition: %w", err)
	}

	switch raw.Type {
	case "equals":
		value, err := scalarString(raw.Value)
		if err != nil {
			return nil, fmt.Errorf("equals condition for %q: %w", raw.QuestionID, err)
		}
		return Equals{QuestionID: raw.QuestionID, Value: value}, nil
	case "greaterThan":
		value, err := scalarNumber(raw.Value)
		if err != nil {
			return nil, fmt.Errorf("greaterThan condition for %q: %w", raw.QuestionID, err)
		}
		return GreaterThan{QuestionID: raw.QuestionID, Value: value}, nil
	case "greaterThanOrEqual":
		value, err := scalarNumber(raw.Value)
		if err != nil {
			return nil, fmt.Errorf("greaterThanOrEqual condition for %q: %w", raw.QuestionID, err)
		}
		return GreaterThanOrEqual{QuestionID: raw.QuestionID, Value: value}, nil
	case "lessThan":
		value, err := scalarNumber(raw.Value)
		if err != nil {
			return nil, fmt.Errorf("lessThan condition for %q: %w", raw.QuestionID, err)
		}
		return LessThan{QuestionID: raw.QuestionID, Value: value}, nil
	case "lessThanOrEqual":
		value, err := scalarNumber(raw.Value)
		if err != nil {
			return nil, fmt.Errorf("lessThanOrEqual condition for %q: %w", raw.QuestionID, err)
		}
		return LessThanOrEqual{QuestionID: raw.QuestionID, Value: value}, nil
	case "and":
		subs, err := unmarshalConditionList(raw.Conditions)
		if err != nil {
			return nil, err
		}
		return And{Conditions: subs}, nil
	case "or":
		subs, err := unmarshalConditionList(raw.Conditions)
		if err != nil {
			return nil, err
		}
		return Or{Conditions: subs}, nil
	case "calculated":
		return Calculated{Function: raw.Function, Threshold: raw.Threshold}, nil
	default:
		return nil, fmt.Errorf("unknown condition type %q", raw.Type)
	}
}

// MarshalCondition encodes a condition tree into the shared JSON form.
func MarshalCondition(c Condition) ([]byte, error) {
	node, err := conditionNode(c)
	if err != nil {
		return nil, err
	}
	return json.Marshal(node)
}

func conditionNode(c Condition) (map[string]any, error) {
	switch cond := c.(type) {
	case Equals:
		return map[string]any{"type": "equals", "questionId": cond.QuestionID, "value": cond.Value}, nil
	case GreaterThan:
		return map[string]any{"type": "greaterThan", "questionId": cond.QuestionID, "value": cond.Value}, nil
	case GreaterThanOrEqual:
		return map[string]any{"type": "greaterThanOrEqual", "questionId": cond.QuestionID, "value": cond.Value}, nil
	case LessThan:
		return map[string]any{"type": "lessThan", "questionId": cond.QuestionID, "value": cond.Value}, nil
	case LessThanOrEqual:
		return map[string]any{"type": "lessThanOrEqual", "questionId": cond.QuestionID, "value": cond.Value}, nil
	case And:
		subs, err := conditionNodeList(cond.Conditions)
		if err != nil {
			return nil, err
		}
		return map[string]any{"type": "and", "conditions": subs}, nil
	case Or:
		subs, err := conditionNodeList(cond.Conditions)
		if err != nil {
			return nil, err
		}
		return map[string]any{"type": "or", "conditions": subs}, nil
	case Calculated:
		return map[string]any{"type": "calculated", "function": cond.Function, "threshold": cond.Threshold}, nil
	default:
		return nil, fmt.Errorf("cannot marshal condition of type %T", c)
	}
}

func conditionNodeList(conditions []Condition) ([]map[string]any, error) {
	nodes := make([]map[string]any, 0, len(conditions))
	for _, sub := range conditions {
		node, err := conditionNode(sub)
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, node)
	}
	return nodes, nil
}

func unmarshalConditionList(raws []json.RawMessage) ([]Condition, error) {
	conditions := make([]Condition, 0, len(raws))
	for _, raw := range raws {
		sub, err := UnmarshalCondition(raw)
		if err != nil {
			return nil, err
		}
		conditions = append(conditions, sub)
	}
	return conditions, nil
}

func scalarString(raw json.RawMessage) (string, error) {
	if len(raw) == 0 {
		return "", fmt.Errorf("missing value")
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s, nil
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		return n.String(), nil
	}
	return "", fmt.Errorf("value %s is not a scalar", raw)
}

func scalarNumber(raw json.RawMessage) (float64, error) {
	if len(raw) == 0 {
		return 0, fmt.Errorf("missing value")
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err == nil {
		return f, nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if v, err := strconv.ParseFloat(s, 64); err == nil {
			return v, nil
		}
	}
	return 0, fmt.Errorf("value %s is not numeric", raw)
}
