package engine

import (
	"strconv"

	"github.com/yungbote/sleepintake-backend/internal/logger"
)

// Snapshot is the read-only view of a user's latest answers, keyed by
// question id. Values are stored as strings regardless of the question's
// answer format; numeric comparisons parse on demand.
type Snapshot map[string]string

// Condition is a closed union: the only implementations live in this
// package, so evaluation can switch exhaustively over the concrete types.
type Condition interface {
	isCondition()
}

type Equals struct {
	QuestionID string
	Value      string
}

type GreaterThan struct {
	QuestionID string
	Value      float64
}

type GreaterThanOrEqual struct {
	QuestionID string
	Value      float64
}

type LessThan struct {
	QuestionID string
	Value      float64
}

type LessThanOrEqual struct {
	QuestionID string
	Value      float64
}

type And struct {
	Conditions []Condition
}

type Or struct {
	Conditions []Condition
}

type Calculated struct {
	Function  string
	Threshold float64
}

func (Equals) isCondition()             {}
func (GreaterThan) isCondition()        {}
func (GreaterThanOrEqual) isCondition() {}
func (LessThan) isCondition()           {}
func (LessThanOrEqual) isCondition()    {}
func (And) isCondition()                {}
func (Or) isCondition()                 {}
func (Calculated) isCondition()         {}

// Evaluator resolves condition trees against response snapshots. It holds
// no mutable state; a single instance is safe for concurrent use.
type Evaluator struct {
	log *logger.Logger
}

func NewEvaluator(log *logger.Logger) *Evaluator {
	if log != nil {
		log = log.With("component", "ConditionEvaluator")
	}
	return &Evaluator{log: log}
}

// Evaluate returns whether the condition holds for the given snapshot.
// It never panics: malformed numeric answers fail the comparison, unknown
// calculated functions and nil conditions resolve to false.
func (e *Evaluator) Evaluate(c Condition, responses Snapshot) bool {
	switch cond := c.(type) {
	case Equals:
		return responses[cond.QuestionID] == cond.Value
	case GreaterThan:
		v, ok := numericAnswer(responses, cond.QuestionID)
		return ok && v > cond.Value
	case GreaterThanOrEqual:
		v, ok := numericAnswer(responses, cond.QuestionID)
		return ok && v >= cond.Value
	case LessThan:
		v, ok := numericAnswer(responses, cond.QuestionID)
		return ok && v < cond.Value
	case LessThanOrEqual:
		v, ok := numericAnswer(responses, cond.QuestionID)
		return ok && v <= cond.Value
	case And:
		for _, sub := range cond.Conditions {
			if !e.Evaluate(sub, responses) {
				return false
			}
		}
		return true
	case Or:
		for _, sub := range cond.Conditions {
			if e.Evaluate(sub, responses) {
				return true
			}
		}
		return false
	case Calculated:
		switch cond.Function {
		case FuncWeekdayWeekendDifference:
			diff, ok := WeekdayWeekendDifference(responses)
			return ok && diff > cond.Threshold
		default:
			e.warn("Unknown calculated function", "function", cond.Function)
			return false
		}
	default:
		e.warn("Unknown condition shape", "condition", c)
		return false
	}
}

func (e *Evaluator) warn(msg string, keysAndValues ...interface{}) {
	if e.log != nil {
		e.log.Warn(msg, keysAndValues...)
	}
}

func numericAnswer(responses Snapshot, questionID string) (float64, bool) {
	raw, ok := responses[questionID]
	if !ok {
		return 0, false
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
