// Package config loads the intake configuration: question records, module
// definitions, the static day plan and the gateway registry. Files are
// YAML; when a file is absent the compiled-in defaults are used, so the
// service runs without any external configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/yungbote/sleepintake-backend/internal/catalog"
	"github.com/yungbote/sleepintake-backend/internal/engine"
	"github.com/yungbote/sleepintake-backend/internal/logger"
	"github.com/yungbote/sleepintake-backend/internal/standardize"
)

type Config struct {
	RawQuestions   []standardize.RawQuestion
	Modules        []catalog.Module
	DayAssignments []catalog.DayAssignment
	Gateways       []engine.Gateway
}

// Load reads configuration from dir. Each file is optional and falls back
// to the compiled-in defaults independently.
func Load(dir string, log *logger.Logger) (*Config, error) {
	cfg := Defaults()
	if dir == "" {
		return cfg, nil
	}

	var questionsFile questionsFile
	if ok, err := readYAML(filepath.Join(dir, "questions.yaml"), &questionsFile); err != nil {
		return nil, err
	} else if ok {
		cfg.RawQuestions = rawQuestions(questionsFile.Questions)
		if log != nil {
			log.Info("Loaded questions from file", "count", len(cfg.RawQuestions))
		}
	}

	var modulesFile modulesFile
	if ok, err := readYAML(filepath.Join(dir, "modules.yaml"), &modulesFile); err != nil {
		return nil, err
	} else if ok {
		cfg.Modules = modules(modulesFile.Modules)
		if log != nil {
			log.Info("Loaded modules from file", "count", len(cfg.Modules))
		}
	}

	var daysFile daysFile
	if ok, err := readYAML(filepath.Join(dir, "days.yaml"), &daysFile); err != nil {
		return nil, err
	} else if ok {
		cfg.DayAssignments = dayAssignments(daysFile.Days)
		if log != nil {
			log.Info("Loaded day plan from file", "days", len(daysFile.Days))
		}
	}

	var gatewaysFile gatewaysFile
	if ok, err := readYAML(filepath.Join(dir, "gateways.yaml"), &gatewaysFile); err != nil {
		return nil, err
	} else if ok {
		gateways, err := gateways(gatewaysFile.Gateways)
		if err != nil {
			return nil, err
		}
		cfg.Gateways = gateways
		if log != nil {
			log.Info("Loaded gateways from file", "count", len(cfg.Gateways))
		}
	}

	return cfg, nil
}

func readYAML(path string, out any) (bool, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return false, fmt.Errorf("parse %s: %w", path, err)
	}
	return true, nil
}

type questionsFile struct {
	Questions []questionSpec `yaml:"questions"`
}

type questionSpec struct {
	ID               string    `yaml:"id"`
	Text             string    `yaml:"text"`
	HelpText         string    `yaml:"helpText"`
	Pillar           string    `yaml:"pillar"`
	Tier             string    `yaml:"tier"`
	ScaleType        string    `yaml:"scaleType"`
	Options          []string  `yaml:"options"`
	Trigger          string    `yaml:"trigger"`
	Min              *float64  `yaml:"min"`
	Max              *float64  `yaml:"max"`
	Step             *float64  `yaml:"step"`
	Unit             string    `yaml:"unit"`
	Required         *bool     `yaml:"required"`
	EstimatedMinutes float64   `yaml:"estimatedMinutes"`
	ShowIf           *showSpec `yaml:"showIf"`
}

type showSpec struct {
	QuestionID  string   `yaml:"questionId"`
	Equals      string   `yaml:"equals"`
	GreaterThan *float64 `yaml:"greaterThan"`
}

func rawQuestions(specs []questionSpec) []standardize.RawQuestion {
	raws := make([]standardize.RawQuestion, 0, len(specs))
	for _, s := range specs {
		raw := standardize.RawQuestion{
			ID:               s.ID,
			Text:             s.Text,
			HelpText:         s.HelpText,
			Pillar:           s.Pillar,
			Tier:             s.Tier,
			ScaleType:        s.ScaleType,
			Options:          s.Options,
			Trigger:          s.Trigger,
			Min:              s.Min,
			Max:              s.Max,
			Step:             s.Step,
			Unit:             s.Unit,
			Required:         s.Required,
			EstimatedMinutes: s.EstimatedMinutes,
		}
		if s.ShowIf != nil {
			raw.Condition = &standardize.ShowCondition{
				QuestionID:  s.ShowIf.QuestionID,
				Equals:      s.ShowIf.Equals,
				GreaterThan: s.ShowIf.GreaterThan,
			}
		}
		raws = append(raws, raw)
	}
	return raws
}

type modulesFile struct {
	Modules []moduleSpec `yaml:"modules"`
}

type moduleSpec struct {
	ModuleID         string   `yaml:"moduleId"`
	Name             string   `yaml:"name"`
	Description      string   `yaml:"description"`
	Pillar           string   `yaml:"pillar"`
	Tier             string   `yaml:"tier"`
	Type             string   `yaml:"type"`
	QuestionIDs      []string `yaml:"questionIds"`
	EstimatedMinutes float64  `yaml:"estimatedMinutes"`
}

func modules(specs []moduleSpec) []catalog.Module {
	out := make([]catalog.Module, 0, len(specs))
	for _, s := range specs {
		out = append(out, catalog.Module{
			ModuleID:         s.ModuleID,
			Name:             s.Name,
			Description:      s.Description,
			Pillar:           s.Pillar,
			Tier:             s.Tier,
			Type:             catalog.ModuleType(s.Type),
			QuestionIDs:      s.QuestionIDs,
			EstimatedMinutes: s.EstimatedMinutes,
		})
	}
	return out
}

type daysFile struct {
	Days []daySpec `yaml:"days"`
}

type daySpec struct {
	Day     int      `yaml:"day"`
	Modules []string `yaml:"modules"`
}

func dayAssignments(specs []daySpec) []catalog.DayAssignment {
	var assignments []catalog.DayAssignment
	for _, s := range specs {
		for i, moduleID := range s.Modules {
			assignments = append(assignments, catalog.DayAssignment{
				DayNumber:  s.Day,
				ModuleID:   moduleID,
				OrderIndex: i,
			})
		}
	}
	return assignments
}

type gatewaysFile struct {
	Gateways []gatewaySpec `yaml:"gateways"`
}

type gatewaySpec struct {
	GatewayID          string         `yaml:"gatewayId"`
	Name               string         `yaml:"name"`
	TriggerQuestionIDs []string       `yaml:"triggerQuestionIds"`
	Condition          *conditionSpec `yaml:"condition"`
	TargetModules      []string       `yaml:"targetModules"`
	Description        string         `yaml:"description"`
	Optional           bool           `yaml:"optional"`
}

type conditionSpec struct {
	Type       string          `yaml:"type"`
	QuestionID string          `yaml:"questionId"`
	Value      any             `yaml:"value"`
	Conditions []conditionSpec `yaml:"conditions"`
	Function   string          `yaml:"function"`
	Threshold  float64         `yaml:"threshold"`
}

func (s conditionSpec) condition() (engine.Condition, error) {
	switch s.Type {
	case "equals":
		return engine.Equals{QuestionID: s.QuestionID, Value: scalarString(s.Value)}, nil
	case "greaterThan":
		v, err := scalarNumber(s.Value)
		if err != nil {
			return nil, fmt.Errorf("greaterThan on %q: %w", s.QuestionID, err)
		}
		return engine.GreaterThan{QuestionID: s.QuestionID, Value: v}, nil
	case "greaterThanOrEqual":
		v, err := scalarNumber(s.Value)
		if err != nil {
			return nil, fmt.Errorf("greaterThanOrEqual on %q: %w", s.QuestionID, err)
		}
		return engine.GreaterThanOrEqual{QuestionID: s.QuestionID, Value: v}, nil
	case "lessThan":
		v, err := scalarNumber(s.Value)
		if err != nil {
			return nil, fmt.Errorf("lessThan on %q: %w", s.QuestionID, err)
		}
		return engine.LessThan{QuestionID: s.QuestionID, Value: v}, nil
	case "lessThanOrEqual":
		v, err := scalarNumber(s.Value)
		if err != nil {
			return nil, fmt.Errorf("lessThanOrEqual on %q: %w", s.QuestionID, err)
		}
		return engine.LessThanOrEqual{QuestionID: s.QuestionID, Value: v}, nil
	case "and":
		subs, err := conditionList(s.Conditions)
		if err != nil {
			return nil, err
		}
		return engine.And{Conditions: subs}, nil
	case "or":
		subs, err := conditionList(s.Conditions)
		if err != nil {
			return nil, err
		}
		return engine.Or{Conditions: subs}, nil
	case "calculated":
		return engine.Calculated{Function: s.Function, Threshold: s.Threshold}, nil
	default:
		return nil, fmt.Errorf("unknown condition type %q", s.Type)
	}
}

func conditionList(specs []conditionSpec) ([]engine.Condition, error) {
	conditions := make([]engine.Condition, 0, len(specs))
	for _, s := range specs {
		cond, err := s.condition()
		if err != nil {
			return nil, err
		}
		conditions = append(conditions, cond)
	}
	return conditions, nil
}

func gateways(specs []gatewaySpec) ([]engine.Gateway, error) {
	out := make([]engine.Gateway, 0, len(specs))
	for _, s := range specs {
		if s.Condition == nil {
			return nil, fmt.Errorf("gateway %q has no condition", s.GatewayID)
		}
		cond, err := s.Condition.condition()
		if err != nil {
			return nil, fmt.Errorf("gateway %q: %w", s.GatewayID, err)
		}
		out = append(out, engine.Gateway{
			GatewayID:          s.GatewayID,
			Name:               s.Name,
			TriggerQuestionIDs: s.TriggerQuestionIDs,
			Condition:          cond,
			TargetModules:      s.TargetModules,
			Description:        s.Description,
			Optional:           s.Optional,
		})
	}
	return out, nil
}

func scalarString(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", val)
	}
}

func scalarNumber(v any) (float64, error) {
	switch val := v.(type) {
	case int:
		return float64(val), nil
	case float64:
		return val, nil
	default:
		return 0, fmt.Errorf("value %v is not numeric", v)
	}
}
