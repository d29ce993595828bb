package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/sleepintake-backend/internal/catalog"
)

type CatalogHandler struct {
	catalog *catalog.Catalog
	planner *catalog.Planner
}

func NewCatalogHandler(c *catalog.Catalog, planner *catalog.Planner) *CatalogHandler {
	return &CatalogHandler{catalog: c, planner: planner}
}

type moduleView struct {
	ModuleID         string   `json:"moduleId"`
	Name             string   `json:"name"`
	Description      string   `json:"description,omitempty"`
	Pillar           string   `json:"pillar,omitempty"`
	Tier             string   `json:"tier,omitempty"`
	Type             string   `json:"type"`
	QuestionIDs      []string `json:"questionIds"`
	EstimatedMinutes float64  `json:"estimatedMinutes"`
}

func toModuleView(m catalog.Module) moduleView {
	return moduleView{
		ModuleID:         m.ModuleID,
		Name:             m.Name,
		Description:      m.Description,
		Pillar:           m.Pillar,
		Tier:             m.Tier,
		Type:             string(m.Type),
		QuestionIDs:      m.QuestionIDs,
		EstimatedMinutes: m.EstimatedMinutes,
	}
}

func (ch *CatalogHandler) ListModules(c *gin.Context) {
	modules := ch.catalog.Modules()
	views := make([]moduleView, 0, len(modules))
	for _, m := range modules {
		views = append(views, toModuleView(m))
	}
	c.JSON(http.StatusOK, gin.H{"modules": views})
}

func (ch *CatalogHandler) GetModule(c *gin.Context) {
	module, ok := ch.catalog.Module(c.Param("moduleId"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "module not found"})
		return
	}
	c.JSON(http.StatusOK, toModuleView(module))
}

type questionView struct {
	QuestionID           string         `json:"questionId"`
	QuestionText         string         `json:"questionText"`
	HelpText             string         `json:"helpText,omitempty"`
	Pillar               string         `json:"pillar,omitempty"`
	Tier                 string         `json:"tier,omitempty"`
	AnswerFormat         string         `json:"answerFormat"`
	FormatConfig         map[string]any `json:"formatConfig,omitempty"`
	ValidationRules      map[string]any `json:"validationRules,omitempty"`
	ConditionalLogic     map[string]any `json:"conditionalLogic,omitempty"`
	EstimatedTimeSeconds int            `json:"estimatedTimeSeconds"`
}

func (ch *CatalogHandler) ListQuestions(c *gin.Context) {
	questions := ch.catalog.Questions()
	views := make([]questionView, 0, len(questions))
	for _, q := range questions {
		views = append(views, questionView{
			QuestionID:           q.QuestionID,
			QuestionText:         q.QuestionText,
			HelpText:             q.HelpText,
			Pillar:               q.Pillar,
			Tier:                 q.Tier,
			AnswerFormat:         string(q.AnswerFormat),
			FormatConfig:         q.FormatConfig,
			ValidationRules:      q.ValidationRules,
			ConditionalLogic:     q.ConditionalLogic,
			EstimatedTimeSeconds: q.EstimatedTimeSeconds,
		})
	}
	c.JSON(http.StatusOK, gin.H{"questions": views})
}

// ListDays returns the static skeleton of the plan: which days carry
// assignments at all, before any per-user gateway filtering.
func (ch *CatalogHandler) ListDays(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"days": ch.planner.Days()})
}
