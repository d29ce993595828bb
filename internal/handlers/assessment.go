package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/sleepintake-backend/internal/middleware"
	"github.com/yungbote/sleepintake-backend/internal/services"
)

type AssessmentHandler struct {
	assessmentService services.AssessmentService
}

func NewAssessmentHandler(assessmentService services.AssessmentService) *AssessmentHandler {
	return &AssessmentHandler{assessmentService: assessmentService}
}

type saveResponseRequest struct {
	QuestionID string `json:"questionId" binding:"required"`
	Value      string `json:"value"`
	DayNumber  *int   `json:"dayNumber"`
}

// SaveResponse stores one answer and returns the fresh gateway evaluation,
// so clients can react to newly unlocked modules without a second call.
func (ah *AssessmentHandler) SaveResponse(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing user"})
		return
	}

	var req saveResponseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	results, err := ah.assessmentService.SaveResponse(c.Request.Context(), userID, req.QuestionID, req.Value, req.DayNumber)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"gatewayResults": results})
}

func (ah *AssessmentHandler) GetResponses(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing user"})
		return
	}

	responses, err := ah.assessmentService.GetResponses(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"responses": responses})
}

func (ah *AssessmentHandler) GetDayPlan(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing user"})
		return
	}
	dayNumber, err := strconv.Atoi(c.Param("day"))
	if err != nil || dayNumber < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid day number"})
		return
	}

	plan, err := ah.assessmentService.GetDayPlan(c.Request.Context(), userID, dayNumber)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, plan)
}

func (ah *AssessmentHandler) GetDaySummary(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing user"})
		return
	}
	dayNumber, err := strconv.Atoi(c.Param("day"))
	if err != nil || dayNumber < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid day number"})
		return
	}

	summary, err := ah.assessmentService.GetDaySummary(c.Request.Context(), userID, dayNumber)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"dayNumber": dayNumber, "modules": summary})
}

// GetGatewayStates exposes the persisted evaluation trail: which gateways
// fired, when each first fired, and the answers each read.
func (ah *AssessmentHandler) GetGatewayStates(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing user"})
		return
	}

	states, err := ah.assessmentService.GetGatewayStates(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"gateways": states})
}
