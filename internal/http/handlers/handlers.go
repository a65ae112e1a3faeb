package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/nagrik-seva/backend/internal/db"
	"github.com/nagrik-seva/backend/internal/models"
	"github.com/nagrik-seva/backend/internal/service"
)

type Handler struct {
	Store     db.Store
	Lifecycle *service.LifecycleService
	Validator *validator.Validate
	Logger    zerolog.Logger
}

type CreateIssueRequest struct {
	Description   string   `json:"description" validate:"required"`
	Category      string   `json:"category" validate:"required"`
	Location      string   `json:"location" validate:"required"`
	Status        string   `json:"status" validate:"omitempty,oneof='Reported' 'Forwarded' 'In Progress' 'Resolved'"`
	AffectedCount int      `json:"affectedCount" validate:"omitempty,gte=1"`
	UserID        string   `json:"userId"`
	Lat           *float64 `json:"lat"`
	Lng           *float64 `json:"lng"`
}

type CreateMessageRequest struct {
	Content string `json:"content" validate:"required"`
	Type    string `json:"type" validate:"required,oneof=user assistant"`
	UserID  string `json:"userId"`
}

type SimulateDaysRequest struct {
	Days int `json:"days" validate:"gte=0"`
}

type AnalyzeRequest struct {
	Text string `json:"text"`
}

func (h *Handler) Healthz(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()
	if err := h.Store.Ping(ctx); err != nil {
		writeMessage(c, http.StatusServiceUnavailable, "Store unavailable")
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// @Summary List issues
// @Tags issues
// @Produce json
// @Success 200 {array} models.Issue
// @Router /api/issues [get]
func (h *Handler) IssuesList(c *gin.Context) {
	issues, err := h.Store.ListIssues(c.Request.Context())
	if err != nil {
		h.internalError(c, err, "failed to list issues")
		return
	}
	if issues == nil {
		issues = []models.Issue{}
	}
	c.JSON(http.StatusOK, issues)
}

// @Summary Report an issue
// @Tags issues
// @Accept json
// @Produce json
// @Success 201 {object} models.Issue
// @Failure 400 {object} map[string]string
// @Router /api/issues [post]
func (h *Handler) IssueCreate(c *gin.Context) {
	var req CreateIssueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeMessage(c, http.StatusBadRequest, "Invalid input")
		return
	}
	if err := h.Validator.Struct(req); err != nil {
		writeMessage(c, http.StatusBadRequest, "Invalid input")
		return
	}

	issue, err := h.Store.CreateIssue(c.Request.Context(), db.CreateIssueParams{
		Description:   req.Description,
		Category:      req.Category,
		Location:      req.Location,
		Status:        req.Status,
		AffectedCount: req.AffectedCount,
		UserID:        req.UserID,
		Lat:           req.Lat,
		Lng:           req.Lng,
	})
	if err != nil {
		h.internalError(c, err, "failed to create issue")
		return
	}
	c.JSON(http.StatusCreated, issue)
}

// @Summary Get an issue
// @Tags issues
// @Produce json
// @Param id path int true "Issue ID"
// @Success 200 {object} models.Issue
// @Failure 404 {object} map[string]string
// @Router /api/issues/{id} [get]
func (h *Handler) IssueGet(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		writeMessage(c, http.StatusNotFound, "Issue not found")
		return
	}
	issue, err := h.Store.GetIssue(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			writeMessage(c, http.StatusNotFound, "Issue not found")
			return
		}
		h.internalError(c, err, "failed to get issue")
		return
	}
	c.JSON(http.StatusOK, issue)
}

// @Summary Advance an issue one lifecycle step
// @Tags simulation
// @Produce json
// @Param id path int true "Issue ID"
// @Success 200 {object} models.Issue
// @Failure 404 {object} map[string]string
// @Router /api/issues/{id}/simulate [post]
func (h *Handler) IssueSimulate(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		writeMessage(c, http.StatusNotFound, "Issue not found")
		return
	}
	issue, err := h.Lifecycle.AdvanceStatus(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			writeMessage(c, http.StatusNotFound, "Issue not found")
			return
		}
		h.internalError(c, err, "failed to advance issue")
		return
	}
	c.JSON(http.StatusOK, issue)
}

// @Summary Simulate days passing
// @Tags simulation
// @Accept json
// @Produce json
// @Success 200 {object} map[string]string
// @Router /api/simulate-days [post]
func (h *Handler) SimulateDays(c *gin.Context) {
	var req SimulateDaysRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeMessage(c, http.StatusBadRequest, "Invalid input")
		return
	}
	if err := h.Validator.Struct(req); err != nil {
		writeMessage(c, http.StatusBadRequest, "Invalid input")
		return
	}
	if err := h.Lifecycle.SimulateDays(c.Request.Context(), req.Days); err != nil {
		h.internalError(c, err, "failed to simulate days")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": fmt.Sprintf("Simulated %d days passing.", req.Days)})
}

// @Summary List chat messages
// @Tags messages
// @Produce json
// @Success 200 {array} models.Message
// @Router /api/messages [get]
func (h *Handler) MessagesList(c *gin.Context) {
	messages, err := h.Store.ListMessages(c.Request.Context())
	if err != nil {
		h.internalError(c, err, "failed to list messages")
		return
	}
	if messages == nil {
		messages = []models.Message{}
	}
	c.JSON(http.StatusOK, messages)
}

// @Summary Post a chat message
// @Tags messages
// @Accept json
// @Produce json
// @Success 201 {object} models.Message
// @Failure 400 {object} map[string]string
// @Router /api/messages [post]
func (h *Handler) MessageCreate(c *gin.Context) {
	var req CreateMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeMessage(c, http.StatusBadRequest, "Invalid input")
		return
	}
	if err := h.Validator.Struct(req); err != nil {
		writeMessage(c, http.StatusBadRequest, "Invalid input")
		return
	}
	msg, err := h.Store.CreateMessage(c.Request.Context(), db.CreateMessageParams{
		Role:    req.Type,
		Content: req.Content,
		UserID:  req.UserID,
	})
	if err != nil {
		h.internalError(c, err, "failed to create message")
		return
	}
	c.JSON(http.StatusCreated, msg)
}

// @Summary Classify complaint text
// @Tags analyze
// @Accept json
// @Produce json
// @Success 200 {object} models.ClassificationResult
// @Router /api/analyze [post]
func (h *Handler) Analyze(c *gin.Context) {
	var req AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeMessage(c, http.StatusBadRequest, "Invalid input")
		return
	}
	c.JSON(http.StatusOK, service.Classify(req.Text))
}

func (h *Handler) internalError(c *gin.Context, err error, msg string) {
	h.Logger.Error().Err(err).Msg(msg)
	writeMessage(c, http.StatusInternalServerError, "Internal server error")
}

func writeMessage(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"message": message})
}
