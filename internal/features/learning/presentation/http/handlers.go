package http

import (
	"errors"
	"net/http"

	"sangbangcopy/backend/internal/features/learning/application"

	"github.com/gin-gonic/gin"
)

// LearningHandler exposes the learning-item collection.
type LearningHandler struct {
	learningService application.Service
}

// NewLearningHandler creates a new LearningHandler.
func NewLearningHandler(learningService application.Service) *LearningHandler {
	return &LearningHandler{learningService: learningService}
}

type learningItemRequest struct {
	Content string `json:"content"`
}

// ListHandler returns all stored learning items in insertion order.
func (h *LearningHandler) ListHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"items": h.learningService.List()})
}

// CreateHandler adds a new learning item.
func (h *LearningHandler) CreateHandler(c *gin.Context) {
	var req learningItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	item, err := h.learningService.Add(req.Content)
	if err != nil {
		if errors.Is(err, application.ErrEmptyContent) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add learning item: " + err.Error()})
		return
	}

	c.JSON(http.StatusCreated, item)
}

// UpdateHandler replaces the content of one learning item.
func (h *LearningHandler) UpdateHandler(c *gin.Context) {
	var req learningItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	item, err := h.learningService.Update(c.Param("id"), req.Content)
	if err != nil {
		switch {
		case errors.Is(err, application.ErrEmptyContent):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		case errors.Is(err, application.ErrItemNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update learning item: " + err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, item)
}

// DeleteHandler removes one learning item by id.
func (h *LearningHandler) DeleteHandler(c *gin.Context) {
	if err := h.learningService.Delete(c.Param("id")); err != nil {
		if errors.Is(err, application.ErrItemNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete learning item: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "학습 자료가 삭제되었습니다."})
}
