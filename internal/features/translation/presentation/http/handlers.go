package http

import (
	"errors"
	"net/http"

	"sangbangcopy/backend/internal/features/translation/application"

	"github.com/gin-gonic/gin"
)

// TranslationHandler exposes the Korean→English glossary.
type TranslationHandler struct {
	translationService application.Service
}

// NewTranslationHandler creates a new TranslationHandler.
func NewTranslationHandler(translationService application.Service) *TranslationHandler {
	return &TranslationHandler{translationService: translationService}
}

// ListHandler returns all stored translation rules.
func (h *TranslationHandler) ListHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"rules": h.translationService.List()})
}

// CreateHandler adds a new translation rule.
func (h *TranslationHandler) CreateHandler(c *gin.Context) {
	var req struct {
		Korean  string `json:"korean"`
		English string `json:"english"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	rule, err := h.translationService.Add(req.Korean, req.English)
	if err != nil {
		if errors.Is(err, application.ErrEmptyTerm) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add translation rule: " + err.Error()})
		return
	}

	c.JSON(http.StatusCreated, rule)
}

// DeleteHandler removes one translation rule by id.
func (h *TranslationHandler) DeleteHandler(c *gin.Context) {
	if err := h.translationService.Delete(c.Param("id")); err != nil {
		if errors.Is(err, application.ErrRuleNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete translation rule: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "변환 규칙이 삭제되었습니다."})
}
