package http

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"

	"sangbangcopy/backend/internal/features/copywriting/application"
	"sangbangcopy/backend/internal/features/copywriting/domain"

	"github.com/gin-gonic/gin"
)

// CopyHandler exposes the generation cycle and its follow-up operations.
type CopyHandler struct {
	generationService application.GenerationService
}

// NewCopyHandler creates a new CopyHandler.
func NewCopyHandler(generationService application.GenerationService) *CopyHandler {
	return &CopyHandler{generationService: generationService}
}

type generateForm struct {
	InputType        string `form:"input_type"`
	URL              string `form:"url"`
	Text             string `form:"text"`
	Keyword1         string `form:"keyword1"`
	Keyword2         string `form:"keyword2"`
	Keyword3         string `form:"keyword3"`
	BriefDescription string `form:"brief_description"`
}

// GenerateHandler runs one full generation cycle from a multipart form. The
// images field may carry multiple files when input_type is "images".
func (h *CopyHandler) GenerateHandler(c *gin.Context) {
	var form generateForm
	if err := c.ShouldBind(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	images, err := readImages(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read uploaded images: " + err.Error()})
		return
	}

	req := application.GenerateRequest{
		Input: domain.ProductInput{
			Type:   domain.InputType(form.InputType),
			URL:    form.URL,
			Text:   form.Text,
			Images: images,
		},
		RequiredKeywords: []string{form.Keyword1, form.Keyword2, form.Keyword3},
		BriefDescription: form.BriefDescription,
	}

	session, err := h.generationService.Generate(c.Request.Context(), req)
	if err != nil {
		if application.IsValidationError(err) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate copy: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, session)
}

// GetSessionHandler returns the current bilingual pair of one session.
func (h *CopyHandler) GetSessionHandler(c *gin.Context) {
	session, err := h.generationService.GetSession(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, session)
}

// RegenerateMainTitleHandler replaces the Korean main title and re-derives the
// English copy.
func (h *CopyHandler) RegenerateMainTitleHandler(c *gin.Context) {
	session, err := h.generationService.RegenerateMainTitle(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.regenerationError(c, err)
		return
	}
	c.JSON(http.StatusOK, session)
}

// RegenerateSectionTitleHandler replaces one Korean section title and
// re-derives the English copy.
func (h *CopyHandler) RegenerateSectionTitleHandler(c *gin.Context) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "section index must be a number"})
		return
	}

	session, err := h.generationService.RegenerateSectionTitle(c.Request.Context(), c.Param("id"), index)
	if err != nil {
		h.regenerationError(c, err)
		return
	}
	c.JSON(http.StatusOK, session)
}

// ExportHandler flattens one language of the session into clipboard-ready
// plain text.
func (h *CopyHandler) ExportHandler(c *gin.Context) {
	session, err := h.generationService.GetSession(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	var copy *domain.GeneratedCopy
	switch c.DefaultQuery("lang", "ko") {
	case "ko":
		copy = session.Korean
	case "en":
		copy = session.English
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "lang must be ko or en"})
		return
	}
	if copy == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no copy available for the requested language"})
		return
	}

	c.String(http.StatusOK, copy.PlainText())
}

func (h *CopyHandler) regenerationError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, application.ErrSessionNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, application.ErrSectionOutOfRange):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

func readImages(c *gin.Context) ([]domain.ImageFile, error) {
	form, err := c.MultipartForm()
	if err != nil {
		// Non-multipart requests carry no images; URL and text input use
		// ordinary form encoding.
		if errors.Is(err, http.ErrNotMultipart) {
			return nil, nil
		}
		return nil, err
	}

	files := form.File["images"]
	images := make([]domain.ImageFile, 0, len(files))
	for _, fh := range files {
		img, err := readImage(fh)
		if err != nil {
			return nil, err
		}
		images = append(images, img)
	}
	return images, nil
}

func readImage(fh *multipart.FileHeader) (domain.ImageFile, error) {
	f, err := fh.Open()
	if err != nil {
		return domain.ImageFile{}, err
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return domain.ImageFile{}, err
	}
	return domain.ImageFile{Data: data, MIMEType: fh.Header.Get("Content-Type")}, nil
}
