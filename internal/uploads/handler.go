package uploads

import (
	"errors"
	"io"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"halo-backend/internal/analysis"
	"halo-backend/internal/imageproc"
)

type Handler struct {
	service *Service
	client  analysis.Client
}

func NewHandler(service *Service, client analysis.Client) *Handler {
	return &Handler{service: service, client: client}
}

// --------------------------------------------------
// Process uploaded menu image
// --------------------------------------------------
func (h *Handler) ProcessMenu(c *gin.Context) {
	userID := c.GetInt("userID")

	file, header, err := c.Request.FormFile("menu_image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file uploaded"})
		return
	}
	defer file.Close()

	if header.Filename == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid file: filename is missing"})
		return
	}
	if err := imageproc.ValidateFileExtension(header.Filename); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unsupported file type"})
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Image processing failed: " + err.Error()})
		return
	}

	normalized, err := imageproc.Normalize(data, header.Filename)
	if err != nil {
		if errors.Is(err, imageproc.ErrUnsupportedType) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unsupported file type"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Image processing failed: " + err.Error()})
		return
	}

	outcome, err := h.client.AnalyzeImage(c.Request.Context(), normalized)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Menu analysis failed: " + err.Error()})
		return
	}

	switch outcome.State {
	case analysis.OutcomeEmpty:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "No response from Gemini"})
		return
	case analysis.OutcomeModelError:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Menu image is too blurry or unreadable"})
		return
	}

	name := uploadNameFromFilename(header.Filename)
	if _, err := h.service.SaveResult(c.Request.Context(), userID, name, outcome, normalized); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save analysis result"})
		return
	}

	c.JSON(http.StatusOK, outcome.Items)
}

// --------------------------------------------------
// Process manually entered menu items
// --------------------------------------------------

type manualInputRequest struct {
	MenuItems []string `json:"menu_items"`
	MenuName  string   `json:"menu_name"`
}

func (h *Handler) ProcessManualInput(c *gin.Context) {
	userID := c.GetInt("userID")

	var req manualInputRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	items, err := SanitizeMenuItems(req.MenuItems)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No menu items provided"})
		return
	}

	outcome, err := h.client.AnalyzeText(c.Request.Context(), items)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Menu analysis failed: " + err.Error()})
		return
	}

	switch outcome.State {
	case analysis.OutcomeEmpty:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "No response from Gemini"})
		return
	case analysis.OutcomeModelError:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid menu items"})
		return
	}

	name := strings.TrimSpace(req.MenuName)
	if name == "" {
		name = "Manual Input"
	}
	if _, err := h.service.SaveResult(c.Request.Context(), userID, name, outcome, nil); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save analysis result"})
		return
	}

	c.JSON(http.StatusOK, outcome.Items)
}

// --------------------------------------------------
// Upload history
// --------------------------------------------------
func (h *Handler) List(c *gin.Context) {
	userID := c.GetInt("userID")

	// A missing, malformed or non-positive limit means no truncation.
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			limit = n
		}
	}

	result, err := h.service.List(c.Request.Context(), userID, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list menu uploads"})
		return
	}
	if result == nil {
		result = []MenuUpload{}
	}

	c.JSON(http.StatusOK, gin.H{"menu_uploads": result})
}

func (h *Handler) Get(c *gin.Context) {
	userID := c.GetInt("userID")

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid upload id"})
		return
	}

	upload, err := h.service.Get(c.Request.Context(), userID, id)
	if err != nil {
		respondStoreError(c, err)
		return
	}

	c.JSON(http.StatusOK, upload)
}

type renameRequest struct {
	UploadName string `json:"upload_name"`
}

func (h *Handler) Rename(c *gin.Context) {
	userID := c.GetInt("userID")

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid upload id"})
		return
	}

	var req renameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	upload, err := h.service.Rename(c.Request.Context(), userID, id, req.UploadName)
	if err != nil {
		respondStoreError(c, err)
		return
	}

	c.JSON(http.StatusOK, upload)
}

func (h *Handler) Delete(c *gin.Context) {
	userID := c.GetInt("userID")

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid upload id"})
		return
	}

	if err := h.service.Delete(c.Request.Context(), userID, id); err != nil {
		respondStoreError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func respondStoreError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Menu upload not found"})
	case errors.Is(err, ErrEmptyName):
		c.JSON(http.StatusBadRequest, gin.H{"error": "upload_name must not be empty"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Menu upload operation failed"})
	}
}

// uploadNameFromFilename derives the display name from the uploaded
// filename by stripping its extension.
func uploadNameFromFilename(filename string) string {
	base := filepath.Base(filename)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
