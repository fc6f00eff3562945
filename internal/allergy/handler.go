package allergy

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Get(c *gin.Context) {
	userID := c.GetInt("userID")

	allergies, err := h.service.Get(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve allergies"})
		return
	}
	if allergies == nil {
		allergies = []UserAllergy{}
	}

	c.JSON(http.StatusOK, gin.H{
		"message":      "Allergies retrieved successfully",
		"user_allergy": allergies,
	})
}

type addRequest struct {
	AllergenName string `json:"allergen_name"`
	Severity     *int   `json:"severity"`
}

func (h *Handler) Add(c *gin.Context) {
	userID := c.GetInt("userID")

	var req addRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No json body provided"})
		return
	}
	if req.AllergenName == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No allergen_name provided"})
		return
	}
	if req.Severity == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No severity provided"})
		return
	}

	ua, err := h.service.Add(c.Request.Context(), userID, req.AllergenName, *req.Severity)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidAllergen):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid allergen_name"})
		case errors.Is(err, ErrInvalidSeverity):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid allergy severity"})
		case errors.Is(err, ErrAlreadyExists):
			c.JSON(http.StatusBadRequest, gin.H{"error": "User allergy already exists"})
		case errors.Is(err, ErrAllergenNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Allergen not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create allergy"})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":      "Allergy created successfully",
		"user_allergy": ua,
	})
}

type updateRequest struct {
	UserAllergyID *int `json:"user_allergy_id"`
	Severity      *int `json:"severity"`
}

func (h *Handler) Update(c *gin.Context) {
	userID := c.GetInt("userID")

	var req updateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No json body provided"})
		return
	}
	if req.UserAllergyID == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No user_allergy_id provided"})
		return
	}
	if req.Severity == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No severity provided"})
		return
	}

	ua, err := h.service.UpdateSeverity(c.Request.Context(), userID, *req.UserAllergyID, *req.Severity)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidSeverity):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, ErrNotFound):
			c.JSON(http.StatusBadRequest, gin.H{"error": "User allergy not found"})
		case errors.Is(err, ErrNotOwner):
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Current user does not own the given user allergy"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update allergy"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":      "User allergy severity updated successfully",
		"user_allergy": ua,
	})
}

type deleteRequest struct {
	UserAllergyID *int `json:"user_allergy_id"`
}

func (h *Handler) Delete(c *gin.Context) {
	userID := c.GetInt("userID")

	var req deleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No json body provided"})
		return
	}
	if req.UserAllergyID == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No user_allergy_id provided"})
		return
	}

	if err := h.service.Delete(c.Request.Context(), userID, *req.UserAllergyID); err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "User allergy not found"})
		case errors.Is(err, ErrNotOwner):
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Current user does not own the given user allergy"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete allergy"})
		}
		return
	}

	c.Status(http.StatusNoContent)
}
