package controllers

import (
	"net/http"
	"strings"

	"go-bizops-dashboard/config"
	"go-bizops-dashboard/models"
	"go-bizops-dashboard/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type TermsInput struct {
	Title     string `json:"title" binding:"required"`
	Kind      string `json:"kind"  binding:"required"`
	Body      string `json:"body"`
	IsDefault bool   `json:"is_default"`
}

func termsKind(s string) (models.TermsKind, bool) {
	k := models.TermsKind(strings.ToUpper(strings.TrimSpace(s)))
	switch k {
	case models.TermsInvoice, models.TermsQuotation, models.TermsOffer:
		return k, true
	}
	return "", false
}

// saveTerms writes t and, when it is the default, clears the flag on every
// other template of the same kind.
func saveTerms(t *models.TermsTemplate) error {
	return config.DB.Transaction(func(tx *gorm.DB) error {
		if t.IsDefault {
			if err := tx.Model(&models.TermsTemplate{}).
				Where("kind = ? AND id <> ?", t.Kind, t.ID).
				Update("is_default", false).Error; err != nil {
				return err
			}
		}
		return tx.Save(t).Error
	})
}

func CreateTerms(c *gin.Context) {
	var in TermsInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid payload", "error": err.Error()})
		return
	}
	kind, ok := termsKind(in.Kind)
	if !ok {
		utils.Invalid(c, "Unknown terms kind", []string{"kind"})
		return
	}

	t := models.TermsTemplate{Title: in.Title, Kind: kind, Body: in.Body, IsDefault: in.IsDefault}
	if err := saveTerms(&t); err != nil {
		utils.Error(c, http.StatusInternalServerError, "Failed to save terms", err)
		return
	}
	utils.Created(c, "Terms template created", t)
}

// GetAllTerms lists templates, optionally of one ?kind=, default first.
func GetAllTerms(c *gin.Context) {
	q := config.DB.Order("is_default DESC, title ASC")
	if s := c.Query("kind"); s != "" {
		kind, ok := termsKind(s)
		if !ok {
			utils.Invalid(c, "Unknown terms kind", []string{"kind"})
			return
		}
		q = q.Where("kind = ?", kind)
	}
	var rows []models.TermsTemplate
	if err := q.Find(&rows).Error; err != nil {
		utils.Error(c, http.StatusInternalServerError, "Failed to load terms", err)
		return
	}
	utils.Success(c, "Terms templates loaded", rows)
}

func GetTermsByID(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var t models.TermsTemplate
	if err := config.DB.First(&t, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Terms template not found"})
		return
	}
	utils.Success(c, "Terms template loaded", t)
}

func UpdateTerms(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var t models.TermsTemplate
	if err := config.DB.First(&t, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Terms template not found"})
		return
	}

	var in TermsInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid payload", "error": err.Error()})
		return
	}
	kind, ok := termsKind(in.Kind)
	if !ok {
		utils.Invalid(c, "Unknown terms kind", []string{"kind"})
		return
	}

	t.Title, t.Kind, t.Body, t.IsDefault = in.Title, kind, in.Body, in.IsDefault
	if err := saveTerms(&t); err != nil {
		utils.Error(c, http.StatusInternalServerError, "Failed to save terms", err)
		return
	}
	utils.Success(c, "Terms template updated", t)
}

func DeleteTerms(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var t models.TermsTemplate
	if err := config.DB.First(&t, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Terms template not found"})
		return
	}
	if err := config.DB.Delete(&t).Error; err != nil {
		utils.Error(c, http.StatusInternalServerError, "Failed to delete terms", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Terms template deleted"})
}
