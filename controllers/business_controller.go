package controllers

import (
	"net/http"
	"strings"

	"go-bizops-dashboard/config"
	"go-bizops-dashboard/engine"
	"go-bizops-dashboard/models"
	"go-bizops-dashboard/utils"

	"github.com/gin-gonic/gin"
)

type BusinessInput struct {
	Name        string `json:"name" binding:"required"`
	Address     string `json:"address"`
	State       string `json:"state"`
	Pincode     string `json:"pincode"`
	GSTIN       string `json:"gstin"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	BankDetails string `json:"bank_details"`
	LogoURL     string `json:"logo_url"`
}

func (in BusinessInput) business() (models.Business, []string) {
	b := models.Business{
		Name:        strings.TrimSpace(in.Name),
		Address:     in.Address,
		State:       in.State,
		Pincode:     strings.TrimSpace(in.Pincode),
		GSTIN:       strings.ToUpper(strings.TrimSpace(in.GSTIN)),
		Email:       in.Email,
		Phone:       in.Phone,
		BankDetails: in.BankDetails,
		LogoURL:     in.LogoURL,
	}
	var bad []string
	if b.GSTIN != "" && !engine.ValidGSTIN(b.GSTIN) {
		bad = append(bad, engine.FieldGSTIN)
	}
	if b.Pincode != "" && !engine.ValidPincode(b.Pincode) {
		bad = append(bad, engine.FieldPincode)
	}
	return b, bad
}

func CreateBusiness(c *gin.Context) {
	var in BusinessInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid payload", "error": err.Error()})
		return
	}
	b, bad := in.business()
	if len(bad) > 0 {
		utils.Invalid(c, "Business has invalid fields", bad)
		return
	}
	if err := config.DB.Create(&b).Error; err != nil {
		utils.Error(c, http.StatusInternalServerError, "Failed to save business", err)
		return
	}
	utils.Created(c, "Business created", b)
}

func GetAllBusinesses(c *gin.Context) {
	var rows []models.Business
	if err := config.DB.Order("id ASC").Find(&rows).Error; err != nil {
		utils.Error(c, http.StatusInternalServerError, "Failed to load businesses", err)
		return
	}
	utils.Success(c, "Businesses loaded", rows)
}

func GetBusinessByID(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var b models.Business
	if err := config.DB.First(&b, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Business not found"})
		return
	}
	utils.Success(c, "Business loaded", b)
}

func UpdateBusiness(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var b models.Business
	if err := config.DB.First(&b, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Business not found"})
		return
	}

	var in BusinessInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid payload", "error": err.Error()})
		return
	}
	next, bad := in.business()
	if len(bad) > 0 {
		utils.Invalid(c, "Business has invalid fields", bad)
		return
	}

	err := config.DB.Model(&b).Select(
		"name", "address", "state", "pincode", "gstin", "email", "phone", "bank_details", "logo_url",
	).Updates(next).Error
	if err != nil {
		utils.Error(c, http.StatusInternalServerError, "Failed to save business", err)
		return
	}
	config.DB.First(&b, id)
	utils.Success(c, "Business updated", b)
}

func DeleteBusiness(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var b models.Business
	if err := config.DB.First(&b, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Business not found"})
		return
	}
	if err := config.DB.Delete(&b).Error; err != nil {
		utils.Error(c, http.StatusInternalServerError, "Failed to delete business", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Business deleted"})
}
