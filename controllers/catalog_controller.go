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

type CatalogInput struct {
	Name     string     `json:"name" binding:"required"`
	Code     string     `json:"code" binding:"required"`
	Unit     string     `json:"unit"`
	HSNCode  string     `json:"hsn_code"`
	MinPrice engine.Raw `json:"min_price"`
	MaxPrice engine.Raw `json:"max_price"`
	IsActive *bool      `json:"is_active"`
}

func (in CatalogInput) item() (models.CatalogItem, []string) {
	ci := models.CatalogItem{
		Name:     strings.TrimSpace(in.Name),
		Code:     strings.TrimSpace(in.Code),
		Unit:     in.Unit,
		HSNCode:  in.HSNCode,
		MinPrice: engine.ParseMoney(string(in.MinPrice)),
		MaxPrice: engine.ParseMoney(string(in.MaxPrice)),
		IsActive: in.IsActive == nil || *in.IsActive,
	}
	// MaxPrice 0 means no ceiling
	if ci.MaxPrice > 0 && ci.MaxPrice < ci.MinPrice {
		return ci, []string{"max_price"}
	}
	return ci, nil
}

func CreateCatalogItem(c *gin.Context) {
	var in CatalogInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid payload", "error": err.Error()})
		return
	}
	item, bad := in.item()
	if len(bad) > 0 {
		utils.Invalid(c, "Price range is invalid", bad)
		return
	}

	var exist models.CatalogItem
	if err := config.DB.Where("code = ?", item.Code).First(&exist).Error; err == nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Item code is already in use"})
		return
	}
	active := item.IsActive
	if err := config.DB.Create(&item).Error; err != nil {
		utils.Error(c, http.StatusInternalServerError, "Failed to save catalog item", err)
		return
	}
	// a false bool is a zero value, so Create fell back to the column default
	if !active {
		config.DB.Model(&item).Update("is_active", false)
	}
	utils.Created(c, "Catalog item created", item)
}

// GetAllCatalogItems lists active items unless ?all=true.
func GetAllCatalogItems(c *gin.Context) {
	q := config.DB.Order("name ASC")
	if c.Query("all") != "true" {
		q = q.Where("is_active = ?", true)
	}
	if s := strings.TrimSpace(c.Query("q")); s != "" {
		like := "%" + strings.ToLower(s) + "%"
		q = q.Where("LOWER(name) LIKE ? OR LOWER(code) LIKE ?", like, like)
	}
	var rows []models.CatalogItem
	if err := q.Find(&rows).Error; err != nil {
		utils.Error(c, http.StatusInternalServerError, "Failed to load catalog", err)
		return
	}
	utils.Success(c, "Catalog loaded", rows)
}

func GetCatalogItemByID(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var item models.CatalogItem
	if err := config.DB.First(&item, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Catalog item not found"})
		return
	}
	utils.Success(c, "Catalog item loaded", item)
}

// UpdateCatalogItem does not touch saved documents: each line keeps the
// bounds it was priced under.
func UpdateCatalogItem(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var item models.CatalogItem
	if err := config.DB.First(&item, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Catalog item not found"})
		return
	}

	var in CatalogInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid payload", "error": err.Error()})
		return
	}
	next, bad := in.item()
	if len(bad) > 0 {
		utils.Invalid(c, "Price range is invalid", bad)
		return
	}

	var exist models.CatalogItem
	if err := config.DB.Where("code = ? AND id <> ?", next.Code, item.ID).First(&exist).Error; err == nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Item code is already in use"})
		return
	}

	err := config.DB.Model(&item).Updates(map[string]any{
		"name":      next.Name,
		"code":      next.Code,
		"unit":      next.Unit,
		"hsn_code":  next.HSNCode,
		"min_price": next.MinPrice,
		"max_price": next.MaxPrice,
		"is_active": next.IsActive,
	}).Error
	if err != nil {
		utils.Error(c, http.StatusInternalServerError, "Failed to save catalog item", err)
		return
	}
	config.DB.First(&item, id)
	utils.Success(c, "Catalog item updated", item)
}

func DeleteCatalogItem(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var item models.CatalogItem
	if err := config.DB.First(&item, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Catalog item not found"})
		return
	}
	if err := config.DB.Delete(&item).Error; err != nil {
		utils.Error(c, http.StatusInternalServerError, "Failed to delete catalog item", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Catalog item deleted"})
}
