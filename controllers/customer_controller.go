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

type CustomerInput struct {
	Name           string `json:"name" binding:"required"`
	Code           string `json:"code"`
	CustomerType   string `json:"customer_type"`
	Email          string `json:"email"`
	Phone          string `json:"phone"`
	BillingAddress string `json:"billing_address"`
	State          string `json:"state"`
	Pincode        string `json:"pincode"`
	GSTIN          string `json:"gstin"`
}

// customer normalises in and lists the fields that are malformed. Missing
// GST details are not an error here; documents check them against the tax
// mode they use.
func (in CustomerInput) customer() (models.Customer, []string) {
	var bad []string
	ct := engine.CustomerType(strings.ToUpper(strings.TrimSpace(in.CustomerType)))
	switch ct {
	case "":
		ct = engine.CustomerIndividual
	case engine.CustomerIndividual, engine.CustomerBusiness:
	default:
		bad = append(bad, "customer_type")
	}
	gstin := strings.ToUpper(strings.TrimSpace(in.GSTIN))
	if gstin != "" && !engine.ValidGSTIN(gstin) {
		bad = append(bad, engine.FieldGSTIN)
	}
	pin := strings.TrimSpace(in.Pincode)
	if pin != "" && !engine.ValidPincode(pin) {
		bad = append(bad, engine.FieldPincode)
	}

	return models.Customer{
		Name:           strings.TrimSpace(in.Name),
		Code:           strings.TrimSpace(in.Code),
		CustomerType:   ct,
		Email:          in.Email,
		Phone:          in.Phone,
		BillingAddress: in.BillingAddress,
		State:          in.State,
		Pincode:        pin,
		GSTIN:          gstin,
	}, bad
}

func CreateCustomer(c *gin.Context) {
	var in CustomerInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid payload", "error": err.Error()})
		return
	}
	customer, bad := in.customer()
	if len(bad) > 0 {
		utils.Invalid(c, "Customer has invalid fields", bad)
		return
	}

	if customer.Code != "" {
		var exist models.Customer
		if err := config.DB.Where("code = ?", customer.Code).First(&exist).Error; err == nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Customer code is already in use"})
			return
		}
	}

	if err := config.DB.Create(&customer).Error; err != nil {
		utils.Error(c, http.StatusInternalServerError, "Failed to save customer", err)
		return
	}
	utils.Created(c, "Customer created", customer)
}

func GetAllCustomer(c *gin.Context) {
	q := config.DB.Order("name ASC")
	if s := strings.TrimSpace(c.Query("q")); s != "" {
		like := "%" + strings.ToLower(s) + "%"
		q = q.Where("LOWER(name) LIKE ? OR LOWER(code) LIKE ?", like, like)
	}
	var rows []models.Customer
	if err := q.Find(&rows).Error; err != nil {
		utils.Error(c, http.StatusInternalServerError, "Failed to load customers", err)
		return
	}
	utils.Success(c, "Customers loaded", rows)
}

func GetCustomerByID(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var customer models.Customer
	if err := config.DB.First(&customer, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Customer not found"})
		return
	}
	utils.Success(c, "Customer loaded", customer)
}

// UpdateCustomer changes the customer record only. Documents already issued
// keep the party snapshot they were saved with.
func UpdateCustomer(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var customer models.Customer
	if err := config.DB.First(&customer, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Customer not found"})
		return
	}

	var in CustomerInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid payload", "error": err.Error()})
		return
	}
	next, bad := in.customer()
	if len(bad) > 0 {
		utils.Invalid(c, "Customer has invalid fields", bad)
		return
	}

	if next.Code != "" {
		var exist models.Customer
		if err := config.DB.Where("code = ? AND id <> ?", next.Code, customer.ID).First(&exist).Error; err == nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Customer code is already in use"})
			return
		}
	}

	err := config.DB.Model(&customer).Select(
		"name", "code", "customer_type", "email", "phone", "billing_address", "state", "pincode", "gstin",
	).Updates(next).Error
	if err != nil {
		utils.Error(c, http.StatusInternalServerError, "Failed to save customer", err)
		return
	}
	config.DB.First(&customer, id)
	utils.Success(c, "Customer updated", customer)
}

func DeleteCustomer(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var customer models.Customer
	if err := config.DB.First(&customer, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Customer not found"})
		return
	}
	if err := config.DB.Delete(&customer).Error; err != nil {
		utils.Error(c, http.StatusInternalServerError, "Failed to delete customer", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Customer deleted"})
}
