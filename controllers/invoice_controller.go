package controllers

import (
	"bytes"
	"fmt"
	"net/http"

	"go-bizops-dashboard/config"
	"go-bizops-dashboard/models"
	"go-bizops-dashboard/pdfexport"
	"go-bizops-dashboard/service"
	"go-bizops-dashboard/utils"

	"github.com/gin-gonic/gin"
)

type StatusBody struct {
	Status string `json:"status" binding:"required"`
}

func CreateInvoice(c *gin.Context) {
	var in service.DocumentInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid payload", "error": err.Error()})
		return
	}

	inv, doc, err := Docs.CreateInvoice(c.Request.Context(), in, actorID(c))
	if err != nil {
		documentError(c, err, "Failed to save invoice")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Invoice created", "data": inv, "notices": doc.Notices})
}

func UpdateInvoice(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var in service.DocumentInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid payload", "error": err.Error()})
		return
	}

	inv, doc, err := Docs.UpdateInvoice(c.Request.Context(), id, in)
	if err != nil {
		documentError(c, err, "Failed to save invoice")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Invoice updated", "data": inv, "notices": doc.Notices})
}

func ListInvoices(c *gin.Context) {
	f := listFilter(c)
	rows, total, err := Docs.ListInvoices(c.Request.Context(), f)
	if err != nil {
		utils.Error(c, http.StatusInternalServerError, "Failed to load invoices", err)
		return
	}
	listed(c, "Invoices loaded", rows, total, f)
}

func GetInvoice(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	inv, err := Docs.GetInvoice(c.Request.Context(), id)
	if err != nil {
		documentError(c, err, "Failed to load invoice")
		return
	}
	utils.Success(c, "Invoice loaded", inv)
}

func ChangeInvoiceStatus(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var body StatusBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "status is required"})
		return
	}

	inv, err := Docs.ChangeInvoiceStatus(c.Request.Context(), id, body.Status)
	if err != nil {
		documentError(c, err, "Failed to change invoice status")
		return
	}
	utils.Success(c, "Invoice status changed", inv)
}

func RecordInvoicePayment(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var in service.PaymentInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid payload", "error": err.Error()})
		return
	}

	inv, err := Docs.RecordPayment(c.Request.Context(), id, in, actorID(c))
	if err != nil {
		documentError(c, err, "Failed to record payment")
		return
	}
	utils.Created(c, "Payment recorded", inv)
}

func DeleteInvoice(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := Docs.DeleteInvoice(c.Request.Context(), id); err != nil {
		documentError(c, err, "Failed to delete invoice")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Invoice deleted"})
}

func InvoicePDF(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	inv, err := Docs.GetInvoice(c.Request.Context(), id)
	if err != nil {
		documentError(c, err, "Failed to load invoice")
		return
	}

	var buf bytes.Buffer
	if err := pdfexport.Invoice(&buf, letterhead(inv.BusinessID), service.StoredInvoice(inv), inv.Payments); err != nil {
		utils.Error(c, http.StatusInternalServerError, "Failed to render invoice", err)
		return
	}
	sendPDF(c, inv.Number, buf.Bytes())
}

// letterhead loads the business printed on a document. Documents without one
// use the first business on file.
func letterhead(businessID *uint) pdfexport.Header {
	var b models.Business
	q := config.DB.Order("id ASC")
	if businessID != nil {
		q = q.Where("id = ?", *businessID)
	}
	if err := q.First(&b).Error; err != nil {
		return pdfexport.Header{}
	}
	return pdfexport.HeaderOf(b)
}

func sendPDF(c *gin.Context, number string, body []byte) {
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s.pdf"`, number))
	c.Data(http.StatusOK, "application/pdf", body)
}
