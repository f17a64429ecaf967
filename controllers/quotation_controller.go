package controllers

import (
	"bytes"
	"net/http"

	"go-bizops-dashboard/pdfexport"
	"go-bizops-dashboard/service"
	"go-bizops-dashboard/utils"

	"github.com/gin-gonic/gin"
)

func CreateQuotation(c *gin.Context) {
	var in service.DocumentInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid payload", "error": err.Error()})
		return
	}

	q, doc, err := Docs.CreateQuotation(c.Request.Context(), in, actorID(c))
	if err != nil {
		documentError(c, err, "Failed to save quotation")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Quotation created", "data": q, "notices": doc.Notices})
}

func UpdateQuotation(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var in service.DocumentInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid payload", "error": err.Error()})
		return
	}

	q, doc, err := Docs.UpdateQuotation(c.Request.Context(), id, in)
	if err != nil {
		documentError(c, err, "Failed to save quotation")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Quotation updated", "data": q, "notices": doc.Notices})
}

func ListQuotations(c *gin.Context) {
	f := listFilter(c)
	rows, total, err := Docs.ListQuotations(c.Request.Context(), f)
	if err != nil {
		utils.Error(c, http.StatusInternalServerError, "Failed to load quotations", err)
		return
	}
	listed(c, "Quotations loaded", rows, total, f)
}

func GetQuotation(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	q, err := Docs.GetQuotation(c.Request.Context(), id)
	if err != nil {
		documentError(c, err, "Failed to load quotation")
		return
	}
	utils.Success(c, "Quotation loaded", q)
}

func ChangeQuotationStatus(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var body StatusBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "status is required"})
		return
	}

	q, err := Docs.ChangeQuotationStatus(c.Request.Context(), id, body.Status)
	if err != nil {
		documentError(c, err, "Failed to change quotation status")
		return
	}
	utils.Success(c, "Quotation status changed", q)
}

// ConvertQuotation raises an invoice from an approved quotation.
func ConvertQuotation(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	inv, err := Docs.ConvertQuotation(c.Request.Context(), id, actorID(c))
	if err != nil {
		documentError(c, err, "Failed to convert quotation")
		return
	}
	utils.Created(c, "Invoice created from quotation", inv)
}

func QuotationPDF(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	q, err := Docs.GetQuotation(c.Request.Context(), id)
	if err != nil {
		documentError(c, err, "Failed to load quotation")
		return
	}

	var buf bytes.Buffer
	if err := pdfexport.Quotation(&buf, letterhead(q.BusinessID), service.StoredQuotation(q)); err != nil {
		utils.Error(c, http.StatusInternalServerError, "Failed to render quotation", err)
		return
	}
	sendPDF(c, q.Number, buf.Bytes())
}
