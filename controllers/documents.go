package controllers

import (
	"errors"
	"net/http"
	"time"

	"go-bizops-dashboard/engine"
	"go-bizops-dashboard/service"
	"go-bizops-dashboard/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Document and report services. main wires them once the database is up.
var (
	Docs     service.DocumentService
	Reports  service.Service
	TokenTTL = 24 * time.Hour
)

func SetupServices(db *gorm.DB, opts service.Options) {
	Docs = service.NewDocumentService(db, opts)
	Reports = service.NewService(db)
}

// documentError maps service and engine errors to a response. Anything it
// does not recognise is logged and answered with a generic 500.
func documentError(c *gin.Context, err error, failMessage string) {
	var (
		invalid  *service.ValidationError
		mismatch *service.MismatchError
	)
	switch {
	case errors.As(err, &invalid):
		utils.Invalid(c, "Document is incomplete", invalid.Fields)
	case errors.As(err, &mismatch):
		c.JSON(http.StatusConflict, gin.H{
			"message": "Totals do not match the server computation",
			"data":    mismatch.Computed,
		})
	case errors.Is(err, service.ErrDocumentNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": "Document not found"})
	case errors.Is(err, service.ErrCustomerNotFound),
		errors.Is(err, service.ErrCatalogNotFound),
		errors.Is(err, service.ErrTermsNotFound),
		errors.Is(err, service.ErrBusinessNotFound),
		errors.Is(err, service.ErrBadDate),
		errors.Is(err, engine.ErrUnknownStatus),
		errors.Is(err, engine.ErrUnknownTaxMode):
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
	case errors.Is(err, service.ErrNotDeletable),
		errors.Is(err, service.ErrAlreadyConverted),
		errors.Is(err, service.ErrOverpayment),
		errors.Is(err, service.ErrPaymentNotAllowed),
		errors.Is(err, engine.ErrQuotationNotApproved):
		c.JSON(http.StatusConflict, gin.H{"message": err.Error()})
	default:
		utils.Error(c, http.StatusInternalServerError, failMessage, err)
	}
}

type previewResponse struct {
	Document   engine.Document `json:"document"`
	Violations []string        `json:"violations"`
}

// PreviewDocument recomputes a raw payload without saving it. kind is
// "invoice" (default) or "quotation".
func PreviewDocument(c *gin.Context) {
	var in service.DocumentInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid payload", "error": err.Error()})
		return
	}
	kind := engine.KindInvoice
	if c.Query("kind") == "quotation" {
		kind = engine.KindQuotation
	}

	doc, violations, err := Docs.Preview(c.Request.Context(), kind, in)
	if err != nil {
		documentError(c, err, "Failed to compute document")
		return
	}
	if violations == nil {
		violations = []string{}
	}
	utils.Success(c, "Document computed", previewResponse{Document: doc, Violations: violations})
}
