package controllers

import (
	"bytes"
	"net/http"

	"go-bizops-dashboard/engine"
	"go-bizops-dashboard/pdfexport"
	"go-bizops-dashboard/service"
	"go-bizops-dashboard/utils"

	"github.com/gin-gonic/gin"
)

type offerPreview struct {
	Offer      engine.Offer `json:"offer"`
	AnnualCTC  engine.Money `json:"annual_ctc"`
	Violations []string     `json:"violations"`
}

func PreviewOffer(c *gin.Context) {
	var in service.OfferInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid payload", "error": err.Error()})
		return
	}
	o, violations, err := Docs.PreviewOffer(c.Request.Context(), in)
	if err != nil {
		documentError(c, err, "Failed to compute offer")
		return
	}
	if violations == nil {
		violations = []string{}
	}
	utils.Success(c, "Offer computed", offerPreview{Offer: o, AnnualCTC: o.AnnualCTC(), Violations: violations})
}

func CreateOffer(c *gin.Context) {
	var in service.OfferInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid payload", "error": err.Error()})
		return
	}
	o, err := Docs.CreateOffer(c.Request.Context(), in, actorID(c))
	if err != nil {
		documentError(c, err, "Failed to save offer letter")
		return
	}
	utils.Created(c, "Offer letter created", o)
}

func UpdateOffer(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var in service.OfferInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid payload", "error": err.Error()})
		return
	}
	o, err := Docs.UpdateOffer(c.Request.Context(), id, in)
	if err != nil {
		documentError(c, err, "Failed to save offer letter")
		return
	}
	utils.Success(c, "Offer letter updated", o)
}

func ListOffers(c *gin.Context) {
	f := listFilter(c)
	rows, total, err := Docs.ListOffers(c.Request.Context(), f)
	if err != nil {
		utils.Error(c, http.StatusInternalServerError, "Failed to load offer letters", err)
		return
	}
	listed(c, "Offer letters loaded", rows, total, f)
}

func GetOffer(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	o, err := Docs.GetOffer(c.Request.Context(), id)
	if err != nil {
		documentError(c, err, "Failed to load offer letter")
		return
	}
	utils.Success(c, "Offer letter loaded", o)
}

func OfferPDF(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	o, err := Docs.GetOffer(c.Request.Context(), id)
	if err != nil {
		documentError(c, err, "Failed to load offer letter")
		return
	}

	var buf bytes.Buffer
	if err := pdfexport.Offer(&buf, letterhead(o.BusinessID), o.Number, o.CreatedAt, service.StoredOffer(o)); err != nil {
		utils.Error(c, http.StatusInternalServerError, "Failed to render offer letter", err)
		return
	}
	sendPDF(c, o.Number, buf.Bytes())
}
