package controllers

import (
	"net/http"
	"time"

	"go-bizops-dashboard/service"
	"go-bizops-dashboard/utils"

	"github.com/gin-gonic/gin"
)

// ReportReceivables
//
//	GET /reports/receivables?date_from=&date_to=&customer_id=&as_of=&page=&page_size=&sort=
//
// sort orders the per-customer rows: outstanding, -outstanding (default), name, -name.
func ReportReceivables(c *gin.Context) {
	f := service.ReceivablesFilter{
		DateFrom:   getDatePtr(c, "date_from"),
		DateTo:     getDatePtr(c, "date_to"),
		CustomerID: getUintQPtr(c, "customer_id"),
		Page:       getIntQ(c, "page", 1),
		PageSize:   getIntQ(c, "page_size", 50),
		SortBy:     c.Query("sort"),
		AsOf:       time.Now(),
	}
	if asOf := getDatePtr(c, "as_of"); asOf != nil {
		f.AsOf = *asOf
	}

	rep, err := Reports.Receivables(c.Request.Context(), f)
	if err != nil {
		utils.Error(c, http.StatusInternalServerError, "Failed to build receivables report", err)
		return
	}
	utils.Success(c, "Receivables report", rep)
}
