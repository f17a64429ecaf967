package controllers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"go-bizops-dashboard/service"

	"github.com/gin-gonic/gin"
)

// Query parameters shared by the list and report endpoints:
//   date_from, date_to  YYYY-MM-DD
//   page, page_size
//   sort                field name, "-" prefix for descending
//   status, customer_id, q

func getIntQ(c *gin.Context, key string, def int) int {
	v, _ := strconv.Atoi(c.DefaultQuery(key, strconv.Itoa(def)))
	if v <= 0 {
		return def
	}
	return v
}

func getUintQPtr(c *gin.Context, key string) *uint {
	if v := strings.TrimSpace(c.Query(key)); v != "" {
		if n, err := strconv.ParseUint(v, 10, 64); err == nil && n > 0 {
			u := uint(n)
			return &u
		}
	}
	return nil
}

func getDatePtr(c *gin.Context, key string) *time.Time {
	if s := strings.TrimSpace(c.Query(key)); s != "" {
		if t, err := time.Parse("2006-01-02", s); err == nil {
			return &t
		}
	}
	return nil
}

// idParam reads :id and answers 400 itself when it is not a positive number.
func idParam(c *gin.Context) (uint, bool) {
	n, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || n == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid ID"})
		return 0, false
	}
	return uint(n), true
}

func listFilter(c *gin.Context) service.ListFilter {
	return service.ListFilter{
		Status:     c.Query("status"),
		CustomerID: getUintQPtr(c, "customer_id"),
		Query:      c.Query("q"),
		DateFrom:   getDatePtr(c, "date_from"),
		DateTo:     getDatePtr(c, "date_to"),
		Page:       getIntQ(c, "page", 1),
		PageSize:   getIntQ(c, "page_size", 50),
		SortBy:     c.Query("sort"),
	}
}

func listed(c *gin.Context, message string, rows any, total int64, f service.ListFilter) {
	c.JSON(http.StatusOK, gin.H{
		"message":   message,
		"data":      rows,
		"total":     total,
		"page":      f.Page,
		"page_size": f.PageSize,
	})
}
