package controllers

import (
	"errors"

	"github.com/gin-gonic/gin"
)

func currentAdminID(c *gin.Context) (uint, error) {
	v, ok := c.Get("admin_id")
	if !ok {
		return 0, errors.New("admin_id missing from context")
	}
	id, ok := v.(uint)
	if !ok || id == 0 {
		return 0, errors.New("invalid admin_id")
	}
	return id, nil
}

func currentUserID(c *gin.Context) (uint, error) {
	v, ok := c.Get("user_id")
	if !ok {
		return 0, errors.New("user_id missing from context")
	}
	id, ok := v.(uint)
	if !ok || id == 0 {
		return 0, errors.New("invalid user_id")
	}
	return id, nil
}

// actorID is whoever is signed in on this route group, admin or user.
func actorID(c *gin.Context) uint {
	if id, err := currentAdminID(c); err == nil {
		return id
	}
	id, _ := currentUserID(c)
	return id
}
