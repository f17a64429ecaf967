package controllers

import (
	"net/http"
	"time"

	"go-bizops-dashboard/config"
	"go-bizops-dashboard/models"
	"go-bizops-dashboard/utils"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

func UserLogin(c *gin.Context) {
	var in LoginInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid payload", "error": err.Error()})
		return
	}

	var user models.User
	if err := config.DB.Where("username = ? AND is_active = ?", in.Username, true).First(&user).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid username or password"})
		return
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)) != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid username or password"})
		return
	}

	perms, err := userPermissionCodes(config.DB, user.ID)
	if err != nil {
		utils.Error(c, http.StatusInternalServerError, "Failed to load permissions", err)
		return
	}
	token, err := utils.GenerateUserToken(user.ID, user.Username, perms, TokenTTL)
	if err != nil {
		utils.Error(c, http.StatusInternalServerError, "Failed to sign token", err)
		return
	}
	if err := config.DB.Model(&user).Update("last_login_at", time.Now()).Error; err != nil {
		utils.LogError(c, "Failed to record login", err)
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Logged in",
		"token":   token,
		"perms":   perms,
	})
}

func UserProfile(c *gin.Context) {
	uid, err := currentUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": err.Error()})
		return
	}
	var user models.User
	if err := config.DB.First(&user, uid).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
		return
	}
	utils.Success(c, "User profile", user)
}

type UserUpdateProfileInput struct {
	FullName  *string `json:"full_name,omitempty"`
	Phone     *string `json:"phone,omitempty"`
	AvatarURL *string `json:"avatar_url,omitempty"`
}

// UserUpdateProfile only touches contact fields; designation and department
// are set by an admin.
func UserUpdateProfile(c *gin.Context) {
	uid, err := currentUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": err.Error()})
		return
	}

	var user models.User
	if err := config.DB.First(&user, uid).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
		return
	}

	var in UserUpdateProfileInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid payload", "error": err.Error()})
		return
	}

	updates := map[string]any{}
	if in.FullName != nil {
		updates["full_name"] = *in.FullName
	}
	if in.Phone != nil {
		updates["phone"] = *in.Phone
	}
	if in.AvatarURL != nil {
		updates["avatar_url"] = *in.AvatarURL
	}
	if len(updates) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Nothing to update"})
		return
	}
	updates["updated_at"] = time.Now()

	if err := config.DB.Model(&user).Updates(updates).Error; err != nil {
		utils.Error(c, http.StatusInternalServerError, "Failed to update profile", err)
		return
	}
	config.DB.First(&user, uid)
	utils.Success(c, "Profile updated", user)
}

func UserChangePassword(c *gin.Context) {
	uid, err := currentUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": err.Error()})
		return
	}
	var user models.User
	if err := config.DB.First(&user, uid).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
		return
	}
	changePassword(c, &user, user.PasswordHash)
}

// GetPermissions lists the codes granted to the signed-in user, read fresh
// from the database rather than from the token.
func GetPermissions(c *gin.Context) {
	uid, err := currentUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": err.Error()})
		return
	}
	perms, err := userPermissionCodes(config.DB, uid)
	if err != nil {
		utils.Error(c, http.StatusInternalServerError, "Failed to load permissions", err)
		return
	}
	utils.Success(c, "Permissions loaded", perms)
}
