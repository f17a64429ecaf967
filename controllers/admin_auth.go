package controllers

import (
	"net/http"
	"strings"
	"time"

	"go-bizops-dashboard/config"
	"go-bizops-dashboard/models"
	"go-bizops-dashboard/utils"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AdminRegisterInput struct {
	Username string `json:"username"  binding:"required"`
	FullName string `json:"full_name" binding:"required"`
	Email    string `json:"email"`
	Password string `json:"password"  binding:"required,min=6"`
}

func AdminRegister(c *gin.Context) {
	var in AdminRegisterInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid payload", "error": err.Error()})
		return
	}

	var exists models.Admin
	if err := config.DB.Where("username = ?", in.Username).First(&exists).Error; err == nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Username is already taken"})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		utils.Error(c, http.StatusInternalServerError, "Failed to create admin", err)
		return
	}
	admin := models.Admin{
		Username:     in.Username,
		FullName:     in.FullName,
		Email:        in.Email,
		AvatarURL:    utils.DefaultAvatar(in.FullName),
		PasswordHash: string(hash),
		IsActive:     true,
	}
	if err := config.DB.Create(&admin).Error; err != nil {
		utils.Error(c, http.StatusInternalServerError, "Failed to create admin", err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Admin created", "username": admin.Username})
}

type LoginInput struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func AdminLogin(c *gin.Context) {
	var in LoginInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid payload", "error": err.Error()})
		return
	}

	var admin models.Admin
	if err := config.DB.Where("username = ? AND is_active = ?", in.Username, true).First(&admin).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid username or password"})
		return
	}
	if bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(in.Password)) != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid username or password"})
		return
	}

	token, err := utils.GenerateAdminToken(admin.ID, admin.Username, TokenTTL)
	if err != nil {
		utils.Error(c, http.StatusInternalServerError, "Failed to sign token", err)
		return
	}
	if err := config.DB.Model(&admin).Update("last_login_at", time.Now()).Error; err != nil {
		utils.LogError(c, "Failed to record login", err)
	}

	c.JSON(http.StatusOK, gin.H{"message": "Logged in", "token": token})
}

func GetDataAdminProfile(c *gin.Context) {
	aid, err := currentAdminID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": err.Error()})
		return
	}

	var admin models.Admin
	if err := config.DB.First(&admin, aid).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Admin not found"})
		return
	}
	utils.Success(c, "Admin profile", admin)
}

type AdminUpdateProfileInput struct {
	FullName  *string `json:"full_name,omitempty"`
	Email     *string `json:"email,omitempty"`
	Phone     *string `json:"phone,omitempty"`
	AvatarURL *string `json:"avatar_url,omitempty"`
}

func AdminUpdateProfile(c *gin.Context) {
	aid, err := currentAdminID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": err.Error()})
		return
	}

	var admin models.Admin
	if err := config.DB.First(&admin, aid).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Admin not found"})
		return
	}

	var in AdminUpdateProfileInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid payload", "error": err.Error()})
		return
	}

	updates := map[string]any{}
	if in.FullName != nil {
		updates["full_name"] = *in.FullName
	}
	if in.Email != nil {
		updates["email"] = *in.Email
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

	if err := config.DB.Model(&admin).Updates(updates).Error; err != nil {
		utils.Error(c, http.StatusInternalServerError, "Failed to update profile", err)
		return
	}
	config.DB.First(&admin, aid)
	utils.Success(c, "Profile updated", admin)
}

type ChangePasswordInput struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password"     binding:"required,min=6"`
}

func AdminChangePassword(c *gin.Context) {
	aid, err := currentAdminID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": err.Error()})
		return
	}

	var admin models.Admin
	if err := config.DB.First(&admin, aid).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Admin not found"})
		return
	}
	changePassword(c, &admin, admin.PasswordHash)
}

// changePassword checks the current password against hash and stores the new
// one on model's password_hash column.
func changePassword(c *gin.Context, model any, hash string) {
	var in ChangePasswordInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid payload", "error": err.Error()})
		return
	}
	if bcrypt.CompareHashAndPassword([]byte(hash), []byte(in.CurrentPassword)) != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Current password is wrong"})
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		utils.Error(c, http.StatusInternalServerError, "Failed to change password", err)
		return
	}
	if err := config.DB.Model(model).Update("password_hash", string(hashed)).Error; err != nil {
		utils.Error(c, http.StatusInternalServerError, "Failed to change password", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Password changed"})
}

// ===== staff accounts =====

func AdminGetAllUsers(c *gin.Context) {
	var users []models.User
	if err := config.DB.Order("id ASC").Find(&users).Error; err != nil {
		utils.Error(c, http.StatusInternalServerError, "Failed to load users", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Users loaded", "total": len(users), "data": users})
}

type CreateUserInput struct {
	Username     string `json:"username"  binding:"required"`
	FullName     string `json:"full_name" binding:"required"`
	Password     string `json:"password"  binding:"required,min=6"`
	EmployeeCode string `json:"employee_code"`
	Designation  string `json:"designation"`
	Department   string `json:"department"`
	Phone        string `json:"phone"`
	AvatarURL    string `json:"avatar_url"`
}

func AdminCreateUser(c *gin.Context) {
	var in CreateUserInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid payload", "error": err.Error()})
		return
	}
	var exists models.User
	if err := config.DB.Where("username = ?", in.Username).First(&exists).Error; err == nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Username is already taken"})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		utils.Error(c, http.StatusInternalServerError, "Failed to create user", err)
		return
	}
	avatar := in.AvatarURL
	if avatar == "" {
		avatar = utils.DefaultAvatar(in.FullName)
	}
	user := models.User{
		Username:     in.Username,
		FullName:     in.FullName,
		EmployeeCode: in.EmployeeCode,
		Designation:  in.Designation,
		Department:   in.Department,
		Phone:        in.Phone,
		AvatarURL:    avatar,
		PasswordHash: string(hash),
		IsActive:     true,
	}
	if err := config.DB.Create(&user).Error; err != nil {
		utils.Error(c, http.StatusInternalServerError, "Failed to create user", err)
		return
	}
	utils.Created(c, "User created", user)
}

type SetUserPermissionsInput struct {
	PermissionCodes []string `json:"permission_codes"`
}

// AdminSetUserPermissions replaces the user's permission set. Unknown codes
// are rejected as a whole.
func AdminSetUserPermissions(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var user models.User
	if err := config.DB.First(&user, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
		return
	}

	var in SetUserPermissionsInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid payload", "error": err.Error()})
		return
	}
	codes := make([]string, 0, len(in.PermissionCodes))
	for _, code := range in.PermissionCodes {
		codes = append(codes, strings.ToUpper(strings.TrimSpace(code)))
	}

	var perms []models.Permission
	if len(codes) > 0 {
		if err := config.DB.Where("code IN ?", codes).Find(&perms).Error; err != nil {
			utils.Error(c, http.StatusInternalServerError, "Failed to load permissions", err)
			return
		}
		if len(perms) != len(unique(codes)) {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Unknown permission code"})
			return
		}
	}

	err := config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", user.ID).Delete(&models.UserPermission{}).Error; err != nil {
			return err
		}
		now := time.Now()
		for _, p := range perms {
			if err := tx.Create(&models.UserPermission{UserID: user.ID, PermissionID: p.ID, GrantedAt: now}).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		utils.Error(c, http.StatusInternalServerError, "Failed to save permissions", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Permissions saved", "applied": len(perms)})
}

func AdminListPermissions(c *gin.Context) {
	var perms []models.Permission
	if err := config.DB.Order("code ASC").Find(&perms).Error; err != nil {
		utils.Error(c, http.StatusInternalServerError, "Failed to load permissions", err)
		return
	}
	utils.Success(c, "Permissions loaded", perms)
}

// userPermissionCodes returns the codes granted to userID.
func userPermissionCodes(db *gorm.DB, userID uint) ([]string, error) {
	codes := []string{}
	err := db.Table("permissions p").
		Joins("JOIN user_permissions up ON up.permission_id = p.id").
		Where("up.user_id = ?", userID).
		Order("p.code ASC").
		Pluck("p.code", &codes).Error
	return codes, err
}

func unique(list []string) []string {
	seen := map[string]bool{}
	out := list[:0:0]
	for _, s := range list {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	return out
}
