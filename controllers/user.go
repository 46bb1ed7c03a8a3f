// controllers/user.go
package controllers

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"

	"metacrm-backend/config"
	"metacrm-backend/models"
	"metacrm-backend/services"
	"metacrm-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CreateUserInput struct {
	Email string `json:"email" binding:"required,email"`
	Name  string `json:"name" binding:"required"`
	Phone string `json:"phone"`
	Role  string `json:"role" binding:"required,oneof=admin sales lead_gen"`
}

type UpdateUserInput struct {
	Name     *string `json:"name"`
	Phone    *string `json:"phone"`
	Role     *string `json:"role" binding:"omitempty,oneof=admin sales lead_gen"`
	IsActive *bool   `json:"isActive"`
}

type SetPasswordInput struct {
	Password string `json:"password" binding:"required,min=8"`
}

// GetUsers lists all users (admin only)
func GetUsers(c *gin.Context) {
	var users []models.User
	if err := config.DB.Order("created_at asc").Find(&users).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve users")
		return
	}

	c.JSON(http.StatusOK, users)
}

func inviteLink(userID uuid.UUID) string {
	base := os.Getenv("APP_BASE_URL")
	if base == "" {
		base = "http://localhost:3000"
	}
	return fmt.Sprintf("%s/set-password?user=%s", base, userID)
}

// CreateUser creates a user with a temporary password and emails an
// activation link. The invite email is best-effort: a send failure does
// not roll the account back.
func CreateUser(c *gin.Context) {
	var input CreateUserInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var existingUser models.User
	result := config.DB.Where("email = ?", input.Email).First(&existingUser)
	if result.Error == nil {
		utils.RespondWithError(c, http.StatusConflict, "Email already registered")
		return
	} else if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}

	newUser := models.User{
		Email:    input.Email,
		Name:     input.Name,
		Phone:    input.Phone,
		Role:     input.Role,
		Password: utils.GenerateTempPassword(), // hashed in BeforeCreate hook
		IsActive: true,
	}

	if err := config.DB.Create(&newUser).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create user")
		return
	}

	email := services.NewEmailService()
	if email.Enabled() {
		if err := email.SendInviteEmail(newUser.Email, newUser.Name, inviteLink(newUser.ID)); err != nil {
			log.Printf("Failed to send invite email to %s: %v", newUser.Email, err)
		}
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "User created and invited",
		"user": gin.H{
			"id":    newUser.ID,
			"email": newUser.Email,
			"name":  newUser.Name,
			"role":  newUser.Role,
		},
	})
}

// ResendInvite re-sends the activation email
func ResendInvite(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid user ID format")
		return
	}

	var user models.User
	if err := config.DB.First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "User not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	email := services.NewEmailService()
	if !email.Enabled() {
		utils.RespondWithError(c, http.StatusServiceUnavailable, "Email sending is not configured")
		return
	}
	if err := email.SendInviteEmail(user.Email, user.Name, inviteLink(user.ID)); err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to send invite email")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Invite sent"})
}

// UpdateUser updates role, activity or contact details of a user
func UpdateUser(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid user ID format")
		return
	}

	var input UpdateUserInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var user models.User
	if err := config.DB.First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "User not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	updates := map[string]interface{}{}
	if input.Name != nil {
		updates["name"] = *input.Name
	}
	if input.Phone != nil {
		updates["phone"] = *input.Phone
	}
	if input.Role != nil {
		updates["role"] = *input.Role
	}
	if input.IsActive != nil {
		updates["is_active"] = *input.IsActive
	}

	if len(updates) > 0 {
		if err := config.DB.Model(&user).Updates(updates).Error; err != nil {
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update user")
			return
		}
	}

	c.JSON(http.StatusOK, user)
}

// DeleteUser removes a user account
func DeleteUser(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid user ID format")
		return
	}

	result := config.DB.Delete(&models.User{}, "id = ?", userID)
	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete user")
		return
	}
	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "User not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "User deleted successfully"})
}

// SetPassword lets the authenticated user replace the temporary password
// from the invite flow
func SetPassword(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var input SetPasswordInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	hashed, err := utils.HashPassword(input.Password)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to hash password")
		return
	}

	if err := config.DB.Model(&models.User{}).Where("id = ?", userID).
		Update("password", hashed).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update password")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Password updated"})
}
