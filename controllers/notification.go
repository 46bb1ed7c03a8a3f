// controllers/notification.go
package controllers

import (
	"net/http"

	"metacrm-backend/config"
	"metacrm-backend/models"
	"metacrm-backend/utils"

	"github.com/gin-gonic/gin"
)

// GetNotifications lists the caller's reminder notifications, newest
// first. Status stays "pending" here; delivery is advanced elsewhere.
func GetNotifications(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	query := config.DB.Where("user_id = ?", userID)
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var notifications []models.FollowUpNotification
	if err := query.Order("created_at desc").Find(&notifications).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve notifications")
		return
	}

	c.JSON(http.StatusOK, notifications)
}
