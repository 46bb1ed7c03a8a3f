// controllers/analytics.go
package controllers

import (
	"net/http"

	"metacrm-backend/config"
	"metacrm-backend/models"
	"metacrm-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AnalyticsOverview struct {
	TotalClients       int64              `json:"totalClients"`
	TotalClientsByUser map[string]int64   `json:"totalClientsByUser,omitempty"`
	TotalSales         float64            `json:"totalSales"`
	TotalSalesByUser   map[string]float64 `json:"totalSalesByUser,omitempty"`
	TotalLeadGens      int64              `json:"totalLeadGens"`
	LeadGenNames       map[string]string  `json:"leadGenNames,omitempty"`
}

// GetAnalytics returns the dashboard totals. Admins get global numbers
// with per-user breakdowns; everyone else gets their own slice.
func GetAnalytics(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	admin := isAdmin(c)

	overview := AnalyticsOverview{
		TotalClientsByUser: map[string]int64{},
		TotalSalesByUser:   map[string]float64{},
		LeadGenNames:       map[string]string{},
	}

	// Clients per assignee
	type clientCount struct {
		AssignedUserID uuid.UUID
		Count          int64
	}
	var clientCounts []clientCount
	if err := config.DB.Model(&models.Client{}).
		Select("assigned_user_id, count(*) as count").
		Group("assigned_user_id").
		Scan(&clientCounts).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to compute client totals")
		return
	}
	var totalClients int64
	for _, cc := range clientCounts {
		totalClients += cc.Count
		overview.TotalClientsByUser[cc.AssignedUserID.String()] = cc.Count
	}

	// Sales totals per creator
	type saleSum struct {
		CreatedBy uuid.UUID
		Total     float64
	}
	var saleSums []saleSum
	if err := config.DB.Model(&models.ServiceSale{}).
		Select("created_by, COALESCE(SUM(price), 0) as total").
		Group("created_by").
		Scan(&saleSums).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to compute sales totals")
		return
	}
	var totalSales float64
	for _, ss := range saleSums {
		totalSales += ss.Total
		overview.TotalSalesByUser[ss.CreatedBy.String()] = ss.Total
	}

	// Lead generation agents
	var leadGens []models.User
	config.DB.Where("role = ?", models.RoleLeadGen).Find(&leadGens)
	for _, agent := range leadGens {
		overview.LeadGenNames[agent.ID.String()] = agent.Name
	}

	if admin {
		overview.TotalClients = totalClients
		overview.TotalSales = totalSales
		overview.TotalLeadGens = int64(len(leadGens))
	} else {
		overview.TotalClients = overview.TotalClientsByUser[userID.String()]
		overview.TotalSales = overview.TotalSalesByUser[userID.String()]
		overview.TotalClientsByUser = nil
		overview.TotalSalesByUser = nil
		overview.LeadGenNames = nil
	}

	c.JSON(http.StatusOK, overview)
}
