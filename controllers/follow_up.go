// controllers/follow_up.go
package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"metacrm-backend/config"
	"metacrm-backend/models"
	"metacrm-backend/services"
	"metacrm-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type CreateFollowUpInput struct {
	ClientID       uuid.UUID  `json:"clientId" binding:"required"`
	AssignedUserID *uuid.UUID `json:"assignedUserId"`
	DueAt          *time.Time `json:"dueAt"`
	Note           string     `json:"note"`
}

type ActionReasonInput struct {
	Reason string `json:"reason" binding:"required"`
}

type RescheduleInput struct {
	Reason   string    `json:"reason" binding:"required"`
	NewDueAt time.Time `json:"newDueAt" binding:"required"`
}

// FollowUpResponse carries a follow-up with its derived status and
// remaining-time string, the shape list views render.
type FollowUpResponse struct {
	ID             uuid.UUID     `json:"id"`
	ClientID       uuid.UUID     `json:"clientId"`
	ClientName     string        `json:"clientName"`
	AssignedUserID uuid.UUID     `json:"assignedUserId"`
	AssignedToName string        `json:"assignedToName"`
	DueAt          *time.Time    `json:"dueAt"`
	Note           string        `json:"note"`
	ActionReason   string        `json:"actionReason"`
	IsCompleted    bool          `json:"isCompleted"`
	Status         models.Status `json:"status"`
	Remaining      string        `json:"remaining"`
}

func toFollowUpResponse(fu models.FollowUp, now time.Time) FollowUpResponse {
	return FollowUpResponse{
		ID:             fu.ID,
		ClientID:       fu.ClientID,
		ClientName:     fu.ClientName(),
		AssignedUserID: fu.AssignedUserID,
		AssignedToName: fu.AssigneeName(),
		DueAt:          fu.DueAt,
		Note:           fu.Note,
		ActionReason:   fu.ActionReason,
		IsCompleted:    fu.IsCompleted,
		Status:         fu.StatusAt(now),
		Remaining:      utils.FormatRemaining(fu.DueAt, now),
	}
}

type FollowUpController struct {
	svc      *services.FollowUpService
	notifier *services.NotifierService
}

func NewFollowUpController(svc *services.FollowUpService, notifier *services.NotifierService) *FollowUpController {
	return &FollowUpController{svc: svc, notifier: notifier}
}

// ListFollowUps returns follow-ups visible to the caller: admins see all,
// everyone else only their own. Status filtering happens after
// classification since status is derived, not stored.
func (fc *FollowUpController) ListFollowUps(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	query := config.DB.Preload("Client").Preload("AssignedUser")
	if !isAdmin(c) {
		query = query.Where("assigned_user_id = ?", userID)
	}
	if clientID := c.Query("clientId"); clientID != "" {
		query = query.Where("client_id = ?", clientID)
	}

	var followUps []models.FollowUp
	if err := query.Order("due_at asc").Find(&followUps).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve follow-ups")
		return
	}

	now := time.Now()
	statusFilter := c.Query("status")

	responses := make([]FollowUpResponse, 0, len(followUps))
	for _, fu := range followUps {
		resp := toFollowUpResponse(fu, now)
		if statusFilter != "" && statusFilter != "All" && string(resp.Status) != statusFilter {
			continue
		}
		responses = append(responses, resp)
	}

	c.JSON(http.StatusOK, responses)
}

// CreateFollowUp schedules a new client contact obligation. The due date
// must be at least a minute ahead.
func (fc *FollowUpController) CreateFollowUp(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var input CreateFollowUpInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	if input.DueAt != nil {
		if err := services.ValidateDueAt(*input.DueAt, time.Now()); err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, err.Error())
			return
		}
	}

	assignee := userID
	if input.AssignedUserID != nil {
		assignee = *input.AssignedUserID
	}

	followUp := models.FollowUp{
		ClientID:       input.ClientID,
		AssignedUserID: assignee,
		CreatedBy:      userID,
		DueAt:          input.DueAt,
		Note:           input.Note,
	}

	if err := config.DB.Create(&followUp).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create follow-up")
		return
	}

	c.JSON(http.StatusCreated, followUp)
}

// respondActionError maps service errors onto HTTP statuses.
func respondActionError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrValidation):
		utils.RespondWithError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrNotFound):
		utils.RespondWithError(c, http.StatusNotFound, "Follow-up not found")
	default:
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update follow-up")
	}
}

func (fc *FollowUpController) CompleteFollowUp(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid follow-up ID format")
		return
	}

	var input ActionReasonInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	if err := fc.svc.Complete(id, input.Reason); err != nil {
		respondActionError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Follow-up completed"})
}

func (fc *FollowUpController) RescheduleFollowUp(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid follow-up ID format")
		return
	}

	var input RescheduleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	if err := fc.svc.Reschedule(id, input.NewDueAt, input.Reason); err != nil {
		respondActionError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Follow-up rescheduled"})
}

func (fc *FollowUpController) DeleteFollowUp(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid follow-up ID format")
		return
	}

	if err := fc.svc.Remove(id); err != nil {
		respondActionError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Follow-up deleted"})
}

// GetDueFollowUps is the overdue-alert poll: it returns the caller's
// overdue follow-ups that the caller has not acknowledged yet. The client
// surfaces the first as a blocking modal.
func (fc *FollowUpController) GetDueFollowUps(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	due, err := fc.notifier.DueUnacknowledged(userID)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve due follow-ups")
		return
	}

	now := time.Now()
	responses := make([]FollowUpResponse, 0, len(due))
	for _, fu := range due {
		responses = append(responses, toFollowUpResponse(fu, now))
	}

	c.JSON(http.StatusOK, responses)
}

func (fc *FollowUpController) AcknowledgeFollowUp(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid follow-up ID format")
		return
	}

	if err := fc.notifier.Acknowledge(id, userID); err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to acknowledge follow-up")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Follow-up acknowledged"})
}

// SendReminder inserts a manual pending reminder row for the assignee.
func (fc *FollowUpController) SendReminder(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid follow-up ID format")
		return
	}

	fu, err := fc.svc.Get(id)
	if err != nil {
		respondActionError(c, err)
		return
	}

	when := ""
	if fu.DueAt != nil {
		when = fu.DueAt.Format("2006-01-02 15:04")
	}
	message := fmt.Sprintf("Reminder: Follow-up with %s at %s", fu.ClientName(), when)

	notification := models.FollowUpNotification{
		FollowUpID: fu.ID,
		UserID:     fu.AssignedUserID,
		Message:    message,
		SentBy:     &userID,
		Channel:    models.ChannelInApp,
	}
	if err := config.DB.Create(&notification).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to send reminder")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Reminder sent"})
}
