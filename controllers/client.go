// controllers/client.go
package controllers

import (
	"encoding/json"
	"errors"
	"net/http"

	"metacrm-backend/config"
	"metacrm-backend/models"
	"metacrm-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// CreateClientInput defines the expected JSON structure for creating a client
type CreateClientInput struct {
	Name           string     `json:"name" binding:"required"`
	PhoneNumbers   []string   `json:"phoneNumbers"`
	EmailAddresses []string   `json:"emailAddresses"`
	WorkEmail      string     `json:"workEmail"`
	Status         string     `json:"status"`
	Gender         string     `json:"gender"`
	WebsiteURL     string     `json:"websiteUrl"`
	Platform       string     `json:"platform"`
	ProfileURL     string     `json:"profileUrl"`
	SudoName       string     `json:"sudoName"`
	AssignedUserID *uuid.UUID `json:"assignedUserId"`
	LeadGenID      *uuid.UUID `json:"leadGenId"`
}

// UpdateClientInput defines the expected JSON structure for updating a client
type UpdateClientInput struct {
	Name           *string    `json:"name"`
	PhoneNumbers   []string   `json:"phoneNumbers"`
	EmailAddresses []string   `json:"emailAddresses"`
	WorkEmail      *string    `json:"workEmail"`
	Status         *string    `json:"status"`
	Gender         *string    `json:"gender"`
	WebsiteURL     *string    `json:"websiteUrl"`
	Platform       *string    `json:"platform"`
	ProfileURL     *string    `json:"profileUrl"`
	SudoName       *string    `json:"sudoName"`
	AssignedUserID *uuid.UUID `json:"assignedUserId"`
	LeadGenID      *uuid.UUID `json:"leadGenId"`
}

type CreateClientNoteInput struct {
	NoteText          string `json:"noteText" binding:"required"`
	AssociatedService string `json:"associatedService"`
	AssetURL          string `json:"assetUrl"`
}

type CreateSaleInput struct {
	ServiceID uuid.UUID `json:"serviceId" binding:"required"`
	Price     float64   `json:"price" binding:"required,min=0"`
}

func toJSONList(values []string) datatypes.JSON {
	if values == nil {
		values = []string{}
	}
	b, _ := json.Marshal(values)
	return datatypes.JSON(b)
}

// CreateClient creates a new client record
func CreateClient(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var input CreateClientInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	for _, phone := range input.PhoneNumbers {
		if !utils.ValidatePhone(phone) {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid phone number format")
			return
		}
	}
	for _, email := range input.EmailAddresses {
		if !utils.ValidateEmail(email) {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid email address")
			return
		}
	}

	assignee := userID
	if input.AssignedUserID != nil {
		assignee = *input.AssignedUserID
	}

	status := input.Status
	if status == "" {
		status = "active"
	}

	client := models.Client{
		Name:           input.Name,
		PhoneNumbers:   toJSONList(input.PhoneNumbers),
		EmailAddresses: toJSONList(input.EmailAddresses),
		WorkEmail:      input.WorkEmail,
		Status:         status,
		Gender:         input.Gender,
		WebsiteURL:     input.WebsiteURL,
		Platform:       input.Platform,
		ProfileURL:     input.ProfileURL,
		SudoName:       input.SudoName,
		AssignedUserID: assignee,
		LeadGenID:      input.LeadGenID,
	}

	if err := config.DB.Create(&client).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create client")
		return
	}

	c.JSON(http.StatusCreated, client)
}

// GetClients retrieves clients visible to the caller
func GetClients(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	query := config.DB.Model(&models.Client{})
	if !isAdmin(c) {
		query = query.Where("assigned_user_id = ?", userID)
	}
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var clients []models.Client
	if err := query.Order("created_at desc").Find(&clients).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve clients")
		return
	}

	c.JSON(http.StatusOK, clients)
}

// GetClient retrieves a single client with notes and sales
func GetClient(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	clientID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid client ID format")
		return
	}

	query := config.DB.Preload("Notes").Preload("Sales")
	if !isAdmin(c) {
		query = query.Where("assigned_user_id = ?", userID)
	}

	var client models.Client
	if err := query.First(&client, "id = ?", clientID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Client not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	c.JSON(http.StatusOK, client)
}

// UpdateClient updates an existing client
func UpdateClient(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	clientID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid client ID format")
		return
	}

	var input UpdateClientInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	query := config.DB
	if !isAdmin(c) {
		query = query.Where("assigned_user_id = ?", userID)
	}

	var client models.Client
	if err := query.First(&client, "id = ?", clientID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Client not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if input.Name != nil {
		client.Name = *input.Name
	}
	if input.PhoneNumbers != nil {
		for _, phone := range input.PhoneNumbers {
			if !utils.ValidatePhone(phone) {
				utils.RespondWithError(c, http.StatusBadRequest, "Invalid phone number format")
				return
			}
		}
		client.PhoneNumbers = toJSONList(input.PhoneNumbers)
	}
	if input.EmailAddresses != nil {
		client.EmailAddresses = toJSONList(input.EmailAddresses)
	}
	if input.WorkEmail != nil {
		client.WorkEmail = *input.WorkEmail
	}
	if input.Status != nil {
		client.Status = *input.Status
	}
	if input.Gender != nil {
		client.Gender = *input.Gender
	}
	if input.WebsiteURL != nil {
		client.WebsiteURL = *input.WebsiteURL
	}
	if input.Platform != nil {
		client.Platform = *input.Platform
	}
	if input.ProfileURL != nil {
		client.ProfileURL = *input.ProfileURL
	}
	if input.SudoName != nil {
		client.SudoName = *input.SudoName
	}
	if input.AssignedUserID != nil {
		client.AssignedUserID = *input.AssignedUserID
	}
	if input.LeadGenID != nil {
		client.LeadGenID = input.LeadGenID
	}

	if err := config.DB.Save(&client).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update client")
		return
	}

	c.JSON(http.StatusOK, client)
}

// DeleteClient removes a client
func DeleteClient(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	clientID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid client ID format")
		return
	}

	query := config.DB
	if !isAdmin(c) {
		query = query.Where("assigned_user_id = ?", userID)
	}

	result := query.Delete(&models.Client{}, "id = ?", clientID)
	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete client")
		return
	}
	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Client not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Client deleted successfully"})
}

// GetClientNotes lists the notes attached to a client
func GetClientNotes(c *gin.Context) {
	clientID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid client ID format")
		return
	}

	var notes []models.ClientNote
	if err := config.DB.Where("client_id = ?", clientID).
		Order("created_at desc").Find(&notes).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve notes")
		return
	}

	c.JSON(http.StatusOK, notes)
}

// CreateClientNote attaches a note to a client
func CreateClientNote(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	clientID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid client ID format")
		return
	}

	var input CreateClientNoteInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	note := models.ClientNote{
		ClientID:          clientID,
		AddedBy:           userID,
		NoteText:          input.NoteText,
		AssociatedService: input.AssociatedService,
		AssetURL:          input.AssetURL,
	}

	if err := config.DB.Create(&note).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create note")
		return
	}

	c.JSON(http.StatusCreated, note)
}

// GetClientSales lists services sold to a client
func GetClientSales(c *gin.Context) {
	clientID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid client ID format")
		return
	}

	var sales []models.ServiceSale
	if err := config.DB.Where("client_id = ?", clientID).
		Order("sold_at desc").Find(&sales).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve sales")
		return
	}

	c.JSON(http.StatusOK, sales)
}

// CreateClientSale records a service sold to a client
func CreateClientSale(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	clientID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid client ID format")
		return
	}

	var input CreateSaleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var service models.Service
	if err := config.DB.First(&service, "id = ?", input.ServiceID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Service not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	sale := models.ServiceSale{
		ClientID:  clientID,
		ServiceID: input.ServiceID,
		CreatedBy: userID,
		Price:     input.Price,
	}

	if err := config.DB.Create(&sale).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to record sale")
		return
	}

	c.JSON(http.StatusCreated, sale)
}
