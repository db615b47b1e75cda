package dto

import "DEVLINK_BACK-END/internal/models"

// ConnectionRequestResponse carries a created or reviewed request
type ConnectionRequestResponse struct {
	Message string                    `json:"message"`
	Data    *models.ConnectionRequest `json:"data"`
}

// ReceivedRequestsResponse lists pending requests addressed to the caller
type ReceivedRequestsResponse struct {
	Message string                   `json:"message"`
	Data    []models.ReceivedRequest `json:"data"`
}

// ConnectionsResponse lists the caller's accepted connections
type ConnectionsResponse struct {
	Message string                 `json:"message"`
	Data    []models.PublicProfile `json:"data"`
}
