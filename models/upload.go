package models

import "time"

// UploadSession describes an in-progress chunked image upload
type UploadSession struct {
	ID          string    `json:"id"`
	OwnerID     string    `json:"ownerId"`
	FileName    string    `json:"fileName"`
	ContentType string    `json:"contentType"`
	TotalChunks int       `json:"totalChunks"`
	Received    int       `json:"received"`
	ExpiresAt   time.Time `json:"expiresAt"`
}

// StartUploadRequest represents the request body for opening an upload session
type StartUploadRequest struct {
	FileName    string `json:"fileName" validate:"required,max=255"`
	ContentType string `json:"contentType" validate:"required,oneof=image/png image/jpeg image/jpg"`
	TotalChunks int    `json:"totalChunks" validate:"required,min=1"`
}

// UserImage is a completed upload owned by a user
type UserImage struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	ImageURL  string    `json:"imageUrl"`
	StoreKey  string    `json:"storeKey"`
	CreatedAt time.Time `json:"createdAt"`
}
