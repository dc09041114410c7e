// File: models/device.go
package models

// PushTokenRequest registers or removes an FCM registration token for the caller.
type PushTokenRequest struct {
	Token string `json:"token" binding:"required"`
}
