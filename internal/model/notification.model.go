package model

// Notification mirrors ResponseNotifications of the notification service.
type Notification struct {
	NotificationID   int64  `json:"notificationId"`
	Message          string `json:"message"`
	ShowNotification bool   `json:"showNotification"`
	Timestamp        string `json:"timestamp"`
}

type NotificationIDRequest struct {
	NotificationID int64 `json:"notificationId" validate:"required,gt=0"`
}
