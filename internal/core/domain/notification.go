package domain

import "time"

// NotificationType categorizes user-facing notices.
type NotificationType string

const (
	NotificationReversal   NotificationType = "ESTORNO"
	NotificationDueSoon    NotificationType = "VENCIMENTO_PROXIMO"
	NotificationOverdue    NotificationType = "VENCIDO"
	NotificationSettlement NotificationType = "LIQUIDACAO"
)

// Notification is a user-facing notice. Notifications are only ever written
// after a store transaction commits; they are not part of any atomic write set.
type Notification struct {
	NotificationID string           `json:"id"`
	AdminID        string           `json:"adminId"`
	Type           NotificationType `json:"tipo"`
	Title          string           `json:"titulo"`
	Message        string           `json:"mensagem"`
	Read           bool             `json:"lida"`
	CreatedAt      time.Time        `json:"createdAt"`
}
