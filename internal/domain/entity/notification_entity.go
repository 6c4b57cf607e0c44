package entity

import "time"

type NotificationType string

const (
	NotificationDesignLiked     NotificationType = "design_liked"
	NotificationDesignCommented NotificationType = "design_commented"
	NotificationDesignShared    NotificationType = "design_shared"
	NotificationNewFollower     NotificationType = "new_follower"
)

// Related models a notification can point at.
const (
	RelatedDesign = "Design"
	RelatedUser   = "User"
)

// Notification is an in-app message addressed to UserID.
type Notification struct {
	ID           string
	UserID       string
	Type         NotificationType
	Title        string
	Message      string
	RelatedID    string
	RelatedModel string
	ActionURL    string
	Metadata     map[string]string
	IsRead       bool
	CreatedAt    time.Time
}
