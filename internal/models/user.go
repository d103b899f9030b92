package models

import "time"

const (
	RoleUser    = "user"
	RoleTrainer = "trainer"
)

type User struct {
	ID                 int64     `json:"id"`
	Name               string    `json:"name"`
	Email              string    `json:"email"`
	PasswordHash       string    `json:"-"`
	Phone              *string   `json:"phone"`
	Role               string    `json:"role"`
	EmailNotifications bool      `json:"email_notifications"`
	PushNotifications  bool      `json:"push_notifications"`
	SMSNotifications   bool      `json:"sms_notifications"`
	ResearchConsent    bool      `json:"research_consent"`
	ThirdPartySharing  bool      `json:"third_party_sharing"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

type UserWithProfile struct {
	User
	Profile *Profile `json:"profile"`
}
