package models

import "strings"

type MoveStatus string

const (
	MoveStatusOpen      MoveStatus = "open"
	MoveStatusPickedUp  MoveStatus = "picked up"
	MoveStatusCompleted MoveStatus = "completed"
)

// NormalizeMoveStatus folds the spellings found in stored records onto the three statuses.
// An empty status counts as open; anything unrecognised is returned lower-cased.
func NormalizeMoveStatus(raw string) MoveStatus {
	s := strings.ToLower(strings.TrimSpace(raw))
	switch s {
	case "", "open":
		return MoveStatusOpen
	case "picked up", "picked-up", "picked_up", "pickedup":
		return MoveStatusPickedUp
	case "completed", "complete":
		return MoveStatusCompleted
	}
	return MoveStatus(s)
}

type MoveModel struct {
	ID           string `json:"id" gorm:"primaryKey;type:varchar(64)"`
	TrailerID    string `json:"trailer_id" gorm:"column:trailer_id;type:varchar(64);not null;index"`
	FromWhYard   string `json:"from_wh_yard" gorm:"column:from_wh_yard;type:varchar(128)"`
	FromDoor     string `json:"from_door" gorm:"column:from_door;type:varchar(64)"`
	ToLocation   string `json:"to_location,omitempty" gorm:"column:to_location;type:varchar(128)"`
	ToDoor       string `json:"to_door,omitempty" gorm:"column:to_door;type:varchar(64)"`
	Status       string `json:"status" gorm:"type:varchar(32);index"`
	Timestamp    string `json:"timestamp" gorm:"type:varchar(64)"`
	TimestampEST string `json:"timestamp_est,omitempty" gorm:"column:timestamp_est;type:varchar(64)"`
	PickedUpAt   string `json:"picked_up_at,omitempty" gorm:"column:picked_up_at;type:varchar(64)"`
	CompletedAt  string `json:"completed_at,omitempty" gorm:"column:completed_at;type:varchar(64)"`
	UserID       string `json:"user_id,omitempty" gorm:"column:user_id;type:varchar(128)"`
	Email        string `json:"email,omitempty" gorm:"type:varchar(255)"`
	UpdatedAt    string `json:"updated_at,omitempty" gorm:"column:updated_at;type:varchar(64)"`
	UpdatedAtEST string `json:"updated_at_est,omitempty" gorm:"column:updated_at_est;type:varchar(64)"`
}

func (MoveModel) TableName() string { return "moves" }

// NormalizedStatus returns the move's status folded onto the canonical values.
func (m MoveModel) NormalizedStatus() MoveStatus { return NormalizeMoveStatus(m.Status) }

type NotifyReadyRequest struct {
	TrailerID  string `json:"trailer_id"`
	FromWhYard string `json:"from_wh_yard"`
	FromDoor   string `json:"from_door"`
}

type CompleteMoveRequest struct {
	ToLocation string `json:"to_location"`
	ToDoor     string `json:"to_door"`
}
