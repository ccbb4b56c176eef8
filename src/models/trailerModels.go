package models

type TrailerModel struct {
	ID           string `json:"id" gorm:"primaryKey;type:varchar(64)"`
	Year         int    `json:"year"`
	Length       int    `json:"length"`
	Manufacturer string `json:"manufacturer" gorm:"type:varchar(128)"`
	RollUpDoor   bool   `json:"roll_up_door" gorm:"column:roll_up_door"`
	Reefer       bool   `json:"reefer"`
	Zones        int    `json:"zones"`
	Timestamp    string `json:"timestamp,omitempty" gorm:"type:varchar(64)"`
	TimestampEST string `json:"timestamp_est,omitempty" gorm:"column:timestamp_est;type:varchar(64)"`
	UpdatedAt    string `json:"updated_at,omitempty" gorm:"column:updated_at;type:varchar(64)"`
	UpdatedAtEST string `json:"updated_at_est,omitempty" gorm:"column:updated_at_est;type:varchar(64)"`
}

func (TrailerModel) TableName() string { return "trailer_master" }
