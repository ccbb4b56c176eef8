package models

type LoadSubmissionModel struct {
	ID           string `json:"id" gorm:"primaryKey;type:varchar(64)"`
	UserID       string `json:"user_id" gorm:"column:user_id;type:varchar(128)"`
	TrailerID    string `json:"trailer_id" gorm:"column:trailer_id;type:varchar(64)"`
	FromWh       string `json:"from_wh" gorm:"column:from_wh;type:varchar(128)"`
	FromDoor     string `json:"from_door" gorm:"column:from_door;type:varchar(64)"`
	Timestamp    string `json:"timestamp,omitempty" gorm:"type:varchar(64)"`
	TimestampEST string `json:"timestamp_est,omitempty" gorm:"column:timestamp_est;type:varchar(64)"`
}

func (LoadSubmissionModel) TableName() string { return "load_submission" }
