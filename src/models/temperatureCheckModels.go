package models

type TemperatureCheckModel struct {
	ID        string   `json:"id" gorm:"primaryKey;type:varchar(64)"`
	TrailerID string   `json:"trailer_id" gorm:"column:trailer_id;type:varchar(64);not null;index"`
	ClrTemp   *float64 `json:"clr_temp" gorm:"column:clr_temp"`
	FzrTemp   *float64 `json:"fzr_temp" gorm:"column:fzr_temp"`
	Timestamp string   `json:"timestamp" gorm:"type:varchar(64)"`
	UserID    string   `json:"user_id,omitempty" gorm:"column:user_id;type:varchar(128)"`
	Email     string   `json:"email,omitempty" gorm:"type:varchar(255)"`
}

func (TemperatureCheckModel) TableName() string { return "temperature_checks" }

type AddTemperatureCheckRequest struct {
	ID        string   `json:"id"`
	TrailerID string   `json:"trailer_id"`
	ClrTemp   *float64 `json:"clr_temp"`
	FzrTemp   *float64 `json:"fzr_temp"`
	Email     string   `json:"email"`
}
