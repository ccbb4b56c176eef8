package models

type LocationModel struct {
	ID          string `json:"id" gorm:"primaryKey;type:varchar(64)"`
	Name        string `json:"name" gorm:"type:varchar(128);not null;uniqueIndex"`
	Type        string `json:"type" gorm:"type:varchar(64)"`
	Capacity    int    `json:"capacity"`
	Description string `json:"description" gorm:"type:text"`
	Active      bool   `json:"active" gorm:"default:true"`
	CreatedAt   string `json:"created_at,omitempty" gorm:"column:created_at;type:varchar(64)"`
}

func (LocationModel) TableName() string { return "locations" }
