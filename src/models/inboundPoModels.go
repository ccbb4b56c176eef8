package models

type InboundPOModel struct {
	ID           string `json:"id" gorm:"primaryKey;type:varchar(64)"`
	PONumbers    string `json:"po_numbers" gorm:"column:po_numbers;type:text"`
	TrailerID    string `json:"trailer_id" gorm:"column:trailer_id;type:varchar(64)"`
	Status       string `json:"status" gorm:"type:varchar(32)"`
	Timestamp    string `json:"timestamp" gorm:"type:varchar(64)"`
	TimestampEST string `json:"timestamp_est,omitempty" gorm:"column:timestamp_est;type:varchar(64)"`
}

func (InboundPOModel) TableName() string { return "inbound_pos" }
