package gorm

import "time"

// PriceAlert is one dispatched price-drop notification.
type PriceAlert struct {
	ID          string    `gorm:"column:id;primaryKey;type:uuid" json:"id"`
	Airline     string    `gorm:"column:airline;type:varchar(100)" json:"airline"`
	Origin      string    `gorm:"column:origin;type:varchar(100)" json:"origin"`
	Destination string    `gorm:"column:destination;type:varchar(100)" json:"destination"`
	Price       float64   `gorm:"column:price" json:"price"`
	Channel     string    `gorm:"column:channel;type:varchar(30)" json:"channel"`
	SentAt      time.Time `gorm:"column:sent_at;index" json:"sent_at"`
}

// TableName specifies the table name for GORM
func (PriceAlert) TableName() string {
	return "price_alerts"
}
