package entities

import "time"

// PricePoint is one observed fare for a route, recorded by the tracker so
// price movement can be queried later.
type PricePoint struct {
	ID         int64     `db:"id" json:"id"`
	Route      string    `db:"route" json:"route"`
	Airline    string    `db:"airline" json:"airline"`
	Price      float64   `db:"price" json:"price"`
	Source     string    `db:"source" json:"source"`
	ObservedAt time.Time `db:"observed_at" json:"observed_at"`
}
