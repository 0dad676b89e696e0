package entity

import "time"

// Lot lote de un producto. ExpirationDate es opcional.
type Lot struct {
	ID             string
	Number         string
	ProductID      string
	ExpirationDate *time.Time
}
