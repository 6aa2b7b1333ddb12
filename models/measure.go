package models

// Measure is the unit a product is measured in (e.g. kilograms, pieces).
type Measure struct {
	ID     uint   `gorm:"primaryKey"`
	Name   string `gorm:"uniqueIndex;not null"`
	Symbol string
}

func (m *Measure) TableName() string {
	return "measures"
}
