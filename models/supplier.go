package models

// Supplier is keyed by a readable slug so product identifiers built from it
// stay human readable.
type Supplier struct {
	ID   string `gorm:"primaryKey;size:100"`
	Name string `gorm:"not null"`
}

func (s *Supplier) TableName() string {
	return "suppliers"
}
