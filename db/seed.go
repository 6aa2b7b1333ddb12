package db

import (
	"errors"
	"log"

	"gorm.io/gorm"

	"github.com/grocoop/gasorders/models"
)

// Seed inserts baseline reference data when missing. Safe to run repeatedly.
func Seed(conn *gorm.DB) {
	baseMeasures := []models.Measure{
		{Name: "kilogrammi", Symbol: "kg"},
		{Name: "litri", Symbol: "l"},
		{Name: "pezzi", Symbol: "pz"},
		{Name: "confezioni", Symbol: "cf"},
	}
	for _, m := range baseMeasures {
		var existing models.Measure
		if err := conn.Where("name = ?", m.Name).First(&existing).Error; errors.Is(err, gorm.ErrRecordNotFound) {
			if err := conn.Create(&m).Error; err != nil {
				log.Printf("seed: create measure %q: %v", m.Name, err)
			}
		}
	}

	baseCategories := []models.Category{
		{Code: "fruit", Name: "Frutta e Verdura"},
		{Code: "dairy", Name: "Latticini"},
		{Code: "pantry", Name: "Dispensa"},
		{Code: "uncategorized", Name: "Non Categorizzato"},
	}
	for _, c := range baseCategories {
		var existing models.Category
		if err := conn.Where("code = ?", c.Code).First(&existing).Error; errors.Is(err, gorm.ErrRecordNotFound) {
			if err := conn.Create(&c).Error; err != nil {
				log.Printf("seed: create category %q: %v", c.Code, err)
			}
		}
	}
}
