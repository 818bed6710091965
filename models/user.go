package models

import "gorm.io/gorm"

type User struct {
	gorm.Model
	Phone      *string `gorm:"uniqueIndex"`
	NationalID *string `gorm:"uniqueIndex"`
	Name       *string
	PINHash    string
	Verified   bool   `gorm:"default:false"`
	Role       string `gorm:"default:user"`
}
