package models

import "gorm.io/gorm"

const (
	RolePatient = "patient"
	RoleDoctor  = "doctor"
)

type User struct {
	gorm.Model
	Email    string `gorm:"uniqueIndex;not null"`
	FullName string
	Role     string `gorm:"size:16;default:patient"` // "patient" | "doctor"
	DoctorID *uint  `gorm:"index"`                   // assigned doctor, patients only
}
