package models

import "gorm.io/gorm"

type Customer struct {
	gorm.Model
	Email     string  `json:"email" gorm:"uniqueIndex;size:191"`
	FirstName string  `json:"firstName"`
	LastName  string  `json:"lastName"`
	Phone     string  `json:"phone"`
	Address   string  `json:"address"`
	City      string  `json:"city"`
	Country   string  `json:"country"`
	Gender    string  `json:"gender"`
	IsGuest   bool    `json:"isGuest"`
	Orders    []Order `json:"orders,omitempty" gorm:"foreignKey:CustomerID"`
}
