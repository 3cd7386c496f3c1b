package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Product struct {
	gorm.Model
	NameEn        string         `json:"nameEn" binding:"required"`
	NameAr        string         `json:"nameAr" binding:"required"`
	DescriptionEn string         `json:"descriptionEn"`
	DescriptionAr string         `json:"descriptionAr"`
	Price         float64        `json:"price" binding:"required,gte=0"`
	Category      string         `json:"category"`
	BadgeEn       string         `json:"badgeEn"`
	BadgeAr       string         `json:"badgeAr"`
	ImageURL      string         `json:"imageUrl"`
	FeaturesEn    datatypes.JSON `json:"featuresEn"`
	FeaturesAr    datatypes.JSON `json:"featuresAr"`
	IsActive      bool           `json:"isActive" gorm:"default:true"`
	IsFeatured    bool           `json:"isFeatured"`
	StockQuantity int            `json:"stockQuantity"`
}

type SubscriptionPlan struct {
	gorm.Model
	NameEn        string         `json:"nameEn" binding:"required"`
	NameAr        string         `json:"nameAr" binding:"required"`
	DescriptionEn string         `json:"descriptionEn"`
	DescriptionAr string         `json:"descriptionAr"`
	MonthlyPrice  float64        `json:"monthlyPrice" binding:"required,gte=0"`
	AnnualPrice   float64        `json:"annualPrice" binding:"gte=0"`
	Savings       float64        `json:"savings"`
	MealsPerMonth int            `json:"mealsPerMonth"`
	FeaturesEn    datatypes.JSON `json:"featuresEn"`
	FeaturesAr    datatypes.JSON `json:"featuresAr"`
	IsPopular     bool           `json:"isPopular"`
	IsActive      bool           `json:"isActive" gorm:"default:true"`
}
