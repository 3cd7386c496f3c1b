package initializers

import (
	"encoding/json"
	"errors"
	"log"
	"os"

	"github.com/reachfood/reachfood-api/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

func mustJSON(values []string) datatypes.JSON {
	raw, _ := json.Marshal(values)
	return datatypes.JSON(raw)
}

// SeedDatabase is idempotent: the admin is keyed by email, catalog entries by
// their English name.
func SeedDatabase(db *gorm.DB) error {
	if err := seedAdmin(db); err != nil {
		return err
	}
	if err := seedProducts(db); err != nil {
		return err
	}
	return seedPlans(db)
}

func seedAdmin(db *gorm.DB) error {
	adminEmail := os.Getenv("ADMIN_EMAIL")
	if adminEmail == "" {
		adminEmail = "admin@reachfood.com"
	}
	adminPassword := os.Getenv("ADMIN_PASSWORD")
	if adminPassword == "" {
		adminPassword = "Admin123!"
	}

	var existing models.AdminUser
	err := db.Where("email = ?", adminEmail).First(&existing).Error
	if err == nil {
		log.Println("Admin user already exists.")
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(adminPassword), 12)
	if err != nil {
		return err
	}

	admin := models.AdminUser{
		Email:        adminEmail,
		PasswordHash: string(hash),
		FirstName:    "Admin",
		LastName:     "User",
		Role:         models.RoleSuperAdmin,
		IsActive:     true,
	}
	if err := db.Create(&admin).Error; err != nil {
		return err
	}
	log.Println("Created admin user:", adminEmail)
	return nil
}

func seedProducts(db *gorm.DB) error {
	products := []models.Product{
		{
			NameEn:        "Re-Collagen",
			NameAr:        "ري-كولاجين",
			DescriptionEn: "Premium self-heating meal with collagen benefits. Authentic MENA flavors with high nutritional value.",
			DescriptionAr: "وجبة ذاتية التسخين مميزة مع فوائد الكولاجين. نكهات الشرق الأوسط الأصيلة مع قيمة غذائية عالية.",
			Price:         12.00,
			Category:      "Wellness",
			BadgeEn:       "Health Focused",
			BadgeAr:       "صحي",
			ImageURL:      "/images/prod7.jpg",
			FeaturesEn:    mustJSON([]string{"Self-heating technology", "Authentic MENA flavors", "High nutrition", "Halal certified", "Plantable packaging"}),
			FeaturesAr:    mustJSON([]string{"تقنية التسخين الذاتي", "نكهات الشرق الأوسط الأصيلة", "قيمة غذائية عالية", "حلال معتمد", "تغليف قابل للزراعة"}),
			IsActive:      true,
			IsFeatured:    true,
			StockQuantity: 100,
		},
		{
			NameEn:        "Re-Protein",
			NameAr:        "ري-بروتين",
			DescriptionEn: "Gourmet protein-rich meal with premium ingredients. Traditional cooking methods with instant preparation.",
			DescriptionAr: "وجبة غنية بالبروتين بمكونات فاخرة. طرق طهي تقليدية مع تحضير فوري.",
			Price:         8.00,
			Category:      "Gourmet",
			BadgeEn:       "Gourmet Choice",
			BadgeAr:       "اختيار الذواقة",
			ImageURL:      "/images/icons/3dzz.jpg",
			FeaturesEn:    mustJSON([]string{"Gourmet variety", "Traditional cooking", "Premium ingredients", "Cultural authenticity", "Instant preparation"}),
			FeaturesAr:    mustJSON([]string{"تنوع فاخر", "طهي تقليدي", "مكونات مميزة", "أصالة ثقافية", "تحضير فوري"}),
			IsActive:      true,
			IsFeatured:    true,
			StockQuantity: 150,
		},
	}

	for _, product := range products {
		var existing models.Product
		err := db.Where("name_en = ?", product.NameEn).First(&existing).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			if err := db.Create(&product).Error; err != nil {
				return err
			}
			log.Println("Created product:", product.NameEn)
			continue
		}
		if err != nil {
			return err
		}

		product.ID = existing.ID
		product.CreatedAt = existing.CreatedAt
		if err := db.Save(&product).Error; err != nil {
			return err
		}
		log.Println("Updated product:", product.NameEn)
	}
	return nil
}

func seedPlans(db *gorm.DB) error {
	plans := []models.SubscriptionPlan{
		{
			NameEn:        "Emergency Preparedness",
			NameAr:        "الاستعداد للطوارئ",
			DescriptionEn: "Perfect for emergency preparedness with extended shelf life meals.",
			DescriptionAr: "مثالي للاستعداد للطوارئ مع وجبات ذات صلاحية ممتدة.",
			MonthlyPrice:  89.99,
			AnnualPrice:   890.00,
			Savings:       178.00,
			MealsPerMonth: 8,
			FeaturesEn:    mustJSON([]string{"Mixed emergency selection", "Extended shelf life", "Priority shipping", "Emergency planning guide", "Bulk discounts"}),
			FeaturesAr:    mustJSON([]string{"تشكيلة طوارئ متنوعة", "صلاحية ممتدة", "شحن بأولوية", "دليل تخطيط الطوارئ", "خصومات بالجملة"}),
			IsPopular:     false,
			IsActive:      true,
		},
		{
			NameEn:        "Adventure Explorer",
			NameAr:        "مستكشف المغامرات",
			DescriptionEn: "High-energy meals designed for outdoor adventures and exploration.",
			DescriptionAr: "وجبات عالية الطاقة مصممة للمغامرات الخارجية والاستكشاف.",
			MonthlyPrice:  49.99,
			AnnualPrice:   490.00,
			Savings:       98.00,
			MealsPerMonth: 4,
			FeaturesEn:    mustJSON([]string{"High-energy outdoor meals", "Ultra-lightweight packaging", "Weather-resistant", "Adventure meal planning", "Gear partnerships"}),
			FeaturesAr:    mustJSON([]string{"وجبات خارجية عالية الطاقة", "تغليف خفيف الوزن", "مقاوم للطقس", "تخطيط وجبات المغامرة", "شراكات المعدات"}),
			IsPopular:     true,
			IsActive:      true,
		},
		{
			NameEn:        "Professional On-the-Go",
			NameAr:        "المحترف أثناء التنقل",
			DescriptionEn: "Quick, nutritious meals for busy professionals.",
			DescriptionAr: "وجبات سريعة ومغذية للمحترفين المشغولين.",
			MonthlyPrice:  69.99,
			AnnualPrice:   690.00,
			Savings:       140.00,
			MealsPerMonth: 6,
			FeaturesEn:    mustJSON([]string{"Quick preparation", "Balanced nutrition", "Office-friendly packaging", "Flexible delivery", "Meal variety"}),
			FeaturesAr:    mustJSON([]string{"تحضير سريع", "تغذية متوازنة", "تغليف مناسب للمكتب", "توصيل مرن", "تنوع الوجبات"}),
			IsPopular:     false,
			IsActive:      true,
		},
	}

	for _, plan := range plans {
		var existing models.SubscriptionPlan
		err := db.Where("name_en = ?", plan.NameEn).First(&existing).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			if err := db.Create(&plan).Error; err != nil {
				return err
			}
			log.Println("Created subscription plan:", plan.NameEn)
			continue
		}
		if err != nil {
			return err
		}

		plan.ID = existing.ID
		plan.CreatedAt = existing.CreatedAt
		if err := db.Save(&plan).Error; err != nil {
			return err
		}
		log.Println("Updated subscription plan:", plan.NameEn)
	}
	return nil
}
