package services

import (
	"errors"

	"github.com/reachfood/reachfood-api/models"
	"github.com/reachfood/reachfood-api/utils"
	"gorm.io/gorm"
)

type ProductService struct {
	db *gorm.DB
}

func NewProductService(db *gorm.DB) *ProductService {
	return &ProductService{db: db}
}

type ProductListParams struct {
	Page       int
	Limit      int
	Category   string
	Search     string
	Featured   *bool
	ActiveOnly bool
}

func (s *ProductService) GetProducts(params ProductListParams) ([]models.Product, Pagination, error) {
	page, limit := normalizePaging(params.Page, params.Limit)

	applyFilters := func(db *gorm.DB) *gorm.DB {
		if params.ActiveOnly {
			db = db.Where("is_active = ?", true)
		}
		if params.Category != "" {
			db = db.Where("category = ?", params.Category)
		}
		if params.Featured != nil {
			db = db.Where("is_featured = ?", *params.Featured)
		}
		if params.Search != "" {
			db = db.Where("name_en LIKE ? OR name_ar LIKE ?", "%"+params.Search+"%", "%"+params.Search+"%")
		}
		return db
	}

	var products []models.Product
	result := applyFilters(s.db).
		Order("created_at DESC").
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&products)
	if result.Error != nil {
		return nil, Pagination{}, result.Error
	}

	var total int64
	if err := applyFilters(s.db.Model(&models.Product{})).Count(&total).Error; err != nil {
		return nil, Pagination{}, err
	}

	return products, newPagination(page, limit, total), nil
}

func (s *ProductService) GetProductByID(id uint) (*models.Product, error) {
	var product models.Product
	if err := s.db.First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.NewNotFoundError("Product not found")
		}
		return nil, err
	}
	return &product, nil
}

func (s *ProductService) CreateProduct(product *models.Product) error {
	return s.db.Create(product).Error
}

func (s *ProductService) UpdateProduct(id uint, updated *models.Product) (*models.Product, error) {
	product, err := s.GetProductByID(id)
	if err != nil {
		return nil, err
	}

	updated.ID = product.ID
	updated.CreatedAt = product.CreatedAt
	if err := s.db.Save(updated).Error; err != nil {
		return nil, err
	}
	return updated, nil
}

// SetProductImage stores the uploaded image URL on the product.
func (s *ProductService) SetProductImage(id uint, url string) error {
	result := s.db.Model(&models.Product{}).Where("id = ?", id).Update("image_url", url)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return utils.NewNotFoundError("Product not found")
	}
	return nil
}

func (s *ProductService) GetPlans(activeOnly bool) ([]models.SubscriptionPlan, error) {
	query := s.db.Order("monthly_price ASC")
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}

	var plans []models.SubscriptionPlan
	if err := query.Find(&plans).Error; err != nil {
		return nil, err
	}
	return plans, nil
}

func (s *ProductService) GetPlanByID(id uint) (*models.SubscriptionPlan, error) {
	var plan models.SubscriptionPlan
	if err := s.db.First(&plan, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.NewNotFoundError("Subscription plan not found")
		}
		return nil, err
	}
	return &plan, nil
}

func (s *ProductService) CreatePlan(plan *models.SubscriptionPlan) error {
	return s.db.Create(plan).Error
}

func (s *ProductService) UpdatePlan(id uint, updated *models.SubscriptionPlan) (*models.SubscriptionPlan, error) {
	plan, err := s.GetPlanByID(id)
	if err != nil {
		return nil, err
	}

	updated.ID = plan.ID
	updated.CreatedAt = plan.CreatedAt
	if err := s.db.Save(updated).Error; err != nil {
		return nil, err
	}
	return updated, nil
}
