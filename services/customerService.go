package services

import (
	"errors"

	"github.com/reachfood/reachfood-api/models"
	"github.com/reachfood/reachfood-api/utils"
	"gorm.io/gorm"
)

type CustomerService struct {
	db *gorm.DB
}

func NewCustomerService(db *gorm.DB) *CustomerService {
	return &CustomerService{db: db}
}

func (s *CustomerService) GetCustomers(page, limit int, search string) ([]models.Customer, Pagination, error) {
	page, limit = normalizePaging(page, limit)

	applyFilters := func(db *gorm.DB) *gorm.DB {
		if search != "" {
			pattern := "%" + search + "%"
			db = db.Where("email LIKE ? OR first_name LIKE ? OR last_name LIKE ?", pattern, pattern, pattern)
		}
		return db
	}

	var customers []models.Customer
	result := applyFilters(s.db).
		Order("created_at DESC").
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&customers)
	if result.Error != nil {
		return nil, Pagination{}, result.Error
	}

	var total int64
	if err := applyFilters(s.db.Model(&models.Customer{})).Count(&total).Error; err != nil {
		return nil, Pagination{}, err
	}

	return customers, newPagination(page, limit, total), nil
}

func (s *CustomerService) GetCustomerByID(id uint) (*models.Customer, error) {
	var customer models.Customer
	err := s.db.
		Preload("Orders", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at DESC")
		}).
		Preload("Orders.Items").
		First(&customer, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.NewNotFoundError("Customer not found")
		}
		return nil, err
	}
	return &customer, nil
}
