package services

import (
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/reachfood/reachfood-api/models"
	"github.com/reachfood/reachfood-api/utils"
	"golang.org/x/sync/errgroup"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Shipping is free and no tax is collected for now.
const (
	shippingCost = 0.0
	taxAmount    = 0.0
)

const initialTrackingNote = "Your order has been received. Payment: Cash on Delivery"

// Order status to delivery tracking status. Unknown statuses fall back to pending.
var deliveryStatusMap = map[string]string{
	models.OrderStatusPending:    models.DeliveryStatusPending,
	models.OrderStatusConfirmed:  models.DeliveryStatusPending,
	models.OrderStatusProcessing: models.DeliveryStatusPending,
	models.OrderStatusShipped:    models.DeliveryStatusInTransit,
	models.OrderStatusDelivered:  models.DeliveryStatusDelivered,
	models.OrderStatusCancelled:  models.DeliveryStatusFailed,
}

var orderSortColumns = map[string]string{
	"createdAt":   "created_at",
	"orderNumber": "order_number",
	"status":      "status",
	"total":       "total",
}

type OrderService struct {
	db *gorm.DB
}

func NewOrderService(db *gorm.DB) *OrderService {
	return &OrderService{db: db}
}

type CreateOrderCustomer struct {
	Email     string `json:"email" binding:"required,email"`
	FirstName string `json:"firstName" binding:"required"`
	LastName  string `json:"lastName" binding:"required"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
	City      string `json:"city"`
	Country   string `json:"country"`
	Gender    string `json:"gender"`
}

type CreateOrderItem struct {
	ProductID          *uint `json:"productId"`
	SubscriptionPlanID *uint `json:"subscriptionPlanId"`
	Quantity           int   `json:"quantity" binding:"required,min=1"`
}

type CreateOrderInput struct {
	Customer           CreateOrderCustomer `json:"customer" binding:"required"`
	OrderType          string              `json:"orderType" binding:"required,oneof=one-time subscription"`
	Items              []CreateOrderItem   `json:"items" binding:"required,min=1,dive"`
	DietaryPreferences []string            `json:"dietaryPreferences"`
	SpecialNotes       string              `json:"specialNotes"`
	DeliveryFrequency  string              `json:"deliveryFrequency"`
	ShippingAddress    map[string]any      `json:"shippingAddress"`
	PaymentMethod      string              `json:"paymentMethod" binding:"omitempty,oneof=cod"`
}

type OrderListParams struct {
	Page       int
	Limit      int
	SortBy     string
	SortOrder  string
	Status     string
	OrderType  string
	CustomerID uint
}

type OrderCounts struct {
	Today   int64 `json:"today"`
	Week    int64 `json:"week"`
	Month   int64 `json:"month"`
	Total   int64 `json:"total"`
	Pending int64 `json:"pending"`
}

type RevenueTotals struct {
	Today float64 `json:"today"`
	Month float64 `json:"month"`
}

type OrderStats struct {
	Orders   OrderCounts      `json:"orders"`
	Revenue  RevenueTotals    `json:"revenue"`
	ByStatus map[string]int64 `json:"byStatus"`
}

const base36Alphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// generateOrderNumber builds RF-<base36 ms timestamp>-<4 random base36 chars>.
// Uniqueness is not pre-checked; the unique index on order_number is the backstop.
func generateOrderNumber() string {
	timestamp := strings.ToUpper(strconv.FormatInt(time.Now().UnixMilli(), 36))

	buf := make([]byte, 4)
	rand.Read(buf)
	for i := range buf {
		buf[i] = base36Alphabet[int(buf[i])%len(base36Alphabet)]
	}

	return fmt.Sprintf("RF-%s-%s", timestamp, string(buf))
}

func toJSON(v any) (datatypes.JSON, error) {
	if v == nil {
		return nil, nil
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	// Nil maps and slices marshal to the JSON literal null; store SQL NULL instead.
	if string(raw) == "null" {
		return nil, nil
	}
	return datatypes.JSON(raw), nil
}

// CreateOrder turns a cart of catalog references into a priced, persisted
// order. Unit prices come from the catalog at order time, never from the
// client. Customer upsert, order, items and the initial tracking row are
// written in one transaction.
func (s *OrderService) CreateOrder(input CreateOrderInput) (*models.Order, error) {
	dietaryPrefs := input.DietaryPreferences
	if dietaryPrefs == nil {
		dietaryPrefs = []string{}
	}
	dietaryJSON, err := toJSON(dietaryPrefs)
	if err != nil {
		return nil, err
	}
	shippingJSON, err := toJSON(input.ShippingAddress)
	if err != nil {
		return nil, err
	}

	var orderID uint
	err = s.db.Transaction(func(tx *gorm.DB) error {
		customer, err := upsertCustomer(tx, input.Customer)
		if err != nil {
			return err
		}

		var subtotal float64
		orderItems := make([]models.OrderItem, 0, len(input.Items))
		for _, item := range input.Items {
			if (item.ProductID == nil) == (item.SubscriptionPlanID == nil) {
				return utils.NewBadRequestError("Order item must reference exactly one of a product or a subscription plan")
			}

			var unitPrice float64
			if item.ProductID != nil {
				var product models.Product
				if err := tx.First(&product, *item.ProductID).Error; err != nil {
					if errors.Is(err, gorm.ErrRecordNotFound) {
						return utils.NewNotFoundError(fmt.Sprintf("Product %d not found", *item.ProductID))
					}
					return err
				}
				unitPrice = product.Price
			} else {
				var plan models.SubscriptionPlan
				if err := tx.First(&plan, *item.SubscriptionPlanID).Error; err != nil {
					if errors.Is(err, gorm.ErrRecordNotFound) {
						return utils.NewNotFoundError(fmt.Sprintf("Subscription plan %d not found", *item.SubscriptionPlanID))
					}
					return err
				}
				unitPrice = plan.MonthlyPrice
			}

			totalPrice := unitPrice * float64(item.Quantity)
			subtotal += totalPrice
			orderItems = append(orderItems, models.OrderItem{
				ProductID:          item.ProductID,
				SubscriptionPlanID: item.SubscriptionPlanID,
				Quantity:           item.Quantity,
				UnitPrice:          unitPrice,
				TotalPrice:         totalPrice,
			})
		}

		order := models.Order{
			OrderNumber:     generateOrderNumber(),
			CustomerID:      customer.ID,
			OrderType:       input.OrderType,
			Subtotal:        subtotal,
			ShippingCost:    shippingCost,
			Tax:             taxAmount,
			Total:           subtotal + shippingCost + taxAmount,
			PaymentMethod:   "cod",
			PaymentStatus:   "pending",
			Status:          models.OrderStatusPending,
			ShippingAddress: shippingJSON,
			DietaryPrefs:    dietaryJSON,
			SpecialNotes:    input.SpecialNotes,
			DeliveryFreq:    input.DeliveryFrequency,
			Items:           orderItems,
			Tracking: []models.DeliveryTracking{{
				Status:    models.DeliveryStatusPending,
				Notes:     initialTrackingNote,
				TrackedAt: time.Now(),
			}},
		}

		if err := tx.Create(&order).Error; err != nil {
			return err
		}
		orderID = order.ID
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.GetOrderByID(orderID)
}

// upsertCustomer finds a customer by email and overwrites the contact fields
// with the latest submission (last-write-wins), or creates a guest record.
func upsertCustomer(tx *gorm.DB, info CreateOrderCustomer) (*models.Customer, error) {
	var customer models.Customer
	err := tx.Where("email = ?", info.Email).First(&customer).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		customer = models.Customer{
			Email:     info.Email,
			FirstName: info.FirstName,
			LastName:  info.LastName,
			Phone:     info.Phone,
			Address:   info.Address,
			City:      info.City,
			Country:   info.Country,
			Gender:    info.Gender,
			IsGuest:   true,
		}
		if err := tx.Create(&customer).Error; err != nil {
			return nil, err
		}
		return &customer, nil
	}
	if err != nil {
		return nil, err
	}

	updates := map[string]any{
		"first_name": info.FirstName,
		"last_name":  info.LastName,
		"phone":      info.Phone,
		"address":    info.Address,
		"city":       info.City,
		"country":    info.Country,
		"gender":     info.Gender,
	}
	if err := tx.Model(&customer).Updates(updates).Error; err != nil {
		return nil, err
	}
	return &customer, nil
}

func (s *OrderService) orderQuery() *gorm.DB {
	return s.db.
		Preload("Customer").
		Preload("Items").
		Preload("Items.Product").
		Preload("Items.SubscriptionPlan").
		Preload("Tracking", func(db *gorm.DB) *gorm.DB {
			return db.Order("tracked_at DESC")
		})
}

func (s *OrderService) GetOrderByID(id uint) (*models.Order, error) {
	var order models.Order
	if err := s.orderQuery().First(&order, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.NewNotFoundError("Order not found")
		}
		return nil, err
	}
	return &order, nil
}

func (s *OrderService) GetOrderByNumber(orderNumber string) (*models.Order, error) {
	var order models.Order
	if err := s.orderQuery().Where("order_number = ?", orderNumber).First(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.NewNotFoundError("Order not found")
		}
		return nil, err
	}
	return &order, nil
}

// GetOrders returns one page of orders plus pagination metadata. The page and
// the total count are fetched in parallel.
func (s *OrderService) GetOrders(params OrderListParams) ([]models.Order, Pagination, error) {
	page, limit := normalizePaging(params.Page, params.Limit)

	column, ok := orderSortColumns[params.SortBy]
	if !ok {
		column = "created_at"
	}
	direction := params.SortOrder
	if direction != "asc" && direction != "desc" {
		direction = "desc"
	}

	applyFilters := func(db *gorm.DB) *gorm.DB {
		if params.Status != "" {
			db = db.Where("status = ?", params.Status)
		}
		if params.OrderType != "" {
			db = db.Where("order_type = ?", params.OrderType)
		}
		if params.CustomerID != 0 {
			db = db.Where("customer_id = ?", params.CustomerID)
		}
		return db
	}

	var orders []models.Order
	var total int64

	g := new(errgroup.Group)
	g.Go(func() error {
		query := applyFilters(s.db.
			Preload("Customer").
			Preload("Items").
			Preload("Items.Product").
			Preload("Items.SubscriptionPlan"))
		return query.
			Order(column + " " + direction).
			Limit(limit).
			Offset((page - 1) * limit).
			Find(&orders).Error
	})
	g.Go(func() error {
		return applyFilters(s.db.Model(&models.Order{})).Count(&total).Error
	})
	if err := g.Wait(); err != nil {
		return nil, Pagination{}, err
	}

	return orders, newPagination(page, limit, total), nil
}

// UpdateOrderStatus sets the order status, stamps paidAt/shippedAt/deliveredAt
// one-way for the matching statuses, and appends a tracking row derived from
// the new status. The two writes are independent and run in parallel.
func (s *OrderService) UpdateOrderStatus(id uint, status, notes string) (*models.Order, error) {
	var existing models.Order
	if err := s.db.First(&existing, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.NewNotFoundError("Order not found")
		}
		return nil, err
	}

	now := time.Now()
	updates := map[string]any{"status": status}
	switch status {
	case models.OrderStatusPaid:
		updates["paid_at"] = now
	case models.OrderStatusShipped:
		updates["shipped_at"] = now
	case models.OrderStatusDelivered:
		updates["delivered_at"] = now
	}

	deliveryStatus, ok := deliveryStatusMap[status]
	if !ok {
		deliveryStatus = models.DeliveryStatusPending
	}
	tracking := models.DeliveryTracking{
		OrderID:   id,
		Status:    deliveryStatus,
		Notes:     notes,
		TrackedAt: now,
	}

	g := new(errgroup.Group)
	g.Go(func() error {
		return s.db.Model(&models.Order{}).Where("id = ?", id).Updates(updates).Error
	})
	g.Go(func() error {
		return s.db.Create(&tracking).Error
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return s.GetOrderByID(id)
}

// AddTrackingUpdate appends a tracking row without touching the order status.
func (s *OrderService) AddTrackingUpdate(orderID uint, status, location, notes string) (*models.DeliveryTracking, error) {
	var existing models.Order
	if err := s.db.First(&existing, orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.NewNotFoundError("Order not found")
		}
		return nil, err
	}

	tracking := models.DeliveryTracking{
		OrderID:   orderID,
		Status:    status,
		Location:  location,
		Notes:     notes,
		TrackedAt: time.Now(),
	}
	if err := s.db.Create(&tracking).Error; err != nil {
		return nil, err
	}
	return &tracking, nil
}

// GetOrderStats aggregates order counts and revenue over server-local windows:
// midnight today, Sunday week start, first of the month. Revenue excludes
// cancelled orders. All aggregates are independent reads issued in parallel.
func (s *OrderService) GetOrderStats() (*OrderStats, error) {
	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	startOfWeek := today.AddDate(0, 0, -int(today.Weekday()))
	startOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	stats := OrderStats{ByStatus: map[string]int64{}}

	countSince := func(since time.Time, dest *int64) func() error {
		return func() error {
			return s.db.Model(&models.Order{}).Where("created_at >= ?", since).Count(dest).Error
		}
	}
	revenueSince := func(since time.Time, dest *float64) func() error {
		return func() error {
			return s.db.Model(&models.Order{}).
				Select("COALESCE(SUM(total), 0)").
				Where("created_at >= ? AND status <> ?", since, models.OrderStatusCancelled).
				Scan(dest).Error
		}
	}

	type statusCount struct {
		Status string
		Count  int64
	}
	var statusCounts []statusCount

	g := new(errgroup.Group)
	g.Go(countSince(today, &stats.Orders.Today))
	g.Go(countSince(startOfWeek, &stats.Orders.Week))
	g.Go(countSince(startOfMonth, &stats.Orders.Month))
	g.Go(func() error {
		return s.db.Model(&models.Order{}).Count(&stats.Orders.Total).Error
	})
	g.Go(func() error {
		return s.db.Model(&models.Order{}).
			Where("status = ?", models.OrderStatusPending).
			Count(&stats.Orders.Pending).Error
	})
	g.Go(revenueSince(today, &stats.Revenue.Today))
	g.Go(revenueSince(startOfMonth, &stats.Revenue.Month))
	g.Go(func() error {
		return s.db.Model(&models.Order{}).
			Select("status, COUNT(*) AS count").
			Group("status").
			Scan(&statusCounts).Error
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for _, row := range statusCounts {
		stats.ByStatus[row.Status] = row.Count
	}
	return &stats, nil
}
