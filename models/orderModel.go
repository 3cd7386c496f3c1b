package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Order statuses.
const (
	OrderStatusPending    = "pending"
	OrderStatusConfirmed  = "confirmed"
	OrderStatusProcessing = "processing"
	OrderStatusPaid       = "paid"
	OrderStatusShipped    = "shipped"
	OrderStatusDelivered  = "delivered"
	OrderStatusCancelled  = "cancelled"
)

// Delivery tracking statuses.
const (
	DeliveryStatusPending   = "pending"
	DeliveryStatusInTransit = "in_transit"
	DeliveryStatusDelivered = "delivered"
	DeliveryStatusFailed    = "failed"
)

// Order types.
const (
	OrderTypeOneTime      = "one-time"
	OrderTypeSubscription = "subscription"
)

type Order struct {
	gorm.Model
	OrderNumber     string             `json:"orderNumber" gorm:"uniqueIndex;size:32"`
	CustomerID      uint               `json:"customerId"`
	Customer        Customer           `json:"customer,omitempty"`
	OrderType       string             `json:"orderType"`
	Subtotal        float64            `json:"subtotal"`
	ShippingCost    float64            `json:"shippingCost"`
	Tax             float64            `json:"tax"`
	Total           float64            `json:"total"`
	PaymentMethod   string             `json:"paymentMethod"`
	PaymentStatus   string             `json:"paymentStatus"`
	Status          string             `json:"status"`
	ShippingAddress datatypes.JSON     `json:"shippingAddress"`
	DietaryPrefs    datatypes.JSON     `json:"dietaryPrefs"`
	SpecialNotes    string             `json:"specialNotes"`
	DeliveryFreq    string             `json:"deliveryFreq"`
	PaidAt          *time.Time         `json:"paidAt"`
	ShippedAt       *time.Time         `json:"shippedAt"`
	DeliveredAt     *time.Time         `json:"deliveredAt"`
	Items           []OrderItem        `json:"items" gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	Tracking        []DeliveryTracking `json:"tracking" gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// OrderItem references exactly one of Product or SubscriptionPlan.
type OrderItem struct {
	gorm.Model
	OrderID            uint              `json:"orderId"`
	ProductID          *uint             `json:"productId"`
	Product            *Product          `json:"product,omitempty"`
	SubscriptionPlanID *uint             `json:"subscriptionPlanId"`
	SubscriptionPlan   *SubscriptionPlan `json:"subscriptionPlan,omitempty"`
	Quantity           int               `json:"quantity"`
	UnitPrice          float64           `json:"unitPrice"`
	TotalPrice         float64           `json:"totalPrice"`
}

// DeliveryTracking rows are append-only; display order is trackedAt descending.
type DeliveryTracking struct {
	gorm.Model
	OrderID   uint      `json:"orderId"`
	Status    string    `json:"status"`
	Location  string    `json:"location"`
	Notes     string    `json:"notes"`
	TrackedAt time.Time `json:"trackedAt"`
}
