package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Checkout funnel steps.
const (
	StepProductSelection = 0
	StepPersonalInfo     = 1
	StepCheckoutInfo     = 2
)

// CheckoutSession records funnel progress for a client-generated session id.
// Cart and form blobs are stored opaque, without server-side interpretation.
type CheckoutSession struct {
	gorm.Model
	SessionID    string         `json:"sessionId" gorm:"uniqueIndex;size:191"`
	CurrentStep  int            `json:"currentStep"`
	CartState    datatypes.JSON `json:"cartState"`
	PersonalInfo datatypes.JSON `json:"personalInfo"`
	CheckoutInfo datatypes.JSON `json:"checkoutInfo"`
	LastActiveAt time.Time      `json:"lastActiveAt"`
	AbandonedAt  *time.Time     `json:"abandonedAt"`
	CompletedAt  *time.Time     `json:"completedAt"`
	OrderID      *uint          `json:"orderId"`
}
