package services

import (
	"errors"
	"time"

	"github.com/reachfood/reachfood-api/models"
	"github.com/reachfood/reachfood-api/utils"
	"gorm.io/gorm"
)

type CheckoutService struct {
	db *gorm.DB
}

func NewCheckoutService(db *gorm.DB) *CheckoutService {
	return &CheckoutService{db: db}
}

type UpsertSessionInput struct {
	CurrentStep  int            `json:"currentStep"`
	CartState    map[string]any `json:"cartState"`
	PersonalInfo map[string]any `json:"personalInfo"`
	CheckoutInfo map[string]any `json:"checkoutInfo"`
}

type StepBreakdown struct {
	ProductSelection int `json:"productSelection"`
	PersonalInfo     int `json:"personalInfo"`
	CheckoutInfo     int `json:"checkoutInfo"`
}

type AbandonmentStats struct {
	Total  int           `json:"total"`
	ByStep StepBreakdown `json:"byStep"`
}

// UpsertSession creates or refreshes the funnel record for a client-generated
// session id. Cart and form blobs are stored opaque, without validation.
func (s *CheckoutService) UpsertSession(sessionID string, input UpsertSessionInput) (*models.CheckoutSession, error) {
	cartState, err := toJSON(input.CartState)
	if err != nil {
		return nil, err
	}
	personalInfo, err := toJSON(input.PersonalInfo)
	if err != nil {
		return nil, err
	}
	checkoutInfo, err := toJSON(input.CheckoutInfo)
	if err != nil {
		return nil, err
	}

	now := time.Now()

	var session models.CheckoutSession
	err = s.db.Where("session_id = ?", sessionID).First(&session).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		session = models.CheckoutSession{
			SessionID:    sessionID,
			CurrentStep:  input.CurrentStep,
			CartState:    cartState,
			PersonalInfo: personalInfo,
			CheckoutInfo: checkoutInfo,
			LastActiveAt: now,
		}
		if err := s.db.Create(&session).Error; err != nil {
			return nil, err
		}
		return &session, nil
	}
	if err != nil {
		return nil, err
	}

	updates := map[string]any{
		"current_step":   input.CurrentStep,
		"cart_state":     cartState,
		"personal_info":  personalInfo,
		"checkout_info":  checkoutInfo,
		"last_active_at": now,
	}
	if err := s.db.Model(&session).Updates(updates).Error; err != nil {
		return nil, err
	}

	if err := s.db.Where("session_id = ?", sessionID).First(&session).Error; err != nil {
		return nil, err
	}
	return &session, nil
}

// MarkAbandoned is a strict update: an unknown session id is a client bug and
// surfaces as 404.
func (s *CheckoutService) MarkAbandoned(sessionID string, step int) error {
	result := s.db.Model(&models.CheckoutSession{}).
		Where("session_id = ?", sessionID).
		Updates(map[string]any{
			"abandoned_at": time.Now(),
			"current_step": step,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return utils.NewNotFoundError("Checkout session not found")
	}
	return nil
}

// CompleteSession links the session to the order created from it. It is fired
// from the post-checkout page and may race order persistence, so an unknown
// order number is a silent no-op rather than an error.
func (s *CheckoutService) CompleteSession(sessionID, orderNumber string) error {
	var order models.Order
	err := s.db.Where("order_number = ?", orderNumber).First(&order).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	result := s.db.Model(&models.CheckoutSession{}).
		Where("session_id = ?", sessionID).
		Updates(map[string]any{
			"completed_at": time.Now(),
			"order_id":     order.ID,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return utils.NewNotFoundError("Checkout session not found")
	}
	return nil
}

// GetAbandonmentStats buckets abandoned, never-completed sessions by funnel
// step. Steps outside the known three contribute to the total only.
func (s *CheckoutService) GetAbandonmentStats() (*AbandonmentStats, error) {
	var sessions []models.CheckoutSession
	err := s.db.
		Where("completed_at IS NULL AND abandoned_at IS NOT NULL").
		Find(&sessions).Error
	if err != nil {
		return nil, err
	}

	stats := AbandonmentStats{Total: len(sessions)}
	for _, session := range sessions {
		switch session.CurrentStep {
		case models.StepProductSelection:
			stats.ByStep.ProductSelection++
		case models.StepPersonalInfo:
			stats.ByStep.PersonalInfo++
		case models.StepCheckoutInfo:
			stats.ByStep.CheckoutInfo++
		}
	}
	return &stats, nil
}
