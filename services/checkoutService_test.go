package services

import (
	"testing"

	"github.com/reachfood/reachfood-api/models"
	"github.com/reachfood/reachfood-api/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpsertSessionCreatesThenUpdates(t *testing.T) {
	db := newTestDB(t)
	svc := NewCheckoutService(db)

	session, err := svc.UpsertSession("sess-1", UpsertSessionInput{
		CurrentStep: models.StepProductSelection,
		CartState:   map[string]any{"items": []any{"re-collagen"}},
	})
	require.NoError(t, err)
	assert.Equal(t, "sess-1", session.SessionID)
	assert.Equal(t, models.StepProductSelection, session.CurrentStep)
	assert.False(t, session.LastActiveAt.IsZero())
	assert.Nil(t, session.AbandonedAt)
	assert.Nil(t, session.CompletedAt)

	firstActive := session.LastActiveAt

	session, err = svc.UpsertSession("sess-1", UpsertSessionInput{
		CurrentStep:  models.StepPersonalInfo,
		CartState:    map[string]any{"items": []any{"re-collagen", "re-protein"}},
		PersonalInfo: map[string]any{"firstName": "Sara"},
	})
	require.NoError(t, err)
	assert.Equal(t, models.StepPersonalInfo, session.CurrentStep)
	assert.False(t, session.LastActiveAt.Before(firstActive))

	var count int64
	db.Model(&models.CheckoutSession{}).Count(&count)
	assert.Equal(t, int64(1), count, "upsert must not duplicate the session row")
}

func TestMarkAbandoned(t *testing.T) {
	db := newTestDB(t)
	svc := NewCheckoutService(db)

	_, err := svc.UpsertSession("sess-1", UpsertSessionInput{CurrentStep: models.StepPersonalInfo})
	require.NoError(t, err)

	require.NoError(t, svc.MarkAbandoned("sess-1", models.StepCheckoutInfo))

	var session models.CheckoutSession
	require.NoError(t, db.Where("session_id = ?", "sess-1").First(&session).Error)
	assert.NotNil(t, session.AbandonedAt)
	assert.Equal(t, models.StepCheckoutInfo, session.CurrentStep)
}

func TestMarkAbandonedUnknownSession(t *testing.T) {
	db := newTestDB(t)
	svc := NewCheckoutService(db)

	var appErr *utils.AppError
	err := svc.MarkAbandoned("missing", models.StepPersonalInfo)
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 404, appErr.StatusCode)
}

func TestCompleteSessionLinksOrder(t *testing.T) {
	db := newTestDB(t)
	checkout := NewCheckoutService(db)
	orders := NewOrderService(db)

	product := createTestProduct(t, db, "Re-Collagen", 12.00)
	order, err := orders.CreateOrder(orderInput("sara@example.com", CreateOrderItem{
		ProductID: &product.ID,
		Quantity:  1,
	}))
	require.NoError(t, err)

	_, err = checkout.UpsertSession("sess-1", UpsertSessionInput{CurrentStep: models.StepCheckoutInfo})
	require.NoError(t, err)

	require.NoError(t, checkout.CompleteSession("sess-1", order.OrderNumber))

	var session models.CheckoutSession
	require.NoError(t, db.Where("session_id = ?", "sess-1").First(&session).Error)
	require.NotNil(t, session.CompletedAt)
	require.NotNil(t, session.OrderID)
	assert.Equal(t, order.ID, *session.OrderID)
}

func TestCompleteSessionUnknownOrderIsNoOp(t *testing.T) {
	db := newTestDB(t)
	svc := NewCheckoutService(db)

	_, err := svc.UpsertSession("sess-1", UpsertSessionInput{CurrentStep: models.StepCheckoutInfo})
	require.NoError(t, err)

	require.NoError(t, svc.CompleteSession("sess-1", "RF-UNKNOWN-0000"))

	var session models.CheckoutSession
	require.NoError(t, db.Where("session_id = ?", "sess-1").First(&session).Error)
	assert.Nil(t, session.CompletedAt)
	assert.Nil(t, session.OrderID)
}

func TestGetAbandonmentStats(t *testing.T) {
	db := newTestDB(t)
	svc := NewCheckoutService(db)

	steps := []int{0, 0, 1, 2, 2, 2}
	for i, step := range steps {
		sessionID := string(rune('a' + i))
		_, err := svc.UpsertSession(sessionID, UpsertSessionInput{CurrentStep: step})
		require.NoError(t, err)
		require.NoError(t, svc.MarkAbandoned(sessionID, step))
	}

	// Completed sessions never count as abandoned.
	orders := NewOrderService(db)
	product := createTestProduct(t, db, "Re-Protein", 8.00)
	order, err := orders.CreateOrder(orderInput("sara@example.com", CreateOrderItem{
		ProductID: &product.ID,
		Quantity:  1,
	}))
	require.NoError(t, err)
	_, err = svc.UpsertSession("completed", UpsertSessionInput{CurrentStep: models.StepCheckoutInfo})
	require.NoError(t, err)
	require.NoError(t, svc.MarkAbandoned("completed", models.StepCheckoutInfo))
	require.NoError(t, svc.CompleteSession("completed", order.OrderNumber))

	stats, err := svc.GetAbandonmentStats()
	require.NoError(t, err)
	assert.Equal(t, 6, stats.Total)
	assert.Equal(t, 2, stats.ByStep.ProductSelection)
	assert.Equal(t, 1, stats.ByStep.PersonalInfo)
	assert.Equal(t, 3, stats.ByStep.CheckoutInfo)
}

func TestGetAbandonmentStatsUnknownStep(t *testing.T) {
	db := newTestDB(t)
	svc := NewCheckoutService(db)

	_, err := svc.UpsertSession("odd", UpsertSessionInput{CurrentStep: 7})
	require.NoError(t, err)
	require.NoError(t, svc.MarkAbandoned("odd", 7))

	stats, err := svc.GetAbandonmentStats()
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Total)
	assert.Zero(t, stats.ByStep.ProductSelection)
	assert.Zero(t, stats.ByStep.PersonalInfo)
	assert.Zero(t, stats.ByStep.CheckoutInfo)
}
