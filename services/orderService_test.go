package services

import (
	"regexp"
	"testing"

	"github.com/reachfood/reachfood-api/models"
	"github.com/reachfood/reachfood-api/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var orderNumberPattern = regexp.MustCompile(`^RF-[A-Z0-9]+-[A-Z0-9]{4}$`)

func orderInput(email string, items ...CreateOrderItem) CreateOrderInput {
	return CreateOrderInput{
		Customer: CreateOrderCustomer{
			Email:     email,
			FirstName: "Sara",
			LastName:  "Hassan",
			Phone:     "+971500000000",
			City:      "Dubai",
			Country:   "AE",
		},
		OrderType: models.OrderTypeOneTime,
		Items:     items,
	}
}

func TestCreateOrderPricesFromCatalog(t *testing.T) {
	db := newTestDB(t)
	svc := NewOrderService(db)

	product := createTestProduct(t, db, "Re-Collagen", 12.00)

	order, err := svc.CreateOrder(orderInput("sara@example.com", CreateOrderItem{
		ProductID: &product.ID,
		Quantity:  2,
	}))
	require.NoError(t, err)

	assert.Regexp(t, orderNumberPattern, order.OrderNumber)
	assert.Equal(t, 24.00, order.Subtotal)
	assert.Equal(t, 0.0, order.ShippingCost)
	assert.Equal(t, 0.0, order.Tax)
	assert.Equal(t, 24.00, order.Total)
	assert.Equal(t, "cod", order.PaymentMethod)
	assert.Equal(t, models.OrderStatusPending, order.Status)

	require.Len(t, order.Items, 1)
	assert.Equal(t, 12.00, order.Items[0].UnitPrice)
	assert.Equal(t, 24.00, order.Items[0].TotalPrice)
	require.NotNil(t, order.Items[0].Product)
	assert.Equal(t, "Re-Collagen", order.Items[0].Product.NameEn)

	require.Len(t, order.Tracking, 1)
	assert.Equal(t, models.DeliveryStatusPending, order.Tracking[0].Status)
	assert.Equal(t, initialTrackingNote, order.Tracking[0].Notes)

	assert.Equal(t, "sara@example.com", order.Customer.Email)
	assert.True(t, order.Customer.IsGuest)
}

func TestCreateOrderUsesPlanMonthlyPrice(t *testing.T) {
	db := newTestDB(t)
	svc := NewOrderService(db)

	plan := createTestPlan(t, db, "Adventure Explorer", 49.99)

	input := orderInput("sara@example.com", CreateOrderItem{
		SubscriptionPlanID: &plan.ID,
		Quantity:           1,
	})
	input.OrderType = models.OrderTypeSubscription

	order, err := svc.CreateOrder(input)
	require.NoError(t, err)

	assert.Equal(t, 49.99, order.Subtotal)
	require.Len(t, order.Items, 1)
	require.NotNil(t, order.Items[0].SubscriptionPlan)
	assert.Equal(t, "Adventure Explorer", order.Items[0].SubscriptionPlan.NameEn)
}

func TestCreateOrderUpsertsCustomerByEmail(t *testing.T) {
	db := newTestDB(t)
	svc := NewOrderService(db)

	product := createTestProduct(t, db, "Re-Protein", 8.00)
	item := CreateOrderItem{ProductID: &product.ID, Quantity: 1}

	_, err := svc.CreateOrder(orderInput("repeat@example.com", item))
	require.NoError(t, err)

	second := orderInput("repeat@example.com", item)
	second.Customer.FirstName = "Layla"
	second.Customer.City = "Abu Dhabi"
	_, err = svc.CreateOrder(second)
	require.NoError(t, err)

	var customers []models.Customer
	require.NoError(t, db.Where("email = ?", "repeat@example.com").Find(&customers).Error)
	require.Len(t, customers, 1, "repeat checkout must not create a duplicate customer")
	assert.Equal(t, "Layla", customers[0].FirstName)
	assert.Equal(t, "Abu Dhabi", customers[0].City)
}

func TestCreateOrderUnknownProduct(t *testing.T) {
	db := newTestDB(t)
	svc := NewOrderService(db)

	missing := uint(9999)
	_, err := svc.CreateOrder(orderInput("sara@example.com", CreateOrderItem{
		ProductID: &missing,
		Quantity:  1,
	}))

	var appErr *utils.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 404, appErr.StatusCode)

	// The transaction must have rolled the customer upsert back too.
	var count int64
	db.Model(&models.Customer{}).Count(&count)
	assert.Zero(t, count)
}

func TestCreateOrderItemMustReferenceExactlyOneCatalogEntry(t *testing.T) {
	db := newTestDB(t)
	svc := NewOrderService(db)

	product := createTestProduct(t, db, "Re-Collagen", 12.00)
	plan := createTestPlan(t, db, "Adventure Explorer", 49.99)

	var appErr *utils.AppError

	_, err := svc.CreateOrder(orderInput("sara@example.com", CreateOrderItem{Quantity: 1}))
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 400, appErr.StatusCode)

	_, err = svc.CreateOrder(orderInput("sara@example.com", CreateOrderItem{
		ProductID:          &product.ID,
		SubscriptionPlanID: &plan.ID,
		Quantity:           1,
	}))
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 400, appErr.StatusCode)
}

func TestGetOrderNotFound(t *testing.T) {
	db := newTestDB(t)
	svc := NewOrderService(db)

	var appErr *utils.AppError

	_, err := svc.GetOrderByID(42)
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 404, appErr.StatusCode)

	_, err = svc.GetOrderByNumber("RF-UNKNOWN-0000")
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 404, appErr.StatusCode)
}

func TestGetOrderByNumber(t *testing.T) {
	db := newTestDB(t)
	svc := NewOrderService(db)

	product := createTestProduct(t, db, "Re-Protein", 8.00)
	created, err := svc.CreateOrder(orderInput("sara@example.com", CreateOrderItem{
		ProductID: &product.ID,
		Quantity:  1,
	}))
	require.NoError(t, err)

	found, err := svc.GetOrderByNumber(created.OrderNumber)
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)
	assert.Equal(t, "sara@example.com", found.Customer.Email)
}

func TestUpdateOrderStatusDelivered(t *testing.T) {
	db := newTestDB(t)
	svc := NewOrderService(db)

	product := createTestProduct(t, db, "Re-Collagen", 12.00)
	order, err := svc.CreateOrder(orderInput("sara@example.com", CreateOrderItem{
		ProductID: &product.ID,
		Quantity:  1,
	}))
	require.NoError(t, err)

	updated, err := svc.UpdateOrderStatus(order.ID, models.OrderStatusDelivered, "Left at the door")
	require.NoError(t, err)

	assert.Equal(t, models.OrderStatusDelivered, updated.Status)
	require.NotNil(t, updated.DeliveredAt)
	assert.Nil(t, updated.PaidAt)
	assert.Nil(t, updated.ShippedAt)

	// Initial row plus exactly one new delivered row, newest first.
	require.Len(t, updated.Tracking, 2)
	assert.Equal(t, models.DeliveryStatusDelivered, updated.Tracking[0].Status)
	assert.Equal(t, "Left at the door", updated.Tracking[0].Notes)
}

func TestUpdateOrderStatusDeliveryMapping(t *testing.T) {
	db := newTestDB(t)
	svc := NewOrderService(db)

	product := createTestProduct(t, db, "Re-Collagen", 12.00)

	cases := []struct {
		orderStatus    string
		trackingStatus string
	}{
		{models.OrderStatusConfirmed, models.DeliveryStatusPending},
		{models.OrderStatusShipped, models.DeliveryStatusInTransit},
		{models.OrderStatusCancelled, models.DeliveryStatusFailed},
		{"weighed", models.DeliveryStatusPending},
	}

	for _, tc := range cases {
		order, err := svc.CreateOrder(orderInput("sara@example.com", CreateOrderItem{
			ProductID: &product.ID,
			Quantity:  1,
		}))
		require.NoError(t, err)

		updated, err := svc.UpdateOrderStatus(order.ID, tc.orderStatus, "")
		require.NoError(t, err)
		require.Len(t, updated.Tracking, 2)
		assert.Equal(t, tc.trackingStatus, updated.Tracking[0].Status, "order status %q", tc.orderStatus)
	}
}

func TestUpdateOrderStatusNotFound(t *testing.T) {
	db := newTestDB(t)
	svc := NewOrderService(db)

	var appErr *utils.AppError
	_, err := svc.UpdateOrderStatus(42, models.OrderStatusShipped, "")
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 404, appErr.StatusCode)
}

func TestAddTrackingUpdateLeavesOrderStatusAlone(t *testing.T) {
	db := newTestDB(t)
	svc := NewOrderService(db)

	product := createTestProduct(t, db, "Re-Collagen", 12.00)
	order, err := svc.CreateOrder(orderInput("sara@example.com", CreateOrderItem{
		ProductID: &product.ID,
		Quantity:  1,
	}))
	require.NoError(t, err)

	tracking, err := svc.AddTrackingUpdate(order.ID, models.DeliveryStatusInTransit, "Sorting facility", "Scanned")
	require.NoError(t, err)
	assert.Equal(t, models.DeliveryStatusInTransit, tracking.Status)
	assert.Equal(t, "Sorting facility", tracking.Location)

	reloaded, err := svc.GetOrderByID(order.ID)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusPending, reloaded.Status)
	assert.Len(t, reloaded.Tracking, 2)

	var appErr *utils.AppError
	_, err = svc.AddTrackingUpdate(9999, models.DeliveryStatusInTransit, "", "")
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 404, appErr.StatusCode)
}

func TestGetOrdersPaginationAndFilters(t *testing.T) {
	db := newTestDB(t)
	svc := NewOrderService(db)

	product := createTestProduct(t, db, "Re-Protein", 8.00)
	item := CreateOrderItem{ProductID: &product.ID, Quantity: 1}

	for i := 0; i < 3; i++ {
		_, err := svc.CreateOrder(orderInput("sara@example.com", item))
		require.NoError(t, err)
	}
	cancelled, err := svc.CreateOrder(orderInput("sara@example.com", item))
	require.NoError(t, err)
	_, err = svc.UpdateOrderStatus(cancelled.ID, models.OrderStatusCancelled, "")
	require.NoError(t, err)

	orders, pagination, err := svc.GetOrders(OrderListParams{Page: 1, Limit: 3})
	require.NoError(t, err)
	assert.Len(t, orders, 3)
	assert.Equal(t, int64(4), pagination.Total)
	assert.Equal(t, 2, pagination.TotalPages)

	pending, _, err := svc.GetOrders(OrderListParams{Status: models.OrderStatusPending})
	require.NoError(t, err)
	assert.Len(t, pending, 3)
}

func TestGetOrderStats(t *testing.T) {
	db := newTestDB(t)
	svc := NewOrderService(db)

	product := createTestProduct(t, db, "Re-Collagen", 12.00)
	item := CreateOrderItem{ProductID: &product.ID, Quantity: 1}

	for i := 0; i < 2; i++ {
		_, err := svc.CreateOrder(orderInput("sara@example.com", item))
		require.NoError(t, err)
	}
	cancelled, err := svc.CreateOrder(orderInput("sara@example.com", item))
	require.NoError(t, err)
	_, err = svc.UpdateOrderStatus(cancelled.ID, models.OrderStatusCancelled, "")
	require.NoError(t, err)

	stats, err := svc.GetOrderStats()
	require.NoError(t, err)

	assert.Equal(t, int64(3), stats.Orders.Today)
	assert.Equal(t, int64(3), stats.Orders.Total)
	assert.Equal(t, int64(2), stats.Orders.Pending)
	assert.Equal(t, 24.00, stats.Revenue.Today, "cancelled orders are excluded from revenue")
	assert.Equal(t, 24.00, stats.Revenue.Month)
	assert.Equal(t, int64(2), stats.ByStatus[models.OrderStatusPending])
	assert.Equal(t, int64(1), stats.ByStatus[models.OrderStatusCancelled])
}

func TestGenerateOrderNumberUnique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		number := generateOrderNumber()
		assert.Regexp(t, orderNumberPattern, number)
		assert.False(t, seen[number], "duplicate order number %s", number)
		seen[number] = true
	}
}
