package utils

import (
	"fmt"
	"os"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/reachfood/reachfood-api/models"
)

// NotifyOrderCreated posts a short summary of a new order to the ops webhook
// configured via ORDER_WEBHOOK_URL. Best-effort: callers log the error and
// carry on.
func NotifyOrderCreated(order *models.Order) error {
	webhookURL := os.Getenv("ORDER_WEBHOOK_URL")
	if webhookURL == "" {
		return nil
	}

	payload := map[string]any{
		"event":         "order.created",
		"orderNumber":   order.OrderNumber,
		"orderType":     order.OrderType,
		"total":         order.Total,
		"paymentMethod": order.PaymentMethod,
		"customerEmail": order.Customer.Email,
		"itemCount":     len(order.Items),
		"createdAt":     order.CreatedAt,
	}

	resp, err := resty.New().SetTimeout(10 * time.Second).
		R().
		SetHeader("Content-Type", "application/json").
		SetBody(payload).
		Post(webhookURL)

	if err != nil {
		return err
	}

	if resp.IsError() {
		return fmt.Errorf("order webhook returned status %d: %s", resp.StatusCode(), string(resp.Body()))
	}

	return nil
}
