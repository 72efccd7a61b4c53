// internal/services/checkout_service_test.go
package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/secondnest/secondhand-backend/internal/config"
)

func testConfig() *config.Config {
	return &config.Config{
		Payment: config.PaymentConfig{Currency: "usd"},
	}
}

func TestCreateIntentRejectsInvalidPrice(t *testing.T) {
	svc := NewCheckoutService(nil, testConfig())

	_, err := svc.CreateIntent(&CreateIntentRequest{Price: 0})
	assert.Error(t, err)

	_, err = svc.CreateIntent(&CreateIntentRequest{Price: -5})
	assert.Error(t, err)
}

func TestFinalizeSaleRejectsInvalidRequest(t *testing.T) {
	svc := NewCheckoutService(nil, testConfig())

	cases := []FinalizeSaleRequest{
		{}, // everything missing
		{Email: "a@x.com", ProductID: "bad", BookingID: "64b0c8a19f1d2e3a4b5c6d7e", Amount: 50, TransactionID: "tx_1"},
		{Email: "a@x.com", ProductID: "64b0c8a19f1d2e3a4b5c6d7e", BookingID: "bad", Amount: 50, TransactionID: "tx_1"},
		{Email: "not-an-email", ProductID: "64b0c8a19f1d2e3a4b5c6d7e", BookingID: "64b0c8a19f1d2e3a4b5c6d7f", Amount: 50, TransactionID: "tx_1"},
	}

	for _, req := range cases {
		_, err := svc.FinalizeSale(context.Background(), &req)
		assert.Error(t, err)
	}
}
