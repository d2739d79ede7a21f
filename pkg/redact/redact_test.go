package redact_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/formcheck/pkg/redact"
	"github.com/aretw0/formcheck/pkg/schema"
	"github.com/aretw0/formcheck/pkg/validation"
)

func TestNew(t *testing.T) {
	m, err := redact.New()
	require.NoError(t, err)
	assert.True(t, m.Matches("cardNumber"))
	assert.True(t, m.Matches("CVV"))
	assert.False(t, m.Matches("expireYear"))

	_, err = redact.New("(")
	assert.ErrorContains(t, err, "invalid redact pattern")
}

func TestDocument(t *testing.T) {
	m, err := redact.New("password", "ssn")
	require.NoError(t, err)

	doc := map[string]any{
		"username":      "jdoe",
		"user_password": "secret123",
		"details": map[string]any{
			"address":    "123 St",
			"ssn_number": "999-99-9999",
		},
	}

	masked := m.Document(doc)

	assert.Equal(t, "jdoe", masked["username"])
	assert.Equal(t, redact.Mask, masked["user_password"])
	assert.Equal(t, redact.Mask, masked["details"].(map[string]any)["ssn_number"])
	assert.Equal(t, "123 St", masked["details"].(map[string]any)["address"])

	assert.Equal(t, "secret123", doc["user_password"], "input is not modified")
	assert.Equal(t, "999-99-9999", doc["details"].(map[string]any)["ssn_number"])
}

func TestStatus(t *testing.T) {
	m, err := redact.New()
	require.NoError(t, err)

	status := validation.Status{
		Validated: true,
		Fields: map[string]validation.Field{
			"cardNumber": {IsValid: false, Value: "4242424242424241"},
			"expireYear": {IsValid: true, Value: "2030"},
		},
		Messages: map[string]validation.Message{
			"cardNumber": {
				ValidationError: schema.ValidationError{Key: "cardNumber", Type: schema.ErrorFormat, Value: "4242424242424241"},
				Message:         "Card number must be a valid card-number",
			},
			"cvv": {
				ValidationError: schema.ValidationError{Key: "cvv", Type: schema.ErrorRequired},
				Message:         "Cvv is required",
			},
		},
	}

	masked := m.Status(status)

	assert.Equal(t, redact.Mask, masked.Fields["cardNumber"].Value)
	assert.False(t, masked.Fields["cardNumber"].IsValid)
	assert.Equal(t, "2030", masked.Fields["expireYear"].Value)
	assert.Equal(t, redact.Mask, masked.Messages["cardNumber"].Value)
	assert.Equal(t, "Card number must be a valid card-number", masked.Messages["cardNumber"].Message)
	assert.Nil(t, masked.Messages["cvv"].Value, "required errors carry no value")

	assert.Equal(t, "4242424242424241", status.Fields["cardNumber"].Value, "input is not modified")
}

func TestDocument_Lists(t *testing.T) {
	m, err := redact.New()
	require.NoError(t, err)

	doc := map[string]any{
		"payments": []any{
			map[string]any{"cardNumber": "4111111111111111", "amount": 10},
			"plain",
		},
	}

	masked := m.Document(doc)

	payments := masked["payments"].([]any)
	assert.Equal(t, map[string]any{"cardNumber": redact.Mask, "amount": 10}, payments[0])
	assert.Equal(t, "plain", payments[1])
	assert.Equal(t, "4111111111111111", doc["payments"].([]any)[0].(map[string]any)["cardNumber"])
}

func TestStatus_NestedSensitiveField(t *testing.T) {
	m, err := redact.New()
	require.NoError(t, err)

	billing := map[string]any{"card_number": "4111111111111112", "zip": "01000"}
	status := validation.Status{
		Validated: true,
		Fields: map[string]validation.Field{
			"billing": {IsValid: false, Value: billing},
		},
		Messages: map[string]validation.Message{
			"billing": {
				ValidationError: schema.ValidationError{Key: "billing", Type: schema.ErrorFormat, Value: "4111111111111112"},
				Message:         "Billing is invalid",
			},
			"orders": {
				ValidationError: schema.ValidationError{Key: "orders", Type: schema.ErrorType, Value: []any{map[string]any{"cvv": "12"}}},
				Message:         "Orders is invalid",
			},
		},
	}

	masked := m.Status(status)

	assert.Equal(t, map[string]any{"card_number": redact.Mask, "zip": "01000"}, masked.Fields["billing"].Value)
	assert.Equal(t, redact.Mask, masked.Messages["billing"].Value)
	assert.Equal(t, redact.Mask, masked.Messages["orders"].Value)
	assert.Equal(t, "4111111111111112", status.Messages["billing"].Value, "input is not modified")
}
