package dto

import (
	"github.com/ignatzorin/collabhub-backend/internal/models"
)

// ErrorResponse формат ошибки API.
type ErrorResponse struct {
	Error string `json:"error"`
}

// MessageResponse ответ без данных.
type MessageResponse struct {
	Message string `json:"message"`
}

// AuthResponse ответ регистрации и логина.
type AuthResponse struct {
	User    *models.User `json:"user"`
	Profile interface{}  `json:"profile,omitempty"`
	Tokens  interface{}  `json:"tokens"`
}

// ContractCreatedResponse договор и созданный по нему платёж.
type ContractCreatedResponse struct {
	*models.ContractWithDetails
	Payment *models.Payment `json:"payment"`
}

// PaymentIntentResponse ответ POST /create-payment-intent.
type PaymentIntentResponse struct {
	ClientSecret    string `json:"client_secret"`
	PaymentIntentID string `json:"payment_intent_id"`
}

// UnreadCountResponse число непрочитанных уведомлений.
type UnreadCountResponse struct {
	Count int `json:"count"`
}

// SeedResponse результат заполнения демо-данными.
type SeedResponse struct {
	Message string `json:"message"`
	Created int    `json:"created"`
	Skipped int    `json:"skipped"`
}
