package billing

import "context"

// CheckoutRequest - параметры сессии оплаты тарифа
type CheckoutRequest struct {
	UserID     string
	Email      string
	CustomerID string // если уже есть, Stripe не создает нового клиента
	Plan       string
	PriceID    string
	SuccessURL string
	CancelURL  string
}

type Session struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

// Processor - внешний платежный провайдер
type Processor interface {
	CreateCheckoutSession(ctx context.Context, req CheckoutRequest) (*Session, error)
	CreatePortalSession(ctx context.Context, customerID, returnURL string) (*Session, error)
	// ParseWebhook проверяет подпись и нормализует событие.
	// Неверная подпись - apperrors.ErrInvalidSignature.
	ParseWebhook(payload []byte, signature string) (Event, error)
}
