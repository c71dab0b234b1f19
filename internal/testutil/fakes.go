package testutil

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"hiremind_backend/internal/billing"
	"hiremind_backend/internal/email"
)

// AnalysisJSON - типичный ответ модели на запрос анализа резюме
const AnalysisJSON = `{"score": 88, "summary": "Strong backend engineer", "skills_matched": ["Go", "PostgreSQL"], "experience_years": 6, "strengths": ["Ownership"], "concerns": ["No Kubernetes"]}`

// FakeGenerator - подменяет модель: возвращает Response или Err
type FakeGenerator struct {
	Response string
	Err      error
	// Delay задерживает ответ, чтобы тесты могли поймать параллельные вызовы
	Delay time.Duration

	calls atomic.Int32
}

func (g *FakeGenerator) Complete(ctx context.Context, _ string) (string, error) {
	g.calls.Add(1)
	if g.Delay > 0 {
		select {
		case <-time.After(g.Delay):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	if g.Err != nil {
		return "", g.Err
	}
	return g.Response, nil
}

// Calls - сколько раз обращались к модели
func (g *FakeGenerator) Calls() int {
	return int(g.calls.Load())
}

// FakeProcessor записывает запросы к платежному провайдеру
type FakeProcessor struct {
	mu sync.Mutex

	// Event возвращается из ParseWebhook, если ParseErr == nil
	Event    billing.Event
	ParseErr error
	Err      error

	Checkouts []billing.CheckoutRequest
	Portals   []string
}

func (p *FakeProcessor) CreateCheckoutSession(_ context.Context, req billing.CheckoutRequest) (*billing.Session, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Checkouts = append(p.Checkouts, req)
	if p.Err != nil {
		return nil, p.Err
	}
	return &billing.Session{ID: "cs_test_1", URL: "https://checkout.stripe.test/cs_test_1"}, nil
}

func (p *FakeProcessor) CreatePortalSession(_ context.Context, customerID, returnURL string) (*billing.Session, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Portals = append(p.Portals, customerID)
	if p.Err != nil {
		return nil, p.Err
	}
	return &billing.Session{ID: "bps_test_1", URL: returnURL}, nil
}

func (p *FakeProcessor) ParseWebhook(_ []byte, _ string) (billing.Event, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.ParseErr != nil {
		return billing.Event{}, p.ParseErr
	}
	return p.Event, nil
}

// CheckoutCount - число созданных сессий оплаты
func (p *FakeProcessor) CheckoutCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.Checkouts)
}

// RecordingMailer сохраняет отправленные письма вместо доставки
type RecordingMailer struct {
	mu   sync.Mutex
	Err  error
	sent []email.Message
}

func (m *RecordingMailer) Send(_ context.Context, msg *email.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	m.sent = append(m.sent, *msg)
	return nil
}

func (m *RecordingMailer) Sent() []email.Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]email.Message, len(m.sent))
	copy(out, m.sent)
	return out
}
