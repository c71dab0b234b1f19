package services

import (
	"context"
	"testing"
	"time"

	"hiremind_backend/internal/analyzer"
	"hiremind_backend/internal/auth"
	"hiremind_backend/internal/email"
	"hiremind_backend/internal/plans"
	"hiremind_backend/internal/storage"
	"hiremind_backend/internal/testutil"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// testEnv - сервисы поверх sqlite в памяти и фейков внешних систем
type testEnv struct {
	ctx       context.Context
	db        *gorm.DB
	services  *ServiceContainer
	generator *testutil.FakeGenerator
	processor *testutil.FakeProcessor
	mailer    *testutil.RecordingMailer
	storage   *storage.MemoryStorage
}

type envOption func(*Dependencies, *testEnv)

// withOfflineAnalyzer - анализатор без модели
func withOfflineAnalyzer() envOption {
	return func(d *Dependencies, _ *testEnv) {
		d.Analyzer = analyzer.New(nil)
	}
}

// withoutBilling - Stripe не настроен
func withoutBilling() envOption {
	return func(d *Dependencies, _ *testEnv) {
		d.Processor = nil
	}
}

func newTestEnv(t *testing.T, opts ...envOption) *testEnv {
	t.Helper()

	templates, err := email.NewTemplateManager()
	require.NoError(t, err)

	env := &testEnv{
		ctx:       context.Background(),
		db:        testutil.NewTestDB(t),
		generator: &testutil.FakeGenerator{Response: testutil.AnalysisJSON},
		processor: &testutil.FakeProcessor{},
		mailer:    &testutil.RecordingMailer{},
		storage:   storage.NewMemoryStorage(),
	}

	deps := Dependencies{
		Tokens:          auth.NewTokenManager("test-secret", time.Hour),
		Catalog:         plans.NewCatalog("price_pro", "price_business"),
		Storage:         env.storage,
		Templates:       templates,
		Mailer:          env.mailer,
		Processor:       env.processor,
		MaxUploadSize:   1 << 20,
		PortalReturnURL: "https://app.example.com/billing",
	}
	deps.Analyzer = analyzer.New(env.generator)
	for _, opt := range opts {
		opt(&deps, env)
	}

	env.services = NewServiceContainer(deps)
	return env
}
