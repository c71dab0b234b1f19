package handlers

// AppHandlers содержит все HTTP обработчики приложения.
type AppHandlers struct {
	HealthHandler        *HealthHandler
	AuthHandler          *AuthHandler
	UserHandler          *UserHandler
	JobHandler           *JobHandler
	CandidateHandler     *CandidateHandler
	EmailTemplateHandler *EmailTemplateHandler
	BillingHandler       *BillingHandler
	DashboardHandler     *DashboardHandler
}
