package apperrors

import (
	"net/http"
)

/*
Фабрики и предопределенные переменные для доменных ошибок.
Переменные не модифицируются: WithDetails/WithError возвращают копию.
*/

// ErrNotFound - фабрика для ошибки "не найдено" (404).
// Используется, когда gorm.ErrRecordNotFound надо превратить в AppError.
func ErrNotFound(err error) *AppError {
	return Wrap(err, CodeNotFound, "resource", "Resource not found", http.StatusNotFound)
}

// ErrAlreadyExists - фабрика для ошибки "уже существует" (409)
func ErrAlreadyExists(err error) *AppError {
	return Wrap(err, CodeAlreadyExists, "resource", "Resource already exists", http.StatusConflict)
}

// ErrLimitExceeded - исчерпан лимит тарифа (403).
// kind - "job" или "resume", details содержит план и лимит.
func ErrLimitExceeded(kind, plan string, limit int) *AppError {
	return New(CodeLimitExceeded, "subscription",
		"Plan limit reached for "+kind+"s, upgrade your plan to create more",
		http.StatusForbidden,
	).WithDetails(map[string]interface{}{
		"kind":  kind,
		"plan":  plan,
		"limit": limit,
	})
}

// --- Auth ---

var ErrInvalidCredentials = New(
	CodeInvalidCredentials,
	"auth",
	"Incorrect email or password",
	http.StatusUnauthorized,
)

var ErrInvalidToken = New(
	CodeInvalidToken,
	"auth",
	"Could not validate credentials",
	http.StatusUnauthorized,
)

var ErrEmailTaken = New(
	CodeAlreadyExists,
	"user",
	"Email already registered",
	http.StatusConflict,
)

var ErrUserInactive = New(
	CodeForbidden,
	"user",
	"User account is disabled",
	http.StatusForbidden,
)

// --- Jobs & candidates ---

// ErrJobNotFound отдаем и для чужих вакансий: владелец не раскрывается
var ErrJobNotFound = New(
	CodeNotFound,
	"job",
	"Job not found",
	http.StatusNotFound,
)

var ErrCandidateNotFound = New(
	CodeNotFound,
	"candidate",
	"Candidate not found",
	http.StatusNotFound,
)

var ErrTemplateNotFound = New(
	CodeNotFound,
	"email_template",
	"Email template not found",
	http.StatusNotFound,
)

var ErrUserNotFound = New(
	CodeNotFound,
	"user",
	"User not found",
	http.StatusNotFound,
)

// --- Uploads ---

var ErrFileTooLarge = New(
	CodeLimitExceeded,
	"upload",
	"File size exceeds the allowed limit",
	http.StatusRequestEntityTooLarge, // 413
)

var ErrEmptyFile = New(
	CodeValidationFailed,
	"upload",
	"Resume file is empty",
	http.StatusBadRequest,
)

// --- Subscriptions & payments ---

// ErrInvalidPlan - оплата бесплатного или неизвестного тарифа
var ErrInvalidPlan = New(
	CodeInvalidArgument,
	"billing",
	"Plan is not available for purchase",
	http.StatusBadRequest,
)

var ErrNoBillingAccount = New(
	CodeInvalidArgument,
	"billing",
	"No billing account found for this user",
	http.StatusBadRequest,
)

var ErrInvalidSignature = New(
	CodeInvalidSignature,
	"billing",
	"Invalid webhook signature",
	http.StatusBadRequest,
)

var ErrBillingDisabled = New(
	CodeExternalServiceError,
	"billing",
	"Billing is not configured",
	http.StatusServiceUnavailable, // 503
)

// --- Rate limiting ---

var ErrTooManyRequests = New(
	CodeTooManyRequests,
	"rate_limit",
	"Too many requests, slow down",
	http.StatusTooManyRequests,
)
