package models

type UserRole string
type JobStatus string
type CandidateStatus string
type SubscriptionStatus string
type EmailTemplateType string
type EmailStatus string

const (
	UserRoleRecruiter UserRole = "recruiter"
	UserRoleAdmin     UserRole = "admin"

	JobStatusActive JobStatus = "active"
	JobStatusClosed JobStatus = "closed"
	JobStatusDraft  JobStatus = "draft"

	CandidateStatusNew         CandidateStatus = "new"
	CandidateStatusReviewing   CandidateStatus = "reviewing"
	CandidateStatusShortlisted CandidateStatus = "shortlisted"
	CandidateStatusRejected    CandidateStatus = "rejected"
	CandidateStatusHired       CandidateStatus = "hired"

	// Значения совпадают со статусами подписки Stripe
	SubscriptionStatusActive     SubscriptionStatus = "active"
	SubscriptionStatusTrialing   SubscriptionStatus = "trialing"
	SubscriptionStatusPastDue    SubscriptionStatus = "past_due"
	SubscriptionStatusUnpaid     SubscriptionStatus = "unpaid"
	SubscriptionStatusIncomplete SubscriptionStatus = "incomplete"
	SubscriptionStatusCanceled   SubscriptionStatus = "canceled"

	EmailTemplateReceived    EmailTemplateType = "received"
	EmailTemplateShortlisted EmailTemplateType = "shortlisted"
	EmailTemplateRejected    EmailTemplateType = "rejected"
	EmailTemplateCustom      EmailTemplateType = "custom"

	EmailStatusSent   EmailStatus = "sent"
	EmailStatusFailed EmailStatus = "failed"
)

var jobStatuses = map[JobStatus]bool{
	JobStatusActive: true,
	JobStatusClosed: true,
	JobStatusDraft:  true,
}

var candidateStatuses = map[CandidateStatus]bool{
	CandidateStatusNew:         true,
	CandidateStatusReviewing:   true,
	CandidateStatusShortlisted: true,
	CandidateStatusRejected:    true,
	CandidateStatusHired:       true,
}

var templateTypes = map[EmailTemplateType]bool{
	EmailTemplateReceived:    true,
	EmailTemplateShortlisted: true,
	EmailTemplateRejected:    true,
	EmailTemplateCustom:      true,
}

func (s JobStatus) IsValid() bool { return jobStatuses[s] }

func (s CandidateStatus) IsValid() bool { return candidateStatuses[s] }

func (t EmailTemplateType) IsValid() bool { return templateTypes[t] }

// Entitled - статус подписки, при котором тариф действует
func (s SubscriptionStatus) Entitled() bool {
	switch s {
	case SubscriptionStatusActive, SubscriptionStatusTrialing, SubscriptionStatusPastDue:
		return true
	}
	return false
}
