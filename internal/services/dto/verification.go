package dto

import (
	"time"

	"klarfix/internal/models"
)

// SubmitVerificationRequest holds the quiz answers.
type SubmitVerificationRequest struct {
	RouterSetup         models.QuizAnswer `json:"routerSetup" validate:"required,is-quiz-answer"`
	FirewallSetting     models.QuizAnswer `json:"firewallSetting" validate:"required,is-quiz-answer"`
	WindowsIssue        models.QuizAnswer `json:"windowsIssue" validate:"required,is-quiz-answer"`
	CableTypes          models.QuizAnswer `json:"cableTypes" validate:"required,is-quiz-answer"`
	WPSExplanation      string            `json:"wpsExplanation" validate:"required,min=20,max=5000"`
	TechnicalExperience string            `json:"technicalExperience" validate:"required,min=50,max=5000"`
	ToolsUsed           string            `json:"toolsUsed" validate:"required,min=10,max=5000"`
}

type SubmitVerificationResponse struct {
	ID     uint                      `json:"id"`
	Status models.VerificationStatus `json:"status"`
}

// ReviewVerificationRequest carries the admin decision. The service checks
// the decision again for callers that bypass request validation.
type ReviewVerificationRequest struct {
	Status   models.VerificationStatus `json:"status" validate:"required,is-verification-decision"`
	Feedback *string                   `json:"feedback" validate:"omitempty,max=2000"`
}

type VerificationStatusResponse struct {
	ID         uint                      `json:"id"`
	Status     models.VerificationStatus `json:"status"`
	Feedback   *string                   `json:"feedback,omitempty"`
	ReviewedAt *time.Time                `json:"reviewedAt,omitempty"`
	CreatedAt  time.Time                 `json:"createdAt"`
}

type VerificationQuery struct {
	Status models.VerificationStatus `form:"status" validate:"omitempty,oneof=pending approved rejected"`
}
