package dto

import "klarfix/internal/models"

// SubmitApplicationRequest is the public support request form.
type SubmitApplicationRequest struct {
	Name                   string                 `json:"name" validate:"required,min=2,max=255"`
	Email                  string                 `json:"email" validate:"required,email,max=255"`
	Phone                  string                 `json:"phone" validate:"required,min=5,phone"`
	ProblemType            models.ServiceCategory `json:"problemType" validate:"required,is-service-category"`
	ProblemDescription     string                 `json:"problemDescription" validate:"required,min=10,max=5000"`
	Urgency                models.Urgency         `json:"urgency" validate:"required,is-urgency"`
	PreferredContactMethod models.ContactMethod   `json:"preferredContactMethod" validate:"required,is-contact-method"`
	PreviousAttempts       *string                `json:"previousAttempts" validate:"omitempty,max=5000"`
	DeviceInfo             string                 `json:"deviceInfo" validate:"required,min=2,max=1000"`
}

type SubmitApplicationResponse struct {
	Message       string `json:"message"`
	ApplicationID uint   `json:"applicationId"`
}

// UpdateApplicationRequest changes status and/or assignment.
type UpdateApplicationRequest struct {
	Status       *models.ApplicationStatus `json:"status" validate:"omitempty,is-application-status"`
	AssignedToID *uint                     `json:"assignedToId"`
}

type ApplicationQuery struct {
	Status models.ApplicationStatus `form:"status" validate:"omitempty,is-application-status"`
}
