package services

import (
	"context"
	"fmt"

	"klarfix/internal/email"
	"klarfix/internal/logger"
	"klarfix/internal/models"
)

// NotificationService e-mails users about workflow events. Delivery failures
// are logged and never returned to the caller.
type NotificationService interface {
	NotifyContactRequest(ctx context.Context, helper *models.User, request *models.ContactRequest)
	NotifyVerificationDecision(ctx context.Context, user *models.User, verification *models.Verification)
	NotifyApplicationReceived(ctx context.Context, application *models.Application)
}

type NotificationServiceImpl struct {
	provider  email.Provider
	templates email.TemplateRenderer
}

func NewNotificationService(provider email.Provider, templates email.TemplateRenderer) NotificationService {
	return &NotificationServiceImpl{
		provider:  provider,
		templates: templates,
	}
}

func (s *NotificationServiceImpl) NotifyContactRequest(ctx context.Context, helper *models.User, request *models.ContactRequest) {
	s.send(ctx, helper.Username, "Neue Rückrufanfrage", email.TemplateContactRequest, email.TemplateData{
		"HelperName":  helper.Name,
		"ClientPhone": request.ClientPhone,
	})
}

func (s *NotificationServiceImpl) NotifyVerificationDecision(ctx context.Context, user *models.User, verification *models.Verification) {
	feedback := ""
	if verification.Feedback != nil {
		feedback = *verification.Feedback
	}
	s.send(ctx, user.Username, "Deine Verifizierung", email.TemplateVerificationDecision, email.TemplateData{
		"Name":     user.Name,
		"Approved": verification.Status == models.VerificationStatusApproved,
		"Feedback": feedback,
	})
}

func (s *NotificationServiceImpl) NotifyApplicationReceived(ctx context.Context, application *models.Application) {
	s.send(ctx, application.Email, fmt.Sprintf("Deine Anfrage #%d", application.ID), email.TemplateApplicationReceived, email.TemplateData{
		"Name":          application.Name,
		"ApplicationID": application.ID,
		"ContactMethod": string(application.PreferredContactMethod),
	})
}

func (s *NotificationServiceImpl) send(ctx context.Context, to, subject, templateName string, data email.TemplateData) {
	if to == "" {
		return
	}

	body, err := s.templates.Render(templateName, data)
	if err != nil {
		logger.CtxWithError(ctx, "failed to render email", err, "template", templateName)
		return
	}

	msg := &email.Email{
		To:       []string{to},
		Subject:  subject,
		HTMLBody: body,
	}
	if err := s.provider.Send(ctx, msg); err != nil {
		logger.CtxWithError(ctx, "failed to send email", err, "template", templateName, "to", to)
	}
}
