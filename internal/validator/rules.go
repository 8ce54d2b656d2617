package validator

import (
	"log"

	"klarfix/internal/models"

	"github.com/go-playground/validator/v10"
)

func registerCustomRules(v *validator.Validate) {
	mustRegister := func(tag string, fn validator.Func) {
		if err := v.RegisterValidation(tag, fn); err != nil {
			log.Fatalf("failed to register custom validation tag '%s': %v", tag, err)
		}
	}

	mustRegister("is-user-role", enumRule(func(s string) bool { return models.UserRole(s).IsValid() }))
	mustRegister("is-signup-role", enumRule(func(s string) bool { return models.UserRole(s).CanSignUp() }))
	mustRegister("is-contact-status", enumRule(func(s string) bool { return models.ContactStatus(s).IsValid() }))
	mustRegister("is-verification-decision", enumRule(func(s string) bool { return models.VerificationStatus(s).IsDecision() }))
	mustRegister("is-quiz-answer", enumRule(func(s string) bool { return models.QuizAnswer(s).IsValid() }))
	mustRegister("is-service-category", enumRule(func(s string) bool { return models.ServiceCategory(s).IsValid() }))
	mustRegister("is-booking-status", enumRule(func(s string) bool { return models.BookingStatus(s).IsValid() }))
	mustRegister("is-payment-status", enumRule(func(s string) bool { return models.PaymentStatus(s).IsValid() }))
	mustRegister("is-payment-method", enumRule(func(s string) bool { return models.PaymentMethod(s).IsValid() }))
	mustRegister("is-application-status", enumRule(func(s string) bool { return models.ApplicationStatus(s).IsValid() }))
	mustRegister("is-urgency", enumRule(func(s string) bool { return models.Urgency(s).IsValid() }))
	mustRegister("is-contact-method", enumRule(func(s string) bool { return models.ContactMethod(s).IsValid() }))

	mustRegister("phone", func(fl validator.FieldLevel) bool {
		value := fl.Field().String()
		if value == "" {
			return true
		}
		return ValidPhone(value)
	})
}

// enumRule adapts an IsValid-style check to a validator.Func.
// Empty values pass; 'required' handles them.
func enumRule(valid func(string) bool) validator.Func {
	return func(fl validator.FieldLevel) bool {
		value := fl.Field().String()
		if value == "" {
			return true
		}
		return valid(value)
	}
}
