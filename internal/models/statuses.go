package models

type UserRole string
type ContactStatus string
type VerificationStatus string
type QuizAnswer string
type ServiceCategory string
type BookingStatus string
type PaymentStatus string
type PaymentMethod string
type ApplicationStatus string
type Urgency string
type ContactMethod string

const (
	UserRoleHelper UserRole = "helper"
	UserRoleClient UserRole = "client"
	UserRoleAdmin  UserRole = "admin"

	ContactStatusPending   ContactStatus = "pending"
	ContactStatusContacted ContactStatus = "contacted"
	ContactStatusCompleted ContactStatus = "completed"
	ContactStatusCancelled ContactStatus = "cancelled"
	ContactStatusFailed    ContactStatus = "failed"

	VerificationStatusPending  VerificationStatus = "pending"
	VerificationStatusApproved VerificationStatus = "approved"
	VerificationStatusRejected VerificationStatus = "rejected"

	QuizAnswerA QuizAnswer = "a"
	QuizAnswerB QuizAnswer = "b"
	QuizAnswerC QuizAnswer = "c"
	QuizAnswerD QuizAnswer = "d"

	ServiceCategoryHardware ServiceCategory = "hardware"
	ServiceCategorySoftware ServiceCategory = "software"
	ServiceCategoryNetwork  ServiceCategory = "network"
	ServiceCategoryMobile   ServiceCategory = "mobile"
	ServiceCategoryOther    ServiceCategory = "other"

	BookingStatusPending   BookingStatus = "pending"
	BookingStatusAccepted  BookingStatus = "accepted"
	BookingStatusCompleted BookingStatus = "completed"
	BookingStatusCancelled BookingStatus = "cancelled"

	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusCompleted PaymentStatus = "completed"
	PaymentStatusCancelled PaymentStatus = "cancelled"

	PaymentMethodCash   PaymentMethod = "cash"
	PaymentMethodOnline PaymentMethod = "online"
	PaymentMethodOther  PaymentMethod = "other"

	ApplicationStatusPending    ApplicationStatus = "pending"
	ApplicationStatusAssigned   ApplicationStatus = "assigned"
	ApplicationStatusInProgress ApplicationStatus = "in-progress"
	ApplicationStatusCompleted  ApplicationStatus = "completed"
	ApplicationStatusCancelled  ApplicationStatus = "cancelled"

	UrgencyLow    Urgency = "low"
	UrgencyMedium Urgency = "medium"
	UrgencyHigh   Urgency = "high"

	ContactMethodEmail    ContactMethod = "email"
	ContactMethodPhone    ContactMethod = "phone"
	ContactMethodWhatsApp ContactMethod = "whatsapp"
)

func (r UserRole) IsValid() bool {
	switch r {
	case UserRoleHelper, UserRoleClient, UserRoleAdmin:
		return true
	}
	return false
}

// CanSignUp reports whether the role may be chosen on the public signup form.
func (r UserRole) CanSignUp() bool {
	return r == UserRoleHelper || r == UserRoleClient
}

func (s ContactStatus) IsValid() bool {
	switch s {
	case ContactStatusPending, ContactStatusContacted, ContactStatusCompleted,
		ContactStatusCancelled, ContactStatusFailed:
		return true
	}
	return false
}

// IsTerminal reports whether no further transition is possible.
func (s ContactStatus) IsTerminal() bool {
	switch s {
	case ContactStatusCompleted, ContactStatusCancelled, ContactStatusFailed:
		return true
	}
	return false
}

var contactTransitions = map[ContactStatus][]ContactStatus{
	ContactStatusPending:   {ContactStatusContacted, ContactStatusCancelled, ContactStatusFailed},
	ContactStatusContacted: {ContactStatusCompleted, ContactStatusCancelled, ContactStatusFailed},
}

// CanTransitionTo reports whether a contact request may move from s to next.
// Re-applying the current status is allowed so notes can be updated.
func (s ContactStatus) CanTransitionTo(next ContactStatus) bool {
	if !next.IsValid() {
		return false
	}
	if s == next {
		return true
	}
	for _, allowed := range contactTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

func (s VerificationStatus) IsValid() bool {
	switch s {
	case VerificationStatusPending, VerificationStatusApproved, VerificationStatusRejected:
		return true
	}
	return false
}

// IsDecision reports whether s is a valid review outcome.
func (s VerificationStatus) IsDecision() bool {
	return s == VerificationStatusApproved || s == VerificationStatusRejected
}

func (a QuizAnswer) IsValid() bool {
	switch a {
	case QuizAnswerA, QuizAnswerB, QuizAnswerC, QuizAnswerD:
		return true
	}
	return false
}

func (c ServiceCategory) IsValid() bool {
	switch c {
	case ServiceCategoryHardware, ServiceCategorySoftware, ServiceCategoryNetwork,
		ServiceCategoryMobile, ServiceCategoryOther:
		return true
	}
	return false
}

func (s BookingStatus) IsValid() bool {
	switch s {
	case BookingStatusPending, BookingStatusAccepted, BookingStatusCompleted, BookingStatusCancelled:
		return true
	}
	return false
}

func (s PaymentStatus) IsValid() bool {
	switch s {
	case PaymentStatusPending, PaymentStatusCompleted, PaymentStatusCancelled:
		return true
	}
	return false
}

func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentMethodCash, PaymentMethodOnline, PaymentMethodOther:
		return true
	}
	return false
}

func (s ApplicationStatus) IsValid() bool {
	switch s {
	case ApplicationStatusPending, ApplicationStatusAssigned, ApplicationStatusInProgress,
		ApplicationStatusCompleted, ApplicationStatusCancelled:
		return true
	}
	return false
}

func (u Urgency) IsValid() bool {
	switch u {
	case UrgencyLow, UrgencyMedium, UrgencyHigh:
		return true
	}
	return false
}

func (m ContactMethod) IsValid() bool {
	switch m {
	case ContactMethodEmail, ContactMethodPhone, ContactMethodWhatsApp:
		return true
	}
	return false
}
