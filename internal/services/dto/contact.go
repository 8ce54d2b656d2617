package dto

import "klarfix/internal/models"

// CreateContactRequest is the public callback form. phoneNumber is accepted
// as an alias of clientPhone.
type CreateContactRequest struct {
	ClientPhone string `json:"clientPhone"`
	PhoneNumber string `json:"phoneNumber"`
}

// Phone returns whichever phone field was sent.
func (r *CreateContactRequest) Phone() string {
	if r.ClientPhone != "" {
		return r.ClientPhone
	}
	return r.PhoneNumber
}

// UpdateContactStatusRequest is validated in the service so an unknown status
// is reported without touching the record.
type UpdateContactStatusRequest struct {
	Status models.ContactStatus `json:"status" validate:"required"`
	Notes  *string              `json:"notes" validate:"omitempty,max=2000"`
}

type ContactRequestQuery struct {
	Status   models.ContactStatus `form:"status" validate:"omitempty,is-contact-status"`
	HelperID *uint                `form:"helperId"`
}
