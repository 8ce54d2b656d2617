package services_test

import (
	"net/http"
	"testing"

	"klarfix/internal/models"
	"klarfix/internal/services/dto"
	"klarfix/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateContactRequest(t *testing.T) {
	e := newEnv(t)
	helper := testutil.CreateHelper(t, e.db, "Anna")

	req, err := e.svc.ContactRequestService.CreateContactRequest(e.ctx, e.db, helper.ID,
		&dto.CreateContactRequest{ClientPhone: " +49 151  23456789 "})
	require.NoError(t, err)
	assert.Equal(t, models.ContactStatusPending, req.Status)
	assert.Equal(t, "+49 151 23456789", req.ClientPhone)
	assert.Equal(t, helper.ID, req.HelperID)

	sent := e.mail.Sent()
	require.Len(t, sent, 1)
	assert.Equal(t, []string{helper.Username}, sent[0].To)
}

func TestCreateContactRequest_PhoneNumberAlias(t *testing.T) {
	e := newEnv(t)
	helper := testutil.CreateHelper(t, e.db, "Anna")

	req, err := e.svc.ContactRequestService.CreateContactRequest(e.ctx, e.db, helper.ID,
		&dto.CreateContactRequest{PhoneNumber: "(030) 123-4567"})
	require.NoError(t, err)
	assert.Equal(t, "(030) 123-4567", req.ClientPhone)
}

func TestCreateContactRequest_InvalidPhone(t *testing.T) {
	e := newEnv(t)
	helper := testutil.CreateHelper(t, e.db, "Anna")

	for _, phone := range []string{"123", "", "call me maybe", "+49 (151 234567"} {
		_, err := e.svc.ContactRequestService.CreateContactRequest(e.ctx, e.db, helper.ID,
			&dto.CreateContactRequest{ClientPhone: phone})
		appErr := requireAppError(t, err, http.StatusBadRequest)
		assert.Equal(t, "Please enter a valid phone number", appErr.Message, phone)
	}

	var count int64
	require.NoError(t, e.db.Model(&models.ContactRequest{}).Count(&count).Error)
	assert.Zero(t, count)
	assert.Empty(t, e.mail.Sent())
}

func TestCreateContactRequest_UnknownHelper(t *testing.T) {
	e := newEnv(t)
	client := testutil.CreateClient(t, e.db, "Bob")

	_, err := e.svc.ContactRequestService.CreateContactRequest(e.ctx, e.db, 9999,
		&dto.CreateContactRequest{ClientPhone: "+49 151 23456789"})
	requireAppError(t, err, http.StatusNotFound)

	// Only helpers can be contacted.
	_, err = e.svc.ContactRequestService.CreateContactRequest(e.ctx, e.db, client.ID,
		&dto.CreateContactRequest{ClientPhone: "+49 151 23456789"})
	requireAppError(t, err, http.StatusNotFound)
}

func TestCreateContactRequest_PhoneCheckedBeforeHelperLookup(t *testing.T) {
	e := newEnv(t)

	_, err := e.svc.ContactRequestService.CreateContactRequest(e.ctx, e.db, 9999,
		&dto.CreateContactRequest{ClientPhone: "123"})
	requireAppError(t, err, http.StatusBadRequest)
}

func TestCreateContactRequest_MailFailureDoesNotFail(t *testing.T) {
	e := newEnv(t)
	helper := testutil.CreateHelper(t, e.db, "Anna")
	e.mail.Err = assert.AnError

	req, err := e.svc.ContactRequestService.CreateContactRequest(e.ctx, e.db, helper.ID,
		&dto.CreateContactRequest{ClientPhone: "+49 151 23456789"})
	require.NoError(t, err)
	assert.NotZero(t, req.ID)
}

func newContactRequest(t *testing.T, e *env, helper *models.User) *models.ContactRequest {
	t.Helper()
	req, err := e.svc.ContactRequestService.CreateContactRequest(e.ctx, e.db, helper.ID,
		&dto.CreateContactRequest{ClientPhone: "+49 151 23456789"})
	require.NoError(t, err)
	return req
}

func TestUpdateContactRequestStatus_InvalidStatusDoesNotMutate(t *testing.T) {
	e := newEnv(t)
	helper := testutil.CreateHelper(t, e.db, "Anna")
	req := newContactRequest(t, e, helper)

	_, err := e.svc.ContactRequestService.UpdateContactRequestStatus(e.ctx, e.db, actorOf(helper), req.ID,
		&dto.UpdateContactStatusRequest{Status: "archived", Notes: strPtr("should not be saved")})
	requireAppError(t, err, http.StatusBadRequest)

	var stored models.ContactRequest
	require.NoError(t, e.db.First(&stored, req.ID).Error)
	assert.Equal(t, models.ContactStatusPending, stored.Status)
	assert.Nil(t, stored.Notes)
}

func TestUpdateContactRequestStatus_OnlyOwnerOrAdmin(t *testing.T) {
	e := newEnv(t)
	helper := testutil.CreateHelper(t, e.db, "Anna")
	other := testutil.CreateHelper(t, e.db, "Carl")
	admin := testutil.CreateAdmin(t, e.db)
	req := newContactRequest(t, e, helper)

	_, err := e.svc.ContactRequestService.UpdateContactRequestStatus(e.ctx, e.db, actorOf(other), req.ID,
		&dto.UpdateContactStatusRequest{Status: models.ContactStatusContacted})
	requireAppError(t, err, http.StatusForbidden)

	updated, err := e.svc.ContactRequestService.UpdateContactRequestStatus(e.ctx, e.db, actorOf(admin), req.ID,
		&dto.UpdateContactStatusRequest{Status: models.ContactStatusContacted})
	require.NoError(t, err)
	assert.Equal(t, models.ContactStatusContacted, updated.Status)
}

func TestUpdateContactRequestStatus_Transitions(t *testing.T) {
	e := newEnv(t)
	helper := testutil.CreateHelper(t, e.db, "Anna")
	req := newContactRequest(t, e, helper)
	actor := actorOf(helper)
	svc := e.svc.ContactRequestService

	updated, err := svc.UpdateContactRequestStatus(e.ctx, e.db, actor, req.ID,
		&dto.UpdateContactStatusRequest{Status: models.ContactStatusContacted, Notes: strPtr("called back")})
	require.NoError(t, err)
	assert.Equal(t, models.ContactStatusContacted, updated.Status)
	require.NotNil(t, updated.Notes)
	assert.Equal(t, "called back", *updated.Notes)

	_, err = svc.UpdateContactRequestStatus(e.ctx, e.db, actor, req.ID,
		&dto.UpdateContactStatusRequest{Status: models.ContactStatusPending})
	requireAppError(t, err, http.StatusConflict)

	// Same status only updates the notes.
	updated, err = svc.UpdateContactRequestStatus(e.ctx, e.db, actor, req.ID,
		&dto.UpdateContactStatusRequest{Status: models.ContactStatusContacted, Notes: strPtr("visit on Monday")})
	require.NoError(t, err)
	assert.Equal(t, "visit on Monday", *updated.Notes)

	_, err = svc.UpdateContactRequestStatus(e.ctx, e.db, actor, req.ID,
		&dto.UpdateContactStatusRequest{Status: models.ContactStatusCompleted})
	require.NoError(t, err)

	_, err = svc.UpdateContactRequestStatus(e.ctx, e.db, actor, req.ID,
		&dto.UpdateContactStatusRequest{Status: models.ContactStatusCancelled})
	requireAppError(t, err, http.StatusConflict)

	var stored models.ContactRequest
	require.NoError(t, e.db.First(&stored, req.ID).Error)
	assert.Equal(t, models.ContactStatusCompleted, stored.Status)
}

func TestUpdateContactRequestStatus_NotFound(t *testing.T) {
	e := newEnv(t)
	admin := testutil.CreateAdmin(t, e.db)

	_, err := e.svc.ContactRequestService.UpdateContactRequestStatus(e.ctx, e.db, actorOf(admin), 4242,
		&dto.UpdateContactStatusRequest{Status: models.ContactStatusContacted})
	requireAppError(t, err, http.StatusNotFound)
}

func TestListContactRequests(t *testing.T) {
	e := newEnv(t)
	anna := testutil.CreateHelper(t, e.db, "Anna")
	carl := testutil.CreateHelper(t, e.db, "Carl")
	client := testutil.CreateClient(t, e.db, "Bob")
	admin := testutil.CreateAdmin(t, e.db)

	newContactRequest(t, e, anna)
	newContactRequest(t, e, anna)
	newContactRequest(t, e, carl)

	svc := e.svc.ContactRequestService

	own, err := svc.ListContactRequests(e.ctx, e.db, actorOf(anna), &dto.ContactRequestQuery{HelperID: &carl.ID}, repositoriesPage())
	require.NoError(t, err)
	require.Len(t, own, 2)
	for _, item := range own {
		assert.Equal(t, anna.ID, item.HelperID)
		assert.Equal(t, "Anna", item.HelperName)
	}

	all, err := svc.ListContactRequests(e.ctx, e.db, actorOf(admin), nil, repositoriesPage())
	require.NoError(t, err)
	assert.Len(t, all, 3)

	filtered, err := svc.ListContactRequests(e.ctx, e.db, actorOf(admin), &dto.ContactRequestQuery{HelperID: &carl.ID}, repositoriesPage())
	require.NoError(t, err)
	assert.Len(t, filtered, 1)

	_, err = svc.ListContactRequests(e.ctx, e.db, actorOf(client), nil, repositoriesPage())
	requireAppError(t, err, http.StatusForbidden)
}
