package app

import (
	"fmt"
	"net/http"
	"strings"
	"testing"

	"klarfix/internal/models"
	"klarfix/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealth(t *testing.T) {
	s := newTestServer(t)

	w := s.do(http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok","database":"up"}`, w.Body.String())
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestAuth_SignupLoginMeLogout(t *testing.T) {
	s := newTestServer(t)

	w := s.do(http.MethodPost, "/api/auth/signup", map[string]interface{}{
		"name":     "Anna Schmidt",
		"username": "anna@example.com",
		"password": "secret1",
		"role":     "helper",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	signup := decode[struct {
		Message string `json:"message"`
		UserID  uint   `json:"userId"`
	}](t, w)
	assert.Equal(t, "User created successfully", signup.Message)
	assert.NotZero(t, signup.UserID)

	w = s.do(http.MethodPost, "/api/auth/login", map[string]string{"username": "anna@example.com", "password": "secret1"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), "password")
	cookie := sessionCookie(w)
	require.NotNil(t, cookie)
	assert.True(t, cookie.HttpOnly)
	assert.Equal(t, "/", cookie.Path)

	w = s.do(http.MethodGet, "/api/auth/me", nil, cookie)
	require.Equal(t, http.StatusOK, w.Code)
	me := decode[struct {
		User models.User `json:"user"`
	}](t, w)
	assert.Equal(t, signup.UserID, me.User.ID)
	assert.Equal(t, models.UserRoleHelper, me.User.Role)

	w = s.do(http.MethodPost, "/api/auth/logout", nil, cookie)
	require.Equal(t, http.StatusOK, w.Code)
	cleared := sessionCookie(w)
	require.NotNil(t, cleared)
	assert.Empty(t, cleared.Value)
	assert.True(t, cleared.MaxAge < 0)
}

func TestAuth_WrongPasswordSetsNoCookie(t *testing.T) {
	s := newTestServer(t)
	user := testutil.CreateClient(t, s.db, "Bob")

	w := s.do(http.MethodPost, "/api/auth/login", map[string]string{"username": user.Username, "password": "nope-nope"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Nil(t, sessionCookie(w))

	body := decode[errorBody](t, w)
	assert.Equal(t, "INVALID_CREDENTIALS", body.Error.Code)
}

func TestAuth_SignupValidation(t *testing.T) {
	s := newTestServer(t)

	w := s.do(http.MethodPost, "/api/auth/signup", map[string]interface{}{
		"name":     "A",
		"username": "not-an-email",
		"password": "123",
		"role":     "admin",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	body := decode[errorBody](t, w)
	assert.Equal(t, "VALIDATION_FAILED", body.Error.Code)
	assert.Contains(t, body.Error.Details, "username")
	assert.Contains(t, body.Error.Details, "password")
	assert.Contains(t, body.Error.Details, "role")
}

func TestAuth_MeRequiresToken(t *testing.T) {
	s := newTestServer(t)

	w := s.do(http.MethodGet, "/api/auth/me", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = s.do(http.MethodGet, "/api/auth/me", nil, &http.Cookie{Name: "auth_token", Value: "garbage"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestContactRequest_Flow(t *testing.T) {
	s := newTestServer(t)
	helper := testutil.CreateHelper(t, s.db, "Anna")
	path := fmt.Sprintf("/api/contact/%d", helper.ID)

	w := s.do(http.MethodPost, path, map[string]string{"clientPhone": "123"})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Please enter a valid phone number", decode[errorBody](t, w).Error.Message)

	w = s.do(http.MethodPost, path, map[string]string{"clientPhone": "+49 151 23456789"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := decode[models.ContactRequest](t, w)
	assert.Equal(t, models.ContactStatusPending, created.Status)
	assert.Len(t, s.mail.Sent(), 1)

	w = s.do(http.MethodPost, "/api/contact/9999", map[string]string{"clientPhone": "+49 151 23456789"})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = s.do(http.MethodPost, "/api/contact/9999", map[string]string{"clientPhone": "123"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	cookie := s.loginAs(helper)

	w = s.do(http.MethodGet, "/api/contact-requests", nil, cookie)
	require.Equal(t, http.StatusOK, w.Code)
	list := decode[[]map[string]interface{}](t, w)
	require.Len(t, list, 1)
	assert.Equal(t, "Anna", list[0]["helperName"])

	statusPath := fmt.Sprintf("/api/contact-requests/%d/status", created.ID)

	w = s.do(http.MethodPatch, statusPath, map[string]string{"status": "archived"}, cookie)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(http.MethodPut, statusPath, map[string]string{"status": "contacted", "notes": "Rückruf erledigt"}, cookie)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, models.ContactStatusContacted, decode[models.ContactRequest](t, w).Status)

	w = s.do(http.MethodPatch, statusPath, map[string]string{"status": "pending"}, cookie)
	assert.Equal(t, http.StatusConflict, w.Code)

	other := testutil.CreateHelper(t, s.db, "Carl")
	w = s.do(http.MethodPatch, statusPath, map[string]string{"status": "completed"}, s.loginAs(other))
	assert.Equal(t, http.StatusForbidden, w.Code)

	// Admin-only listing is closed to helpers.
	w = s.do(http.MethodGet, "/api/admin/contact-requests", nil, cookie)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestContactRequest_RateLimited(t *testing.T) {
	s := newTestServer(t)
	helper := testutil.CreateHelper(t, s.db, "Anna")
	path := fmt.Sprintf("/api/contact/%d", helper.ID)

	for i := 0; i < 5; i++ {
		w := s.do(http.MethodPost, path, map[string]string{"clientPhone": "+49 151 23456789"})
		require.Equal(t, http.StatusCreated, w.Code)
	}
	w := s.do(http.MethodPost, path, map[string]string{"clientPhone": "+49 151 23456789"})
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
}

func quizBody(wps string) map[string]string {
	return map[string]string{
		"routerSetup":         "b",
		"firewallSetting":     "a",
		"windowsIssue":        "c",
		"cableTypes":          "d",
		"wpsExplanation":      wps,
		"technicalExperience": strings.Repeat("Ich repariere Laptops. ", 3),
		"toolsUsed":           "Multimeter, Wireshark",
	}
}

func TestVerification_Flow(t *testing.T) {
	s := newTestServer(t)
	helper := testutil.CreateHelper(t, s.db, "Anna")
	admin := testutil.CreateAdmin(t, s.db)
	helperCookie := s.loginAs(helper)
	adminCookie := s.loginAs(admin)

	w := s.do(http.MethodPost, "/api/verifications", quizBody("0123456789"), helperCookie)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decode[errorBody](t, w).Error.Details["wpsExplanation"], "at least 20 characters")

	w = s.do(http.MethodPost, "/api/verifications", quizBody(strings.Repeat("x", 25)), helperCookie)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	submitted := decode[struct {
		ID     uint                      `json:"id"`
		Status models.VerificationStatus `json:"status"`
	}](t, w)
	assert.Equal(t, models.VerificationStatusPending, submitted.Status)

	w = s.do(http.MethodPost, "/api/verifications", quizBody(strings.Repeat("x", 25)), helperCookie)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = s.do(http.MethodGet, "/api/admin/verifications?status=pending", nil, adminCookie)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]map[string]interface{}](t, w), 1)

	reviewPath := fmt.Sprintf("/api/admin/verifications/%d/review", submitted.ID)

	w = s.do(http.MethodPost, reviewPath, map[string]string{"status": "approved"}, helperCookie)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = s.do(http.MethodPost, reviewPath, map[string]string{"status": "pending"}, adminCookie)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Decision must be approved or rejected", decode[errorBody](t, w).Error.Details["status"])

	w = s.do(http.MethodPost, reviewPath, map[string]string{"status": "approved"}, adminCookie)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = s.do(http.MethodPost, reviewPath, map[string]string{"status": "approved"}, adminCookie)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = s.do(http.MethodGet, "/api/verifications/status", nil, helperCookie)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "approved", decode[map[string]interface{}](t, w)["status"])

	var user models.User
	require.NoError(t, s.db.First(&user, helper.ID).Error)
	assert.True(t, user.Verified)
}

func TestCatalog_BookingPaymentReview(t *testing.T) {
	s := newTestServer(t)
	helper := testutil.CreateHelper(t, s.db, "Anna")
	client := testutil.CreateClient(t, s.db, "Bob")
	helperCookie := s.loginAs(helper)
	clientCookie := s.loginAs(client)

	w := s.do(http.MethodPost, "/api/services", map[string]interface{}{
		"title":       "Drucker einrichten",
		"description": "Treiber installieren und Testseite drucken",
		"category":    "hardware",
		"price":       3000,
	}, helperCookie)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	service := decode[models.Service](t, w)

	w = s.do(http.MethodPost, "/api/services", map[string]interface{}{
		"title":       "Drucker einrichten",
		"description": "Treiber installieren und Testseite drucken",
		"category":    "hardware",
		"price":       3000000000,
	}, helperCookie)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Must be less than or equal to 100000000", decode[errorBody](t, w).Error.Details["price"])

	w = s.do(http.MethodGet, "/api/services?category=hardware", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]models.Service](t, w), 1)

	w = s.do(http.MethodGet, fmt.Sprintf("/api/helpers/%d/services", helper.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]models.Service](t, w), 1)

	w = s.do(http.MethodPost, "/api/bookings", map[string]interface{}{
		"serviceId": service.ID,
		"date":      "2026-11-02T10:00:00Z",
	}, clientCookie)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	booking := decode[models.Booking](t, w)

	w = s.do(http.MethodPatch, fmt.Sprintf("/api/bookings/%d/status", booking.ID), map[string]string{"status": "accepted"}, helperCookie)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = s.do(http.MethodPost, "/api/payments", map[string]interface{}{
		"bookingId": booking.ID,
		"amount":    3000,
		"method":    "cash",
	}, clientCookie)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	payment := decode[models.Payment](t, w)
	assert.Equal(t, 2400, payment.StudentAmount)
	assert.Equal(t, 600, payment.PlatformAmount)

	w = s.do(http.MethodGet, fmt.Sprintf("/api/bookings/%d/payment", booking.ID), nil, helperCookie)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, payment.ID, decode[models.Payment](t, w).ID)

	w = s.do(http.MethodPost, "/api/reviews", map[string]interface{}{
		"bookingId": booking.ID,
		"rating":    4,
		"comment":   "Schnell und freundlich",
	}, clientCookie)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = s.do(http.MethodGet, fmt.Sprintf("/api/services/%d/reviews", service.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]models.Review](t, w), 1)

	w = s.do(http.MethodGet, fmt.Sprintf("/api/helpers/%d", helper.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 4, decode[models.User](t, w).Rating)
}

func TestUsers_OnlineAndProfile(t *testing.T) {
	s := newTestServer(t)
	helper := testutil.CreateHelper(t, s.db, "Anna")
	cookie := s.loginAs(helper)

	w := s.do(http.MethodGet, "/api/helpers/online", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]models.User](t, w), 1)

	w = s.do(http.MethodPost, fmt.Sprintf("/api/users/%d/online", helper.ID), map[string]bool{"isOnline": false}, cookie)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = s.do(http.MethodGet, "/api/helpers/online", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, decode[[]models.User](t, w))

	w = s.do(http.MethodPatch, "/api/users/me", map[string]interface{}{
		"bio":         "Netzwerke und Smart Home",
		"phoneNumber": "+49 30 1234567",
	}, cookie)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "Netzwerke und Smart Home", decode[models.User](t, w).Bio)

	// The phone stays hidden from anonymous visitors until showPhone is set.
	w = s.do(http.MethodGet, fmt.Sprintf("/api/users/%d", helper.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, decode[models.User](t, w).PhoneNumber)

	w = s.do(http.MethodGet, fmt.Sprintf("/api/users/%d", helper.ID), nil, cookie)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "+49 30 1234567", decode[models.User](t, w).PhoneNumber)
}

func TestAdmin_Users(t *testing.T) {
	s := newTestServer(t)
	admin := testutil.CreateAdmin(t, s.db)
	helper := testutil.CreateHelper(t, s.db, "Anna")
	adminCookie := s.loginAs(admin)

	w := s.do(http.MethodGet, "/api/admin/users?role=helper", nil, adminCookie)
	require.Equal(t, http.StatusOK, w.Code)
	list := decode[struct {
		Items []models.User `json:"items"`
		Total int64         `json:"total"`
	}](t, w)
	assert.Equal(t, int64(1), list.Total)

	w = s.do(http.MethodPatch, fmt.Sprintf("/api/admin/users/%d", helper.ID), map[string]interface{}{"verified": true, "rating": 5}, adminCookie)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	updated := decode[models.User](t, w)
	assert.True(t, updated.Verified)
	assert.Equal(t, 5, updated.Rating)

	w = s.do(http.MethodDelete, fmt.Sprintf("/api/admin/users/%d", admin.ID), nil, adminCookie)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(http.MethodDelete, fmt.Sprintf("/api/admin/users/%d", helper.ID), nil, adminCookie)
	require.Equal(t, http.StatusOK, w.Code)

	w = s.do(http.MethodGet, fmt.Sprintf("/api/users/%d", helper.ID), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestApplications_Flow(t *testing.T) {
	s := newTestServer(t)
	admin := testutil.CreateAdmin(t, s.db)
	helper := testutil.CreateHelper(t, s.db, "Anna")
	adminCookie := s.loginAs(admin)

	w := s.do(http.MethodPost, "/api/applications/submit", map[string]interface{}{
		"name":                   "Greta Müller",
		"email":                  "greta@example.com",
		"phone":                  "+49 30 1234567",
		"problemType":            "network",
		"problemDescription":     "WLAN bricht ständig ab",
		"urgency":                "medium",
		"preferredContactMethod": "email",
		"deviceInfo":             "FritzBox 7590",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	submitted := decode[struct {
		ApplicationID uint `json:"applicationId"`
	}](t, w)

	w = s.do(http.MethodGet, fmt.Sprintf("/api/admin/applications/%d", submitted.ApplicationID), nil, adminCookie)
	require.Equal(t, http.StatusOK, w.Code)

	w = s.do(http.MethodPatch, fmt.Sprintf("/api/admin/applications/%d", submitted.ApplicationID),
		map[string]interface{}{"assignedToId": helper.ID}, adminCookie)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, models.ApplicationStatusAssigned, decode[models.Application](t, w).Status)

	w = s.do(http.MethodPatch, fmt.Sprintf("/api/applications/%d/status", submitted.ApplicationID),
		map[string]string{"status": "in-progress"}, s.loginAs(helper))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, models.ApplicationStatusInProgress, decode[models.Application](t, w).Status)

	w = s.do(http.MethodGet, "/api/admin/applications/9999", nil, adminCookie)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
