/* submissions_test.go
 * Contains unit tests for submissions.go
 */

package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"testing"

	"horizons-site/api/flow"
	"horizons-site/api/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeSubmission(t *testing.T, body []byte) submissionResponse {
	t.Helper()
	var resp submissionResponse
	require.NoError(t, json.Unmarshal(body, &resp))
	return resp
}

// region statusForError tests

func TestStatusForError(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{err: nil, want: http.StatusOK},
		{err: flow.ErrMissingFields, want: http.StatusBadRequest},
		{err: flow.ErrInvalidEmail, want: http.StatusBadRequest},
		{err: fmt.Errorf("%w: experience", flow.ErrInvalidOption), want: http.StatusBadRequest},
		{err: flow.ErrMissingToken, want: http.StatusBadRequest},
		{err: flow.ErrCaptchaRejected, want: http.StatusBadRequest},
		{err: flow.ErrSubmissionInFlight, want: http.StatusConflict},
		{err: errors.New("saving registration: timeout"), want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, statusForError(tt.err), "error %v", tt.err)
	}
}

// endregion

// region JSON registration tests

func TestSubmitRegistrationJSON_Success(t *testing.T) {
	verifier := acceptingCaptcha()
	db := store.NewMockStore()
	router := newDefaultRouter(t, verifier, db)

	w := postJSON(router, "/api/registrations",
		`{"fullName":"Ada Lovelace","email":"ada@stanford.edu","experience":"Beginner - some exposure","token":"valid-token"}`)

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decodeSubmission(t, w.Body.Bytes())
	assert.Equal(t, flow.StatusSuccess, resp.Status)
	assert.Empty(t, resp.Message)

	record, ok := db.GetRegistration("ada@stanford.edu")
	require.True(t, ok)
	assert.Equal(t, "Ada Lovelace", record.FullName)
	assert.Equal(t, "beginner", record.Experience)
	assert.Equal(t, []string{"valid-token"}, verifier.Tokens)
}

func TestSubmitRegistrationJSON_CaptchaRejected(t *testing.T) {
	db := store.NewMockStore()
	router := newDefaultRouter(t, rejectingCaptcha(), db)

	w := postJSON(router, "/api/registrations",
		`{"fullName":"Ada Lovelace","email":"ada@stanford.edu","token":"valid-token"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	resp := decodeSubmission(t, w.Body.Bytes())
	assert.Equal(t, flow.StatusError, resp.Status)
	assert.Equal(t, "Captcha verification failed. Please try again.", resp.Message)
	assert.Equal(t, 0, db.RegistrationWrites)
}

func TestSubmitRegistrationJSON_MissingToken(t *testing.T) {
	verifier := acceptingCaptcha()
	router := newDefaultRouter(t, verifier, store.NewMockStore())

	w := postJSON(router, "/api/registrations", `{"fullName":"Ada Lovelace","email":"ada@stanford.edu"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Please complete the captcha", decodeSubmission(t, w.Body.Bytes()).Message)
	assert.Equal(t, 0, verifier.Calls())
}

func TestSubmitRegistrationJSON_MissingFields(t *testing.T) {
	verifier := acceptingCaptcha()
	router := newDefaultRouter(t, verifier, store.NewMockStore())

	w := postJSON(router, "/api/registrations", `{"email":"ada@stanford.edu","token":"valid-token"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, flow.MsgMissingFields, decodeSubmission(t, w.Body.Bytes()).Message)
	assert.Equal(t, 0, verifier.Calls())
}

func TestSubmitRegistrationJSON_VerifierError(t *testing.T) {
	db := store.NewMockStore()
	router := newDefaultRouter(t, &mockCaptcha{ErrorToReturn: errors.New("timeout")}, db)

	w := postJSON(router, "/api/registrations",
		`{"fullName":"Ada Lovelace","email":"ada@stanford.edu","token":"valid-token"}`)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, flow.MsgGeneric, decodeSubmission(t, w.Body.Bytes()).Message)
	assert.Equal(t, 0, db.RegistrationWrites)
}

func TestSubmitRegistrationJSON_StoreError(t *testing.T) {
	db := store.NewMockStore()
	db.MergeRegistrationError = errors.New("no reachable servers")
	router := newDefaultRouter(t, acceptingCaptcha(), db)

	w := postJSON(router, "/api/registrations",
		`{"fullName":"Ada Lovelace","email":"ada@stanford.edu","token":"valid-token"}`)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, flow.MsgGeneric, decodeSubmission(t, w.Body.Bytes()).Message)
}

func TestSubmitRegistrationJSON_InvalidBody(t *testing.T) {
	router := newDefaultRouter(t, acceptingCaptcha(), store.NewMockStore())

	w := postJSON(router, "/api/registrations", `{"fullName":`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, msgInvalidBody, decodeSubmission(t, w.Body.Bytes()).Message)
}

// endregion

// region JSON interest tests

func TestSubmitInterestJSON_TwiceKeepsOneDocument(t *testing.T) {
	db := store.NewMockStore()
	router := newDefaultRouter(t, acceptingCaptcha(), db)

	for _, token := range []string{"first-token", "second-token"} {
		w := postJSON(router, "/api/interest-emails", fmt.Sprintf(`{"email":"bob@example.com","token":%q}`, token))
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, flow.StatusIdle, decodeSubmission(t, w.Body.Bytes()).Status)
	}

	_, interestEmails := db.Counts()
	assert.Equal(t, 1, interestEmails)
	_, ok := db.GetInterestEmail("bob@example.com")
	assert.True(t, ok)
}

func TestSubmitInterestJSON_InvalidEmail(t *testing.T) {
	verifier := acceptingCaptcha()
	router := newDefaultRouter(t, verifier, store.NewMockStore())

	w := postJSON(router, "/api/interest-emails", `{"email":"bob","token":"valid-token"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, flow.MsgInvalidEmail, decodeSubmission(t, w.Body.Bytes()).Message)
	assert.Equal(t, 0, verifier.Calls())
}

// endregion

// region HTML form tests

func TestSubmitRegistrationForm_Success(t *testing.T) {
	db := store.NewMockStore()
	router := newDefaultRouter(t, acceptingCaptcha(), db)

	w := postForm(router, "/register", url.Values{
		"fullName":       {"Ada Lovelace"},
		"email":          {"ada@stanford.edu"},
		"school":         {"Stanford University"},
		"graduationYear": {"2027"},
		TokenField:       {"valid-token"},
	})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Registered!")

	record, ok := db.GetRegistration("ada@stanford.edu")
	require.True(t, ok)
	assert.Equal(t, "2027", record.GraduationYear)
}

func TestSubmitRegistrationForm_RejectedKeepsValues(t *testing.T) {
	db := store.NewMockStore()
	router := newDefaultRouter(t, rejectingCaptcha(), db)

	w := postForm(router, "/register", url.Values{
		"fullName": {"Ada Lovelace"},
		"email":    {"ada@stanford.edu"},
		TokenField: {"valid-token"},
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "Captcha verification failed. Please try again.")
	assert.Contains(t, body, `value="Ada Lovelace"`)
	assert.Contains(t, body, `id="capycap-captcha"`)
	assert.Equal(t, 0, db.RegistrationWrites)
}

func TestSubmitInterestForm_SuccessRedirects(t *testing.T) {
	db := store.NewMockStore()
	router := newDefaultRouter(t, acceptingCaptcha(), db)

	w := postForm(router, "/interest", url.Values{
		"email":    {"bob@example.com"},
		TokenField: {"valid-token"},
	})

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))
	_, ok := db.GetInterestEmail("bob@example.com")
	assert.True(t, ok)
}

func TestSubmitInterestForm_MissingEmail(t *testing.T) {
	verifier := acceptingCaptcha()
	router := newDefaultRouter(t, verifier, store.NewMockStore())

	w := postForm(router, "/interest", url.Values{TokenField: {"valid-token"}})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Please enter your email.")
	assert.Contains(t, w.Body.String(), "Stay Updated")
	assert.Equal(t, 0, verifier.Calls())
}

// endregion
