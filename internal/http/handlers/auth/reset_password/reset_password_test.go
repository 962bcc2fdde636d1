package resetpassword

import (
	"context"
	"jobboard/internal/core/domain/account"
	resetpassword "jobboard/internal/core/services/reset_password"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

type stubService struct {
	err   error
	input *resetpassword.Input
}

func (s *stubService) Run(
	ctx context.Context,
	input resetpassword.Input,
) (result resetpassword.Result, err error) {
	if s.err != nil {
		return result, s.err
	}
	s.input = &input
	return result, nil
}

func TestResetPasswordHandler(t *testing.T) {
	cases := []struct {
		id             string
		body           string
		serviceErr     error
		expectedStatus int
	}{
		{
			id:             "password reset",
			body:           `{"token": "reset-token", "password": "new-password"}`,
			expectedStatus: http.StatusOK,
		},
		{
			id:             "invalid or expired token",
			body:           `{"token": "reset-token", "password": "new-password"}`,
			serviceErr:     account.ErrInvalidOrExpiredResetToken,
			expectedStatus: http.StatusUnprocessableEntity,
		},
		{
			id:             "missing token",
			body:           `{"password": "new-password"}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			id:             "password too short",
			body:           `{"token": "reset-token", "password": "short"}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			id:             "malformed body",
			body:           `{`,
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, testcase := range cases {
		t.Run(testcase.id, func(t *testing.T) {
			stub := &stubService{err: testcase.serviceErr}
			handler := New(stub)

			request := httptest.NewRequest(
				http.MethodPut,
				"/auth/password_reset",
				strings.NewReader(testcase.body),
			)
			recorder := httptest.NewRecorder()
			handler.ServeHTTP(recorder, request)

			assert := assert.New(t)
			assert.Equal(testcase.expectedStatus, recorder.Code)
			if testcase.expectedStatus == http.StatusOK {
				assert.NotNil(stub.input)
				assert.Equal(account.ResetToken("reset-token"), stub.input.Token)
			}
		})
	}
}
