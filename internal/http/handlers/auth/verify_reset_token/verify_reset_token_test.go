package verifyresettoken

import (
	"context"
	"encoding/json"
	service "jobboard/internal/core/services/verify_reset_token"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

type stubService struct {
	isValid bool
	err     error
	input   *service.Input
}

func (s *stubService) Run(ctx context.Context, input service.Input) (result service.Result, err error) {
	if s.err != nil {
		return result, s.err
	}
	s.input = &input
	result.IsValid = s.isValid
	return result, nil
}

func TestVerifyResetTokenHandler(t *testing.T) {
	cases := []struct {
		id             string
		url            string
		isValid        bool
		expectedStatus int
		expectedValid  bool
	}{
		{
			id:             "valid token",
			url:            "/auth/password_reset/verification?token=abc123",
			isValid:        true,
			expectedStatus: http.StatusOK,
			expectedValid:  true,
		},
		{
			id:             "invalid token",
			url:            "/auth/password_reset/verification?token=abc123",
			isValid:        false,
			expectedStatus: http.StatusOK,
			expectedValid:  false,
		},
		{
			id:             "missing token",
			url:            "/auth/password_reset/verification",
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, testcase := range cases {
		t.Run(testcase.id, func(t *testing.T) {
			stub := &stubService{isValid: testcase.isValid}
			handler := New(stub)

			request := httptest.NewRequest(http.MethodGet, testcase.url, nil)
			recorder := httptest.NewRecorder()
			handler.ServeHTTP(recorder, request)

			assert := assert.New(t)
			assert.Equal(testcase.expectedStatus, recorder.Code)
			if testcase.expectedStatus != http.StatusOK {
				return
			}
			body := struct {
				IsValid bool `json:"valid"`
			}{}
			assert.NoError(json.Unmarshal(recorder.Body.Bytes(), &body))
			assert.Equal(testcase.expectedValid, body.IsValid)
		})
	}
}
