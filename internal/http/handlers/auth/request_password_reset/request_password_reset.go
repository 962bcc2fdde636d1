package requestpasswordreset

import (
	"encoding/json"
	"errors"
	"io"
	c "jobboard/internal/core/domain/common"
	e "jobboard/internal/core/domain/errors"
	ratelimiter "jobboard/internal/core/domain/rate_limiter"
	"jobboard/internal/core/services"
	service "jobboard/internal/core/services/request_password_reset"
	"jobboard/internal/http/handlers/response"
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

type Handler struct {
	service    services.Service[service.Input, service.Result]
	isTestMode bool
}

func New(
	service services.Service[service.Input, service.Result],
	isTestMode bool,
) *Handler {
	if service == nil {
		panic(e.NewNilArgumentError("service"))
	}
	return &Handler{service: service, isTestMode: isTestMode}
}

type Input struct {
	Email string `json:"email"`
}

func (i *Input) FromJSON(r io.Reader) error {
	e := json.NewDecoder(r)
	return e.Decode(i)
}

func (i Input) Validate() error {
	return validation.ValidateStruct(&i,
		validation.Field(&i.Email, validation.Required, is.Email, validation.Length(0, 512)),
	)
}

type result struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func (h *Handler) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	input := Input{}
	if err := input.FromJSON(r.Body); err != nil {
		response.RenderError(rw, "invalid request data", http.StatusBadRequest)
		return
	}
	if err := input.Validate(); err != nil {
		response.Render(rw, err, http.StatusBadRequest)
		return
	}

	serviceResult, err := h.service.Run(
		r.Context(),
		service.Input{Email: c.NewEmail(input.Email)},
	)
	if err != nil {
		if errors.Is(err, ratelimiter.ErrRateLimitExceeded) {
			response.RenderRateLimitExceeded(rw)
			return
		}
		response.RenderInternalError(rw)
		return
	}

	if h.isTestMode {
		rw.Header().Set("x-test-password-reset-token", string(serviceResult.Token))
	}
	// The body never says whether the account exists.
	response.Render(rw, result{
		Success: true,
		Message: "If your account exists, a reset link has been sent.",
	}, http.StatusOK)
}
