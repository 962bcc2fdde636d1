package signup

import (
	"encoding/json"
	"errors"
	"io"
	"jobboard/internal/core/domain/account"
	c "jobboard/internal/core/domain/common"
	e "jobboard/internal/core/domain/errors"
	ratelimiter "jobboard/internal/core/domain/rate_limiter"
	"jobboard/internal/core/services"
	signup "jobboard/internal/core/services/sign_up"
	"jobboard/internal/http/handlers/response"
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

type Handler struct {
	service    services.Service[signup.Input, signup.Result]
	isTestMode bool
}

func New(
	service services.Service[signup.Input, signup.Result],
	isTestMode bool,
) *Handler {
	if service == nil {
		panic(e.NewNilArgumentError("service"))
	}
	return &Handler{service: service, isTestMode: isTestMode}
}

type Input struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (i *Input) FromJSON(r io.Reader) error {
	e := json.NewDecoder(r)
	return e.Decode(i)
}

func (i Input) Validate() error {
	return validation.ValidateStruct(&i,
		validation.Field(&i.Email, validation.Required, is.Email, validation.Length(0, 512)),
		validation.Field(&i.Password, validation.Required, validation.Length(8, 256)),
	)
}

type result struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
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
		signup.Input{Email: c.NewEmail(input.Email), Password: account.RawPassword(input.Password)},
	)
	if errors.Is(err, account.ErrEmailAlreadyExists) {
		response.RenderError(rw, "email already exists", http.StatusUnprocessableEntity)
		return
	}
	if errors.Is(err, ratelimiter.ErrRateLimitExceeded) {
		response.RenderRateLimitExceeded(rw)
		return
	}
	if err != nil {
		response.RenderInternalError(rw)
		return
	}

	if h.isTestMode {
		rw.Header().Set("x-test-verification-token", string(serviceResult.Account.VerificationToken.Value))
	}
	response.Render(rw, result{
		ID:    int64(serviceResult.Account.ID),
		Email: string(serviceResult.Account.Email),
	}, http.StatusCreated)
}
