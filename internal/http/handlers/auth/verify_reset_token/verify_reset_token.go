package verifyresettoken

import (
	"jobboard/internal/core/domain/account"
	e "jobboard/internal/core/domain/errors"
	"jobboard/internal/core/services"
	service "jobboard/internal/core/services/verify_reset_token"
	"jobboard/internal/http/handlers/response"
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation"
)

type Handler struct {
	service services.Service[service.Input, service.Result]
}

func New(service services.Service[service.Input, service.Result]) *Handler {
	if service == nil {
		panic(e.NewNilArgumentError("service"))
	}
	return &Handler{service: service}
}

type Input struct {
	Token string
}

func (i Input) Validate() error {
	return validation.ValidateStruct(&i,
		validation.Field(&i.Token, validation.Required, validation.Length(0, 1024)),
	)
}

type result struct {
	IsValid bool `json:"valid"`
}

func (h *Handler) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	input := Input{Token: r.URL.Query().Get("token")}
	if err := input.Validate(); err != nil {
		response.Render(rw, err, http.StatusBadRequest)
		return
	}

	serviceResult, err := h.service.Run(
		r.Context(),
		service.Input{Token: account.ResetToken(input.Token)},
	)
	if err != nil {
		response.RenderInternalError(rw)
		return
	}

	response.Render(rw, result{IsValid: serviceResult.IsValid}, http.StatusOK)
}
