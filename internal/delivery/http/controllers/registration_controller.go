package controllers

import (
	"errors"
	"log/slog"
	"net/http"

	"corazones/internal/delivery/http/helpers"
	"corazones/internal/domain"
)

type RegistrationController struct {
	Logger  *slog.Logger
	Service domain.RegistrationService
}

func NewRegistrationController(logger *slog.Logger, svc domain.RegistrationService) *RegistrationController {
	return &RegistrationController{
		Logger:  logger,
		Service: svc,
	}
}

// Submit godoc
// @Summary Register a person for an event
// @Description Public registration form submission. Upserts the person by cedula and registers them for the event. Returns 201 for a new registration, 200 when the person was already registered (contact data refreshed).
// @Tags registrations
// @Accept json
// @Produce json
// @Param slug path string true "Event slug"
// @Param body body domain.RegistrationForm true "Registration form"
// @Success 200 {object} helpers.APIResponse "Already registered"
// @Success 201 {object} helpers.APIResponse "New registration created"
// @Failure 400 {object} helpers.APIResponse "error.code: validation_failed, error.fields set"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: capacity_exceeded or conflict"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{slug}/registrations [post]
func (c *RegistrationController) Submit(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")
	if slug == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing event slug")
		return
	}

	var form domain.RegistrationForm
	if !helpers.DecodeAndValidate(w, r, &form) {
		return
	}

	result, err := c.Service.Submit(r.Context(), slug, form)
	if err != nil {
		var verr *domain.ValidationError
		switch {
		case errors.As(err, &verr):
			helpers.WriteJSONFieldErrors(w, "Por favor, corrige los errores en el formulario.", verr.Fields)
		case errors.Is(err, domain.ErrNotFound):
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "Evento no encontrado.")
		case errors.Is(err, domain.ErrCapacityExceeded):
			helpers.WriteJSONError(w, http.StatusConflict, helpers.ErrCodeCapacityExceeded,
				"Lo sentimos, ya no hay cupos disponibles para este evento.")
		case errors.Is(err, domain.ErrRetryLater):
			helpers.WriteJSONError(w, http.StatusConflict, helpers.ErrCodeConflict,
				"Hubo un error al procesar tu inscripción. Por favor, inténtalo de nuevo.")
		default:
			c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
			helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError,
				"Hubo un error al procesar tu inscripción. Por favor, inténtalo de nuevo.")
		}
		return
	}

	if result.Status == domain.RegistrationCreated {
		helpers.WriteJSONSuccess(w, http.StatusCreated, result)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, result)
}

// Lookup godoc
// @Summary Look up a person by cedula
// @Description Returns the person's contact fields for form pre-fill and, when event_slug is given, whether they are already registered for that event.
// @Tags registrations
// @Produce json
// @Param cedula query string true "National ID"
// @Param event_slug query string false "Event slug"
// @Success 200 {object} helpers.APIResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /registrations/lookup [get]
func (c *RegistrationController) Lookup(w http.ResponseWriter, r *http.Request) {
	cedula := r.URL.Query().Get("cedula")
	if cedula == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing cedula")
		return
	}
	eventSlug := r.URL.Query().Get("event_slug")

	lookup, err := c.Service.Lookup(r.Context(), cedula, eventSlug)
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, "lookup failed")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, lookup)
}
