package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/tkaing/ecologie-api/internal/api/metrics"
	"github.com/tkaing/ecologie-api/internal/api/validation"
	"github.com/tkaing/ecologie-api/internal/core/domain"
	"github.com/tkaing/ecologie-api/internal/core/ports"
)

// ResourceHandler serves the uniform CRUD surface of one resource type. The
// descriptor decides the route prefix, the validation schema, and whether a
// login route is mounted.
type ResourceHandler struct {
	desc     domain.Descriptor
	service  ports.ResourceService
	validate *validation.Validator
}

func NewResourceHandler(desc domain.Descriptor, service ports.ResourceService, validate *validation.Validator) *ResourceHandler {
	return &ResourceHandler{desc: desc, service: service, validate: validate}
}

// Register mounts the resource's routes on e.
func (h *ResourceHandler) Register(e *echo.Echo) {
	g := e.Group("/" + h.desc.Name)
	g.PUT("", h.Create)
	g.GET("", h.List)
	g.POST("/criteria", h.Search)
	g.GET("/:id", h.Get)
	g.PATCH("/:id", h.Update)
	g.DELETE("/:id", h.Delete)
	if h.desc.Credential {
		g.POST("/login", h.Login)
	}
}

// validationResponse is the 422 envelope listing every violated field.
type validationResponse struct {
	Errors []domain.FieldError `json:"errors"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Create handles PUT /<resource>.
//
// @Summary      Create a document
// @Accept       json
// @Produce      json
// @Success      200  {object}  map[string]any
// @Failure      422  {object}  validationResponse
// @Failure      500  {object}  map[string]string
func (h *ResourceHandler) Create(c echo.Context) error {
	payload, err := bindPayload(c)
	if err != nil {
		return err
	}

	if failures := h.validate.Validate(h.desc, payload); len(failures) > 0 {
		metrics.ValidationFailuresTotal.WithLabelValues(h.desc.Name).Inc()
		return c.JSON(http.StatusUnprocessableEntity, validationResponse{Errors: failures})
	}

	result, err := h.service.Create(c.Request().Context(), payload)
	if err != nil {
		return err
	}

	metrics.DocumentsCreatedTotal.WithLabelValues(h.desc.Name).Inc()

	resp := map[string]any{h.desc.Singular: result.Document.Payload()}
	if result.Code != "" {
		// The onboarding code is shown exactly once; only its hash is stored.
		resp["code"] = result.Code
	}
	return c.JSON(http.StatusOK, resp)
}

// List handles GET /<resource>.
func (h *ResourceHandler) List(c echo.Context) error {
	docs, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, payloads(docs))
}

// Search handles POST /<resource>/criteria. The body is an exact-match
// filter; an empty body lists everything.
func (h *ResourceHandler) Search(c echo.Context) error {
	criteria, err := bindPayload(c)
	if err != nil {
		return err
	}

	docs, err := h.service.Search(c.Request().Context(), criteria)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, payloads(docs))
}

// Get handles GET /<resource>/:id.
func (h *ResourceHandler) Get(c echo.Context) error {
	doc, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, doc.Payload())
}

// Update handles PATCH /<resource>/:id. Despite the verb this is a full
// replace of the declared fields, not a partial merge; createdAt and stored
// credentials are preserved server-side.
func (h *ResourceHandler) Update(c echo.Context) error {
	payload, err := bindPayload(c)
	if err != nil {
		return err
	}

	if failures := h.validate.Validate(h.desc, payload); len(failures) > 0 {
		metrics.ValidationFailuresTotal.WithLabelValues(h.desc.Name).Inc()
		return c.JSON(http.StatusUnprocessableEntity, validationResponse{Errors: failures})
	}

	doc, err := h.service.Update(c.Request().Context(), c.Param("id"), payload)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, doc.Payload())
}

// Delete handles DELETE /<resource>/:id.
func (h *ResourceHandler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}

	metrics.DocumentsDeletedTotal.WithLabelValues(h.desc.Name).Inc()
	return c.JSON(http.StatusOK, map[string]string{"message": "Le document a été supprimé."})
}

// Login handles POST /<resource>/login for credential resources.
//
// @Summary      Authenticate by email and password
// @Accept       json
// @Produce      json
// @Success      200  {object}  map[string]any
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      429  {object}  map[string]string
func (h *ResourceHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	result, err := h.service.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues(h.desc.Name, loginOutcome(err)).Inc()
		return err
	}

	metrics.LoginsTotal.WithLabelValues(h.desc.Name, "success").Inc()
	return c.JSON(http.StatusOK, map[string]any{
		h.desc.Singular: result.Document.Payload(),
		"token":         result.Token,
	})
}

func loginOutcome(err error) string {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return "not_found"
	case errors.Is(err, domain.ErrInvalidCredentials):
		return "bad_password"
	case errors.Is(err, domain.ErrTooManyAttempts):
		return "throttled"
	}
	return "error"
}

// bindPayload decodes a JSON object body into a map. An empty body is an
// empty map, not an error.
func bindPayload(c echo.Context) (map[string]any, error) {
	payload := map[string]any{}
	if err := c.Bind(&payload); err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	return payload, nil
}

func payloads(docs []domain.Document) []map[string]any {
	out := make([]map[string]any, len(docs))
	for i := range docs {
		out[i] = docs[i].Payload()
	}
	return out
}
