package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/tkaing/ecologie-api/internal/api/validation"
	"github.com/tkaing/ecologie-api/internal/core/domain"
	"github.com/tkaing/ecologie-api/internal/core/ports"
	"github.com/tkaing/ecologie-api/internal/core/schema"
)

// stubResourceService lets each test script the service behaviour.
type stubResourceService struct {
	createFn func(ctx context.Context, payload map[string]any) (*ports.CreateResult, error)
	listFn   func(ctx context.Context) ([]domain.Document, error)
	getFn    func(ctx context.Context, id string) (*domain.Document, error)
	searchFn func(ctx context.Context, criteria map[string]any) ([]domain.Document, error)
	updateFn func(ctx context.Context, id string, payload map[string]any) (*domain.Document, error)
	deleteFn func(ctx context.Context, id string) error
	loginFn  func(ctx context.Context, email, password string) (*ports.LoginResult, error)
}

func (s *stubResourceService) Create(ctx context.Context, payload map[string]any) (*ports.CreateResult, error) {
	return s.createFn(ctx, payload)
}

func (s *stubResourceService) List(ctx context.Context) ([]domain.Document, error) {
	return s.listFn(ctx)
}

func (s *stubResourceService) Get(ctx context.Context, id string) (*domain.Document, error) {
	return s.getFn(ctx, id)
}

func (s *stubResourceService) Search(ctx context.Context, criteria map[string]any) ([]domain.Document, error) {
	return s.searchFn(ctx, criteria)
}

func (s *stubResourceService) Update(ctx context.Context, id string, payload map[string]any) (*domain.Document, error) {
	return s.updateFn(ctx, id, payload)
}

func (s *stubResourceService) Delete(ctx context.Context, id string) error {
	return s.deleteFn(ctx, id)
}

func (s *stubResourceService) Login(ctx context.Context, email, password string) (*ports.LoginResult, error) {
	return s.loginFn(ctx, email, password)
}

func newContext(t *testing.T, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	return resp
}

func TestResourceHandler_Create_Success(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	stub := &stubResourceService{
		createFn: func(_ context.Context, payload map[string]any) (*ports.CreateResult, error) {
			if payload["email"] != "a@b.com" {
				t.Fatalf("unexpected payload: %+v", payload)
			}
			return &ports.CreateResult{Document: &domain.Document{
				ID:        "abc123",
				Fields:    map[string]any{"email": "a@b.com", "firstname": "A", "lastname": "B", "birthdate": "123", "phone": "0612345678", "location": "48.85,2.35"},
				CreatedAt: now,
			}}, nil
		},
	}
	h := NewResourceHandler(schema.Users, stub, validation.New())

	body := `{"email":"a@b.com","firstname":"A","lastname":"B","birthdate":"123","phone":"0612345678","location":"48.85,2.35"}`
	c, rec := newContext(t, http.MethodPut, "/users", body)

	if err := h.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	resp := decodeBody(t, rec)
	user, ok := resp["user"].(map[string]any)
	if !ok {
		t.Fatalf("expected user wrapper in response: %+v", resp)
	}
	if user["email"] != "a@b.com" || user["id"] != "abc123" {
		t.Fatalf("unexpected user payload: %+v", user)
	}
	if user["createdAt"] != "2024-05-01T12:00:00Z" {
		t.Fatalf("unexpected createdAt: %v", user["createdAt"])
	}
	if _, ok := resp["code"]; ok {
		t.Fatalf("users create must not return an onboarding code")
	}
}

func TestResourceHandler_Create_ValidationCollectsEverything(t *testing.T) {
	stub := &stubResourceService{
		createFn: func(context.Context, map[string]any) (*ports.CreateResult, error) {
			t.Fatalf("service must not be reached on validation failure")
			return nil, nil
		},
	}
	h := NewResourceHandler(schema.Users, stub, validation.New())

	c, rec := newContext(t, http.MethodPut, "/users", `{"email":"nope","phone":"1"}`)

	if err := h.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rec.Code)
	}

	resp := decodeBody(t, rec)
	failures, ok := resp["errors"].([]any)
	if !ok {
		t.Fatalf("expected errors array: %+v", resp)
	}
	if len(failures) != 6 {
		t.Fatalf("expected all 6 failures listed, got %d: %+v", len(failures), failures)
	}
	first, _ := failures[0].(map[string]any)
	if first["attribute"] != "email" || first["message"] == "" {
		t.Fatalf("unexpected failure shape: %+v", first)
	}
}

func TestResourceHandler_Create_MemberReturnsCode(t *testing.T) {
	stub := &stubResourceService{
		createFn: func(context.Context, map[string]any) (*ports.CreateResult, error) {
			return &ports.CreateResult{
				Document: &domain.Document{ID: "m1", Fields: map[string]any{"email": "m@asso.fr"}},
				Code:     "Ab3dE6gH",
			}, nil
		},
	}
	h := NewResourceHandler(schema.Members, stub, validation.New())

	body := `{"email":"m@asso.fr","role":"president","association":"abc"}`
	c, rec := newContext(t, http.MethodPut, "/members", body)

	if err := h.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	resp := decodeBody(t, rec)
	if resp["code"] != "Ab3dE6gH" {
		t.Fatalf("expected onboarding code in response: %+v", resp)
	}
	if _, ok := resp["member"]; !ok {
		t.Fatalf("expected member wrapper: %+v", resp)
	}
}

func TestResourceHandler_List(t *testing.T) {
	stub := &stubResourceService{
		listFn: func(context.Context) ([]domain.Document, error) {
			return []domain.Document{
				{ID: "1", Fields: map[string]any{"name": "Tri"}},
				{ID: "2", Fields: map[string]any{"name": "Compost"}},
			}, nil
		},
	}
	h := NewResourceHandler(schema.Themes, stub, validation.New())

	c, rec := newContext(t, http.MethodGet, "/themes", "")
	if err := h.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp []map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(resp) != 2 || resp[0]["id"] != "1" {
		t.Fatalf("unexpected list payload: %+v", resp)
	}
}

func TestResourceHandler_Search_EmptyBodyMeansFindAll(t *testing.T) {
	var got map[string]any
	stub := &stubResourceService{
		searchFn: func(_ context.Context, criteria map[string]any) ([]domain.Document, error) {
			got = criteria
			return nil, nil
		},
	}
	h := NewResourceHandler(schema.Themes, stub, validation.New())

	c, _ := newContext(t, http.MethodPost, "/themes/criteria", "")
	if err := h.Search(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected empty criteria, got %+v", got)
	}
}

func TestResourceHandler_Get_NotFoundPropagates(t *testing.T) {
	stub := &stubResourceService{
		getFn: func(context.Context, string) (*domain.Document, error) {
			return nil, domain.ErrNotFound
		},
	}
	h := NewResourceHandler(schema.Users, stub, validation.New())

	c, _ := newContext(t, http.MethodGet, "/users/ffffffffffffffffffffffff", "")
	c.SetParamNames("id")
	c.SetParamValues("ffffffffffffffffffffffff")

	if err := h.Get(c); err != domain.ErrNotFound {
		t.Fatalf("expected ErrNotFound to propagate, got %v", err)
	}
}

func TestResourceHandler_Delete_Confirmation(t *testing.T) {
	stub := &stubResourceService{
		deleteFn: func(_ context.Context, id string) error {
			if id != "abc123" {
				t.Fatalf("unexpected id: %s", id)
			}
			return nil
		},
	}
	h := NewResourceHandler(schema.Themes, stub, validation.New())

	c, rec := newContext(t, http.MethodDelete, "/themes/abc123", "")
	c.SetParamNames("id")
	c.SetParamValues("abc123")

	if err := h.Delete(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if resp := decodeBody(t, rec); resp["message"] == "" {
		t.Fatalf("expected confirmation message: %+v", resp)
	}
}

func TestResourceHandler_Login_Success(t *testing.T) {
	stub := &stubResourceService{
		loginFn: func(_ context.Context, email, password string) (*ports.LoginResult, error) {
			if email != "m@asso.fr" || password != "Ab3dE6gH" {
				t.Fatalf("unexpected credentials: %s %s", email, password)
			}
			return &ports.LoginResult{
				Document: &domain.Document{ID: "m1", Fields: map[string]any{"email": email}},
				Token:    "jwt-token",
			}, nil
		},
	}
	h := NewResourceHandler(schema.Members, stub, validation.New())

	c, rec := newContext(t, http.MethodPost, "/members/login", `{"email":"m@asso.fr","password":"Ab3dE6gH"}`)
	if err := h.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	resp := decodeBody(t, rec)
	if resp["token"] != "jwt-token" {
		t.Fatalf("expected token: %+v", resp)
	}
	member, ok := resp["member"].(map[string]any)
	if !ok || member["email"] != "m@asso.fr" {
		t.Fatalf("unexpected member payload: %+v", resp)
	}
}

func TestResourceHandler_Login_FailuresPropagate(t *testing.T) {
	for _, want := range []error{domain.ErrNotFound, domain.ErrInvalidCredentials, domain.ErrTooManyAttempts} {
		stub := &stubResourceService{
			loginFn: func(context.Context, string, string) (*ports.LoginResult, error) {
				return nil, want
			},
		}
		h := NewResourceHandler(schema.Members, stub, validation.New())

		c, _ := newContext(t, http.MethodPost, "/members/login", `{"email":"m@asso.fr","password":"x"}`)
		if err := h.Login(c); err != want {
			t.Fatalf("expected %v to propagate, got %v", want, err)
		}
	}
}

func TestResourceHandler_Register_MountsLoginOnlyForCredentials(t *testing.T) {
	e := echo.New()
	stub := &stubResourceService{
		loginFn: func(context.Context, string, string) (*ports.LoginResult, error) {
			return &ports.LoginResult{Document: &domain.Document{ID: "1", Fields: map[string]any{}}}, nil
		},
	}
	NewResourceHandler(schema.Themes, stub, validation.New()).Register(e)
	NewResourceHandler(schema.Members, stub, validation.New()).Register(e)

	req := httptest.NewRequest(http.MethodPost, "/themes/login", strings.NewReader(`{}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	// /themes/login only exists as GET/PATCH/DELETE /themes/:id, so a POST
	// is rejected by the router.
	if rec.Code != http.StatusNotFound && rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("themes must not expose login, got %d", rec.Code)
	}

	req = httptest.NewRequest(http.MethodPost, "/members/login", strings.NewReader(`{"email":"a","password":"b"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("members login should be routed, got %d", rec.Code)
	}
}
