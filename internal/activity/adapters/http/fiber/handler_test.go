package fiber

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"activity-dashboard-service/internal/activity/core/domain"
	"activity-dashboard-service/internal/activity/core/usecase"

	"github.com/gofiber/fiber/v2"
)

type fakeOptionsUseCase struct {
	OptionsFunc func(ctx context.Context) (*usecase.FilterOptions, error)
}

func (f *fakeOptionsUseCase) Options(ctx context.Context) (*usecase.FilterOptions, error) {
	if f.OptionsFunc != nil {
		return f.OptionsFunc(ctx)
	}
	return &usecase.FilterOptions{}, nil
}

type fakeCache struct {
	invalidated int
}

func (f *fakeCache) Invalidate() { f.invalidated++ }

func setupTestApp(uc FilterOptionsUseCase, cache CacheInvalidator) *fiber.App {
	app := fiber.New()
	h := NewActivityHandler(uc, cache)

	app.Get("/filters", h.GetFilters)
	app.Post("/activity/cache/invalidate", h.InvalidateCache)
	app.Get("/criteria", func(c *fiber.Ctx) error {
		in, err := CriteriaFromQuery(c)
		if err != nil {
			return WriteError(c, err)
		}
		return c.JSON(in)
	})

	return app
}

func doRequest(t *testing.T, app *fiber.App, method, path string) (*http.Response, []byte) {
	t.Helper()

	req := httptest.NewRequest(method, path, nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test error: %v", err)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return resp, body
}

// ------------------------------------------------------------
// CRITERIA PARSING
// ------------------------------------------------------------

func TestCriteriaFromQuery_RepeatedAndCommaSeparated(t *testing.T) {
	var got usecase.CriteriaInput
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		var err error
		got, err = CriteriaFromQuery(c)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		return c.SendStatus(http.StatusNoContent)
	})

	req := httptest.NewRequest(http.MethodGet, "/?from=2024-01-01&to=2024-01-31&origin=app,web&origin=kiosk&tag=&model=%20x%20", nil)
	if _, err := app.Test(req); err != nil {
		t.Fatalf("app.Test error: %v", err)
	}

	if got.From == nil || !got.From.Equal(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected from: %v", got.From)
	}
	if got.To == nil || !got.To.Equal(time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected to: %v", got.To)
	}
	origins := got.Values[domain.FieldOrigin]
	if len(origins) != 3 || origins[0] != "app" || origins[1] != "web" || origins[2] != "kiosk" {
		t.Fatalf("unexpected origins: %v", origins)
	}
	if _, ok := got.Values[domain.FieldTag]; ok {
		t.Fatalf("empty tag parameter must fall back to defaults")
	}
	if m := got.Values[domain.FieldModel]; len(m) != 1 || m[0] != "x" {
		t.Fatalf("unexpected model: %v", m)
	}
}

func TestCriteriaFromQuery_NoParams(t *testing.T) {
	var got usecase.CriteriaInput
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		got, _ = CriteriaFromQuery(c)
		return c.SendStatus(http.StatusNoContent)
	})

	if _, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil)); err != nil {
		t.Fatalf("app.Test error: %v", err)
	}
	if got.From != nil || got.To != nil || len(got.Values) != 0 {
		t.Fatalf("expected empty criteria, got %+v", got)
	}
}

func TestCriteriaFromQuery_BadDate(t *testing.T) {
	app := setupTestApp(&fakeOptionsUseCase{}, &fakeCache{})

	resp, body := doRequest(t, app, http.MethodGet, "/criteria?from=01/02/2024")
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}

	var er ErrorResponse
	if err := json.Unmarshal(body, &er); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if er.Error != "invalid_criteria" {
		t.Fatalf("expected invalid_criteria, got %q", er.Error)
	}
}

// ------------------------------------------------------------
// FILTERS
// ------------------------------------------------------------

func TestGetFilters_Success(t *testing.T) {
	min := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	max := time.Date(2024, 1, 9, 0, 0, 0, 0, time.UTC)
	uc := &fakeOptionsUseCase{
		OptionsFunc: func(ctx context.Context) (*usecase.FilterOptions, error) {
			return &usecase.FilterOptions{
				MinDate: &min,
				MaxDate: &max,
				Values:  map[domain.Field][]string{domain.FieldOrigin: {"app", "web"}},
				Rows:    12,
			}, nil
		},
	}
	app := setupTestApp(uc, &fakeCache{})

	resp, body := doRequest(t, app, http.MethodGet, "/filters")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.StatusCode, body)
	}

	var got FilterOptionsResponse
	if err := json.Unmarshal(body, &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.MinDate != "2024-01-01" || got.MaxDate != "2024-01-09" || got.Rows != 12 {
		t.Fatalf("unexpected response: %+v", got)
	}
	if len(got.Values["origin"]) != 2 {
		t.Fatalf("unexpected values: %+v", got.Values)
	}
}

func TestGetFilters_LoadFailed(t *testing.T) {
	uc := &fakeOptionsUseCase{
		OptionsFunc: func(ctx context.Context) (*usecase.FilterOptions, error) {
			return nil, &usecase.LoadError{Source: "postgres:temporal_amad", Err: errors.New("connection refused")}
		},
	}
	app := setupTestApp(uc, &fakeCache{})

	resp, body := doRequest(t, app, http.MethodGet, "/filters")
	if resp.StatusCode != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", resp.StatusCode)
	}

	var er ErrorResponse
	if err := json.Unmarshal(body, &er); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if er.Error != "load_failed" {
		t.Fatalf("expected load_failed, got %q", er.Error)
	}
}

func TestGetFilters_InternalError(t *testing.T) {
	uc := &fakeOptionsUseCase{
		OptionsFunc: func(ctx context.Context) (*usecase.FilterOptions, error) {
			return nil, errors.New("boom")
		},
	}
	app := setupTestApp(uc, &fakeCache{})

	resp, _ := doRequest(t, app, http.MethodGet, "/filters")
	if resp.StatusCode != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", resp.StatusCode)
	}
}

// ------------------------------------------------------------
// CACHE
// ------------------------------------------------------------

func TestInvalidateCache(t *testing.T) {
	cache := &fakeCache{}
	app := setupTestApp(&fakeOptionsUseCase{}, cache)

	resp, _ := doRequest(t, app, http.MethodPost, "/activity/cache/invalidate")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if cache.invalidated != 1 {
		t.Fatalf("expected one invalidation, got %d", cache.invalidated)
	}
}
