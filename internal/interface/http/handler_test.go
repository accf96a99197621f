package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/muyik/smartschool/internal/application"
	"github.com/muyik/smartschool/internal/infrastructure/memory"
)

func newGenderRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	m, err := application.NewMediator(application.Deps{
		Users:   memory.NewUserStore(),
		Genders: memory.NewGenderStore(),
		Classes: memory.NewSchoolClassStore(),
		Logger:  logrus.New(),
	})
	if err != nil {
		t.Fatalf("mediator: %v", err)
	}
	h := NewGenderHandler(application.NewGenderService(m), logrus.New())

	r := gin.New()
	g := r.Group("/api/app/genders")
	g.GET("", h.List)
	g.GET("/:id", h.Get)
	g.POST("", h.Create)
	g.PUT("/:id", h.Update)
	g.DELETE("/:id", h.Delete)
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatal(err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

type envelope struct {
	Success bool              `json:"success"`
	Data    json.RawMessage   `json:"data"`
	Error   map[string]string `json:"error"`
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var e envelope
	if err := json.Unmarshal(w.Body.Bytes(), &e); err != nil {
		t.Fatalf("bad envelope: %v\n%s", err, w.Body.String())
	}
	return e
}

func TestGenderEndpointsLifecycle(t *testing.T) {
	r := newGenderRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/app/genders", map[string]string{
		"genderName":  "Male",
		"description": "male students",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("create status = %d: %s", w.Code, w.Body.String())
	}
	var created struct {
		ID uuid.UUID `json:"id"`
	}
	env := decodeEnvelope(t, w)
	if err := json.Unmarshal(env.Data, &created); err != nil {
		t.Fatal(err)
	}

	w = doJSON(t, r, http.MethodGet, "/api/app/genders/"+created.ID.String(), nil)
	if w.Code != http.StatusOK {
		t.Fatalf("get status = %d", w.Code)
	}

	w = doJSON(t, r, http.MethodGet, "/api/app/genders", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("list status = %d", w.Code)
	}

	w = doJSON(t, r, http.MethodDelete, "/api/app/genders/"+created.ID.String(), nil)
	if w.Code != http.StatusOK {
		t.Fatalf("delete status = %d", w.Code)
	}

	// Soft-deleted: both a read and a second delete answer 404.
	w = doJSON(t, r, http.MethodGet, "/api/app/genders/"+created.ID.String(), nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("get after delete status = %d", w.Code)
	}
	w = doJSON(t, r, http.MethodDelete, "/api/app/genders/"+created.ID.String(), nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("second delete status = %d", w.Code)
	}
}

func TestGenderEndpointErrorMapping(t *testing.T) {
	r := newGenderRouter(t)

	w := doJSON(t, r, http.MethodGet, "/api/app/genders/not-a-uuid", nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("invalid id status = %d", w.Code)
	}

	w = doJSON(t, r, http.MethodGet, "/api/app/genders/"+uuid.NewString(), nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("unknown id status = %d", w.Code)
	}

	w = doJSON(t, r, http.MethodPost, "/api/app/genders", map[string]string{"genderName": ""})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("invalid payload status = %d", w.Code)
	}
	env := decodeEnvelope(t, w)
	if env.Error["genderName"] == "" {
		t.Fatalf("expected field violation, got %v", env.Error)
	}
}

func TestListInputFromQueryDefaultsAndCap(t *testing.T) {
	gin.SetMode(gin.TestMode)

	ctx := func(rawQuery string) *gin.Context {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Request = httptest.NewRequest(http.MethodGet, "/?"+rawQuery, nil)
		return c
	}

	in, ok := listInputFromQuery(ctx(""))
	if !ok || in.MaxResultCount != defaultPageSize || in.SkipCount != 0 {
		t.Fatalf("defaults = %+v ok=%v", in, ok)
	}

	in, ok = listInputFromQuery(ctx("maxResultCount=500&skipCount=7&filter=abc&sorting=email"))
	if !ok || in.MaxResultCount != 500 || in.SkipCount != 7 || in.Filter != "abc" || in.Sorting != "email" {
		t.Fatalf("parsed = %+v ok=%v", in, ok)
	}

	if _, ok = listInputFromQuery(ctx("maxResultCount=2500")); ok {
		t.Fatal("values above the cap must be rejected")
	}

	in, ok = listInputFromQuery(ctx("maxResultCount=-5&skipCount=-3"))
	if !ok || in.MaxResultCount != defaultPageSize || in.SkipCount != 0 {
		t.Fatalf("negative values should fall back, got %+v ok=%v", in, ok)
	}
}
