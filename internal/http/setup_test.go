package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/bookshelf/internal/audit"
	"github.com/mrlokans/bookshelf/internal/database"
	"github.com/mrlokans/bookshelf/internal/entities"
	"github.com/mrlokans/bookshelf/internal/events"
	"github.com/mrlokans/bookshelf/internal/services"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type testApp struct {
	db       *database.Database
	service  *services.CatalogueService
	notifier *events.Notifier
	audit    *audit.Service
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()

	db, err := database.NewDatabase(filepath.Join(t.TempDir(), "http.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	notifier := events.NewNotifier()
	t.Cleanup(func() { notifier.Close() })

	auditService := audit.NewService(db.Audit())
	return &testApp{
		db:       db,
		service:  services.NewCatalogueService(db.Books(), notifier, auditService),
		notifier: notifier,
		audit:    auditService,
	}
}

func (a *testApp) config() RouterConfig {
	return RouterConfig{
		Catalogue: a.service,
		Changes:   a.notifier,
		Database:  a.db,
		Audit:     a.audit,
		Version:   "test",
	}
}

func (a *testApp) router() *gin.Engine {
	return NewRouter(a.config())
}

func (a *testApp) addBook(t *testing.T, name, author string, year int, genre entities.Genre) *entities.Book {
	t.Helper()
	book, err := a.service.Create(services.BookInput{
		Name:            name,
		Author:          author,
		PublicationDate: time.Date(year, 1, 1, 0, 0, 0, 0, time.UTC),
		Genre:           genre,
	})
	require.NoError(t, err)
	return book
}

func doJSON(router http.Handler, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
	}
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func doForm(router http.Handler, path string, form url.Values, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func doGet(router http.Handler, path string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}
