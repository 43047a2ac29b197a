package http

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/bookshelf/internal/entities"
)

type fakeBackups struct {
	running bool
	next    *time.Time
}

func (f fakeBackups) IsRunning() bool        { return f.running }
func (f fakeBackups) NextBackup() *time.Time { return f.next }

func TestHealthController(t *testing.T) {
	app := newTestApp(t)
	router := app.router()

	t.Run("healthy", func(t *testing.T) {
		w := doGet(router, "/health")
		require.Equal(t, http.StatusOK, w.Code)

		health := decode[HealthResponse](t, w)
		assert.Equal(t, "healthy", health.Status)
		assert.Equal(t, "test", health.Version)
		assert.Equal(t, "ok", health.Checks["database"])
		assert.Equal(t, "disabled", health.Checks["scheduler"])
		require.NotNil(t, health.Books)
		assert.Equal(t, int64(0), *health.Books)
	})

	t.Run("counts books", func(t *testing.T) {
		app.addBook(t, "Dune", "Herbert", 1965, entities.GenreScienceFiction)

		health := decode[HealthResponse](t, doGet(router, "/health"))
		require.NotNil(t, health.Books)
		assert.Equal(t, int64(1), *health.Books)
	})

	t.Run("ping", func(t *testing.T) {
		w := doGet(router, "/ping")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "pong")
	})

	t.Run("closed database", func(t *testing.T) {
		require.NoError(t, app.db.Close())

		w := doGet(router, "/health")
		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		assert.Equal(t, "unhealthy", decode[HealthResponse](t, w).Status)
	})
}

func TestHealthController_NoDatabase(t *testing.T) {
	router := NewRouter(RouterConfig{Catalogue: newTestApp(t).service})

	w := doGet(router, "/health")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "not configured", decode[HealthResponse](t, w).Checks["database"])
}

func TestHealthController_Backups(t *testing.T) {
	app := newTestApp(t)
	next := time.Date(2030, 1, 2, 3, 0, 0, 0, time.UTC)

	t.Run("running", func(t *testing.T) {
		cfg := app.config()
		cfg.Backups = fakeBackups{running: true, next: &next}

		w := doGet(NewRouter(cfg), "/health")
		require.Equal(t, http.StatusOK, w.Code)

		health := decode[HealthResponse](t, w)
		assert.Equal(t, "running", health.Checks["scheduler"])
		require.NotNil(t, health.NextBackup)
		assert.True(t, next.Equal(*health.NextBackup))
	})

	t.Run("stopped", func(t *testing.T) {
		cfg := app.config()
		cfg.Backups = fakeBackups{}

		w := doGet(NewRouter(cfg), "/health")
		require.Equal(t, http.StatusOK, w.Code)

		health := decode[HealthResponse](t, w)
		assert.Equal(t, "healthy", health.Status)
		assert.Equal(t, "stopped", health.Checks["scheduler"])
		assert.Nil(t, health.NextBackup)
	})
}
