package http

import (
	"bufio"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/bookshelf/internal/entities"
	"github.com/mrlokans/bookshelf/internal/views"
)

type sseEvent struct {
	name string
	data string
}

// readEvent returns the next server-sent event.
func readEvent(t *testing.T, lines <-chan string) sseEvent {
	t.Helper()
	var ev sseEvent
	for {
		select {
		case line, ok := <-lines:
			require.True(t, ok, "stream closed")
			switch {
			case strings.HasPrefix(line, "event:"):
				ev.name = strings.TrimSpace(strings.TrimPrefix(line, "event:"))
			case strings.HasPrefix(line, "data:"):
				ev.data = strings.TrimSpace(strings.TrimPrefix(line, "data:"))
			case line == "" && ev.name != "":
				return ev
			}
		case <-time.After(5 * time.Second):
			t.Fatal("timed out waiting for event")
		}
	}
}

// openStream starts reading url as an event stream.
func openStream(t *testing.T, client *http.Client, url string) <-chan string {
	t.Helper()
	resp, err := client.Get(url)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Contains(t, resp.Header.Get("Content-Type"), "text/event-stream")

	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(resp.Body)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
	}()
	return lines
}

func TestEventsController_Stream(t *testing.T) {
	app := newTestApp(t)
	srv := httptest.NewServer(app.router())
	defer srv.Close()

	lines := openStream(t, srv.Client(), srv.URL+"/events?q=herb&sort=name_desc")
	require.Equal(t, "ready", readEvent(t, lines).name)

	app.addBook(t, "Dune", "Herbert", 1965, entities.GenreScienceFiction)
	ev := readEvent(t, lines)
	require.Equal(t, "changed", ev.name)

	var snap views.Snapshot
	require.NoError(t, json.Unmarshal([]byte(ev.data), &snap), ev.data)
	assert.Equal(t, views.StatePopulated, snap.State)
	require.Len(t, snap.Rows, 1)
	assert.Equal(t, "Dune", snap.Rows[0].Name)

	// A book outside the search still re-derives the same rows.
	app.addBook(t, "Hobbit", "Tolkien", 1937, entities.GenreFantasy)
	ev = readEvent(t, lines)
	require.NoError(t, json.Unmarshal([]byte(ev.data), &snap), ev.data)
	assert.Len(t, snap.Rows, 1)
}

func TestEventsController_UnknownSort(t *testing.T) {
	app := newTestApp(t)
	w := doGet(app.router(), "/events?sort=year")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestEventsController_EndsWhenChangesClose(t *testing.T) {
	app := newTestApp(t)
	srv := httptest.NewServer(app.router())
	defer srv.Close()

	lines := openStream(t, srv.Client(), srv.URL+"/events")
	require.Equal(t, "ready", readEvent(t, lines).name)

	require.NoError(t, app.notifier.Close())

	assert.Eventually(t, func() bool {
		for {
			select {
			case _, ok := <-lines:
				if !ok {
					return true
				}
			default:
				return false
			}
		}
	}, 5*time.Second, 10*time.Millisecond)
}
