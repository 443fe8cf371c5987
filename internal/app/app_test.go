package app

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/brainrot-academy/academy-client/internal/config"
	"github.com/brainrot-academy/academy-client/pkg/api"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type academyStub struct {
	mu     sync.Mutex
	bodies map[string][]byte
}

func (s *academyStub) keep(r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	s.mu.Lock()
	s.bodies[r.Method+" "+r.URL.Path] = body
	s.mu.Unlock()
}

func (s *academyStub) body(key string) []byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.bodies[key]
}

func reply(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func newAcademyStub(t *testing.T) (*academyStub, *httptest.Server) {
	t.Helper()
	stub := &academyStub{bodies: map[string][]byte{}}

	r := chi.NewRouter()
	r.Get("/api/student/progress", func(w http.ResponseWriter, r *http.Request) {
		reply(w, http.StatusOK, map[string]any{"level": 2, "xp": 340})
	})
	r.Get("/api/challenge/{level}", func(w http.ResponseWriter, r *http.Request) {
		if chi.URLParam(r, "level") == "99" {
			reply(w, http.StatusNotFound, map[string]any{"error": "no such level"})
			return
		}
		reply(w, http.StatusOK, map[string]any{"title": "Hello"})
	})
	r.Post("/api/challenge/{level}/submit", func(w http.ResponseWriter, r *http.Request) {
		stub.keep(r)
		reply(w, http.StatusOK, map[string]any{"passed": true, "results": []any{}, "message": "Все тесты пройдены"})
	})
	r.Get("/api/mood/analytics/{student}", func(w http.ResponseWriter, r *http.Request) {
		reply(w, http.StatusOK, map[string]any{
			"average_mood":  4.5,
			"trend":         "improving",
			"total_records": 2,
			"records": []map[string]any{
				{"date": "2024-01-02T15:04:00Z", "mood": 4, "notes": "", "mood_emoji": "🙂"},
				{"date": "2024-01-03T09:30:00Z", "mood": 5, "notes": "exam passed", "mood_emoji": "😄"},
			},
		})
	})
	r.Post("/api/mood/record", func(w http.ResponseWriter, r *http.Request) {
		stub.keep(r)
		reply(w, http.StatusOK, map[string]any{"success": true, "record_id": 11, "message": "Настроение записано"})
	})
	r.Get("/api/mood/recommendations/{student}", func(w http.ResponseWriter, r *http.Request) {
		reply(w, http.StatusOK, map[string]any{"average_mood": 3, "recommendations": []string{"take a walk"}})
	})

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return stub, srv
}

func testConfig(baseURL string) *config.Config {
	return &config.Config{
		AppName:         "academy-client",
		LogLevel:        "error",
		APIBaseURL:      baseURL,
		RequestTimeout:  2 * time.Second,
		NotificationTTL: time.Minute,
		SettingsStore:   "memory",
	}
}

func newTestApp(t *testing.T, cfg *config.Config) (*App, *bytes.Buffer) {
	t.Helper()
	notes := &bytes.Buffer{}
	a, err := New(context.Background(), cfg, nil, notes)
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.Close(context.Background()) })
	return a, notes
}

func TestDispatchProgressPrintsPayload(t *testing.T) {
	_, srv := newAcademyStub(t)
	a, notes := newTestApp(t, testConfig(srv.URL))

	out := &bytes.Buffer{}
	require.NoError(t, Dispatch(context.Background(), a, Streams{Out: out}, []string{"progress"}))

	var payload map[string]any
	require.NoError(t, json.Unmarshal(out.Bytes(), &payload))
	assert.Equal(t, float64(2), payload["level"])
	assert.Empty(t, notes.String())
}

func TestDispatchRejectsUnknownCommand(t *testing.T) {
	a, _ := newTestApp(t, testConfig("http://127.0.0.1:1"))

	err := Dispatch(context.Background(), a, Streams{Out: io.Discard}, []string{"dance"})
	require.ErrorIs(t, err, ErrUsage)

	err = Dispatch(context.Background(), a, Streams{Out: io.Discard}, nil)
	require.ErrorIs(t, err, ErrUsage)
}

func TestDispatchChallengeFailureNotifiesOnce(t *testing.T) {
	_, srv := newAcademyStub(t)
	a, notes := newTestApp(t, testConfig(srv.URL))

	err := Dispatch(context.Background(), a, Streams{Out: io.Discard}, []string{"challenge", "99"})
	require.ErrorIs(t, err, api.ErrRequestFailed)

	assert.Equal(t, 1, strings.Count(notes.String(), api.FailureMessage))
	assert.Contains(t, notes.String(), "[DANGER]")
	assert.Equal(t, 1, a.emitter.Pending())
}

func TestDispatchSubmitReadsStdin(t *testing.T) {
	stub, srv := newAcademyStub(t)
	a, notes := newTestApp(t, testConfig(srv.URL))

	out := &bytes.Buffer{}
	in := strings.NewReader("print(1)")
	require.NoError(t, Dispatch(context.Background(), a, Streams{In: in, Out: out}, []string{"submit", "2", "-"}))

	assert.JSONEq(t, `{"code":"print(1)"}`, string(stub.body("POST /api/challenge/2/submit")))
	assert.Contains(t, notes.String(), "[SUCCESS]")
	assert.Contains(t, notes.String(), "Все тесты пройдены")
	assert.Contains(t, out.String(), `"passed": true`)
}

func TestDispatchSubmitReadsFile(t *testing.T) {
	stub, srv := newAcademyStub(t)
	a, _ := newTestApp(t, testConfig(srv.URL))

	path := filepath.Join(t.TempDir(), "solution.py")
	require.NoError(t, os.WriteFile(path, []byte("print('hi')"), 0o644))

	require.NoError(t, Dispatch(context.Background(), a, Streams{Out: io.Discard}, []string{"submit", "3", path}))
	assert.JSONEq(t, `{"code":"print('hi')"}`, string(stub.body("POST /api/challenge/3/submit")))
}

func TestDispatchSubmitMissingFile(t *testing.T) {
	_, srv := newAcademyStub(t)
	a, notes := newTestApp(t, testConfig(srv.URL))

	err := Dispatch(context.Background(), a, Streams{Out: io.Discard}, []string{"submit", "3", filepath.Join(t.TempDir(), "absent.py")})
	require.Error(t, err)
	assert.NotErrorIs(t, err, api.ErrRequestFailed)
	assert.Empty(t, notes.String())
}

func TestDispatchMoodRecord(t *testing.T) {
	stub, srv := newAcademyStub(t)
	a, notes := newTestApp(t, testConfig(srv.URL))

	args := []string{"mood-record", "42", "3", "--notes", "tired"}
	require.NoError(t, Dispatch(context.Background(), a, Streams{Out: io.Discard}, args))

	assert.JSONEq(t, `{"student_id":"42","mood_value":3,"notes":"tired"}`, string(stub.body("POST /api/mood/record")))
	assert.Contains(t, notes.String(), "Настроение записано")
}

func TestDispatchMoodRecordRejectsNonNumericMood(t *testing.T) {
	a, _ := newTestApp(t, testConfig("http://127.0.0.1:1"))

	err := Dispatch(context.Background(), a, Streams{Out: io.Discard}, []string{"mood-record", "42", "happy"})
	require.ErrorIs(t, err, ErrUsage)
}

func TestDispatchMoodAnalyticsSummary(t *testing.T) {
	_, srv := newAcademyStub(t)
	a, _ := newTestApp(t, testConfig(srv.URL))

	out := &bytes.Buffer{}
	args := []string{"mood-analytics", "7", "--days", "14", "--summary"}
	require.NoError(t, Dispatch(context.Background(), a, Streams{Out: out}, args))

	text := out.String()
	assert.Contains(t, text, "average 4.50, trend improving, 2 records")
	assert.Contains(t, text, "3 января 2024 г.")
	assert.Contains(t, text, "exam passed")
}

func TestWriteMoodSummaryWithoutData(t *testing.T) {
	out := &bytes.Buffer{}
	require.NoError(t, writeMoodSummary(out, api.MoodAnalyticsReport{Message: "Нет данных за указанный период"}))
	assert.Equal(t, "Нет данных за указанный период\n", out.String())
}

func TestDispatchMoodTips(t *testing.T) {
	_, srv := newAcademyStub(t)
	a, _ := newTestApp(t, testConfig(srv.URL))

	out := &bytes.Buffer{}
	require.NoError(t, Dispatch(context.Background(), a, Streams{Out: out}, []string{"mood-tips", "7"}))
	assert.Contains(t, out.String(), "take a walk")
}

func boltConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := testConfig("http://127.0.0.1:1")
	cfg.SettingsStore = "bbolt"
	cfg.SettingsPath = filepath.Join(t.TempDir(), "settings.db")
	return cfg
}

func themeOf(t *testing.T, a *App, args ...string) string {
	t.Helper()
	out := &bytes.Buffer{}
	require.NoError(t, Dispatch(context.Background(), a, Streams{Out: out}, append([]string{"theme"}, args...)))
	return strings.TrimSpace(out.String())
}

func TestDispatchTheme(t *testing.T) {
	a, _ := newTestApp(t, boltConfig(t))

	assert.Equal(t, "dark", themeOf(t, a))
	assert.Equal(t, "light", themeOf(t, a, "toggle"))
	assert.Equal(t, "light", themeOf(t, a))
	assert.Equal(t, "dark", themeOf(t, a, "dark"))
	assert.Equal(t, "light", themeOf(t, a, "light"))

	err := Dispatch(context.Background(), a, Streams{Out: io.Discard}, []string{"theme", "sepia"})
	require.ErrorIs(t, err, ErrUsage)
}

func TestAppsShareSettingsFile(t *testing.T) {
	cfg := boltConfig(t)

	first, _ := newTestApp(t, cfg)
	second, _ := newTestApp(t, cfg)

	assert.Equal(t, "light", themeOf(t, first, "light"))
	assert.Equal(t, "light", themeOf(t, second))
	assert.Equal(t, "dark", themeOf(t, second, "toggle"))
	assert.Equal(t, "dark", themeOf(t, first))
}

func TestNewRejectsUnknownSettingsStore(t *testing.T) {
	cfg := testConfig("http://127.0.0.1:1")
	cfg.SettingsStore = "redis"

	_, err := New(context.Background(), cfg, nil, io.Discard)
	require.Error(t, err)
}

func TestNewMirrorsNotificationsToSinks(t *testing.T) {
	_, srv := newAcademyStub(t)

	var (
		mu      sync.Mutex
		actions []string
	)
	hook := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var evt struct {
			Action string `json:"action"`
		}
		_ = json.NewDecoder(r.Body).Decode(&evt)
		mu.Lock()
		actions = append(actions, evt.Action)
		mu.Unlock()
		w.WriteHeader(http.StatusNoContent)
	}))
	defer hook.Close()

	sinksFile := filepath.Join(t.TempDir(), "sinks.yaml")
	yml := "sinks:\n  - id: hook\n    type: http\n    http:\n      url: " + hook.URL + "\n"
	require.NoError(t, os.WriteFile(sinksFile, []byte(yml), 0o644))

	cfg := testConfig(srv.URL)
	cfg.SinksFile = sinksFile
	a, err := New(context.Background(), cfg, nil, io.Discard)
	require.NoError(t, err)

	err = Dispatch(context.Background(), a, Streams{Out: io.Discard}, []string{"challenge", "99"})
	require.ErrorIs(t, err, api.ErrRequestFailed)
	require.NoError(t, a.Close(context.Background()))

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{"show", "hide"}, actions)
}

func TestNewRejectsBrokenSinksFile(t *testing.T) {
	cfg := testConfig("http://127.0.0.1:1")
	cfg.SinksFile = filepath.Join(t.TempDir(), "missing.yaml")

	_, err := New(context.Background(), cfg, nil, io.Discard)
	require.Error(t, err)
}
