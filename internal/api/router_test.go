package api

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tariften-backend/internal/core/store"
	"tariften-backend/internal/infrastructure/config"
)

// deadlineLLM records how much time each completion call was given.
type deadlineLLM struct {
	remaining []time.Duration
}

func (l *deadlineLLM) Configured() bool { return true }

func (l *deadlineLLM) Complete(ctx context.Context, system, user string, temperature float64) (string, error) {
	left := time.Duration(0)
	if deadline, ok := ctx.Deadline(); ok {
		left = time.Until(deadline)
	}
	l.remaining = append(l.remaining, left)
	return "", context.Canceled
}

func timeoutTestConfig() *config.Config {
	return &config.Config{
		Auth: config.AuthConfig{Secret: "test-secret"},
		Generation: config.GenerationConfig{
			RecipeTimeout:  2 * time.Second,
			MenuTimeout:    30 * time.Second,
			FuzzyThreshold: 0.6,
		},
	}
}

func postJSON(r http.Handler, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader([]byte(body)))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// Menu composition must run under its own longer deadline, not the
// recipe deadline of the surrounding API group.
func TestMenuRouteGetsMenuTimeout(t *testing.T) {
	llm := &deadlineLLM{}
	router, err := SetupRouter(timeoutTestConfig(), llm, store.NewMemoryStore())
	require.NoError(t, err)

	postJSON(router, "/api/v1/ai/menu",
		`{"concept":"aile kahvaltısı","guest_count":4,"event_type":"lunch"}`)

	require.NotEmpty(t, llm.remaining)
	assert.Greater(t, llm.remaining[0], 10*time.Second)
}

func TestRecipeRouteGetsRecipeTimeout(t *testing.T) {
	llm := &deadlineLLM{}
	router, err := SetupRouter(timeoutTestConfig(), llm, store.NewMemoryStore())
	require.NoError(t, err)

	postJSON(router, "/api/v1/ai/recipe", `{"input":"menemen"}`)

	require.NotEmpty(t, llm.remaining)
	assert.Greater(t, llm.remaining[0], time.Second)
	assert.LessOrEqual(t, llm.remaining[0], 2*time.Second)
}
