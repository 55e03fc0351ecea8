package services

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yukikurage/portal-api/internal/clients"
	"github.com/yukikurage/portal-api/internal/worker"
)

type fakeCompleter struct {
	answer string
	err    error
}

func (f *fakeCompleter) Complete(_ context.Context, prompt string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return f.answer + ": " + prompt, nil
}

type fakeAsker struct {
	paths  []string
	answer string
	err    error
	block  chan struct{}
}

func (f *fakeAsker) Ask(_ context.Context, path, _ string) (string, error) {
	f.paths = append(f.paths, path)
	if f.block != nil {
		<-f.block
	}
	if f.err != nil {
		return "", f.err
	}
	return f.answer, nil
}

func newTestRouter(openai ChatCompleter, flask LLMAsker) *PromptRouter {
	return NewPromptRouter(worker.NewPool(2), time.Second, openai, flask)
}

func TestPromptRouter_RoutesFlaskBackends(t *testing.T) {
	cases := map[Backend]string{
		BackendOllamaMistral:  clients.PathOllamaMistral,
		BackendOllamaDeepseek: clients.PathOllamaDeepseek,
		BackendHFMistral:      clients.PathGeneral,
	}
	for backend, path := range cases {
		t.Run(string(backend), func(t *testing.T) {
			flask := &fakeAsker{answer: "hola"}
			answer, err := newTestRouter(nil, flask).Ask(context.Background(), backend, "  ¿qué tal?  ")
			require.NoError(t, err)
			assert.Equal(t, "hola", answer)
			assert.Equal(t, []string{path}, flask.paths)
		})
	}
}

func TestPromptRouter_FlaskFailuresBecomeFallbackText(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want string
	}{
		{"no answer", clients.ErrNoAnswer, "Sin respuesta generada."},
		{"upstream error", &clients.StatusError{StatusCode: http.StatusInternalServerError}, "Error al generar respuesta desde Mistral (Ollama)."},
		{"unreachable", errors.New("connection refused"), "Error al comunicarse con el servicio Mistral."},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			router := newTestRouter(nil, &fakeAsker{err: tc.err})
			answer, err := router.Ask(context.Background(), BackendOllamaMistral, "hola")
			require.NoError(t, err)
			assert.Equal(t, tc.want, answer)
		})
	}
}

func TestPromptRouter_OpenAI(t *testing.T) {
	answer, err := newTestRouter(&fakeCompleter{answer: "ok"}, nil).Ask(context.Background(), BackendOpenAI, "hola")
	require.NoError(t, err)
	assert.Equal(t, "ok: hola", answer)

	upstream := errors.New("rate limited")
	_, err = newTestRouter(&fakeCompleter{err: upstream}, nil).Ask(context.Background(), BackendOpenAI, "hola")
	assert.ErrorIs(t, err, upstream)

	_, err = newTestRouter(nil, nil).Ask(context.Background(), BackendOpenAI, "hola")
	assert.ErrorIs(t, err, ErrAIServiceNotConfigured)
}

func TestPromptRouter_RejectsBadInput(t *testing.T) {
	router := newTestRouter(&fakeCompleter{}, &fakeAsker{})

	_, err := router.Ask(context.Background(), BackendOpenAI, "   ")
	assert.ErrorIs(t, err, ErrPromptRequired)

	_, err = router.Ask(context.Background(), Backend("gpt-9"), "hola")
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestPromptRouter_CallerCancellationDoesNotAbortUpstream(t *testing.T) {
	flask := &fakeAsker{answer: "tarde", block: make(chan struct{})}
	router := newTestRouter(nil, flask)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	close(flask.block)

	answer, err := router.Ask(ctx, BackendHFMistral, "hola")
	require.NoError(t, err)
	assert.Equal(t, "tarde", answer)
}

func TestPromptRouter_Timeout(t *testing.T) {
	flask := &fakeAsker{block: make(chan struct{})}
	defer close(flask.block)
	router := NewPromptRouter(worker.NewPool(1), 50*time.Millisecond, nil, flask)

	_, err := router.Ask(context.Background(), BackendHFMistral, "hola")
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
