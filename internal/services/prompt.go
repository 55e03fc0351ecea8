package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yukikurage/portal-api/internal/clients"
	"github.com/yukikurage/portal-api/internal/logging"
	"github.com/yukikurage/portal-api/internal/worker"
)

// Backend names a language model a prompt can be routed to
type Backend string

const (
	BackendOpenAI         Backend = "openai"
	BackendOllamaMistral  Backend = "ollama-mistral"
	BackendOllamaDeepseek Backend = "ollama-deepseek"
	BackendHFMistral      Backend = "hf-mistral"
)

const noAnswerText = "Sin respuesta generada."

// ChatCompleter answers a prompt with a hosted chat model
type ChatCompleter interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// LLMAsker forwards a question to one of the Flask model endpoints
type LLMAsker interface {
	Ask(ctx context.Context, path, question string) (string, error)
}

// flaskRoute describes a Flask backend and the text served when it fails
type flaskRoute struct {
	path        string
	failedText  string
	offlineText string
}

var flaskRoutes = map[Backend]flaskRoute{
	BackendOllamaMistral: {
		path:        clients.PathOllamaMistral,
		failedText:  "Error al generar respuesta desde Mistral (Ollama).",
		offlineText: "Error al comunicarse con el servicio Mistral.",
	},
	BackendOllamaDeepseek: {
		path:        clients.PathOllamaDeepseek,
		failedText:  "Error al generar respuesta desde DeepSeek (Ollama).",
		offlineText: "Error al comunicarse con el servicio DeepSeek.",
	},
	BackendHFMistral: {
		path:        clients.PathGeneral,
		failedText:  "Error al generar respuesta general.",
		offlineText: "Error al comunicarse con el servicio general.",
	},
}

// PromptRouter sends prompts to a language model on the worker pool. Flask backends degrade to a
// fixed text when they fail; OpenAI failures are returned to the caller.
type PromptRouter struct {
	pool    *worker.Pool
	timeout time.Duration
	openai  ChatCompleter
	flask   LLMAsker
}

// NewPromptRouter creates a router. openai may be nil when no API key is configured.
func NewPromptRouter(pool *worker.Pool, timeout time.Duration, openai ChatCompleter, flask LLMAsker) *PromptRouter {
	return &PromptRouter{
		pool:    pool,
		timeout: timeout,
		openai:  openai,
		flask:   flask,
	}
}

// Ask runs the prompt on backend and waits for the answer. The call is bounded by the router
// timeout but not by ctx's cancellation, so a client hanging up does not abort the upstream call.
func (r *PromptRouter) Ask(ctx context.Context, backend Backend, prompt string) (string, error) {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return "", ErrPromptRequired
	}

	var job func(context.Context) (string, error)
	switch backend {
	case BackendOpenAI:
		if r.openai == nil {
			return "", ErrAIServiceNotConfigured
		}
		job = func(ctx context.Context) (string, error) {
			return r.openai.Complete(ctx, prompt)
		}
	default:
		route, ok := flaskRoutes[backend]
		if !ok {
			return "", invalidf("%s: %q", ErrUnknownBackend, backend)
		}
		job = func(ctx context.Context) (string, error) {
			return r.askFlask(ctx, backend, route, prompt), nil
		}
	}

	jobCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), r.timeout)
	defer cancel()

	answer, err := worker.Await(jobCtx, worker.Submit(jobCtx, r.pool, job))
	if err != nil {
		return "", fmt.Errorf("%s prompt failed: %w", backend, err)
	}
	return answer, nil
}

func (r *PromptRouter) askFlask(ctx context.Context, backend Backend, route flaskRoute, prompt string) string {
	log := logging.Logger.WithFields(logrus.Fields{"backend": backend})

	answer, err := r.flask.Ask(ctx, route.path, prompt)
	if err == nil {
		log.Debug("Model answered")
		return answer
	}

	var statusErr *clients.StatusError
	switch {
	case errors.Is(err, clients.ErrNoAnswer):
		log.Warn("Model answered without text")
		return noAnswerText
	case errors.As(err, &statusErr):
		log.WithError(err).Error("Model service returned an error")
		return route.failedText
	default:
		log.WithError(err).Error("Model service unreachable")
		return route.offlineText
	}
}
