package clients

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// ErrNoAnswer means the model answered without a "respuesta" field.
var ErrNoAnswer = errors.New("llm answer has no respuesta")

// StatusError is a non-2xx answer from a language-model endpoint.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("llm service answered %d: %s", e.StatusCode, e.Body)
}

// Paths of the Flask language-model endpoints.
const (
	PathOllamaMistral  = "/responder_ollama_mistral"
	PathOllamaDeepseek = "/responder_ollama_deepseek"
	PathGeneral        = "/responder_general"
)

// FlaskLLM forwards questions to the Flask-hosted language models.
type FlaskLLM struct {
	client *Client
}

func NewFlaskLLM(client *Client) *FlaskLLM {
	return &FlaskLLM{client: client}
}

// Ask posts {question} to path and returns the "respuesta" field of the answer.
func (f *FlaskLLM) Ask(ctx context.Context, path, question string) (string, error) {
	relay, err := f.client.PostJSON(ctx, path, questionRequest{Question: question})
	if err != nil {
		return "", err
	}
	if !relay.OK() {
		return "", &StatusError{StatusCode: relay.StatusCode, Body: string(relay.Body)}
	}

	var answer struct {
		Respuesta *string `json:"respuesta"`
	}
	if err := json.Unmarshal(relay.Body, &answer); err != nil {
		return "", fmt.Errorf("failed to parse llm answer: %w", err)
	}
	if answer.Respuesta == nil {
		return "", ErrNoAnswer
	}
	return *answer.Respuesta, nil
}
