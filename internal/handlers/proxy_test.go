package handlers

import (
	"bytes"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"

	"github.com/yukikurage/portal-api/internal/clients"
	"github.com/yukikurage/portal-api/internal/dto"
	"github.com/yukikurage/portal-api/internal/services"
)

func (suite *APITestSuite) TestUploadDocuments() {
	var body bytes.Buffer
	form := multipart.NewWriter(&body)
	part, err := form.CreateFormFile("files", "manual.md")
	suite.Require().NoError(err)
	_, err = part.Write([]byte("# Manual"))
	suite.Require().NoError(err)
	suite.Require().NoError(form.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/documentos/subir", &body)
	req.Header.Set("Content-Type", form.FormDataContentType())
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusOK, w.Code)
	suite.Equal("ok", w.Body.String())
	suite.Equal([]string{"POST /subir_documentos"}, suite.upstreamCalls())
}

func (suite *APITestSuite) TestUploadDocuments_NoFiles() {
	var body bytes.Buffer
	form := multipart.NewWriter(&body)
	suite.Require().NoError(form.WriteField("other", "x"))
	suite.Require().NoError(form.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/documentos/subir", &body)
	req.Header.Set("Content-Type", form.FormDataContentType())
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Empty(suite.upstreamCalls())
}

func (suite *APITestSuite) TestDocumentRelays() {
	w := suite.perform(http.MethodPost, "/api/documentos/preguntar", map[string]interface{}{"question": "¿cuánto?"})
	suite.Equal(http.StatusOK, w.Code)
	suite.JSONEq(`{"respuesta":"42"}`, w.Body.String())

	w = suite.perform(http.MethodGet, "/api/documentos/estado-indice", nil)
	suite.Equal(http.StatusServiceUnavailable, w.Code)
	suite.Equal("sin índice", w.Body.String())

	w = suite.perform(http.MethodGet, "/api/documentos/listar", nil)
	suite.Equal(http.StatusOK, w.Code)
	suite.JSONEq(`["readme-project-portal.md","manual.pdf"]`, w.Body.String())

	suite.Equal(http.StatusBadRequest, suite.perform(http.MethodPost, "/api/documentos/preguntar-simple", map[string]interface{}{"question": " "}).Code)
	suite.Equal(http.StatusBadRequest, suite.perform(http.MethodDelete, "/api/documentos/eliminar", map[string]interface{}{}).Code)
	suite.Equal(http.StatusOK, suite.perform(http.MethodDelete, "/api/documentos/eliminar", map[string]interface{}{"filename": "manual.pdf"}).Code)
	suite.Equal(http.StatusOK, suite.perform(http.MethodPost, "/api/documentos/limpiar", nil).Code)
	suite.Equal(http.StatusOK, suite.perform(http.MethodPost, "/api/documentos/crear-indice", nil).Code)
}

func (suite *APITestSuite) TestDocumentUpstreamDown() {
	suite.upstream.Close()

	w := suite.perform(http.MethodPost, "/api/documentos/crear-indice", nil)
	suite.Equal(http.StatusBadGateway, w.Code)
}

func (suite *APITestSuite) TestPrompts() {
	routes := map[string]services.Backend{
		"/api/openai":             services.BackendOpenAI,
		"/api/ollama/mistral":     services.BackendOllamaMistral,
		"/api/ollama/deepseek":    services.BackendOllamaDeepseek,
		"/api/hugginface/mistral": services.BackendHFMistral,
	}
	for path, backend := range routes {
		w := suite.perform(http.MethodPost, path, dto.PromptRequest{Prompt: "hola"})
		suite.Require().Equal(http.StatusOK, w.Code, path)
		var resp dto.PromptResponse
		suite.decode(w, &resp)
		suite.Equal("respuesta", resp.Text)
		suite.Equal(backend, suite.prompts.backend)
		suite.Equal("hola", suite.prompts.prompt)
	}

	w := suite.perform(http.MethodGet, "/api/openai/ping", nil)
	suite.Equal(http.StatusOK, w.Code)
	suite.Equal("pong", w.Body.String())

	suite.prompts.err = services.ErrAIServiceNotConfigured
	suite.Equal(http.StatusServiceUnavailable, suite.perform(http.MethodPost, "/api/openai", dto.PromptRequest{Prompt: "hola"}).Code)

	suite.prompts.err = services.ErrPromptRequired
	suite.Equal(http.StatusBadRequest, suite.perform(http.MethodPost, "/api/openai", dto.PromptRequest{}).Code)

	suite.prompts.err = errors.New("openai exploded")
	w = suite.perform(http.MethodPost, "/api/openai", dto.PromptRequest{Prompt: "hola"})
	suite.Equal(http.StatusInternalServerError, w.Code)
	suite.NotContains(w.Body.String(), "exploded")
}

func (suite *APITestSuite) TestGPUMetricsAndHealth() {
	suite.gpus.metrics = []clients.GPUMetric{{Index: 0, Name: "RTX 4090", Utilization: 12.5, MemoryTotalMB: 24564, MemoryUsedMB: 800}}

	w := suite.perform(http.MethodGet, "/metrics/gpu", nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	suite.JSONEq(`[{"gpu_index":0,"gpu_name":"RTX 4090","gpu_utilization":12.5,"memory_total_mb":24564,"memory_used_mb":800}]`, w.Body.String())

	w = suite.perform(http.MethodGet, "/health", nil)
	suite.Equal(http.StatusOK, w.Code)
	suite.Contains(w.Body.String(), "ok")
}
