package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"

	"github.com/yukikurage/portal-api/internal/clients"
	"github.com/yukikurage/portal-api/internal/config"
	"github.com/yukikurage/portal-api/internal/repository"
	"github.com/yukikurage/portal-api/internal/services"
	"github.com/yukikurage/portal-api/internal/testutils"
)

type stubPrompts struct {
	backend services.Backend
	prompt  string
	answer  string
	err     error
}

func (s *stubPrompts) Ask(_ context.Context, backend services.Backend, prompt string) (string, error) {
	s.backend, s.prompt = backend, prompt
	return s.answer, s.err
}

type stubGPUs struct {
	metrics []clients.GPUMetric
}

func (s *stubGPUs) Get(context.Context) []clients.GPUMetric {
	return s.metrics
}

// APITestSuite runs requests through the full router against in-memory SQLite and a fake
// document index service.
type APITestSuite struct {
	suite.Suite
	db       *gorm.DB
	router   *gin.Engine
	upstream *httptest.Server
	prompts  *stubPrompts
	gpus     *stubGPUs

	mu    sync.Mutex
	calls []string
}

func (suite *APITestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.db = testutils.NewTestDB(suite.T())
	suite.calls = nil

	suite.upstream = httptest.NewServer(http.HandlerFunc(suite.serveUpstream))
	suite.T().Cleanup(suite.upstream.Close)

	upstreamCfg := config.UpstreamConfig{RequestTimeout: 5 * time.Second, BreakerFailures: 3, BreakerOpenDelay: time.Second}
	docs := clients.NewDocumentIndex(clients.NewClient("documents", suite.upstream.URL, upstreamCfg))

	projectRepo := repository.NewProjectRepository(suite.db)
	serverRepo := repository.NewServerRepository(suite.db)
	suite.prompts = &stubPrompts{answer: "respuesta"}
	suite.gpus = &stubGPUs{metrics: []clients.GPUMetric{services.UnknownGPU}}

	suite.router = gin.New()
	RegisterRoutes(suite.router, Handlers{
		Projects:     NewProjectHandler(services.NewProjectService(projectRepo, services.NewReadmeSync(docs))),
		Servers:      NewServerHandler(services.NewServerService(serverRepo)),
		Environments: NewEnvironmentHandler(services.NewEnvironmentService(repository.NewEnvironmentRepository(suite.db), projectRepo, serverRepo)),
		Tasks:        NewTaskHandler(services.NewTaskService(repository.NewTaskRepository(suite.db), projectRepo, nil)),
		DailyNotes:   NewDailyNoteHandler(services.NewDailyNoteService(repository.NewDailyNoteRepository(suite.db))),
		Documents:    NewDocumentHandler(docs),
		Prompts:      NewPromptHandler(suite.prompts),
		Metrics:      NewMetricsHandler(suite.gpus),
		Health:       NewHealthHandler(suite.db),
	})
}

func (suite *APITestSuite) serveUpstream(w http.ResponseWriter, r *http.Request) {
	suite.mu.Lock()
	suite.calls = append(suite.calls, r.Method+" "+r.URL.Path)
	suite.mu.Unlock()

	switch r.URL.Path {
	case "/listar_documentos":
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"documentos":["readme-project-portal.md","manual.pdf"]}`))
	case "/preguntar_documentos":
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"respuesta":"42"}`))
	case "/estado_indice":
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte("sin índice"))
	default:
		_, _ = w.Write([]byte("ok"))
	}
}

func (suite *APITestSuite) upstreamCalls() []string {
	suite.mu.Lock()
	defer suite.mu.Unlock()
	return append([]string(nil), suite.calls...)
}

// perform sends a request through the router; body is JSON encoded unless it is nil
func (suite *APITestSuite) perform(method, url string, body interface{}) *httptest.ResponseRecorder {
	var req *http.Request
	if body != nil {
		payload, err := json.Marshal(body)
		suite.Require().NoError(err)
		req = httptest.NewRequest(method, url, bytes.NewReader(payload))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, url, nil)
	}
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *APITestSuite) decode(w *httptest.ResponseRecorder, out interface{}) {
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), out), w.Body.String())
}

// create posts body to url, expects 201 and returns the decoded id
func (suite *APITestSuite) create(url string, body interface{}) uint64 {
	w := suite.perform(http.MethodPost, url, body)
	suite.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	var created struct {
		ID uint64 `json:"id"`
	}
	suite.decode(w, &created)
	return created.ID
}
