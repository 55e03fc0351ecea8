package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/yukikurage/portal-api/internal/middleware"
	"github.com/yukikurage/portal-api/internal/services"
)

// Handlers groups every handler mounted by RegisterRoutes
type Handlers struct {
	Projects     *ProjectHandler
	Servers      *ServerHandler
	Environments *EnvironmentHandler
	Tasks        *TaskHandler
	DailyNotes   *DailyNoteHandler
	Documents    *DocumentHandler
	Prompts      *PromptHandler
	Metrics      *MetricsHandler
	Health       *HealthHandler
}

// RegisterRoutes mounts the portal API on r
func RegisterRoutes(r *gin.Engine, h Handlers) {
	id := middleware.RequireID("id")

	r.GET("/health", h.Health.Health)
	r.GET("/metrics/gpu", h.Metrics.GPU)

	api := r.Group("/api")

	projects := api.Group("/projects")
	{
		projects.GET("", h.Projects.ListProjects)
		projects.GET("/list", h.Projects.ListAllProjects)
		projects.GET("/name/:name", h.Projects.GetProjectByName)
		projects.GET("/:id", id, h.Projects.GetProject)
		projects.POST("", h.Projects.CreateProject)
		projects.PUT("/:id", id, h.Projects.UpdateProject)
		projects.DELETE("/:id", id, h.Projects.DeleteProject)
		projects.DELETE("/name/:name", h.Projects.DeleteProjectByName)
	}

	servers := api.Group("/server")
	{
		servers.GET("", h.Servers.ListServers)
		servers.GET("/list", h.Servers.ListAllServers)
		servers.GET("/name/:name", h.Servers.GetServerByName)
		servers.GET("/:id", id, h.Servers.GetServer)
		servers.POST("", h.Servers.CreateServer)
		servers.PUT("/:id", id, h.Servers.UpdateServer)
		servers.DELETE("/:id", id, h.Servers.DeleteServer)
		servers.DELETE("/name/:name", h.Servers.DeleteServerByName)
	}

	envs := api.Group("/environment")
	{
		envs.GET("", h.Environments.ListEnvironments)
		envs.GET("/list", h.Environments.ListAllEnvironments)
		envs.GET("/type/:type", h.Environments.GetEnvironmentByType)
		envs.GET("/:id", id, h.Environments.GetEnvironment)
		envs.POST("", h.Environments.CreateEnvironment)
		envs.PUT("/:id", id, h.Environments.UpdateEnvironment)
		envs.DELETE("/:id", id, h.Environments.DeleteEnvironment)
		envs.DELETE("/type/:type", h.Environments.DeleteEnvironmentByType)
	}

	tasks := api.Group("/tasks")
	{
		tasks.GET("", h.Tasks.ListTasks)
		tasks.GET("/list", h.Tasks.ListAllTasks)
		tasks.GET("/stats", h.Tasks.GetStats)
		tasks.GET("/status/:status", h.Tasks.ListTasksByStatus)
		tasks.GET("/priority/:priority", h.Tasks.ListTasksByPriority)
		tasks.GET("/assignedTo/:assignedTo", h.Tasks.ListTasksByAssignedTo)
		tasks.GET("/project/:projectId", middleware.RequireID("projectId"), h.Tasks.ListTasksByProject)
		tasks.GET("/:id", id, h.Tasks.GetTask)
		tasks.POST("", h.Tasks.CreateTask)
		tasks.POST("/suggest", h.Tasks.SuggestTasks)
		tasks.PUT("/:id", id, h.Tasks.UpdateTask)
		tasks.PUT("/:id/assign-project/:projectId", id, middleware.RequireID("projectId"), h.Tasks.AssignProject)
		tasks.PUT("/:id/unassign-project", id, h.Tasks.UnassignProject)
		tasks.DELETE("/:id", id, h.Tasks.DeleteTask)
		tasks.DELETE("/title/:title", h.Tasks.DeleteTaskByTitle)
	}

	notes := api.Group("/daily-notes")
	{
		notes.GET("", h.DailyNotes.ListNotes)
		notes.GET("/list", h.DailyNotes.ListAllNotes)
		notes.GET("/stats", h.DailyNotes.GetStats)
		notes.GET("/current-month", h.DailyNotes.ListCurrentMonthNotes)
		notes.GET("/date-range", h.DailyNotes.ListNotesByDateRange)
		notes.GET("/search", h.DailyNotes.SearchNotes)
		notes.GET("/map", h.DailyNotes.NotesMap)
		notes.GET("/month/:year/:month", h.DailyNotes.ListNotesByMonth)
		notes.GET("/year/:year", h.DailyNotes.ListNotesByYear)
		notes.GET("/exists/:date", h.DailyNotes.NoteExists)
		notes.GET("/date/:date", h.DailyNotes.GetNoteByDate)
		notes.GET("/:id", id, h.DailyNotes.GetNote)
		notes.POST("", h.DailyNotes.CreateNote)
		notes.POST("/create-or-update", h.DailyNotes.CreateOrUpdateNote)
		notes.PUT("/date/:date", h.DailyNotes.UpdateNoteByDate)
		notes.PUT("/:id", id, h.DailyNotes.UpdateNote)
		notes.DELETE("/date/:date", h.DailyNotes.DeleteNoteByDate)
		notes.DELETE("/:id", id, h.DailyNotes.DeleteNote)
	}

	docs := api.Group("/documentos")
	{
		docs.POST("/subir", h.Documents.Upload)
		docs.POST("/crear-indice", h.Documents.BuildIndex)
		docs.GET("/estado-indice", h.Documents.IndexStatus)
		docs.POST("/preguntar", h.Documents.Ask)
		docs.POST("/preguntar-simple", h.Documents.AskSimple)
		docs.POST("/limpiar", h.Documents.Clear)
		docs.GET("/listar", h.Documents.List)
		docs.DELETE("/eliminar", h.Documents.Delete)
	}

	api.POST("/openai", h.Prompts.Ask(services.BackendOpenAI))
	api.GET("/openai/ping", h.Prompts.Ping)
	api.POST("/ollama/mistral", h.Prompts.Ask(services.BackendOllamaMistral))
	api.POST("/ollama/deepseek", h.Prompts.Ask(services.BackendOllamaDeepseek))
	api.POST("/hugginface/mistral", h.Prompts.Ask(services.BackendHFMistral))
}
