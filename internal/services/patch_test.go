package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/yukikurage/portal-api/internal/models"
)

func TestProjectPatch_ApplyOnlyTouchesSetFields(t *testing.T) {
	created := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	project := &models.Project{
		Name:         "Portal",
		Description:  "Admin portal",
		Status:       "activo",
		Tags:         "ia,admin",
		TechStack:    "go",
		Informacion:  "# Portal",
		CreationDate: &created,
	}

	ProjectPatch{Status: strPtr("archivado"), Name: strPtr("  Portal IA ")}.Apply(project)

	assert.Equal(t, "Portal IA", project.Name)
	assert.Equal(t, "archivado", project.Status)
	assert.Equal(t, "Admin portal", project.Description)
	assert.Equal(t, "ia,admin", project.Tags)
	assert.Equal(t, "go", project.TechStack)
	assert.Equal(t, "# Portal", project.Informacion)
	assert.Equal(t, &created, project.CreationDate)
}

func TestTaskPatch_StatusOnly(t *testing.T) {
	task := &models.Task{
		Title:       "Deploy",
		Description: "Deploy the API",
		Priority:    models.TaskPriorityHigh,
		Status:      models.TaskStatusInProgress,
		AssignedTo:  "Ana",
		DueDate:     datePtr(2024, 6, 1),
	}

	status := models.TaskStatusCompleted
	TaskPatch{Status: &status}.Apply(task)

	assert.Equal(t, models.TaskStatusCompleted, task.Status)
	assert.Equal(t, "Deploy", task.Title)
	assert.Equal(t, "Deploy the API", task.Description)
	assert.Equal(t, models.TaskPriorityHigh, task.Priority)
	assert.Equal(t, "Ana", task.AssignedTo)
	assert.Equal(t, datePtr(2024, 6, 1), task.DueDate)
}

func TestTaskPatch_EmptyAssignedToClears(t *testing.T) {
	task := &models.Task{AssignedTo: "Ana"}
	TaskPatch{AssignedTo: strPtr("")}.Apply(task)
	assert.Empty(t, task.AssignedTo)

	task.AssignedTo = "Luis"
	TaskPatch{}.Apply(task)
	assert.Equal(t, "Luis", task.AssignedTo)
}

func TestDailyNotePatch_TrimsContent(t *testing.T) {
	note := &models.DailyNote{Date: date(2024, 1, 1), Content: "old"}
	DailyNotePatch{Content: strPtr("  new content \n")}.Apply(note)

	assert.Equal(t, "new content", note.Content)
	assert.Equal(t, date(2024, 1, 1), note.Date)
}

func TestEnvironmentPatch_ChangingServerDropsLoadedServer(t *testing.T) {
	oldServer := uint64(1)
	newServer := uint64(2)
	env := &models.Environment{Type: "prod", ServerID: &oldServer, Server: &models.Server{ID: 1}}

	EnvironmentPatch{ServerID: &newServer}.Apply(env)

	assert.Equal(t, &newServer, env.ServerID)
	assert.Nil(t, env.Server)
	assert.Equal(t, "prod", env.Type)
}

func TestServerPatch_Apply(t *testing.T) {
	server := &models.Server{Name: "gpu-01", IP: "10.0.0.1", OS: "Ubuntu", Notes: "rack 2"}
	ServerPatch{IP: strPtr(" 10.0.0.9 ")}.Apply(server)

	assert.Equal(t, "10.0.0.9", server.IP)
	assert.Equal(t, "gpu-01", server.Name)
	assert.Equal(t, "rack 2", server.Notes)
}
