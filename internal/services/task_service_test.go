package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/yukikurage/portal-api/internal/models"
	"github.com/yukikurage/portal-api/internal/repository"
	"github.com/yukikurage/portal-api/internal/testutils"
	"github.com/yukikurage/portal-api/internal/utils"
)

type TaskServiceTestSuite struct {
	suite.Suite
	service  *TaskService
	projects repository.ProjectRepository
	today    time.Time
}

func (suite *TaskServiceTestSuite) SetupTest() {
	db := testutils.NewTestDB(suite.T())
	suite.projects = repository.NewProjectRepository(db)
	suite.service = NewTaskService(repository.NewTaskRepository(db), suite.projects, nil)
	suite.today = time.Date(2024, 5, 15, 10, 30, 0, 0, time.UTC)
	suite.service.now = testutils.FixedClock(suite.today)
}

func (suite *TaskServiceTestSuite) validInput() CreateTaskInput {
	return CreateTaskInput{
		Title:       "Deploy API",
		Description: "Deploy the portal API",
		Priority:    models.TaskPriorityHigh,
		Status:      models.TaskStatusPending,
		AssignedTo:  "Ana",
	}
}

func (suite *TaskServiceTestSuite) TestCreate_DefaultsStartDateToToday() {
	task, err := suite.service.CreateTask(suite.validInput())
	suite.Require().NoError(err)
	suite.Require().NotNil(task.StartDate)
	suite.Equal("2024-05-15", utils.FormatDate(*task.StartDate))
	suite.Nil(task.CompletedDate)
	suite.False(task.CreatedAt.IsZero())
}

func (suite *TaskServiceTestSuite) TestCreate_Validation() {
	cases := []struct {
		name   string
		mutate func(*CreateTaskInput)
		want   error
	}{
		{"id supplied", func(in *CreateTaskInput) { id := uint64(3); in.ID = &id }, ErrIDNotAllowed},
		{"blank title", func(in *CreateTaskInput) { in.Title = "  " }, ErrTitleRequired},
		{"blank description", func(in *CreateTaskInput) { in.Description = "" }, ErrDescriptionRequired},
		{"bad priority", func(in *CreateTaskInput) { in.Priority = "urgente" }, ErrInvalidPriority},
		{"bad status", func(in *CreateTaskInput) { in.Status = "hecha" }, ErrInvalidStatus},
		{"missing project", func(in *CreateTaskInput) { id := uint64(77); in.ProjectID = &id }, ErrProjectNotFound},
	}

	for _, tc := range cases {
		suite.Run(tc.name, func() {
			input := suite.validInput()
			tc.mutate(&input)
			_, err := suite.service.CreateTask(input)
			suite.ErrorIs(err, tc.want)
		})
	}
}

func (suite *TaskServiceTestSuite) TestUpdate_StatusOnlyKeepsOtherFields() {
	task, err := suite.service.CreateTask(suite.validInput())
	suite.Require().NoError(err)

	status := models.TaskStatusCompleted
	updated, err := suite.service.UpdateTask(task.ID, TaskPatch{Status: &status})
	suite.Require().NoError(err)

	reloaded, err := suite.service.GetTask(task.ID)
	suite.Require().NoError(err)
	suite.Equal(models.TaskStatusCompleted, reloaded.Status)
	suite.Equal("Deploy API", reloaded.Title)
	suite.Equal("Deploy the portal API", reloaded.Description)
	suite.Equal(models.TaskPriorityHigh, reloaded.Priority)
	suite.Equal("Ana", reloaded.AssignedTo)
	suite.Require().NotNil(reloaded.CompletedDate)
	suite.Equal("2024-05-15", utils.FormatDate(*reloaded.CompletedDate))
	suite.Equal(updated.ID, reloaded.ID)
}

func (suite *TaskServiceTestSuite) TestUpdate_LeavingCompletedClearsCompletedDate() {
	input := suite.validInput()
	input.Status = models.TaskStatusCompleted
	task, err := suite.service.CreateTask(input)
	suite.Require().NoError(err)
	suite.Require().NotNil(task.CompletedDate)

	status := models.TaskStatusInProgress
	updated, err := suite.service.UpdateTask(task.ID, TaskPatch{Status: &status})
	suite.Require().NoError(err)
	suite.Nil(updated.CompletedDate)

	// An explicit completion date wins over the automatic one.
	done := models.TaskStatusCompleted
	updated, err = suite.service.UpdateTask(task.ID, TaskPatch{Status: &done, CompletedDate: datePtr(2024, 5, 1)})
	suite.Require().NoError(err)
	suite.Equal("2024-05-01", utils.FormatDate(*updated.CompletedDate))
}

func (suite *TaskServiceTestSuite) TestUpdate_InvalidPatchIsRejected() {
	task, err := suite.service.CreateTask(suite.validInput())
	suite.Require().NoError(err)

	priority := models.TaskPriority("urgente")
	_, err = suite.service.UpdateTask(task.ID, TaskPatch{Priority: &priority})
	suite.ErrorIs(err, ErrInvalid)

	_, err = suite.service.UpdateTask(999, TaskPatch{})
	suite.ErrorIs(err, ErrTaskNotFound)
}

func (suite *TaskServiceTestSuite) TestAssignAndUnassignProject() {
	task, err := suite.service.CreateTask(suite.validInput())
	suite.Require().NoError(err)
	project := &models.Project{Name: "Portal"}
	suite.Require().NoError(suite.projects.Create(project))

	_, err = suite.service.AssignProject(task.ID, 404)
	suite.ErrorIs(err, ErrProjectNotFound)
	_, err = suite.service.AssignProject(404, project.ID)
	suite.ErrorIs(err, ErrTaskNotFound)

	assigned, err := suite.service.AssignProject(task.ID, project.ID)
	suite.Require().NoError(err)
	suite.Equal(project.ID, *assigned.ProjectID)

	byProject, err := suite.service.ListByProject(project.ID)
	suite.Require().NoError(err)
	suite.Len(byProject, 1)

	unassigned, err := suite.service.UnassignProject(task.ID)
	suite.Require().NoError(err)
	suite.Nil(unassigned.ProjectID)

	_, err = suite.service.UnassignProject(404)
	suite.ErrorIs(err, ErrTaskNotFound)
}

func (suite *TaskServiceTestSuite) TestShortcutsAndDeleteByTitle() {
	_, err := suite.service.CreateTask(suite.validInput())
	suite.Require().NoError(err)
	other := suite.validInput()
	other.Title = "Write docs"
	other.AssignedTo = "Anabel"
	other.Priority = models.TaskPriorityLow
	_, err = suite.service.CreateTask(other)
	suite.Require().NoError(err)

	byAssignee, err := suite.service.ListByAssignedTo("Ana")
	suite.Require().NoError(err)
	suite.Len(byAssignee, 1)

	byPriority, err := suite.service.ListByPriority(models.TaskPriorityLow)
	suite.Require().NoError(err)
	suite.Len(byPriority, 1)

	_, err = suite.service.ListByStatus("unknown")
	suite.ErrorIs(err, ErrInvalidStatus)

	deleted, err := suite.service.DeleteByTitle("Write docs")
	suite.Require().NoError(err)
	suite.True(deleted)
	deleted, err = suite.service.DeleteByTitle("Write docs")
	suite.Require().NoError(err)
	suite.False(deleted)
}

func (suite *TaskServiceTestSuite) TestStats() {
	for _, tc := range []struct {
		status   models.TaskStatus
		priority models.TaskPriority
	}{
		{models.TaskStatusPending, models.TaskPriorityHigh},
		{models.TaskStatusPending, models.TaskPriorityMedium},
		{models.TaskStatusInProgress, models.TaskPriorityHigh},
		{models.TaskStatusCompleted, models.TaskPriorityLow},
	} {
		input := suite.validInput()
		input.Status = tc.status
		input.Priority = tc.priority
		_, err := suite.service.CreateTask(input)
		suite.Require().NoError(err)
	}

	stats, err := suite.service.Stats()
	suite.Require().NoError(err)
	suite.Equal(int64(4), stats.Total)
	suite.Equal(int64(2), stats.Pendientes)
	suite.Equal(int64(1), stats.EnProgreso)
	suite.Equal(int64(1), stats.Completadas)
	suite.Equal(map[string]int64{"alta": 2, "media": 1, "baja": 1}, stats.PorPrioridad)
}

func (suite *TaskServiceTestSuite) TestSuggestWithoutAIService() {
	_, err := suite.service.SuggestTasks(context.Background(), "algo")
	suite.ErrorIs(err, ErrAIServiceNotConfigured)
}

func TestTaskServiceTestSuite(t *testing.T) {
	suite.Run(t, new(TaskServiceTestSuite))
}
