package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/nexusboard/nexusboard-api/internal/constants"
	"github.com/nexusboard/nexusboard-api/internal/database"
	"github.com/nexusboard/nexusboard-api/internal/dto"
	"github.com/nexusboard/nexusboard-api/internal/models"
	"github.com/nexusboard/nexusboard-api/internal/repository"
	"github.com/nexusboard/nexusboard-api/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// TaskHandlerTestSuite defines the test suite for TaskHandler
type TaskHandlerTestSuite struct {
	suite.Suite
	db          *gorm.DB
	handler     *TaskHandler
	taskService *services.TaskService
}

// SetupTest runs before each test
func (suite *TaskHandlerTestSuite) SetupTest() {
	var err error

	suite.db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	suite.Require().NoError(err)

	err = suite.db.AutoMigrate(
		&models.User{},
		&models.Task{},
		&models.UserActivity{},
		&models.ChatMessage{},
	)
	suite.Require().NoError(err)

	database.SetDB(suite.db)

	taskRepo := repository.NewTaskRepository(suite.db)
	activityRepo := repository.NewActivityRepository(suite.db)
	userRepo := repository.NewUserRepository(suite.db)
	suite.taskService = services.NewTaskService(taskRepo, activityRepo)
	suite.handler = NewTaskHandler(suite.taskService, services.NewAuthService(userRepo))

	gin.SetMode(gin.TestMode)
}

// TearDownTest runs after each test
func (suite *TaskHandlerTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

func (suite *TaskHandlerTestSuite) createTestUser(username string) *models.User {
	user := &models.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "hashedpassword",
	}
	suite.db.Create(user)
	return user
}

func (suite *TaskHandlerTestSuite) createTestTask(title string, ownerID uint64, status models.TaskStatus, teamVisible bool) *models.Task {
	task := &models.Task{
		Title:       title,
		Description: "Test Description",
		Status:      status,
		Priority:    models.TaskPriorityMedium,
		TeamVisible: teamVisible,
		UserID:      ownerID,
	}
	suite.db.Create(task)
	return task
}

// createAuthContext builds a gin context with the authenticated user
// already resolved, the way the auth middleware leaves it.
func (suite *TaskHandlerTestSuite) createAuthContext(method, url string, body []byte, userID uint64) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, url, bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, url, nil)
	}

	c, _ := gin.CreateTestContext(w)
	c.Request = req
	c.Set(constants.ContextKeyUserID, userID)

	return c, w
}

func (suite *TaskHandlerTestSuite) activitiesFor(userID uint64, kind models.ActivityType) []models.UserActivity {
	var activities []models.UserActivity
	suite.db.Where("user_id = ? AND activity_type = ?", userID, kind).Find(&activities)
	return activities
}

// TestDashboard_GroupsByStatus verifies the three columns and the team
// view.
func (suite *TaskHandlerTestSuite) TestDashboard_GroupsByStatus() {
	user := suite.createTestUser("alice")
	other := suite.createTestUser("bob")

	suite.createTestTask("Write report", user.ID, models.TaskStatusTodo, true)
	suite.createTestTask("Review PR", user.ID, models.TaskStatusInProgress, true)
	suite.createTestTask("Ship release", user.ID, models.TaskStatusDone, true)
	suite.createTestTask("Bob shared", other.ID, models.TaskStatusTodo, true)
	suite.createTestTask("Bob private", other.ID, models.TaskStatusTodo, false)

	c, w := suite.createAuthContext("GET", "/dashboard", nil, user.ID)
	suite.handler.Dashboard(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var response dto.BoardResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))

	suite.Require().Len(response.ToDo, 1)
	assert.Equal(suite.T(), "Write report", response.ToDo[0].Title)
	suite.Require().Len(response.InProgress, 1)
	assert.Equal(suite.T(), "Review PR", response.InProgress[0].Title)
	suite.Require().Len(response.Done, 1)
	assert.Equal(suite.T(), "Ship release", response.Done[0].Title)

	// Team view shows only the other user's visible task.
	suite.Require().Len(response.TeamTasks, 1)
	assert.Equal(suite.T(), "Bob shared", response.TeamTasks[0].Title)
	assert.Len(suite.T(), response.TeamMembers, 2)
}

// TestDashboard_ExcludesOtherOwners verifies column scoping by owner.
func (suite *TaskHandlerTestSuite) TestDashboard_ExcludesOtherOwners() {
	user := suite.createTestUser("alice")
	other := suite.createTestUser("bob")
	suite.createTestTask("Bob task", other.ID, models.TaskStatusTodo, true)

	c, w := suite.createAuthContext("GET", "/dashboard", nil, user.ID)
	suite.handler.Dashboard(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var response dto.BoardResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	assert.Empty(suite.T(), response.ToDo)
	assert.Empty(suite.T(), response.InProgress)
	assert.Empty(suite.T(), response.Done)
}

// TestAddTask_Success verifies creation plus exactly one "added" entry.
func (suite *TaskHandlerTestSuite) TestAddTask_Success() {
	user := suite.createTestUser("alice")

	body, _ := json.Marshal(map[string]string{
		"title":       "New Task",
		"description": "Something to do",
	})
	c, w := suite.createAuthContext("POST", "/add_task", body, user.ID)
	suite.handler.AddTask(c)
	c.Writer.WriteHeaderNow()

	assert.Equal(suite.T(), http.StatusFound, w.Code)
	assert.Equal(suite.T(), "/dashboard", w.Header().Get("Location"))

	var task models.Task
	suite.Require().NoError(suite.db.Where("title = ?", "New Task").First(&task).Error)
	assert.Equal(suite.T(), models.TaskStatusTodo, task.Status)
	assert.Equal(suite.T(), models.TaskPriorityMedium, task.Priority)
	assert.True(suite.T(), task.TeamVisible)

	added := suite.activitiesFor(user.ID, models.ActivityAdded)
	suite.Require().Len(added, 1)
	assert.Equal(suite.T(), "New Task", added[0].TaskTitle)
	suite.Require().NotNil(added[0].TaskID)
	assert.Equal(suite.T(), task.ID, *added[0].TaskID)
}

// TestAddTask_MissingTitle verifies validation leaves no rows behind.
func (suite *TaskHandlerTestSuite) TestAddTask_MissingTitle() {
	user := suite.createTestUser("alice")

	body, _ := json.Marshal(map[string]string{"description": "no title"})
	c, w := suite.createAuthContext("POST", "/add_task", body, user.ID)
	suite.handler.AddTask(c)

	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)

	var count int64
	suite.db.Model(&models.Task{}).Count(&count)
	assert.EqualValues(suite.T(), 0, count)
	suite.db.Model(&models.UserActivity{}).Count(&count)
	assert.EqualValues(suite.T(), 0, count)
}

// TestAddTask_TitleTooLong rejects titles over the column limit before
// they reach the database.
func (suite *TaskHandlerTestSuite) TestAddTask_TitleTooLong() {
	user := suite.createTestUser("alice")

	body, _ := json.Marshal(map[string]string{
		"title": strings.Repeat("x", 101),
	})
	c, w := suite.createAuthContext("POST", "/add_task", body, user.ID)
	suite.handler.AddTask(c)

	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)

	var count int64
	suite.db.Model(&models.Task{}).Count(&count)
	assert.EqualValues(suite.T(), 0, count)
}

// TestAddTask_InvalidPriority rejects unknown priority levels.
func (suite *TaskHandlerTestSuite) TestAddTask_InvalidPriority() {
	user := suite.createTestUser("alice")

	body, _ := json.Marshal(map[string]string{
		"title":    "New Task",
		"priority": "urgent",
	})
	c, w := suite.createAuthContext("POST", "/add_task", body, user.ID)
	suite.handler.AddTask(c)

	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
}

// TestEditTask_Success verifies field updates and the "modified" entry.
func (suite *TaskHandlerTestSuite) TestEditTask_Success() {
	user := suite.createTestUser("alice")
	task := suite.createTestTask("Old Title", user.ID, models.TaskStatusTodo, true)

	body, _ := json.Marshal(map[string]string{
		"title":    "New Title",
		"status":   "in_progress",
		"priority": "high",
	})
	c, w := suite.createAuthContext("POST", "/edit_task/1", body, user.ID)
	c.Params = gin.Params{{Key: "id", Value: "1"}}
	suite.handler.EditTask(c)
	c.Writer.WriteHeaderNow()

	assert.Equal(suite.T(), http.StatusFound, w.Code)

	var updated models.Task
	suite.Require().NoError(suite.db.First(&updated, task.ID).Error)
	assert.Equal(suite.T(), "New Title", updated.Title)
	assert.Equal(suite.T(), models.TaskStatusInProgress, updated.Status)
	assert.Equal(suite.T(), models.TaskPriorityHigh, updated.Priority)
	assert.False(suite.T(), updated.UpdatedAt.Before(updated.CreatedAt))

	modified := suite.activitiesFor(user.ID, models.ActivityModified)
	suite.Require().Len(modified, 1)
	assert.Equal(suite.T(), "New Title", modified[0].TaskTitle)
}

// TestEditTask_NotOwner verifies the ownership gate leaves the task
// unchanged.
func (suite *TaskHandlerTestSuite) TestEditTask_NotOwner() {
	owner := suite.createTestUser("alice")
	intruder := suite.createTestUser("mallory")
	task := suite.createTestTask("Owned", owner.ID, models.TaskStatusTodo, true)

	body, _ := json.Marshal(map[string]string{"title": "Hijacked"})
	c, w := suite.createAuthContext("POST", "/edit_task/1", body, intruder.ID)
	c.Params = gin.Params{{Key: "id", Value: "1"}}
	suite.handler.EditTask(c)

	assert.Equal(suite.T(), http.StatusForbidden, w.Code)

	var unchanged models.Task
	suite.Require().NoError(suite.db.First(&unchanged, task.ID).Error)
	assert.Equal(suite.T(), "Owned", unchanged.Title)

	var count int64
	suite.db.Model(&models.UserActivity{}).Count(&count)
	assert.EqualValues(suite.T(), 0, count)
}

// TestEditTask_NotFound answers 404 for a missing task.
func (suite *TaskHandlerTestSuite) TestEditTask_NotFound() {
	user := suite.createTestUser("alice")

	body, _ := json.Marshal(map[string]string{"title": "whatever"})
	c, w := suite.createAuthContext("POST", "/edit_task/42", body, user.ID)
	c.Params = gin.Params{{Key: "id", Value: "42"}}
	suite.handler.EditTask(c)

	assert.Equal(suite.T(), http.StatusNotFound, w.Code)
}

// TestDeleteTask_Success verifies removal and the "deleted" entry with
// its title snapshot.
func (suite *TaskHandlerTestSuite) TestDeleteTask_Success() {
	user := suite.createTestUser("alice")
	task := suite.createTestTask("Doomed", user.ID, models.TaskStatusTodo, true)

	c, w := suite.createAuthContext("GET", "/delete_task/1", nil, user.ID)
	c.Params = gin.Params{{Key: "id", Value: "1"}}
	suite.handler.DeleteTask(c)

	assert.Equal(suite.T(), http.StatusFound, w.Code)

	var count int64
	suite.db.Model(&models.Task{}).Where("id = ?", task.ID).Count(&count)
	assert.EqualValues(suite.T(), 0, count)

	deleted := suite.activitiesFor(user.ID, models.ActivityDeleted)
	suite.Require().Len(deleted, 1)
	assert.Equal(suite.T(), "Doomed", deleted[0].TaskTitle)
	assert.Nil(suite.T(), deleted[0].TaskID)
}

// TestDeleteTask_NotOwner verifies a non-owner cannot delete.
func (suite *TaskHandlerTestSuite) TestDeleteTask_NotOwner() {
	owner := suite.createTestUser("alice")
	intruder := suite.createTestUser("mallory")
	task := suite.createTestTask("Owned", owner.ID, models.TaskStatusTodo, true)

	c, w := suite.createAuthContext("GET", "/delete_task/1", nil, intruder.ID)
	c.Params = gin.Params{{Key: "id", Value: "1"}}
	suite.handler.DeleteTask(c)

	assert.Equal(suite.T(), http.StatusForbidden, w.Code)

	var count int64
	suite.db.Model(&models.Task{}).Where("id = ?", task.ID).Count(&count)
	assert.EqualValues(suite.T(), 1, count)
}

// TestStatusRoundTrip moves a task through all three columns.
func (suite *TaskHandlerTestSuite) TestStatusRoundTrip() {
	user := suite.createTestUser("alice")

	task, err := suite.taskService.CreateTask(services.CreateTaskInput{
		OwnerID: user.ID,
		Title:   "Roving task",
	})
	suite.Require().NoError(err)

	for _, status := range []models.TaskStatus{models.TaskStatusInProgress, models.TaskStatusDone} {
		s := status
		_, err = suite.taskService.UpdateTask(task.ID, user.ID, services.UpdateTaskInput{Status: &s})
		suite.Require().NoError(err)
	}

	board, err := suite.taskService.ListBoard(user.ID)
	suite.Require().NoError(err)
	assert.Empty(suite.T(), board.ToDo)
	assert.Empty(suite.T(), board.InProgress)
	suite.Require().Len(board.Done, 1)
	assert.Equal(suite.T(), "Roving task", board.Done[0].Title)

	// One entry per mutation: one added, two modified.
	assert.Len(suite.T(), suite.activitiesFor(user.ID, models.ActivityAdded), 1)
	assert.Len(suite.T(), suite.activitiesFor(user.ID, models.ActivityModified), 2)
}

// TestTaskHandlerTestSuite runs the test suite
func TestTaskHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(TaskHandlerTestSuite))
}
