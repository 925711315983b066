package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/nexusboard/nexusboard-api/internal/constants"
	"github.com/nexusboard/nexusboard-api/internal/database"
	"github.com/nexusboard/nexusboard-api/internal/dto"
	"github.com/nexusboard/nexusboard-api/internal/middleware"
	"github.com/nexusboard/nexusboard-api/internal/models"
	"github.com/nexusboard/nexusboard-api/internal/repository"
	"github.com/nexusboard/nexusboard-api/internal/services"
	"github.com/nexusboard/nexusboard-api/internal/utils"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type adminTestEnv struct {
	db      *gorm.DB
	handler *AdminHandler
}

func setupAdminTestEnv(t *testing.T) adminTestEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.Task{},
		&models.UserActivity{},
		&models.ChatMessage{},
	)
	require.NoError(t, err)

	database.SetDB(db)

	authService := services.NewAuthService(repository.NewUserRepository(db))
	taskService := services.NewTaskService(
		repository.NewTaskRepository(db),
		repository.NewActivityRepository(db),
	)
	handler := NewAdminHandler(authService, taskService)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	return adminTestEnv{db: db, handler: handler}
}

// adminRouter injects the given user the way the auth middleware would
// before the admin gate runs.
func adminRouter(env adminTestEnv, user models.User) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/admin_dashboard",
		func(c *gin.Context) {
			c.Set(constants.ContextKeyUserID, user.ID)
			c.Set(constants.ContextKeyUser, user)
		},
		middleware.RequireAdmin(),
		env.handler.Dashboard,
	)
	return r
}

func TestAdminDashboard(t *testing.T) {
	env := setupAdminTestEnv(t)

	admin := models.User{Username: "root", Email: "root@example.com", PasswordHash: "x", IsAdmin: true}
	require.NoError(t, env.db.Create(&admin).Error)
	alice := models.User{Username: "alice", Email: "alice@example.com", PasswordHash: "x"}
	require.NoError(t, env.db.Create(&alice).Error)

	older := models.UserActivity{
		UserID:       alice.ID,
		ActivityType: models.ActivityAdded,
		TaskTitle:    "first",
		Timestamp:    time.Now().Add(-time.Hour),
	}
	require.NoError(t, env.db.Create(&older).Error)
	newer := models.UserActivity{
		UserID:       alice.ID,
		ActivityType: models.ActivityDeleted,
		TaskTitle:    "second",
		Timestamp:    time.Now(),
	}
	require.NoError(t, env.db.Create(&newer).Error)

	r := adminRouter(env, admin)
	req := httptest.NewRequest(http.MethodGet, "/admin_dashboard", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Users      []dto.UserDTO     `json:"users"`
		Activities []dto.ActivityDTO `json:"activities"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))

	// Admins are excluded from the roster.
	require.Len(t, response.Users, 1)
	require.Equal(t, "alice", response.Users[0].Username)

	// Newest entry first.
	require.Len(t, response.Activities, 2)
	require.Equal(t, "second", response.Activities[0].TaskTitle)
	require.Equal(t, "first", response.Activities[1].TaskTitle)
}

func TestAdminDashboard_Paginated(t *testing.T) {
	env := setupAdminTestEnv(t)

	admin := models.User{Username: "root", Email: "root@example.com", PasswordHash: "x", IsAdmin: true}
	require.NoError(t, env.db.Create(&admin).Error)
	alice := models.User{Username: "alice", Email: "alice@example.com", PasswordHash: "x"}
	require.NoError(t, env.db.Create(&alice).Error)

	for _, title := range []string{"first", "second", "third"} {
		activity := models.UserActivity{
			UserID:       alice.ID,
			ActivityType: models.ActivityAdded,
			TaskTitle:    title,
		}
		require.NoError(t, env.db.Create(&activity).Error)
	}

	r := adminRouter(env, admin)
	req := httptest.NewRequest(http.MethodGet, "/admin_dashboard?page=1&limit=2", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Activities []dto.ActivityDTO        `json:"activities"`
		Pagination utils.PaginationResponse `json:"pagination"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))

	require.Len(t, response.Activities, 2)
	require.Equal(t, 1, response.Pagination.Page)
	require.Equal(t, 2, response.Pagination.Limit)
	require.EqualValues(t, 3, response.Pagination.Total)
}

func TestAdminDashboard_NonAdminRedirected(t *testing.T) {
	env := setupAdminTestEnv(t)

	alice := models.User{Username: "alice", Email: "alice@example.com", PasswordHash: "x"}
	require.NoError(t, env.db.Create(&alice).Error)

	r := adminRouter(env, alice)
	req := httptest.NewRequest(http.MethodGet, "/admin_dashboard", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusFound, w.Code)
	require.Equal(t, "/login", w.Header().Get("Location"))
}
