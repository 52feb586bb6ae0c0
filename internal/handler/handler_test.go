package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"immigration-crm/internal/model"
	"immigration-crm/internal/repository"
	"immigration-crm/internal/service"
)

type testEnv struct {
	router *gin.Engine
	db     *gorm.DB
	users  service.UserService
}

func setupTestEnv(t *testing.T) testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	err = db.AutoMigrate(
		&model.User{},
		&model.Client{},
		&model.Case{},
		&model.CaseNote{},
		&model.Task{},
		&model.Document{},
		&model.Interaction{},
	)
	require.NoError(t, err)

	txManager := repository.NewTransactionManager(db)
	clientRepo := repository.NewClientRepository(db)
	caseRepo := repository.NewCaseRepository(db)
	interactionRepo := repository.NewInteractionRepository(db)

	userService := service.NewUserService(repository.NewUserRepository(db))
	clientService := service.NewClientService(clientRepo, caseRepo, interactionRepo, txManager, nil)

	router := gin.New()
	NewUserHandler(userService).RegisterRoutes(router.Group(""))
	NewClientHandler(clientService).RegisterRoutes(router.Group(""))

	return testEnv{router: router, db: db, users: userService}
}

func (e testEnv) registerAndLogin(t *testing.T, username, role string) string {
	t.Helper()

	// Registration goes through the service so the role is stored directly;
	// the HTTP register route is admin-gated.
	user := &model.User{
		Username: username,
		Email:    username + "@example.com",
		FullName: "Test " + username,
		Role:     role,
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.MinCost)
	require.NoError(t, err)
	user.Password = string(hashed)
	require.NoError(t, e.db.Create(user).Error)

	body, _ := json.Marshal(map[string]string{"username": username, "password": "secret123"})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	e.router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var envelope struct {
		Data struct {
			Token string `json:"token"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	require.NotEmpty(t, envelope.Data.Token)
	return envelope.Data.Token
}

func (e testEnv) do(method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		raw, _ := json.Marshal(body)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func TestLoginGrantsAccessToProtectedRoutes(t *testing.T) {
	env := setupTestEnv(t)
	token := env.registerAndLogin(t, "admin1", model.RoleAdmin)

	w := env.do(http.MethodGet, "/api/clients", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
}

func TestProtectedRouteWithoutTokenIsRejected(t *testing.T) {
	env := setupTestEnv(t)

	w := env.do(http.MethodGet, "/api/clients", "", nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)

	req := httptest.NewRequest(http.MethodGet, "/api/clients", nil)
	req.Header.Set("Authorization", "Token abc")
	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLoginWithBadCredentials(t *testing.T) {
	env := setupTestEnv(t)
	env.registerAndLogin(t, "admin1", model.RoleAdmin)

	w := env.do(http.MethodPost, "/api/auth/login", "", map[string]string{"username": "admin1", "password": "wrong"})
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestStaffCannotDeleteClient(t *testing.T) {
	env := setupTestEnv(t)
	staffToken := env.registerAndLogin(t, "staff1", model.RoleStaff)
	managerToken := env.registerAndLogin(t, "manager1", model.RoleManager)

	client := &model.Client{Name: "maria", Email: "maria@example.com", Phone: "555-0100"}
	require.NoError(t, env.db.Create(client).Error)

	w := env.do(http.MethodDelete, "/api/clients/"+client.ID.String(), staffToken, nil)
	require.Equal(t, http.StatusForbidden, w.Code)

	w = env.do(http.MethodDelete, "/api/clients/"+client.ID.String(), managerToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
}

func TestRegisterRouteIsAdminOnly(t *testing.T) {
	env := setupTestEnv(t)
	staffToken := env.registerAndLogin(t, "staff1", model.RoleStaff)
	adminToken := env.registerAndLogin(t, "admin1", model.RoleAdmin)

	payload := map[string]string{
		"username": "newbie", "email": "newbie@example.com",
		"password": "secret123", "full_name": "New Hire",
	}

	w := env.do(http.MethodPost, "/api/auth/register", staffToken, payload)
	require.Equal(t, http.StatusForbidden, w.Code)

	w = env.do(http.MethodPost, "/api/auth/register", adminToken, payload)
	require.Equal(t, http.StatusCreated, w.Code)

	// The created account can immediately log in.
	login := env.do(http.MethodPost, "/api/auth/login", "", map[string]string{"username": "newbie", "password": "secret123"})
	require.Equal(t, http.StatusOK, login.Code)
}

func TestDuplicateRegistrationConflicts(t *testing.T) {
	env := setupTestEnv(t)
	adminToken := env.registerAndLogin(t, "admin1", model.RoleAdmin)

	payload := map[string]string{
		"username": "newbie", "email": "newbie@example.com",
		"password": "secret123", "full_name": "New Hire",
	}
	w := env.do(http.MethodPost, "/api/auth/register", adminToken, payload)
	require.Equal(t, http.StatusCreated, w.Code)

	w = env.do(http.MethodPost, "/api/auth/register", adminToken, payload)
	require.Equal(t, http.StatusConflict, w.Code)
}
