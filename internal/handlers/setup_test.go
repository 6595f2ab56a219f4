package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/lexivault/lexivault/internal/config"
	"github.com/lexivault/lexivault/internal/handlers"
	"github.com/lexivault/lexivault/internal/middleware"
	"github.com/lexivault/lexivault/internal/models"
	"github.com/lexivault/lexivault/internal/services"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type testEnv struct {
	app   *fiber.App
	db    *gorm.DB
	creds *services.Credentials
}

// newTestEnv wires the full route table against an in-memory SQLite database.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}
	sqlDB, _ := db.DB()
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(
		&models.User{},
		&models.Language{},
		&models.Word{},
		&models.WordContext{},
		&models.DictList{},
	)
	if err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	cfg := &config.Config{
		BaseURL:            "http://localhost:3000",
		SecretKey:          "test-secret",
		AccessTokenMinutes: 30,
		VerifyTokenMinutes: 60,
	}
	creds := services.NewCredentials(cfg)
	mailer := services.NewMailer(cfg)

	app := fiber.New()
	authRequired := middleware.RequireUser(db, creds)
	adminOnly := middleware.RequireRole(models.RoleAdmin)

	authHandler := &handlers.AuthHandler{DB: db, Creds: creds}
	usersHandler := &handlers.UsersHandler{DB: db, Creds: creds, Mailer: mailer, Cfg: cfg}
	languagesHandler := &handlers.LanguagesHandler{DB: db}
	wordsHandler := &handlers.WordsHandler{DB: db}
	dictListsHandler := &handlers.DictListsHandler{DB: db}

	auth := app.Group("/api/auth")
	auth.Post("/login", authHandler.Login)
	auth.Get("/email_verify", authHandler.EmailVerify)
	auth.Get("/email_change_verify", authHandler.EmailChangeVerify)

	users := app.Group("/api/users")
	users.Post("/", usersHandler.Register)
	users.Get("/", authRequired, adminOnly, usersHandler.List)
	users.Get("/me", authRequired, usersHandler.Me)
	users.Patch("/me/username", authRequired, usersHandler.UpdateUsername)
	users.Patch("/me/email", authRequired, usersHandler.RequestEmailChange)
	users.Patch("/me/password", authRequired, usersHandler.UpdatePassword)
	users.Delete("/me", authRequired, usersHandler.Delete)

	languages := app.Group("/api/languages")
	languages.Get("/all", languagesHandler.List)
	languages.Get("/:code", languagesHandler.Get)
	languages.Post("/", authRequired, adminOnly, languagesHandler.Create)
	languages.Patch("/:code", authRequired, adminOnly, languagesHandler.UpdateName)
	languages.Delete("/:code", authRequired, adminOnly, languagesHandler.Delete)

	words := app.Group("/api/words", authRequired)
	words.Post("/", wordsHandler.Create)
	words.Get("/", wordsHandler.List)
	words.Get("/:id", wordsHandler.Get)
	words.Patch("/:id", wordsHandler.Update)
	words.Delete("/:id", wordsHandler.Delete)

	dictlists := app.Group("/api/dictlists", authRequired)
	dictlists.Post("/", dictListsHandler.Create)
	dictlists.Get("/", dictListsHandler.List)
	dictlists.Get("/:id", dictListsHandler.Get)
	dictlists.Patch("/:id", dictListsHandler.Update)
	dictlists.Delete("/:id", dictListsHandler.Delete)
	dictlists.Post("/:id/words", dictListsHandler.AssignWords)
	dictlists.Delete("/:id/words", dictListsHandler.UnassignWords)

	return &testEnv{app: app, db: db, creds: creds}
}

// request executes a JSON request against the app, with an optional bearer token.
func (e *testEnv) request(t *testing.T, method, path, token string, body interface{}) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("Failed to marshal request body: %v", err)
		}
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := e.app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	return resp
}

func decodeBody(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	return result
}

func decodeList(t *testing.T, resp *http.Response) []map[string]interface{} {
	t.Helper()
	var result []map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	return result
}

// registerAndLogin registers a fresh account and returns the user and a token.
func (e *testEnv) registerAndLogin(t *testing.T, username string) (*models.User, string) {
	t.Helper()

	resp := e.request(t, "POST", "/api/users/", "", map[string]interface{}{
		"username": username,
		"email":    username + "@example.com",
		"password": "secret123",
	})
	if resp.StatusCode != 201 {
		t.Fatalf("Expected status 201 registering %s, got %d", username, resp.StatusCode)
	}

	user, err := services.GetUserByUsername(e.db, username)
	if err != nil {
		t.Fatalf("Failed to load registered user: %v", err)
	}

	resp = e.request(t, "POST", "/api/auth/login", "", map[string]interface{}{
		"username": username,
		"password": "secret123",
	})
	if resp.StatusCode != 200 {
		t.Fatalf("Expected status 200 logging in %s, got %d", username, resp.StatusCode)
	}
	token, _ := decodeBody(t, resp)["access_token"].(string)
	if token == "" {
		t.Fatal("Expected an access token in login response")
	}
	return user, token
}

// makeAdmin promotes a user directly in the database.
func (e *testEnv) makeAdmin(t *testing.T, user *models.User) {
	t.Helper()
	if err := services.PromoteRole(e.db, user, models.RoleAdmin); err != nil {
		t.Fatalf("Failed to promote user: %v", err)
	}
}

func (e *testEnv) seedLanguage(t *testing.T, code, name string) {
	t.Helper()
	if _, err := services.CreateLanguage(e.db, code, name); err != nil {
		t.Fatalf("Failed to seed language %s: %v", code, err)
	}
}
