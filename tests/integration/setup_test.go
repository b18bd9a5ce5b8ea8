package integration

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"stocksentry/internal/handlers"
	"stocksentry/internal/logger"
	"stocksentry/internal/middleware"
	"stocksentry/internal/models"
	"stocksentry/internal/services"
	"stocksentry/internal/validator"
)

// testApp holds the full application stack for integration tests.
type testApp struct {
	DB     *gorm.DB
	Router *gin.Engine
	Emails *recordingEmailSender
}

// dbCounter ensures each test gets a unique in-memory database.
var dbCounter atomic.Int64

func init() {
	gin.SetMode(gin.TestMode)
	logger.Init("test")
	validator.Register()
}

// recordingEmailSender captures outbound emails instead of hitting a gateway.
type recordingEmailSender struct {
	mu   sync.Mutex
	sent []recordedEmail
}

type recordedEmail struct {
	To, Subject, Body string
}

func (r *recordingEmailSender) SendEmail(_ context.Context, address, subject, body string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = append(r.sent, recordedEmail{To: address, Subject: subject, Body: body})
	return nil
}

func (r *recordingEmailSender) all() []recordedEmail {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]recordedEmail(nil), r.sent...)
}

// setupIsolatedDB creates an isolated in-memory SQLite database for a single test.
func setupIsolatedDB(t *testing.T) *gorm.DB {
	t.Helper()

	n := dbCounter.Add(1)
	dsn := fmt.Sprintf("file:testdb%d?mode=memory&cache=shared", n)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	allModels := []interface{}{
		&models.User{},
		&models.Watchlist{},
		&models.WatchlistSymbol{},
		&models.ShareToken{},
		&models.AlertEvent{},
	}
	if err := db.AutoMigrate(allModels...); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

// setupApp creates a full application stack backed by an isolated in-memory SQLite.
func setupApp(t *testing.T) *testApp {
	t.Helper()

	db := setupIsolatedDB(t)

	// Services
	userService := services.NewUserService(db)
	watchlistService := services.NewWatchlistService(db)
	shareTokenService := services.NewShareTokenService(db, 10*time.Minute)

	// Handlers
	emails := &recordingEmailSender{}
	userHandler := handlers.NewUserHandler(userService)
	watchlistHandler := handlers.NewWatchlistHandler(watchlistService, shareTokenService, emails)

	// Router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.ErrorHandler())

	v1 := router.Group("/api/v1")

	users := v1.Group("/users")
	users.POST("", userHandler.CreateUser)
	users.GET("/:id", userHandler.GetUser)
	users.GET("/:id/watchlists", watchlistHandler.GetUserWatchlists)

	watchlists := v1.Group("/watchlists")
	watchlists.POST("", watchlistHandler.CreateWatchlist)
	watchlists.POST("/share", watchlistHandler.ShareWatchlist)
	watchlists.GET("/share/:code", watchlistHandler.GetSharedWatchlist)
	watchlists.GET("/:id", watchlistHandler.GetWatchlist)
	watchlists.DELETE("/:id", watchlistHandler.DeleteWatchlist)
	watchlists.POST("/:id/symbols", watchlistHandler.AddSymbols)
	watchlists.DELETE("/:id/symbols/:symbol", watchlistHandler.RemoveSymbol)

	return &testApp{DB: db, Router: router, Emails: emails}
}

// request makes an HTTP request to the test router and returns the recorder.
func (app *testApp) request(method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)
	return rec
}

// createUser registers a user through the API and returns its ID.
func (app *testApp) createUser(t *testing.T, name, email, phone string) string {
	t.Helper()

	payload := fmt.Sprintf(`{"name":%q,"email":%q,"phone_number":%q}`, name, email, phone)
	rec := app.request("POST", "/api/v1/users", payload)
	if rec.Code != http.StatusCreated {
		t.Fatalf("failed to create user: %d: %s", rec.Code, rec.Body.String())
	}
	user := parseJSON(t, rec)["user"].(map[string]interface{})
	return user["id"].(string)
}

// createWatchlist creates a watchlist through the API and returns its ID.
func (app *testApp) createWatchlist(t *testing.T, userID, name string, symbols ...string) string {
	t.Helper()

	quoted := make([]string, len(symbols))
	for i, s := range symbols {
		quoted[i] = fmt.Sprintf("%q", s)
	}
	payload := fmt.Sprintf(`{"user_id":%q,"name":%q,"symbols":[%s]}`, userID, name, strings.Join(quoted, ","))
	rec := app.request("POST", "/api/v1/watchlists", payload)
	if rec.Code != http.StatusCreated {
		t.Fatalf("failed to create watchlist: %d: %s", rec.Code, rec.Body.String())
	}
	wl := parseJSON(t, rec)["watchlist"].(map[string]interface{})
	return wl["id"].(string)
}

func parseJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON response: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}
