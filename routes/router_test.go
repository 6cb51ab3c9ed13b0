package routes

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"citalink.app/configs/configslog"
	"citalink.app/models"
	"citalink.app/repositories"
	"citalink.app/services"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func TestMain(m *testing.M) {
	configslog.InitLogger("test", "error")
	code := m.Run()
	configslog.SyncLogger()
	os.Exit(code)
}

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Appointment{},
		&models.Contact{},
		&models.Feedback{},
		&models.Review{},
		&models.ProfileVisit{},
	))

	userRepo := repositories.NewUserRepository(db)
	guard := services.NewReferentialGuard(userRepo)
	svcs := Services{
		Users:         services.NewUserService(userRepo, guard),
		Appointments:  services.NewAppointmentService(repositories.NewAppointmentRepository(db), guard),
		Contacts:      services.NewContactService(repositories.NewContactRepository(db), guard),
		Feedback:      services.NewFeedbackService(repositories.NewFeedbackRepository(db), guard),
		Reviews:       services.NewReviewService(repositories.NewReviewRepository(db), guard),
		ProfileVisits: services.NewProfileVisitService(repositories.NewProfileVisitRepository(db), guard),
	}

	app := fiber.New()
	SetupRoutes(app, svcs)
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path string, payload any) (*http.Response, map[string]any) {
	t.Helper()
	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	var decoded map[string]any
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &decoded))
	}
	return resp, decoded
}

func registerUser(t *testing.T, app *fiber.App, email, role string) string {
	t.Helper()
	payload := map[string]any{
		"email":     email,
		"firstName": "Ana",
		"lastName":  "García",
		"password":  "secreto123",
		"role":      role,
	}
	if role == models.RoleProf {
		payload["profession"] = "pediatra"
	}
	resp, body := doJSON(t, app, http.MethodPost, "/auth/register", payload)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	return body["id"].(string)
}

func TestRegisterAndLoginFlow(t *testing.T) {
	app := newTestApp(t)
	registerUser(t, app, "ana@example.com", models.RoleClient)

	resp, body := doJSON(t, app, http.MethodPost, "/auth/login", map[string]any{
		"email":    "ana@example.com",
		"password": "secreto123",
		"device":   "Firefox",
	})
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.EqualValues(t, 1, body["totalLoginCount"])
	assert.NotContains(t, body, "password", "hashes never leave the API")

	resp, _ = doJSON(t, app, http.MethodPost, "/auth/login", map[string]any{
		"email":    "ana@example.com",
		"password": "equivocada",
	})
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestMalformedIDVersusUnknownID(t *testing.T) {
	app := newTestApp(t)

	resp, _ := doJSON(t, app, http.MethodGet, "/users/not-a-uuid", nil)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp, _ = doJSON(t, app, http.MethodGet, "/users/7f0a1f1e-4a2b-4b6e-9a8f-2d3c4b5a6978", nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestDeleteUserIsIdempotent(t *testing.T) {
	app := newTestApp(t)
	targetID := registerUser(t, app, "objetivo@example.com", models.RoleClient)
	adminID := registerUser(t, app, "admin@example.com", models.RoleAdmin)

	payload := map[string]any{"deletedBy": adminID}

	resp, body := doJSON(t, app, http.MethodDelete, "/users/"+targetID, payload)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "eliminado con éxito", body["message"])

	resp, body = doJSON(t, app, http.MethodDelete, "/users/"+targetID, payload)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "ya ha sido eliminado previamente", body["message"])

	// The deleted account is still readable, envelope visible.
	resp, body = doJSON(t, app, http.MethodGet, "/users/"+targetID, nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	deleted := body["deleted"].(map[string]any)
	assert.Equal(t, true, deleted["isDeleted"])
}

func TestAppointmentEndpoints(t *testing.T) {
	app := newTestApp(t)
	clientID := registerUser(t, app, "cliente@example.com", models.RoleClient)
	profID := registerUser(t, app, "prof@example.com", models.RoleProf)

	resp, body := doJSON(t, app, http.MethodPost, "/appointments/", map[string]any{
		"clientId":            clientID,
		"profId":              profID,
		"office":              "Consultorio 3",
		"appointmentDateTime": "2026-09-15T10:00:00Z",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	assert.Equal(t, "tentativo", body["status"])
	apptID := body["id"].(string)

	resp, body = doJSON(t, app, http.MethodPut, "/appointments/"+apptID, map[string]any{
		"actorId": profID,
		"status":  "aceptado",
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "aceptado", body["status"])
	history := body["modificationHistory"].([]any)
	require.Len(t, history, 1)
	assert.Equal(t, profID, history[0].(map[string]any)["userId"])

	resp, _ = doJSON(t, app, http.MethodPost, "/appointments/", map[string]any{
		"clientId":            clientID,
		"profId":              clientID,
		"office":              "Consultorio 3",
		"appointmentDateTime": "2026-09-15T10:00:00Z",
	})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp, body = doJSON(t, app, http.MethodGet, "/appointments/client/"+clientID, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.EqualValues(t, 1, body["total"])
}
