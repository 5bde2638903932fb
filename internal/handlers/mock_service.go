package handlers

import (
	"context"
	"net/http"
	"time"

	"co2watch/internal/models"
	"co2watch/internal/service"

	"github.com/gin-gonic/gin"
)

// ---- Service Mocks ----

type mockAuth struct {
	signUpID      int
	signUpErr     error
	genTokenToken string
	genTokenErr   error
	parseID       int
	parseErr      error

	lastSignUpUsername string
	lastSignUpPassword string
	lastGenUsername    string
	lastGenPassword    string
	lastParseToken     string
}

func (m *mockAuth) SignUp(username, password string) (int, error) {
	m.lastSignUpUsername = username
	m.lastSignUpPassword = password
	return m.signUpID, m.signUpErr
}
func (m *mockAuth) GenerateToken(username, password string) (string, error) {
	m.lastGenUsername = username
	m.lastGenPassword = password
	return m.genTokenToken, m.genTokenErr
}
func (m *mockAuth) ParseToken(token string) (int, error) {
	m.lastParseToken = token
	return m.parseID, m.parseErr
}

type mockSchedule struct {
	timetable   *models.Timetable
	getErr      error
	saveErr     error
	saveCalls   int
	lastEntries []service.TimetableEntry
}

func (m *mockSchedule) SaveTimetable(ctx context.Context, entries []service.TimetableEntry) error {
	m.saveCalls++
	m.lastEntries = entries
	return m.saveErr
}
func (m *mockSchedule) GetTimetable(ctx context.Context) (*models.Timetable, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	if m.timetable == nil {
		return models.NewTimetable(), nil
	}
	return m.timetable, nil
}
func (m *mockSchedule) SlotStarts() []service.SlotStart {
	return []service.SlotStart{{Hour: 1, Start: "08:15"}}
}

type mockSettings struct {
	view          service.SettingsView
	getErr        error
	thresholdErr  error
	contactErr    error
	setThresholds []int
	setContacts   []string
}

func (m *mockSettings) SetThreshold(ctx context.Context, ppm int) error {
	if m.thresholdErr != nil {
		return m.thresholdErr
	}
	m.setThresholds = append(m.setThresholds, ppm)
	return nil
}
func (m *mockSettings) SetContact(ctx context.Context, phone string) error {
	if m.contactErr != nil {
		return m.contactErr
	}
	m.setContacts = append(m.setContacts, phone)
	return nil
}
func (m *mockSettings) GetSettings(ctx context.Context) (service.SettingsView, error) {
	return m.view, m.getErr
}

type mockChecker struct {
	result    models.CheckResult
	err       error
	hasLatest bool
	runCalls  int
}

func (m *mockChecker) RunCheck(ctx context.Context, now time.Time) (models.CheckResult, error) {
	m.runCalls++
	return m.result, m.err
}
func (m *mockChecker) LatestResult() (models.CheckResult, bool) {
	return m.result, m.hasLatest
}

type mockEventLog struct {
	resp     []models.CheckEvent
	err      error
	lastFrom time.Time
	lastTo   time.Time
	lastType string
}

func (m *mockEventLog) List(ctx context.Context, f service.LogFilter) ([]models.CheckEvent, error) {
	m.lastFrom = f.From
	m.lastTo = f.To
	m.lastType = f.Type
	return m.resp, m.err
}

// ---- Shared Test Helpers ----

func newTestRouter(s *service.Service) *gin.Engine {
	h := NewHandler(s, nil)
	gin.SetMode(gin.TestMode)
	return h.InitRoutes()
}

func authHeader(token string) http.Header {
	h := http.Header{}
	if token != "" {
		h.Set("Authorization", "Bearer "+token)
	}
	return h
}
