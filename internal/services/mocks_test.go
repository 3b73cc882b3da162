package services

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"path"
	"sync"
	"time"

	"github.com/SAP-F-2025/academy-report-service/internal/cache"
	"github.com/SAP-F-2025/academy-report-service/internal/models"
	"github.com/SAP-F-2025/academy-report-service/internal/repositories"
	"github.com/stretchr/testify/mock"
	"gorm.io/datatypes"
)

// MockRepository wires the individual repository mocks together
type MockRepository struct {
	institutions *MockInstitutionRepository
	students     *MockStudentRepository
	groups       *MockGroupRepository
	sessions     *MockSessionRepository
	attendance   *MockAttendanceRepository
}

func newMockRepository() *MockRepository {
	return &MockRepository{
		institutions: &MockInstitutionRepository{},
		students:     &MockStudentRepository{},
		groups:       &MockGroupRepository{},
		sessions:     &MockSessionRepository{},
		attendance:   &MockAttendanceRepository{},
	}
}

func (m *MockRepository) Institution() repositories.InstitutionRepository { return m.institutions }
func (m *MockRepository) Student() repositories.StudentRepository         { return m.students }
func (m *MockRepository) Group() repositories.GroupRepository             { return m.groups }
func (m *MockRepository) Session() repositories.SessionRepository         { return m.sessions }
func (m *MockRepository) Attendance() repositories.AttendanceRepository   { return m.attendance }
func (m *MockRepository) Ping(ctx context.Context) error                  { return nil }
func (m *MockRepository) Close() error                                    { return nil }

type MockInstitutionRepository struct {
	mock.Mock
}

func (m *MockInstitutionRepository) GetByID(ctx context.Context, id string) (*models.Institution, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Institution), args.Error(1)
}

type MockStudentRepository struct {
	mock.Mock
}

func (m *MockStudentRepository) GetByID(ctx context.Context, id string) (*models.Student, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Student), args.Error(1)
}

func (m *MockStudentRepository) ListByGroup(ctx context.Context, groupID string) ([]*models.Student, error) {
	args := m.Called(ctx, groupID)
	return args.Get(0).([]*models.Student), args.Error(1)
}

type MockGroupRepository struct {
	mock.Mock
}

func (m *MockGroupRepository) GetByID(ctx context.Context, id string) (*models.Group, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Group), args.Error(1)
}

type MockSessionRepository struct {
	mock.Mock
}

func (m *MockSessionRepository) ListByGroup(ctx context.Context, groupID string) ([]models.Session, error) {
	args := m.Called(ctx, groupID)
	return args.Get(0).([]models.Session), args.Error(1)
}

type MockAttendanceRepository struct {
	mock.Mock
}

func (m *MockAttendanceRepository) ListByStudent(ctx context.Context, userID string, filters repositories.AttendanceFilters) ([]models.AttendanceRecord, error) {
	args := m.Called(ctx, userID, filters)
	return args.Get(0).([]models.AttendanceRecord), args.Error(1)
}

func (m *MockAttendanceRepository) ListByStudents(ctx context.Context, userIDs []string, filters repositories.AttendanceFilters) ([]models.AttendanceRecord, error) {
	args := m.Called(ctx, userIDs, filters)
	return args.Get(0).([]models.AttendanceRecord), args.Error(1)
}

// memoryCache is an in-process CacheService
type memoryCache struct {
	mu    sync.Mutex
	items map[string][]byte
}

func newMemoryCache() *memoryCache {
	return &memoryCache{items: make(map[string][]byte)}
}

func (c *memoryCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[key] = data
	return nil
}

func (c *memoryCache) Get(ctx context.Context, key string, dest interface{}) error {
	c.mu.Lock()
	data, ok := c.items[key]
	c.mu.Unlock()
	if !ok {
		return cache.ErrCacheMiss
	}
	return json.Unmarshal(data, dest)
}

func (c *memoryCache) Delete(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.items, key)
	return nil
}

func (c *memoryCache) DeletePattern(ctx context.Context, pattern string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for key := range c.items {
		if ok, _ := path.Match(pattern, key); ok {
			delete(c.items, key)
		}
	}
	return nil
}

func (c *memoryCache) has(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.items[key]
	return ok
}

func (c *memoryCache) size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

// ===== FIXTURES =====

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testGradingConfig() models.GradingConfiguration {
	return models.GradingConfiguration{
		NumberOfPartials:           2,
		PassingGrade:               70,
		MaxIndividualActivityScore: 25,
		MaxTotalAccumulatedScore:   50,
		MaxExamScore:               50,
	}
}

func partial(exam float64, activities ...float64) *models.PartialScores {
	p := &models.PartialScores{Exam: &models.ExamScore{Score: models.Float(exam)}}
	for i, score := range activities {
		p.AccumulatedActivities = append(p.AccumulatedActivities, models.ActivityScore{
			ID:    string(rune('a' + i)),
			Score: models.Float(score),
		})
	}
	return p
}

func mustJSON(v interface{}) datatypes.JSON {
	data, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return datatypes.JSON(data)
}

func testStudent(id, name, groupID string, grades map[string]models.StudentGradeStructure) *models.Student {
	return &models.Student{
		ID:            id,
		FullName:      name,
		Role:          models.RoleStudent,
		GroupID:       models.String(groupID),
		GradesByLevel: mustJSON(grades),
	}
}

func testGroup() *models.Group {
	return &models.Group{
		ID:            "g1",
		Name:          "English A1 Morning",
		Type:          "Regular",
		Shift:         "Morning",
		TeacherName:   "Laura Gomez",
		SedeName:      "Centro",
		InstitutionID: "i1",
	}
}

func testInstitution(template *string) *models.Institution {
	return &models.Institution{
		ID:                  "i1",
		Name:                "Academia Norte",
		GradingConfig:       mustJSON(testGradingConfig()),
		CertificateTemplate: template,
	}
}

func testSessions() []models.Session {
	return []models.Session{
		{ID: "s1", ClassID: "g1", Date: "2025-03-01", Time: "08:00"},
		{ID: "s2", ClassID: "g1", Date: "2025-03-08", Time: "08:00"},
	}
}
