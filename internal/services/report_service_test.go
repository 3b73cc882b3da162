package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/SAP-F-2025/academy-report-service/internal/cache"
	"github.com/SAP-F-2025/academy-report-service/internal/events"
	"github.com/SAP-F-2025/academy-report-service/internal/models"
	"github.com/SAP-F-2025/academy-report-service/internal/report"
	"github.com/SAP-F-2025/academy-report-service/internal/repositories"
	"github.com/SAP-F-2025/academy-report-service/internal/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type failingGenerator struct {
	err error
}

func (g failingGenerator) GenerateReport(ctx context.Context, brief report.NarrativeBrief) (*report.NarrativeReport, error) {
	return nil, g.err
}

// slowGenerator blocks until its context is done
type slowGenerator struct{}

func (slowGenerator) GenerateReport(ctx context.Context, brief report.NarrativeBrief) (*report.NarrativeReport, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

type reportFixture struct {
	repo      *MockRepository
	cache     *memoryCache
	publisher *events.MockEventPublisher
}

func newReportFixture() *reportFixture {
	f := &reportFixture{
		repo:      newMockRepository(),
		cache:     newMemoryCache(),
		publisher: events.NewMockEventPublisher(discardLogger()),
	}

	grades := map[string]models.StudentGradeStructure{
		"A1": {
			Partial1:        partial(40, 20, 25),
			Partial2:        partial(35, 20, 20),
			CertificateCode: models.String("cert-001"),
		},
	}
	f.repo.students.On("GetByID", mock.Anything, "st1").Return(testStudent("st1", "Ana Perez", "g1", grades), nil)
	f.repo.students.On("GetByID", mock.Anything, "missing").Return(nil, nil)
	f.repo.groups.On("GetByID", mock.Anything, "g1").Return(testGroup(), nil)
	f.repo.institutions.On("GetByID", mock.Anything, "i1").Return(testInstitution(nil), nil)
	f.repo.sessions.On("ListByGroup", mock.Anything, "g1").Return(testSessions(), nil)
	f.repo.attendance.On("ListByStudent", mock.Anything, "st1", repositories.AttendanceFilters{}).Return([]models.AttendanceRecord{
		{ID: "r1", SessionID: "s1", UserID: "st1", Status: models.AttendancePresent},
		{ID: "r2", SessionID: "s2", UserID: "st1", Status: models.AttendanceAbsent, Observation: models.String("Medical appointment")},
		{ID: "r3", SessionID: "other", UserID: "st1", Status: models.AttendanceLate},
	}, nil)
	return f
}

func (f *reportFixture) service(generator report.NarrativeGenerator, timeout time.Duration) ReportService {
	return NewReportService(f.repo, validator.New(), f.cache, generator, f.publisher, ReportServiceConfig{
		CacheTTL:         time.Minute,
		NarrativeTimeout: timeout,
		DefaultGrading:   testGradingConfig(),
	}, discardLogger())
}

func TestReportService_GetStudentSummary(t *testing.T) {
	f := newReportFixture()
	svc := f.service(report.NewStaticGenerator(), time.Second)
	ctx := context.Background()

	summary, err := svc.GetStudentSummary(ctx, "st1", "A1", nil)
	require.NoError(t, err)

	assert.Equal(t, "Ana Perez", summary.StudentName)
	require.NotNil(t, summary.GroupID)
	assert.Equal(t, "g1", *summary.GroupID)
	require.NotNil(t, summary.FinalGrade)
	assert.Equal(t, 80.0, *summary.FinalGrade)
	require.NotNil(t, summary.Passed)
	assert.True(t, *summary.Passed)

	// the late record belongs to a session of another group
	assert.Equal(t, 1, summary.Attendance.Present)
	assert.Equal(t, 1, summary.Attendance.Absent)
	assert.Equal(t, 0, summary.Attendance.Late)
	assert.Equal(t, 50.0, summary.Attendance.AttendanceRate)
	assert.Equal(t, 2, summary.Attendance.TotalSessionsForStudent)
	assert.Equal(t, "- Absence observation: Medical appointment", summary.Observations)

	// second call is served from the cache
	again, err := svc.GetStudentSummary(ctx, "st1", "A1", nil)
	require.NoError(t, err)
	assert.Equal(t, summary.FinalGrade, again.FinalGrade)
	f.repo.students.AssertNumberOfCalls(t, "GetByID", 1)
}

func TestReportService_GetStudentSummary_UnknownLevel(t *testing.T) {
	f := newReportFixture()
	svc := f.service(report.NewStaticGenerator(), time.Second)

	summary, err := svc.GetStudentSummary(context.Background(), "st1", "B2", nil)
	require.NoError(t, err)
	assert.Nil(t, summary.FinalGrade)
	assert.Nil(t, summary.Passed)
	for _, p := range summary.Partials {
		assert.False(t, p.Present)
	}
}

func TestReportService_GetStudentSummary_Errors(t *testing.T) {
	f := newReportFixture()
	svc := f.service(report.NewStaticGenerator(), time.Second)
	ctx := context.Background()

	_, err := svc.GetStudentSummary(ctx, "missing", "A1", nil)
	assert.ErrorIs(t, err, ErrStudentNotFound)
	assert.True(t, IsNotFound(err))

	_, err = svc.GetStudentSummary(ctx, "st1", "  ", nil)
	assert.True(t, IsValidation(err))

	f.repo.groups.On("GetByID", mock.Anything, "nope").Return(nil, nil)
	_, err = svc.GetStudentSummary(ctx, "st1", "A1", models.String("nope"))
	assert.ErrorIs(t, err, ErrGroupNotFound)
}

func TestReportService_GenerateReport(t *testing.T) {
	f := newReportFixture()
	svc := f.service(report.NewStaticGenerator(), time.Second)
	ctx := context.Background()

	result, err := svc.GenerateReport(ctx, &ReportRequest{StudentID: "st1", LevelName: "A1"})
	require.NoError(t, err)

	assert.Equal(t, "Ana Perez", result.Brief.StudentName)
	assert.Equal(t, "Partial 1 Total: 85.0/100. Partial 2 Total: 75.0/100. Final Grade: 80.00/100.", result.Brief.GradesSummary)
	assert.Equal(t, "Present: 1, Absent: 1, Late: 0. Attendance Rate: 50%.", result.Brief.AttendanceSummary)
	assert.Contains(t, result.Report, "# Progress Report: Ana Perez")

	published := f.publisher.GetPublishedEvents()
	require.Len(t, published, 1)
	assert.Equal(t, events.EventReportGenerated, published[0].Type)
	payload, ok := published[0].Data.(events.ReportGeneratedEvent)
	require.True(t, ok)
	assert.Equal(t, "st1", payload.StudentID)
	assert.Equal(t, 50.0, payload.AttendanceRate)

	// cached report skips the generator and the event
	_, err = svc.GenerateReport(ctx, &ReportRequest{StudentID: "st1", LevelName: "A1"})
	require.NoError(t, err)
	assert.Len(t, f.publisher.GetPublishedEvents(), 1)

	_, err = svc.GenerateReport(ctx, &ReportRequest{StudentID: "st1", LevelName: "A1", Regenerate: true})
	require.NoError(t, err)
	assert.Len(t, f.publisher.GetPublishedEvents(), 2)
}

func TestReportService_GenerateReport_GeneratorFailure(t *testing.T) {
	t.Run("error", func(t *testing.T) {
		f := newReportFixture()
		svc := f.service(failingGenerator{err: errors.New("upstream 502")}, time.Second)

		_, err := svc.GenerateReport(context.Background(), &ReportRequest{StudentID: "st1", LevelName: "A1"})
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrNarrativeUnavailable)
		assert.Empty(t, f.publisher.GetPublishedEvents())
	})

	t.Run("timeout", func(t *testing.T) {
		f := newReportFixture()
		svc := f.service(slowGenerator{}, 20*time.Millisecond)

		_, err := svc.GenerateReport(context.Background(), &ReportRequest{StudentID: "st1", LevelName: "A1"})
		require.Error(t, err)
		assert.True(t, IsUnavailable(err))
	})
}

func TestReportService_InvalidateStudent(t *testing.T) {
	f := newReportFixture()
	svc := f.service(report.NewStaticGenerator(), time.Second)
	ctx := context.Background()

	_, err := svc.GetStudentSummary(ctx, "st1", "A1", nil)
	require.NoError(t, err)
	_, err = svc.GenerateReport(ctx, &ReportRequest{StudentID: "st1", LevelName: "A1"})
	require.NoError(t, err)
	require.Equal(t, 2, f.cache.size())

	require.NoError(t, svc.InvalidateStudent(ctx, "st1"))
	assert.Equal(t, 0, f.cache.size())

	assert.True(t, IsValidation(svc.InvalidateStudent(ctx, "")))
}

func TestReportService_InvalidateStudent_LeavesOtherStudents(t *testing.T) {
	f := newReportFixture()
	svc := f.service(report.NewStaticGenerator(), time.Second)
	ctx := context.Background()

	own := []string{
		cache.SummaryKey("st1", "A1", "-"),
		cache.ReportKey("st1", "A1", "g1"),
	}
	others := []string{
		cache.SummaryKey("st2", "st1", "-"),
		cache.ReportKey("st3", "A1", "st1"),
		cache.SummaryKey("st1:x", "A1", "-"),
		cache.SummaryKey("st10", "A1", "-"),
	}
	for _, key := range append(own, others...) {
		require.NoError(t, f.cache.Set(ctx, key, "cached", time.Minute))
	}

	require.NoError(t, svc.InvalidateStudent(ctx, "st1"))
	for _, key := range own {
		assert.False(t, f.cache.has(key), key)
	}
	for _, key := range others {
		assert.True(t, f.cache.has(key), key)
	}

	t.Run("glob characters in the id match literally", func(t *testing.T) {
		for _, id := range []string{"*", "st?", "[s]*", `\*`} {
			require.NoError(t, svc.InvalidateStudent(ctx, id))
		}
		for _, key := range others {
			assert.True(t, f.cache.has(key), key)
		}
	})
}
