package availability

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-VenueService/internal/domain"
	availabilityRepo "github.com/m04kA/SMC-VenueService/internal/infra/storage/availability"
	blockRepo "github.com/m04kA/SMC-VenueService/internal/infra/storage/blockedslot"
	venueRepo "github.com/m04kA/SMC-VenueService/internal/infra/storage/venue"
	"github.com/m04kA/SMC-VenueService/internal/service/availability/models"
	"github.com/m04kA/SMC-VenueService/pkg/logger"
	"github.com/m04kA/SMC-VenueService/pkg/ptr"
)

const (
	testVenueID   = int64(1)
	testManagerID = int64(77)
)

var testDate = time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)

type MockVenueRepository struct {
	mock.Mock
}

func (m *MockVenueRepository) GetByID(ctx context.Context, id int64) (*domain.Venue, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Venue), args.Error(1)
}

type MockAvailabilityRepository struct {
	mock.Mock
}

func (m *MockAvailabilityRepository) GetTemplate(ctx context.Context, venueID int64) (*domain.AvailabilityTemplate, error) {
	args := m.Called(ctx, venueID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AvailabilityTemplate), args.Error(1)
}

func (m *MockAvailabilityRepository) SaveWeekdayHours(ctx context.Context, venueID int64, days []domain.WeeklyHours) error {
	return m.Called(ctx, venueID, days).Error(0)
}

func (m *MockAvailabilityRepository) GetOverride(ctx context.Context, venueID int64, date time.Time) (*domain.DateOverride, error) {
	args := m.Called(ctx, venueID, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DateOverride), args.Error(1)
}

func (m *MockAvailabilityRepository) GetOverridesInRange(ctx context.Context, venueID int64, from, to time.Time) ([]domain.DateOverride, error) {
	args := m.Called(ctx, venueID, from, to)
	return args.Get(0).([]domain.DateOverride), args.Error(1)
}

func (m *MockAvailabilityRepository) SaveOverride(ctx context.Context, venueID int64, override domain.DateOverride) error {
	return m.Called(ctx, venueID, override).Error(0)
}

func (m *MockAvailabilityRepository) DeleteOverride(ctx context.Context, venueID int64, date time.Time) error {
	return m.Called(ctx, venueID, date).Error(0)
}

type MockBlockRepository struct {
	mock.Mock
}

func (m *MockBlockRepository) GetForDate(ctx context.Context, venueID int64, date time.Time) ([]domain.BlockedSlot, error) {
	args := m.Called(ctx, venueID, date)
	return args.Get(0).([]domain.BlockedSlot), args.Error(1)
}

func (m *MockBlockRepository) GetAllByVenue(ctx context.Context, venueID int64) ([]domain.BlockedSlot, error) {
	args := m.Called(ctx, venueID)
	return args.Get(0).([]domain.BlockedSlot), args.Error(1)
}

func (m *MockBlockRepository) GetByID(ctx context.Context, venueID int64, id uuid.UUID) (*domain.BlockedSlot, error) {
	args := m.Called(ctx, venueID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BlockedSlot), args.Error(1)
}

func (m *MockBlockRepository) FindByKey(ctx context.Context, probe domain.BlockedSlot) (*domain.BlockedSlot, error) {
	args := m.Called(ctx, probe)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BlockedSlot), args.Error(1)
}

func (m *MockBlockRepository) Insert(ctx context.Context, blocks ...domain.BlockedSlot) (int64, error) {
	args := m.Called(ctx, blocks)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockBlockRepository) Delete(ctx context.Context, venueID int64, id uuid.UUID) error {
	return m.Called(ctx, venueID, id).Error(0)
}

type MockMetrics struct {
	mock.Mock
}

func (m *MockMetrics) AddBlocksCreated(scope string, n int) {
	m.Called(scope, n)
}

type fixture struct {
	venues  *MockVenueRepository
	avail   *MockAvailabilityRepository
	blocks  *MockBlockRepository
	metrics *MockMetrics
	service *Service
}

func newFixture() *fixture {
	f := &fixture{
		venues:  new(MockVenueRepository),
		avail:   new(MockAvailabilityRepository),
		blocks:  new(MockBlockRepository),
		metrics: new(MockMetrics),
	}
	f.service = NewService(f.venues, f.avail, f.blocks, f.metrics, logger.NewNop())
	return f
}

func (f *fixture) expectManager() {
	f.venues.On("GetByID", mock.Anything, testVenueID).
		Return(&domain.Venue{ID: testVenueID, ManagerID: testManagerID}, nil)
}

func TestService_AddBlock_Created(t *testing.T) {
	f := newFixture()
	f.expectManager()
	f.blocks.On("Insert", mock.Anything, mock.Anything).Return(int64(1), nil)
	f.metrics.On("AddBlocksCreated", "specific", 1).Return()

	resp, err := f.service.AddBlock(context.Background(), &models.AddBlockRequest{
		UserID:  testManagerID,
		VenueID: testVenueID,
		Scope:   "specific",
		Date:    &testDate,
		Hour:    10,
	})
	require.NoError(t, err)
	assert.True(t, resp.Created)
	assert.Equal(t, "specific", resp.Block.Scope)
	require.NotNil(t, resp.Block.Date)
	assert.Equal(t, "2025-06-02", *resp.Block.Date)
	assert.Equal(t, int(time.Monday), resp.Block.Weekday)

	f.metrics.AssertExpectations(t)
	f.blocks.AssertNotCalled(t, "FindByKey", mock.Anything, mock.Anything)
}

func TestService_AddBlock_ExistingIsReturned(t *testing.T) {
	f := newFixture()
	f.expectManager()

	existing, err := domain.NewRecurringBlock(testVenueID, time.Wednesday, 18)
	require.NoError(t, err)

	f.blocks.On("Insert", mock.Anything, mock.Anything).Return(int64(0), nil)
	f.blocks.On("FindByKey", mock.Anything, mock.MatchedBy(func(b domain.BlockedSlot) bool {
		return b.IsRecurring() && b.Weekday() == time.Wednesday && b.Hour == 18
	})).Return(&existing, nil)

	resp, err := f.service.AddBlock(context.Background(), &models.AddBlockRequest{
		UserID:  testManagerID,
		VenueID: testVenueID,
		Scope:   "recurring",
		Weekday: ptr.Ptr(int(time.Wednesday)),
		Hour:    18,
	})
	require.NoError(t, err)
	assert.False(t, resp.Created)
	assert.Equal(t, existing.ID.String(), resp.Block.ID)
	f.metrics.AssertNotCalled(t, "AddBlocksCreated", mock.Anything, mock.Anything)
}

func TestService_AddBlock_Validation(t *testing.T) {
	tests := []struct {
		name string
		req  *models.AddBlockRequest
	}{
		{name: "unknown scope", req: &models.AddBlockRequest{Scope: "weekly", Hour: 10}},
		{name: "recurring without weekday", req: &models.AddBlockRequest{Scope: "recurring", Hour: 10}},
		{name: "specific without date", req: &models.AddBlockRequest{Scope: "specific", Hour: 10}},
		{name: "hour out of grid", req: &models.AddBlockRequest{Scope: "specific", Date: &testDate, Hour: 24}},
		{name: "weekday out of range", req: &models.AddBlockRequest{Scope: "recurring", Weekday: ptr.Ptr(7), Hour: 10}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			tt.req.VenueID = testVenueID
			tt.req.UserID = testManagerID

			_, err := f.service.AddBlock(context.Background(), tt.req)
			assert.ErrorIs(t, err, ErrInvalidInput)
			f.venues.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
		})
	}
}

func TestService_AccessDenied(t *testing.T) {
	f := newFixture()
	f.expectManager()

	_, err := f.service.GetTemplate(context.Background(), testVenueID, 5)
	assert.ErrorIs(t, err, ErrAccessDenied)

	err = f.service.RemoveBlock(context.Background(), testVenueID, 5, uuid.New())
	assert.ErrorIs(t, err, ErrAccessDenied)
	f.blocks.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything, mock.Anything)
}

func TestService_VenueNotFound(t *testing.T) {
	f := newFixture()
	f.venues.On("GetByID", mock.Anything, int64(404)).Return(nil, venueRepo.ErrVenueNotFound)

	err := f.service.ClearOverride(context.Background(), 404, testManagerID, testDate)
	assert.ErrorIs(t, err, ErrVenueNotFound)
}

func TestService_RemoveBlock_NotFound(t *testing.T) {
	f := newFixture()
	f.expectManager()
	id := uuid.New()
	f.blocks.On("GetByID", mock.Anything, testVenueID, id).Return(nil, blockRepo.ErrBlockNotFound)

	err := f.service.RemoveBlock(context.Background(), testVenueID, testManagerID, id)
	assert.ErrorIs(t, err, ErrBlockNotFound)
	f.blocks.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything, mock.Anything)
}

func TestService_RemoveBlock(t *testing.T) {
	f := newFixture()
	f.expectManager()
	block, err := domain.NewRecurringBlock(testVenueID, time.Monday, 10)
	require.NoError(t, err)
	f.blocks.On("GetByID", mock.Anything, testVenueID, block.ID).Return(&block, nil)
	f.blocks.On("Delete", mock.Anything, testVenueID, block.ID).Return(nil)

	require.NoError(t, f.service.RemoveBlock(context.Background(), testVenueID, testManagerID, block.ID))
	f.blocks.AssertExpectations(t)
}

func TestService_RemoveBlock_ConcurrentDelete(t *testing.T) {
	f := newFixture()
	f.expectManager()
	block, err := domain.NewSpecificBlock(testVenueID, testDate, 12)
	require.NoError(t, err)
	f.blocks.On("GetByID", mock.Anything, testVenueID, block.ID).Return(&block, nil)
	f.blocks.On("Delete", mock.Anything, testVenueID, block.ID).Return(blockRepo.ErrBlockNotFound)

	err = f.service.RemoveBlock(context.Background(), testVenueID, testManagerID, block.ID)
	assert.ErrorIs(t, err, ErrBlockNotFound)
}

func TestService_UpdateTemplate(t *testing.T) {
	f := newFixture()
	f.expectManager()

	saved := domain.NewAvailabilityTemplate()
	require.NoError(t, saved.SetWeekdayHours(time.Monday, 9, 10, 11, 12))

	f.avail.On("SaveWeekdayHours", mock.Anything, testVenueID, mock.MatchedBy(func(days []domain.WeeklyHours) bool {
		return len(days) == 1 && days[0].Weekday == time.Monday && days[0].Hours.Len() == 4
	})).Return(nil)
	f.avail.On("GetTemplate", mock.Anything, testVenueID).Return(saved, nil)

	resp, err := f.service.UpdateTemplate(context.Background(), &models.UpdateTemplateRequest{
		UserID:  testManagerID,
		VenueID: testVenueID,
		Days:    []models.WeekdayHours{{Weekday: 1, Hours: []int{12, 9, 10, 11}}},
	})
	require.NoError(t, err)
	require.Len(t, resp.Days, 7)
	assert.Equal(t, []int{9, 10, 11, 12}, resp.Days[1].Hours)
	assert.Equal(t, []int{}, resp.Days[0].Hours)
}

func TestService_UpdateTemplate_Invalid(t *testing.T) {
	tests := []struct {
		name string
		days []models.WeekdayHours
	}{
		{name: "no days", days: nil},
		{name: "duplicate weekday", days: []models.WeekdayHours{{Weekday: 1}, {Weekday: 1}}},
		{name: "invalid hour", days: []models.WeekdayHours{{Weekday: 1, Hours: []int{25}}}},
		{name: "invalid weekday", days: []models.WeekdayHours{{Weekday: 9}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			_, err := f.service.UpdateTemplate(context.Background(), &models.UpdateTemplateRequest{
				UserID: testManagerID, VenueID: testVenueID, Days: tt.days,
			})
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestService_SetOverride_EmptyClosesDay(t *testing.T) {
	f := newFixture()
	f.expectManager()
	f.avail.On("SaveOverride", mock.Anything, testVenueID, mock.MatchedBy(func(o domain.DateOverride) bool {
		return o.Hours.IsEmpty() && o.Date.Equal(testDate)
	})).Return(nil)

	resp, err := f.service.SetOverride(context.Background(), &models.SetOverrideRequest{
		UserID: testManagerID, VenueID: testVenueID, Date: testDate.Add(13 * time.Hour), Hours: []int{},
	})
	require.NoError(t, err)
	assert.Equal(t, "2025-06-02", resp.Date)
	assert.Equal(t, []int{}, resp.Hours)
}

func TestService_ListOverrides_RangeChecks(t *testing.T) {
	f := newFixture()

	_, err := f.service.ListOverrides(context.Background(), &models.ListOverridesRequest{
		UserID: testManagerID, VenueID: testVenueID, From: testDate, To: testDate.AddDate(0, 0, -1),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = f.service.ListOverrides(context.Background(), &models.ListOverridesRequest{
		UserID: testManagerID, VenueID: testVenueID, From: testDate, To: testDate.AddDate(2, 0, 0),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestService_LoadForDate(t *testing.T) {
	f := newFixture()

	template := domain.NewAvailabilityTemplate()
	require.NoError(t, template.SetWeekdayHours(time.Monday, 9, 10, 11, 12))
	recurring, err := domain.NewRecurringBlock(testVenueID, time.Monday, 9)
	require.NoError(t, err)

	f.avail.On("GetTemplate", mock.Anything, testVenueID).Return(template, nil)
	f.avail.On("GetOverride", mock.Anything, testVenueID, testDate).Return(nil, availabilityRepo.ErrOverrideNotFound)
	f.blocks.On("GetForDate", mock.Anything, testVenueID, testDate).Return([]domain.BlockedSlot{recurring}, nil)

	avail, err := f.service.LoadForDate(context.Background(), testVenueID, testDate)
	require.NoError(t, err)
	assert.Equal(t, []int{10, 11, 12}, avail.Resolver().BookableHours(testDate))

	// Переопределение на дату имеет приоритет над шаблоном
	f2 := newFixture()
	f2.avail.On("GetTemplate", mock.Anything, testVenueID).Return(template, nil)
	f2.avail.On("GetOverride", mock.Anything, testVenueID, testDate).
		Return(&domain.DateOverride{Date: testDate, Hours: domain.MustHourSet(14, 15)}, nil)
	f2.blocks.On("GetForDate", mock.Anything, testVenueID, testDate).Return([]domain.BlockedSlot{recurring}, nil)

	avail, err = f2.service.LoadForDate(context.Background(), testVenueID, testDate)
	require.NoError(t, err)
	assert.Equal(t, []int{14, 15}, avail.Resolver().BookableHours(testDate))
}

func TestService_LoadForDate_RepositoryError(t *testing.T) {
	f := newFixture()
	f.avail.On("GetTemplate", mock.Anything, testVenueID).Return(nil, errors.New("connection reset"))

	_, err := f.service.LoadForDate(context.Background(), testVenueID, testDate)
	assert.ErrorIs(t, err, ErrInternal)
}

func TestService_LoadForDate_KeepsDriverError(t *testing.T) {
	template := domain.NewAvailabilityTemplate()
	conflict := func() error {
		return fmt.Errorf("%w: query: %w", availabilityRepo.ErrExecQuery, &pq.Error{Code: "40001"})
	}

	tests := []struct {
		name  string
		setup func(f *fixture)
	}{
		{
			name: "template",
			setup: func(f *fixture) {
				f.avail.On("GetTemplate", mock.Anything, testVenueID).Return(nil, conflict())
			},
		},
		{
			name: "override",
			setup: func(f *fixture) {
				f.avail.On("GetTemplate", mock.Anything, testVenueID).Return(template, nil)
				f.avail.On("GetOverride", mock.Anything, testVenueID, testDate).Return(nil, conflict())
			},
		},
		{
			name: "blocks",
			setup: func(f *fixture) {
				f.avail.On("GetTemplate", mock.Anything, testVenueID).Return(template, nil)
				f.avail.On("GetOverride", mock.Anything, testVenueID, testDate).Return(nil, availabilityRepo.ErrOverrideNotFound)
				f.blocks.On("GetForDate", mock.Anything, testVenueID, testDate).Return([]domain.BlockedSlot(nil), conflict())
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			tt.setup(f)

			_, err := f.service.LoadForDate(context.Background(), testVenueID, testDate)
			require.ErrorIs(t, err, ErrInternal)

			// Ошибка драйвера должна дойти до txmanager для повтора транзакции
			var pqErr *pq.Error
			require.True(t, errors.As(err, &pqErr))
			assert.Equal(t, pq.ErrorCode("40001"), pqErr.Code)
		})
	}
}
