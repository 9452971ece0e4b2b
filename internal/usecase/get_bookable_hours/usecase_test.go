package get_bookable_hours

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-VenueService/internal/domain"
	venueRepo "github.com/m04kA/SMC-VenueService/internal/infra/storage/venue"
	"github.com/m04kA/SMC-VenueService/pkg/logger"
)

const testVenueID = int64(1)

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

type MockAvailabilityLoader struct {
	mock.Mock
}

func (m *MockAvailabilityLoader) LoadForDate(ctx context.Context, venueID int64, date time.Time) (*domain.VenueAvailability, error) {
	args := m.Called(ctx, venueID, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.VenueAvailability), args.Error(1)
}

func TestGetBookableHours(t *testing.T) {
	avail := domain.NewVenueAvailability(testVenueID)
	require.NoError(t, avail.Template.SetWeekdayHours(time.Monday, 9, 10, 11, 12))
	_, _, err := avail.Blocks.AddRecurringBlock(time.Monday, 10)
	require.NoError(t, err)

	venues := new(MockVenueRepository)
	loader := new(MockAvailabilityLoader)
	venues.On("GetByID", mock.Anything, testVenueID).Return(&domain.Venue{ID: testVenueID}, nil)
	loader.On("LoadForDate", mock.Anything, testVenueID, testDate).Return(avail, nil)

	uc := NewUseCase(venues, loader, logger.NewNop())
	// Время суток в дате отбрасывается
	resp, err := uc.Execute(context.Background(), &Request{VenueID: testVenueID, Date: testDate.Add(15 * time.Hour)})
	require.NoError(t, err)

	assert.Equal(t, testDate, resp.Date)
	assert.Equal(t, []int{9, 11, 12}, resp.Hours)
	assert.Equal(t, []int{9, 10, 11, 12}, resp.OpenHours)
	assert.Equal(t, []int{10}, resp.BlockedHours)
	assert.Equal(t, string(domain.SourceTemplate), resp.Source)
}

func TestGetBookableHours_ClosedDayIsEmptyNotError(t *testing.T) {
	avail := domain.NewVenueAvailability(testVenueID)
	require.NoError(t, avail.Template.SetWeekdayHours(time.Monday, 9, 10))
	require.NoError(t, avail.Overrides.SetOverride(testDate))

	venues := new(MockVenueRepository)
	loader := new(MockAvailabilityLoader)
	venues.On("GetByID", mock.Anything, testVenueID).Return(&domain.Venue{ID: testVenueID}, nil)
	loader.On("LoadForDate", mock.Anything, testVenueID, testDate).Return(avail, nil)

	resp, err := NewUseCase(venues, loader, logger.NewNop()).
		Execute(context.Background(), &Request{VenueID: testVenueID, Date: testDate})
	require.NoError(t, err)
	assert.Equal(t, []int{}, resp.Hours)
	assert.Equal(t, string(domain.SourceOverride), resp.Source)
}

func TestGetBookableHours_Errors(t *testing.T) {
	venues := new(MockVenueRepository)
	loader := new(MockAvailabilityLoader)
	venues.On("GetByID", mock.Anything, int64(404)).Return(nil, venueRepo.ErrVenueNotFound)
	venues.On("GetByID", mock.Anything, testVenueID).Return(&domain.Venue{ID: testVenueID}, nil)
	loader.On("LoadForDate", mock.Anything, testVenueID, testDate).Return(nil, errors.New("db down"))

	uc := NewUseCase(venues, loader, logger.NewNop())

	_, err := uc.Execute(context.Background(), &Request{VenueID: 0, Date: testDate})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{VenueID: testVenueID})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{VenueID: 404, Date: testDate})
	assert.ErrorIs(t, err, ErrVenueNotFound)

	_, err = uc.Execute(context.Background(), &Request{VenueID: testVenueID, Date: testDate})
	assert.ErrorIs(t, err, ErrInternal)
}
