package export_calendar

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-VenueService/internal/domain"
	venueRepo "github.com/m04kA/SMC-VenueService/internal/infra/storage/venue"
	"github.com/m04kA/SMC-VenueService/pkg/logger"
	"github.com/m04kA/SMC-VenueService/pkg/ptr"
)

const testVenueID = int64(1)

var (
	windowFrom = time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)  // понедельник
	windowTo   = time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC) // понедельник
	testNow    = time.Date(2025, 5, 30, 10, 0, 0, 0, time.UTC)
)

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

type MockRequestRepository struct {
	mock.Mock
}

func (m *MockRequestRepository) GetApprovedInRange(ctx context.Context, venueID int64, from, to time.Time) ([]*domain.EventRequest, error) {
	args := m.Called(ctx, venueID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.EventRequest), args.Error(1)
}

type MockBlockRepository struct {
	mock.Mock
}

func (m *MockBlockRepository) GetRecurringByVenue(ctx context.Context, venueID int64) ([]domain.BlockedSlot, error) {
	args := m.Called(ctx, venueID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BlockedSlot), args.Error(1)
}

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

type fixture struct {
	venues   *MockVenueRepository
	requests *MockRequestRepository
	blocks   *MockBlockRepository
	uc       *UseCase
}

func newFixture() *fixture {
	f := &fixture{
		venues:   new(MockVenueRepository),
		requests: new(MockRequestRepository),
		blocks:   new(MockBlockRepository),
	}
	f.uc = NewUseCase(f.venues, f.requests, f.blocks, logger.NewNop())
	f.uc.timeProvider = fixedTime{now: testNow}
	f.venues.On("GetByID", mock.Anything, testVenueID).
		Return(&domain.Venue{ID: testVenueID, Name: "Loft", ManagerID: 77}, nil)
	return f
}

func recurringBlock(t *testing.T, weekday time.Weekday, hour int) domain.BlockedSlot {
	t.Helper()
	b, err := domain.NewRecurringBlock(testVenueID, weekday, hour)
	require.NoError(t, err)
	return b
}

func TestExportCalendar(t *testing.T) {
	f := newFixture()
	approved := []*domain.EventRequest{
		{
			ID: 7, VenueID: testVenueID, ArtistID: 5,
			Date: time.Date(2025, 6, 3, 0, 0, 0, 0, time.UTC), StartHour: 19, EndHour: 22,
			Status: domain.RequestStatusApproved, Title: ptr.Ptr("Jazz night"),
		},
	}
	f.requests.On("GetApprovedInRange", mock.Anything, testVenueID, windowFrom, windowTo).Return(approved, nil)
	f.blocks.On("GetRecurringByVenue", mock.Anything, testVenueID).Return([]domain.BlockedSlot{
		recurringBlock(t, time.Monday, 9),
		recurringBlock(t, time.Wednesday, 18),
	}, nil)

	resp, err := f.uc.Execute(context.Background(), &Request{VenueID: testVenueID, From: &windowFrom, To: &windowTo})
	require.NoError(t, err)
	assert.Equal(t, 1, resp.EventCount)
	assert.Equal(t, 2, resp.RecurringCount)
	assert.Equal(t, "venue-1.ics", resp.Filename)

	cal, err := ics.ParseCalendar(strings.NewReader(resp.Body))
	require.NoError(t, err)

	events := make(map[string]*ics.VEvent)
	for _, e := range cal.Events() {
		events[e.GetProperty(ics.ComponentPropertyUniqueId).Value] = e
	}
	require.Len(t, events, 3)

	request := events["request-7@venue-service"]
	require.NotNil(t, request)
	assert.Equal(t, "Jazz night", request.GetProperty(ics.ComponentPropertySummary).Value)
	assert.Equal(t, "20250603T190000", request.GetProperty(ics.ComponentPropertyDtStart).Value)
	assert.Equal(t, "20250603T220000", request.GetProperty(ics.ComponentPropertyDtEnd).Value)

	var monday, wednesday *ics.VEvent
	for uid, e := range events {
		if !strings.HasPrefix(uid, "block-") {
			continue
		}
		switch e.GetProperty(ics.ComponentPropertyDtStart).Value {
		case "20250602T090000":
			monday = e
		case "20250604T180000":
			wednesday = e
		}
	}
	require.NotNil(t, monday, "monday block starts on the first monday of the window")
	require.NotNil(t, wednesday, "wednesday block starts on the first wednesday of the window")

	mondayRule := monday.GetProperty(ics.ComponentPropertyRrule).Value
	assert.Contains(t, mondayRule, "FREQ=WEEKLY")
	assert.Contains(t, mondayRule, "COUNT=5")
	assert.Contains(t, mondayRule, "BYDAY=MO")
	assert.Contains(t, wednesday.GetProperty(ics.ComponentPropertyRrule).Value, "COUNT=4")
	assert.Equal(t, "20250602T100000", monday.GetProperty(ics.ComponentPropertyDtEnd).Value)
}

func TestExportCalendar_RecurringBlockOutsideWindowIsSkipped(t *testing.T) {
	f := newFixture()
	tuesday := time.Date(2025, 6, 3, 0, 0, 0, 0, time.UTC)
	f.requests.On("GetApprovedInRange", mock.Anything, testVenueID, tuesday, tuesday).Return([]*domain.EventRequest{}, nil)
	f.blocks.On("GetRecurringByVenue", mock.Anything, testVenueID).Return([]domain.BlockedSlot{
		recurringBlock(t, time.Monday, 9),
	}, nil)

	resp, err := f.uc.Execute(context.Background(), &Request{VenueID: testVenueID, From: &tuesday, To: &tuesday})
	require.NoError(t, err)
	assert.Equal(t, 0, resp.RecurringCount)
	assert.NotContains(t, resp.Body, "BEGIN:VEVENT")
	assert.Contains(t, resp.Body, "BEGIN:VCALENDAR")
}

func TestExportCalendar_DefaultWindow(t *testing.T) {
	f := newFixture()
	from := domain.DateOnly(testNow)
	to := from.AddDate(0, 0, defaultWindowDays)
	f.requests.On("GetApprovedInRange", mock.Anything, testVenueID, from, to).Return([]*domain.EventRequest{}, nil)
	f.blocks.On("GetRecurringByVenue", mock.Anything, testVenueID).Return([]domain.BlockedSlot{}, nil)

	resp, err := f.uc.Execute(context.Background(), &Request{VenueID: testVenueID})
	require.NoError(t, err)
	assert.Equal(t, from, resp.From)
	assert.Equal(t, to, resp.To)
}

func TestExportCalendar_Errors(t *testing.T) {
	t.Run("invalid venue", func(t *testing.T) {
		_, err := newFixture().uc.Execute(context.Background(), &Request{})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("reversed window", func(t *testing.T) {
		_, err := newFixture().uc.Execute(context.Background(), &Request{VenueID: testVenueID, From: &windowTo, To: &windowFrom})
		assert.ErrorIs(t, err, ErrInvalidRange)
	})

	t.Run("window too long", func(t *testing.T) {
		far := windowFrom.AddDate(2, 0, 0)
		_, err := newFixture().uc.Execute(context.Background(), &Request{VenueID: testVenueID, From: &windowFrom, To: &far})
		assert.ErrorIs(t, err, ErrInvalidRange)
	})

	t.Run("venue not found", func(t *testing.T) {
		f := newFixture()
		f.venues.ExpectedCalls = nil
		f.venues.On("GetByID", mock.Anything, testVenueID).Return(nil, venueRepo.ErrVenueNotFound)
		_, err := f.uc.Execute(context.Background(), &Request{VenueID: testVenueID})
		assert.ErrorIs(t, err, ErrVenueNotFound)
	})

	t.Run("repository failure", func(t *testing.T) {
		f := newFixture()
		f.requests.On("GetApprovedInRange", mock.Anything, testVenueID, mock.Anything, mock.Anything).
			Return(nil, errors.New("db down"))
		_, err := f.uc.Execute(context.Background(), &Request{VenueID: testVenueID})
		assert.ErrorIs(t, err, ErrInternal)
	})
}
