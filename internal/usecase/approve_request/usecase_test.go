package approve_request

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-VenueService/internal/domain"
	"github.com/m04kA/SMC-VenueService/internal/infra/lock"
	requestRepo "github.com/m04kA/SMC-VenueService/internal/infra/storage/eventrequest"
	venueRepo "github.com/m04kA/SMC-VenueService/internal/infra/storage/venue"
	"github.com/m04kA/SMC-VenueService/internal/integrations/notifier"
	"github.com/m04kA/SMC-VenueService/pkg/logger"
)

const (
	testVenueID   = int64(1)
	testManagerID = int64(77)
	testArtistID  = int64(5)
)

var (
	testDate = time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC) // понедельник
	testNow  = time.Date(2025, 5, 30, 10, 0, 0, 0, time.UTC)
)

// memoryStore in-memory хранилище; снимок состояния откатывается при ошибке транзакции
type memoryStore struct {
	mu       sync.Mutex
	venue    domain.Venue
	hours    []int
	requests map[int64]domain.EventRequest
	blocks   *domain.BlockedSlotRegistry

	failUpdate error
}

func newMemoryStore(hours ...int) *memoryStore {
	return &memoryStore{
		venue:    domain.Venue{ID: testVenueID, Name: "Loft", ManagerID: testManagerID},
		hours:    hours,
		requests: make(map[int64]domain.EventRequest),
		blocks:   domain.NewBlockedSlotRegistry(testVenueID),
	}
}

func (s *memoryStore) addRequest(id int64, start, end int) {
	s.requests[id] = domain.EventRequest{
		ID:        id,
		VenueID:   testVenueID,
		ArtistID:  testArtistID,
		Date:      testDate,
		StartHour: start,
		EndHour:   end,
		Status:    domain.RequestStatusPending,
	}
}

func (s *memoryStore) status(id int64) domain.RequestStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.requests[id].Status
}

type storeSnapshot struct {
	requests map[int64]domain.EventRequest
	blocks   *domain.BlockedSlotRegistry
}

func (s *memoryStore) snapshot() storeSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	requests := make(map[int64]domain.EventRequest, len(s.requests))
	for id, r := range s.requests {
		requests[id] = r
	}
	return storeSnapshot{requests: requests, blocks: s.blocks.Clone()}
}

func (s *memoryStore) restore(snap storeSnapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.requests = snap.requests
	s.blocks = snap.blocks
}

func (s *memoryStore) GetByID(_ context.Context, id int64) (*domain.EventRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.requests[id]
	if !ok {
		return nil, requestRepo.ErrRequestNotFound
	}
	return &r, nil
}

func (s *memoryStore) UpdateDecision(_ context.Context, req *domain.EventRequest) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failUpdate != nil {
		return s.failUpdate
	}
	current, ok := s.requests[req.ID]
	if !ok || !current.IsPending() {
		return requestRepo.ErrRequestNotPending
	}
	s.requests[req.ID] = *req
	return nil
}

func (s *memoryStore) Insert(_ context.Context, blocks ...domain.BlockedSlot) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var inserted int64
	for _, b := range blocks {
		if _, exists := s.blocks.Find(b); exists {
			continue
		}
		s.blocks.Load(b)
		inserted++
	}
	return inserted, nil
}

func (s *memoryStore) LoadForDate(_ context.Context, venueID int64, date time.Time) (*domain.VenueAvailability, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	avail := domain.NewVenueAvailability(venueID)
	if err := avail.Template.SetWeekdayHours(domain.WeekdayOf(date), s.hours...); err != nil {
		return nil, err
	}
	avail.Blocks = s.blocks.Clone()
	return avail, nil
}

type venueStore struct {
	store *memoryStore
	err   error
}

func (v *venueStore) GetByID(_ context.Context, id int64) (*domain.Venue, error) {
	if v.err != nil {
		return nil, v.err
	}
	if id != v.store.venue.ID {
		return nil, venueRepo.ErrVenueNotFound
	}
	venue := v.store.venue
	return &venue, nil
}

// serialTxManager выполняет транзакции по одной и откатывает состояние при ошибке
type serialTxManager struct {
	mu    sync.Mutex
	store *memoryStore
}

func (m *serialTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	snap := m.store.snapshot()
	if err := fn(ctx); err != nil {
		m.store.restore(snap)
		return err
	}
	return nil
}

type countingLocker struct {
	mu       sync.Mutex
	locked   int
	released int
	err      error
}

func (l *countingLocker) Lock(_ context.Context, _ int64, _ time.Time) (lock.Release, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.err != nil {
		return nil, l.err
	}
	l.locked++
	return func(context.Context) error {
		l.mu.Lock()
		defer l.mu.Unlock()
		l.released++
		return nil
	}, nil
}

type recordingNotifier struct {
	mu     sync.Mutex
	events []notifier.RequestStatusEvent
	err    error
}

func (n *recordingNotifier) PublishStatusChanged(_ context.Context, event notifier.RequestStatusEvent) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, event)
	return n.err
}

type recordingMetrics struct {
	mu      sync.Mutex
	results []string
	blocks  int
}

func (m *recordingMetrics) ObserveApproval(result string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.results = append(m.results, result)
}

func (m *recordingMetrics) AddBlocksCreated(_ string, n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.blocks += n
}

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

type fixture struct {
	store    *memoryStore
	venues   *venueStore
	locker   *countingLocker
	notifier *recordingNotifier
	metrics  *recordingMetrics
	uc       *UseCase
}

func newFixture(hours ...int) *fixture {
	store := newMemoryStore(hours...)
	f := &fixture{
		store:    store,
		venues:   &venueStore{store: store},
		locker:   &countingLocker{},
		notifier: &recordingNotifier{},
		metrics:  &recordingMetrics{},
	}
	f.uc = NewUseCase(store, f.venues, store, store, f.locker, &serialTxManager{store: store},
		f.notifier, f.metrics, logger.NewNop())
	f.uc.timeProvider = fixedTime{now: testNow}
	return f
}

func TestApproveRequest_Success(t *testing.T) {
	f := newFixture(9, 10, 11, 12)
	f.store.addRequest(1, 10, 12)

	resp, err := f.uc.Execute(context.Background(), &Request{RequestID: 1, UserID: testManagerID})
	require.NoError(t, err)

	assert.Equal(t, string(domain.RequestStatusApproved), resp.Status)
	assert.Equal(t, testManagerID, resp.DecidedBy)
	assert.Equal(t, testNow, resp.DecidedAt)
	assert.Equal(t, []int{10, 11}, resp.BlockedHours)
	assert.Len(t, resp.CreatedBlockIDs, 2)
	assert.Equal(t, []int{9, 12}, resp.RemainingHours)

	assert.Equal(t, domain.RequestStatusApproved, f.store.status(1))
	assert.True(t, f.store.blocks.IsBlocked(testDate, 10))
	assert.True(t, f.store.blocks.IsBlocked(testDate, 11))
	assert.False(t, f.store.blocks.IsBlocked(testDate.AddDate(0, 0, 7), 10), "only the requested date is blocked")

	assert.Equal(t, 1, f.locker.locked)
	assert.Equal(t, 1, f.locker.released)
	assert.Equal(t, []string{resultApproved}, f.metrics.results)
	assert.Equal(t, 2, f.metrics.blocks)

	require.Len(t, f.notifier.events, 1)
	assert.Equal(t, "event_request.approved", f.notifier.events[0].RoutingKey())
}

func TestApproveRequest_ConcurrentOverlappingApprovals(t *testing.T) {
	f := newFixture(9, 10, 11, 12, 13)
	f.store.addRequest(1, 10, 12)
	f.store.addRequest(2, 11, 13)

	var (
		wg    sync.WaitGroup
		start = make(chan struct{})
		errs  = make([]error, 2)
	)
	for i, id := range []int64{1, 2} {
		wg.Add(1)
		go func(i int, id int64) {
			defer wg.Done()
			<-start
			_, errs[i] = f.uc.Execute(context.Background(), &Request{RequestID: id, UserID: testManagerID})
		}(i, id)
	}
	close(start)
	wg.Wait()

	var succeeded, conflicted int
	var winner, loser int64
	for i, err := range errs {
		switch {
		case err == nil:
			succeeded++
			winner = int64(i + 1)
		case errors.Is(err, ErrSlotNoLongerAvailable):
			conflicted++
			loser = int64(i + 1)
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	require.Equal(t, 1, succeeded)
	require.Equal(t, 1, conflicted)

	assert.Equal(t, domain.RequestStatusApproved, f.store.status(winner))
	assert.Equal(t, domain.RequestStatusPending, f.store.status(loser), "loser stays pending")

	// Блокировки есть только у победителя
	assert.Equal(t, 2, f.store.blocks.Len())
	assert.ElementsMatch(t, []string{resultApproved, resultUnavailable}, f.metrics.results)
	assert.Len(t, f.notifier.events, 1)
}

func TestApproveRequest_SlotNoLongerAvailable(t *testing.T) {
	f := newFixture(9, 10, 11)
	f.store.addRequest(1, 10, 12)
	_, _, err := f.store.blocks.AddSpecificBlock(testDate, 11)
	require.NoError(t, err)

	_, err = f.uc.Execute(context.Background(), &Request{RequestID: 1, UserID: testManagerID})
	assert.ErrorIs(t, err, ErrSlotNoLongerAvailable)
	assert.Equal(t, domain.RequestStatusPending, f.store.status(1))
	assert.Equal(t, 1, f.store.blocks.Len(), "no partial blocks")
	assert.Equal(t, 1, f.locker.released)
	assert.Empty(t, f.notifier.events)
}

func TestApproveRequest_Errors(t *testing.T) {
	tests := []struct {
		name      string
		prepare   func(f *fixture)
		req       Request
		expectErr error
	}{
		{
			name:      "invalid input",
			req:       Request{RequestID: 0, UserID: testManagerID},
			expectErr: ErrInvalidInput,
		},
		{
			name:      "request not found",
			req:       Request{RequestID: 42, UserID: testManagerID},
			expectErr: ErrRequestNotFound,
		},
		{
			name:      "not the manager",
			req:       Request{RequestID: 1, UserID: testArtistID},
			expectErr: ErrAccessDenied,
		},
		{
			name:      "venue not found",
			prepare:   func(f *fixture) { f.venues.err = venueRepo.ErrVenueNotFound },
			req:       Request{RequestID: 1, UserID: testManagerID},
			expectErr: ErrVenueNotFound,
		},
		{
			name: "already decided",
			prepare: func(f *fixture) {
				r := f.store.requests[1]
				r.Status = domain.RequestStatusRejected
				f.store.requests[1] = r
			},
			req:       Request{RequestID: 1, UserID: testManagerID},
			expectErr: ErrAlreadyDecided,
		},
		{
			name:      "lock failure",
			prepare:   func(f *fixture) { f.locker.err = lock.ErrTimeout },
			req:       Request{RequestID: 1, UserID: testManagerID},
			expectErr: ErrInternal,
		},
		{
			name: "malformed stored range",
			prepare: func(f *fixture) {
				r := f.store.requests[1]
				r.EndHour = r.StartHour
				f.store.requests[1] = r
			},
			req:       Request{RequestID: 1, UserID: testManagerID},
			expectErr: ErrInternal,
		},
		{
			name:      "decided concurrently",
			prepare:   func(f *fixture) { f.store.failUpdate = requestRepo.ErrRequestNotPending },
			req:       Request{RequestID: 1, UserID: testManagerID},
			expectErr: ErrAlreadyDecided,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(9, 10, 11, 12)
			f.store.addRequest(1, 10, 12)
			if tt.prepare != nil {
				tt.prepare(f)
			}

			resp, err := f.uc.Execute(context.Background(), &tt.req)
			assert.Nil(t, resp)
			assert.ErrorIs(t, err, tt.expectErr)
			assert.Equal(t, 0, f.store.blocks.Len(), "nothing is blocked")
			assert.Empty(t, f.notifier.events)
		})
	}
}

func TestApproveRequest_NotifierFailureDoesNotFailApproval(t *testing.T) {
	f := newFixture(9, 10)
	f.store.addRequest(1, 9, 11)
	f.notifier.err = errors.New("broker down")

	resp, err := f.uc.Execute(context.Background(), &Request{RequestID: 1, UserID: testManagerID})
	require.NoError(t, err)
	assert.Equal(t, []int{}, resp.RemainingHours)
	assert.Equal(t, domain.RequestStatusApproved, f.store.status(1))
}

// orderLog фиксирует порядок обращений к блокировке и снимку доступности
type orderLog struct {
	mu  sync.Mutex
	ops []string
}

func (l *orderLog) add(op string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.ops = append(l.ops, op)
}

type orderedLocker struct {
	log *orderLog
}

func (l *orderedLocker) Lock(_ context.Context, _ int64, _ time.Time) (lock.Release, error) {
	l.log.add("lock")
	return func(context.Context) error {
		l.log.add("release")
		return nil
	}, nil
}

// flakyLoader первые failures чтений завершаются конфликтом сериализации
type flakyLoader struct {
	log      *orderLog
	store    *memoryStore
	failures int
}

func (l *flakyLoader) LoadForDate(ctx context.Context, venueID int64, date time.Time) (*domain.VenueAvailability, error) {
	l.log.add("load")
	if l.failures > 0 {
		l.failures--
		return nil, fmt.Errorf("load snapshot: %w", &pq.Error{Code: "40001"})
	}
	return l.store.LoadForDate(ctx, venueID, date)
}

// retryingTxManager повторяет функцию целиком, пока ошибка драйвера допускает повтор
type retryingTxManager struct {
	store    *memoryStore
	attempts int
}

func (m *retryingTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	for {
		m.attempts++
		snap := m.store.snapshot()
		err := fn(ctx)
		if err == nil {
			return nil
		}
		m.store.restore(snap)

		var pqErr *pq.Error
		if !errors.As(err, &pqErr) || m.attempts > 3 {
			return err
		}
	}
}

func TestApproveRequest_LocksBeforeLoadingSnapshotOnEveryAttempt(t *testing.T) {
	store := newMemoryStore(9, 10, 11, 12)
	store.addRequest(1, 10, 12)

	log := &orderLog{}
	tx := &retryingTxManager{store: store}
	uc := NewUseCase(store, &venueStore{store: store}, store,
		&flakyLoader{log: log, store: store, failures: 1},
		&orderedLocker{log: log}, tx, &recordingNotifier{}, &recordingMetrics{}, logger.NewNop())
	uc.timeProvider = fixedTime{now: testNow}

	resp, err := uc.Execute(context.Background(), &Request{RequestID: 1, UserID: testManagerID})
	require.NoError(t, err)
	assert.Equal(t, string(domain.RequestStatusApproved), resp.Status)

	// Конфликт в первой попытке повторяет всю единицу работы: блокировка
	// предыдущей попытки снимается, снимок читается только под новой блокировкой
	assert.Equal(t, 2, tx.attempts)
	assert.Equal(t, []string{"lock", "load", "release", "lock", "load", "release"}, log.ops)
	assert.Equal(t, 2, store.blocks.Len())
}
