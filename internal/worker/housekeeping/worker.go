package housekeeping

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/m04kA/SMC-VenueService/internal/domain"
)

// ErrInvalidSchedule возвращается при некорректном cron-выражении
var ErrInvalidSchedule = errors.New("housekeeping: invalid schedule")

// Result итог одного прогона очистки
type Result struct {
	Before           time.Time
	BlocksDeleted    int64
	OverridesDeleted int64
}

// Worker по расписанию удаляет разовые блокировки и переопределения
// старше retention дней. Повторяющиеся блокировки не трогаются.
type Worker struct {
	blocks       BlockRepository
	overrides    OverrideRepository
	schedule     string
	retention    int
	timeProvider TimeProvider
	logger       Logger

	cron   *cron.Cron
	runCtx context.Context
	cancel context.CancelFunc
}

// NewWorker создает воркер очистки
func NewWorker(
	blocks BlockRepository,
	overrides OverrideRepository,
	schedule string,
	retentionDays int,
	logger Logger,
) *Worker {
	return &Worker{
		blocks:       blocks,
		overrides:    overrides,
		schedule:     schedule,
		retention:    retentionDays,
		timeProvider: realTimeProvider{},
		logger:       logger,
	}
}

// Start регистрирует задачу в cron и запускает планировщик
func (w *Worker) Start(ctx context.Context) error {
	w.runCtx, w.cancel = context.WithCancel(ctx)

	c := cron.New()
	if _, err := c.AddFunc(w.schedule, w.run); err != nil {
		w.cancel()
		return fmt.Errorf("%w: %q: %v", ErrInvalidSchedule, w.schedule, err)
	}
	c.Start()
	w.cron = c

	w.logger.Info("Housekeeping: scheduled with %q, retention=%d days", w.schedule, w.retention)
	return nil
}

// Stop останавливает планировщик и ждет завершения текущего прогона
func (w *Worker) Stop() {
	if w.cancel != nil {
		w.cancel()
	}
	if w.cron != nil {
		<-w.cron.Stop().Done()
	}
	w.logger.Info("Housekeeping: stopped")
}

func (w *Worker) run() {
	if _, err := w.RunOnce(w.runCtx); err != nil {
		w.logger.Error("Housekeeping: run failed: %v", err)
	}
}

// RunOnce выполняет одну очистку. Граница считается от начала текущего дня.
func (w *Worker) RunOnce(ctx context.Context) (*Result, error) {
	before := domain.DateOnly(w.timeProvider.Now().UTC()).AddDate(0, 0, -w.retention)
	result := &Result{Before: before}

	blocks, err := w.blocks.DeleteSpecificBefore(ctx, before)
	if err != nil {
		return result, fmt.Errorf("delete blocks before %s: %w", domain.DateKey(before), err)
	}
	result.BlocksDeleted = blocks

	overrides, err := w.overrides.DeleteOverridesBefore(ctx, before)
	if err != nil {
		return result, fmt.Errorf("delete overrides before %s: %w", domain.DateKey(before), err)
	}
	result.OverridesDeleted = overrides

	w.logger.Info("Housekeeping: removed %d blocks and %d overrides before %s",
		blocks, overrides, domain.DateKey(before))
	return result, nil
}
