package availability

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-VenueService/internal/domain"
	availabilityRepo "github.com/m04kA/SMC-VenueService/internal/infra/storage/availability"
	blockRepo "github.com/m04kA/SMC-VenueService/internal/infra/storage/blockedslot"
	venueRepo "github.com/m04kA/SMC-VenueService/internal/infra/storage/venue"
	"github.com/m04kA/SMC-VenueService/internal/service/availability/models"
)

// Service сервис управления доступностью площадки: шаблон, переопределения, блокировки
type Service struct {
	venueRepo        VenueRepository
	availabilityRepo AvailabilityRepository
	blockRepo        BlockRepository
	metrics          MetricsCollector
	logger           Logger
}

// NewService создает новый экземпляр сервиса доступности
func NewService(
	venueRepo VenueRepository,
	availabilityRepo AvailabilityRepository,
	blockRepo BlockRepository,
	metrics MetricsCollector,
	logger Logger,
) *Service {
	return &Service{
		venueRepo:        venueRepo,
		availabilityRepo: availabilityRepo,
		blockRepo:        blockRepo,
		metrics:          metrics,
		logger:           logger,
	}
}

// GetTemplate получает недельный шаблон площадки
// Доступно только менеджеру площадки
func (s *Service) GetTemplate(ctx context.Context, venueID, userID int64) (*models.TemplateResponse, error) {
	s.logger.Info("GetTemplate: fetching template for venue=%d by user=%d", venueID, userID)

	if err := s.checkManagerAccess(ctx, venueID, userID); err != nil {
		return nil, err
	}

	template, err := s.availabilityRepo.GetTemplate(ctx, venueID)
	if err != nil {
		s.logger.Error("GetTemplate: repository error for venue=%d: %v", venueID, err)
		return nil, fmt.Errorf("%w: GetTemplate - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainTemplate(venueID, template), nil
}

// UpdateTemplate заменяет часы работы для переданных дней недели
// Доступно только менеджеру площадки
func (s *Service) UpdateTemplate(ctx context.Context, req *models.UpdateTemplateRequest) (*models.TemplateResponse, error) {
	s.logger.Info("UpdateTemplate: updating %d days for venue=%d by user=%d", len(req.Days), req.VenueID, req.UserID)

	// 1. Валидируем дни и часы до обращения к БД
	days, err := toWeeklyHours(req.Days)
	if err != nil {
		s.logger.Warn("UpdateTemplate: validation failed for venue=%d: %v", req.VenueID, err)
		return nil, err
	}

	// 2. Проверяем права доступа
	if err := s.checkManagerAccess(ctx, req.VenueID, req.UserID); err != nil {
		return nil, err
	}

	// 3. Сохраняем только переданные дни
	if err := s.availabilityRepo.SaveWeekdayHours(ctx, req.VenueID, days); err != nil {
		s.logger.Error("UpdateTemplate: repository error for venue=%d: %v", req.VenueID, err)
		return nil, fmt.Errorf("%w: UpdateTemplate - save error: %v", ErrInternal, err)
	}

	// 4. Возвращаем шаблон целиком
	template, err := s.availabilityRepo.GetTemplate(ctx, req.VenueID)
	if err != nil {
		s.logger.Error("UpdateTemplate: failed to reload template for venue=%d: %v", req.VenueID, err)
		return nil, fmt.Errorf("%w: UpdateTemplate - reload error: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateTemplate: successfully updated template for venue=%d", req.VenueID)
	return models.FromDomainTemplate(req.VenueID, template), nil
}

// ListOverrides получает переопределения в диапазоне дат [From, To]
// Доступно только менеджеру площадки
func (s *Service) ListOverrides(ctx context.Context, req *models.ListOverridesRequest) (*models.OverrideListResponse, error) {
	from, to := domain.DateOnly(req.From), domain.DateOnly(req.To)
	s.logger.Info("ListOverrides: venue=%d, period=%s to %s, user=%d",
		req.VenueID, domain.DateKey(from), domain.DateKey(to), req.UserID)

	if to.Before(from) {
		return nil, fmt.Errorf("%w: 'to' is before 'from'", ErrInvalidInput)
	}
	if to.Sub(from) > time.Duration(domain.MaxOverrideRangeDays)*24*time.Hour {
		return nil, fmt.Errorf("%w: range exceeds %d days", ErrInvalidInput, domain.MaxOverrideRangeDays)
	}

	if err := s.checkManagerAccess(ctx, req.VenueID, req.UserID); err != nil {
		return nil, err
	}

	overrides, err := s.availabilityRepo.GetOverridesInRange(ctx, req.VenueID, from, to)
	if err != nil {
		s.logger.Error("ListOverrides: repository error for venue=%d: %v", req.VenueID, err)
		return nil, fmt.Errorf("%w: ListOverrides - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainOverrideList(req.VenueID, overrides), nil
}

// SetOverride задает часы работы на конкретную дату вместо шаблона.
// Пустой список часов закрывает площадку на весь день.
func (s *Service) SetOverride(ctx context.Context, req *models.SetOverrideRequest) (*models.OverrideResponse, error) {
	s.logger.Info("SetOverride: venue=%d, date=%s, hours=%v, user=%d",
		req.VenueID, domain.DateKey(req.Date), req.Hours, req.UserID)

	set, err := domain.NewHourSet(req.Hours...)
	if err != nil {
		s.logger.Warn("SetOverride: invalid hours for venue=%d: %v", req.VenueID, err)
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	if err := s.checkManagerAccess(ctx, req.VenueID, req.UserID); err != nil {
		return nil, err
	}

	override := domain.DateOverride{Date: domain.DateOnly(req.Date), Hours: set}
	if err := s.availabilityRepo.SaveOverride(ctx, req.VenueID, override); err != nil {
		s.logger.Error("SetOverride: repository error for venue=%d: %v", req.VenueID, err)
		return nil, fmt.Errorf("%w: SetOverride - repository error: %v", ErrInternal, err)
	}

	resp := models.FromDomainOverride(req.VenueID, override)
	return &resp, nil
}

// ClearOverride удаляет переопределение, дата снова следует шаблону
func (s *Service) ClearOverride(ctx context.Context, venueID, userID int64, date time.Time) error {
	s.logger.Info("ClearOverride: venue=%d, date=%s, user=%d", venueID, domain.DateKey(date), userID)

	if err := s.checkManagerAccess(ctx, venueID, userID); err != nil {
		return err
	}

	if err := s.availabilityRepo.DeleteOverride(ctx, venueID, date); err != nil {
		if errors.Is(err, availabilityRepo.ErrOverrideNotFound) {
			s.logger.Warn("ClearOverride: no override for venue=%d on %s", venueID, domain.DateKey(date))
			return ErrOverrideNotFound
		}
		s.logger.Error("ClearOverride: repository error for venue=%d: %v", venueID, err)
		return fmt.Errorf("%w: ClearOverride - repository error: %v", ErrInternal, err)
	}

	return nil
}

// ListBlocks получает блокировки площадки: все или только действующие в дату
// Доступно только менеджеру площадки
func (s *Service) ListBlocks(ctx context.Context, req *models.ListBlocksRequest) (*models.BlockListResponse, error) {
	s.logger.Info("ListBlocks: venue=%d, date=%v, user=%d", req.VenueID, req.Date, req.UserID)

	if err := s.checkManagerAccess(ctx, req.VenueID, req.UserID); err != nil {
		return nil, err
	}

	var (
		blocks []domain.BlockedSlot
		err    error
	)
	if req.Date != nil {
		blocks, err = s.blockRepo.GetForDate(ctx, req.VenueID, *req.Date)
	} else {
		blocks, err = s.blockRepo.GetAllByVenue(ctx, req.VenueID)
	}
	if err != nil {
		s.logger.Error("ListBlocks: repository error for venue=%d: %v", req.VenueID, err)
		return nil, fmt.Errorf("%w: ListBlocks - repository error: %v", ErrInternal, err)
	}

	registry := domain.NewBlockedSlotRegistry(req.VenueID)
	registry.Load(blocks...)

	if req.Date != nil {
		return models.FromDomainBlockList(registry.BlocksFor(*req.Date)), nil
	}
	return models.FromDomainBlockList(registry.All()), nil
}

// AddBlock блокирует час: еженедельно по дню недели или разово на дату.
// Повторная блокировка того же слота не создает дубликат и возвращает существующий блок.
func (s *Service) AddBlock(ctx context.Context, req *models.AddBlockRequest) (*models.AddBlockResponse, error) {
	s.logger.Info("AddBlock: venue=%d, scope=%s, hour=%d, user=%d", req.VenueID, req.Scope, req.Hour, req.UserID)

	// 1. Собираем блок и валидируем его
	block, err := buildBlock(req)
	if err != nil {
		s.logger.Warn("AddBlock: validation failed for venue=%d: %v", req.VenueID, err)
		return nil, err
	}

	// 2. Проверяем права доступа
	if err := s.checkManagerAccess(ctx, req.VenueID, req.UserID); err != nil {
		return nil, err
	}

	// 3. Вставляем, конфликт по ключу уникальности пропускается
	block.CreatedAt = time.Now().UTC()
	inserted, err := s.blockRepo.Insert(ctx, block)
	if err != nil {
		s.logger.Error("AddBlock: insert error for venue=%d: %v", req.VenueID, err)
		return nil, fmt.Errorf("%w: AddBlock - insert error: %v", ErrInternal, err)
	}

	if inserted > 0 {
		s.metrics.AddBlocksCreated(string(block.Scope), int(inserted))
		s.logger.Info("AddBlock: created block id=%s for venue=%d", block.ID, req.VenueID)
		return &models.AddBlockResponse{Block: models.FromDomainBlock(block), Created: true}, nil
	}

	// 4. Блок уже существовал, возвращаем его
	existing, err := s.blockRepo.FindByKey(ctx, block)
	if err != nil {
		s.logger.Error("AddBlock: failed to load existing block for venue=%d: %v", req.VenueID, err)
		return nil, fmt.Errorf("%w: AddBlock - find existing: %v", ErrInternal, err)
	}

	s.logger.Info("AddBlock: block already exists id=%s for venue=%d", existing.ID, req.VenueID)
	return &models.AddBlockResponse{Block: models.FromDomainBlock(*existing), Created: false}, nil
}

// RemoveBlock снимает блокировку по ID
func (s *Service) RemoveBlock(ctx context.Context, venueID, userID int64, blockID uuid.UUID) error {
	s.logger.Info("RemoveBlock: venue=%d, block=%s, user=%d", venueID, blockID, userID)

	if err := s.checkManagerAccess(ctx, venueID, userID); err != nil {
		return err
	}

	block, err := s.blockRepo.GetByID(ctx, venueID, blockID)
	if err != nil {
		if errors.Is(err, blockRepo.ErrBlockNotFound) {
			s.logger.Warn("RemoveBlock: block id=%s not found for venue=%d", blockID, venueID)
			return ErrBlockNotFound
		}
		s.logger.Error("RemoveBlock: failed to get block id=%s: %v", blockID, err)
		return fmt.Errorf("%w: RemoveBlock - get block: %v", ErrInternal, err)
	}

	if err := s.blockRepo.Delete(ctx, venueID, blockID); err != nil {
		// Блокировку могли снять параллельно между чтением и удалением
		if errors.Is(err, blockRepo.ErrBlockNotFound) {
			s.logger.Warn("RemoveBlock: block id=%s already removed from venue=%d", blockID, venueID)
			return ErrBlockNotFound
		}
		s.logger.Error("RemoveBlock: repository error for venue=%d: %v", venueID, err)
		return fmt.Errorf("%w: RemoveBlock - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("RemoveBlock: removed %s block id=%s hour=%d from venue=%d", block.Scope, blockID, block.Hour, venueID)
	return nil
}

// LoadForDate собирает снимок доступности площадки на дату: шаблон,
// переопределение на эту дату (если есть) и действующие блокировки.
// Права доступа не проверяются, метод используется usecase'ами.
func (s *Service) LoadForDate(ctx context.Context, venueID int64, date time.Time) (*domain.VenueAvailability, error) {
	template, err := s.availabilityRepo.GetTemplate(ctx, venueID)
	if err != nil {
		return nil, fmt.Errorf("%w: LoadForDate - get template: %w", ErrInternal, err)
	}

	avail := domain.NewVenueAvailability(venueID)
	avail.Template = template

	override, err := s.availabilityRepo.GetOverride(ctx, venueID, date)
	switch {
	case err == nil:
		avail.Overrides.SetOverrideSet(override.Date, override.Hours)
	case errors.Is(err, availabilityRepo.ErrOverrideNotFound):
	default:
		return nil, fmt.Errorf("%w: LoadForDate - get override: %w", ErrInternal, err)
	}

	blocks, err := s.blockRepo.GetForDate(ctx, venueID, date)
	if err != nil {
		return nil, fmt.Errorf("%w: LoadForDate - get blocks: %w", ErrInternal, err)
	}
	avail.Blocks.Load(blocks...)

	return avail, nil
}

// Вспомогательные методы

// checkManagerAccess проверяет, что пользователь является менеджером площадки
func (s *Service) checkManagerAccess(ctx context.Context, venueID, userID int64) error {
	venue, err := s.venueRepo.GetByID(ctx, venueID)
	if err != nil {
		if errors.Is(err, venueRepo.ErrVenueNotFound) {
			s.logger.Warn("checkManagerAccess: venue id=%d not found", venueID)
			return ErrVenueNotFound
		}
		s.logger.Error("checkManagerAccess: failed to get venue id=%d: %v", venueID, err)
		return fmt.Errorf("%w: checkManagerAccess - failed to get venue: %v", ErrInternal, err)
	}

	if !venue.IsManagedBy(userID) {
		s.logger.Warn("checkManagerAccess: user=%d is not a manager of venue=%d", userID, venueID)
		return ErrAccessDenied
	}

	return nil
}

func toWeeklyHours(days []models.WeekdayHours) ([]domain.WeeklyHours, error) {
	if len(days) == 0 {
		return nil, fmt.Errorf("%w: at least one day is required", ErrInvalidInput)
	}

	seen := make(map[int]bool, len(days))
	out := make([]domain.WeeklyHours, 0, len(days))
	for _, d := range days {
		weekday := time.Weekday(d.Weekday)
		if err := domain.ValidateWeekday(weekday); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
		}
		if seen[d.Weekday] {
			return nil, fmt.Errorf("%w: weekday %d given twice", ErrInvalidInput, d.Weekday)
		}
		seen[d.Weekday] = true

		set, err := domain.NewHourSet(d.Hours...)
		if err != nil {
			return nil, fmt.Errorf("%w: weekday %d: %w", ErrInvalidInput, d.Weekday, err)
		}
		out = append(out, domain.WeeklyHours{Weekday: weekday, Hours: set})
	}
	return out, nil
}

func buildBlock(req *models.AddBlockRequest) (domain.BlockedSlot, error) {
	var (
		block domain.BlockedSlot
		err   error
	)

	switch domain.BlockScope(req.Scope) {
	case domain.BlockScopeRecurring:
		if req.Weekday == nil {
			return domain.BlockedSlot{}, fmt.Errorf("%w: weekday is required for recurring block", ErrInvalidInput)
		}
		block, err = domain.NewRecurringBlock(req.VenueID, time.Weekday(*req.Weekday), req.Hour)
	case domain.BlockScopeSpecific:
		if req.Date == nil {
			return domain.BlockedSlot{}, fmt.Errorf("%w: date is required for specific block", ErrInvalidInput)
		}
		block, err = domain.NewSpecificBlock(req.VenueID, *req.Date, req.Hour)
	default:
		return domain.BlockedSlot{}, fmt.Errorf("%w: unknown scope %q", ErrInvalidInput, req.Scope)
	}

	if err != nil {
		return domain.BlockedSlot{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return block, nil
}
