package models

import (
	"time"

	"github.com/m04kA/SMC-VenueService/internal/domain"
)

// Request модели

// WeekdayHours часы работы на день недели (0 = воскресенье)
type WeekdayHours struct {
	Weekday int   `json:"weekday"`
	Hours   []int `json:"hours"`
}

// UpdateTemplateRequest запрос на изменение недельного шаблона.
// Заменяются только переданные дни, остальные остаются как были.
type UpdateTemplateRequest struct {
	UserID  int64          `json:"userId"`
	VenueID int64          `json:"venueId"`
	Days    []WeekdayHours `json:"days"`
}

// SetOverrideRequest запрос на установку переопределения на дату
type SetOverrideRequest struct {
	UserID  int64     `json:"userId"`
	VenueID int64     `json:"venueId"`
	Date    time.Time `json:"date"`
	Hours   []int     `json:"hours"`
}

// ListOverridesRequest запрос на получение переопределений в диапазоне дат
type ListOverridesRequest struct {
	UserID  int64     `json:"userId"`
	VenueID int64     `json:"venueId"`
	From    time.Time `json:"from"`
	To      time.Time `json:"to"`
}

// AddBlockRequest запрос на блокировку часа.
// Для scope = recurring обязателен Weekday, для scope = specific обязательна Date.
type AddBlockRequest struct {
	UserID  int64      `json:"userId"`
	VenueID int64      `json:"venueId"`
	Scope   string     `json:"scope"`
	Weekday *int       `json:"weekday,omitempty"`
	Date    *time.Time `json:"date,omitempty"`
	Hour    int        `json:"hour"`
}

// ListBlocksRequest запрос на получение блокировок.
// Если Date указана, возвращаются блокировки, действующие в эту дату.
type ListBlocksRequest struct {
	UserID  int64      `json:"userId"`
	VenueID int64      `json:"venueId"`
	Date    *time.Time `json:"date,omitempty"`
}

// Response модели

// TemplateResponse недельный шаблон площадки, все 7 дней
type TemplateResponse struct {
	VenueID int64          `json:"venueId"`
	Days    []WeekdayHours `json:"days"`
}

// OverrideResponse переопределение на дату
type OverrideResponse struct {
	VenueID int64  `json:"venueId"`
	Date    string `json:"date"`
	Hours   []int  `json:"hours"`
}

// OverrideListResponse список переопределений
type OverrideListResponse struct {
	Overrides []OverrideResponse `json:"overrides"`
}

// BlockResponse заблокированный слот
type BlockResponse struct {
	ID        string    `json:"id"`
	VenueID   int64     `json:"venueId"`
	Scope     string    `json:"scope"`
	Weekday   int       `json:"weekday"`
	Date      *string   `json:"date,omitempty"`
	Hour      int       `json:"hour"`
	CreatedAt time.Time `json:"createdAt"`
}

// AddBlockResponse результат блокировки; Created = false, если такой блок уже был
type AddBlockResponse struct {
	Block   BlockResponse `json:"block"`
	Created bool          `json:"created"`
}

// BlockListResponse список блокировок
type BlockListResponse struct {
	Blocks []BlockResponse `json:"blocks"`
}

// Методы конвертации

// FromDomainTemplate конвертирует шаблон в DTO
func FromDomainTemplate(venueID int64, t *domain.AvailabilityTemplate) *TemplateResponse {
	resp := &TemplateResponse{
		VenueID: venueID,
		Days:    make([]WeekdayHours, 0, domain.DaysPerWeek),
	}
	for _, day := range t.WeeklyHours() {
		resp.Days = append(resp.Days, WeekdayHours{
			Weekday: int(day.Weekday),
			Hours:   day.Hours.Sorted(),
		})
	}
	return resp
}

// FromDomainOverride конвертирует переопределение в DTO
func FromDomainOverride(venueID int64, o domain.DateOverride) OverrideResponse {
	return OverrideResponse{
		VenueID: venueID,
		Date:    domain.DateKey(o.Date),
		Hours:   o.Hours.Sorted(),
	}
}

// FromDomainOverrideList конвертирует список переопределений в DTO
func FromDomainOverrideList(venueID int64, overrides []domain.DateOverride) *OverrideListResponse {
	resp := &OverrideListResponse{
		Overrides: make([]OverrideResponse, 0, len(overrides)),
	}
	for _, o := range overrides {
		resp.Overrides = append(resp.Overrides, FromDomainOverride(venueID, o))
	}
	return resp
}

// FromDomainBlock конвертирует блокировку в DTO
func FromDomainBlock(b domain.BlockedSlot) BlockResponse {
	resp := BlockResponse{
		ID:        b.ID.String(),
		VenueID:   b.VenueID,
		Scope:     string(b.Scope),
		Weekday:   int(b.Weekday()),
		Hour:      b.Hour,
		CreatedAt: b.CreatedAt,
	}
	if !b.IsRecurring() {
		date := domain.DateKey(b.Date())
		resp.Date = &date
	}
	return resp
}

// FromDomainBlockList конвертирует список блокировок в DTO
func FromDomainBlockList(blocks []domain.BlockedSlot) *BlockListResponse {
	resp := &BlockListResponse{
		Blocks: make([]BlockResponse, 0, len(blocks)),
	}
	for _, b := range blocks {
		resp.Blocks = append(resp.Blocks, FromDomainBlock(b))
	}
	return resp
}
