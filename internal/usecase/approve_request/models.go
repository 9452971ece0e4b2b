package approve_request

import (
	"time"

	"github.com/google/uuid"
)

// Request модель запроса на одобрение заявки
type Request struct {
	RequestID int64 // ID заявки
	UserID    int64 // ID менеджера площадки
}

// Response модель ответа с одобренной заявкой
type Response struct {
	ID        int64     // ID заявки
	VenueID   int64     // ID площадки
	ArtistID  int64     // ID артиста
	Date      time.Time // Дата мероприятия
	StartHour int       // Первый час (включительно)
	EndHour   int       // Последний час (не включительно)
	Status    string    // approved
	DecidedBy int64     // Кто одобрил
	DecidedAt time.Time // Когда одобрено

	BlockedHours    []int       // Часы, закрытые одобрением
	CreatedBlockIDs []uuid.UUID // ID созданных разовых блокировок
	RemainingHours  []int       // Свободные часы площадки на дату после одобрения
}
