package reject_request

import "time"

// Request модель запроса на отклонение заявки
type Request struct {
	RequestID int64  // ID заявки
	UserID    int64  // ID менеджера площадки
	Reason    string // Причина отклонения (обязательна)
}

// Response модель ответа с отклоненной заявкой
type Response struct {
	ID              int64     // ID заявки
	VenueID         int64     // ID площадки
	ArtistID        int64     // ID артиста
	Date            time.Time // Дата мероприятия
	StartHour       int       // Первый час (включительно)
	EndHour         int       // Последний час (не включительно)
	Status          string    // rejected
	RejectionReason string    // Причина отклонения без крайних пробелов
	DecidedBy       int64     // Кто отклонил
	DecidedAt       time.Time // Когда отклонено
}
