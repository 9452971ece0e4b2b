package submit_request

import "time"

// Request модель запроса на подачу заявки артистом
type Request struct {
	UserID  int64     // ID артиста
	VenueID int64     // ID площадки
	Date    time.Time // Дата мероприятия (без времени)
	Hours   []int     // Выбранные часы, подряд идущие
	Title   *string   // Название мероприятия (опционально)
	Notes   *string   // Комментарий для менеджера (опционально)
}

// Response модель ответа с созданной заявкой
type Response struct {
	ID        int64     // ID заявки
	VenueID   int64     // ID площадки
	ArtistID  int64     // ID артиста
	Date      time.Time // Дата мероприятия
	StartHour int       // Первый час (включительно)
	EndHour   int       // Последний час (не включительно)
	Status    string    // pending
	Title     *string   // Название мероприятия
	Notes     *string   // Комментарий
	CreatedAt time.Time // Время создания
}
