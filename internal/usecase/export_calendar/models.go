package export_calendar

import "time"

// Request модель запроса календаря площадки
type Request struct {
	VenueID int64      // ID площадки
	From    *time.Time // Начало окна (включительно), по умолчанию сегодня
	To      *time.Time // Конец окна (включительно), по умолчанию From + 90 дней
}

// Response модель ответа с iCalendar-документом
type Response struct {
	VenueID        int64     // ID площадки
	From           time.Time // Фактическое начало окна
	To             time.Time // Фактический конец окна
	Body           string    // Содержимое text/calendar
	Filename       string    // Имя файла для Content-Disposition
	EventCount     int       // Одобренные заявки в окне
	RecurringCount int       // Повторяющиеся блокировки, попавшие в окно
}
