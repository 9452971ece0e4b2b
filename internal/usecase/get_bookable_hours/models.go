package get_bookable_hours

import "time"

// Request модель запроса свободных часов площадки
type Request struct {
	VenueID int64     // ID площадки
	Date    time.Time // Дата (без времени)
}

// Response модель ответа со свободными часами
type Response struct {
	VenueID      int64     // ID площадки
	Date         time.Time // Дата
	Hours        []int     // Свободные часы по возрастанию, может быть пустым
	OpenHours    []int     // Часы работы на дату до вычета блокировок
	Source       string    // template | override
	BlockedHours []int     // Часы работы, закрытые блокировками
}
