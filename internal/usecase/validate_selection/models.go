package validate_selection

import "time"

// Request модель запроса проверки выбора часов
type Request struct {
	VenueID int64     // ID площадки
	Date    time.Time // Дата (без времени)
	Hours   []int     // Текущий выбор, подряд идущие часы в любом порядке
	Toggle  *int      // Час, который пользователь добавляет или убирает (опционально)
}

// Response модель ответа с нормализованным выбором
type Response struct {
	VenueID   int64     // ID площадки
	Date      time.Time // Дата
	Hours     []int     // Выбранные часы по возрастанию
	StartHour int       // Первый час (включительно), если выбор не пуст
	EndHour   int       // Последний час (не включительно), если выбор не пуст
	Empty     bool      // Выбор пуст после снятия последнего часа
}
