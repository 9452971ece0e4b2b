package lock

import "errors"

var (
	// ErrNoTransaction возвращается, когда advisory-блокировку пытаются взять вне транзакции
	ErrNoTransaction = errors.New("lock: advisory lock requires an open transaction")

	// ErrAcquire возвращается при ошибке обращения к хранилищу блокировок
	ErrAcquire = errors.New("lock: failed to acquire lock")

	// ErrTimeout возвращается, когда блокировку не удалось получить за отведенное время
	ErrTimeout = errors.New("lock: timed out waiting for lock")

	// ErrRelease возвращается при ошибке снятия блокировки
	ErrRelease = errors.New("lock: failed to release lock")
)
