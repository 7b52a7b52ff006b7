package purchases

import "context"

// Store: шлюз к хранилищу покупок. Любая ошибка реализации оборачивает
// ErrStorageUnavailable.
type Store interface {
	// ReplaceAll заменяет весь сохранённый набор на records.
	ReplaceAll(ctx context.Context, records []Purchase) error
	// ReadAll возвращает записи в порядке вставки.
	ReadAll(ctx context.Context) ([]Purchase, error)
	// TopPurchasers: группировка по покупателю силами хранилища.
	TopPurchasers(ctx context.Context) ([]PurchaserSummary, error)
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}
