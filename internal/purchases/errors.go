package purchases

import (
	"errors"

	"github.com/valeevte/PurchaseReport/internal/upstream"
)

var (
	// ErrStorageUnavailable: ошибка подключения/чтения/записи хранилища
	ErrStorageUnavailable = errors.New("storage unavailable")
	// ErrMalformedRecord: запись источника не удалось нормализовать
	ErrMalformedRecord = errors.New("malformed record")
)

// ErrorKind: короткая метка для логов и метрик.
func ErrorKind(err error) string {
	switch {
	case err == nil:
		return "none"
	case errors.Is(err, upstream.ErrUpstreamFetch):
		return "upstream_error"
	case errors.Is(err, ErrMalformedRecord):
		return "malformed"
	case errors.Is(err, ErrStorageUnavailable):
		return "storage_error"
	default:
		return "unknown"
	}
}
