package upstream

import (
	"context"
	"errors"
	"fmt"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/valeevte/PurchaseReport/internal/logging"
	"github.com/valeevte/PurchaseReport/internal/metrics"
)

const breakerName = "upstream-purchases"

// BreakerSettings: параметры автомата. Нули заменяются значениями по умолчанию.
type BreakerSettings struct {
	// ConsecutiveFailures подряд, после которых автомат размыкается
	ConsecutiveFailures uint32
	// OpenTimeout: сколько автомат остаётся разомкнутым
	OpenTimeout time.Duration
}

// BreakerClient оборачивает Client автоматом: после серии отказов запросы
// сразу отклоняются с ErrUpstreamFetch, не доходя до сети.
type BreakerClient struct {
	client  *Client
	cb      *gobreaker.CircuitBreaker[[]RawPurchase]
	metrics *metrics.Registry
}

// NewBreakerClient; m может быть nil.
func NewBreakerClient(client *Client, s BreakerSettings, m *metrics.Registry) *BreakerClient {
	if s.ConsecutiveFailures == 0 {
		s.ConsecutiveFailures = 5
	}
	if s.OpenTimeout <= 0 {
		s.OpenTimeout = time.Minute
	}
	if m != nil {
		m.BreakerState.WithLabelValues(breakerName).Set(0)
	}

	log := logging.WithComponent("upstream")
	cb := gobreaker.NewCircuitBreaker[[]RawPurchase](gobreaker.Settings{
		Name:        breakerName,
		MaxRequests: 1,
		Timeout:     s.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= s.ConsecutiveFailures
		},
		// отмена запроса клиентом: не отказ источника
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn().Str("from", from.String()).Str("to", to.String()).Msg("circuit breaker state change")
			if m != nil {
				m.BreakerState.WithLabelValues(name).Set(stateToFloat(to))
			}
		},
	})

	return &BreakerClient{client: client, cb: cb, metrics: m}
}

// Fetch: то же, что Client.Fetch, но через автомат.
func (b *BreakerClient) Fetch(ctx context.Context) ([]RawPurchase, error) {
	start := time.Now()
	out, err := b.cb.Execute(func() ([]RawPurchase, error) {
		return b.client.Fetch(ctx)
	})
	if b.metrics != nil {
		b.metrics.FetchSeconds.Observe(time.Since(start).Seconds())
	}
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, fmt.Errorf("%w: %w", ErrUpstreamFetch, err)
		}
		return nil, err
	}
	return out, nil
}

// State: текущее состояние автомата (для логов и тестов).
func (b *BreakerClient) State() gobreaker.State {
	return b.cb.State()
}

func stateToFloat(s gobreaker.State) float64 {
	switch s {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}
