package purchases

import (
	"context"
	"sync"

	"github.com/valeevte/PurchaseReport/internal/logging"
	"github.com/valeevte/PurchaseReport/internal/metrics"
	"github.com/valeevte/PurchaseReport/internal/upstream"
)

// Fetcher: источник сырых записей (upstream.Client или upstream.BreakerClient).
type Fetcher interface {
	Fetch(ctx context.Context) ([]upstream.RawPurchase, error)
}

// Service связывает источник, нормализацию и хранилище.
type Service struct {
	fetcher Fetcher
	store   Store
	metrics *metrics.Registry

	// ingestMu: одновременные fetch-and-store не перемешивают delete/insert
	ingestMu sync.Mutex
}

// NewService; m может быть nil.
func NewService(fetcher Fetcher, store Store, m *metrics.Registry) *Service {
	return &Service{fetcher: fetcher, store: store, metrics: m}
}

// FetchAndStore забирает данные, нормализует, заменяет весь набор в хранилище
// и возвращает записи с итогами. При любой ошибке хранилище не трогается,
// кроме сбоя самой замены.
func (s *Service) FetchAndStore(ctx context.Context) (Report, error) {
	s.ingestMu.Lock()
	defer s.ingestMu.Unlock()

	records, err := s.ingest(ctx)
	s.observe(len(records), err)
	if err != nil {
		return Report{}, err
	}
	return Report{Items: records, Gross: GrossOf(records)}, nil
}

func (s *Service) ingest(ctx context.Context) ([]Purchase, error) {
	raw, err := s.fetcher.Fetch(ctx)
	if err != nil {
		return nil, err
	}
	logging.Ctx(ctx).Debug().Int("records", len(raw)).Msg("fetched upstream data")

	records, err := NormalizeAll(raw)
	if err != nil {
		return nil, err
	}
	if err := s.store.ReplaceAll(ctx, records); err != nil {
		return nil, err
	}
	return records, nil
}

func (s *Service) observe(n int, err error) {
	if s.metrics == nil {
		return
	}
	if err != nil {
		s.metrics.IngestRuns.WithLabelValues(ErrorKind(err)).Inc()
		return
	}
	s.metrics.IngestRuns.WithLabelValues("success").Inc()
	s.metrics.IngestedRecords.Set(float64(n))
}

// Data: всё сохранённое плюс итоги (та же GrossOf, что и после загрузки).
func (s *Service) Data(ctx context.Context) (Report, error) {
	records, err := s.store.ReadAll(ctx)
	if err != nil {
		return Report{}, err
	}
	if records == nil {
		records = []Purchase{}
	}
	return Report{Items: records, Gross: GrossOf(records)}, nil
}

// TopPurchasers: группировка хранилищем и итоги по сводкам.
func (s *Service) TopPurchasers(ctx context.Context) (TopPurchasersReport, error) {
	summaries, err := s.store.TopPurchasers(ctx)
	if err != nil {
		return TopPurchasersReport{}, err
	}
	return TotalsOf(summaries), nil
}

// Ping проверяет доступность хранилища.
func (s *Service) Ping(ctx context.Context) error {
	return s.store.Ping(ctx)
}
