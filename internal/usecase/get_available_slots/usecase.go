package get_available_slots

import (
	"context"

	"github.com/m04kA/SMC-TableBooking/internal/domain"
)

// UseCase use case для получения времени, на которое можно забронировать столик
type UseCase struct {
	index        IndexReader
	venue        domain.Venue
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(index IndexReader, venue domain.Venue, logger Logger) *UseCase {
	return &UseCase{
		index:        index,
		venue:        venue,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case получения доступных слотов.
// Слот попадает в ответ, даже если свободных столиков нет: AvailableTables = 0.
func (uc *UseCase) Execute(_ context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных
	span, err := validateRequest(req, &uc.venue)
	if err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Дата должна быть в окне индекса
	now := uc.timeProvider.Now()
	idx := uc.index.Current()
	if err := validateDate(req.Date, idx, now, uc.venue.HorizonDays); err != nil {
		uc.logger.Warn("GetAvailableSlots: %v", err)
		return nil, err
	}
	if idx == nil {
		uc.logger.Warn("GetAvailableSlots: index is not built yet, reporting every table as free")
	}

	candidates := uc.venue.SortedTables()
	if req.Table != nil {
		candidates = []domain.TableID{*req.Table}
	}

	// 3. Времена начала и свободные столики для каждого
	starts := generateStarts(&uc.venue, span, req.Date, now)
	slots := calculateFreeTables(idx, req.Date, starts, span, candidates)

	uc.logger.Info("GetAvailableSlots: generated %d slots for date=%s, duration=%v",
		len(slots), req.Date, span.Hours())

	resp := &Response{
		Date:     req.Date,
		Duration: span,
		Slots:    slots,
	}
	if idx != nil {
		resp.SnapshotID = idx.ID().String()
	}
	return resp, nil
}
