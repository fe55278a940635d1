package get_free_tables

import (
	"context"

	"github.com/m04kA/SMC-TableBooking/internal/availability"
	"github.com/m04kA/SMC-TableBooking/internal/domain"
)

// UseCase use case для получения свободных столиков
type UseCase struct {
	index        IndexReader
	venue        domain.Venue
	allTables    availability.TableSet
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(index IndexReader, venue domain.Venue, logger Logger) *UseCase {
	return &UseCase{
		index:        index,
		venue:        venue,
		allTables:    availability.NewTableSet(venue.Tables...),
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute возвращает доступность столиков заведения на дату и слот.
// Если индекс ещё не построен, все столики считаются свободными.
func (uc *UseCase) Execute(_ context.Context, req *Request) (*Response, error) {
	if err := validateRequest(req, &uc.venue); err != nil {
		uc.logger.Warn("GetFreeTables: validation failed: %v", err)
		return nil, err
	}

	idx := uc.index.Current()
	if err := validateDate(req.Date, idx, uc.timeProvider.Now(), uc.venue.HorizonDays); err != nil {
		uc.logger.Warn("GetFreeTables: %v", err)
		return nil, err
	}

	if idx == nil {
		uc.logger.Warn("GetFreeTables: index is not built yet, reporting every table as free")
	}

	candidates := uc.allTables
	if req.Table != nil {
		candidates = availability.NewTableSet(*req.Table)
	}

	free := idx.FreeTables(req.Date, req.Slot, candidates)

	tables := make([]TableAvailability, 0, candidates.Len())
	for _, table := range candidates.Sorted() {
		tables = append(tables, TableAvailability{Table: table, Available: free.Has(table)})
	}

	resp := &Response{
		Date:   req.Date,
		Slot:   req.Slot,
		Tables: tables,
		Free:   free.Sorted(),
	}
	if idx != nil {
		resp.SnapshotID = idx.ID().String()
	}

	return resp, nil
}
