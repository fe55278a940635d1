package create_booking

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-TableBooking/internal/domain"
	"github.com/m04kA/SMC-TableBooking/internal/integrations/broker"
	"github.com/m04kA/SMC-TableBooking/internal/usecase/refresh_availability"
)

// UseCase use case для создания бронирования
type UseCase struct {
	bookingRepo  BookingRepository
	index        IndexReader
	refresher    Refresher
	publisher    EventPublisher
	txManager    TransactionManager
	venue        domain.Venue
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case. publisher может быть nil.
func NewUseCase(
	bookingRepo BookingRepository,
	index IndexReader,
	refresher Refresher,
	publisher EventPublisher,
	txManager TransactionManager,
	venue domain.Venue,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		index:        index,
		refresher:    refresher,
		publisher:    publisher,
		txManager:    txManager,
		venue:        venue,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case создания бронирования.
// Столик должен быть свободен во всех слотах бронирования и по индексу, и по хранилищу.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: table=%d, date=%s, hour=%s, duration=%v, people=%d",
		req.Table, req.Date, req.Hour, req.Duration, req.People)

	// 1. Валидация входных данных
	if err := validateRequest(req, &uc.venue); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	start, span, err := parseTime(req, &uc.venue)
	if err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Столик и расписание заведения
	if !uc.venue.HasTable(req.Table) {
		uc.logger.Warn("CreateBooking: table=%d not found", req.Table)
		return nil, fmt.Errorf("%w: %d", ErrTableNotFound, req.Table)
	}

	idx := uc.index.Current()
	if err := validateSchedule(req.Date, start, span, &uc.venue, idx, uc.timeProvider.Now()); err != nil {
		uc.logger.Warn("CreateBooking: schedule validation failed: %v", err)
		return nil, err
	}

	// 3. Проверка по индексу: события, повторяющиеся события и известные бронирования
	if !idx.IsRangeAvailable(req.Date, start, span, req.Table) {
		uc.logger.Warn("CreateBooking: table=%d is occupied on %s at %s", req.Table, req.Date, start)
		return nil, ErrTableOccupied
	}

	booking := &domain.Booking{
		Date:     req.Date,
		Start:    start,
		Duration: span,
		Table:    req.Table,
		People:   req.People,
		Phone:    req.Phone,
		Address:  req.Address,
	}

	// 4. Повторная проверка и сохранение в сериализуемой транзакции:
	// индекс может не знать о бронированиях, сделанных после его сборки
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		existing, err := uc.bookingRepo.ListByTableAndDate(txCtx, req.Table, req.Date)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get bookings: %v", err)
			return fmt.Errorf("%w: failed to get bookings: %w", ErrInternal, err)
		}

		if hasOverlap(existing, start, span) {
			uc.logger.Warn("CreateBooking: table=%d already booked on %s at %s", req.Table, req.Date, start)
			return ErrTableOccupied
		}

		if _, err := uc.bookingRepo.Create(txCtx, booking); err != nil {
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %w", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%d", booking.ID)

	// 5. Перестраиваем индекс в обход кэша, затем оповещаем другие экземпляры
	if _, err := uc.refresher.Execute(ctx, &refresh_availability.Request{BypassCache: true}); err != nil {
		uc.logger.Warn("CreateBooking: failed to refresh availability after booking id=%d: %v", booking.ID, err)
	}

	if uc.publisher != nil {
		if err := uc.publisher.PublishBookingCreated(ctx, broker.NewBookingCreatedEvent(booking)); err != nil {
			uc.logger.Warn("CreateBooking: failed to publish booking id=%d: %v", booking.ID, err)
		}
	}

	return &Response{
		ID:        booking.ID,
		Date:      booking.Date,
		Start:     booking.Start,
		Duration:  booking.Duration,
		Table:     booking.Table,
		People:    booking.People,
		Phone:     booking.Phone,
		Address:   booking.Address,
		CreatedAt: booking.CreatedAt,
	}, nil
}
