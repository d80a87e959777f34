package reschedule_booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/internal/testutil/fakestore"
	"github.com/m04kA/SMC-SalonBooking/internal/testutil/stubs"
	"github.com/m04kA/SMC-SalonBooking/internal/usecase/create_booking"
	"github.com/m04kA/SMC-SalonBooking/pkg/logger"
	"github.com/m04kA/SMC-SalonBooking/pkg/ptr"
	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

var (
	monday  = time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC)
	tuesday = monday.AddDate(0, 0, 1)
)

func tod(h, m int) types.TimeOfDay { return types.MustTimeOfDay(h, m) }

type fixture struct {
	uc       *UseCase
	create   *create_booking.UseCase
	store    *fakestore.Store
	notifier *stubs.Notifier
}

func setup(t *testing.T) *fixture {
	t.Helper()
	store := fakestore.New()
	store.AddService(domain.Service{ID: 1, Name: "Haircut", DurationMinutes: 90, Price: 25, Active: true})
	store.AddProfessional(domain.Professional{ID: 10, Name: "Ana", Active: true}, 1)
	store.AddSlots(10, monday, tod(9, 0), tod(10, 0), tod(11, 0), tod(12, 0), tod(13, 0), tod(17, 0), tod(18, 0))
	store.AddSlots(10, tuesday, tod(9, 0), tod(10, 0))

	f := &fixture{store: store, notifier: &stubs.Notifier{}}
	log := logger.NewNop()
	f.uc = NewUseCase(store.Bookings(), store.Slots(), f.notifier, store.TxManager(), &stubs.Metrics{}, tod(19, 0), log)
	f.create = create_booking.NewUseCase(store.Bookings(), store.Slots(), store.Catalog(), &stubs.Codes{},
		&stubs.Notifier{}, store.TxManager(), &stubs.Metrics{}, tod(19, 0), log)
	return f
}

func (f *fixture) book(t *testing.T, start types.TimeOfDay) *domain.Booking {
	t.Helper()
	resp, err := f.create.Execute(context.Background(), &create_booking.Request{
		Client:         domain.Client{Name: "Maria", Phone: ptr.Ptr("+5491100000000")},
		Date:           monday,
		StartTime:      start,
		ServiceIDs:     []int64{1},
		ProfessionalID: 10,
	})
	require.NoError(t, err)
	return resp.Booking
}

func available(f *fixture, date time.Time) map[string]bool {
	result := make(map[string]bool)
	for _, sl := range f.store.SlotsOf(10, date) {
		result[sl.StartTime.String()] = sl.Available
	}
	return result
}

func TestExecute_MovesBookingToAnotherDay(t *testing.T) {
	f := setup(t)
	b := f.book(t, tod(9, 0))

	resp, err := f.uc.Execute(context.Background(), &Request{
		Code:    b.Code,
		NewDate: tuesday,
		NewTime: tod(9, 0),
		Reason:  ptr.Ptr("client asked"),
	})

	require.NoError(t, err)
	assert.Equal(t, tuesday, resp.Booking.Date)
	assert.Equal(t, tod(10, 30), resp.Booking.EndTime)
	assert.Equal(t, domain.ChangeReschedule, resp.Change.Type)
	assert.Equal(t, monday, resp.Change.OriginalDate)
	assert.Equal(t, tod(9, 0), resp.Change.OriginalTime)
	assert.Equal(t, tuesday, *resp.Change.NewDate)

	mon := available(f, monday)
	assert.True(t, mon["09:00"])
	assert.True(t, mon["10:00"])
	tue := available(f, tuesday)
	assert.False(t, tue["09:00"])
	assert.False(t, tue["10:00"])

	events := f.notifier.Events()
	require.Len(t, events, 1)
	assert.Equal(t, domain.EventBookingRescheduled, events[0].Type)
}

func TestExecute_MoveOverlappingOwnWindow(t *testing.T) {
	f := setup(t)
	b := f.book(t, tod(9, 0))

	resp, err := f.uc.Execute(context.Background(), &Request{Code: b.Code, NewDate: monday, NewTime: tod(10, 0)})

	require.NoError(t, err)
	assert.Equal(t, tod(11, 30), resp.Booking.EndTime)
	slots := available(f, monday)
	assert.True(t, slots["09:00"])
	assert.False(t, slots["10:00"])
	assert.False(t, slots["11:00"])
}

func TestExecute_CompletedBookingBlocksTarget(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	b := f.book(t, tod(9, 0))
	done := f.book(t, tod(12, 0))
	require.NoError(t, f.store.Bookings().UpdateStatus(ctx, done.ID,
		[]domain.BookingStatus{domain.StatusPending}, domain.StatusCompleted))

	// 11:00-12:30 заходит на завершенную запись 12:00-13:30
	_, err := f.uc.Execute(ctx, &Request{Code: b.Code, NewDate: monday, NewTime: tod(11, 0)})

	assert.ErrorIs(t, err, ErrSlotNotAvailable)
	slots := available(f, monday)
	assert.False(t, slots["09:00"])
	assert.True(t, slots["11:00"])
}

func TestExecute_OccupiedTargetLeavesBookingInPlace(t *testing.T) {
	f := setup(t)
	b := f.book(t, tod(9, 0))
	other := f.book(t, tod(12, 0))

	_, err := f.uc.Execute(context.Background(), &Request{Code: b.Code, NewDate: monday, NewTime: tod(11, 0)})

	assert.ErrorIs(t, err, ErrSlotNotAvailable)

	stored, err := f.store.Bookings().GetByCode(context.Background(), b.Code)
	require.NoError(t, err)
	assert.Equal(t, tod(9, 0), stored.StartTime)

	slots := available(f, monday)
	assert.False(t, slots["09:00"])
	assert.False(t, slots["10:00"])
	assert.False(t, slots["12:00"], "slots of %s stay occupied", other.Code)
	assert.Empty(t, f.notifier.Events())

	changes, err := f.store.Bookings().ListChanges(context.Background(), b.ID)
	require.NoError(t, err)
	assert.Empty(t, changes)
}

func TestExecute_MissingTargetSlotRollsBack(t *testing.T) {
	f := setup(t)
	b := f.book(t, tod(9, 0))

	_, err := f.uc.Execute(context.Background(), &Request{Code: b.Code, NewDate: tuesday, NewTime: tod(15, 0)})

	assert.ErrorIs(t, err, ErrSlotNotAvailable)
	slots := available(f, monday)
	assert.False(t, slots["09:00"], "old footprint must stay occupied after rollback")
	assert.False(t, slots["10:00"])
}

func TestExecute_Rejections(t *testing.T) {
	f := setup(t)
	b := f.book(t, tod(9, 0))

	_, err := f.uc.Execute(context.Background(), &Request{Code: b.Code, NewDate: monday, NewTime: tod(9, 0)})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = f.uc.Execute(context.Background(), &Request{Code: b.Code, NewDate: monday, NewTime: tod(18, 0)})
	assert.ErrorIs(t, err, ErrOutsideWorkingHours)

	_, err = f.uc.Execute(context.Background(), &Request{Code: "BC-20250106-FFFFFF", NewDate: monday, NewTime: tod(12, 0)})
	assert.ErrorIs(t, err, ErrBookingNotFound)

	require.NoError(t, f.store.Bookings().UpdateStatus(context.Background(), b.ID, domain.ActiveStatuses, domain.StatusCancelled))
	_, err = f.uc.Execute(context.Background(), &Request{Code: b.Code, NewDate: monday, NewTime: tod(12, 0)})
	assert.ErrorIs(t, err, ErrCannotReschedule)
}
