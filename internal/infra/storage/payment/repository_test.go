package payment

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/pkg/ptr"
)

func newRepo(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewRepository(db), mock
}

func verifiedPayment() *domain.Payment {
	return &domain.Payment{
		BookingID:         42,
		Provider:          "mercadopago",
		OperationID:       "1234567890",
		Amount:            10,
		Currency:          "ARS",
		Method:            ptr.Ptr("credit_card"),
		Status:            domain.PaymentVerified,
		ExternalReference: ptr.Ptr("BC-20250106-ABC123"),
	}
}

func TestCreate(t *testing.T) {
	repo, mock := newRepo(t)
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO payments (booking_id,provider,operation_id,amount,currency,method,payer_email,status,external_reference,approved_at) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10) RETURNING id, created_at")).
		WithArgs(int64(42), "mercadopago", "1234567890", 10.0, "ARS", "credit_card", nil, "verified", "BC-20250106-ABC123", nil).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(int64(3), now))

	p, err := repo.Create(context.Background(), verifiedPayment())

	require.NoError(t, err)
	assert.Equal(t, int64(3), p.ID)
	assert.Equal(t, now, p.CreatedAt)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreate_SecondVerifiedPayment(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectQuery("INSERT INTO payments").
		WillReturnError(&pq.Error{Code: "23505", Constraint: "payments_one_verified_per_booking"})

	_, err := repo.Create(context.Background(), verifiedPayment())

	assert.ErrorIs(t, err, ErrAlreadyVerified)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestListByBooking(t *testing.T) {
	repo, mock := newRepo(t)
	approved := time.Date(2025, 1, 5, 12, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta("FROM payments WHERE booking_id = $1 ORDER BY created_at ASC, id ASC")).
		WithArgs(int64(42)).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "booking_id", "provider", "operation_id", "amount", "currency", "method",
			"payer_email", "status", "external_reference", "approved_at", "created_at",
		}).
			AddRow(int64(1), int64(42), "mercadopago", "111", "5.00", "ARS", nil, nil, "rejected", nil, nil, approved).
			AddRow(int64(2), int64(42), "mercadopago", "222", "10.00", "ARS", "account_money", "ana@example.com", "verified", "BC-20250106-ABC123", approved, approved))

	payments, err := repo.ListByBooking(context.Background(), 42)

	require.NoError(t, err)
	require.Len(t, payments, 2)
	assert.Equal(t, domain.PaymentRejected, payments[0].Status)
	assert.Nil(t, payments[0].ApprovedAt)
	assert.Equal(t, 10.0, payments[1].Amount)
	require.NotNil(t, payments[1].ApprovedAt)
	assert.Equal(t, approved, *payments[1].ApprovedAt)
	require.NoError(t, mock.ExpectationsWereMet())
}
