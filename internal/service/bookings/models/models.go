package models

import (
	"errors"
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid booking status")
)

// Request модели

// GetDailyBookingsRequest запрос на получение записей за день
type GetDailyBookingsRequest struct {
	Date            time.Time `json:"date"`
	ProfessionalID  *int64    `json:"professionalId,omitempty"`  // Фильтр по мастеру (опционально)
	Status          *string   `json:"status,omitempty"`          // Фильтр по статусу (опционально)
	IncludeInactive bool      `json:"includeInactive,omitempty"` // Включить отмененные и завершенные
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *GetDailyBookingsRequest) ToDomainFilter() (domain.BookingsFilter, error) {
	date := domain.DateOnly(r.Date)
	filter := domain.BookingsFilter{
		ProfessionalID:  r.ProfessionalID,
		Date:            &date,
		IncludeInactive: r.IncludeInactive,
	}

	// Конвертируем статус если указан
	if r.Status != nil {
		status, err := ToDomainBookingStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// BookingStatisticsRequest запрос сводки по записям за период
type BookingStatisticsRequest struct {
	From           time.Time `json:"from"`
	To             time.Time `json:"to"`
	ProfessionalID *int64    `json:"professionalId,omitempty"` // Фильтр по мастеру (опционально)
}

// Response модели

// BookingServiceResponse строка услуги в записи
type BookingServiceResponse struct {
	ServiceID       int64   `json:"serviceId"`
	ServiceName     string  `json:"serviceName"`
	ServicePrice    float64 `json:"servicePrice"`
	DurationMinutes int     `json:"durationMinutes"`
}

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID               int64                    `json:"id"`
	Code             string                   `json:"code"`
	ClientName       string                   `json:"clientName"`
	ClientPhone      *string                  `json:"clientPhone,omitempty"`
	ClientEmail      *string                  `json:"clientEmail,omitempty"`
	Date             string                   `json:"date"`      // "2025-01-06"
	StartTime        string                   `json:"startTime"` // "10:00"
	EndTime          string                   `json:"endTime"`   // "11:30"
	DurationMinutes  int                      `json:"durationMinutes"`
	ProfessionalID   int64                    `json:"professionalId"`
	ProfessionalName string                   `json:"professionalName"`
	Services         []BookingServiceResponse `json:"services"`
	TotalPrice       float64                  `json:"totalPrice"`
	DepositRequired  float64                  `json:"depositRequired"`
	DepositPaid      float64                  `json:"depositPaid"`
	RemainingAmount  float64                  `json:"remainingAmount"` // к оплате в салоне
	PaymentStatus    string                   `json:"paymentStatus"`   // pending, partial, paid
	Status           string                   `json:"status"`
	CreatedAt        time.Time                `json:"createdAt"`
	UpdatedAt        time.Time                `json:"updatedAt"`
}

// BookingChangeResponse запись журнала изменений
type BookingChangeResponse struct {
	ID           int64     `json:"id"`
	Type         string    `json:"type"`
	OriginalDate string    `json:"originalDate"`
	OriginalTime string    `json:"originalTime"`
	NewDate      *string   `json:"newDate,omitempty"`
	NewTime      *string   `json:"newTime,omitempty"`
	Reason       *string   `json:"reason,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

// PaymentResponse платеж по записи
type PaymentResponse struct {
	ID                int64      `json:"id"`
	Provider          string     `json:"provider"`
	OperationID       string     `json:"operationId"`
	Amount            float64    `json:"amount"`
	Currency          string     `json:"currency"`
	Method            *string    `json:"method,omitempty"`
	Status            string     `json:"status"`
	ExternalReference *string    `json:"externalReference,omitempty"`
	ApprovedAt        *time.Time `json:"approvedAt,omitempty"`
	CreatedAt         time.Time  `json:"createdAt"`
}

// BookingDetailsResponse запись с историей изменений и платежами
type BookingDetailsResponse struct {
	BookingResponse
	Changes  []BookingChangeResponse `json:"changes"`
	Payments []PaymentResponse       `json:"payments"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
	Total    int               `json:"total"`
}

// BookingStatisticsResponse сводка по записям за период
type BookingStatisticsResponse struct {
	From               string  `json:"from"`
	To                 string  `json:"to"`
	ProfessionalID     *int64  `json:"professionalId,omitempty"`
	TotalBookings      int     `json:"totalBookings"`
	PendingBookings    int     `json:"pendingBookings"`
	ConfirmedBookings  int     `json:"confirmedBookings"`
	CompletedBookings  int     `json:"completedBookings"`
	CancelledBookings  int     `json:"cancelledBookings"`
	TotalRevenue       float64 `json:"totalRevenue"`       // без отмененных
	DepositsCollected  float64 `json:"depositsCollected"`  // без отмененных
	OutstandingPayment float64 `json:"outstandingPayment"` // к получению в салоне
}

// Конвертеры

// FromDomainBooking конвертирует domain.Booking в BookingResponse
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	services := make([]BookingServiceResponse, len(b.Services))
	for i, s := range b.Services {
		services[i] = BookingServiceResponse{
			ServiceID:       s.ServiceID,
			ServiceName:     s.ServiceName,
			ServicePrice:    s.ServicePrice,
			DurationMinutes: s.DurationMinutes,
		}
	}

	remaining := b.TotalPrice - b.DepositPaid
	if remaining < 0 {
		remaining = 0
	}

	return &BookingResponse{
		ID:               b.ID,
		Code:             b.Code,
		ClientName:       b.Client.Name,
		ClientPhone:      b.Client.Phone,
		ClientEmail:      b.Client.Email,
		Date:             b.Date.Format(domain.DateFormat),
		StartTime:        b.StartTime.String(),
		EndTime:          b.EndTime.String(),
		DurationMinutes:  b.DurationMinutes(),
		ProfessionalID:   b.ProfessionalID,
		ProfessionalName: b.ProfessionalName,
		Services:         services,
		TotalPrice:       b.TotalPrice,
		DepositRequired:  b.DepositRequired,
		DepositPaid:      b.DepositPaid,
		RemainingAmount:  remaining,
		PaymentStatus:    string(b.PaymentState()),
		Status:           string(b.Status),
		CreatedAt:        b.CreatedAt,
		UpdatedAt:        b.UpdatedAt,
	}
}

// FromDomainStatistics конвертирует domain.BookingStatistics в BookingStatisticsResponse
func FromDomainStatistics(req *BookingStatisticsRequest, s *domain.BookingStatistics) *BookingStatisticsResponse {
	return &BookingStatisticsResponse{
		From:               req.From.Format(domain.DateFormat),
		To:                 req.To.Format(domain.DateFormat),
		ProfessionalID:     req.ProfessionalID,
		TotalBookings:      s.Total,
		PendingBookings:    s.Pending,
		ConfirmedBookings:  s.Confirmed,
		CompletedBookings:  s.Completed,
		CancelledBookings:  s.Cancelled,
		TotalRevenue:       s.Revenue,
		DepositsCollected:  s.Deposits,
		OutstandingPayment: s.Outstanding(),
	}
}

// FromDomainBookingList конвертирует список domain.Booking в BookingListResponse
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	result := make([]BookingResponse, len(bookings))
	for i, b := range bookings {
		result[i] = *FromDomainBooking(b)
	}
	return &BookingListResponse{
		Bookings: result,
		Total:    len(result),
	}
}

// FromDomainChange конвертирует domain.BookingChange в BookingChangeResponse
func FromDomainChange(c *domain.BookingChange) BookingChangeResponse {
	resp := BookingChangeResponse{
		ID:           c.ID,
		Type:         string(c.Type),
		OriginalDate: c.OriginalDate.Format(domain.DateFormat),
		OriginalTime: c.OriginalTime.String(),
		Reason:       c.Reason,
		CreatedAt:    c.CreatedAt,
	}
	if c.NewDate != nil {
		d := c.NewDate.Format(domain.DateFormat)
		resp.NewDate = &d
	}
	if c.NewTime != nil {
		t := c.NewTime.String()
		resp.NewTime = &t
	}
	return resp
}

// FromDomainPayment конвертирует domain.Payment в PaymentResponse
func FromDomainPayment(p *domain.Payment) PaymentResponse {
	return PaymentResponse{
		ID:                p.ID,
		Provider:          p.Provider,
		OperationID:       p.OperationID,
		Amount:            p.Amount,
		Currency:          p.Currency,
		Method:            p.Method,
		Status:            string(p.Status),
		ExternalReference: p.ExternalReference,
		ApprovedAt:        p.ApprovedAt,
		CreatedAt:         p.CreatedAt,
	}
}

// ToDomainBookingStatus конвертирует строку в domain.BookingStatus
func ToDomainBookingStatus(status string) (domain.BookingStatus, error) {
	s := domain.BookingStatus(status)
	if !s.Valid() {
		return "", ErrInvalidStatus
	}
	return s, nil
}
