package services_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/go-redis/redismock/v9"
	"github.com/google/uuid"
	"github.com/srgjo27/club_membership/internal/core/domain"
	"github.com/srgjo27/club_membership/internal/core/ports/mocks"
	"github.com/srgjo27/club_membership/internal/core/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func testRooms() *domain.RoomInventory {
	return &domain.RoomInventory{
		Buildings: []domain.RoomBuilding{
			{
				ID: "SPORTI-1",
				Floors: []domain.RoomFloor{
					{
						ID: "GROUND FLOOR",
						Types: []domain.RoomTypeList{
							{ID: "Standard", Numbers: []string{"102", "103"}},
						},
					},
				},
			},
		},
	}
}

func accommodation() *domain.Service {
	return &domain.Service{ID: uuid.New(), Name: "Accommodation", Type: domain.ServiceStay, Cost: 1000}
}

func conferenceHall() *domain.Service {
	return &domain.Service{ID: uuid.New(), Name: "Conference Hall", Type: domain.ServiceVenue, Cost: 500}
}

func membershipWithBalance(balance float64) *domain.Membership {
	return &domain.Membership{
		ID:                 uuid.New(),
		OfficerName:        "Rajesh Kumar",
		OfficerEmail:       "rajesh.kumar@ksp.gov.in",
		OfficerDesignation: "Inspector",
		MembershipType:     domain.MembershipYearly,
		Status:             domain.MembershipActive,
		Balance:            balance,
	}
}

func stayRequest(membershipID uuid.UUID) services.CreateBookingRequest {
	return services.CreateBookingRequest{
		MembershipID: membershipID.String(),
		ServiceName:  "Accommodation",
		GuestType:    "Self",
		CheckIn:      "2024-01-15",
		CheckOut:     "2024-01-16",
		Building:     "SPORTI-1",
		Floor:        "GROUND FLOOR",
		RoomType:     "Standard",
		RoomNumber:   "102",
	}
}

func expectInvalidate(mockRedis redismock.ClientMock, membershipID uuid.UUID) {
	mockRedis.ExpectDel("memberships", fmt.Sprintf("membership:%s", membershipID)).SetVal(2)
}

func TestCreateBooking_StayImmediate_Success(t *testing.T) {
	mockMemberships := mocks.NewMembershipRepository(t)
	mockBookings := mocks.NewBookingRepository(t)
	mockServices := mocks.NewServiceRepository(t)
	mockPub := mocks.NewEventPublisher(t)
	cache, mockRedis := redismock.NewClientMock()

	svc := services.NewBookingService(mockMemberships, mockBookings, mockServices, testRooms(), cache, mockPub, services.NewMemberLocks())

	ctx := context.Background()
	m := membershipWithBalance(5000)

	mockMemberships.On("GetByID", ctx, m.ID).Return(m, nil)
	mockServices.On("GetByName", ctx, "Accommodation").Return(accommodation(), nil)
	mockBookings.On("CountRoomOverlaps", ctx, "SPORTI-1-GROUND-FLOOR-102", mock.Anything, mock.Anything).Return(0, nil)

	var debited *domain.Transaction
	mockBookings.On("CreateConfirmedWithDebit", ctx, mock.AnythingOfType("*domain.Booking"), mock.AnythingOfType("*domain.Transaction")).
		Run(func(args mock.Arguments) {
			debited = args.Get(2).(*domain.Transaction)
		}).
		Return(nil)

	expectInvalidate(mockRedis, m.ID)
	mockPub.On("PublishJSON", ctx, "booking.confirmed", mock.Anything).Return(nil)

	booking, err := svc.Create(ctx, stayRequest(m.ID))

	assert.NoError(t, err)
	if assert.NotNil(t, booking) {
		assert.Equal(t, domain.BookingConfirmed, booking.Status)
		assert.Equal(t, domain.PaymentPaid, booking.PaymentStatus)
		assert.Equal(t, 1, booking.NumberOfDays)
		assert.Equal(t, 1000.0, booking.TotalCost)
		assert.Equal(t, "SPORTI-1-GROUND-FLOOR-102", booking.RoomID)
		assert.Equal(t, "Rajesh Kumar", booking.Username)
		assert.NotEmpty(t, booking.ApplicationNo)
	}

	if assert.NotNil(t, debited) {
		assert.Equal(t, 1000.0, debited.Amount)
		assert.Equal(t, domain.TransactionDebit, debited.Type)
		assert.Equal(t, "Accommodation booking", debited.Description)
		assert.Equal(t, m.ID, debited.MembershipID)
	}

	if err := mockRedis.ExpectationsWereMet(); err != nil {
		t.Errorf("there were unfulfilled expectations: %s", err)
	}
}

func TestCreateBooking_InsufficientBalance(t *testing.T) {
	mockMemberships := mocks.NewMembershipRepository(t)
	mockBookings := mocks.NewBookingRepository(t)
	mockServices := mocks.NewServiceRepository(t)
	cache, _ := redismock.NewClientMock()

	svc := services.NewBookingService(mockMemberships, mockBookings, mockServices, testRooms(), cache, nil, services.NewMemberLocks())

	ctx := context.Background()
	m := membershipWithBalance(300)

	mockMemberships.On("GetByID", ctx, m.ID).Return(m, nil)
	mockServices.On("GetByName", ctx, "Conference Hall").Return(conferenceHall(), nil)

	booking, err := svc.Create(ctx, services.CreateBookingRequest{
		MembershipID: m.ID.String(),
		ServiceName:  "Conference Hall",
		GuestType:    "Official",
		EventDate:    "2024-04-15",
	})

	assert.Nil(t, booking)
	assert.True(t, errors.Is(err, domain.ErrInsufficientBalance))
	mockBookings.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	mockBookings.AssertNotCalled(t, "CreateConfirmedWithDebit", mock.Anything, mock.Anything, mock.Anything)
}

func TestCreateBooking_PendingPath_NoDebit(t *testing.T) {
	mockMemberships := mocks.NewMembershipRepository(t)
	mockBookings := mocks.NewBookingRepository(t)
	mockServices := mocks.NewServiceRepository(t)
	cache, mockRedis := redismock.NewClientMock()

	svc := services.NewBookingService(mockMemberships, mockBookings, mockServices, testRooms(), cache, nil, services.NewMemberLocks())

	ctx := context.Background()
	// Pending bookings take no funds, low balance is fine here.
	m := membershipWithBalance(0)

	mockMemberships.On("GetByID", ctx, m.ID).Return(m, nil)
	mockServices.On("GetByName", ctx, "Conference Hall").Return(conferenceHall(), nil)
	mockBookings.On("Create", ctx, mock.AnythingOfType("*domain.Booking")).Return(nil)
	expectInvalidate(mockRedis, m.ID)

	booking, err := svc.Create(ctx, services.CreateBookingRequest{
		MembershipID: m.ID.String(),
		ServiceName:  "Conference Hall",
		GuestType:    "Official",
		EventDate:    "2024-04-15",
		EnterPending: true,
	})

	assert.NoError(t, err)
	if assert.NotNil(t, booking) {
		assert.Equal(t, domain.BookingPending, booking.Status)
		assert.Equal(t, domain.PaymentPending, booking.PaymentStatus)
	}
	mockBookings.AssertNotCalled(t, "CreateConfirmedWithDebit", mock.Anything, mock.Anything, mock.Anything)
}

func TestCreateBooking_RoomAlreadyReserved(t *testing.T) {
	mockMemberships := mocks.NewMembershipRepository(t)
	mockBookings := mocks.NewBookingRepository(t)
	mockServices := mocks.NewServiceRepository(t)
	cache, _ := redismock.NewClientMock()

	svc := services.NewBookingService(mockMemberships, mockBookings, mockServices, testRooms(), cache, nil, services.NewMemberLocks())

	ctx := context.Background()
	m := membershipWithBalance(5000)

	mockMemberships.On("GetByID", ctx, m.ID).Return(m, nil)
	mockServices.On("GetByName", ctx, "Accommodation").Return(accommodation(), nil)
	mockBookings.On("CountRoomOverlaps", ctx, "SPORTI-1-GROUND-FLOOR-102", mock.Anything, mock.Anything).Return(1, nil)

	booking, err := svc.Create(ctx, stayRequest(m.ID))

	assert.Nil(t, booking)
	assert.True(t, errors.Is(err, domain.ErrRoomUnavailable))
	mockBookings.AssertNotCalled(t, "CreateConfirmedWithDebit", mock.Anything, mock.Anything, mock.Anything)
}

func TestCreateBooking_ValidationFailures(t *testing.T) {
	mockMemberships := mocks.NewMembershipRepository(t)
	mockBookings := mocks.NewBookingRepository(t)
	mockServices := mocks.NewServiceRepository(t)
	cache, _ := redismock.NewClientMock()

	svc := services.NewBookingService(mockMemberships, mockBookings, mockServices, testRooms(), cache, nil, services.NewMemberLocks())

	ctx := context.Background()
	m := membershipWithBalance(5000)

	mockMemberships.On("GetByID", ctx, m.ID).Return(m, nil).Maybe()
	mockServices.On("GetByName", ctx, "Accommodation").Return(accommodation(), nil).Maybe()
	mockServices.On("GetByName", ctx, "Conference Hall").Return(conferenceHall(), nil).Maybe()

	cases := []struct {
		name string
		req  services.CreateBookingRequest
	}{
		{"bad membership id", services.CreateBookingRequest{MembershipID: "not-a-uuid", ServiceName: "Conference Hall", GuestType: "Self", EventDate: "2024-04-15"}},
		{"missing service", services.CreateBookingRequest{MembershipID: m.ID.String(), GuestType: "Self", EventDate: "2024-04-15"}},
		{"missing guest type", services.CreateBookingRequest{MembershipID: m.ID.String(), ServiceName: "Conference Hall", EventDate: "2024-04-15"}},
		{"missing event date", services.CreateBookingRequest{MembershipID: m.ID.String(), ServiceName: "Conference Hall", GuestType: "Self"}},
		{"missing check-out", func() services.CreateBookingRequest {
			r := stayRequest(m.ID)
			r.CheckOut = ""
			return r
		}()},
		{"inverted dates", func() services.CreateBookingRequest {
			r := stayRequest(m.ID)
			r.CheckIn = "2024-01-20"
			return r
		}()},
		{"incomplete room selection", func() services.CreateBookingRequest {
			r := stayRequest(m.ID)
			r.RoomNumber = ""
			return r
		}()},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			booking, err := svc.Create(ctx, tc.req)
			assert.Nil(t, booking)
			assert.True(t, errors.Is(err, domain.ErrValidation), "expected validation error, got %v", err)
		})
	}

	mockBookings.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	mockBookings.AssertNotCalled(t, "CreateConfirmedWithDebit", mock.Anything, mock.Anything, mock.Anything)
}

func TestCreateBooking_UnknownRoomPath(t *testing.T) {
	mockMemberships := mocks.NewMembershipRepository(t)
	mockBookings := mocks.NewBookingRepository(t)
	mockServices := mocks.NewServiceRepository(t)
	cache, _ := redismock.NewClientMock()

	svc := services.NewBookingService(mockMemberships, mockBookings, mockServices, testRooms(), cache, nil, services.NewMemberLocks())

	ctx := context.Background()
	m := membershipWithBalance(5000)

	mockMemberships.On("GetByID", ctx, m.ID).Return(m, nil)
	mockServices.On("GetByName", ctx, "Accommodation").Return(accommodation(), nil)

	req := stayRequest(m.ID)
	req.Building = "SPORTI-9"

	booking, err := svc.Create(ctx, req)

	assert.Nil(t, booking)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestQuote_DoesNotMutate(t *testing.T) {
	mockMemberships := mocks.NewMembershipRepository(t)
	mockBookings := mocks.NewBookingRepository(t)
	mockServices := mocks.NewServiceRepository(t)
	cache, mockRedis := redismock.NewClientMock()

	svc := services.NewBookingService(mockMemberships, mockBookings, mockServices, testRooms(), cache, nil, services.NewMemberLocks())

	ctx := context.Background()
	m := membershipWithBalance(300)

	mockMemberships.On("GetByID", ctx, m.ID).Return(m, nil)
	mockServices.On("GetByName", ctx, "Conference Hall").Return(conferenceHall(), nil)

	quote, err := svc.Quote(ctx, services.CreateBookingRequest{
		MembershipID: m.ID.String(),
		ServiceName:  "Conference Hall",
		GuestType:    "Official",
		EventDate:    "2024-04-15",
	})

	assert.NoError(t, err)
	if assert.NotNil(t, quote) {
		assert.Equal(t, 500.0, quote.TotalCost)
		assert.Equal(t, 300.0, quote.Balance)
		assert.False(t, quote.Affordable)
	}

	mockBookings.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	if err := mockRedis.ExpectationsWereMet(); err != nil {
		t.Errorf("quote must not touch the cache: %s", err)
	}
}

func TestQuote_StayCostScalesWithNights(t *testing.T) {
	mockMemberships := mocks.NewMembershipRepository(t)
	mockBookings := mocks.NewBookingRepository(t)
	mockServices := mocks.NewServiceRepository(t)
	cache, _ := redismock.NewClientMock()

	svc := services.NewBookingService(mockMemberships, mockBookings, mockServices, testRooms(), cache, nil, services.NewMemberLocks())

	ctx := context.Background()
	m := membershipWithBalance(10000)

	mockMemberships.On("GetByID", ctx, m.ID).Return(m, nil)
	mockServices.On("GetByName", ctx, "Accommodation").Return(accommodation(), nil)

	req := stayRequest(m.ID)
	req.CheckOut = "2024-01-18"

	quote, err := svc.Quote(ctx, req)

	assert.NoError(t, err)
	if assert.NotNil(t, quote) {
		assert.Equal(t, 3, quote.NumberOfDays)
		assert.Equal(t, 3000.0, quote.TotalCost)
		assert.True(t, quote.Affordable)
	}
}

func TestConfirmBooking_Success(t *testing.T) {
	mockMemberships := mocks.NewMembershipRepository(t)
	mockBookings := mocks.NewBookingRepository(t)
	mockServices := mocks.NewServiceRepository(t)
	mockPub := mocks.NewEventPublisher(t)
	cache, mockRedis := redismock.NewClientMock()

	svc := services.NewBookingService(mockMemberships, mockBookings, mockServices, testRooms(), cache, mockPub, services.NewMemberLocks())

	ctx := context.Background()
	m := membershipWithBalance(5000)
	pending := &domain.Booking{
		ID:            uuid.New(),
		MembershipID:  m.ID,
		ServiceName:   "Conference Hall",
		ServiceType:   domain.ServiceVenue,
		TotalCost:     2000,
		Status:        domain.BookingPending,
		PaymentStatus: domain.PaymentPending,
	}

	mockBookings.On("GetByID", ctx, pending.ID).Return(pending, nil)
	mockMemberships.On("GetByID", ctx, m.ID).Return(m, nil)

	var debited *domain.Transaction
	mockBookings.On("ConfirmWithDebit", ctx, pending, mock.AnythingOfType("*domain.Transaction")).
		Run(func(args mock.Arguments) {
			debited = args.Get(2).(*domain.Transaction)
		}).
		Return(nil)

	expectInvalidate(mockRedis, m.ID)
	mockPub.On("PublishJSON", ctx, "booking.confirmed", mock.Anything).Return(nil)

	booking, err := svc.Confirm(ctx, pending.ID)

	assert.NoError(t, err)
	if assert.NotNil(t, booking) {
		assert.Equal(t, domain.BookingConfirmed, booking.Status)
		assert.Equal(t, domain.PaymentPaid, booking.PaymentStatus)
	}
	if assert.NotNil(t, debited) {
		assert.Equal(t, 2000.0, debited.Amount)
		assert.Equal(t, "Conference Hall booking", debited.Description)
	}
}

func TestConfirmBooking_InsufficientBalance_StaysPending(t *testing.T) {
	mockMemberships := mocks.NewMembershipRepository(t)
	mockBookings := mocks.NewBookingRepository(t)
	mockServices := mocks.NewServiceRepository(t)
	cache, _ := redismock.NewClientMock()

	svc := services.NewBookingService(mockMemberships, mockBookings, mockServices, testRooms(), cache, nil, services.NewMemberLocks())

	ctx := context.Background()
	// Balance dropped below the booked cost after the booking was taken.
	m := membershipWithBalance(1500)
	pending := &domain.Booking{
		ID:            uuid.New(),
		MembershipID:  m.ID,
		ServiceName:   "Conference Hall",
		ServiceType:   domain.ServiceVenue,
		TotalCost:     2000,
		Status:        domain.BookingPending,
		PaymentStatus: domain.PaymentPending,
	}

	mockBookings.On("GetByID", ctx, pending.ID).Return(pending, nil)
	mockMemberships.On("GetByID", ctx, m.ID).Return(m, nil)

	booking, err := svc.Confirm(ctx, pending.ID)

	assert.Nil(t, booking)
	assert.True(t, errors.Is(err, domain.ErrInsufficientBalance))
	assert.Equal(t, domain.BookingPending, pending.Status)
	mockBookings.AssertNotCalled(t, "ConfirmWithDebit", mock.Anything, mock.Anything, mock.Anything)
}

func TestConfirmBooking_InvalidState(t *testing.T) {
	mockMemberships := mocks.NewMembershipRepository(t)
	mockBookings := mocks.NewBookingRepository(t)
	mockServices := mocks.NewServiceRepository(t)
	cache, _ := redismock.NewClientMock()

	svc := services.NewBookingService(mockMemberships, mockBookings, mockServices, testRooms(), cache, nil, services.NewMemberLocks())

	ctx := context.Background()

	for _, status := range []domain.BookingStatus{domain.BookingConfirmed, domain.BookingRejected} {
		b := &domain.Booking{ID: uuid.New(), MembershipID: uuid.New(), Status: status}
		mockBookings.On("GetByID", ctx, b.ID).Return(b, nil)

		booking, err := svc.Confirm(ctx, b.ID)

		assert.Nil(t, booking)
		assert.True(t, errors.Is(err, domain.ErrInvalidState))
	}
}

func TestRejectBooking_Success_NoLedgerEffect(t *testing.T) {
	mockMemberships := mocks.NewMembershipRepository(t)
	mockBookings := mocks.NewBookingRepository(t)
	mockServices := mocks.NewServiceRepository(t)
	mockPub := mocks.NewEventPublisher(t)
	cache, mockRedis := redismock.NewClientMock()

	svc := services.NewBookingService(mockMemberships, mockBookings, mockServices, testRooms(), cache, mockPub, services.NewMemberLocks())

	ctx := context.Background()
	pending := &domain.Booking{
		ID:           uuid.New(),
		MembershipID: uuid.New(),
		ServiceName:  "Conference Hall",
		TotalCost:    2000,
		Status:       domain.BookingPending,
	}

	mockBookings.On("GetByID", ctx, pending.ID).Return(pending, nil)
	mockBookings.On("Update", ctx, pending).Return(nil)
	expectInvalidate(mockRedis, pending.MembershipID)
	mockPub.On("PublishJSON", ctx, "booking.rejected", mock.Anything).Return(nil)

	booking, err := svc.Reject(ctx, pending.ID, "No rooms serviceable that week")

	assert.NoError(t, err)
	if assert.NotNil(t, booking) {
		assert.Equal(t, domain.BookingRejected, booking.Status)
		assert.Equal(t, "No rooms serviceable that week", booking.RejectionReason)
	}

	// A rejection never touches the ledger.
	mockBookings.AssertNotCalled(t, "ConfirmWithDebit", mock.Anything, mock.Anything, mock.Anything)
	mockBookings.AssertNotCalled(t, "CreateConfirmedWithDebit", mock.Anything, mock.Anything, mock.Anything)
}

func TestRejectBooking_RequiresReason(t *testing.T) {
	mockMemberships := mocks.NewMembershipRepository(t)
	mockBookings := mocks.NewBookingRepository(t)
	mockServices := mocks.NewServiceRepository(t)
	cache, _ := redismock.NewClientMock()

	svc := services.NewBookingService(mockMemberships, mockBookings, mockServices, testRooms(), cache, nil, services.NewMemberLocks())

	booking, err := svc.Reject(context.Background(), uuid.New(), "  ")

	assert.Nil(t, booking)
	assert.True(t, errors.Is(err, domain.ErrValidation))
	mockBookings.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}

func TestRejectBooking_InvalidState(t *testing.T) {
	mockMemberships := mocks.NewMembershipRepository(t)
	mockBookings := mocks.NewBookingRepository(t)
	mockServices := mocks.NewServiceRepository(t)
	cache, _ := redismock.NewClientMock()

	svc := services.NewBookingService(mockMemberships, mockBookings, mockServices, testRooms(), cache, nil, services.NewMemberLocks())

	ctx := context.Background()
	confirmed := &domain.Booking{ID: uuid.New(), MembershipID: uuid.New(), Status: domain.BookingConfirmed}

	mockBookings.On("GetByID", ctx, confirmed.ID).Return(confirmed, nil)

	booking, err := svc.Reject(ctx, confirmed.ID, "too late")

	assert.Nil(t, booking)
	assert.True(t, errors.Is(err, domain.ErrInvalidState))
}

func TestCheckOutBooking(t *testing.T) {
	mockMemberships := mocks.NewMembershipRepository(t)
	mockBookings := mocks.NewBookingRepository(t)
	mockServices := mocks.NewServiceRepository(t)
	cache, mockRedis := redismock.NewClientMock()

	svc := services.NewBookingService(mockMemberships, mockBookings, mockServices, testRooms(), cache, nil, services.NewMemberLocks())

	ctx := context.Background()
	stay := &domain.Booking{
		ID:           uuid.New(),
		MembershipID: uuid.New(),
		ServiceType:  domain.ServiceStay,
		Status:       domain.BookingConfirmed,
	}

	mockBookings.On("GetByID", ctx, stay.ID).Return(stay, nil)
	mockBookings.On("Update", ctx, stay).Return(nil)
	expectInvalidate(mockRedis, stay.MembershipID)

	booking, err := svc.CheckOut(ctx, stay.ID)

	assert.NoError(t, err)
	if assert.NotNil(t, booking) {
		assert.True(t, booking.IsCheckout)
		assert.NotNil(t, booking.LastCheckOut)
	}

	// A second checkout is refused.
	_, err = svc.CheckOut(ctx, stay.ID)
	assert.True(t, errors.Is(err, domain.ErrInvalidState))
}

func TestCheckOutBooking_NonStayRefused(t *testing.T) {
	mockMemberships := mocks.NewMembershipRepository(t)
	mockBookings := mocks.NewBookingRepository(t)
	mockServices := mocks.NewServiceRepository(t)
	cache, _ := redismock.NewClientMock()

	svc := services.NewBookingService(mockMemberships, mockBookings, mockServices, testRooms(), cache, nil, services.NewMemberLocks())

	ctx := context.Background()
	venue := &domain.Booking{ID: uuid.New(), MembershipID: uuid.New(), ServiceType: domain.ServiceVenue, Status: domain.BookingConfirmed}

	mockBookings.On("GetByID", ctx, venue.ID).Return(venue, nil)

	_, err := svc.CheckOut(ctx, venue.ID)
	assert.True(t, errors.Is(err, domain.ErrInvalidState))
}

func TestEditBooking_KeepsCostAndStatus(t *testing.T) {
	mockMemberships := mocks.NewMembershipRepository(t)
	mockBookings := mocks.NewBookingRepository(t)
	mockServices := mocks.NewServiceRepository(t)
	cache, mockRedis := redismock.NewClientMock()

	svc := services.NewBookingService(mockMemberships, mockBookings, mockServices, testRooms(), cache, nil, services.NewMemberLocks())

	ctx := context.Background()
	checkIn := date("2024-01-15")
	checkOut := date("2024-01-16")
	b := &domain.Booking{
		ID:            uuid.New(),
		MembershipID:  uuid.New(),
		ServiceName:   "Accommodation",
		ServiceType:   domain.ServiceStay,
		CheckIn:       &checkIn,
		CheckOut:      &checkOut,
		NumberOfDays:  1,
		TotalCost:     1000,
		Status:        domain.BookingConfirmed,
		PaymentStatus: domain.PaymentPaid,
		GuestType:     "Self",
	}

	mockBookings.On("GetByID", ctx, b.ID).Return(b, nil)
	mockBookings.On("Update", ctx, b).Return(nil)
	expectInvalidate(mockRedis, b.MembershipID)

	newOut := "2024-01-18"
	guest := "Family"
	edited, err := svc.Edit(ctx, b.ID, services.EditBookingRequest{CheckOut: &newOut, GuestType: &guest})

	assert.NoError(t, err)
	if assert.NotNil(t, edited) {
		assert.Equal(t, 3, edited.NumberOfDays)
		assert.Equal(t, "Family", edited.GuestType)
		// Lifecycle fields and the committed cost never move on edit.
		assert.Equal(t, 1000.0, edited.TotalCost)
		assert.Equal(t, domain.BookingConfirmed, edited.Status)
	}
}
