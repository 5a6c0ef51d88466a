package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Domenick1991/busbooking/internal/domain"
	"github.com/Domenick1991/busbooking/internal/service/booking"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockBookingUseCase is a mock implementation of booking.BookingUseCase
type MockBookingUseCase struct {
	mock.Mock
}

func (m *MockBookingUseCase) CreateBooking(ctx context.Context, input booking.CreateBookingInput) (*domain.Booking, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingUseCase) CancelBooking(ctx context.Context, bookingID string) (*domain.Booking, error) {
	args := m.Called(ctx, bookingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingUseCase) GetBooking(ctx context.Context, bookingID string) (*domain.Booking, error) {
	args := m.Called(ctx, bookingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingUseCase) ListBookings(ctx context.Context) ([]domain.Booking, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Booking), args.Error(1)
}

func sampleBooking() *domain.Booking {
	return &domain.Booking{
		ID:          "abc12345",
		SeatIDs:     []int{1, 11},
		Date:        "2099-01-01",
		Passenger:   domain.Passenger{Name: "Meera", Age: 30, Gender: "F"},
		Meals:       []domain.Meal{{ID: 1, Name: "Veg Thali", Type: domain.MealTypeVeg, Price: decimal.NewFromInt(150)}},
		TotalAmount: decimal.NewFromInt(1600),
		Status:      domain.BookingStatusConfirmed,
		CreatedAt:   time.Date(2098, 12, 1, 10, 0, 0, 0, time.UTC),
	}
}

func postJSON(t *testing.T, c *gin.Context, path string, v interface{}) {
	t.Helper()
	body, err := json.Marshal(v)
	assert.NoError(t, err)
	c.Request = httptest.NewRequest("POST", path, bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
}

func TestBookingHandler_create(t *testing.T) {
	mockService := &MockBookingUseCase{}
	handler := NewBookingHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	postJSON(t, c, "/book", map[string]interface{}{
		"date":      "2099-01-01",
		"seat_ids":  []int{1, 11},
		"passenger": map[string]interface{}{"name": "Meera", "age": 30, "gender": "F"},
		"meal_ids":  []int{1},
	})

	input := booking.CreateBookingInput{
		Date:      "2099-01-01",
		SeatIDs:   []int{1, 11},
		Passenger: domain.Passenger{Name: "Meera", Age: 30, Gender: "F"},
		MealIDs:   []int{1},
	}
	mockService.On("CreateBooking", c.Request.Context(), input).Return(sampleBooking(), nil)

	handler.create(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var response bookingResponse
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Equal(t, "abc12345", response.BookingID)
	assert.Equal(t, 1600.0, response.TotalAmount)
	assert.Equal(t, "confirmed", response.Status)
	assert.Equal(t, []int{1, 11}, response.SeatIDs)
	assert.Len(t, response.Meals, 1)
	assert.Equal(t, 150.0, response.Meals[0].Price)
	assert.Equal(t, "2098-12-01T10:00:00Z", response.CreatedAt)

	mockService.AssertExpectations(t)
}

func TestBookingHandler_create_BadBody(t *testing.T) {
	cases := []struct {
		name string
		body map[string]interface{}
	}{
		{"missing date", map[string]interface{}{
			"seat_ids":  []int{1},
			"passenger": map[string]interface{}{"name": "A", "age": 20, "gender": "M"},
		}},
		{"empty seat ids", map[string]interface{}{
			"date":      "2099-01-01",
			"seat_ids":  []int{},
			"passenger": map[string]interface{}{"name": "A", "age": 20, "gender": "M"},
		}},
		{"missing passenger name", map[string]interface{}{
			"date":      "2099-01-01",
			"seat_ids":  []int{1},
			"passenger": map[string]interface{}{"age": 20, "gender": "M"},
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			mockService := &MockBookingUseCase{}
			handler := NewBookingHandler(mockService)

			gin.SetMode(gin.TestMode)
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			postJSON(t, c, "/book", tc.body)

			handler.create(c)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			mockService.AssertNotCalled(t, "CreateBooking")
		})
	}
}

func TestBookingHandler_create_ErrorStatuses(t *testing.T) {
	cases := []struct {
		name string
		err  error
		code int
	}{
		{"already booked", &domain.SeatError{SeatID: 1, Number: "L1", Err: domain.ErrSeatAlreadyBooked}, http.StatusBadRequest},
		{"seat not found", &domain.SeatError{SeatID: 42, Err: domain.ErrSeatNotFound}, http.StatusNotFound},
		{"invalid passenger", &domain.PassengerError{Age: 0}, http.StatusUnprocessableEntity},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			mockService := &MockBookingUseCase{}
			handler := NewBookingHandler(mockService)

			gin.SetMode(gin.TestMode)
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			postJSON(t, c, "/book", map[string]interface{}{
				"date":      "2099-01-01",
				"seat_ids":  []int{1},
				"passenger": map[string]interface{}{"name": "A", "age": 0, "gender": "M"},
			})

			mockService.On("CreateBooking", c.Request.Context(), mock.Anything).Return(nil, tc.err)

			handler.create(c)

			assert.Equal(t, tc.code, w.Code)
			var body map[string]string
			assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tc.err.Error(), body["error"])
		})
	}
}

func TestBookingHandler_cancel(t *testing.T) {
	mockService := &MockBookingUseCase{}
	handler := NewBookingHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	bookingID := "abc12345"
	c.Params = gin.Params{{Key: "booking_id", Value: bookingID}}
	c.Request = httptest.NewRequest("POST", "/cancel/"+bookingID, nil)

	mockService.On("CancelBooking", c.Request.Context(), bookingID).Return(sampleBooking(), nil)

	handler.cancel(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var response cancelResponse
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Equal(t, "Booking cancelled successfully", response.Message)
	assert.Equal(t, bookingID, response.BookingID)

	mockService.AssertExpectations(t)
}

func TestBookingHandler_cancel_NotFound(t *testing.T) {
	mockService := &MockBookingUseCase{}
	handler := NewBookingHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	c.Params = gin.Params{{Key: "booking_id", Value: "missing"}}
	c.Request = httptest.NewRequest("POST", "/cancel/missing", nil)

	mockService.On("CancelBooking", c.Request.Context(), "missing").
		Return(nil, &domain.BookingError{BookingID: "missing"})

	handler.cancel(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
	mockService.AssertExpectations(t)
}

func TestBookingHandler_list(t *testing.T) {
	mockService := &MockBookingUseCase{}
	handler := NewBookingHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/bookings", nil)

	mockService.On("ListBookings", c.Request.Context()).Return([]domain.Booking{*sampleBooking()}, nil)

	handler.list(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var response []bookingResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Len(t, response, 1)
	assert.Equal(t, "Meera", response[0].Passenger.Name)

	mockService.AssertExpectations(t)
}

func TestBookingHandler_list_Empty(t *testing.T) {
	mockService := &MockBookingUseCase{}
	handler := NewBookingHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/bookings", nil)

	mockService.On("ListBookings", c.Request.Context()).Return([]domain.Booking{}, nil)

	handler.list(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, "[]", w.Body.String())
}

func TestBookingHandler_get(t *testing.T) {
	mockService := &MockBookingUseCase{}
	handler := NewBookingHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	c.Params = gin.Params{{Key: "booking_id", Value: "abc12345"}}
	c.Request = httptest.NewRequest("GET", "/bookings/abc12345", nil)

	mockService.On("GetBooking", c.Request.Context(), "abc12345").Return(sampleBooking(), nil)

	handler.get(c)

	assert.Equal(t, http.StatusOK, w.Code)
	mockService.AssertExpectations(t)
}
