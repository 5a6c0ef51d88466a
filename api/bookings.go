package api

import (
	"net/http"
	"time"

	"github.com/Domenick1991/busbooking/internal/domain"
	"github.com/Domenick1991/busbooking/internal/service/booking"
	"github.com/gin-gonic/gin"
)

type BookingHandler struct {
	service booking.BookingUseCase
}

type passengerRequest struct {
	Name   string `json:"name" binding:"required"`
	Age    int    `json:"age"`
	Gender string `json:"gender" binding:"required"`
}

type createBookingRequest struct {
	Date      string           `json:"date" binding:"required"`
	SeatIDs   []int            `json:"seat_ids" binding:"required,min=1"`
	Passenger passengerRequest `json:"passenger"`
	MealIDs   []int            `json:"meal_ids"`
}

type passengerResponse struct {
	Name   string `json:"name"`
	Age    int    `json:"age"`
	Gender string `json:"gender"`
}

type bookingResponse struct {
	BookingID   string            `json:"booking_id"`
	SeatIDs     []int             `json:"seat_ids"`
	Date        string            `json:"date"`
	Passenger   passengerResponse `json:"passenger"`
	Meals       []mealResponse    `json:"meals"`
	TotalAmount float64           `json:"total_amount"`
	Status      string            `json:"status"`
	CreatedAt   string            `json:"created_at"`
}

type cancelResponse struct {
	Message   string `json:"message"`
	BookingID string `json:"booking_id"`
}

func NewBookingHandler(service booking.BookingUseCase) *BookingHandler {
	return &BookingHandler{service: service}
}

func (h *BookingHandler) Register(router *gin.RouterGroup) {
	router.POST("/book", h.create)
	router.POST("/cancel/:booking_id", h.cancel)
	router.GET("/bookings", h.list)
	router.GET("/bookings/:booking_id", h.get)
}

func (h *BookingHandler) create(c *gin.Context) {
	var req createBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	created, err := h.service.CreateBooking(c.Request.Context(), booking.CreateBookingInput{
		Date:    req.Date,
		SeatIDs: req.SeatIDs,
		Passenger: domain.Passenger{
			Name:   req.Passenger.Name,
			Age:    req.Passenger.Age,
			Gender: req.Passenger.Gender,
		},
		MealIDs: req.MealIDs,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, toBookingResponse(created))
}

func (h *BookingHandler) cancel(c *gin.Context) {
	bookingID := c.Param("booking_id")
	cancelled, err := h.service.CancelBooking(c.Request.Context(), bookingID)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, cancelResponse{
		Message:   "Booking cancelled successfully",
		BookingID: cancelled.ID,
	})
}

func (h *BookingHandler) list(c *gin.Context) {
	bookings, err := h.service.ListBookings(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}

	resp := make([]bookingResponse, 0, len(bookings))
	for i := range bookings {
		resp = append(resp, toBookingResponse(&bookings[i]))
	}
	c.JSON(http.StatusOK, resp)
}

func (h *BookingHandler) get(c *gin.Context) {
	found, err := h.service.GetBooking(c.Request.Context(), c.Param("booking_id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toBookingResponse(found))
}

func toBookingResponse(b *domain.Booking) bookingResponse {
	meals := make([]mealResponse, 0, len(b.Meals))
	for _, m := range b.Meals {
		meals = append(meals, toMealResponse(m))
	}
	return bookingResponse{
		BookingID: b.ID,
		SeatIDs:   b.SeatIDs,
		Date:      b.Date,
		Passenger: passengerResponse{
			Name:   b.Passenger.Name,
			Age:    b.Passenger.Age,
			Gender: b.Passenger.Gender,
		},
		Meals:       meals,
		TotalAmount: b.TotalAmount.InexactFloat64(),
		Status:      string(b.Status),
		CreatedAt:   b.CreatedAt.Format(time.RFC3339),
	}
}
