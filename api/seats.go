package api

import (
	"net/http"

	"github.com/Domenick1991/busbooking/internal/domain"
	"github.com/Domenick1991/busbooking/internal/service/inventory"
	"github.com/gin-gonic/gin"
)

type SeatHandler struct {
	service inventory.SeatUseCase
}

type seatResponse struct {
	ID       int     `json:"id"`
	Number   string  `json:"number"`
	Type     string  `json:"type"`
	Price    float64 `json:"price"`
	IsBooked bool    `json:"is_booked"`
}

func NewSeatHandler(service inventory.SeatUseCase) *SeatHandler {
	return &SeatHandler{service: service}
}

func (h *SeatHandler) Register(router *gin.RouterGroup) {
	router.GET("/seats", h.list)
	router.GET("/seats/:seat_id", h.get)
}

func (h *SeatHandler) list(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date is required"})
		return
	}

	seats, err := h.service.ListSeats(c.Request.Context(), date)
	if err != nil {
		writeError(c, err)
		return
	}

	resp := make([]seatResponse, 0, len(seats))
	for _, s := range seats {
		resp = append(resp, toSeatResponse(s))
	}
	c.JSON(http.StatusOK, resp)
}

func (h *SeatHandler) get(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date is required"})
		return
	}
	var uri struct {
		SeatID int `uri:"seat_id" binding:"required"`
	}
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid seat id"})
		return
	}

	seat, err := h.service.FindSeat(c.Request.Context(), date, uri.SeatID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toSeatResponse(*seat))
}

func toSeatResponse(s domain.Seat) seatResponse {
	return seatResponse{
		ID:       s.ID,
		Number:   s.Number,
		Type:     string(s.Type),
		Price:    s.Price.InexactFloat64(),
		IsBooked: s.IsBooked,
	}
}
