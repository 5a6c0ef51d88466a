package api

import (
	"net/http"

	"github.com/Domenick1991/busbooking/internal/service/prediction"
	"github.com/gin-gonic/gin"
)

type PredictionHandler struct {
	service prediction.PredictionUseCase
}

type predictionResponse struct {
	BookingID                      string  `json:"booking_id"`
	ConfirmationProbabilityPercent float64 `json:"confirmation_probability_percent"`
	RiskLevel                      string  `json:"risk_level"`
}

func NewPredictionHandler(service prediction.PredictionUseCase) *PredictionHandler {
	return &PredictionHandler{service: service}
}

func (h *PredictionHandler) Register(router *gin.RouterGroup) {
	router.GET("/prediction/:booking_id", h.get)
}

func (h *PredictionHandler) get(c *gin.Context) {
	p, err := h.service.Predict(c.Request.Context(), c.Param("booking_id"))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, predictionResponse{
		BookingID:                      p.BookingID,
		ConfirmationProbabilityPercent: p.Probability,
		RiskLevel:                      string(p.RiskLevel),
	})
}
