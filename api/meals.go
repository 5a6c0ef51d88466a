package api

import (
	"net/http"

	"github.com/Domenick1991/busbooking/internal/domain"
	"github.com/gin-gonic/gin"
)

type MealLister interface {
	List() []domain.Meal
}

type MealHandler struct {
	catalog MealLister
}

type mealResponse struct {
	ID    int     `json:"id"`
	Name  string  `json:"name"`
	Type  string  `json:"type"`
	Price float64 `json:"price"`
}

func NewMealHandler(catalog MealLister) *MealHandler {
	return &MealHandler{catalog: catalog}
}

func (h *MealHandler) Register(router *gin.RouterGroup) {
	router.GET("/meals", h.list)
}

func (h *MealHandler) list(c *gin.Context) {
	meals := h.catalog.List()
	resp := make([]mealResponse, 0, len(meals))
	for _, m := range meals {
		resp = append(resp, toMealResponse(m))
	}
	c.JSON(http.StatusOK, resp)
}

func toMealResponse(m domain.Meal) mealResponse {
	return mealResponse{
		ID:    m.ID,
		Name:  m.Name,
		Type:  string(m.Type),
		Price: m.Price.InexactFloat64(),
	}
}
