package controllers

import (
	"errors"

	"github.com/ar363/restaurant-live-ordering/pkg/resp"
	"github.com/ar363/restaurant-live-ordering/services"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// แปลง error kind จาก service เป็น HTTP status ที่เดียว
func handleServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrValidation):
		resp.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrEmptyCart):
		resp.BadRequest(c, "cart is empty")
	case errors.Is(err, services.ErrNotFound), errors.Is(err, gorm.ErrRecordNotFound):
		resp.NotFound(c, err.Error())
	case errors.Is(err, services.ErrForbidden):
		resp.Forbidden(c, "forbidden")
	case errors.Is(err, services.ErrCheckoutConflict), errors.Is(err, services.ErrInvalidTransition):
		resp.Conflict(c, err.Error())
	default:
		resp.ServerError(c, err)
	}
}
