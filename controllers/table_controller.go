package controllers

import (
	"github.com/ar363/restaurant-live-ordering/pkg/resp"
	"github.com/ar363/restaurant-live-ordering/repository"
	"github.com/gin-gonic/gin"
)

type TableController struct{ Repo *repository.TableRepository }

func NewTableController(repo *repository.TableRepository) *TableController {
	return &TableController{Repo: repo}
}

// GET /tables
func (h *TableController) List(c *gin.Context) {
	tables, err := h.Repo.List()
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, tables)
}

// GET /tables/:id
func (h *TableController) Detail(c *gin.Context) {
	table, err := h.Repo.GetByID(parseID(c))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	resp.OK(c, table)
}
