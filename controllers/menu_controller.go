package controllers

import (
	"strconv"

	"github.com/ar363/restaurant-live-ordering/entity"
	"github.com/ar363/restaurant-live-ordering/pkg/resp"
	"github.com/ar363/restaurant-live-ordering/repository"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type MenuController struct{ Repo *repository.MenuRepository }

func NewMenuController(repo *repository.MenuRepository) *MenuController {
	return &MenuController{Repo: repo}
}

type MenuItemIn struct {
	Name        string          `json:"name" binding:"required"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price" binding:"required"`
	Category    string          `json:"category" binding:"required"`
	IsAvailable *bool           `json:"isAvailable"`
	Image       string          `json:"image"`
}

// GET /menu (public, เฉพาะที่ยังขาย)
func (h *MenuController) List(c *gin.Context) {
	items, err := h.Repo.ListAvailable()
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, items)
}

// GET /menu/:id
func (h *MenuController) Detail(c *gin.Context) {
	id := parseID(c)
	item, err := h.Repo.GetByID(id)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	resp.OK(c, item)
}

// POST /menu (staff)
func (h *MenuController) Create(c *gin.Context) {
	var req MenuItemIn
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	item := entity.MenuItem{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Category:    req.Category,
		IsAvailable: req.IsAvailable == nil || *req.IsAvailable,
		Image:       req.Image,
	}
	if err := h.Repo.Create(&item); err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.Created(c, item)
}

// PUT /menu/:id (staff)
func (h *MenuController) Update(c *gin.Context) {
	id := parseID(c)
	if _, err := h.Repo.GetByID(id); err != nil {
		handleServiceError(c, err)
		return
	}

	var req MenuItemIn
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	updates := map[string]any{
		"name":        req.Name,
		"description": req.Description,
		"price":       req.Price,
		"category":    req.Category,
		"image":       req.Image,
	}
	if req.IsAvailable != nil {
		updates["is_available"] = *req.IsAvailable
	}
	if err := h.Repo.Update(id, updates); err != nil {
		resp.ServerError(c, err)
		return
	}

	item, err := h.Repo.GetByID(id)
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, item)
}

// DELETE /menu/:id (staff)
func (h *MenuController) Delete(c *gin.Context) {
	id := parseID(c)
	if _, err := h.Repo.GetByID(id); err != nil {
		handleServiceError(c, err)
		return
	}
	if err := h.Repo.Delete(id); err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, gin.H{"deleted": true})
}

func parseID(c *gin.Context) uint {
	id, _ := strconv.ParseUint(c.Param("id"), 10, 32)
	return uint(id)
}
