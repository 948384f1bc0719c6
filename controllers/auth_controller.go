package controllers

import (
	"github.com/ar363/restaurant-live-ordering/entity"
	"github.com/ar363/restaurant-live-ordering/pkg/resp"
	"github.com/ar363/restaurant-live-ordering/services"
	"github.com/gin-gonic/gin"
)

type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Name     string `json:"name" binding:"required"`
}
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type AuthController struct{ Svc *services.AuthService }

func NewAuthController(svc *services.AuthService) *AuthController {
	return &AuthController{Svc: svc}
}

// POST /auth/register
func (a *AuthController) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	token, user, err := a.Svc.Register(req.Email, req.Password, req.Name)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	resp.Created(c, gin.H{"token": token, "user": user})
}

// POST /auth/login
func (a *AuthController) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	token, user, err := a.Svc.Login(req.Email, req.Password)
	if err != nil {
		resp.Unauthorized(c, "invalid credentials")
		return
	}

	resp.OK(c, gin.H{"token": token, "user": user})
}

// POST /kitchen/login — ออก token เฉพาะบัญชี role kitchen
func (a *AuthController) KitchenLogin(c *gin.Context) {
	a.staffLogin(c, entity.RoleKitchen)
}

// POST /owner/login
func (a *AuthController) OwnerLogin(c *gin.Context) {
	a.staffLogin(c, entity.RoleOwner)
}

func (a *AuthController) staffLogin(c *gin.Context, role string) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	token, user, err := a.Svc.StaffLogin(req.Email, req.Password, role)
	if err != nil {
		resp.Unauthorized(c, "invalid credentials")
		return
	}

	resp.OK(c, gin.H{"token": token, "user": user})
}
