package controllers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/schoolpay/payments-api/models"
	"github.com/schoolpay/payments-api/repository"
	"github.com/schoolpay/payments-api/utils"
	"gorm.io/gorm"
)

// AuthController handles dashboard user registration and login.
type AuthController struct {
	users *repository.UserRepository
}

func NewAuthController(users *repository.UserRepository) *AuthController {
	return &AuthController{users: users}
}

// Register handles POST /api/auth/register
func (ctrl *AuthController) Register(c *gin.Context) {
	utils.LogInfo("Register called")

	var req struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Invalid registration request: %v", err)
		utils.BadRequest(c, "Please provide email and password", err.Error())
		return
	}

	if !utils.IsValidEmail(req.Email) {
		utils.BadRequest(c, "Invalid email address", nil)
		return
	}

	if _, err := ctrl.users.FindByEmail(req.Email); err == nil {
		utils.LogError("Registration attempt for existing email: %s", req.Email)
		utils.BadRequest(c, "User already exists", nil)
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		utils.LogError("Failed to check existing user: %v", err)
		utils.InternalServerError(c, "Server error", err.Error())
		return
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		utils.LogError("Failed to hash password: %v", err)
		utils.InternalServerError(c, "Server error", nil)
		return
	}

	user := &models.User{Email: req.Email, Password: hash}
	if err := ctrl.users.Create(user); err != nil {
		utils.LogError("Failed to create user: %v", err)
		utils.InternalServerError(c, "Server error", err.Error())
		return
	}

	utils.LogInfo("User %d registered", user.ID)
	utils.Created(c, "User registered successfully", nil)
}

// Login handles POST /api/auth/login
func (ctrl *AuthController) Login(c *gin.Context) {
	utils.LogInfo("Login called")

	var req struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Invalid login request: %v", err)
		utils.BadRequest(c, "Please provide email and password", err.Error())
		return
	}

	user, err := ctrl.users.FindByEmail(req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.NotFound(c, "User not found")
			return
		}
		utils.LogError("Failed to load user: %v", err)
		utils.InternalServerError(c, "Server error", err.Error())
		return
	}

	if !utils.CheckPassword(req.Password, user.Password) {
		utils.LogError("Invalid credentials for user %d", user.ID)
		utils.BadRequest(c, "Invalid credentials", nil)
		return
	}

	token, err := utils.GenerateToken(user.ID, user.Email)
	if err != nil {
		utils.LogError("Failed to generate token for user %d: %v", user.ID, err)
		utils.InternalServerError(c, "Server error", nil)
		return
	}

	utils.LogInfo("User %d logged in", user.ID)
	utils.Success(c, "Login successful", gin.H{
		"accessToken": token,
		"user": gin.H{
			"id":    user.ID,
			"email": user.Email,
		},
	})
}
