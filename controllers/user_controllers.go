package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/restaurant-reservations/models"
	"github.com/yeremiapane/restaurant-reservations/utils"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type UserController struct {
	DB     *gorm.DB
	Tokens *utils.TokenIssuer
}

func NewUserController(db *gorm.DB, tokens *utils.TokenIssuer) *UserController {
	return &UserController{DB: db, Tokens: tokens}
}

// CreateUser -> admin adds a staff account
func (uc *UserController) CreateUser(c *gin.Context) {
	var req struct {
		Name     string `json:"name" binding:"required"`
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required,min=8"`
		Role     string `json:"role" binding:"required,oneof=admin host"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, utils.BadRequest("%s", err.Error()))
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	user := models.User{
		Name:     req.Name,
		Email:    utils.NormalizeEmail(req.Email),
		Password: string(hashed),
		Role:     req.Role,
	}

	var existing int64
	if err := uc.DB.Model(&models.User{}).Where("email = ?", user.Email).Count(&existing).Error; err != nil {
		utils.RespondError(c, err)
		return
	}
	if existing > 0 {
		utils.RespondError(c, utils.BadRequest("Email %s is already registered", user.Email))
		return
	}

	if err := uc.DB.Create(&user).Error; err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.InfoLogger.Printf("New user registered: %s (role=%s)", user.Email, user.Role)
	utils.RespondJSON(c, http.StatusCreated, user)
}

// Login user -> return JWT
func (uc *UserController) Login(c *gin.Context) {
	var input struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondError(c, utils.BadRequest("email and password are required"))
		return
	}

	var user models.User
	err := uc.DB.Where("email = ?", utils.NormalizeEmail(input.Email)).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondError(c, utils.Unauthorized("invalid credentials"))
			return
		}
		utils.RespondError(c, err)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.Password)); err != nil {
		utils.RespondError(c, utils.Unauthorized("invalid credentials"))
		return
	}

	token, err := uc.Tokens.GenerateToken(user.ID, user.Role)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, gin.H{
		"token": token,
		"user":  user,
	})
}

// GetProfile -> the account behind the token
func (uc *UserController) GetProfile(c *gin.Context) {
	var user models.User
	if err := uc.DB.First(&user, c.GetUint("user_id")).Error; err != nil {
		utils.RespondError(c, utils.NotFound("user not found"))
		return
	}
	utils.RespondJSON(c, http.StatusOK, user)
}
