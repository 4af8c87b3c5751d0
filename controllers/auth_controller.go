package controller

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"

	"teamnest/config"
	"teamnest/models"
	"teamnest/utils"
)

type RegisterRequest struct {
	FullName  string `json:"full_name" validate:"required,max=100"`
	Email     string `json:"email" validate:"required,email"`
	Username  string `json:"username" validate:"required,min=3,max=30"`
	Password  string `json:"password" validate:"required,min=8"`
	AvatarURL string `json:"avatar_url" validate:"required,url"`
	ContactNo string `json:"contact_no" validate:"omitempty,max=20"`
	DOB       string `json:"dob" validate:"omitempty"`
	Address   string `json:"address" validate:"omitempty,max=200"`
	Language  string `json:"language" validate:"omitempty,max=30"`
	Role      string `json:"role" validate:"required,oneof=leader member"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"omitempty,email"`
	Username string `json:"username" validate:"omitempty"`
	Password string `json:"password" validate:"required"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type UpdateAccountRequest struct {
	FullName    string `json:"full_name" validate:"required,max=100"`
	Email       string `json:"email" validate:"required,email"`
	Username    string `json:"username" validate:"required,min=3,max=30"`
	ContactNo   string `json:"contact_no" validate:"omitempty,max=20"`
	DOB         string `json:"dob" validate:"omitempty"`
	Address     string `json:"address" validate:"omitempty,max=200"`
	Language    string `json:"language" validate:"omitempty,max=30"`
	Institution string `json:"institution" validate:"omitempty,max=100"`
	Expertise   string `json:"expertise" validate:"omitempty,max=100"`
}

type UpdateAvatarRequest struct {
	AvatarURL string `json:"avatar_url" validate:"required,url"`
}

type AuthResponse struct {
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	User         *models.User `json:"user"`
}

func Register(c *fiber.Ctx) error {
	var req RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body")
	}

	// Validate request
	if err := utils.ValidateStruct(req); err != nil {
		return utils.HandleError(c, err)
	}

	// Check if user already exists
	var existingUser models.User
	if err := config.DB.Where("email = ? OR username = ?", req.Email, req.Username).
		First(&existingUser).Error; err == nil {
		return utils.ErrorResponse(c, fiber.StatusConflict, "User with email or username already exists")
	}

	// Hash password
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to hash password")
	}

	user := models.User{
		FullName:     req.FullName,
		Email:        req.Email,
		Username:     req.Username,
		PasswordHash: string(hashedPassword),
		AvatarURL:    req.AvatarURL,
		ContactNo:    req.ContactNo,
		Address:      req.Address,
		Role:         req.Role,
		IsActive:     true,
	}
	if req.Language != "" {
		user.Language = req.Language
	}
	if req.DOB != "" {
		if dob, err := time.Parse("2006-01-02", req.DOB); err == nil {
			user.DOB = &dob
		}
	}

	if err := config.DB.Create(&user).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to create user")
	}

	user.Sanitize()
	return utils.SuccessResponse(c, fiber.StatusCreated, &user, "User registered successfully")
}

func Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body")
	}

	if err := utils.ValidateStruct(req); err != nil {
		return utils.HandleError(c, err)
	}
	if req.Email == "" && req.Username == "" {
		return utils.HandleError(c, utils.NewValidationError("username or email"))
	}

	// Find user by email or username
	var user models.User
	if err := config.DB.Where("email = ? OR username = ?", req.Email, req.Username).
		First(&user).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "User does not exist")
	}

	// Check password
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Invalid user credentials")
	}

	if !user.IsActive {
		return utils.ErrorResponse(c, fiber.StatusForbidden, "Account is not active")
	}

	// Generate tokens and persist the refresh token for rotation checks
	accessToken, refreshToken, err := utils.GenerateJWTToken(&user)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to generate tokens")
	}
	if err := config.DB.Model(&user).Update("refresh_token", refreshToken).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to store refresh token")
	}

	setAuthCookies(c, accessToken, refreshToken)

	user.Sanitize()
	return utils.SuccessResponse(c, fiber.StatusOK, AuthResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         &user,
	}, "User logged in successfully")
}

func Logout(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.User)

	if err := config.DB.Model(user).Update("refresh_token", "").Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to log out")
	}

	clearAuthCookies(c)
	return utils.SuccessResponse(c, fiber.StatusOK, nil, "User logged out")
}

func RefreshToken(c *fiber.Ctx) error {
	incoming := c.Cookies("refresh_token")
	if incoming == "" {
		var req RefreshTokenRequest
		if err := c.BodyParser(&req); err == nil {
			incoming = req.RefreshToken
		}
	}
	if incoming == "" {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Unauthorized request")
	}

	claims, err := utils.ParseJWTToken(incoming)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Invalid refresh token")
	}

	var user models.User
	if err := config.DB.First(&user, claims.UserID).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Invalid refresh token")
	}

	// Reject tokens that were rotated out
	if incoming != user.RefreshToken {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Refresh token is expired or used")
	}

	accessToken, refreshToken, err := utils.GenerateJWTToken(&user)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to generate tokens")
	}
	if err := config.DB.Model(&user).Update("refresh_token", refreshToken).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to store refresh token")
	}

	setAuthCookies(c, accessToken, refreshToken)

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"access_token":  accessToken,
		"refresh_token": refreshToken,
	}, "Access token refreshed")
}

// GetCurrentMember returns the authenticated member's profile
func GetCurrentMember(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.User)
	user.Sanitize()
	return utils.SuccessResponse(c, fiber.StatusOK, user, "Member fetched successfully")
}

// GetCurrentLeader returns the authenticated leader's profile
func GetCurrentLeader(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.User)
	user.Sanitize()
	return utils.SuccessResponse(c, fiber.StatusOK, user, "Leader fetched successfully")
}

func UpdateAccount(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.User)

	var req UpdateAccountRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := utils.ValidateStruct(req); err != nil {
		return utils.HandleError(c, err)
	}

	// Re-check uniqueness when email or username changes
	if user.Email != req.Email {
		var existing models.User
		if err := config.DB.Where("email = ?", req.Email).First(&existing).Error; err == nil {
			return utils.ErrorResponse(c, fiber.StatusConflict, "User with email already exists")
		}
	}
	if user.Username != req.Username {
		var existing models.User
		if err := config.DB.Where("username = ?", req.Username).First(&existing).Error; err == nil {
			return utils.ErrorResponse(c, fiber.StatusConflict, "User with username already exists")
		}
	}

	updates := map[string]interface{}{
		"full_name":   req.FullName,
		"email":       req.Email,
		"username":    req.Username,
		"contact_no":  req.ContactNo,
		"address":     req.Address,
		"language":    req.Language,
		"institution": req.Institution,
		"expertise":   req.Expertise,
	}
	if req.DOB != "" {
		if dob, err := time.Parse("2006-01-02", req.DOB); err == nil {
			updates["dob"] = dob
		}
	}

	if err := config.DB.Model(user).Updates(updates).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to update account")
	}

	user.Sanitize()
	return utils.SuccessResponse(c, fiber.StatusOK, user, "Account details updated successfully")
}

func UpdateAvatar(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.User)

	var req UpdateAvatarRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := utils.ValidateStruct(req); err != nil {
		return utils.HandleError(c, err)
	}

	if err := config.DB.Model(user).Update("avatar_url", req.AvatarURL).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to update avatar")
	}

	user.Sanitize()
	return utils.SuccessResponse(c, fiber.StatusOK, user, "Avatar updated successfully")
}

func setAuthCookies(c *fiber.Ctx, accessToken, refreshToken string) {
	c.Cookie(&fiber.Cookie{
		Name:     "access_token",
		Value:    accessToken,
		HTTPOnly: true,
		Secure:   true,
		Expires:  time.Now().Add(15 * time.Minute),
	})
	c.Cookie(&fiber.Cookie{
		Name:     "refresh_token",
		Value:    refreshToken,
		HTTPOnly: true,
		Secure:   true,
		Expires:  time.Now().Add(7 * 24 * time.Hour),
	})
}

func clearAuthCookies(c *fiber.Ctx) {
	c.ClearCookie("access_token", "refresh_token")
}
