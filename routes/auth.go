package routes

import (
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"khadamati-server/config"
	"khadamati-server/database"
	"khadamati-server/middleware"
	"khadamati-server/models"
	"khadamati-server/services"
	"khadamati-server/utils"
)

var jwtService = services.NewJWTService()

// SignUpRequest represents the registration request
type SignUpRequest struct {
	Email             string          `json:"email" binding:"required,email"`
	Password          string          `json:"password" binding:"required,min=8"`
	FullName          string          `json:"full_name" binding:"required"`
	Phone             *string         `json:"phone"`
	Role              models.UserRole `json:"role" binding:"omitempty,oneof=customer provider"`
	PreferredLanguage models.Language `json:"preferred_language" binding:"omitempty,oneof=en ar"`
}

// SignInRequest represents the sign in request
type SignInRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RegisterAuthRoutes registers authentication routes
func RegisterAuthRoutes(router *gin.RouterGroup) {
	auth := router.Group("/auth")
	auth.Use(middleware.AuthRateLimitMiddleware())
	{
		auth.POST("/signup", signUp)
		auth.POST("/signin", signIn)
		auth.POST("/refresh", refreshToken)
		auth.POST("/signout", middleware.AuthMiddleware(), signOut)
		auth.POST("/demo", demoSignIn)
		auth.GET("/me", middleware.AuthMiddleware(), getCurrentUser)
		auth.PUT("/me", middleware.AuthMiddleware(), updateCurrentUser)
		auth.PUT("/change-password", middleware.AuthMiddleware(), changePassword)
	}
}

// signUp handles user registration
func signUp(c *gin.Context) {
	var req SignUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"message": err.Error(),
		})
		return
	}

	email := utils.NormalizeEmail(req.Email)
	if !utils.ValidateEmail(email) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid email",
			"message": "Please provide a valid email address",
		})
		return
	}

	if ok, problems := middleware.ValidatePasswordStrength(req.Password); !ok {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Weak password",
			"message": strings.Join(problems, "; "),
		})
		return
	}

	if req.Phone != nil && !utils.ValidatePhoneNumber(*req.Phone) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid phone number",
			"message": "Phone number must include a country code, e.g. +973",
		})
		return
	}

	var existingUser models.User
	if err := database.DB.Where("email = ?", email).First(&existingUser).Error; err == nil {
		c.JSON(http.StatusConflict, gin.H{
			"error":   "User already exists",
			"message": "A user with this email already exists",
		})
		return
	}

	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Password hashing failed",
			"message": "Failed to process password",
		})
		return
	}

	role := req.Role
	if role == "" {
		role = models.RoleCustomer
	}

	user := models.User{
		Email:             email,
		FullName:          req.FullName,
		Phone:             req.Phone,
		PasswordHash:      hashedPassword,
		Role:              role,
		PreferredLanguage: req.PreferredLanguage,
		IsActive:          true,
	}

	if err := database.DB.Create(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "User creation failed",
			"message": "Failed to create user account",
		})
		return
	}

	// Providers start with an unverified profile awaiting admin review
	if user.Role == models.RoleProvider {
		profile := models.ProviderProfile{UserID: user.ID, IsActive: true}
		if err := database.DB.Create(&profile).Error; err != nil {
			log.Printf("⚠️ Failed to create provider profile for user %d: %v", user.ID, err)
		}
	}

	tokens, err := jwtService.GenerateTokenPair(user.ID, string(user.Role), "", c.Request.UserAgent(), c.ClientIP())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Token generation failed",
			"message": "Failed to generate authentication token",
		})
		return
	}

	log.Printf("✅ User registered: %s (ID: %d, role: %s)", user.Email, user.ID, user.Role)

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "User registered successfully",
		"tokens":  tokens,
		"user":    user,
	})
}

// signIn handles user authentication
func signIn(c *gin.Context) {
	var req SignInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"message": err.Error(),
		})
		return
	}

	email := utils.NormalizeEmail(req.Email)

	var user models.User
	if err := database.DB.Where("email = ?", email).First(&user).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error":   "Authentication failed",
			"message": "Invalid email or password",
		})
		return
	}

	if !user.IsActive {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error":   "Account deactivated",
			"message": "Your account has been deactivated",
		})
		return
	}

	if !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error":   "Authentication failed",
			"message": "Invalid email or password",
		})
		return
	}

	tokens, err := jwtService.GenerateTokenPair(user.ID, string(user.Role), "", c.Request.UserAgent(), c.ClientIP())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Token generation failed",
			"message": "Failed to generate authentication token",
		})
		return
	}

	var providerProfile *models.ProviderProfile
	if user.Role == models.RoleProvider {
		var profile models.ProviderProfile
		if err := database.DB.Where("user_id = ?", user.ID).First(&profile).Error; err == nil {
			providerProfile = &profile
		}
	}

	log.Printf("✅ User signed in: %s (ID: %d)", user.Email, user.ID)

	c.JSON(http.StatusOK, gin.H{
		"success":          true,
		"message":          "Authentication successful",
		"tokens":           tokens,
		"user":             user,
		"provider_profile": providerProfile,
	})
}

// demoSignIn signs in one of the fixture accounts. The endpoint is
// disabled unless DEMO_LOGIN_ENABLED is set.
func demoSignIn(c *gin.Context) {
	if !config.AppConfig.Demo.LoginEnabled {
		c.JSON(http.StatusNotFound, gin.H{
			"error":   "Not found",
			"message": "Demo login is not available",
		})
		return
	}

	var req struct {
		Role models.UserRole `json:"role" binding:"required,oneof=customer provider admin"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"message": err.Error(),
		})
		return
	}

	user, err := database.EnsureDemoUser(req.Role)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Demo login failed",
			"message": "Failed to prepare demo account",
		})
		return
	}

	tokens, err := jwtService.GenerateTokenPair(user.ID, string(user.Role), "", c.Request.UserAgent(), c.ClientIP())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Token generation failed",
			"message": "Failed to generate authentication token",
		})
		return
	}

	log.Printf("✅ Demo sign in as %s", user.Email)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Authentication successful",
		"tokens":  tokens,
		"user":    user,
	})
}

// refreshToken exchanges a refresh token for a new access token
func refreshToken(c *gin.Context) {
	var req struct {
		RefreshToken string `json:"refresh_token" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request",
			"message": err.Error(),
		})
		return
	}

	tokens, err := jwtService.RefreshAccessToken(req.RefreshToken)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error":   "Invalid refresh token",
			"message": "Refresh token is invalid or expired",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Token refreshed successfully",
		"tokens":  tokens,
	})
}

// signOut revokes the presented refresh token
func signOut(c *gin.Context) {
	var req struct {
		RefreshToken string `json:"refresh_token"`
	}
	c.ShouldBindJSON(&req)

	if req.RefreshToken != "" {
		if err := jwtService.RevokeRefreshToken(req.RefreshToken); err != nil {
			log.Printf("⚠️ Sign out: %v", err)
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Signed out successfully",
	})
}

// getCurrentUser returns the authenticated user's profile
func getCurrentUser(c *gin.Context) {
	user := c.MustGet("user").(models.User)

	var providerProfile *models.ProviderProfile
	if user.Role == models.RoleProvider {
		var profile models.ProviderProfile
		if err := database.DB.Where("user_id = ?", user.ID).First(&profile).Error; err == nil {
			providerProfile = &profile
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"success":          true,
		"user":             user,
		"provider_profile": providerProfile,
	})
}

// updateCurrentUser updates mutable profile fields
func updateCurrentUser(c *gin.Context) {
	user := c.MustGet("user").(models.User)

	var req struct {
		FullName          *string          `json:"full_name"`
		Phone             *string          `json:"phone"`
		PreferredLanguage *models.Language `json:"preferred_language" binding:"omitempty,oneof=en ar"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"message": err.Error(),
		})
		return
	}

	if req.FullName != nil && *req.FullName != "" {
		user.FullName = *req.FullName
	}
	if req.Phone != nil {
		if !utils.ValidatePhoneNumber(*req.Phone) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   "Invalid phone number",
				"message": "Phone number must include a country code, e.g. +973",
			})
			return
		}
		user.Phone = req.Phone
	}
	if req.PreferredLanguage != nil {
		user.PreferredLanguage = *req.PreferredLanguage
	}

	if err := database.DB.Save(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Update failed",
			"message": "Failed to update profile",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Profile updated successfully",
		"user":    user,
	})
}

// changePassword verifies the current password before setting a new one
func changePassword(c *gin.Context) {
	user := c.MustGet("user").(models.User)

	var req struct {
		CurrentPassword string `json:"current_password" binding:"required"`
		NewPassword     string `json:"new_password" binding:"required,min=8"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"message": err.Error(),
		})
		return
	}

	if !utils.CheckPasswordHash(req.CurrentPassword, user.PasswordHash) {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error":   "Authentication failed",
			"message": "Current password is incorrect",
		})
		return
	}

	if ok, problems := middleware.ValidatePasswordStrength(req.NewPassword); !ok {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Weak password",
			"message": strings.Join(problems, "; "),
		})
		return
	}

	hashed, err := utils.HashPassword(req.NewPassword)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Password hashing failed",
			"message": "Failed to process password",
		})
		return
	}

	user.PasswordHash = hashed
	if err := database.DB.Save(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Update failed",
			"message": "Failed to change password",
		})
		return
	}

	// Force re-authentication everywhere else
	jwtService.RevokeAllUserTokens(user.ID)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Password changed successfully",
	})
}
