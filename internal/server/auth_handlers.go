package server

import (
	"fmt"
	"strconv"
	"time"

	"forkful/internal/models"
	"forkful/internal/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Register handles POST /api/register. A profile with the default
// picture is created alongside the account.
func (s *Server) Register(c *fiber.Ctx) error {
	var req struct {
		Username  string `json:"username" form:"username"`
		Email     string `json:"email" form:"email"`
		Password1 string `json:"password1" form:"password1"`
		Password2 string `json:"password2" form:"password2"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, token, err := s.registerUser(c, req.Username, req.Email, req.Password1, req.Password2)
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"token": token,
		"user":  user,
	})
}

// Login handles POST /api/login with username and password.
func (s *Server) Login(c *fiber.Ctx) error {
	var req struct {
		Username string `json:"username" form:"username"`
		Password string `json:"password" form:"password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, token, err := s.loginUser(c, req.Username, req.Password)
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	return c.JSON(fiber.Map{
		"token": token,
		"user":  user,
	})
}

// registerUser validates and creates an account, shared by the JSON
// API and the signup page. It returns the new user and a signed token.
func (s *Server) registerUser(c *fiber.Ctx, username, email, password1, password2 string) (*models.User, string, error) {
	if username == "" || email == "" || password1 == "" {
		return nil, "", models.NewValidationError("Username, email, and password are required")
	}
	if err := validation.ValidateUsername(username); err != nil {
		return nil, "", models.NewValidationError(err.Error())
	}
	if err := validation.ValidateEmail(email); err != nil {
		return nil, "", models.NewValidationError(err.Error())
	}
	if err := validation.ValidatePasswordPair(password1, password2); err != nil {
		return nil, "", models.NewValidationError(err.Error())
	}

	existing, err := s.userRepo.GetByUsername(c.Context(), username)
	if err != nil {
		return nil, "", err
	}
	if existing != nil {
		return nil, "", models.NewValidationError("A user with that username already exists")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password1), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", models.NewInternalError(err)
	}

	user := &models.User{
		Username: username,
		Email:    email,
		Password: string(hashedPassword),
	}
	user, err = s.userRepo.CreateWithProfile(c.Context(), user)
	if err != nil {
		return nil, "", err
	}

	token, err := s.generateToken(user.ID, user.Username)
	if err != nil {
		return nil, "", models.NewInternalError(err)
	}
	return user, token, nil
}

// loginUser checks credentials and issues a token, shared by the JSON
// API and the login page.
func (s *Server) loginUser(c *fiber.Ctx, username, password string) (*models.User, string, error) {
	user, err := s.userRepo.GetByUsername(c.Context(), username)
	if err != nil {
		return nil, "", err
	}
	if user == nil {
		return nil, "", models.NewUnauthorizedError("Invalid credentials")
	}

	if cmpErr := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); cmpErr != nil {
		return nil, "", models.NewUnauthorizedError("Invalid credentials")
	}

	token, err := s.generateToken(user.ID, user.Username)
	if err != nil {
		return nil, "", models.NewInternalError(err)
	}
	return user, token, nil
}

// generateToken creates a signed token for the given user ID and username
func (s *Server) generateToken(userID uint, username string) (string, error) {
	if s.config.JWTSecret == "" {
		return "", fmt.Errorf("JWT secret not configured")
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"sub":      strconv.FormatUint(uint64(userID), 10), // Subject (user ID as string)
		"username": username,                               // Username (cached in token)
		"iss":      "forkful-api",                          // Issuer
		"aud":      "forkful-client",                       // Audience
		"exp":      now.Add(time.Hour * 24 * 7).Unix(),     // Expiration (7 days)
		"iat":      now.Unix(),                             // Issued at
		"nbf":      now.Unix(),                             // Not before
		"jti":      s.generateJTI(),                        // JWT ID (unique identifier)
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.config.JWTSecret))
}

// generateJTI creates a unique JWT ID to prevent replay attacks
func (s *Server) generateJTI() string {
	return fmt.Sprintf("%d-%s", time.Now().Unix(), uuid.New().String()[:8])
}
