package middleware

import (
	"academy/config"
	"academy/models"
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
)

// SessionCookie carries the signed session token for browser clients.
const SessionCookie = "access_token"

const sessionKey = "session"

// Session is the request-scoped identity of the logged-in user.
type Session struct {
	UserID   uint   `json:"user_id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

func (s *Session) IsAdmin() bool {
	return s != nil && s.Role == models.RoleAdmin
}

func sessionTTL() time.Duration {
	hours := config.AppConfig.JWTTTLHours
	if hours <= 0 {
		hours = 24
	}
	return time.Duration(hours) * time.Hour
}

// GenerateJWT generates a JWT token for the user
func GenerateJWT(user models.User) (string, error) {
	claims := jwt.MapClaims{
		"userId":   user.ID,
		"username": user.Username,
		"role":     user.Role,
		"iat":      time.Now().Unix(),                   // issued at
		"exp":      time.Now().Add(sessionTTL()).Unix(), // expiry
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	jwtSecret := []byte(config.AppConfig.JWTKey)

	return token.SignedString(jwtSecret)
}

// ParseJWT validates a token and returns the session it carries.
func ParseJWT(tokenString string) (*Session, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		// Check if the token method is valid
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(config.AppConfig.JWTKey), nil
	})
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("invalid or expired token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fmt.Errorf("invalid token payload")
	}
	// JWT numbers decode as float64
	userID, ok := claims["userId"].(float64)
	if !ok || userID <= 0 {
		return nil, fmt.Errorf("invalid token payload")
	}
	username, _ := claims["username"].(string)
	role, _ := claims["role"].(string)

	return &Session{UserID: uint(userID), Username: username, Role: role}, nil
}

// LoadSession reads the token from the Authorization header or the session
// cookie. A missing or invalid token leaves the request anonymous; the guards
// decide what anonymous requests may do.
func LoadSession(c *fiber.Ctx) error {
	tokenString := ""
	if authHeader := c.Get(fiber.HeaderAuthorization); strings.HasPrefix(authHeader, "Bearer ") {
		tokenString = authHeader[len("Bearer "):]
	} else {
		tokenString = c.Cookies(SessionCookie)
	}

	if tokenString != "" {
		if session, err := ParseJWT(tokenString); err == nil {
			c.Locals(sessionKey, session)
			c.Locals("userId", session.UserID)
		}
	}
	return c.Next()
}

// CurrentSession returns the session of the request, or nil when anonymous.
func CurrentSession(c *fiber.Ctx) *Session {
	session, _ := c.Locals(sessionKey).(*Session)
	return session
}

// StartSession issues a token for user and stores it in the session cookie.
func StartSession(c *fiber.Ctx, user models.User) (string, error) {
	token, err := GenerateJWT(user)
	if err != nil {
		return "", err
	}
	c.Cookie(&fiber.Cookie{
		Name:     SessionCookie,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(sessionTTL()),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	c.Locals(sessionKey, &Session{UserID: user.ID, Username: user.Username, Role: user.Role})
	return token, nil
}

// EndSession clears the session cookie.
func EndSession(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     SessionCookie,
		Value:    "",
		Path:     "/",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	c.Locals(sessionKey, nil)
}
