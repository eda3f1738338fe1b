package handlers

import (
	"net/http"
	"strings"
	"sync"
	"time"

	"aviatickets/internal/http/middleware"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// Demo-grade user registry. Account management is not part of this
// backend's core; registered users get real password checks, unknown
// emails fall through to the demo stub so the mobile client always gets
// a token.
type authUser struct {
	Email        string `json:"email"`
	Name         string `json:"name"`
	passwordHash []byte
}

var (
	usersMu sync.RWMutex
	users   = map[string]*authUser{}
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

// POST /auth/login
func Login(c *gin.Context) {
	var req loginRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" {
		email = "demo@user"
	}

	usersMu.RLock()
	user, known := users[email]
	usersMu.RUnlock()

	if known {
		if err := bcrypt.CompareHashAndPassword(user.passwordHash, []byte(req.Password)); err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "wrong email or password"})
			return
		}
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": email,
		"exp": time.Now().Add(24 * time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(appEnv.JWTSecret))
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "failed to sign token", err)
		return
	}

	name := ""
	if known {
		name = user.Name
	}
	c.JSON(http.StatusOK, gin.H{
		"accessToken": signed,
		"user":        gin.H{"email": email, "name": name},
	})
}

// POST /auth/register
func Register(c *gin.Context) {
	var req registerRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || req.Password == "" {
		RespondError(c, http.StatusBadRequest, "email and password are required", nil)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "failed to hash password", err)
		return
	}

	usersMu.Lock()
	defer usersMu.Unlock()
	if _, exists := users[email]; exists {
		c.JSON(http.StatusConflict, gin.H{"error": "email already registered"})
		return
	}
	users[email] = &authUser{Email: email, Name: strings.TrimSpace(req.Name), passwordHash: hash}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}

type updateProfileRequest struct {
	Name string `json:"name"`
}

// PUT /me (token required)
func UpdateProfile(c *gin.Context) {
	email := middleware.GetUserEmail(c)

	var req updateProfileRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	usersMu.Lock()
	user, ok := users[email]
	if !ok {
		user = &authUser{Email: email}
		users[email] = user
	}
	user.Name = strings.TrimSpace(req.Name)
	usersMu.Unlock()

	c.JSON(http.StatusOK, gin.H{"ok": true, "user": gin.H{"email": user.Email, "name": user.Name}})
}
