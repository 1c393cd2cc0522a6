package middleware

import (
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/adreach/campaign-workflow-backend/internal/database/repository"
	"github.com/adreach/campaign-workflow-backend/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// IdentityMiddleware validates tokens minted by the external identity
// provider and resolves them to a local user row. Accounts are provisioned
// on first sight; roles and company membership live locally.
type IdentityMiddleware struct {
	userRepo repository.UserRepositoryInterface
	secret   []byte
}

type identityClaims struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	jwt.RegisteredClaims
}

func NewIdentityMiddleware(userRepo repository.UserRepositoryInterface) *IdentityMiddleware {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		logrus.Warn("JWT_SECRET is not set, tokens will fail validation")
	}
	return &IdentityMiddleware{
		userRepo: userRepo,
		secret:   []byte(secret),
	}
}

// RequireUser validates the bearer token and sets the resolved user in context
func (m *IdentityMiddleware) RequireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer ") {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid authorization header format"})
			c.Abort()
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		claims, err := m.parseToken(tokenString)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			c.Abort()
			return
		}

		user, err := m.resolveUser(claims)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found"})
			c.Abort()
			return
		}

		c.Set("user_id", user.ID)
		c.Set("user", user)
		c.Set("is_admin", user.IsAdmin())

		c.Next()
	}
}

// RequireAdmin rejects non-admin users. Must run after RequireUser.
func (m *IdentityMiddleware) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !c.GetBool("is_admin") {
			c.JSON(http.StatusForbidden, gin.H{"error": "Admin privileges required"})
			c.Abort()
			return
		}
		c.Next()
	}
}

func (m *IdentityMiddleware) parseToken(tokenString string) (*identityClaims, error) {
	claims := &identityClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid || claims.Subject == "" {
		return nil, fmt.Errorf("invalid token")
	}
	return claims, nil
}

// resolveUser loads the local row for the token subject, provisioning a
// default-role account on first sight.
func (m *IdentityMiddleware) resolveUser(claims *identityClaims) (*models.User, error) {
	user, err := m.userRepo.GetByID(claims.Subject)
	if err == nil {
		return user, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	user = &models.User{
		ID:    claims.Subject,
		Email: claims.Email,
		Name:  claims.Name,
		Role:  models.RoleUser,
	}
	if err := m.userRepo.Create(user); err != nil {
		return nil, err
	}
	logrus.Infof("Provisioned user %s (%s) on first sight", user.ID, user.Email)
	return user, nil
}

// CurrentUser extracts the resolved user set by RequireUser
func CurrentUser(c *gin.Context) *models.User {
	return c.MustGet("user").(*models.User)
}
