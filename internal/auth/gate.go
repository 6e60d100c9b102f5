package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/bookstore/storefront/internal/db"
	"github.com/bookstore/storefront/internal/repo"
	"github.com/gin-gonic/gin"
)

const (
	// CookieName is the cookie carrying the session token.
	CookieName = "session"

	customerIDKey = "auth.customer_id"
	usernameKey   = "auth.username"
)

var (
	// ErrUnauthenticated is returned when a request carries no valid session.
	ErrUnauthenticated = errors.New("login required")
)

// CustomerFinder loads the customer a session points at.
type CustomerFinder interface {
	FindByID(ctx context.Context, id uint) (*db.Customer, error)
}

// Gate resolves the customer behind a request. A session whose customer no
// longer exists is treated as anonymous.
type Gate struct {
	sessions  *SessionManager
	customers CustomerFinder
	secure    bool
}

// NewGate creates a Gate. secure marks the session cookie HTTPS-only.
func NewGate(sessions *SessionManager, customers CustomerFinder, secure bool) *Gate {
	return &Gate{sessions: sessions, customers: customers, secure: secure}
}

// CurrentCustomerID returns the id of the logged-in customer, or
// ErrUnauthenticated.
func (g *Gate) CurrentCustomerID(c *gin.Context) (uint, error) {
	claims, err := g.current(c)
	if err != nil {
		return 0, err
	}
	return claims.CustomerID, nil
}

// CurrentUsername returns the username of the logged-in customer, or
// ErrUnauthenticated.
func (g *Gate) CurrentUsername(c *gin.Context) (string, error) {
	claims, err := g.current(c)
	if err != nil {
		return "", err
	}
	return claims.Username, nil
}

func (g *Gate) current(c *gin.Context) (*SessionClaims, error) {
	if id, ok := c.Get(customerIDKey); ok {
		return &SessionClaims{CustomerID: id.(uint), Username: c.GetString(usernameKey)}, nil
	}

	token := tokenFromRequest(c)
	if token == "" {
		return nil, ErrUnauthenticated
	}

	claims, err := g.sessions.Parse(token)
	if err != nil {
		return nil, ErrUnauthenticated
	}

	customer, err := g.customers.FindByID(c.Request.Context(), claims.CustomerID)
	if errors.Is(err, repo.ErrCustomerNotFound) {
		return nil, ErrUnauthenticated
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load session customer: %w", err)
	}
	claims.Username = customer.Username

	c.Set(customerIDKey, claims.CustomerID)
	c.Set(usernameKey, claims.Username)
	return claims, nil
}

func tokenFromRequest(c *gin.Context) string {
	if header := c.GetHeader("Authorization"); header != "" {
		if token, ok := strings.CutPrefix(header, "Bearer "); ok {
			return strings.TrimSpace(token)
		}
	}
	if cookie, err := c.Cookie(CookieName); err == nil {
		return cookie
	}
	return ""
}

// RequireCustomer aborts requests without a valid session with 401.
func (g *Gate) RequireCustomer() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, err := g.current(c); err != nil {
			if errors.Is(err, ErrUnauthenticated) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
				return
			}
			_ = c.Error(err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
			return
		}
		c.Next()
	}
}

// StartSession writes the session cookie.
func (g *Gate) StartSession(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(CookieName, token, int(g.sessions.TTL().Seconds()), "/", "", g.secure, true)
}

// EndSession expires the session cookie.
func (g *Gate) EndSession(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(CookieName, "", -1, "/", "", g.secure, true)
}
