package auth

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/bookstore/storefront/internal/db"
	"github.com/bookstore/storefront/internal/repo"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubCustomers struct {
	names map[uint]string
	err   error
}

func (s *stubCustomers) FindByID(ctx context.Context, id uint) (*db.Customer, error) {
	if s.err != nil {
		return nil, s.err
	}
	name, ok := s.names[id]
	if !ok {
		return nil, repo.ErrCustomerNotFound
	}
	return &db.Customer{ID: id, Username: name}, nil
}

func newGateRouter(t *testing.T) (*gin.Engine, *SessionManager) {
	router, sessions, _ := newGateRouterWithCustomers(t)
	return router, sessions
}

func newGateRouterWithCustomers(t *testing.T) (*gin.Engine, *SessionManager, *stubCustomers) {
	gin.SetMode(gin.TestMode)
	sessions := NewSessionManager("test-secret", time.Hour)
	customers := &stubCustomers{names: map[uint]string{7: "reader", 9: "bearer"}}
	gate := NewGate(sessions, customers, false)

	router := gin.New()
	router.GET("/whoami", func(c *gin.Context) {
		id, err := gate.CurrentCustomerID(c)
		if err != nil {
			c.JSON(http.StatusOK, gin.H{"is_login": false})
			return
		}
		name, _ := gate.CurrentUsername(c)
		c.JSON(http.StatusOK, gin.H{"is_login": true, "id": id, "username": name})
	})
	router.GET("/private", gate.RequireCustomer(), func(c *gin.Context) {
		id, err := gate.CurrentCustomerID(c)
		require.NoError(t, err)
		c.JSON(http.StatusOK, gin.H{"id": id})
	})
	router.GET("/login", func(c *gin.Context) {
		token, err := sessions.Issue(7, "reader")
		require.NoError(t, err)
		gate.StartSession(c, token)
		c.Status(http.StatusNoContent)
	})
	router.GET("/logout", func(c *gin.Context) {
		gate.EndSession(c)
		c.Status(http.StatusNoContent)
	})

	return router, sessions, customers
}

func TestRequireCustomerBlocksAnonymous(t *testing.T) {
	router, _ := newGateRouter(t)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/private", nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"error":"login required"}`, w.Body.String())
}

func TestRequireCustomerAcceptsBearerToken(t *testing.T) {
	router, sessions := newGateRouter(t)
	token, err := sessions.Issue(9, "bearer")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/private", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"id":9}`, w.Body.String())
}

func TestRequireCustomerRejectsBadToken(t *testing.T) {
	router, _ := newGateRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/private", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: "forged"})
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestSessionCookieRoundTrip(t *testing.T) {
	router, _ := newGateRouter(t)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/login", nil))
	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, CookieName, cookies[0].Name)
	assert.True(t, cookies[0].HttpOnly)

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.AddCookie(cookies[0])
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.JSONEq(t, `{"is_login":true,"id":7,"username":"reader"}`, w.Body.String())

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/logout", nil))
	cleared := w.Result().Cookies()
	require.Len(t, cleared, 1)
	assert.Empty(t, cleared[0].Value)
	assert.True(t, cleared[0].MaxAge < 0)
}

func TestCurrentCustomerIDAnonymous(t *testing.T) {
	router, _ := newGateRouter(t)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/whoami", nil))
	assert.JSONEq(t, `{"is_login":false}`, w.Body.String())
}

func TestSessionForDeletedCustomerIsAnonymous(t *testing.T) {
	router, sessions, customers := newGateRouterWithCustomers(t)
	token, err := sessions.Issue(7, "reader")
	require.NoError(t, err)
	delete(customers.names, 7)

	req := httptest.NewRequest(http.MethodGet, "/private", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: token})
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"error":"login required"}`, w.Body.String())

	req = httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: token})
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.JSONEq(t, `{"is_login":false}`, w.Body.String())
}

func TestRequireCustomerLookupFailure(t *testing.T) {
	router, sessions, customers := newGateRouterWithCustomers(t)
	token, err := sessions.Issue(7, "reader")
	require.NoError(t, err)
	customers.err = errors.New("database is closed")

	req := httptest.NewRequest(http.MethodGet, "/private", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
