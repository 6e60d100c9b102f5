package httpapi

import (
	"errors"
	"net/http"

	"github.com/bookstore/storefront/internal/auth"
	"github.com/gin-gonic/gin"
)

type credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Email    string `json:"email"`
}

func (h *Handler) register(c *gin.Context) {
	var req credentials
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if _, err := h.accounts.Register(c.Request.Context(), req.Username, req.Password, req.Email); err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"msg": "OK"})
}

func (h *Handler) login(c *gin.Context) {
	var req credentials
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	customer, token, err := h.accounts.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		h.fail(c, err)
		return
	}

	h.gate.StartSession(c, token)
	c.JSON(http.StatusOK, gin.H{"msg": "login successful", "user": customer.Username, "token": token})
}

func (h *Handler) logout(c *gin.Context) {
	h.gate.EndSession(c)
	c.JSON(http.StatusOK, gin.H{"msg": "OK"})
}

func (h *Handler) userInfo(c *gin.Context) {
	username, err := h.gate.CurrentUsername(c)
	if errors.Is(err, auth.ErrUnauthenticated) {
		c.JSON(http.StatusOK, gin.H{"is_login": false})
		return
	}
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"is_login": true, "username": username})
}
