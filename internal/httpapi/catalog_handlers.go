package httpapi

import (
	"net/http"
	"strconv"

	"github.com/bookstore/storefront/internal/repo"
	"github.com/gin-gonic/gin"
)

const rankingSize = 10

func (h *Handler) listBooks(c *gin.Context) {
	filter := repo.BookFilter{
		Page:       queryInt(c, "page", 1),
		PageSize:   repo.DefaultPageSize,
		CategoryID: uint(queryInt(c, "cat_id", 0)),
		Keyword:    c.Query("keyword"),
		Publisher:  c.Query("publisher"),
		Year:       queryInt(c, "year", 0),
	}
	if filter.Page < 1 {
		filter.Page = 1
	}

	books, total, err := h.catalog.ListBooks(c.Request.Context(), filter)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"books":        newBookViews(books),
		"total_pages":  repo.TotalPages(total, filter.PageSize),
		"current_page": filter.Page,
		"total_items":  total,
	})
}

// queryInt reads an integer query parameter. Missing or malformed values
// yield def.
func queryInt(c *gin.Context, key string, def int) int {
	raw := c.Query(key)
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return def
	}
	return v
}

func (h *Handler) filters(c *gin.Context) {
	publishers, err := h.catalog.ListPublishers(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	if publishers == nil {
		publishers = []string{}
	}
	c.JSON(http.StatusOK, gin.H{"publishers": publishers})
}

func (h *Handler) rankings(c *gin.Context) {
	books, err := h.catalog.TopSellers(c.Request.Context(), rankingSize)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, newBookViews(books))
}

func (h *Handler) categoryTree(c *gin.Context) {
	forest, err := h.categories.Tree(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, forest)
}
