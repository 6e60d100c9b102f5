package httpapi

import (
	"github.com/bookstore/storefront/internal/db"
)

const orderTimeLayout = "2006-01-02 15:04"

type bookView struct {
	ID           uint     `json:"id"`
	Title        string   `json:"title"`
	Author       string   `json:"author"`
	Price        float64  `json:"price"`
	SalePrice    *float64 `json:"sale_price"`
	Publisher    string   `json:"publisher"`
	PubYear      *int     `json:"pub_year"`
	Pages        int      `json:"pages"`
	Language     string   `json:"language"`
	CategoryName string   `json:"category_name"`
	Image        string   `json:"image"`
}

func newBookView(b *db.Book) bookView {
	v := bookView{
		ID:        b.ID,
		Title:     b.Title,
		Author:    b.Author,
		Price:     b.Price.InexactFloat64(),
		Publisher: b.Publisher,
		Pages:     b.Pages,
		Language:  b.Language,
		Image:     b.ImageURL,
	}
	if b.SalePrice.Valid {
		sale := b.SalePrice.Decimal.InexactFloat64()
		v.SalePrice = &sale
	}
	if b.PubDate != nil {
		year := b.PubDate.Year()
		v.PubYear = &year
	}
	if b.Category != nil {
		v.CategoryName = b.Category.Name
	}
	return v
}

func newBookViews(books []*db.Book) []bookView {
	views := make([]bookView, 0, len(books))
	for _, b := range books {
		views = append(views, newBookView(b))
	}
	return views
}

type orderItemView struct {
	BookTitle string  `json:"book_title"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
}

type orderView struct {
	ID          uint            `json:"id"`
	TotalAmount float64         `json:"total_amount"`
	CreatedAt   string          `json:"created_at"`
	Items       []orderItemView `json:"items"`
}

func newOrderView(o *db.Order) orderView {
	v := orderView{
		ID:          o.ID,
		TotalAmount: o.TotalAmount.InexactFloat64(),
		CreatedAt:   o.CreatedAt.UTC().Format(orderTimeLayout),
		Items:       make([]orderItemView, 0, len(o.Items)),
	}
	for _, item := range o.Items {
		line := orderItemView{Quantity: item.Quantity, Price: item.Price.InexactFloat64()}
		if item.Book != nil {
			line.BookTitle = item.Book.Title
		}
		v.Items = append(v.Items, line)
	}
	return v
}
