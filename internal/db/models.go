package db

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Category is a node of the navigation tree. A nil ParentID marks a root.
type Category struct {
	ID       uint      `gorm:"primaryKey" json:"id"`
	Name     string    `gorm:"type:varchar(50);not null" json:"name"`
	ParentID *uint     `gorm:"index:idx_categories_parent" json:"parent_id,omitempty"`
	Parent   *Category `gorm:"constraint:OnDelete:SET NULL" json:"-"`
}

// TableName specifies the table name for Category model
func (Category) TableName() string {
	return "categories"
}

// Book represents a book in the catalog database
type Book struct {
	ID         uint                `gorm:"primaryKey" json:"id"`
	Title      string              `gorm:"type:varchar(200);not null" json:"title"`
	Author     string              `gorm:"type:varchar(100);not null" json:"author"`
	ISBN       *string             `gorm:"type:varchar(20);uniqueIndex:idx_books_isbn" json:"isbn,omitempty"`
	Price      decimal.Decimal     `gorm:"type:decimal(10,2);not null" json:"price"`
	SalePrice  decimal.NullDecimal `gorm:"type:decimal(10,2)" json:"sale_price"`
	// A zero Stock on create takes the column default.
	Stock      int                 `gorm:"not null;default:100;check:chk_books_stock,stock >= 0" json:"stock"`
	SalesCount int                 `gorm:"not null;default:0;index:idx_book_sales" json:"sales_count"`
	Publisher  string              `gorm:"type:varchar(100);index:idx_book_filter,priority:1" json:"publisher,omitempty"`
	PubDate    *time.Time          `gorm:"type:date;index:idx_book_filter,priority:2" json:"pub_date,omitempty"`
	Pages      int                 `json:"pages,omitempty"`
	Language   string              `gorm:"type:varchar(20)" json:"language,omitempty"`
	ImageURL   string              `gorm:"type:varchar(500)" json:"image_url,omitempty"`
	CategoryID uint                `gorm:"not null;index:idx_books_category" json:"category_id"`
	Category   *Category           `gorm:"constraint:OnDelete:RESTRICT" json:"-"`
}

// TableName specifies the table name for Book model
func (Book) TableName() string {
	return "books"
}

// UnitPrice is the price charged per copy: the sale price when one is set,
// otherwise the list price.
func (b *Book) UnitPrice() decimal.Decimal {
	if b.SalePrice.Valid {
		return b.SalePrice.Decimal
	}
	return b.Price
}

// Customer is a registered storefront account.
type Customer struct {
	ID           uint    `gorm:"primaryKey" json:"id"`
	Username     string  `gorm:"type:varchar(80);not null;uniqueIndex:idx_customers_username" json:"username"`
	Email        *string `gorm:"type:varchar(120);uniqueIndex:idx_customers_email" json:"email,omitempty"`
	PasswordHash string  `gorm:"type:varchar(128)" json:"-"`
}

// TableName specifies the table name for Customer model
func (Customer) TableName() string {
	return "customers"
}

// Order is a placed order. CustomerID becomes NULL when the customer is
// deleted; the order itself is kept.
type Order struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	CustomerID  *uint           `gorm:"index:idx_orders_customer" json:"customer_id,omitempty"`
	Customer    *Customer       `gorm:"constraint:OnDelete:SET NULL" json:"-"`
	TotalAmount decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"total_amount"`
	CreatedAt   time.Time       `gorm:"not null" json:"created_at"`
	Items       []OrderItem     `gorm:"constraint:OnDelete:CASCADE" json:"items,omitempty"`
}

// TableName specifies the table name for Order model
func (Order) TableName() string {
	return "orders"
}

// BeforeCreate hook to set the creation timestamp in UTC
func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.CreatedAt.IsZero() {
		o.CreatedAt = time.Now().UTC()
	}
	return nil
}

// OrderItem is one line of an order. Price is the unit price frozen at
// order time.
type OrderItem struct {
	ID       uint            `gorm:"primaryKey" json:"id"`
	OrderID  uint            `gorm:"not null;index:idx_order_items_order" json:"order_id"`
	BookID   uint            `gorm:"not null;index:idx_order_items_book" json:"book_id"`
	Book     *Book           `gorm:"constraint:OnDelete:RESTRICT" json:"-"`
	Quantity int             `gorm:"not null" json:"quantity"`
	Price    decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
}

// TableName specifies the table name for OrderItem model
func (OrderItem) TableName() string {
	return "order_items"
}

// LineTotal is the unit price times the quantity.
func (i *OrderItem) LineTotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}
