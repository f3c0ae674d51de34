package api

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/ketabino/bookshop/internal/domain/book"
	"github.com/ketabino/bookshop/internal/domain/cart"
	"github.com/ketabino/bookshop/internal/domain/order"
	"github.com/ketabino/bookshop/internal/domain/user"
)

// Wire representations. Domain types carry no JSON tags on purpose; the
// shapes clients see are pinned here.

type bookDTO struct {
	ID              string          `json:"id"`
	Title           string          `json:"title"`
	Author          string          `json:"author"`
	Translator      string          `json:"translator,omitempty"`
	Publisher       string          `json:"publisher,omitempty"`
	ISBN            string          `json:"isbn,omitempty"`
	PublishDate     string          `json:"publishDate,omitempty"`
	Price           decimal.Decimal `json:"price"`
	DiscountPercent int             `json:"discountPercent"`
	Stock           int             `json:"stock"`
	Category        string          `json:"category"`
	Description     string          `json:"description,omitempty"`
	Image           string          `json:"image,omitempty"`
	Pages           int             `json:"pages,omitempty"`
	Language        string          `json:"language,omitempty"`
	Rating          float64         `json:"rating"`
	Slug            string          `json:"slug"`
	Featured        bool            `json:"featured"`
}

func toBookDTO(b *book.Book) bookDTO {
	return bookDTO{
		ID:              b.ID,
		Title:           b.Title,
		Author:          b.Author,
		Translator:      b.Translator,
		Publisher:       b.Publisher,
		ISBN:            b.ISBN,
		PublishDate:     b.PublishDate,
		Price:           b.Price,
		DiscountPercent: b.DiscountPercent,
		Stock:           b.Stock,
		Category:        b.Category,
		Description:     b.Description,
		Image:           b.Image,
		Pages:           b.Pages,
		Language:        b.Language,
		Rating:          b.Rating,
		Slug:            b.Slug,
		Featured:        b.Featured,
	}
}

func (d bookDTO) toDomain() book.Book {
	return book.Book{
		ID:              d.ID,
		Title:           d.Title,
		Author:          d.Author,
		Translator:      d.Translator,
		Publisher:       d.Publisher,
		ISBN:            d.ISBN,
		PublishDate:     d.PublishDate,
		Price:           d.Price,
		DiscountPercent: d.DiscountPercent,
		Stock:           d.Stock,
		Category:        d.Category,
		Description:     d.Description,
		Image:           d.Image,
		Pages:           d.Pages,
		Language:        d.Language,
		Rating:          d.Rating,
		Slug:            d.Slug,
		Featured:        d.Featured,
	}
}

type categoryDTO struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Icon string `json:"icon,omitempty"`
	Slug string `json:"slug"`
}

func toCategoryDTO(c book.Category) categoryDTO {
	return categoryDTO{ID: c.ID, Name: c.Name, Icon: c.Icon, Slug: c.Slug}
}

type orderDTO struct {
	ID              string                `json:"id"`
	UserID          string                `json:"userId"`
	Items           []cart.Item           `json:"items"`
	TotalAmount     decimal.Decimal       `json:"totalAmount"`
	Status          order.Status          `json:"status"`
	CreatedAt       time.Time             `json:"createdAt"`
	PaymentMethod   order.PaymentMethod   `json:"paymentMethod"`
	ReceiptImage    string                `json:"receiptImage,omitempty"`
	AdminNote       string                `json:"adminNote,omitempty"`
	ShippingAddress order.ShippingAddress `json:"shippingAddress"`
}

func toOrderDTO(o *order.Order) orderDTO {
	return orderDTO{
		ID:              o.ID,
		UserID:          o.UserID,
		Items:           o.Items,
		TotalAmount:     o.TotalAmount,
		Status:          o.Status,
		CreatedAt:       o.CreatedAt,
		PaymentMethod:   o.PaymentMethod,
		ReceiptImage:    o.ReceiptImage,
		AdminNote:       o.AdminNote,
		ShippingAddress: o.ShippingAddress,
	}
}

func toOrderDTOs(orders []order.Order) []orderDTO {
	out := make([]orderDTO, len(orders))
	for i := range orders {
		out[i] = toOrderDTO(&orders[i])
	}
	return out
}

// userDTO never carries the password hash.
type userDTO struct {
	ID            string              `json:"id"`
	Name          string              `json:"name"`
	Email         string              `json:"email"`
	Mobile        string              `json:"mobile,omitempty"`
	IsAdmin       bool                `json:"isAdmin"`
	Addresses     []user.Address      `json:"addresses"`
	Favorites     []string            `json:"favorites"`
	Notifications []user.Notification `json:"notifications"`
}

func toUserDTO(u *user.User) userDTO {
	d := userDTO{
		ID:            u.ID,
		Name:          u.Name,
		Email:         u.Email,
		Mobile:        u.Mobile,
		IsAdmin:       u.IsAdmin,
		Addresses:     u.Addresses,
		Favorites:     u.Favorites,
		Notifications: u.Notifications,
	}
	if d.Addresses == nil {
		d.Addresses = []user.Address{}
	}
	if d.Favorites == nil {
		d.Favorites = []string{}
	}
	if d.Notifications == nil {
		d.Notifications = []user.Notification{}
	}
	return d
}
