package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID           string `gorm:"primaryKey;type:varchar(36)"     json:"id"`
	Username     string `gorm:"uniqueIndex;size:80;not null"    json:"username"`
	Email        string `gorm:"uniqueIndex;size:120;not null"   json:"email"`
	PasswordHash string `gorm:"not null"                        json:"-"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}

type Rating struct {
	Rate  float64 `json:"rate"`
	Count int     `json:"count"`
}

// Product is keyed by the feed's own identifier, so a refresh overwrites in place.
type Product struct {
	ID          string  `gorm:"primaryKey;type:varchar(100)"             json:"id"`
	Title       string  `gorm:"size:255;not null"                        json:"title"`
	Category    string  `gorm:"size:100"                                 json:"category"`
	Description string  `gorm:"type:text"                                json:"description"`
	Price       float64 `json:"price"`
	RentPrice   float64 `gorm:"column:rentprice"                         json:"rentprice"`
	Size        string  `gorm:"size:50"                                  json:"size"`
	Image       string  `gorm:"size:255"                                 json:"image"`
	Rating      Rating  `gorm:"embedded;embeddedPrefix:rating_"          json:"rating"`
}

type CartItem struct {
	ID        string    `gorm:"primaryKey;type:varchar(36)"                                  json:"id"`
	UserID    string    `gorm:"type:varchar(36);not null;uniqueIndex:idx_cart_user_product"  json:"user_id"`
	ProductID string    `gorm:"type:varchar(100);not null;uniqueIndex:idx_cart_user_product" json:"product_id"`
	Quantity  int       `gorm:"not null;default:1;check:quantity>0"                          json:"quantity"`
	AddedAt   time.Time `gorm:"autoCreateTime"                                               json:"added_at"`

	User    *User    `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Product *Product `gorm:"foreignKey:ProductID"                          json:"-"`
}

func (c *CartItem) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}

func (CartItem) TableName() string {
	return "cart_items"
}

type ProductSnapshot struct {
	ID    string  `json:"id"`
	Title string  `json:"title"`
	Price float64 `json:"price"`
	Image string  `json:"image"`
}

// CartLine is a cart item joined with its product. Product is nil and Available
// false when the referenced product no longer exists.
type CartLine struct {
	ID        string           `json:"id"`
	ProductID string           `json:"product_id"`
	Quantity  int              `json:"quantity"`
	AddedAt   time.Time        `json:"added_at"`
	Available bool             `json:"available"`
	Product   *ProductSnapshot `json:"product,omitempty"`
}

type ProductPage struct {
	Items     []Product `json:"products"`
	Total     int64     `json:"total"`
	PageCount int       `json:"pages"`
	Page      int       `json:"current_page"`
	PageSize  int       `json:"per_page"`
}
