package domain

import (
	"time"

	"github.com/google/uuid"
)

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusConfirmed OrderStatus = "confirmed"
	OrderStatusShipped   OrderStatus = "shipped"
	OrderStatusCancelled OrderStatus = "cancelled"
)

type Order struct {
	ID         uuid.UUID   `gorm:"type:uuid;primaryKey"`
	Status     OrderStatus `gorm:"type:varchar(30);index"`
	Items      []OrderItem
	Email      string     `gorm:"size:140"`
	Name       string     `gorm:"size:140"`
	Phone      string     `gorm:"size:50"`
	Address    string     `gorm:"size:255"`
	City       string     `gorm:"size:80"`
	PostalCode string     `gorm:"size:20"`
	CustomerID *uuid.UUID `gorm:"type:uuid;index"`
	Total      float64    `gorm:"type:decimal(12,2)"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

type OrderItem struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID   uuid.UUID `gorm:"type:uuid;index"`
	ProductID int64     `gorm:"index"`
	Name      string    `gorm:"size:180"`
	Size      string    `gorm:"size:20"`
	Color     string    `gorm:"size:60"`
	Qty       int       `gorm:"not null"`
	UnitPrice float64   `gorm:"type:decimal(12,2)"`
}
