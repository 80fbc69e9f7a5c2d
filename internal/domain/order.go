package domain

import (
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/google/uuid"
)

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusApproved  OrderStatus = "approved"
	OrderStatusDeclined  OrderStatus = "declined"
	OrderStatusCompleted OrderStatus = "completed"
)

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusApproved, OrderStatusDeclined, OrderStatusCompleted:
		return true
	}
	return false
}

type Order struct {
	ID               uuid.UUID   `gorm:"type:uuid;primaryKey" json:"id"`
	OrderNumber      string      `gorm:"size:30;uniqueIndex" json:"order_number"`
	Status           OrderStatus `gorm:"type:varchar(20);index" json:"status"`
	CustomerName     string      `gorm:"size:140" json:"customer_name"`
	CustomerPhone    string      `gorm:"size:50" json:"customer_phone"`
	CustomerAddress  string      `gorm:"size:255" json:"customer_address"`
	CustomerNote     string      `gorm:"type:text" json:"customer_note"`
	ProductID        uuid.UUID   `gorm:"type:uuid;index" json:"product_id"`
	VariationID      *uuid.UUID  `gorm:"type:uuid;index" json:"variation_id"`
	Quantity         int         `gorm:"not null" json:"quantity"`
	UnitPrice        float64     `gorm:"type:decimal(12,2)" json:"unit_price"`
	ShippingLocation string      `gorm:"size:40" json:"shipping_location"`
	ShippingCost     float64     `gorm:"type:decimal(12,2)" json:"shipping_cost"`
	TotalAmount      float64     `gorm:"type:decimal(12,2)" json:"total_amount"`
	PaymentMethodID  *uuid.UUID  `gorm:"type:uuid;index" json:"payment_method_id"`
	TransactionID    string      `gorm:"size:80" json:"transaction_id"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// OrderDetails es la orden con los datos que el admin necesita para leerla
type OrderDetails struct {
	Order
	ProductName   string         `json:"product_name"`
	ProductSlug   string         `json:"product_slug"`
	ColorName     string         `json:"color_name,omitempty"`
	SizeName      string         `json:"size_name,omitempty"`
	PaymentMethod *PaymentMethod `json:"payment_method,omitempty"`
}

type OrderFilter struct {
	Status   OrderStatus
	Page     int
	PageSize int
}

// OrderTotal es precio unitario por cantidad más envío, redondeado a centavos
func OrderTotal(unitPrice float64, qty int, shipping float64) float64 {
	return math.Round((unitPrice*float64(qty)+shipping)*100) / 100
}

// NewOrderNumber arma "ORD-" + los últimos seis dígitos del reloj unix en
// milisegundos + cuatro dígitos aleatorios
func NewOrderNumber(now time.Time, random int) string {
	ts := strconv.FormatInt(now.UnixMilli(), 10)
	if len(ts) > 6 {
		ts = ts[len(ts)-6:]
	}
	return fmt.Sprintf("ORD-%s%04d", ts, random%10000)
}

type PaymentType string

const (
	PaymentCOD           PaymentType = "cod"
	PaymentMobileBanking PaymentType = "mobile_banking"
)

func (t PaymentType) Valid() bool {
	return t == PaymentCOD || t == PaymentMobileBanking
}

type PaymentMethod struct {
	ID           uuid.UUID         `gorm:"type:uuid;primaryKey" json:"id"`
	Name         string            `gorm:"size:80" json:"name"`
	Type         PaymentType       `gorm:"type:varchar(20)" json:"type"`
	Details      map[string]string `gorm:"type:jsonb;serializer:json" json:"details"`
	Instructions string            `gorm:"type:text" json:"instructions"`
	Active       bool              `gorm:"index" json:"active"`
	DisplayOrder int               `gorm:"default:0" json:"display_order"`
	CreatedAt    time.Time         `json:"created_at"`
	UpdatedAt    time.Time         `json:"updated_at"`
}

const (
	ShippingInsideDhaka  = "inside_dhaka"
	ShippingOutsideDhaka = "outside_dhaka"
)

type ShippingCost struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	LocationKey  string    `gorm:"size:40;uniqueIndex" json:"location_key"`
	LocationName string    `gorm:"size:80" json:"location_name"`
	Cost         float64   `gorm:"type:decimal(12,2)" json:"cost"`
	DisplayOrder int       `gorm:"default:0" json:"display_order"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// DefaultShippingCosts se usan para cargar la tabla vacía y como fallback
// cuando la base no responde
func DefaultShippingCosts() []ShippingCost {
	return []ShippingCost{
		{LocationKey: ShippingInsideDhaka, LocationName: "Inside Dhaka", Cost: 80, DisplayOrder: 0},
		{LocationKey: ShippingOutsideDhaka, LocationName: "Outside Dhaka", Cost: 130, DisplayOrder: 1},
	}
}

func DefaultShippingCost(key string) (ShippingCost, bool) {
	for _, s := range DefaultShippingCosts() {
		if s.LocationKey == key {
			return s, true
		}
	}
	return ShippingCost{}, false
}
