package usecase

import (
	"context"
	"errors"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/phenrril/kiddocorner/internal/domain"
)

type OrderUC struct {
	Orders   domain.OrderRepo
	Products domain.ProductRepo
	Attrs    domain.AttributeRepo
	Shipping domain.ShippingRepo
	Payments domain.PaymentMethodRepo

	Now  func() time.Time
	Rand func() int
}

type CheckoutInput struct {
	ProductID        uuid.UUID  `json:"product_id"`
	VariationID      *uuid.UUID `json:"variation_id"`
	Quantity         int        `json:"quantity"`
	CustomerName     string     `json:"customer_name"`
	CustomerPhone    string     `json:"customer_phone"`
	CustomerAddress  string     `json:"customer_address"`
	CustomerNote     string     `json:"customer_note"`
	ShippingLocation string     `json:"shipping_location"`
	PaymentMethodID  uuid.UUID  `json:"payment_method_id"`
	TransactionID    string     `json:"transaction_id"`
}

func (uc *OrderUC) now() time.Time {
	if uc.Now != nil {
		return uc.Now()
	}
	return time.Now()
}

func (uc *OrderUC) random() int {
	if uc.Rand != nil {
		return uc.Rand()
	}
	return rand.IntN(10000)
}

// Checkout places a pending order for one product, or one of its variations.
func (uc *OrderUC) Checkout(ctx context.Context, in CheckoutInput) (*domain.Order, error) {
	in.CustomerName = strings.TrimSpace(in.CustomerName)
	in.CustomerPhone = strings.TrimSpace(in.CustomerPhone)
	in.CustomerAddress = strings.TrimSpace(in.CustomerAddress)
	switch {
	case in.CustomerName == "":
		return nil, domain.Invalid("Please enter your name")
	case in.CustomerPhone == "":
		return nil, domain.Invalid("Please enter your phone number")
	case in.CustomerAddress == "":
		return nil, domain.Invalid("Please enter your address")
	case in.Quantity < 1:
		return nil, domain.Invalid("Quantity must be at least 1")
	}

	p, err := uc.Products.FindByID(ctx, in.ProductID)
	if err != nil {
		return nil, err
	}
	if !p.Active {
		return nil, domain.ErrNotFound
	}
	unit := p.EffectivePrice()

	vars, err := uc.Attrs.ListVariations(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	if len(vars) > 0 {
		if in.VariationID == nil {
			return nil, domain.Invalid("Please select a variation")
		}
		var picked *domain.Variation
		for i := range vars {
			if vars[i].ID == *in.VariationID {
				picked = &vars[i]
				break
			}
		}
		if picked == nil {
			return nil, domain.Invalid("The selected variation does not belong to this product")
		}
		if in.Quantity > picked.Stock {
			return nil, domain.Invalid("Only %d left in stock", picked.Stock)
		}
		unit = picked.EffectivePrice()
	} else {
		in.VariationID = nil
	}

	ship, err := uc.ShippingCost(ctx, in.ShippingLocation)
	if err != nil {
		return nil, err
	}

	pm, err := uc.Payments.FindByID(ctx, in.PaymentMethodID)
	if errors.Is(err, domain.ErrNotFound) || (err == nil && !pm.Active) {
		return nil, domain.Invalid("Please choose a payment method")
	}
	if err != nil {
		return nil, err
	}
	in.TransactionID = strings.TrimSpace(in.TransactionID)
	if pm.Type == domain.PaymentMobileBanking && in.TransactionID == "" {
		return nil, domain.Invalid("Please enter the transaction ID of your payment")
	}

	now := uc.now()
	o := &domain.Order{
		ID:               uuid.New(),
		OrderNumber:      domain.NewOrderNumber(now, uc.random()),
		Status:           domain.OrderStatusPending,
		CustomerName:     in.CustomerName,
		CustomerPhone:    in.CustomerPhone,
		CustomerAddress:  in.CustomerAddress,
		CustomerNote:     strings.TrimSpace(in.CustomerNote),
		ProductID:        p.ID,
		VariationID:      in.VariationID,
		Quantity:         in.Quantity,
		UnitPrice:        unit,
		ShippingLocation: ship.LocationKey,
		ShippingCost:     ship.Cost,
		TotalAmount:      domain.OrderTotal(unit, in.Quantity, ship.Cost),
		PaymentMethodID:  &pm.ID,
		TransactionID:    in.TransactionID,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := uc.Orders.Create(ctx, o); err != nil {
		log.Error().Err(err).Str("product", p.ID.String()).Msg("create order")
		return nil, domain.Persistence("create order", err)
	}
	return o, nil
}

func (uc *OrderUC) List(ctx context.Context, f domain.OrderFilter) ([]domain.OrderDetails, int64, error) {
	if f.Status != "" && !f.Status.Valid() {
		return nil, 0, domain.Invalid("unknown order status %q", f.Status)
	}
	return uc.Orders.List(ctx, f)
}

func (uc *OrderUC) Get(ctx context.Context, id uuid.UUID) (*domain.OrderDetails, error) {
	return uc.Orders.FindByID(ctx, id)
}

func (uc *OrderUC) UpdateStatus(ctx context.Context, id uuid.UUID, s domain.OrderStatus) error {
	if !s.Valid() {
		return domain.Invalid("unknown order status %q", s)
	}
	return uc.Orders.UpdateStatus(ctx, id, s)
}

// --- shipping ---

// ShippingCosts seeds the defaults into an empty table and serves them when
// storage cannot be read.
func (uc *OrderUC) ShippingCosts(ctx context.Context) []domain.ShippingCost {
	list, err := uc.Shipping.List(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("shipping costs, using defaults")
		return domain.DefaultShippingCosts()
	}
	if len(list) == 0 {
		if err := uc.Shipping.Seed(ctx, domain.DefaultShippingCosts()); err != nil {
			log.Warn().Err(err).Msg("seed shipping costs")
		}
		return domain.DefaultShippingCosts()
	}
	return list
}

func (uc *OrderUC) ShippingCost(ctx context.Context, key string) (domain.ShippingCost, error) {
	key = strings.TrimSpace(key)
	s, err := uc.Shipping.FindByKey(ctx, key)
	if err == nil {
		return *s, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		log.Warn().Err(err).Str("location", key).Msg("shipping cost, using default")
	}
	if d, ok := domain.DefaultShippingCost(key); ok {
		return d, nil
	}
	return domain.ShippingCost{}, domain.Invalid("Please choose a shipping location")
}

func (uc *OrderUC) UpdateShipping(ctx context.Context, key string, cost float64) error {
	if cost < 0 {
		return domain.Invalid("Shipping cost cannot be negative")
	}
	err := uc.Shipping.UpdateCost(ctx, key, cost)
	if errors.Is(err, domain.ErrNotFound) {
		if d, ok := domain.DefaultShippingCost(key); ok {
			if err := uc.Shipping.Seed(ctx, []domain.ShippingCost{d}); err != nil {
				return err
			}
			return uc.Shipping.UpdateCost(ctx, key, cost)
		}
	}
	return err
}

// --- payment methods ---

func (uc *OrderUC) PaymentMethods(ctx context.Context, activeOnly bool) ([]domain.PaymentMethod, error) {
	return uc.Payments.List(ctx, activeOnly)
}

func (uc *OrderUC) SavePaymentMethod(ctx context.Context, m *domain.PaymentMethod) error {
	m.Name = strings.TrimSpace(m.Name)
	if m.Name == "" {
		return domain.Invalid("Payment method needs a name")
	}
	if !m.Type.Valid() {
		return domain.Invalid("Payment method type must be cod or mobile_banking")
	}
	if m.Details == nil {
		m.Details = map[string]string{}
	}
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
		m.CreatedAt = time.Now()
	} else {
		cur, err := uc.Payments.FindByID(ctx, m.ID)
		if err != nil {
			return err
		}
		m.CreatedAt = cur.CreatedAt
	}
	m.UpdatedAt = time.Now()
	return uc.Payments.Save(ctx, m)
}

func (uc *OrderUC) DeletePaymentMethod(ctx context.Context, id uuid.UUID) error {
	if _, err := uc.Payments.FindByID(ctx, id); err != nil {
		return err
	}
	return uc.Payments.Delete(ctx, id)
}
