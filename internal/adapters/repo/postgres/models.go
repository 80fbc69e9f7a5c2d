package postgres

import "github.com/phenrril/kiddocorner/internal/domain"

// Models lista todas las tablas que migra la aplicación
func Models() []any {
	return []any{
		&domain.Product{}, &domain.Image{}, &domain.FeaturedProduct{},
		&domain.Color{}, &domain.Size{}, &domain.Variation{}, &domain.VariationImage{},
		&domain.Order{}, &domain.PaymentMethod{}, &domain.ShippingCost{},
		&domain.Review{}, &domain.Testimonial{}, &domain.FooterSection{},
		&domain.SystemMessage{}, &domain.SiteSetting{}, &domain.Translation{},
		&domain.AdminUser{},
	}
}
