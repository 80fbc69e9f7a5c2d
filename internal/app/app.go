package app

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"gorm.io/gorm"

	"github.com/phenrril/kiddocorner/internal/adapters/httpserver"
	"github.com/phenrril/kiddocorner/internal/adapters/repo/postgres"
	"github.com/phenrril/kiddocorner/internal/adapters/storage/cloudinarystore"
	"github.com/phenrril/kiddocorner/internal/adapters/storage/localfs"
	"github.com/phenrril/kiddocorner/internal/adapters/storage/s3store"
	"github.com/phenrril/kiddocorner/internal/config"
	"github.com/phenrril/kiddocorner/internal/domain"
	"github.com/phenrril/kiddocorner/internal/i18n"
	"github.com/phenrril/kiddocorner/internal/usecase"
)

type App struct {
	DB     *gorm.DB
	Config config.Config

	ProductUC    *usecase.ProductUC
	AttributesUC *usecase.AttributesUC
	OrderUC      *usecase.OrderUC
	ContentUC    *usecase.ContentUC
	DashboardUC  *usecase.DashboardUC
	AuthUC       *usecase.AuthUC

	Storage     domain.FileStorage
	OAuthConfig *oauth2.Config
	Metrics     *httpserver.Metrics
}

func NewApp(ctx context.Context, db *gorm.DB, cfg config.Config) (*App, error) {
	store, err := newStorage(ctx, cfg)
	if err != nil {
		return nil, err
	}

	prodRepo := postgres.NewProductRepo(db)
	attrRepo := postgres.NewAttributeRepo(db)
	orderRepo := postgres.NewOrderRepo(db)
	contentRepo := postgres.NewContentRepo(db)
	settingsRepo := postgres.NewSettingsRepo(db)

	var oauthCfg *oauth2.Config
	if cfg.GoogleEnabled() {
		oauthCfg = &oauth2.Config{
			ClientID:     cfg.GoogleClientID,
			ClientSecret: cfg.GoogleClientSecret,
			RedirectURL:  cfg.BaseURL + "/admin/google/callback",
			Scopes:       []string{"openid", "email", "profile"},
			Endpoint:     google.Endpoint,
		}
	}

	metrics := httpserver.NewMetrics()
	a := &App{DB: db, Config: cfg, Storage: store, OAuthConfig: oauthCfg, Metrics: metrics}
	a.ProductUC = &usecase.ProductUC{
		Products: prodRepo,
		Featured: postgres.NewFeaturedProductRepo(db),
		Attrs:    attrRepo,
	}
	a.AttributesUC = &usecase.AttributesUC{
		Attrs:       attrRepo,
		Products:    prodRepo,
		Storage:     store,
		Concurrency: cfg.UploadConcurrency,
		OnSaved: func(id uuid.UUID) {
			log.Info().Str("product", id.String()).Msg("attributes saved")
		},
		OnUpload: metrics.ObserveUpload,
	}
	a.OrderUC = &usecase.OrderUC{
		Orders:   orderRepo,
		Products: prodRepo,
		Attrs:    attrRepo,
		Shipping: postgres.NewShippingRepo(db),
		Payments: postgres.NewPaymentMethodRepo(db),
	}
	a.ContentUC = &usecase.ContentUC{
		Content:     contentRepo,
		Settings:    settingsRepo,
		Translator:  i18n.New(),
		Products:    prodRepo,
		DefaultLang: i18n.Lang(cfg.DefaultLanguage),
	}
	a.DashboardUC = &usecase.DashboardUC{Products: prodRepo, Orders: orderRepo, Content: contentRepo}
	a.AuthUC = &usecase.AuthUC{Admins: postgres.NewAdminRepo(db), Secret: []byte(cfg.AdminSecret)}
	return a, nil
}

func newStorage(ctx context.Context, cfg config.Config) (domain.FileStorage, error) {
	switch cfg.StorageDriver {
	case "", "local":
		return localfs.New(cfg.StorageDir, cfg.StorageURL), nil
	case "s3":
		return s3store.New(ctx, cfg.S3)
	case "cloudinary":
		return cloudinarystore.New(cfg.CloudinaryURL, "kiddocorner")
	}
	return nil, fmt.Errorf("unknown STORAGE_DRIVER %q", cfg.StorageDriver)
}

func (a *App) HTTPHandler() http.Handler {
	d := httpserver.Deps{
		Products:      a.ProductUC,
		Attributes:    a.AttributesUC,
		Orders:        a.OrderUC,
		Content:       a.ContentUC,
		Dashboard:     a.DashboardUC,
		Auth:          a.AuthUC,
		Storage:       a.Storage,
		OAuth:         a.OAuthConfig,
		Metrics:       a.Metrics,
		PublicRPS:     a.Config.RateLimitRPS,
		SecureCookies: a.Config.Production() || strings.HasPrefix(a.Config.BaseURL, "https://"),
	}
	if _, ok := a.Storage.(*localfs.Store); ok {
		d.UploadsDir, d.UploadsURL = a.Config.StorageDir, a.Config.StorageURL
	}
	return httpserver.New(d)
}

var defaultMessages = map[string]string{
	"checkout.success":          "Thank you! Your order has been placed. We will call you to confirm.",
	"checkout.cod_instructions": "Please keep the exact amount ready when the parcel arrives.",
}

// MigrateAndSeed crea el esquema y carga las filas que la tienda espera
// encontrar. Nunca pisa filas existentes.
func (a *App) MigrateAndSeed(ctx context.Context) error {
	db := a.DB.WithContext(ctx)
	if err := db.AutoMigrate(postgres.Models()...); err != nil {
		return err
	}

	_ = db.Exec("CREATE INDEX IF NOT EXISTS idx_product_colors_order ON product_colors (product_id, display_order)").Error
	_ = db.Exec("CREATE INDEX IF NOT EXISTS idx_product_sizes_order ON product_sizes (product_id, display_order)").Error
	_ = db.Exec("CREATE INDEX IF NOT EXISTS idx_product_variations_order ON product_variations (product_id, display_order)").Error
	_ = db.Exec("CREATE INDEX IF NOT EXISTS idx_variation_images_order ON product_variation_images (variation_id, display_order)").Error
	_ = db.Exec("CREATE INDEX IF NOT EXISTS idx_orders_created_at ON orders (created_at)").Error

	if err := backfillSlugs(db); err != nil {
		return err
	}
	if err := a.OrderUC.Shipping.Seed(ctx, domain.DefaultShippingCosts()); err != nil {
		return err
	}
	if err := seedPaymentMethods(ctx, a.OrderUC); err != nil {
		return err
	}
	if err := seedMessages(ctx, a.ContentUC); err != nil {
		return err
	}
	if err := a.ContentUC.ReloadTranslations(ctx); err != nil {
		log.Warn().Err(err).Msg("load translations")
	}
	return nil
}

func seedPaymentMethods(ctx context.Context, uc *usecase.OrderUC) error {
	list, err := uc.PaymentMethods(ctx, false)
	if err != nil || len(list) > 0 {
		return err
	}
	return uc.SavePaymentMethod(ctx, &domain.PaymentMethod{
		Name:         "Cash on Delivery",
		Type:         domain.PaymentCOD,
		Instructions: "Pay the delivery agent when you receive your order.",
		Active:       true,
	})
}

func seedMessages(ctx context.Context, uc *usecase.ContentUC) error {
	list, err := uc.Messages(ctx)
	if err != nil {
		return err
	}
	have := map[string]bool{}
	for _, m := range list {
		have[m.Key] = true
	}
	for k, v := range defaultMessages {
		if have[k] {
			continue
		}
		if err := uc.UpdateMessage(ctx, k, v); err != nil {
			return err
		}
	}
	return nil
}

// backfillSlugs asigna un slug único a los productos importados sin slug
func backfillSlugs(db *gorm.DB) error {
	var products []domain.Product
	if err := db.Where("slug IS NULL OR slug = ''").Find(&products).Error; err != nil {
		return err
	}
	for _, p := range products {
		base := usecase.Slugify(p.Name)
		if base == "" {
			base = p.ID.String()[:8]
		}
		slug := base

		var count int64
		i := 1
		for {
			if err := db.Model(&domain.Product{}).Where("slug = ?", slug).Count(&count).Error; err != nil {
				return err
			}
			if count == 0 {
				break
			}
			i++
			slug = fmt.Sprintf("%s-%d", base, i)
		}
		if err := db.Model(&domain.Product{}).Where("id = ?", p.ID).Update("slug", slug).Error; err != nil {
			return err
		}
	}
	return nil
}
