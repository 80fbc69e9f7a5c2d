package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/phenrril/kiddocorner/internal/domain"
)

type ContentRepo struct{ db *gorm.DB }

func NewContentRepo(db *gorm.DB) *ContentRepo { return &ContentRepo{db: db} }

func first[T any](db *gorm.DB, id uuid.UUID) (*T, error) {
	var v T
	if err := db.First(&v, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &v, nil
}

func deleteByID[T any](db *gorm.DB, id uuid.UUID) error {
	res := db.Delete(new(T), "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// --- Reseñas ---

func (r *ContentRepo) ListReviews(ctx context.Context, approvedOnly, featuredOnly bool) ([]domain.Review, error) {
	list := []domain.Review{}
	q := r.db.WithContext(ctx).Order("created_at desc")
	if approvedOnly {
		q = q.Where("approved = ?", true)
	}
	if featuredOnly {
		q = q.Where("featured = ?", true)
	}
	if err := q.Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *ContentRepo) SaveReview(ctx context.Context, rv *domain.Review) error {
	return r.db.WithContext(ctx).Save(rv).Error
}

func (r *ContentRepo) FindReview(ctx context.Context, id uuid.UUID) (*domain.Review, error) {
	return first[domain.Review](r.db.WithContext(ctx), id)
}

func (r *ContentRepo) DeleteReview(ctx context.Context, id uuid.UUID) error {
	return deleteByID[domain.Review](r.db.WithContext(ctx), id)
}

func (r *ContentRepo) CountPendingReviews(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&domain.Review{}).Where("approved = ?", false).Count(&n).Error
	return n, err
}

// --- Testimonios ---

func (r *ContentRepo) ListTestimonials(ctx context.Context, featuredOnly bool) ([]domain.Testimonial, error) {
	list := []domain.Testimonial{}
	q := r.db.WithContext(ctx).Order("created_at desc")
	if featuredOnly {
		q = q.Where("featured = ?", true)
	}
	if err := q.Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *ContentRepo) FindTestimonial(ctx context.Context, id uuid.UUID) (*domain.Testimonial, error) {
	return first[domain.Testimonial](r.db.WithContext(ctx), id)
}

func (r *ContentRepo) SaveTestimonial(ctx context.Context, t *domain.Testimonial) error {
	return r.db.WithContext(ctx).Save(t).Error
}

func (r *ContentRepo) DeleteTestimonial(ctx context.Context, id uuid.UUID) error {
	return deleteByID[domain.Testimonial](r.db.WithContext(ctx), id)
}

// --- Footer ---

func (r *ContentRepo) ListFooter(ctx context.Context, activeOnly bool) ([]domain.FooterSection, error) {
	list := []domain.FooterSection{}
	q := r.db.WithContext(ctx).Order("display_order asc")
	if activeOnly {
		q = q.Where("active = ?", true)
	}
	if err := q.Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *ContentRepo) FindFooter(ctx context.Context, id uuid.UUID) (*domain.FooterSection, error) {
	return first[domain.FooterSection](r.db.WithContext(ctx), id)
}

func (r *ContentRepo) SaveFooter(ctx context.Context, s *domain.FooterSection) error {
	return r.db.WithContext(ctx).Save(s).Error
}

func (r *ContentRepo) DeleteFooter(ctx context.Context, id uuid.UUID) error {
	return deleteByID[domain.FooterSection](r.db.WithContext(ctx), id)
}

// ReorderFooter asigna a cada sección su posición en ids como display_order
func (r *ContentRepo) ReorderFooter(ctx context.Context, ids []uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i, id := range ids {
			res := tx.Model(&domain.FooterSection{}).Where("id = ?", id).Update("display_order", i)
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return domain.ErrNotFound
			}
		}
		return nil
	})
}

// --- Mensajes del sistema ---

func (r *ContentRepo) ListMessages(ctx context.Context) ([]domain.SystemMessage, error) {
	list := []domain.SystemMessage{}
	if err := r.db.WithContext(ctx).Order("key asc").Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *ContentRepo) UpsertMessage(ctx context.Context, key, content string) error {
	m := domain.SystemMessage{ID: uuid.New(), Key: key, Content: content, UpdatedAt: time.Now()}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"content", "updated_at"}),
	}).Create(&m).Error
}

type SettingsRepo struct{ db *gorm.DB }

func NewSettingsRepo(db *gorm.DB) *SettingsRepo { return &SettingsRepo{db: db} }

func (r *SettingsRepo) All(ctx context.Context) (map[string]string, error) {
	var rows []domain.SiteSetting
	if err := r.db.WithContext(ctx).Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make(map[string]string, len(rows))
	for _, s := range rows {
		out[s.Key] = s.Value
	}
	return out, nil
}

func (r *SettingsRepo) Get(ctx context.Context, key string) (string, error) {
	var s domain.SiteSetting
	if err := r.db.WithContext(ctx).First(&s, "key = ?", key).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", domain.ErrNotFound
		}
		return "", err
	}
	return s.Value, nil
}

func (r *SettingsRepo) Set(ctx context.Context, values map[string]string) error {
	if len(values) == 0 {
		return nil
	}
	now := time.Now()
	rows := make([]domain.SiteSetting, 0, len(values))
	for k, v := range values {
		rows = append(rows, domain.SiteSetting{Key: k, Value: v, UpdatedAt: now})
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&rows).Error
}

func (r *SettingsRepo) Translations(ctx context.Context) ([]domain.Translation, error) {
	list := []domain.Translation{}
	if err := r.db.WithContext(ctx).Order("key asc").Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *SettingsRepo) UpsertTranslation(ctx context.Context, t *domain.Translation) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	t.UpdatedAt = time.Now()
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"english", "bangla", "updated_at"}),
	}).Create(t).Error
}
