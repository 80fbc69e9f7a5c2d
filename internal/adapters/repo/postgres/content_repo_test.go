package postgres

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phenrril/kiddocorner/internal/domain"
)

func TestReviewsAndTestimonials(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := NewContentRepo(db)

	pending := &domain.Review{ID: uuid.New(), Name: "Rina", Rating: 5, Comment: "Lovely"}
	approved := &domain.Review{ID: uuid.New(), Name: "Sami", Rating: 4, Approved: true, Featured: true}
	require.NoError(t, repo.SaveReview(ctx, pending))
	require.NoError(t, repo.SaveReview(ctx, approved))

	n, err := repo.CountPendingReviews(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	list, err := repo.ListReviews(ctx, true, true)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Sami", list[0].Name)

	require.NoError(t, repo.DeleteReview(ctx, pending.ID))
	assert.ErrorIs(t, repo.DeleteReview(ctx, pending.ID), domain.ErrNotFound)
	_, err = repo.FindReview(ctx, pending.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	tm := &domain.Testimonial{ID: uuid.New(), Name: "Mitu", Content: "Great store", Rating: 5, Featured: true}
	require.NoError(t, repo.SaveTestimonial(ctx, tm))
	ts, err := repo.ListTestimonials(ctx, true)
	require.NoError(t, err)
	assert.Len(t, ts, 1)
	got, err := repo.FindTestimonial(ctx, tm.ID)
	require.NoError(t, err)
	assert.Equal(t, "Great store", got.Content)
	require.NoError(t, repo.DeleteTestimonial(ctx, tm.ID))
}

func TestFooterReorder(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := NewContentRepo(db)

	about := &domain.FooterSection{ID: uuid.New(), Title: "About", Active: true, DisplayOrder: 0}
	require.NoError(t, about.SetContent(domain.AboutSection{Text: "Kids first"}))
	social := &domain.FooterSection{ID: uuid.New(), Title: "Follow", Active: false, DisplayOrder: 1}
	require.NoError(t, social.SetContent(domain.SocialSection{Links: []domain.FooterLink{{Title: "fb", URL: "https://facebook.com/kc", Icon: "facebook"}}}))
	require.NoError(t, repo.SaveFooter(ctx, about))
	require.NoError(t, repo.SaveFooter(ctx, social))

	active, err := repo.ListFooter(ctx, true)
	require.NoError(t, err)
	assert.Len(t, active, 1)

	require.NoError(t, repo.ReorderFooter(ctx, []uuid.UUID{social.ID, about.ID}))
	all, err := repo.ListFooter(ctx, false)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, social.ID, all[0].ID)
	body, err := all[0].Decode()
	require.NoError(t, err)
	assert.Equal(t, "facebook", body.(domain.SocialSection).Links[0].Icon)

	assert.ErrorIs(t, repo.ReorderFooter(ctx, []uuid.UUID{uuid.New()}), domain.ErrNotFound)
}

func TestMessagesSettingsTranslations(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	content := NewContentRepo(db)
	settings := NewSettingsRepo(db)

	require.NoError(t, content.UpsertMessage(ctx, "order_success", "Thanks!"))
	require.NoError(t, content.UpsertMessage(ctx, "order_success", "Thank you!"))
	msgs, err := content.ListMessages(ctx)
	require.NoError(t, err)
	require.Len(t, msgs, 1)
	assert.Equal(t, "Thank you!", msgs[0].Content)

	require.NoError(t, settings.Set(ctx, map[string]string{"site_name": "Kiddo", "logo_text": "KC"}))
	require.NoError(t, settings.Set(ctx, map[string]string{"site_name": "Kiddo Corner"}))
	all, err := settings.All(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Kiddo Corner", all["site_name"])
	assert.Equal(t, "KC", all["logo_text"])
	_, err = settings.Get(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	require.NoError(t, settings.UpsertTranslation(ctx, &domain.Translation{Key: "nav.home", English: "Home", Bangla: "হোম"}))
	require.NoError(t, settings.UpsertTranslation(ctx, &domain.Translation{Key: "nav.home", English: "Start", Bangla: "হোম"}))
	tr, err := settings.Translations(ctx)
	require.NoError(t, err)
	require.Len(t, tr, 1)
	assert.Equal(t, "Start", tr[0].English)
}

func TestAdminRepo(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := NewAdminRepo(db)
	require.NoError(t, repo.Save(ctx, &domain.AdminUser{Email: " Owner@Kiddo.com ", IsAdmin: true}))
	u, err := repo.FindByEmail(ctx, "owner@kiddo.COM")
	require.NoError(t, err)
	assert.True(t, u.IsAdmin)
	_, err = repo.FindByEmail(ctx, "x@y.z")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = repo.FindByEmail(ctx, "")
	assert.Error(t, err)
}
