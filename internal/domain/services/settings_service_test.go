package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hellosarowarhn-boop/ecomm/internal/domain/models"
)

type recordingSnapshots struct {
	written []models.SiteSettings
	err     error
}

func (r *recordingSnapshots) WriteSettings(settings *models.SiteSettings) error {
	r.written = append(r.written, *settings)
	return r.err
}

func TestGetSettingsCreatesDefaults(t *testing.T) {
	db, cfg := newTestDB(t)
	svc := NewSettingsService(db, cfg, nil)

	settings, err := svc.GetSettings(context.Background())
	require.NoError(t, err)
	assert.Equal(t, models.SettingsID, settings.ID)
	assert.Equal(t, models.DefaultSiteName, settings.SiteName)
	assert.Equal(t, models.DefaultComboButtonText, settings.ComboButtonText)

	var count int64
	require.NoError(t, db.Model(&models.SiteSettings{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	// 再次读取不会重复写入
	_, err = svc.GetSettings(context.Background())
	require.NoError(t, err)
	require.NoError(t, db.Model(&models.SiteSettings{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestUpdateSettingsReplacesAndWritesSnapshot(t *testing.T) {
	db, cfg := newTestDB(t)
	snapshots := &recordingSnapshots{}
	svc := NewSettingsService(db, cfg, snapshots)
	ctx := context.Background()

	updated, err := svc.UpdateSettings(ctx, SettingsUpdateInput{
		SiteName:     " My Shop ",
		HeroTitle:    "Fresh",
		ContactPhone: "01700000000",
		HeroImages:   []string{"/uploads/hero-1.png", "/uploads/hero-2.png"},
		FAQs:         []models.FAQ{{Question: "COD?", Answer: "Yes"}},
	})
	require.NoError(t, err)
	assert.Equal(t, "My Shop", updated.SiteName)
	// 空按钮文案回退为默认值
	assert.Equal(t, models.DefaultHeroButtonText, updated.HeroButtonText)

	stored, err := svc.GetSettings(ctx)
	require.NoError(t, err)
	assert.Equal(t, "My Shop", stored.SiteName)
	assert.Equal(t, "", stored.HeroDescription)
	assert.Equal(t, []string{"/uploads/hero-1.png", "/uploads/hero-2.png"}, stored.HeroImages)
	assert.Equal(t, []models.FAQ{{Question: "COD?", Answer: "Yes"}}, stored.FAQs)

	require.Len(t, snapshots.written, 1)
	assert.Equal(t, "01700000000", snapshots.written[0].ContactPhone)
}

func TestUpdateSettingsSnapshotFailureIsNotFatal(t *testing.T) {
	db, cfg := newTestDB(t)
	snapshots := &recordingSnapshots{err: errors.New("disk full")}
	svc := NewSettingsService(db, cfg, snapshots)

	updated, err := svc.UpdateSettings(context.Background(), SettingsUpdateInput{SiteName: "Shop"})
	require.NoError(t, err)
	assert.Equal(t, "Shop", updated.SiteName)
	assert.NotNil(t, updated.HeroImages)
	assert.NotNil(t, updated.FAQs)
	assert.Len(t, snapshots.written, 1)
}
