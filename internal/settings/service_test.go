package settings

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/timelessstrands/storefront-backend/pkg/config"
	"github.com/timelessstrands/storefront-backend/pkg/db/models"
	pkgerrors "github.com/timelessstrands/storefront-backend/pkg/errors"
)

type stubSettingsRepo struct {
	rows map[string]*models.Setting
}

func newStubSettingsRepo(rows ...*models.Setting) *stubSettingsRepo {
	repo := &stubSettingsRepo{rows: map[string]*models.Setting{}}
	for _, row := range rows {
		repo.rows[row.Key] = row
	}
	return repo
}

func (s *stubSettingsRepo) List(_ context.Context) ([]models.Setting, error) {
	out := make([]models.Setting, 0, len(s.rows))
	for _, row := range s.rows {
		out = append(out, *row)
	}
	return out, nil
}

func (s *stubSettingsRepo) Find(_ context.Context, key string) (*models.Setting, error) {
	if row, ok := s.rows[key]; ok {
		return row, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubSettingsRepo) Upsert(_ context.Context, setting *models.Setting) error {
	if existing, ok := s.rows[setting.Key]; ok && setting.Description == "" {
		setting.Description = existing.Description
	}
	s.rows[setting.Key] = setting
	return nil
}

func (s *stubSettingsRepo) Delete(_ context.Context, key string) error {
	delete(s.rows, key)
	return nil
}

func testCheckoutConfig() config.CheckoutConfig {
	return config.CheckoutConfig{MpesaPaybill: "522522", MpesaAccount: "1342330668"}
}

func TestMpesaFallsBackToConfig(t *testing.T) {
	t.Parallel()

	svc, err := NewService(newStubSettingsRepo(), testCheckoutConfig())
	require.NoError(t, err)

	details := svc.Mpesa(context.Background())
	assert.Equal(t, "522522", details.Paybill)
	assert.Equal(t, "1342330668", details.Account)
}

func TestMpesaPrefersStoredSettings(t *testing.T) {
	t.Parallel()

	repo := newStubSettingsRepo(
		&models.Setting{Key: KeyMpesaPaybill, Value: "600100"},
		&models.Setting{Key: KeyMpesaAccount, Value: "998877"},
	)
	svc, err := NewService(repo, testCheckoutConfig())
	require.NoError(t, err)

	details := svc.Mpesa(context.Background())
	assert.Equal(t, "600100", details.Paybill)
	assert.Equal(t, "998877", details.Account)
}

func TestMpesaIgnoresEmptyStoredValue(t *testing.T) {
	t.Parallel()

	repo := newStubSettingsRepo(&models.Setting{Key: KeyMpesaPaybill, Value: ""})
	svc, err := NewService(repo, testCheckoutConfig())
	require.NoError(t, err)

	details := svc.Mpesa(context.Background())
	assert.Equal(t, "522522", details.Paybill)
}

func TestUpsertAndGet(t *testing.T) {
	t.Parallel()

	svc, err := NewService(newStubSettingsRepo(), testCheckoutConfig())
	require.NoError(t, err)

	saved, err := svc.Upsert(context.Background(), " store_name ", "Timeless Strands", "Display name")
	require.NoError(t, err)
	assert.Equal(t, "store_name", saved.Key)

	got, err := svc.Get(context.Background(), "store_name")
	require.NoError(t, err)
	assert.Equal(t, "Timeless Strands", got.Value)
	assert.Equal(t, "Display name", got.Description)
}

func TestGetUnknownKey(t *testing.T) {
	t.Parallel()

	svc, err := NewService(newStubSettingsRepo(), testCheckoutConfig())
	require.NoError(t, err)

	_, err = svc.Get(context.Background(), "missing")
	coded := pkgerrors.As(err)
	require.NotNil(t, coded)
	assert.Equal(t, pkgerrors.CodeNotFound, coded.Code())
}

func TestUpsertrequiresKey(t *testing.T) {
	t.Parallel()

	svc, err := NewService(newStubSettingsRepo(), testCheckoutConfig())
	require.NoError(t, err)

	_, err = svc.Upsert(context.Background(), "  ", "value", "")
	coded := pkgerrors.As(err)
	require.NotNil(t, coded)
	assert.Equal(t, pkgerrors.CodeValidation, coded.Code())
}

func TestPublicSettingsMap(t *testing.T) {
	t.Parallel()

	repo := newStubSettingsRepo(
		&models.Setting{Key: "store_name", Value: "Timeless Strands"},
		&models.Setting{Key: "mpesa_paybill", Value: "522522"},
	)
	svc, err := NewService(repo, testCheckoutConfig())
	require.NoError(t, err)

	got, err := svc.PublicSettings(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Timeless Strands", got["store_name"])
	assert.Equal(t, "522522", got["mpesa_paybill"])
}
