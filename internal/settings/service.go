package settings

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/timelessstrands/storefront-backend/pkg/config"
	"github.com/timelessstrands/storefront-backend/pkg/db/models"
	pkgerrors "github.com/timelessstrands/storefront-backend/pkg/errors"
)

// Well-known settings keys.
const (
	KeyMpesaPaybill = "mpesa_paybill"
	KeyMpesaAccount = "mpesa_account"
	KeyStoreName    = "store_name"
)

// SettingDTO is one key/value row exposed to clients.
type SettingDTO struct {
	Key         string    `json:"key"`
	Value       string    `json:"value"`
	Description string    `json:"description,omitempty"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// MpesaDetails carries the payment rails shown at checkout.
type MpesaDetails struct {
	Paybill string `json:"paybill"`
	Account string `json:"account"`
}

// Service exposes site settings reads plus admin mutations.
type Service interface {
	PublicSettings(ctx context.Context) (map[string]string, error)
	List(ctx context.Context) ([]SettingDTO, error)
	Get(ctx context.Context, key string) (*SettingDTO, error)
	Upsert(ctx context.Context, key, value, description string) (*SettingDTO, error)
	Delete(ctx context.Context, key string) error
	Mpesa(ctx context.Context) MpesaDetails
}

// service implements the settings service.
type service struct {
	repo     SettingsRepository
	checkout config.CheckoutConfig
}

// NewService constructs a settings service instance. The checkout config
// supplies M-PESA fallbacks for unseeded databases.
func NewService(repo SettingsRepository, checkout config.CheckoutConfig) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("settings repository required")
	}
	return &service{repo: repo, checkout: checkout}, nil
}

func (s *service) PublicSettings(ctx context.Context) (map[string]string, error) {
	rows, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "listing settings")
	}
	out := make(map[string]string, len(rows))
	for _, row := range rows {
		out[row.Key] = row.Value
	}
	return out, nil
}

func (s *service) List(ctx context.Context) ([]SettingDTO, error) {
	rows, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "listing settings")
	}
	out := make([]SettingDTO, 0, len(rows))
	for _, row := range rows {
		out = append(out, newSettingDTO(&row))
	}
	return out, nil
}

func (s *service) Get(ctx context.Context, key string) (*SettingDTO, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "settings key is required")
	}

	row, err := s.repo.Find(ctx, key)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "setting not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading setting")
	}
	dto := newSettingDTO(row)
	return &dto, nil
}

func (s *service) Upsert(ctx context.Context, key, value, description string) (*SettingDTO, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "settings key is required")
	}

	setting := &models.Setting{
		Key:         key,
		Value:       value,
		Description: description,
		UpdatedAt:   time.Now().UTC(),
	}
	if err := s.repo.Upsert(ctx, setting); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "saving setting")
	}

	dto := newSettingDTO(setting)
	return &dto, nil
}

func (s *service) Delete(ctx context.Context, key string) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "settings key is required")
	}
	if err := s.repo.Delete(ctx, key); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "deleting setting")
	}
	return nil
}

// Mpesa resolves the paybill and account from settings, falling back to the
// configured defaults when rows are missing or empty.
func (s *service) Mpesa(ctx context.Context) MpesaDetails {
	details := MpesaDetails{
		Paybill: s.checkout.MpesaPaybill,
		Account: s.checkout.MpesaAccount,
	}

	if row, err := s.repo.Find(ctx, KeyMpesaPaybill); err == nil && row.Value != "" {
		details.Paybill = row.Value
	}
	if row, err := s.repo.Find(ctx, KeyMpesaAccount); err == nil && row.Value != "" {
		details.Account = row.Value
	}

	return details
}

func newSettingDTO(row *models.Setting) SettingDTO {
	return SettingDTO{
		Key:         row.Key,
		Value:       row.Value,
		Description: row.Description,
		UpdatedAt:   row.UpdatedAt,
	}
}
