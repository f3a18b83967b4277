package media

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/timelessstrands/storefront-backend/pkg/config"
	"github.com/timelessstrands/storefront-backend/pkg/db/models"
	pkgerrors "github.com/timelessstrands/storefront-backend/pkg/errors"
	"github.com/timelessstrands/storefront-backend/pkg/logger"
)

// UploadTicket tells the back office where to PUT the file and the key the
// attach call should reference afterwards.
type UploadTicket struct {
	UploadURL   string    `json:"upload_url"`
	ObjectKey   string    `json:"object_key"`
	PublicURL   string    `json:"public_url"`
	ContentType string    `json:"content_type"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// CreateUploadInput describes the file the admin wants to upload.
type CreateUploadInput struct {
	FileName    string
	ContentType string
}

// AttachInput binds an uploaded object (or an external URL) to a product.
type AttachInput struct {
	ProductID    uuid.UUID
	MediaURL     string
	ObjectKey    string
	ContentType  string
	DisplayOrder int
}

// MediaDTO is the media payload returned to the back office.
type MediaDTO struct {
	ID           uuid.UUID `json:"id"`
	ProductID    uuid.UUID `json:"product_id"`
	URL          string    `json:"url"`
	Type         string    `json:"type"`
	DisplayOrder int       `json:"display_order"`
	CreatedAt    time.Time `json:"created_at"`
}

// Service manages product media uploads and attachments.
type Service interface {
	CreateUploadURL(ctx context.Context, input CreateUploadInput) (*UploadTicket, error)
	Attach(ctx context.Context, input AttachInput) (*MediaDTO, error)
	Detach(ctx context.Context, id uuid.UUID) error
	Reorder(ctx context.Context, productID uuid.UUID, orderedIDs []uuid.UUID) ([]MediaDTO, error)
	ListByProduct(ctx context.Context, productID uuid.UUID) ([]MediaDTO, error)
}

type objectSigner interface {
	SignedUploadURL(object, contentType string, expiry time.Duration) (string, error)
	PublicURL(object string) string
	DeleteObject(ctx context.Context, bucket, object string) error
}

type productChecker interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
}

// service implements the media service.
type service struct {
	repo     MediaRepository
	products productChecker
	signer   objectSigner
	gcsCfg   config.GCSConfig
	logg     *logger.Logger
}

// NewService constructs a media service instance. The signer may be nil
// when uploads are driven by external URLs only.
func NewService(repo MediaRepository, products productChecker, signer objectSigner, gcsCfg config.GCSConfig, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("media repository required")
	}
	if products == nil {
		return nil, fmt.Errorf("product repository required")
	}
	return &service{
		repo:     repo,
		products: products,
		signer:   signer,
		gcsCfg:   gcsCfg,
		logg:     logg,
	}, nil
}

func (s *service) CreateUploadURL(ctx context.Context, input CreateUploadInput) (*UploadTicket, error) {
	if s.signer == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "media uploads are not configured")
	}
	if _, err := kindForContentType(input.ContentType); err != nil {
		return nil, err
	}

	objectKey := fmt.Sprintf("media/products/%s%s", uuid.NewString(), extensionFor(input.ContentType, input.FileName))

	expiry := s.gcsCfg.UploadURLExpiry
	if expiry <= 0 {
		expiry = 15 * time.Minute
	}

	uploadURL, err := s.signer.SignedUploadURL(objectKey, input.ContentType, expiry)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "signing upload url")
	}

	return &UploadTicket{
		UploadURL:   uploadURL,
		ObjectKey:   objectKey,
		PublicURL:   s.signer.PublicURL(objectKey),
		ContentType: input.ContentType,
		ExpiresAt:   time.Now().UTC().Add(expiry),
	}, nil
}

func (s *service) Attach(ctx context.Context, input AttachInput) (*MediaDTO, error) {
	kind, err := kindForContentType(input.ContentType)
	if err != nil {
		return nil, err
	}

	mediaURL := strings.TrimSpace(input.MediaURL)
	objectKey := strings.TrimSpace(input.ObjectKey)
	if mediaURL == "" && objectKey == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "media url or object key is required")
	}
	if mediaURL == "" {
		if s.signer == nil {
			return nil, pkgerrors.New(pkgerrors.CodeDependency, "media uploads are not configured")
		}
		mediaURL = s.signer.PublicURL(objectKey)
	}

	if _, err := s.products.FindByID(ctx, input.ProductID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading product")
	}

	row := &models.ProductMedia{
		ProductID:    input.ProductID,
		MediaURL:     mediaURL,
		MediaType:    kind,
		DisplayOrder: input.DisplayOrder,
	}
	if objectKey != "" {
		row.StorageKey = &objectKey
	}

	if _, err := s.repo.Create(ctx, row); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "attaching media")
	}

	dto := newMediaDTO(row)
	return &dto, nil
}

// Detach removes the media row and then best-effort deletes the backing
// object; an orphaned object is preferable to a dangling row.
func (s *service) Detach(ctx context.Context, id uuid.UUID) error {
	row, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "media not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading media")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "deleting media")
	}

	if s.signer != nil && row.StorageKey != nil {
		if err := s.signer.DeleteObject(ctx, "", *row.StorageKey); err != nil && s.logg != nil {
			s.logg.Warn(ctx, "deleting storage object failed")
		}
	}
	return nil
}

func (s *service) Reorder(ctx context.Context, productID uuid.UUID, orderedIDs []uuid.UUID) ([]MediaDTO, error) {
	if len(orderedIDs) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "ordered media ids are required")
	}

	rows, err := s.repo.ListByProduct(ctx, productID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "listing media")
	}

	known := make(map[uuid.UUID]struct{}, len(rows))
	for _, row := range rows {
		known[row.ID] = struct{}{}
	}
	for _, id := range orderedIDs {
		if _, ok := known[id]; !ok {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "media id does not belong to the product")
		}
	}

	for position, id := range orderedIDs {
		if err := s.repo.SetDisplayOrder(ctx, id, position); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reordering media")
		}
	}

	return s.ListByProduct(ctx, productID)
}

func (s *service) ListByProduct(ctx context.Context, productID uuid.UUID) ([]MediaDTO, error) {
	rows, err := s.repo.ListByProduct(ctx, productID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "listing media")
	}
	out := make([]MediaDTO, 0, len(rows))
	for i := range rows {
		out = append(out, newMediaDTO(&rows[i]))
	}
	return out, nil
}

func newMediaDTO(row *models.ProductMedia) MediaDTO {
	return MediaDTO{
		ID:           row.ID,
		ProductID:    row.ProductID,
		URL:          row.MediaURL,
		Type:         string(row.MediaType),
		DisplayOrder: row.DisplayOrder,
		CreatedAt:    row.CreatedAt,
	}
}
