package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/umalmyha/crm/internal/errors"
	"github.com/umalmyha/crm/internal/model"
	"github.com/umalmyha/crm/internal/repository"
)

// BrandService exposes brand operations
type BrandService interface {
	Create(ctx context.Context, nb *model.NewBrand) (*model.Brand, error)
	FindByID(ctx context.Context, id string) (*model.Brand, error)
	FindAll(ctx context.Context) ([]*model.Brand, error)
}

type brandService struct {
	brandRps repository.BrandRepository
}

// NewBrandService builds brand service
func NewBrandService(brandRps repository.BrandRepository) BrandService {
	return &brandService{brandRps: brandRps}
}

// Create persists new brand, stamping creation time and attaching email
// configuration in a single write
func (s *brandService) Create(ctx context.Context, nb *model.NewBrand) (*model.Brand, error) {
	existing, err := s.brandRps.FindByCode(ctx, nb.Code)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, errors.NewBusinessErr("code", "brand with provided code already exists")
	}

	emailCfg := nb.EmailConfig
	if emailCfg == nil {
		emailCfg = &model.EmailConfig{Type: model.EmailConfigTypeSimple}
	}

	b := &model.Brand{
		ID:          uuid.NewString(),
		Code:        nb.Code,
		Name:        nb.Name,
		Description: nb.Description,
		UserID:      nb.UserID,
		CreatedAt:   time.Now().UTC(),
		EmailConfig: emailCfg,
	}

	if err := s.brandRps.Create(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *brandService) FindByID(ctx context.Context, id string) (*model.Brand, error) {
	return s.brandRps.FindByID(ctx, id)
}

func (s *brandService) FindAll(ctx context.Context) ([]*model.Brand, error) {
	return s.brandRps.FindAll(ctx)
}
