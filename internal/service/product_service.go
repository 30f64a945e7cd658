package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"souqd/internal/model"
	appErr "souqd/internal/pkg/errors"
	"souqd/internal/pkg/timeutil"
	"souqd/internal/repo"
)

var (
	errProductName     = fmt.Errorf("product name is required: %w", appErr.ErrInvalid)
	errProductNotFound = fmt.Errorf("product not found: %w", appErr.ErrNotFound)
	errNotOwner        = fmt.Errorf("not authorized: %w", appErr.ErrForbidden)
)

// ProductView is a product plus viewer-dependent computed fields.
type ProductView struct {
	model.Product
	CanDelete bool `json:"canDelete"`
}

type CreateProductInput struct {
	Name       string
	CatTitle   string
	SubTitle   string
	Desc       string
	Contact    string
	PriceLabel string
	Image      string
}

// ProductService implements the marketplace listing CRUD over the flat-file
// product store, snapshotting seller identity from the user record.
type ProductService struct {
	users    *repo.UserRepo
	products *repo.ProductRepo
}

func NewProductService(users *repo.UserRepo, products *repo.ProductRepo) *ProductService {
	return &ProductService{users: users, products: products}
}

// List filters by exact category/subcategory when provided. viewer may be
// empty; it only drives the canDelete flag.
func (s *ProductService) List(ctx context.Context, cat, sub, viewer string) []*ProductView {
	items := make([]*ProductView, 0)
	for _, p := range s.products.List() {
		if cat != "" && strings.TrimSpace(p.CatTitle) != cat {
			continue
		}
		if sub != "" && strings.TrimSpace(p.SubTitle) != sub {
			continue
		}
		items = append(items, s.view(p, viewer))
	}
	return items
}

func (s *ProductService) Get(ctx context.Context, id, viewer string) (*ProductView, error) {
	p, err := s.products.Get(id)
	if err != nil {
		return nil, errProductNotFound
	}
	return s.view(p, viewer), nil
}

func (s *ProductService) Create(ctx context.Context, owner string, in CreateProductInput) (string, error) {
	if in.Name == "" {
		return "", errProductName
	}
	sellerName := localPart(owner)
	sellerCode := ""
	if user, err := s.users.GetByEmail(owner); err == nil {
		if user.Name != "" {
			sellerName = user.Name
		}
		sellerCode = user.Code
	}
	product := &model.Product{
		ID:          newID(),
		Name:        in.Name,
		CatTitle:    in.CatTitle,
		SubTitle:    in.SubTitle,
		Desc:        in.Desc,
		Contact:     in.Contact,
		PriceLabel:  in.PriceLabel,
		Image:       in.Image,
		SellerName:  sellerName,
		SellerCode:  sellerCode,
		SellerEmail: owner,
		CreatedAt:   timeutil.NowUnix(),
	}
	if err := s.products.Create(product); err != nil {
		return "", err
	}
	logutil.GetLogger(ctx).Info("product created",
		zap.String("id", product.ID), zap.String("seller", owner))
	return product.ID, nil
}

// Delete removes a listing; only its owner may do so.
func (s *ProductService) Delete(ctx context.Context, id, owner string) error {
	p, err := s.products.Get(id)
	if err != nil {
		return errProductNotFound
	}
	if p.SellerEmail != owner {
		return errNotOwner
	}
	if err := s.products.Delete(id); err != nil {
		return errProductNotFound
	}
	logutil.GetLogger(ctx).Info("product deleted",
		zap.String("id", id), zap.String("seller", owner))
	return nil
}

func (s *ProductService) view(p *model.Product, viewer string) *ProductView {
	return &ProductView{
		Product:   *p,
		CanDelete: viewer != "" && p.SellerEmail == viewer,
	}
}

func localPart(email string) string {
	if at := strings.IndexByte(email, '@'); at > 0 {
		return email[:at]
	}
	return email
}
