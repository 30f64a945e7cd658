package repo

import (
	"encoding/json"
	"os"
	"sync"

	"souqd/internal/model"
	appErr "souqd/internal/pkg/errors"
)

// ProductRepo stores the product list as one JSON array in a flat file, with
// the same soft-fail read and whole-file write discipline as UserRepo.
type ProductRepo struct {
	mu   sync.Mutex
	path string
}

func NewProductRepo(path string) *ProductRepo {
	return &ProductRepo{path: path}
}

func (r *ProductRepo) load() []*model.Product {
	data, err := os.ReadFile(r.path)
	if err != nil || len(data) == 0 {
		return nil
	}
	var products []*model.Product
	if err := json.Unmarshal(data, &products); err != nil {
		return nil
	}
	return products
}

func (r *ProductRepo) save(products []*model.Product) error {
	if products == nil {
		products = []*model.Product{}
	}
	data, err := json.MarshalIndent(products, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(r.path, data, 0o644)
}

// List returns copies of all records.
func (r *ProductRepo) List() []*model.Product {
	r.mu.Lock()
	defer r.mu.Unlock()
	products := r.load()
	out := make([]*model.Product, 0, len(products))
	for _, p := range products {
		if p == nil {
			continue
		}
		copied := *p
		out = append(out, &copied)
	}
	return out
}

func (r *ProductRepo) Get(id string) (*model.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.load() {
		if p != nil && p.ID == id {
			copied := *p
			return &copied, nil
		}
	}
	return nil, appErr.ErrNotFound
}

func (r *ProductRepo) Create(product *model.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	products := r.load()
	copied := *product
	products = append(products, &copied)
	return r.save(products)
}

func (r *ProductRepo) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	products := r.load()
	kept := products[:0]
	found := false
	for _, p := range products {
		if p != nil && p.ID == id {
			found = true
			continue
		}
		kept = append(kept, p)
	}
	if !found {
		return appErr.ErrNotFound
	}
	return r.save(kept)
}
