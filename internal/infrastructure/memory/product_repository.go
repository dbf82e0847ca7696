package memory

import (
	"context"
	"sort"
	"sync"

	domain "github.com/commercelab/orderflow/internal/domain/catalog"
)

type ProductRepository struct {
	mu       sync.RWMutex
	products map[string]*domain.Product
}

func NewProductRepository() *ProductRepository {
	return &ProductRepository{
		products: make(map[string]*domain.Product),
	}
}

func (r *ProductRepository) FindAllByID(ctx context.Context, ids []string) ([]*domain.Product, error) {
	_ = ctx

	r.mu.RLock()
	defer r.mu.RUnlock()

	found := make([]*domain.Product, 0, len(ids))
	for _, id := range ids {
		if p, ok := r.products[id]; ok {
			found = append(found, cloneProduct(p))
		}
	}
	return found, nil
}

// UpdateQuantity applies the batch under one lock: every update is validated
// before any product is touched, so a bad update leaves the catalog intact.
func (r *ProductRepository) UpdateQuantity(ctx context.Context, updates []domain.QuantityUpdate) error {
	_ = ctx

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range updates {
		if _, ok := r.products[u.ProductID]; !ok {
			return domain.ErrNotFound
		}
		if u.NewQuantity < 0 {
			return domain.ErrInsufficientStock
		}
	}

	for _, u := range updates {
		p := r.products[u.ProductID]
		p.Available = u.NewQuantity
	}
	return nil
}

func (r *ProductRepository) List(ctx context.Context) ([]*domain.Product, error) {
	_ = ctx

	r.mu.RLock()
	defer r.mu.RUnlock()

	all := make([]*domain.Product, 0, len(r.products))
	for _, p := range r.products {
		all = append(all, cloneProduct(p))
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	return all, nil
}

func (r *ProductRepository) Save(ctx context.Context, p *domain.Product) error {
	_ = ctx
	if p == nil {
		return nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.products[p.ID] = cloneProduct(p)
	return nil
}

func cloneProduct(p *domain.Product) *domain.Product {
	if p == nil {
		return nil
	}
	clone := *p
	return &clone
}
