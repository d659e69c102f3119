package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/chrisdamba/menuintel/internal/models"
	"github.com/chrisdamba/menuintel/internal/repositories"
)

// Store keeps restaurants, menus and orders in process. The repository views
// returned by its accessors share one lock.
type Store struct {
	mu          sync.RWMutex
	restaurants map[string]*models.Restaurant
	categories  map[string]*models.Category
	items       map[string]*models.MenuItem
	orders      []*models.Order
}

func NewStore() *Store {
	return &Store{
		restaurants: make(map[string]*models.Restaurant),
		categories:  make(map[string]*models.Category),
		items:       make(map[string]*models.MenuItem),
	}
}

func (s *Store) Restaurants() *RestaurantRepository { return &RestaurantRepository{s: s} }
func (s *Store) Categories() *CategoryRepository { return &CategoryRepository{s: s} }
func (s *Store) MenuItems() *MenuItemRepository { return &MenuItemRepository{s: s} }
func (s *Store) Orders() *OrderRepository { return &OrderRepository{s: s} }
func (s *Store) Analytics() *AnalyticsRepository { return &AnalyticsRepository{s: s} }

type RestaurantRepository struct{ s *Store }

func (r *RestaurantRepository) BulkCreate(ctx context.Context, restaurants []*models.Restaurant) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, rs := range restaurants {
		cp := *rs
		r.s.restaurants[rs.ID] = &cp
	}
	return nil
}

func (r *RestaurantRepository) GetByID(ctx context.Context, id string) (*models.Restaurant, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	rs, ok := r.s.restaurants[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	cp := *rs
	return &cp, nil
}

func (r *RestaurantRepository) GetAll(ctx context.Context) ([]*models.Restaurant, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*models.Restaurant, 0, len(r.s.restaurants))
	for _, rs := range r.s.restaurants {
		cp := *rs
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *RestaurantRepository) Count(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return len(r.s.restaurants), nil
}

type CategoryRepository struct{ s *Store }

func (r *CategoryRepository) BulkCreate(ctx context.Context, categories []*models.Category) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, c := range categories {
		cp := *c
		r.s.categories[c.ID] = &cp
	}
	return nil
}

type MenuItemRepository struct{ s *Store }

func (r *MenuItemRepository) BulkCreate(ctx context.Context, menuItems []*models.MenuItem) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, mi := range menuItems {
		cp := *mi
		r.s.items[mi.ID] = &cp
	}
	return nil
}

// GetByRestaurantID returns items ordered by name then id, with the category
// name resolved.
func (r *MenuItemRepository) GetByRestaurantID(ctx context.Context, restaurantID string) ([]*models.MenuItem, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := []*models.MenuItem{}
	for _, mi := range r.s.items {
		if mi.RestaurantID != restaurantID {
			continue
		}
		cp := *mi
		if c, ok := r.s.categories[mi.CategoryID]; ok {
			cp.Category = c.Name
		}
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *MenuItemRepository) Count(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return len(r.s.items), nil
}

type OrderRepository struct{ s *Store }

func (r *OrderRepository) BulkCreate(ctx context.Context, orders []*models.Order) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, o := range orders {
		cp := *o
		cp.Items = append([]models.OrderItem(nil), o.Items...)
		r.s.orders = append(r.s.orders, &cp)
	}
	return nil
}

func (r *OrderRepository) Count(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return len(r.s.orders), nil
}
