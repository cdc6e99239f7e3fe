package test

import (
	"context"
	"time"

	domainErrors "github.com/omarsel/flashmart/internal/domain/errors"
	"github.com/omarsel/flashmart/internal/domain/model"
)

// UserRepositoryStub stores users in-memory for tests.
type UserRepositoryStub struct {
	Users  map[string]*model.User
	ByID   map[int64]*model.User
	Admins map[int64]bool
	Next   int64
	Err    error

	PurgedBefore []time.Time
	PurgeCount   int64
}

// NewUserRepositoryStub constructs stub repository with initialized maps.
func NewUserRepositoryStub() *UserRepositoryStub {
	return &UserRepositoryStub{
		Users:  make(map[string]*model.User),
		ByID:   make(map[int64]*model.User),
		Admins: make(map[int64]bool),
		Next:   1,
	}
}

func (s *UserRepositoryStub) ensure() {
	if s.Users == nil {
		s.Users = make(map[string]*model.User)
	}
	if s.ByID == nil {
		s.ByID = make(map[int64]*model.User)
	}
	if s.Admins == nil {
		s.Admins = make(map[int64]bool)
	}
	if s.Next == 0 {
		s.Next = 1
	}
}

// Create registers a credentialed user unless one exists or the stub errs.
func (s *UserRepositoryStub) Create(ctx context.Context, email, passwordHash string) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	s.ensure()
	if _, exists := s.Users[email]; exists {
		return nil, domainErrors.ErrAlreadyExists
	}
	user := &model.User{ID: s.Next, Email: &email, PasswordHash: &passwordHash}
	s.Next++
	s.Users[email] = user
	s.ByID[user.ID] = user
	return user, nil
}

// CreateAnonymous registers a throwaway identity.
func (s *UserRepositoryStub) CreateAnonymous(ctx context.Context) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	s.ensure()
	user := &model.User{ID: s.Next, Anonymous: true, CreatedAt: time.Now()}
	s.Next++
	s.ByID[user.ID] = user
	return user, nil
}

// GetByEmail fetches user by email or returns not found.
func (s *UserRepositoryStub) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if user, ok := s.Users[email]; ok {
		return user, nil
	}
	return nil, domainErrors.ErrNotFound
}

// GetByID fetches user by identifier or returns not found.
func (s *UserRepositoryStub) GetByID(ctx context.Context, id int64) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if user, ok := s.ByID[id]; ok {
		return user, nil
	}
	return nil, domainErrors.ErrNotFound
}

// IsAdmin reports the configured role grant.
func (s *UserRepositoryStub) IsAdmin(ctx context.Context, userID int64) (bool, error) {
	if s.Err != nil {
		return false, s.Err
	}
	return s.Admins[userID], nil
}

// GrantAdmin records an admin grant.
func (s *UserRepositoryStub) GrantAdmin(ctx context.Context, userID int64) error {
	if s.Err != nil {
		return s.Err
	}
	s.ensure()
	s.Admins[userID] = true
	return nil
}

// DeleteStaleAnonymous records the cutoff and returns the configured count.
func (s *UserRepositoryStub) DeleteStaleAnonymous(ctx context.Context, olderThan time.Time) (int64, error) {
	if s.Err != nil {
		return 0, s.Err
	}
	s.PurgedBefore = append(s.PurgedBefore, olderThan)
	return s.PurgeCount, nil
}

// ProductRepositoryStub keeps catalog items in-memory for tests.
type ProductRepositoryStub struct {
	Products map[int64]*model.Product
	Next     int64
	Err      error

	CreateFn func(context.Context, string, float64, string) (*model.Product, error)
	UpdateFn func(context.Context, int64, model.ProductUpdate) (*model.Product, error)
	DeleteFn func(context.Context, int64) error
}

// NewProductRepositoryStub constructs the stub with initialized state.
func NewProductRepositoryStub() *ProductRepositoryStub {
	return &ProductRepositoryStub{Products: make(map[int64]*model.Product), Next: 1}
}

// Seed inserts a product directly, bypassing validation.
func (s *ProductRepositoryStub) Seed(p model.Product) *model.Product {
	if s.Products == nil {
		s.Products = make(map[int64]*model.Product)
	}
	if p.ID == 0 {
		if s.Next == 0 {
			s.Next = 1
		}
		p.ID = s.Next
		s.Next++
	} else if p.ID >= s.Next {
		s.Next = p.ID + 1
	}
	stored := p
	s.Products[p.ID] = &stored
	return &stored
}

// Create stores a new available product.
func (s *ProductRepositoryStub) Create(ctx context.Context, name string, price float64, imageRef string) (*model.Product, error) {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, name, price, imageRef)
	}
	if s.Err != nil {
		return nil, s.Err
	}
	return s.Seed(model.Product{Name: name, Price: price, ImageRef: imageRef, Available: true}), nil
}

// GetByID fetches a product or returns not found.
func (s *ProductRepositoryStub) GetByID(ctx context.Context, id int64) (*model.Product, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if p, ok := s.Products[id]; ok {
		copied := *p
		return &copied, nil
	}
	return nil, domainErrors.ErrNotFound
}

// ListAvailable returns available products ordered by id ascending.
func (s *ProductRepositoryStub) ListAvailable(ctx context.Context) ([]model.Product, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	return s.list(true), nil
}

// ListAll returns every product ordered by id ascending.
func (s *ProductRepositoryStub) ListAll(ctx context.Context) ([]model.Product, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	return s.list(false), nil
}

func (s *ProductRepositoryStub) list(availableOnly bool) []model.Product {
	var result []model.Product
	for id := int64(1); id < s.Next; id++ {
		p, ok := s.Products[id]
		if !ok {
			continue
		}
		if availableOnly && !p.Available {
			continue
		}
		result = append(result, *p)
	}
	return result
}

// Update applies a partial edit.
func (s *ProductRepositoryStub) Update(ctx context.Context, id int64, upd model.ProductUpdate) (*model.Product, error) {
	if s.UpdateFn != nil {
		return s.UpdateFn(ctx, id, upd)
	}
	if s.Err != nil {
		return nil, s.Err
	}
	p, ok := s.Products[id]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	if upd.Name != nil {
		p.Name = *upd.Name
	}
	if upd.Price != nil {
		p.Price = *upd.Price
	}
	if upd.ImageRef != nil {
		p.ImageRef = *upd.ImageRef
	}
	if upd.Available != nil {
		p.Available = *upd.Available
	}
	copied := *p
	return &copied, nil
}

// Delete removes a product.
func (s *ProductRepositoryStub) Delete(ctx context.Context, id int64) error {
	if s.DeleteFn != nil {
		return s.DeleteFn(ctx, id)
	}
	if s.Err != nil {
		return s.Err
	}
	if _, ok := s.Products[id]; !ok {
		return domainErrors.ErrNotFound
	}
	delete(s.Products, id)
	return nil
}

// Count returns the number of stored products.
func (s *ProductRepositoryStub) Count(ctx context.Context) (int64, error) {
	if s.Err != nil {
		return 0, s.Err
	}
	return int64(len(s.Products)), nil
}

// OrderRepositoryStub keeps the ledger in-memory for tests.
type OrderRepositoryStub struct {
	Orders []model.Order
	Next   int64
	Err    error

	CreateFn func(context.Context, *model.Order) (*model.Order, error)
	DeleteFn func(context.Context, int64) error
}

// Create appends an order to the ledger.
func (s *OrderRepositoryStub) Create(ctx context.Context, order *model.Order) (*model.Order, error) {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, order)
	}
	if s.Err != nil {
		return nil, s.Err
	}
	if s.Next == 0 {
		s.Next = 1
	}
	created := *order
	created.ID = s.Next
	s.Next++
	if created.CreatedAt.IsZero() {
		created.CreatedAt = time.Now()
	}
	s.Orders = append(s.Orders, created)
	return &created, nil
}

// List returns orders newest first.
func (s *OrderRepositoryStub) List(ctx context.Context) ([]model.Order, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	result := make([]model.Order, 0, len(s.Orders))
	for i := len(s.Orders) - 1; i >= 0; i-- {
		result = append(result, s.Orders[i])
	}
	return result, nil
}

// Delete removes one order by id.
func (s *OrderRepositoryStub) Delete(ctx context.Context, id int64) error {
	if s.DeleteFn != nil {
		return s.DeleteFn(ctx, id)
	}
	if s.Err != nil {
		return s.Err
	}
	for i, o := range s.Orders {
		if o.ID == id {
			s.Orders = append(s.Orders[:i], s.Orders[i+1:]...)
			return nil
		}
	}
	return domainErrors.ErrNotFound
}

// Report aggregates the in-memory ledger.
func (s *OrderRepositoryStub) Report(ctx context.Context) (*model.SalesReport, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	report := &model.SalesReport{TotalPurchases: len(s.Orders)}
	counts := make(map[string]int)
	var names []string
	for _, o := range s.Orders {
		report.TotalRevenue += o.Price
		if _, seen := counts[o.ProductName]; !seen {
			names = append(names, o.ProductName)
		}
		counts[o.ProductName]++
	}
	for _, name := range names {
		report.PerProduct = append(report.PerProduct, model.ProductSales{ProductName: name, Count: counts[name]})
	}
	return report, nil
}
