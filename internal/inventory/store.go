package inventory

import (
	"context"
	"strings"
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/talkincode/inventory/internal/domain"
)

// ListFilter narrows List. The zero value returns every product.
type ListFilter struct {
	// Query is a case-insensitive substring of name, description or category
	Query    string
	Category string
}

// ProductStore owns validated persistence of products
type ProductStore interface {
	// List returns products ordered by id descending
	List(ctx context.Context, filter ListFilter) ([]domain.Product, error)

	// Get returns the product with id or ErrProductNotFound
	Get(ctx context.Context, id int64) (*domain.Product, error)

	// Create validates input, applies defaults and inserts a new product
	Create(ctx context.Context, in ProductInput) (*domain.Product, error)

	// Update replaces every mutable field of an existing product
	Update(ctx context.Context, id int64, in ProductInput) (*domain.Product, error)

	// AdjustQuantity replaces only the quantity of an existing product
	AdjustQuantity(ctx context.Context, id int64, quantity interface{}) (*domain.Product, error)

	// Delete removes a product permanently
	Delete(ctx context.Context, id int64) error

	// Count returns the number of stored products
	Count(ctx context.Context) (int64, error)
}

// GormProductStore is the GORM implementation of ProductStore
type GormProductStore struct {
	db *gorm.DB
}

var _ ProductStore = (*GormProductStore)(nil)

// NewGormProductStore creates a store over an open database handle
func NewGormProductStore(db *gorm.DB) *GormProductStore {
	return &GormProductStore{db: db}
}

func (s *GormProductStore) List(ctx context.Context, filter ListFilter) ([]domain.Product, error) {
	query := s.db.WithContext(ctx).Model(&domain.Product{})

	if q := strings.TrimSpace(filter.Query); q != "" {
		like := "%" + escapeLike(strings.ToLower(q)) + "%"
		query = query.Where(
			`LOWER(name) LIKE ? ESCAPE '\' OR LOWER(description) LIKE ? ESCAPE '\' OR LOWER(category) LIKE ? ESCAPE '\'`,
			like, like, like)
	}
	if c := strings.TrimSpace(filter.Category); c != "" {
		query = query.Where("category = ?", c)
	}

	products := make([]domain.Product, 0)
	if err := query.Order("id DESC").Find(&products).Error; err != nil {
		return nil, errors.Wrap(err, "list products")
	}
	return products, nil
}

func (s *GormProductStore) Get(ctx context.Context, id int64) (*domain.Product, error) {
	var p domain.Product
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrProductNotFound
	} else if err != nil {
		return nil, errors.Wrapf(err, "query product %d", id)
	}
	return &p, nil
}

func (s *GormProductStore) Create(ctx context.Context, in ProductInput) (*domain.Product, error) {
	v, err := in.validate()
	if err != nil {
		return nil, err
	}

	p := domain.Product{
		Name:        v.name,
		Description: v.description,
		Price:       v.price,
		Quantity:    v.quantity,
		Category:    v.category,
		ImageURL:    v.imageURL,
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.db.WithContext(ctx).Create(&p).Error; err != nil {
		return nil, errors.Wrap(err, "create product")
	}
	return s.Get(ctx, p.ID)
}

func (s *GormProductStore) Update(ctx context.Context, id int64, in ProductInput) (*domain.Product, error) {
	v, err := in.validate()
	if err != nil {
		return nil, err
	}
	if err := s.updateColumns(ctx, id, v.columns()); err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

func (s *GormProductStore) AdjustQuantity(ctx context.Context, id int64, quantity interface{}) (*domain.Product, error) {
	qty, ferr := parseQuantity(quantity)
	if ferr != nil {
		return nil, &ValidationError{Fields: []FieldError{*ferr}}
	}
	if err := s.updateColumns(ctx, id, map[string]interface{}{"quantity": qty}); err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

// updateColumns writes columns for id; zero matched rows means the id does
// not exist.
func (s *GormProductStore) updateColumns(ctx context.Context, id int64, columns map[string]interface{}) error {
	res := s.db.WithContext(ctx).
		Model(&domain.Product{}).
		Where("id = ?", id).
		Updates(columns)
	if res.Error != nil {
		return errors.Wrapf(res.Error, "update product %d", id)
	}
	if res.RowsAffected == 0 {
		return ErrProductNotFound
	}
	return nil
}

func (s *GormProductStore) Delete(ctx context.Context, id int64) error {
	res := s.db.WithContext(ctx).Where("id = ?", id).Delete(&domain.Product{})
	if res.Error != nil {
		return errors.Wrapf(res.Error, "delete product %d", id)
	}
	if res.RowsAffected == 0 {
		return ErrProductNotFound
	}
	return nil
}

func (s *GormProductStore) Count(ctx context.Context) (int64, error) {
	var total int64
	if err := s.db.WithContext(ctx).Model(&domain.Product{}).Count(&total).Error; err != nil {
		return 0, errors.Wrap(err, "count products")
	}
	return total, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
