package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/ritmodivulga/promo-engine/internal/domain"
	"github.com/ritmodivulga/promo-engine/internal/repository"
)

// MockStore hands out the mock repositories. WithTx calls fn with the same
// store, so expectations set on the repositories apply inside transactions.
type MockStore struct {
	ClientRepo  *MockClientRepository
	PackageRepo *MockPackageRepository
	VideoRepo   *MockVideoRepository
}

func NewMockStore() *MockStore {
	return &MockStore{
		ClientRepo:  &MockClientRepository{},
		PackageRepo: &MockPackageRepository{},
		VideoRepo:   &MockVideoRepository{},
	}
}

func (m *MockStore) Clients() repository.ClientRepository   { return m.ClientRepo }
func (m *MockStore) Packages() repository.PackageRepository { return m.PackageRepo }
func (m *MockStore) Videos() repository.VideoRepository     { return m.VideoRepo }

func (m *MockStore) WithTx(ctx context.Context, fn func(tx repository.Store) error) error {
	return fn(m)
}

type MockClientRepository struct {
	mock.Mock
}

func (m *MockClientRepository) Create(ctx context.Context, client *domain.Client) error {
	args := m.Called(ctx, client)
	return args.Error(0)
}

func (m *MockClientRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Client, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Client), args.Error(1)
}

func (m *MockClientRepository) List(ctx context.Context) ([]*domain.Client, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Client), args.Error(1)
}

func (m *MockClientRepository) Update(ctx context.Context, client *domain.Client) error {
	args := m.Called(ctx, client)
	return args.Error(0)
}

func (m *MockClientRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockPackageRepository struct {
	mock.Mock
}

func (m *MockPackageRepository) Create(ctx context.Context, pkg *domain.Package) error {
	args := m.Called(ctx, pkg)
	return args.Error(0)
}

func (m *MockPackageRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Package, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Package), args.Error(1)
}

func (m *MockPackageRepository) GetForUpdate(ctx context.Context, id uuid.UUID) (*domain.Package, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Package), args.Error(1)
}

func (m *MockPackageRepository) List(ctx context.Context, filter domain.PackageFilter) ([]*domain.Package, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Package), args.Error(1)
}

func (m *MockPackageRepository) UpdateStatus(ctx context.Context, id uuid.UUID, from, to domain.PackageStatus, at time.Time) (bool, error) {
	args := m.Called(ctx, id, from, to, at)
	return args.Bool(0), args.Error(1)
}

func (m *MockPackageRepository) UpdatePaymentFlag(ctx context.Context, id uuid.UUID, field domain.PaymentField, paid bool, at time.Time) error {
	args := m.Called(ctx, id, field, paid, at)
	return args.Error(0)
}

type MockVideoRepository struct {
	mock.Mock
}

func (m *MockVideoRepository) CreateBatch(ctx context.Context, videos []*domain.Video) error {
	args := m.Called(ctx, videos)
	return args.Error(0)
}

func (m *MockVideoRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Video, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Video), args.Error(1)
}

func (m *MockVideoRepository) GetByPackageID(ctx context.Context, packageID uuid.UUID) ([]*domain.Video, error) {
	args := m.Called(ctx, packageID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Video), args.Error(1)
}

func (m *MockVideoRepository) UpdateStatus(ctx context.Context, id uuid.UUID, from, to domain.VideoStatus, at time.Time) (bool, error) {
	args := m.Called(ctx, id, from, to, at)
	return args.Bool(0), args.Error(1)
}

func (m *MockVideoRepository) CountPending(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}
