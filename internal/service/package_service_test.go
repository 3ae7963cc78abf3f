package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/ritmodivulga/promo-engine/internal/domain"
	"github.com/ritmodivulga/promo-engine/internal/mocks"
	customError "github.com/ritmodivulga/promo-engine/pkg/errors"
)

func TestCreatePackage_FlatPackage(t *testing.T) {
	f := newFixture(t)

	res := f.createPackage(t, domain.PackageTypePackage, "1000")

	pkg := res.Package
	assert.Equal(t, domain.PackageStatusActive, pkg.Status)
	assert.Equal(t, "Ana Souza", pkg.ClientName)
	assert.False(t, pkg.ClientID.Valid)
	assertDecimal(t, "20", pkg.JuninhoCommission, "juninho")
	assertDecimal(t, "50", pkg.NataliaCommission, "natalia")
	assertDecimal(t, "10", pkg.EngagementCost, "engagement")
	assertDecimal(t, "700", pkg.ProLabore, "pro-labore")
	assertDecimal(t, "220", pkg.NetProfit, "net profit")
	assert.Equal(t, domain.PaymentStatus{}, pkg.PaymentStatus)

	require.Len(t, res.Videos, 5)
	for i, v := range res.Videos {
		assert.Equal(t, i+1, v.VideoNumber)
		assert.Equal(t, domain.VideoStatusBriefingSent, v.Status)
		assert.Equal(t, pkg.ID, v.PackageID)
	}

	stored, err := f.store.Videos().GetByPackageID(context.Background(), pkg.ID)
	require.NoError(t, err)
	assert.Len(t, stored, 5)
	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.PackagesCreated.WithLabelValues("package")))
}

func TestCreatePackage_VideoCounts(t *testing.T) {
	tests := []struct {
		name     string
		typ      domain.PackageType
		count    int
		expected int
		wantErr  bool
	}{
		{name: "package default", typ: domain.PackageTypePackage, expected: 5},
		{name: "package explicit five", typ: domain.PackageTypePackage, count: 5, expected: 5},
		{name: "package other count", typ: domain.PackageTypePackage, count: 3, wantErr: true},
		{name: "post default", typ: domain.PackageTypePost, expected: 1},
		{name: "post with three videos", typ: domain.PackageTypePost, count: 3, expected: 3},
		{name: "negative", typ: domain.PackageTypePost, count: -1, wantErr: true},
		{name: "too many", typ: domain.PackageTypePost, count: 51, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)

			res, err := f.packages.CreatePackage(context.Background(), adminActor, &domain.CreatePackageRequest{
				ClientName: "Ana",
				Type:       tt.typ,
				TotalValue: dec("100"),
				VideoCount: tt.count,
			})

			if tt.wantErr {
				assert.True(t, errors.Is(err, customError.ErrValidation))
				return
			}
			require.NoError(t, err)
			assert.Len(t, res.Videos, tt.expected)
		})
	}
}

func TestCreatePackage_ConfigurableCosts(t *testing.T) {
	f := newFixture(t)
	model := f.packages.calculator.DefaultCostModel()
	model.ProLabore.Enabled = false

	res, err := f.packages.CreatePackage(context.Background(), adminActor, &domain.CreatePackageRequest{
		ClientName: "Ana",
		Type:       domain.PackageTypePost,
		TotalValue: dec("200"),
		VideoCount: 3,
		CostModel:  &model,
	})

	require.NoError(t, err)
	assertDecimal(t, "20", res.Package.JuninhoCommission, "juninho")
	assertDecimal(t, "10", res.Package.NataliaCommission, "natalia")
	assertDecimal(t, "6", res.Package.EngagementCost, "engagement")
	assertDecimal(t, "0", res.Package.ProLabore, "pro-labore")
	assertDecimal(t, "164", res.Package.NetProfit, "net profit")
}

func TestCreatePackage_ResolvesClient(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	client, err := f.clients.CreateClient(ctx, adminActor, &domain.CreateClientRequest{Name: "MC Lua"})
	require.NoError(t, err)

	res, err := f.packages.CreatePackage(ctx, adminActor, &domain.CreatePackageRequest{
		ClientID:   uuid.NullUUID{UUID: client.ID, Valid: true},
		ClientName: "ignored",
		Type:       domain.PackageTypePackage,
		TotalValue: dec("1000"),
	})
	require.NoError(t, err)
	assert.Equal(t, "MC Lua", res.Package.ClientName)
	assert.Equal(t, client.ID, res.Package.ClientID.UUID)

	_, err = f.packages.CreatePackage(ctx, adminActor, &domain.CreatePackageRequest{
		ClientID:   uuid.NullUUID{UUID: uuid.New(), Valid: true},
		Type:       domain.PackageTypePackage,
		TotalValue: dec("1000"),
	})
	assert.Equal(t, customError.ErrCodeClientNotFound, customError.Code(err))

	all, err := f.store.Packages().List(ctx, domain.PackageFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 1, "failed create must not leave a package behind")
}

func TestCreatePackage_Rejects(t *testing.T) {
	tests := []struct {
		name   string
		actor  domain.Actor
		req    domain.CreatePackageRequest
		target error
	}{
		{
			name:   "negative total",
			actor:  adminActor,
			req:    domain.CreatePackageRequest{ClientName: "Ana", Type: domain.PackageTypePost, TotalValue: dec("-1")},
			target: customError.ErrValidation,
		},
		{
			name:   "missing type",
			actor:  adminActor,
			req:    domain.CreatePackageRequest{ClientName: "Ana", TotalValue: dec("1")},
			target: customError.ErrValidation,
		},
		{
			name:   "unknown type",
			actor:  adminActor,
			req:    domain.CreatePackageRequest{ClientName: "Ana", Type: "bundle", TotalValue: dec("1")},
			target: customError.ErrValidation,
		},
		{
			name:   "no client",
			actor:  adminActor,
			req:    domain.CreatePackageRequest{ClientName: "  ", Type: domain.PackageTypePost, TotalValue: dec("1")},
			target: customError.ErrValidation,
		},
		{
			name:   "negative cost item",
			actor:  adminActor,
			req:    domain.CreatePackageRequest{ClientName: "Ana", Type: domain.PackageTypePost, TotalValue: dec("1"), CostModel: &domain.CostModel{ProLabore: domain.CostItem{Enabled: true, Value: dec("-0.5")}}},
			target: customError.ErrValidation,
		},
		{
			name:   "financial may not create",
			actor:  financialActor,
			req:    domain.CreatePackageRequest{ClientName: "Ana", Type: domain.PackageTypePost, TotalValue: dec("1")},
			target: customError.ErrPermissionDenied,
		},
		{
			name:   "video manager may not create",
			actor:  managerActor,
			req:    domain.CreatePackageRequest{ClientName: "Ana", Type: domain.PackageTypePost, TotalValue: dec("1")},
			target: customError.ErrPermissionDenied,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			req := tt.req

			_, err := f.packages.CreatePackage(context.Background(), tt.actor, &req)

			assert.True(t, errors.Is(err, tt.target), "got %v", err)
			all, err := f.store.Packages().List(context.Background(), domain.PackageFilter{})
			require.NoError(t, err)
			assert.Empty(t, all)
		})
	}
}

func TestCreatePackage_RollsBackVideosOnFailure(t *testing.T) {
	f := newFixture(t)
	store := mocks.NewMockStore()
	dbErr := errors.New("disk full")
	store.PackageRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Package")).Return(nil)
	store.VideoRepo.On("CreateBatch", mock.Anything, mock.MatchedBy(func(videos []*domain.Video) bool {
		return len(videos) == 5
	})).Return(dbErr)

	svc := NewPackageService(store, NewFinancialCalculator(DefaultPricing()), VideoCounts{PerPackage: 5, DefaultPerPost: 1}, f.rt)
	_, err := svc.CreatePackage(context.Background(), adminActor, &domain.CreatePackageRequest{
		ClientName: "Ana",
		Type:       domain.PackageTypePackage,
		TotalValue: dec("1000"),
	})

	assert.True(t, errors.Is(err, customError.ErrDatabase))
	assert.Equal(t, 0.0, testutil.ToFloat64(f.metrics.PackagesCreated.WithLabelValues("package")))
	store.PackageRepo.AssertExpectations(t)
	store.VideoRepo.AssertExpectations(t)
}

func TestCancelPackage(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	res := f.createPackage(t, domain.PackageTypePackage, "1000")

	_, err := f.packages.CancelPackage(ctx, financialActor, res.Package.ID)
	assert.True(t, errors.Is(err, customError.ErrPermissionDenied))

	cancelled, err := f.packages.CancelPackage(ctx, adminActor, res.Package.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.PackageStatusCancelled, cancelled.Status)

	_, err = f.packages.CancelPackage(ctx, adminActor, res.Package.ID)
	assert.True(t, errors.Is(err, customError.ErrInvalidTransition))

	_, err = f.packages.CancelPackage(ctx, adminActor, uuid.New())
	assert.True(t, errors.Is(err, customError.ErrNotFound))
}

func TestCancelPackage_CompletedIsFinal(t *testing.T) {
	f := newFixture(t)
	res := f.createPackage(t, domain.PackageTypePost, "100")
	f.advanceTo(t, res.Videos[0], domain.VideoStatusEngaged)

	_, err := f.packages.CancelPackage(context.Background(), adminActor, res.Package.ID)

	assert.True(t, errors.Is(err, customError.ErrInvalidTransition))
	assert.Equal(t, domain.PackageStatusCompleted, f.packageStatus(t, res.Package))
}

func TestListPackagesAndVideos(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	pkg := f.createPackage(t, domain.PackageTypePackage, "1000")
	f.now = f.now.Add(1)
	post := f.createPackage(t, domain.PackageTypePost, "100")

	all, err := f.packages.ListPackages(ctx, managerActor, domain.PackageFilter{})
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, post.Package.ID, all[0].ID)

	posts, err := f.packages.ListPackages(ctx, financialActor, domain.PackageFilter{Type: domain.PackageTypePost})
	require.NoError(t, err)
	require.Len(t, posts, 1)

	_, err = f.packages.ListPackages(ctx, adminActor, domain.PackageFilter{Status: "archived"})
	assert.True(t, errors.Is(err, customError.ErrValidation))

	_, err = f.packages.ListPackages(ctx, guestActor, domain.PackageFilter{})
	assert.True(t, errors.Is(err, customError.ErrPermissionDenied))

	got, err := f.packages.GetPackage(ctx, financialActor, pkg.Package.ID)
	require.NoError(t, err)
	assert.Equal(t, pkg.Package.ID, got.ID)

	videos, err := f.packages.ListVideos(ctx, managerActor, pkg.Package.ID)
	require.NoError(t, err)
	assert.Len(t, videos, 5)

	_, err = f.packages.ListVideos(ctx, financialActor, pkg.Package.ID)
	assert.True(t, errors.Is(err, customError.ErrPermissionDenied))

	_, err = f.packages.ListVideos(ctx, adminActor, uuid.New())
	assert.Equal(t, customError.ErrCodePackageNotFound, customError.Code(err))
}

func TestQuote(t *testing.T) {
	f := newFixture(t)

	quote, err := f.packages.Quote(context.Background(), &domain.QuoteRequest{Type: domain.PackageTypePackage, TotalValue: dec("0")})
	require.NoError(t, err)
	assertDecimal(t, "-30", quote.NetProfit, "net profit")
	assert.True(t, quote.IsLoss)

	_, err = f.packages.Quote(context.Background(), &domain.QuoteRequest{Type: domain.PackageTypePost, TotalValue: dec("-5")})
	assert.True(t, errors.Is(err, customError.ErrValidation))

	all, err := f.store.Packages().List(context.Background(), domain.PackageFilter{})
	require.NoError(t, err)
	assert.Empty(t, all, "quotes are never stored")
}
