package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ritmodivulga/promo-engine/internal/domain"
	customError "github.com/ritmodivulga/promo-engine/pkg/errors"
)

func strPtr(s string) *string { return &s }

func TestCreateClient(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	client, err := f.clients.CreateClient(ctx, adminActor, &domain.CreateClientRequest{
		Name:       "  MC Lua ",
		AgencyName: strPtr("   "),
		IsFrequent: true,
	})
	require.NoError(t, err)
	assert.Equal(t, "MC Lua", client.Name)
	assert.Nil(t, client.AgencyName)
	assert.True(t, client.IsFrequent)
	assert.Equal(t, f.now, client.CreatedAt)

	stored, err := f.clients.GetClient(ctx, managerActor, client.ID)
	require.NoError(t, err)
	assert.Equal(t, client.Name, stored.Name)
}

func TestCreateClient_Rejects(t *testing.T) {
	tests := []struct {
		name   string
		actor  domain.Actor
		req    domain.CreateClientRequest
		target error
	}{
		{name: "missing name", actor: adminActor, req: domain.CreateClientRequest{}, target: customError.ErrValidation},
		{name: "blank name", actor: adminActor, req: domain.CreateClientRequest{Name: "   "}, target: customError.ErrValidation},
		{name: "financial", actor: financialActor, req: domain.CreateClientRequest{Name: "Ana"}, target: customError.ErrPermissionDenied},
		{name: "video manager", actor: managerActor, req: domain.CreateClientRequest{Name: "Ana"}, target: customError.ErrPermissionDenied},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			req := tt.req

			_, err := f.clients.CreateClient(context.Background(), tt.actor, &req)

			assert.True(t, errors.Is(err, tt.target), "got %v", err)
		})
	}
}

func TestUpdateClient(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	client, err := f.clients.CreateClient(ctx, adminActor, &domain.CreateClientRequest{Name: "Ana", AgencyName: strPtr("Som Livre")})
	require.NoError(t, err)
	pkg, err := f.packages.CreatePackage(ctx, adminActor, &domain.CreatePackageRequest{
		ClientID:   uuid.NullUUID{UUID: client.ID, Valid: true},
		Type:       domain.PackageTypePost,
		TotalValue: dec("100"),
	})
	require.NoError(t, err)

	frequent := true
	updated, err := f.clients.UpdateClient(ctx, adminActor, client.ID, &domain.UpdateClientRequest{
		Name:       strPtr("Ana Souza"),
		IsFrequent: &frequent,
	})
	require.NoError(t, err)
	assert.Equal(t, "Ana Souza", updated.Name)
	require.NotNil(t, updated.AgencyName)
	assert.Equal(t, "Som Livre", *updated.AgencyName)
	assert.True(t, updated.IsFrequent)

	updated, err = f.clients.UpdateClient(ctx, adminActor, client.ID, &domain.UpdateClientRequest{AgencyName: strPtr("")})
	require.NoError(t, err)
	assert.Nil(t, updated.AgencyName)

	got, err := f.packages.GetPackage(ctx, adminActor, pkg.Package.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ana", got.ClientName, "packages keep the name they were sold under")

	_, err = f.clients.UpdateClient(ctx, adminActor, client.ID, &domain.UpdateClientRequest{Name: strPtr("  ")})
	assert.True(t, errors.Is(err, customError.ErrValidation))

	_, err = f.clients.UpdateClient(ctx, financialActor, client.ID, &domain.UpdateClientRequest{Name: strPtr("X")})
	assert.True(t, errors.Is(err, customError.ErrPermissionDenied))

	_, err = f.clients.UpdateClient(ctx, adminActor, uuid.New(), &domain.UpdateClientRequest{Name: strPtr("X")})
	assert.Equal(t, customError.ErrCodeClientNotFound, customError.Code(err))

	stored, err := f.clients.GetClient(ctx, adminActor, client.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ana Souza", stored.Name)
}

func TestListClients(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	for _, name := range []string{"Zeca", "Ana", "Bia"} {
		_, err := f.clients.CreateClient(ctx, adminActor, &domain.CreateClientRequest{Name: name})
		require.NoError(t, err)
	}

	clients, err := f.clients.ListClients(ctx, financialActor)
	require.NoError(t, err)
	require.Len(t, clients, 3)
	assert.Equal(t, "Ana", clients[0].Name)
	assert.Equal(t, "Zeca", clients[2].Name)

	_, err = f.clients.ListClients(ctx, guestActor)
	assert.True(t, errors.Is(err, customError.ErrPermissionDenied))
}

func TestDeleteClient_KeepsPackages(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	client, err := f.clients.CreateClient(ctx, adminActor, &domain.CreateClientRequest{Name: "Ana"})
	require.NoError(t, err)
	pkg, err := f.packages.CreatePackage(ctx, adminActor, &domain.CreatePackageRequest{
		ClientID:   uuid.NullUUID{UUID: client.ID, Valid: true},
		Type:       domain.PackageTypePackage,
		TotalValue: dec("1000"),
	})
	require.NoError(t, err)

	err = f.clients.DeleteClient(ctx, managerActor, client.ID)
	assert.True(t, errors.Is(err, customError.ErrPermissionDenied))

	require.NoError(t, f.clients.DeleteClient(ctx, adminActor, client.ID))

	_, err = f.clients.GetClient(ctx, adminActor, client.ID)
	assert.True(t, errors.Is(err, customError.ErrNotFound))
	err = f.clients.DeleteClient(ctx, adminActor, client.ID)
	assert.Equal(t, customError.ErrCodeClientNotFound, customError.Code(err))

	got, err := f.packages.GetPackage(ctx, adminActor, pkg.Package.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ana", got.ClientName)
}

func TestClientPackagesAndRevenue(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	ana, err := f.clients.CreateClient(ctx, adminActor, &domain.CreateClientRequest{Name: "Ana"})
	require.NoError(t, err)
	bia, err := f.clients.CreateClient(ctx, adminActor, &domain.CreateClientRequest{Name: "Bia"})
	require.NoError(t, err)

	buy := func(client *domain.Client, typ domain.PackageType, total string) *domain.Package {
		res, err := f.packages.CreatePackage(ctx, adminActor, &domain.CreatePackageRequest{
			ClientID:   uuid.NullUUID{UUID: client.ID, Valid: true},
			Type:       typ,
			TotalValue: dec(total),
		})
		require.NoError(t, err)
		return res.Package
	}
	buy(ana, domain.PackageTypePackage, "1000")
	cancelled := buy(ana, domain.PackageTypePost, "150.50")
	buy(bia, domain.PackageTypePost, "300")
	_, err = f.packages.CancelPackage(ctx, adminActor, cancelled.ID)
	require.NoError(t, err)

	packages, err := f.clients.ClientPackages(ctx, managerActor, ana.ID)
	require.NoError(t, err)
	assert.Len(t, packages, 2)

	revenue, err := f.clients.ClientRevenue(ctx, financialActor, ana.ID)
	require.NoError(t, err)
	assertDecimal(t, "1150.50", revenue, "revenue")

	_, err = f.clients.ClientRevenue(ctx, managerActor, ana.ID)
	assert.True(t, errors.Is(err, customError.ErrPermissionDenied))

	_, err = f.clients.ClientPackages(ctx, adminActor, uuid.New())
	assert.Equal(t, customError.ErrCodeClientNotFound, customError.Code(err))
}
