package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ritmodivulga/promo-engine/internal/domain"
	"github.com/ritmodivulga/promo-engine/internal/repository"
	customError "github.com/ritmodivulga/promo-engine/pkg/errors"
)

type ClientService struct {
	store repository.Store
	rt    Runtime
}

func NewClientService(store repository.Store, rt Runtime) *ClientService {
	return &ClientService{store: store, rt: rt}
}

func (s *ClientService) CreateClient(ctx context.Context, actor domain.Actor, req *domain.CreateClientRequest) (*domain.Client, error) {
	if err := authorize(actor, "create clients", domain.RoleAdmin); err != nil {
		return nil, err
	}
	if err := validateStruct(req); err != nil {
		return nil, err
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, customError.WrapValidation("name is required")
	}

	now := s.rt.now()
	client := &domain.Client{
		ID:         uuid.New(),
		Name:       name,
		AgencyName: blankToNil(req.AgencyName),
		IsFrequent: req.IsFrequent,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.store.Clients().Create(ctx, client); err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	s.rt.Logger.InfoContext(ctx, "client created", slog.String("client_id", client.ID.String()))
	return client, nil
}

// UpdateClient changes the mutable fields present in req. Packages keep the
// client name they were created with.
func (s *ClientService) UpdateClient(ctx context.Context, actor domain.Actor, id uuid.UUID, req *domain.UpdateClientRequest) (*domain.Client, error) {
	if err := authorize(actor, "update clients", domain.RoleAdmin); err != nil {
		return nil, err
	}
	if err := validateStruct(req); err != nil {
		return nil, err
	}

	var client *domain.Client
	err := s.store.WithTx(ctx, func(tx repository.Store) error {
		var err error
		client, err = tx.Clients().GetByID(ctx, id)
		if err != nil {
			return notFound(err, func() *customError.BusinessError {
				return customError.WrapClientNotFound(id.String())
			})
		}

		if req.Name != nil {
			name := strings.TrimSpace(*req.Name)
			if name == "" {
				return customError.WrapValidation("name must not be blank")
			}
			client.Name = name
		}
		if req.AgencyName != nil {
			client.AgencyName = blankToNil(req.AgencyName)
		}
		if req.IsFrequent != nil {
			client.IsFrequent = *req.IsFrequent
		}
		client.UpdatedAt = s.rt.now()

		return dbError(tx.Clients().Update(ctx, client))
	})
	if err != nil {
		return nil, err
	}
	return client, nil
}

func (s *ClientService) GetClient(ctx context.Context, actor domain.Actor, id uuid.UUID) (*domain.Client, error) {
	if err := authenticated(actor, "view clients"); err != nil {
		return nil, err
	}

	client, err := s.store.Clients().GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, func() *customError.BusinessError {
			return customError.WrapClientNotFound(id.String())
		})
	}
	return client, nil
}

func (s *ClientService) ListClients(ctx context.Context, actor domain.Actor) ([]*domain.Client, error) {
	if err := authenticated(actor, "list clients"); err != nil {
		return nil, err
	}

	clients, err := s.store.Clients().List(ctx)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}
	return clients, nil
}

// DeleteClient removes a client. Its packages stay, still carrying the name
// snapshot and the now dangling client id.
func (s *ClientService) DeleteClient(ctx context.Context, actor domain.Actor, id uuid.UUID) error {
	if err := authorize(actor, "delete clients", domain.RoleAdmin); err != nil {
		return err
	}

	return s.store.WithTx(ctx, func(tx repository.Store) error {
		if _, err := tx.Clients().GetByID(ctx, id); err != nil {
			return notFound(err, func() *customError.BusinessError {
				return customError.WrapClientNotFound(id.String())
			})
		}
		return dbError(tx.Clients().Delete(ctx, id))
	})
}

// ClientPackages lists every package and post bought by the client.
func (s *ClientService) ClientPackages(ctx context.Context, actor domain.Actor, id uuid.UUID) ([]*domain.Package, error) {
	if err := authenticated(actor, "view client packages"); err != nil {
		return nil, err
	}
	if _, err := s.store.Clients().GetByID(ctx, id); err != nil {
		return nil, notFound(err, func() *customError.BusinessError {
			return customError.WrapClientNotFound(id.String())
		})
	}

	packages, err := s.store.Packages().List(ctx, domain.PackageFilter{
		ClientID: uuid.NullUUID{UUID: id, Valid: true},
	})
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}
	return packages, nil
}

// ClientRevenue sums the total value of every package the client bought,
// whatever its status.
func (s *ClientService) ClientRevenue(ctx context.Context, actor domain.Actor, id uuid.UUID) (decimal.Decimal, error) {
	if err := authorize(actor, "view client revenue", domain.RoleAdmin, domain.RoleFinancial); err != nil {
		return decimal.Zero, err
	}

	packages, err := s.ClientPackages(ctx, actor, id)
	if err != nil {
		return decimal.Zero, err
	}

	total := decimal.Zero
	for _, p := range packages {
		total = total.Add(p.TotalValue)
	}
	return total, nil
}

func blankToNil(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
