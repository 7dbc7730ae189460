package service

import (
	"context"
	"reflect"

	"github.com/ccfreem/sickfits/internal/infra/repository/db"
	"github.com/ccfreem/sickfits/internal/infra/repository/db/sqlc"
	"github.com/ccfreem/sickfits/internal/model"
	"github.com/google/uuid"
)

type IOrderService interface {
	// GetOrder is visible to the owner and to holders of the order read set.
	//
	// Errors:
	//   - apperr.ErrAuthenticationRequired
	//   - apperr.ErrNotFound
	//   - apperr.ErrAuthorizationDenied
	GetOrder(ctx context.Context, session *model.Session, id uuid.UUID) (*model.OrderModel, error)
	// ListOrders returns the caller's orders, newest first.
	ListOrders(ctx context.Context, session *model.Session) ([]model.OrderModel, error)
}

type OrderService struct {
	dbDao             db.IStore
	userService       IUserService
	permissionService IPermissionService
}

func NewOrderService(dbDao db.IStore, userService IUserService, permissionService IPermissionService) IOrderService {
	if reflect.ValueOf(dbDao).IsNil() {
		panic("order service initialization failed: dbDao cannot be nil")
	}
	if reflect.ValueOf(userService).IsNil() {
		panic("order service initialization failed: userService cannot be nil")
	}
	if reflect.ValueOf(permissionService).IsNil() {
		panic("order service initialization failed: permissionService cannot be nil")
	}

	return &OrderService{
		dbDao:             dbDao,
		userService:       userService,
		permissionService: permissionService,
	}
}

func (s *OrderService) GetOrder(ctx context.Context, session *model.Session, id uuid.UUID) (*model.OrderModel, error) {
	caller, err := s.userService.CurrentUser(ctx, session)
	if err != nil {
		return nil, err
	}

	order, err := loadOrder(ctx, s.dbDao, id)
	if err != nil {
		return nil, err
	}
	if err := s.permissionService.CanReadOrder(caller, order); err != nil {
		return nil, err
	}
	return order, nil
}

func (s *OrderService) ListOrders(ctx context.Context, session *model.Session) ([]model.OrderModel, error) {
	caller, err := s.userService.CurrentUser(ctx, session)
	if err != nil {
		return nil, err
	}

	entities, err := s.dbDao.ListOrdersByUser(ctx, db.PgUUID(caller.ID))
	if err != nil {
		return nil, internalErr(err, "list orders")
	}
	orders := make([]model.OrderModel, 0, len(entities))
	for _, o := range entities {
		items, err := s.dbDao.ListOrderItemsByOrder(ctx, o.ID)
		if err != nil {
			return nil, internalErr(err, "list order items")
		}
		orders = append(orders, db.ToOrderModel(o, items))
	}
	return orders, nil
}

func loadOrder(ctx context.Context, q sqlc.Querier, id uuid.UUID) (*model.OrderModel, error) {
	orderEntity, err := q.GetOrderByID(ctx, db.PgUUID(id))
	if err != nil {
		return nil, storeErr(err, "no order found")
	}
	items, err := q.ListOrderItemsByOrder(ctx, orderEntity.ID)
	if err != nil {
		return nil, internalErr(err, "list order items")
	}
	order := db.ToOrderModel(orderEntity, items)
	return &order, nil
}
