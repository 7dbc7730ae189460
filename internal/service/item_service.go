package service

import (
	"context"
	"reflect"
	"strings"
	"time"

	"github.com/ccfreem/sickfits/internal/apperr"
	"github.com/ccfreem/sickfits/internal/constants"
	"github.com/ccfreem/sickfits/internal/infra/repository/db"
	"github.com/ccfreem/sickfits/internal/infra/repository/db/sqlc"
	"github.com/ccfreem/sickfits/internal/model"
	"github.com/google/uuid"
)

type IItemService interface {
	// CreateItem stores a new item owned by the caller.
	//
	// Errors:
	//   - apperr.ErrAuthenticationRequired
	//   - apperr.ErrAuthorizationDenied: item policy "create"
	//   - apperr.ErrValidationFailed: empty title or negative price
	CreateItem(ctx context.Context, session *model.Session, input model.ItemInput) (*model.ItemModel, error)
	// UpdateItem changes only the fields set in patch.
	//
	// Errors:
	//   - apperr.ErrAuthenticationRequired
	//   - apperr.ErrNotFound
	//   - apperr.ErrAuthorizationDenied: item policy "update"
	//   - apperr.ErrValidationFailed
	UpdateItem(ctx context.Context, session *model.Session, id uuid.UUID, patch model.ItemPatch) (*model.ItemModel, error)
	// DeleteItem returns the deleted item.
	//
	// Errors:
	//   - apperr.ErrAuthenticationRequired
	//   - apperr.ErrNotFound
	//   - apperr.ErrAuthorizationDenied: item policy "delete"
	DeleteItem(ctx context.Context, session *model.Session, id uuid.UUID) (*model.ItemModel, error)
	GetItem(ctx context.Context, id uuid.UUID) (*model.ItemModel, error)
	ListItems(ctx context.Context, query model.ItemQuery) ([]model.ItemModel, error)
	CountItems(ctx context.Context, search string) (int64, error)
}

type ItemService struct {
	dbDao             db.IStore
	userService       IUserService
	permissionService IPermissionService
	now               func() time.Time
}

func NewItemService(dbDao db.IStore, userService IUserService, permissionService IPermissionService) IItemService {
	if reflect.ValueOf(dbDao).IsNil() {
		panic("item service initialization failed: dbDao cannot be nil")
	}
	if reflect.ValueOf(userService).IsNil() {
		panic("item service initialization failed: userService cannot be nil")
	}
	if reflect.ValueOf(permissionService).IsNil() {
		panic("item service initialization failed: permissionService cannot be nil")
	}

	return &ItemService{
		dbDao:             dbDao,
		userService:       userService,
		permissionService: permissionService,
		now:               time.Now,
	}
}

func (s *ItemService) CreateItem(ctx context.Context, session *model.Session, input model.ItemInput) (*model.ItemModel, error) {
	caller, err := s.userService.CurrentUser(ctx, session)
	if err != nil {
		return nil, err
	}
	if err := s.permissionService.AuthorizeItem(caller, ItemActionCreate, nil); err != nil {
		return nil, err
	}

	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, apperr.New(apperr.KindValidationFailed, "title is required")
	}
	if input.Price < 0 {
		return nil, apperr.New(apperr.KindValidationFailed, "price cannot be negative")
	}

	now := s.now()
	itemEntity, err := s.dbDao.CreateItem(ctx, sqlc.CreateItemParams{
		ID:          db.PgUUID(uuid.New()),
		Title:       title,
		Description: input.Description,
		Image:       db.PgText(input.Image),
		LargeImage:  db.PgText(input.LargeImage),
		Price:       input.Price,
		UserID:      db.PgUUID(caller.ID),
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		return nil, internalErr(err, "create item")
	}

	item := db.ToItemModel(itemEntity)
	return &item, nil
}

func (s *ItemService) UpdateItem(ctx context.Context, session *model.Session, id uuid.UUID, patch model.ItemPatch) (*model.ItemModel, error) {
	caller, err := s.userService.CurrentUser(ctx, session)
	if err != nil {
		return nil, err
	}
	existing, err := s.GetItem(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.permissionService.AuthorizeItem(caller, ItemActionUpdate, existing); err != nil {
		return nil, err
	}

	if patch.Title != nil {
		title := strings.TrimSpace(*patch.Title)
		if title == "" {
			return nil, apperr.New(apperr.KindValidationFailed, "title cannot be empty")
		}
		patch.Title = &title
	}
	if patch.Price != nil && *patch.Price < 0 {
		return nil, apperr.New(apperr.KindValidationFailed, "price cannot be negative")
	}

	itemEntity, err := s.dbDao.UpdateItem(ctx, sqlc.UpdateItemParams{
		Title:       db.PgText(patch.Title),
		Description: db.PgText(patch.Description),
		Image:       db.PgText(patch.Image),
		LargeImage:  db.PgText(patch.LargeImage),
		Price:       db.PgInt4(patch.Price),
		UpdatedAt:   s.now(),
		ID:          db.PgUUID(id),
	})
	if err != nil {
		return nil, storeErr(err, "no item found")
	}

	item := db.ToItemModel(itemEntity)
	return &item, nil
}

func (s *ItemService) DeleteItem(ctx context.Context, session *model.Session, id uuid.UUID) (*model.ItemModel, error) {
	caller, err := s.userService.CurrentUser(ctx, session)
	if err != nil {
		return nil, err
	}
	item, err := s.GetItem(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.permissionService.AuthorizeItem(caller, ItemActionDelete, item); err != nil {
		return nil, err
	}

	if err := s.dbDao.DeleteItem(ctx, db.PgUUID(id)); err != nil {
		return nil, internalErr(err, "delete item")
	}
	return item, nil
}

func (s *ItemService) GetItem(ctx context.Context, id uuid.UUID) (*model.ItemModel, error) {
	itemEntity, err := s.dbDao.GetItemByID(ctx, db.PgUUID(id))
	if err != nil {
		return nil, storeErr(err, "no item found")
	}
	item := db.ToItemModel(itemEntity)
	return &item, nil
}

func (s *ItemService) ListItems(ctx context.Context, query model.ItemQuery) ([]model.ItemModel, error) {
	first := query.First
	if first <= 0 {
		first = constants.DefaultItemsPageSize
	}
	if first > constants.MaxItemsPageSize {
		first = constants.MaxItemsPageSize
	}
	skip := query.Skip
	if skip < 0 {
		skip = 0
	}
	orderBy := query.OrderBy
	if orderBy == "" {
		orderBy = model.ItemOrderByCreatedAtDesc
	}
	if !orderBy.Valid() {
		return nil, apperr.Newf(apperr.KindValidationFailed, "unknown orderBy %q", orderBy)
	}

	entities, err := s.dbDao.ListItems(ctx, sqlc.ListItemsParams{
		Search:     strings.TrimSpace(query.Search),
		OrderBy:    string(orderBy),
		PageLimit:  first,
		PageOffset: skip,
	})
	if err != nil {
		return nil, internalErr(err, "list items")
	}

	items := make([]model.ItemModel, 0, len(entities))
	for _, e := range entities {
		items = append(items, db.ToItemModel(e))
	}
	return items, nil
}

func (s *ItemService) CountItems(ctx context.Context, search string) (int64, error) {
	count, err := s.dbDao.CountItems(ctx, strings.TrimSpace(search))
	if err != nil {
		return 0, internalErr(err, "count items")
	}
	return count, nil
}
