package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"reflect"
	"strings"
	"time"

	"github.com/ccfreem/sickfits/internal/apperr"
	"github.com/ccfreem/sickfits/internal/constants"
	"github.com/ccfreem/sickfits/internal/infra/cache"
	"github.com/ccfreem/sickfits/internal/infra/event"
	"github.com/ccfreem/sickfits/internal/infra/payment"
	"github.com/ccfreem/sickfits/internal/infra/repository/db"
	"github.com/ccfreem/sickfits/internal/infra/repository/db/sqlc"
	"github.com/ccfreem/sickfits/internal/model"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const (
	checkoutLockPrefix = "checkout:lock:"
	stalledBatchSize   = 50
)

type ICheckoutService interface {
	// CreateOrder charges the caller's cart and turns it into an order.
	//
	// Steps:
	//  1. lock the caller's checkout
	//  2. drive checkouts an earlier attempt left open to their order
	//  3. snapshot the cart into a pending checkout
	//  4. charge with the checkout id as idempotency key
	//  5. record the charge
	//  6. create the order and settle the charged cart lines in one transaction
	//  7. publish order.created and mail a receipt, failures only logged
	//
	// Errors:
	//   - apperr.ErrAuthenticationRequired
	//   - apperr.ErrValidationFailed: no payment token, empty cart, checkout already running
	//   - apperr.ErrUpstreamFailure: the charge was declined, no order is created and the cart is kept.
	//     Also returned when the gateway outcome is unknown, the checkout then stays pending and is replayed.
	CreateOrder(ctx context.Context, session *model.Session, paymentToken string) (*model.OrderModel, error)
	// ResumeCheckout drives a checkout to its order. A pending checkout replays its charge
	// under the same idempotency key, a charged one is completed from its snapshot and a
	// completed one returns its order.
	//
	// Errors:
	//   - apperr.ErrNotFound
	//   - apperr.ErrValidationFailed: checkout failed, or a checkout of the same user is running
	//   - apperr.ErrUpstreamFailure: the replayed charge was declined or is still unknown
	ResumeCheckout(ctx context.Context, checkoutID uuid.UUID) (*model.OrderModel, error)
	// ResumeStalled resumes pending and charged checkouts untouched for olderThan.
	// Users with a running checkout are skipped. Returns how many orders were created.
	ResumeStalled(ctx context.Context, olderThan time.Duration) (int, error)
}

type CheckoutService struct {
	dbDao       db.IStore
	userService IUserService
	cache       cache.Cache
	gateway     payment.Gateway
	publisher   event.Publisher
	mailService IMailService
	now         func() time.Time
}

func NewCheckoutService(dbDao db.IStore, userService IUserService, c cache.Cache, gateway payment.Gateway, publisher event.Publisher, mailService IMailService) ICheckoutService {
	if reflect.ValueOf(dbDao).IsNil() {
		panic("checkout service initialization failed: dbDao cannot be nil")
	}
	if reflect.ValueOf(userService).IsNil() {
		panic("checkout service initialization failed: userService cannot be nil")
	}
	if reflect.ValueOf(c).IsNil() {
		panic("checkout service initialization failed: cache cannot be nil")
	}
	if reflect.ValueOf(gateway).IsNil() {
		panic("checkout service initialization failed: gateway cannot be nil")
	}
	if publisher == nil {
		panic("checkout service initialization failed: publisher cannot be nil")
	}
	if reflect.ValueOf(mailService).IsNil() {
		panic("checkout service initialization failed: mailService cannot be nil")
	}

	return &CheckoutService{
		dbDao:       dbDao,
		userService: userService,
		cache:       c,
		gateway:     gateway,
		publisher:   publisher,
		mailService: mailService,
		now:         time.Now,
	}
}

func (s *CheckoutService) CreateOrder(ctx context.Context, session *model.Session, paymentToken string) (*model.OrderModel, error) {
	caller, err := s.userService.CurrentUser(ctx, session)
	if err != nil {
		return nil, err
	}
	paymentToken = strings.TrimSpace(paymentToken)
	if paymentToken == "" {
		return nil, apperr.New(apperr.KindValidationFailed, "a payment token is required")
	}

	unlock, err := s.lock(ctx, caller.ID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	recovered, err := s.recoverOpen(ctx, caller)
	if err != nil {
		return nil, err
	}

	rows, err := s.dbDao.ListCartItemsByUser(ctx, db.PgUUID(caller.ID))
	if err != nil {
		return nil, internalErr(err, "load cart")
	}
	if len(rows) == 0 {
		// a retried request whose earlier attempt got charged
		if recovered != nil {
			return recovered, nil
		}
		return nil, apperr.New(apperr.KindValidationFailed, "Your cart is empty")
	}

	lines, total, err := snapshotCart(rows)
	if err != nil {
		return nil, err
	}
	checkout, err := s.reserve(ctx, caller.ID, paymentToken, lines, total)
	if err != nil {
		return nil, err
	}

	charged, err := s.charge(ctx, checkout)
	if err != nil {
		return nil, err
	}

	// from here the money is taken, the rest must not be cancelled halfway
	ctx = context.WithoutCancel(ctx)
	order, created, err := s.complete(ctx, charged)
	if err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Str("checkout_id", checkout.ID.String()).Msg("charged checkout left for the resumer")
		return nil, err
	}
	if created {
		s.notify(ctx, charged, order, caller)
	}
	return order, nil
}

func (s *CheckoutService) ResumeCheckout(ctx context.Context, checkoutID uuid.UUID) (*model.OrderModel, error) {
	checkout, err := s.getCheckout(ctx, checkoutID)
	if err != nil {
		return nil, err
	}
	if checkout.Status == model.CheckoutCompleted {
		return s.completedOrder(ctx, checkout)
	}

	unlock, err := s.lock(ctx, checkout.UserID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	order, _, err := s.resume(ctx, checkoutID, nil)
	return order, err
}

func (s *CheckoutService) ResumeStalled(ctx context.Context, olderThan time.Duration) (int, error) {
	entities, err := s.dbDao.ListStalledCheckouts(ctx, sqlc.ListStalledCheckoutsParams{
		UpdatedAt: s.now().Add(-olderThan),
		Limit:     stalledBatchSize,
	})
	if err != nil {
		return 0, internalErr(err, "list stalled checkouts")
	}

	logger := zerolog.Ctx(ctx)
	created := 0
	var errs []error
	for _, e := range entities {
		id := db.FromPgUUID(e.ID)
		userID := db.FromPgUUID(e.UserID)

		unlock, ok, err := s.tryLock(ctx, userID)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if !ok {
			// its charge may still be in flight
			logger.Debug().Str("checkout_id", id.String()).Msg("checkout running, skipping")
			continue
		}

		_, isNew, err := s.resume(ctx, id, nil)
		unlock()
		if err != nil {
			if payment.IsFinal(err) {
				logger.Info().Str("checkout_id", id.String()).Msg("stalled checkout declined")
				continue
			}
			logger.Error().Err(err).Str("checkout_id", id.String()).Msg("resume checkout")
			errs = append(errs, err)
			continue
		}
		if isNew {
			created++
		}
	}
	return created, errors.Join(errs...)
}

// tryLock takes the per-user checkout lock. ok is false when another checkout holds it.
func (s *CheckoutService) tryLock(ctx context.Context, userID uuid.UUID) (unlock func(), ok bool, err error) {
	key := checkoutLockPrefix + userID.String()
	owner := uuid.NewString()
	ok, err = s.cache.SetNX(ctx, key, owner, constants.CheckoutLockTTL)
	if err != nil {
		return nil, false, internalErr(err, "acquire checkout lock")
	}
	if !ok {
		return nil, false, nil
	}

	return func() {
		if _, err := s.cache.CompareAndDelete(context.WithoutCancel(ctx), key, owner); err != nil {
			zerolog.Ctx(ctx).Warn().Err(err).Str("user_id", userID.String()).Msg("release checkout lock")
		}
	}, true, nil
}

// lock is tryLock failing with a validation error when the lock is held.
func (s *CheckoutService) lock(ctx context.Context, userID uuid.UUID) (func(), error) {
	unlock, ok, err := s.tryLock(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperr.New(apperr.KindValidationFailed, "checkout already in progress")
	}
	return unlock, nil
}

// recoverOpen drives the caller's open checkouts to their orders before a new one starts.
// A replayed charge that is declined leaves that checkout failed and does not block
// the new checkout. Returns the last order it completed.
func (s *CheckoutService) recoverOpen(ctx context.Context, caller *model.UserModel) (*model.OrderModel, error) {
	entities, err := s.dbDao.ListOpenCheckoutsByUser(ctx, db.PgUUID(caller.ID))
	if err != nil {
		return nil, internalErr(err, "list open checkouts")
	}

	var recovered *model.OrderModel
	for _, e := range entities {
		order, _, err := s.resume(ctx, db.FromPgUUID(e.ID), caller)
		if err != nil {
			if payment.IsFinal(err) {
				continue
			}
			return nil, err
		}
		recovered = order
	}
	return recovered, nil
}

// resume drives one checkout forward. The caller holds the buyer's checkout lock.
// buyer may be nil, it is then loaded for the receipt.
func (s *CheckoutService) resume(ctx context.Context, checkoutID uuid.UUID, buyer *model.UserModel) (*model.OrderModel, bool, error) {
	checkout, err := s.getCheckout(ctx, checkoutID)
	if err != nil {
		return nil, false, err
	}

	switch checkout.Status {
	case model.CheckoutCompleted:
		order, err := s.completedOrder(ctx, checkout)
		return order, false, err
	case model.CheckoutPending:
		checkout, err = s.charge(ctx, checkout)
		if err != nil {
			return nil, false, err
		}
	case model.CheckoutCharged:
	default:
		return nil, false, apperr.Newf(apperr.KindValidationFailed, "checkout is %s and cannot be resumed", checkout.Status)
	}

	ctx = context.WithoutCancel(ctx)
	order, created, err := s.complete(ctx, checkout)
	if err != nil {
		return nil, false, err
	}
	if !created {
		return order, false, nil
	}
	if buyer == nil {
		buyer, err = s.userService.GetUserByID(ctx, checkout.UserID)
		if err != nil {
			zerolog.Ctx(ctx).Warn().Err(err).Str("checkout_id", checkoutID.String()).Msg("buyer not found, skipping receipt")
			buyer = nil
		}
	}
	s.notify(ctx, checkout, order, buyer)
	return order, true, nil
}

func snapshotCart(rows []sqlc.ListCartItemsByUserRow) ([]model.CheckoutLine, int32, error) {
	lines := make([]model.CheckoutLine, 0, len(rows))
	var total int64
	for _, row := range rows {
		item := db.ToItemModel(row.Item)
		line := model.CheckoutLine{
			CartItemID:  db.FromPgUUID(row.CartItem.ID),
			Title:       item.Title,
			Description: item.Description,
			Price:       item.Price,
			Quantity:    row.CartItem.Quantity,
		}
		if item.Image != nil {
			line.Image = *item.Image
		}
		if item.LargeImage != nil {
			line.LargeImage = *item.LargeImage
		}
		lines = append(lines, line)
		total += int64(line.Price) * int64(line.Quantity)
	}
	if total > math.MaxInt32 {
		return nil, 0, apperr.New(apperr.KindValidationFailed, "order total is too large")
	}
	return lines, int32(total), nil
}

func (s *CheckoutService) reserve(ctx context.Context, userID uuid.UUID, paymentToken string, lines []model.CheckoutLine, total int32) (*model.CheckoutModel, error) {
	linesJSON, err := json.Marshal(lines)
	if err != nil {
		return nil, internalErr(err, "encode checkout lines")
	}

	now := s.now()
	entity, err := s.dbDao.CreateCheckout(ctx, sqlc.CreateCheckoutParams{
		ID:           db.PgUUID(uuid.New()),
		UserID:       db.PgUUID(userID),
		Status:       string(model.CheckoutPending),
		Total:        total,
		Lines:        linesJSON,
		PaymentToken: paymentToken,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return nil, internalErr(err, "create checkout")
	}
	checkout, err := db.ToCheckoutModel(entity)
	if err != nil {
		return nil, internalErr(err, "decode checkout")
	}
	return &checkout, nil
}

// charge asks the gateway for the checkout's charge and records it. The checkout id is
// the idempotency key, so replaying a pending checkout never charges twice. A final
// rejection fails the checkout, any other gateway error leaves it pending.
func (s *CheckoutService) charge(ctx context.Context, checkout *model.CheckoutModel) (*model.CheckoutModel, error) {
	logger := zerolog.Ctx(ctx).With().Str("checkout_id", checkout.ID.String()).Logger()

	chargeCtx, cancel := context.WithTimeout(ctx, constants.ChargeTimeout)
	res, err := s.gateway.Charge(chargeCtx, payment.ChargeRequest{
		Amount:         int64(checkout.Total),
		Currency:       constants.Currency,
		Source:         checkout.PaymentToken,
		IdempotencyKey: checkout.ID.String(),
		Description:    fmt.Sprintf("Sick Fits checkout %s", checkout.ID),
	})
	cancel()
	if err != nil {
		if !payment.IsFinal(err) {
			logger.Warn().Err(err).Msg("charge outcome unknown, checkout stays pending")
			return nil, apperr.Wrap(apperr.KindUpstreamFailure, err, "payment could not be confirmed, it will be retried")
		}
		s.fail(context.WithoutCancel(ctx), checkout.ID, err.Error())
		logger.Warn().Err(err).Msg("charge rejected")
		if errors.Is(err, payment.ErrDeclined) {
			return nil, apperr.Wrap(apperr.KindUpstreamFailure, err, "Your card was declined")
		}
		return nil, apperr.Wrap(apperr.KindUpstreamFailure, err, "payment could not be processed")
	}

	ctx = context.WithoutCancel(ctx)
	if res.Amount > math.MaxInt32 {
		return nil, apperr.Newf(apperr.KindInternal, "charged amount %d out of range", res.Amount)
	}
	chargedAmount := int32(res.Amount)
	entity, err := s.dbDao.MarkCheckoutCharged(ctx, sqlc.MarkCheckoutChargedParams{
		ID:            db.PgUUID(checkout.ID),
		ChargeID:      db.PgText(&res.ID),
		ChargedAmount: db.PgInt4(&chargedAmount),
		UpdatedAt:     s.now(),
	})
	if err != nil {
		if !db.IsNoRows(err) {
			logger.Error().Err(err).Str("charge_id", res.ID).Msg("charge taken but not recorded")
			return nil, internalErr(err, "record charge")
		}
		// another replay of the same checkout recorded it first
		current, getErr := s.getCheckout(ctx, checkout.ID)
		if getErr != nil {
			return nil, getErr
		}
		if current.Status != model.CheckoutCharged && current.Status != model.CheckoutCompleted {
			logger.Error().Str("charge_id", res.ID).Str("status", string(current.Status)).Msg("charge taken for a closed checkout")
			return nil, apperr.Newf(apperr.KindInternal, "charge %s taken for a %s checkout", res.ID, current.Status)
		}
		return current, nil
	}
	charged, err := db.ToCheckoutModel(entity)
	if err != nil {
		return nil, internalErr(err, "decode checkout")
	}
	return &charged, nil
}

func (s *CheckoutService) fail(ctx context.Context, checkoutID uuid.UUID, reason string) {
	_, err := s.dbDao.MarkCheckoutFailed(ctx, sqlc.MarkCheckoutFailedParams{
		ID:            db.PgUUID(checkoutID),
		FailureReason: db.PgText(&reason),
		UpdatedAt:     s.now(),
	})
	if err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Str("checkout_id", checkoutID.String()).Msg("mark checkout failed")
	}
}

// complete writes the order, settles the charged cart lines and marks the checkout
// completed in one transaction. When another caller completed it first, its order
// is returned with created false.
func (s *CheckoutService) complete(ctx context.Context, checkout *model.CheckoutModel) (*model.OrderModel, bool, error) {
	if checkout.ChargeID == nil || checkout.ChargedAmount == nil {
		return nil, false, apperr.New(apperr.KindValidationFailed, "checkout has no recorded charge")
	}

	now := s.now()
	orderID := uuid.New()
	userID := db.PgUUID(checkout.UserID)

	var orderEntity sqlc.Order
	orderItems := make([]sqlc.OrderItem, 0, len(checkout.Lines))
	fns := []func(sqlc.Querier) error{
		// claims the checkout first so a concurrent completion finds nothing to update
		func(q sqlc.Querier) error {
			_, err := q.MarkCheckoutCompleted(ctx, sqlc.MarkCheckoutCompletedParams{
				ID:        db.PgUUID(checkout.ID),
				OrderID:   db.PgUUID(orderID),
				UpdatedAt: now,
			})
			return err
		},
		func(q sqlc.Querier) error {
			var err error
			orderEntity, err = q.CreateOrder(ctx, sqlc.CreateOrderParams{
				ID:        db.PgUUID(orderID),
				Total:     *checkout.ChargedAmount,
				Charge:    *checkout.ChargeID,
				UserID:    userID,
				CreatedAt: now,
				UpdatedAt: now,
			})
			return err
		},
		func(q sqlc.Querier) error {
			for i, line := range checkout.Lines {
				orderItem, err := q.CreateOrderItem(ctx, sqlc.CreateOrderItemParams{
					ID:          db.PgUUID(uuid.New()),
					OrderID:     db.PgUUID(orderID),
					Title:       line.Title,
					Description: line.Description,
					Image:       line.Image,
					LargeImage:  line.LargeImage,
					Price:       line.Price,
					Quantity:    line.Quantity,
					UserID:      userID,
					Position:    int32(i),
				})
				if err != nil {
					return err
				}
				orderItems = append(orderItems, orderItem)
			}
			return nil
		},
		// a line the buyer added to while the charge ran keeps the uncharged quantity
		func(q sqlc.Querier) error {
			for _, line := range checkout.Lines {
				id := db.PgUUID(line.CartItemID)
				n, err := q.DeleteSettledCartItem(ctx, sqlc.DeleteSettledCartItemParams{ID: id, ChargedQuantity: line.Quantity})
				if err != nil {
					return err
				}
				if n > 0 {
					continue
				}
				if _, err := q.DecrementCartItemQuantity(ctx, sqlc.DecrementCartItemQuantityParams{ChargedQuantity: line.Quantity, ID: id}); err != nil {
					return err
				}
			}
			return nil
		},
	}

	err := s.dbDao.ExecMultiTx(ctx, fns)
	if err != nil {
		if !db.IsNoRows(err) {
			return nil, false, internalErr(err, "complete checkout")
		}
		current, getErr := s.getCheckout(ctx, checkout.ID)
		if getErr != nil {
			return nil, false, getErr
		}
		if current.Status != model.CheckoutCompleted {
			return nil, false, apperr.Newf(apperr.KindValidationFailed, "checkout is %s and cannot be completed", current.Status)
		}
		order, err := s.completedOrder(ctx, current)
		return order, false, err
	}

	order := db.ToOrderModel(orderEntity, orderItems)
	return &order, true, nil
}

func (s *CheckoutService) completedOrder(ctx context.Context, checkout *model.CheckoutModel) (*model.OrderModel, error) {
	if checkout.OrderID == nil {
		return nil, apperr.New(apperr.KindInternal, "completed checkout without order")
	}
	return loadOrder(ctx, s.dbDao, *checkout.OrderID)
}

func (s *CheckoutService) getCheckout(ctx context.Context, id uuid.UUID) (*model.CheckoutModel, error) {
	entity, err := s.dbDao.GetCheckoutByID(ctx, db.PgUUID(id))
	if err != nil {
		return nil, storeErr(err, "no checkout found")
	}
	checkout, err := db.ToCheckoutModel(entity)
	if err != nil {
		return nil, internalErr(err, "decode checkout")
	}
	return &checkout, nil
}

// notify is best effort, the order already exists.
func (s *CheckoutService) notify(ctx context.Context, checkout *model.CheckoutModel, order *model.OrderModel, buyer *model.UserModel) {
	logger := zerolog.Ctx(ctx).With().Str("order_id", order.ID.String()).Logger()

	evt := event.OrderCreated{
		Type:       event.OrderCreatedType,
		OrderID:    order.ID.String(),
		UserID:     order.UserID.String(),
		CheckoutID: checkout.ID.String(),
		Total:      order.Total,
		Charge:     order.Charge,
		OccurredAt: s.now(),
	}
	for _, it := range order.Items {
		evt.Lines = append(evt.Lines, event.OrderCreatedLine{Title: it.Title, Price: it.Price, Quantity: it.Quantity})
	}
	if err := s.publisher.PublishOrderCreated(ctx, evt); err != nil {
		logger.Warn().Err(err).Msg("publish order created")
	}

	if buyer == nil {
		return
	}
	if err := s.mailService.SendReceipt(ctx, ReceiptData{Name: buyer.Name, Email: buyer.Email, Order: *order}); err != nil {
		logger.Warn().Err(err).Msg("send receipt")
	}
}
