package order

import (
	"context"
	"fmt"
	"time"

	"giftly-be/internal/logger"
	"giftly-be/internal/settings"
	"giftly-be/internal/utils"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type Service interface {
	CreateOrder(ctx context.Context, userID string, input CreateOrderInput) (*Order, error)
	GetOrder(ctx context.Context, userID, orderID string, isAdmin bool) (*Order, error)
	ListOrders(ctx context.Context, userID string, filter ListFilter) ([]*Order, int64, error)
	ListAllOrders(ctx context.Context, filter ListFilter) ([]*Order, int64, error)
	CancelOrder(ctx context.Context, userID, orderID string, isAdmin bool) error

	GiftPreview(ctx context.Context, token string) (*GiftPreview, error)
	ConfirmGiftReceiver(ctx context.Context, token string, receiver Contact) (*Order, error)

	ListVendorOrders(ctx context.Context, storeID string, filter ListFilter) ([]*VendorOrder, int64, error)
	UpdateVendorOrderStatus(ctx context.Context, storeID, vendorOrderID string, to Status) (*VendorOrder, error)
}

// Pricing carries the checkout constants read from config at startup.
type Pricing struct {
	ShippingFlat decimal.Decimal
	Currency     string
}

type service struct {
	repo     Repository
	settings settings.Service
	signer   *TokenSigner
	pricing  Pricing
	siteURL  string
}

func NewService(repo Repository, settingsSvc settings.Service, signer *TokenSigner, pricing Pricing, siteURL string) Service {
	return &service{
		repo:     repo,
		settings: settingsSvc,
		signer:   signer,
		pricing:  pricing,
		siteURL:  siteURL,
	}
}

func (s *service) CreateOrder(ctx context.Context, userID string, input CreateOrderInput) (*Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("method", "CreateOrder"),
		zap.String("user_id", userID),
		zap.String("order_type", string(input.OrderType)),
		zap.Int("item_count", len(input.Items)),
	)

	if len(input.Items) == 0 {
		return nil, ErrEmptyOrder
	}
	for _, ref := range input.Items {
		if ref.Quantity <= 0 {
			return nil, ErrInvalidQuantity
		}
		if (ref.ProductID == nil) == (ref.ServiceID == nil) {
			return nil, ErrInvalidItemRef
		}
	}

	// Pricing is always recomputed server side; whatever the client showed
	// in its cart is only a hint.
	resolved, err := s.repo.ResolveItems(ctx, input.Items)
	if err != nil {
		log.Warn("failed to resolve order items", zap.Error(err))
		return nil, err
	}

	now := time.Now()
	subtotal := decimal.Zero
	items := make([]OrderItem, 0, len(resolved))
	for i, ri := range resolved {
		lineSubtotal := ri.Price.Mul(decimal.NewFromInt(int64(input.Items[i].Quantity)))
		subtotal = subtotal.Add(lineSubtotal)
		items = append(items, OrderItem{
			ProductID: ri.ProductID,
			ServiceID: ri.ServiceID,
			StoreID:   ri.StoreID,
			Name:      ri.Name,
			Price:     ri.Price,
			Quantity:  input.Items[i].Quantity,
			ImageURL:  ri.ImageURL,
			Subtotal:  lineSubtotal,
		})
	}

	cfg, err := s.settings.Get(ctx)
	if err != nil {
		log.Error("failed to load platform settings", zap.Error(err))
		return nil, err
	}

	tax := subtotal.Mul(cfg.TaxPercent).Div(decimal.NewFromInt(100)).Round(2)
	total := subtotal.Add(tax).Add(s.pricing.ShippingFlat)

	o := &Order{
		OrderNumber: utils.NewOrderNumber(now),
		UserID:      userID,
		OrderType:   input.OrderType,
		Sender:      input.Sender,
		Subtotal:    subtotal,
		ShippingFee: s.pricing.ShippingFlat,
		Tax:         tax,
		Total:       total,
		Currency:    s.pricing.Currency,
	}

	switch input.OrderType {
	case TypeGift:
		// The receiver's address arrives later through the gift link, so a
		// gift order starts pending with no shipping address at all.
		token := s.signer.Generate(now)
		link := fmt.Sprintf("%s/gift-receiver/%s", s.siteURL, token)
		o.GiftToken = &token
		o.GiftLink = &link
		o.Status = StatusPending
		if input.Receiver != nil {
			o.Receiver.Name = input.Receiver.Name
			o.Receiver.Email = input.Receiver.Email
			o.Receiver.Phone = input.Receiver.Phone
		}
	default:
		o.OrderType = TypeSelf
		o.Status = StatusConfirmed
		o.ConfirmedAt = &now
		if input.Receiver != nil && input.Receiver.Address != nil {
			o.Receiver = *input.Receiver
		} else {
			o.Receiver = input.Sender
		}
		o.ShippingAddress = o.Receiver.Address
	}

	// Fan out one vendor order per distinct (vendor, store) pair, keyed in
	// first-seen item order.
	type pair struct{ vendorID, storeID string }
	seen := make(map[pair]int)
	vendorOrders := make([]VendorOrder, 0)
	for i, ri := range resolved {
		p := pair{ri.VendorID, ri.StoreID}
		idx, ok := seen[p]
		if !ok {
			idx = len(vendorOrders)
			seen[p] = idx
			vendorOrders = append(vendorOrders, VendorOrder{
				VendorID: ri.VendorID,
				StoreID:  ri.StoreID,
				Status:   o.Status,
				Total:    decimal.Zero,
			})
		}
		vendorOrders[idx].Total = vendorOrders[idx].Total.Add(items[i].Subtotal)
	}

	if err := s.repo.CreateOrderTx(ctx, o, items, vendorOrders); err != nil {
		log.Error("order creation failed", zap.Error(err))
		return nil, err
	}

	log.Info("order created",
		zap.String("order_id", o.ID),
		zap.String("order_number", o.OrderNumber),
		zap.Int("vendor_order_count", len(vendorOrders)),
	)
	return o, nil
}

func (s *service) GetOrder(ctx context.Context, userID, orderID string, isAdmin bool) (*Order, error) {
	o, err := s.repo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !isAdmin && o.UserID != userID {
		return nil, ErrUnauthorized
	}
	return o, nil
}

func (s *service) ListOrders(ctx context.Context, userID string, filter ListFilter) ([]*Order, int64, error) {
	return s.repo.ListForUser(ctx, userID, filter)
}

func (s *service) ListAllOrders(ctx context.Context, filter ListFilter) ([]*Order, int64, error) {
	return s.repo.ListAll(ctx, filter)
}

func (s *service) CancelOrder(ctx context.Context, userID, orderID string, isAdmin bool) error {
	o, err := s.repo.GetByID(ctx, orderID)
	if err != nil {
		return err
	}
	if !isAdmin && o.UserID != userID {
		return ErrUnauthorized
	}
	return s.repo.CancelOrderTx(ctx, orderID)
}

func (s *service) GiftPreview(ctx context.Context, token string) (*GiftPreview, error) {
	if err := s.signer.Verify(token, time.Now()); err != nil {
		return nil, err
	}

	o, err := s.repo.GetByGiftToken(ctx, token)
	if err != nil {
		return nil, err
	}

	preview := &GiftPreview{
		OrderNumber: o.OrderNumber,
		SenderName:  o.Sender.Name,
		Status:      o.Status,
		Confirmed:   o.Receiver.Address != nil,
	}
	for _, it := range o.Items {
		preview.Items = append(preview.Items, GiftPreviewItem{
			Name:     it.Name,
			Quantity: it.Quantity,
			ImageURL: it.ImageURL,
		})
	}
	return preview, nil
}

func (s *service) ConfirmGiftReceiver(ctx context.Context, token string, receiver Contact) (*Order, error) {
	log := logger.FromCtx(ctx).With(zap.String("method", "ConfirmGiftReceiver"))

	if err := s.signer.Verify(token, time.Now()); err != nil {
		log.Warn("gift token rejected", zap.Error(err))
		return nil, err
	}
	if receiver.Address == nil || *receiver.Address == "" {
		return nil, ErrReceiverAddressRequired
	}

	o, err := s.repo.GetByGiftToken(ctx, token)
	if err != nil {
		return nil, err
	}
	if o.OrderType != TypeGift {
		return nil, ErrNotGiftOrder
	}
	if o.Receiver.Address != nil || o.Status != StatusPending {
		return nil, ErrGiftAlreadyConfirmed
	}

	if err := s.repo.ConfirmGiftTx(ctx, o.ID, receiver); err != nil {
		log.Error("gift confirmation failed", zap.String("order_id", o.ID), zap.Error(err))
		return nil, err
	}

	log.Info("gift receiver confirmed", zap.String("order_id", o.ID))
	return s.repo.GetByID(ctx, o.ID)
}

func (s *service) ListVendorOrders(ctx context.Context, storeID string, filter ListFilter) ([]*VendorOrder, int64, error) {
	return s.repo.ListVendorOrders(ctx, storeID, filter)
}

func (s *service) UpdateVendorOrderStatus(ctx context.Context, storeID, vendorOrderID string, to Status) (*VendorOrder, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("method", "UpdateVendorOrderStatus"),
		zap.String("vendor_order_id", vendorOrderID),
		zap.String("to", string(to)),
	)

	vo, err := s.repo.GetVendorOrder(ctx, vendorOrderID)
	if err != nil {
		return nil, err
	}
	if vo.StoreID != storeID {
		return nil, ErrUnauthorized
	}
	if !canTransition(vo.Status, to) {
		return nil, ErrInvalidTransition
	}

	// A gift order cannot advance until the receiver supplied an address.
	// This guard is enforced here, not in any client.
	if to == StatusConfirmed || to == StatusDispatched {
		parent, err := s.repo.GetByID(ctx, vo.OrderID)
		if err != nil {
			return nil, err
		}
		if parent.OrderType == TypeGift && parent.Receiver.Address == nil {
			log.Warn("gift order blocked: no receiver address")
			return nil, ErrReceiverAddressRequired
		}
	}

	// Commission is snapshotted into the payout row at delivery time, so a
	// later settings change cannot reprice an already-earned payout.
	var commission decimal.Decimal
	if to == StatusDelivered {
		cfg, err := s.settings.Get(ctx)
		if err != nil {
			return nil, err
		}
		commission = cfg.CommissionPercent
	}

	if err := s.repo.UpdateVendorOrderStatusTx(ctx, vo, to, commission); err != nil {
		log.Error("vendor order transition failed", zap.Error(err))
		return nil, err
	}

	return s.repo.GetVendorOrder(ctx, vendorOrderID)
}
