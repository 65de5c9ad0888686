package handler

import (
	"net/http"

	"giftly-be/internal/order"
	"giftly-be/internal/user"
	"giftly-be/internal/utils"

	"github.com/labstack/echo/v4"
)

type OrderHandler struct {
	orderService order.Service
}

func NewOrderHandler(orderService order.Service) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

type contactRequest struct {
	Name    string  `json:"name"`
	Email   string  `json:"email"`
	Phone   *string `json:"phone"`
	Address *string `json:"address"`
}

func (r contactRequest) toContact() order.Contact {
	return order.Contact{Name: r.Name, Email: r.Email, Phone: r.Phone, Address: r.Address}
}

type itemRefRequest struct {
	ProductID *string `json:"product_id"`
	ServiceID *string `json:"service_id"`
	Quantity  int     `json:"quantity"`
}

type createOrderRequest struct {
	OrderType string           `json:"order_type"`
	Sender    contactRequest   `json:"sender"`
	Receiver  *contactRequest  `json:"receiver"`
	Items     []itemRefRequest `json:"items"`
}

func (h *OrderHandler) Create(c echo.Context) error {
	ctx := c.Request().Context()

	var req createOrderRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	orderType := order.OrderType(req.OrderType)
	if orderType != order.TypeSelf && orderType != order.TypeGift {
		return echo.NewHTTPError(http.StatusBadRequest, "order_type must be self or gift")
	}

	input := order.CreateOrderInput{
		OrderType: orderType,
		Sender:    req.Sender.toContact(),
	}
	if req.Receiver != nil {
		receiver := req.Receiver.toContact()
		input.Receiver = &receiver
	}
	for _, it := range req.Items {
		input.Items = append(input.Items, order.ItemRef{
			ProductID: it.ProductID,
			ServiceID: it.ServiceID,
			Quantity:  it.Quantity,
		})
	}

	o, err := h.orderService.CreateOrder(ctx, currentUserID(c), input)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, o)
}

func (h *OrderHandler) List(c echo.Context) error {
	ctx := c.Request().Context()
	limit, page := pageParams(c)

	filter := order.ListFilter{Search: searchParam(c), Limit: limit, Page: page}
	if s := c.QueryParam("status"); s != "" {
		status := order.Status(s)
		filter.Status = &status
	}

	orders, total, err := h.orderService.ListOrders(ctx, currentUserID(c), filter)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, paginated{Data: orders, Total: total, Page: page, Limit: limit})
}

func (h *OrderHandler) Get(c echo.Context) error {
	ctx := c.Request().Context()

	isAdmin := utils.GetUserRoleFromContext(ctx) == string(user.RoleAdmin)
	o, err := h.orderService.GetOrder(ctx, currentUserID(c), c.Param("id"), isAdmin)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, o)
}

func (h *OrderHandler) Cancel(c echo.Context) error {
	ctx := c.Request().Context()

	isAdmin := utils.GetUserRoleFromContext(ctx) == string(user.RoleAdmin)
	if err := h.orderService.CancelOrder(ctx, currentUserID(c), c.Param("id"), isAdmin); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

// -------- gift receiver (public, token-addressed) --------

type confirmGiftRequest struct {
	Name    string  `json:"name"`
	Email   string  `json:"email"`
	Phone   *string `json:"phone"`
	Address *string `json:"address"`
}

func (h *OrderHandler) GiftPreview(c echo.Context) error {
	preview, err := h.orderService.GiftPreview(c.Request().Context(), c.Param("token"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, preview)
}

func (h *OrderHandler) ConfirmGift(c echo.Context) error {
	var req confirmGiftRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.Address == nil || *req.Address == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "address is required")
	}

	o, err := h.orderService.ConfirmGiftReceiver(c.Request().Context(), c.Param("token"), order.Contact{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Address: req.Address,
	})
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, o)
}

// -------- vendor orders --------

type updateVendorOrderStatusRequest struct {
	Status string `json:"status"`
}

func (h *OrderHandler) ListVendorOrders(c echo.Context) error {
	storeID, err := currentStoreID(c)
	if err != nil {
		return err
	}
	limit, page := pageParams(c)

	filter := order.ListFilter{Search: searchParam(c), Limit: limit, Page: page}
	if s := c.QueryParam("status"); s != "" {
		status := order.Status(s)
		filter.Status = &status
	}

	vendorOrders, total, err := h.orderService.ListVendorOrders(c.Request().Context(), storeID, filter)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, paginated{Data: vendorOrders, Total: total, Page: page, Limit: limit})
}

func (h *OrderHandler) UpdateVendorOrderStatus(c echo.Context) error {
	storeID, err := currentStoreID(c)
	if err != nil {
		return err
	}

	var req updateVendorOrderStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	vo, err := h.orderService.UpdateVendorOrderStatus(c.Request().Context(), storeID, c.Param("id"), order.Status(req.Status))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, vo)
}
