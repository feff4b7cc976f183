package order

import (
	"net/http"
	"strconv"

	"trattoria/infras/otel"
	"trattoria/internal/domains/order/model/dto"
	"trattoria/internal/domains/order/service"
	"trattoria/internal/domains/order/ticket"
	"trattoria/shared/constant"
	"trattoria/shared/failure"
	"trattoria/shared/validator"
	"trattoria/transport/http/response"

	"github.com/go-chi/chi/v5"

	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Order
	otel    otel.Otel
}

func New(service service.Order, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/orders", func(routerGroup chi.Router) {
		routerGroup.Get("/{id}", handler.GetOrder)
		routerGroup.Put("/{id}", handler.UpdateOrderStatus)
		routerGroup.Post("/{id}/items", handler.AddOrderItem)
		routerGroup.Get("/{id}/print", handler.PrintOrder)
	})

	router.Route("/order_items", func(routerGroup chi.Router) {
		routerGroup.Put("/{id}", handler.UpdateOrderItem)
		routerGroup.Delete("/{id}", handler.DeleteOrderItem)
	})
}

// GetOrder retrieves an order with its items by ID.
// @Summary Get an order by ID
// @Description Retrieve an order and all of its items.
// @Tags Order
// @Accept json
// @Produce json
// @Param id path int true "Order ID"
// @Success 200 {object} dto.OrderResponse "Order details"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /api/orders/{id} [get]
func (handler *Handler) GetOrder(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetOrder")
	defer scope.End()

	id, err := parseID(request)
	if err != nil {
		scope.TraceError(err)
		response.WithError(writer, err)

		return
	}

	order, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get order")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Order retrieved successfully")

	response.WithJSON(writer, http.StatusOK, order)
}

// UpdateOrderStatus updates the status of an order.
// @Summary Update order status
// @Description Update the status of an existing order.
// @Tags Order
// @Accept json
// @Produce json
// @Param id path int true "Order ID"
// @Param request body dto.UpdateStatusRequest true "Update Status Request"
// @Success 200 {object} dto.OrderResponse "Updated order"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /api/orders/{id} [put]
func (handler *Handler) UpdateOrderStatus(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateOrderStatus")
	defer scope.End()

	id, err := parseID(request)
	if err != nil {
		scope.TraceError(err)
		response.WithError(writer, err)

		return
	}

	req := dto.UpdateStatusRequest{}
	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	order, err := handler.service.UpdateStatus(ctx, id, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update order status")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Order status updated successfully")

	response.WithJSON(writer, http.StatusOK, order)
}

// AddOrderItem adds a menu item to an order.
// @Summary Add an item to an order
// @Description Add a menu item with a quantity to an existing order.
// @Tags Order
// @Accept json
// @Produce json
// @Param id path int true "Order ID"
// @Param request body dto.AddItemRequest true "Add Item Request"
// @Success 201 {object} dto.OrderItemResponse "Created order item"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /api/orders/{id}/items [post]
func (handler *Handler) AddOrderItem(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".AddOrderItem")
	defer scope.End()

	id, err := parseID(request)
	if err != nil {
		scope.TraceError(err)
		response.WithError(writer, err)

		return
	}

	req := dto.AddItemRequest{}
	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	item, err := handler.service.AddItem(ctx, id, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to add order item")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Order item added successfully")

	response.WithJSON(writer, http.StatusCreated, item)
}

// UpdateOrderItem updates the quantity or special requests of an order item.
// @Summary Update an order item
// @Description Update the quantity or special requests of an existing order item.
// @Tags Order
// @Accept json
// @Produce json
// @Param id path int true "Order Item ID"
// @Param request body dto.UpdateItemRequest true "Update Item Request"
// @Success 200 {object} dto.OrderItemResponse "Updated order item"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /api/order_items/{id} [put]
func (handler *Handler) UpdateOrderItem(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateOrderItem")
	defer scope.End()

	id, err := parseID(request)
	if err != nil {
		scope.TraceError(err)
		response.WithError(writer, err)

		return
	}

	req := dto.UpdateItemRequest{}
	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	if req.IsEmpty() {
		response.WithError(writer, failure.BadRequestFromString("Invalid input: No data provided"))

		return
	}

	item, err := handler.service.UpdateItem(ctx, id, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update order item")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Order item updated successfully")

	response.WithJSON(writer, http.StatusOK, item)
}

// DeleteOrderItem removes an item from an order.
// @Summary Delete an order item
// @Description Remove an item from its order.
// @Tags Order
// @Accept json
// @Produce json
// @Param id path int true "Order Item ID"
// @Success 200 {object} response.Message "Order item deleted successfully"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /api/order_items/{id} [delete]
func (handler *Handler) DeleteOrderItem(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteOrderItem")
	defer scope.End()

	id, err := parseID(request)
	if err != nil {
		scope.TraceError(err)
		response.WithError(writer, err)

		return
	}

	if err := handler.service.DeleteItem(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete order item")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Order item deleted successfully")

	response.WithMessage(writer, http.StatusOK, "Order item deleted successfully")
}

// PrintOrder renders a kitchen or bar ticket for an order.
// @Summary Print an order ticket
// @Description Render an HTML ticket for the order, filtered to food or beverage items.
// @Tags Order
// @Accept json
// @Produce html
// @Param id path int true "Order ID"
// @Param type query string false "Ticket type (food or beverage)"
// @Success 200 {string} string "Rendered ticket"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /api/orders/{id}/print [get]
func (handler *Handler) PrintOrder(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".PrintOrder")
	defer scope.End()

	id, err := parseID(request)
	if err != nil {
		scope.TraceError(err)
		response.WithError(writer, err)

		return
	}

	requestedType := request.URL.Query().Get(constant.RequestParamType)

	printTicket, err := handler.service.ItemsForPrinting(ctx, id, requestedType)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to collect order items for printing")

		response.WithError(writer, err)

		return
	}

	if len(printTicket.Items) == 0 {
		response.WithMessage(writer, http.StatusOK, ticket.EmptyMessage(printTicket.Title))

		return
	}

	html, err := ticket.Render(printTicket)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to render order ticket")

		response.WithError(writer, failure.InternalError(err))

		return
	}

	scope.AddEvent("Order ticket rendered successfully")

	response.WithHTML(writer, http.StatusOK, html)
}

func parseID(request *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(request, constant.RequestParamID), 10, 64)
	if err != nil {
		return 0, failure.NotFound("resource not found") // nolint:wrapcheck
	}

	return id, nil
}
