package reservation

import (
	"net/http"
	"strconv"

	"trattoria/infras/otel"
	orderDto "trattoria/internal/domains/order/model/dto"
	orderService "trattoria/internal/domains/order/service"
	"trattoria/internal/domains/reservation/model/dto"
	"trattoria/internal/domains/reservation/service"
	"trattoria/shared/constant"
	"trattoria/shared/failure"
	"trattoria/shared/validator"
	"trattoria/transport/http/response"

	"github.com/go-chi/chi/v5"

	"github.com/rs/zerolog/log"
)

type Handler struct {
	service      service.Reservation
	orderService orderService.Order
	otel         otel.Otel
}

func New(service service.Reservation, orderService orderService.Order, otel otel.Otel) Handler {
	return Handler{
		service:      service,
		orderService: orderService,
		otel:         otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/reservations", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateReservation)
		routerGroup.Get("/", handler.GetReservations)
		routerGroup.Get("/{id}", handler.GetReservationByID)
		routerGroup.Put("/{id}", handler.UpdateReservation)
		routerGroup.Delete("/{id}", handler.DeleteReservation)
		routerGroup.Post("/{id}/orders", handler.CreateOrder)
	})
}

// CreateReservation handles the creation of a new reservation.
// @Summary Create a new reservation
// @Description Create a new reservation with the provided details.
// @Tags Reservation
// @Accept json
// @Produce json
// @Param request body dto.CreateReservationRequest true "Create Reservation Request"
// @Success 201 {object} dto.ReservationResponse "Created reservation"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /api/reservations [post]
func (handler *Handler) CreateReservation(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateReservation")
	defer scope.End()

	req := dto.CreateReservationRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	reservation, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create reservation")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Reservation created successfully")

	response.WithJSON(writer, http.StatusCreated, reservation)
}

// GetReservations retrieves all reservations with their orders.
// @Summary Get all reservations
// @Description Retrieve all reservations, each with its orders and items.
// @Tags Reservation
// @Accept json
// @Produce json
// @Success 200 {array} dto.ReservationResponse "List of reservations"
// @Failure 500 {object} response.Error
// @Router /api/reservations [get]
func (handler *Handler) GetReservations(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetReservations")
	defer scope.End()

	reservations, err := handler.service.GetAll(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get reservations")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Reservations retrieved successfully")

	response.WithJSON(writer, http.StatusOK, reservations)
}

// GetReservationByID retrieves a reservation by its ID.
// @Summary Get a reservation by ID
// @Description Retrieve a reservation with its orders and items.
// @Tags Reservation
// @Accept json
// @Produce json
// @Param id path int true "Reservation ID"
// @Success 200 {object} dto.ReservationResponse "Reservation details"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /api/reservations/{id} [get]
func (handler *Handler) GetReservationByID(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetReservationByID")
	defer scope.End()

	id, err := parseID(request)
	if err != nil {
		scope.TraceError(err)
		response.WithError(writer, err)

		return
	}

	reservation, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get reservation")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Reservation retrieved successfully")

	response.WithJSON(writer, http.StatusOK, reservation)
}

// UpdateReservation updates an existing reservation by its ID.
// @Summary Update a reservation by ID
// @Description Update the details of an existing reservation.
// @Tags Reservation
// @Accept json
// @Produce json
// @Param id path int true "Reservation ID"
// @Param request body dto.UpdateReservationRequest true "Update Reservation Request"
// @Success 200 {object} dto.ReservationResponse "Updated reservation"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /api/reservations/{id} [put]
func (handler *Handler) UpdateReservation(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateReservation")
	defer scope.End()

	id, err := parseID(request)
	if err != nil {
		scope.TraceError(err)
		response.WithError(writer, err)

		return
	}

	req := dto.UpdateReservationRequest{}
	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	if req.IsEmpty() {
		response.WithError(writer, failure.BadRequestFromString("Invalid input: No data provided for update"))

		return
	}

	reservation, err := handler.service.Update(ctx, req, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update reservation")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Reservation updated successfully")

	response.WithJSON(writer, http.StatusOK, reservation)
}

// DeleteReservation deletes a reservation and its orders by ID.
// @Summary Delete a reservation by ID
// @Description Delete a reservation along with all of its orders and order items.
// @Tags Reservation
// @Accept json
// @Produce json
// @Param id path int true "Reservation ID"
// @Success 200 {object} response.Message "Reservation deleted successfully"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /api/reservations/{id} [delete]
func (handler *Handler) DeleteReservation(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteReservation")
	defer scope.End()

	id, err := parseID(request)
	if err != nil {
		scope.TraceError(err)
		response.WithError(writer, err)

		return
	}

	if err := handler.service.Delete(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete reservation")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Reservation deleted successfully")

	response.WithMessage(writer, http.StatusOK, "Reservation deleted successfully")
}

// CreateOrder opens a new order on a reservation.
// @Summary Create an order for a reservation
// @Description Open a new food or beverage order on an existing reservation.
// @Tags Reservation
// @Accept json
// @Produce json
// @Param id path int true "Reservation ID"
// @Param request body orderDto.CreateOrderRequest true "Create Order Request"
// @Success 201 {object} orderDto.OrderResponse "Created order"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /api/reservations/{id}/orders [post]
func (handler *Handler) CreateOrder(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateOrder")
	defer scope.End()

	id, err := parseID(request)
	if err != nil {
		scope.TraceError(err)
		response.WithError(writer, err)

		return
	}

	// The reservation is resolved before the body is read, so an unknown id
	// yields not-found even when the payload is invalid.
	if _, err := handler.service.Get(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get reservation")

		response.WithError(writer, err)

		return
	}

	req := orderDto.CreateOrderRequest{}
	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	order, err := handler.orderService.CreateForReservation(ctx, id, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create order")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Order created successfully")

	response.WithJSON(writer, http.StatusCreated, order)
}

func parseID(request *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(request, constant.RequestParamID), 10, 64)
	if err != nil {
		return 0, failure.NotFound("resource not found") // nolint:wrapcheck
	}

	return id, nil
}
