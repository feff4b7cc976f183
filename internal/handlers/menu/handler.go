package menu

import (
	"net/http"

	"trattoria/infras/otel"
	"trattoria/internal/domains/menu/model/dto"
	"trattoria/internal/domains/menu/service"
	"trattoria/shared/constant"
	"trattoria/shared/validator"
	"trattoria/transport/http/response"

	"github.com/go-chi/chi/v5"

	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.MenuItem
	otel    otel.Otel
}

func New(service service.MenuItem, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/menu_items", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateMenuItem)
		routerGroup.Get("/", handler.GetMenuItems)
	})
}

// CreateMenuItem handles the creation of a new menu item.
// @Summary Create a new menu item
// @Description Create a new menu item with the provided details.
// @Tags MenuItem
// @Accept json
// @Produce json
// @Param request body dto.CreateMenuItemRequest true "Create Menu Item Request"
// @Success 201 {object} dto.MenuItemResponse "Created menu item"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /api/menu_items [post]
func (handler *Handler) CreateMenuItem(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateMenuItem")
	defer scope.End()

	req := dto.CreateMenuItemRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	item, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create menu item")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Menu item created successfully")

	response.WithJSON(writer, http.StatusCreated, item)
}

// GetMenuItems retrieves all menu items, optionally filtered by category.
// @Summary Get all menu items
// @Description Retrieve all menu items with optional category filtering.
// @Tags MenuItem
// @Accept json
// @Produce json
// @Param category query string false "Filter by category"
// @Success 200 {array} dto.MenuItemResponse "List of menu items"
// @Failure 500 {object} response.Error
// @Router /api/menu_items [get]
func (handler *Handler) GetMenuItems(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetMenuItems")
	defer scope.End()

	category := request.URL.Query().Get(constant.RequestParamCategory)

	items, err := handler.service.GetAll(ctx, category)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get menu items")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Menu items retrieved successfully")

	response.WithJSON(writer, http.StatusOK, items)
}
