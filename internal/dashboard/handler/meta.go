package handler

import (
	"net/http"

	"github.com/julienschmidt/httprouter"

	"voltworks/internal/dashboard/service"
	"voltworks/internal/status"
	httputil "voltworks/pkg/http"
	"voltworks/pkg/logger"
)

// MetaHandler serves the public reference data the frontend needs before any
// table renders: filter options and backend-owned enumerations.
type MetaHandler struct {
	catalog service.CatalogService
	log     *logger.Logger
}

func NewMetaHandler(catalog service.CatalogService, log *logger.Logger) *MetaHandler {
	return &MetaHandler{
		catalog: catalog,
		log:     log,
	}
}

func (h *MetaHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/api/v1/meta/status-filters", h.StatusFilters)
	router.GET("/api/v1/meta/enums/:name", h.Enum)
}

func (h *MetaHandler) StatusFilters(w http.ResponseWriter, _ *http.Request, _ httprouter.Params) {
	httputil.WriteSuccess(w, status.FilterOptions())
}

func (h *MetaHandler) Enum(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	values, err := h.catalog.EnumValues(r.Context(), ps.ByName("name"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteSuccess(w, values)
}
