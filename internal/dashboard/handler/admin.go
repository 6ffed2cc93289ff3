package handler

import (
	"net/http"
	"strconv"

	"github.com/julienschmidt/httprouter"

	"voltworks/internal/dashboard/service"
	httputil "voltworks/pkg/http"
	"voltworks/pkg/logger"
)

// Parts at or under this stock level appear on the admin alert list unless
// the request overrides the threshold.
const defaultLowStockThreshold = 5

type AdminHandler struct {
	admin    service.AdminService
	pageSize int
	log      *logger.Logger
}

func NewAdminHandler(admin service.AdminService, pageSize int, log *logger.Logger) *AdminHandler {
	return &AdminHandler{
		admin:    admin,
		pageSize: pageSize,
		log:      log,
	}
}

func (h *AdminHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/api/v1/admin/revenue", h.Revenue)
	router.GET("/api/v1/admin/alerts/low-stock", h.LowStock)
	router.GET("/api/v1/admin/alerts/overdue", h.Overdue)
}

func (h *AdminHandler) Revenue(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	summary, err := h.admin.Revenue(r.Context())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteSuccess(w, summary)
}

func (h *AdminHandler) LowStock(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	threshold := defaultLowStockThreshold
	if raw := r.URL.Query().Get("threshold"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
				Error: "threshold must be a non-negative integer",
			})
			return
		}
		threshold = parsed
	}

	alerts, err := h.admin.LowStock(r.Context(), threshold)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	if alerts == nil {
		alerts = []service.StockAlert{}
	}
	httputil.WriteSuccess(w, alerts)
}

func (h *AdminHandler) Overdue(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	q, err := listQuery(r, h.pageSize)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	overdue, err := h.admin.Overdue(r.Context())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	writeListPage(w, renderStateless(overdue, q))
}
