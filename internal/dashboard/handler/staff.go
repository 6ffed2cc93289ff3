package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/julienschmidt/httprouter"

	"voltworks/internal/dashboard/service"
	"voltworks/internal/guard"
	"voltworks/internal/listview"
	httputil "voltworks/pkg/http"
	"voltworks/pkg/logger"
	"voltworks/pkg/model"
)

type StaffHandler struct {
	appointments service.AppointmentService
	catalog      service.CatalogService
	views        *service.ViewRegistry
	pageSize     int
	log          *logger.Logger
}

func NewStaffHandler(
	appointments service.AppointmentService,
	catalog service.CatalogService,
	views *service.ViewRegistry,
	pageSize int,
	log *logger.Logger,
) *StaffHandler {
	return &StaffHandler{
		appointments: appointments,
		catalog:      catalog,
		views:        views,
		pageSize:     pageSize,
		log:          log,
	}
}

func (h *StaffHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/api/v1/staff/appointments", h.Appointments)
	router.POST("/api/v1/staff/views/appointments", h.AppointmentsView)
	router.GET("/api/v1/staff/appointments/:id", h.Appointment)
	router.POST("/api/v1/staff/appointments/:id/confirm", h.Confirm)
	router.POST("/api/v1/staff/appointments/:id/reject", h.Reject)
	router.POST("/api/v1/staff/appointments/:id/assign", h.Assign)
	router.GET("/api/v1/staff/customers", h.Customers)
	router.GET("/api/v1/staff/vehicles", h.Vehicles)
	router.GET("/api/v1/staff/parts", h.Parts)
}

func (h *StaffHandler) Appointments(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	q, err := listQuery(r, h.pageSize)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	views, err := h.appointments.All(r.Context())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	writeListPage(w, renderStateless(views, q))
}

func (h *StaffHandler) AppointmentsView(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	sessionID, _ := guard.SessionIDFromContext(r.Context())

	var update viewUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		})
		return
	}

	views, err := h.appointments.All(r.Context())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	controller := h.views.Controller(sessionID)
	applyViewUpdate(controller, update)
	writeListPage(w, controller.Render(views))
}

func (h *StaffHandler) Appointment(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	view, err := h.appointments.Get(r.Context(), ps.ByName("id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteSuccess(w, view)
}

func (h *StaffHandler) Confirm(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	view, err := h.appointments.Confirm(r.Context(), ps.ByName("id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteSuccess(w, view)
}

func (h *StaffHandler) Reject(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var body struct {
		Reason string `json:"reason"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || strings.TrimSpace(body.Reason) == "" {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "A rejection reason is required",
		})
		return
	}

	view, err := h.appointments.Reject(r.Context(), ps.ByName("id"), body.Reason)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteSuccess(w, view)
}

func (h *StaffHandler) Assign(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var body struct {
		TechnicianID string `json:"technician_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.TechnicianID == "" {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "A technician_id is required",
		})
		return
	}

	view, err := h.appointments.Assign(r.Context(), ps.ByName("id"), body.TechnicianID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteSuccess(w, view)
}

func (h *StaffHandler) Customers(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	q, err := listQuery(r, h.pageSize)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	customers, err := h.catalog.Customers(r.Context())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	page := listview.Apply(customers, q, map[string]listview.Extractor[model.Customer]{
		"status": func(c model.Customer) string { return c.Status },
	})
	writeListPage(w, page)
}

func (h *StaffHandler) Vehicles(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	q, err := listQuery(r, h.pageSize)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	vehicles, err := h.catalog.Vehicles(r.Context())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	page := listview.Apply(vehicles, q, map[string]listview.Extractor[model.Vehicle]{
		"status": func(v model.Vehicle) string { return v.Status },
	})
	writeListPage(w, page)
}

func (h *StaffHandler) Parts(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	q, err := listQuery(r, h.pageSize)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	parts, err := h.catalog.Parts(r.Context())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	page := listview.Apply(parts, q, map[string]listview.Extractor[model.Part]{
		"status": func(p model.Part) string { return p.Status },
	})
	writeListPage(w, page)
}
