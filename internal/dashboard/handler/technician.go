package handler

import (
	"encoding/json"
	"net/http"

	"github.com/julienschmidt/httprouter"

	"voltworks/internal/dashboard/service"
	"voltworks/internal/guard"
	"voltworks/internal/listview"
	httputil "voltworks/pkg/http"
	"voltworks/pkg/logger"
	"voltworks/pkg/model"
)

type TechnicianHandler struct {
	appointments service.AppointmentService
	catalog      service.CatalogService
	views        *service.ViewRegistry
	pageSize     int
	log          *logger.Logger
}

func NewTechnicianHandler(
	appointments service.AppointmentService,
	catalog service.CatalogService,
	views *service.ViewRegistry,
	pageSize int,
	log *logger.Logger,
) *TechnicianHandler {
	return &TechnicianHandler{
		appointments: appointments,
		catalog:      catalog,
		views:        views,
		pageSize:     pageSize,
		log:          log,
	}
}

func (h *TechnicianHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/api/v1/technician/work", h.AssignedWork)
	router.POST("/api/v1/technician/views/work", h.AssignedWorkView)
	router.GET("/api/v1/technician/tasks", h.Tasks)
	router.POST("/api/v1/technician/work/:id/start", h.Start)
	router.POST("/api/v1/technician/work/:id/complete", h.Complete)
}

// AssignedWork lists only this technician's appointments; the workshop API
// does the filtering so one technician can never page through another's
// queue.
func (h *TechnicianHandler) AssignedWork(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	snapshot, _ := guard.SnapshotFromContext(r.Context())

	q, err := listQuery(r, h.pageSize)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	views, err := h.appointments.ForTechnician(r.Context(), snapshot.User.ID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	writeListPage(w, renderStateless(views, q))
}

func (h *TechnicianHandler) AssignedWorkView(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	snapshot, _ := guard.SnapshotFromContext(r.Context())
	sessionID, _ := guard.SessionIDFromContext(r.Context())

	var update viewUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		})
		return
	}

	views, err := h.appointments.ForTechnician(r.Context(), snapshot.User.ID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	controller := h.views.Controller(sessionID)
	applyViewUpdate(controller, update)
	writeListPage(w, controller.Render(views))
}

func (h *TechnicianHandler) Tasks(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	snapshot, _ := guard.SnapshotFromContext(r.Context())

	q, err := listQuery(r, h.pageSize)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	tasks, err := h.catalog.MaintenanceTasks(r.Context(), snapshot.User.ID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	page := listview.Apply(tasks, q, map[string]listview.Extractor[model.MaintenanceTask]{
		"status": func(task model.MaintenanceTask) string { return task.Status },
	})
	writeListPage(w, page)
}

// Start and Complete are scoped to the caller's assigned work; the service
// treats any other appointment id as unknown.
func (h *TechnicianHandler) Start(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	snapshot, _ := guard.SnapshotFromContext(r.Context())

	view, err := h.appointments.Start(r.Context(), snapshot.User.ID, ps.ByName("id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteSuccess(w, view)
}

func (h *TechnicianHandler) Complete(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	snapshot, _ := guard.SnapshotFromContext(r.Context())

	view, err := h.appointments.Complete(r.Context(), snapshot.User.ID, ps.ByName("id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteSuccess(w, view)
}
