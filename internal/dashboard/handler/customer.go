package handler

import (
	"encoding/json"
	"net/http"

	"github.com/julienschmidt/httprouter"

	"voltworks/internal/dashboard/service"
	"voltworks/internal/guard"
	"voltworks/internal/notify"
	httputil "voltworks/pkg/http"
	"voltworks/pkg/logger"
	"voltworks/pkg/model"
)

type CustomerHandler struct {
	appointments service.AppointmentService
	catalog      service.CatalogService
	views        *service.ViewRegistry
	center       *notify.Center
	pageSize     int
	log          *logger.Logger
}

func NewCustomerHandler(
	appointments service.AppointmentService,
	catalog service.CatalogService,
	views *service.ViewRegistry,
	center *notify.Center,
	pageSize int,
	log *logger.Logger,
) *CustomerHandler {
	return &CustomerHandler{
		appointments: appointments,
		catalog:      catalog,
		views:        views,
		center:       center,
		pageSize:     pageSize,
		log:          log,
	}
}

func (h *CustomerHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/api/v1/customer/bookings", h.Bookings)
	router.POST("/api/v1/customer/bookings", h.Book)
	router.POST("/api/v1/customer/views/bookings", h.BookingsView)
	router.POST("/api/v1/customer/bookings/:id/cancel", h.CancelBooking)
	router.POST("/api/v1/customer/payments", h.Pay)
	router.GET("/api/v1/customer/bookings/last-id", h.LastBookingID)
	router.GET("/api/v1/customer/vehicles/vin/:vin", h.VehicleByVIN)
	router.GET("/api/v1/customer/vehicles/last-vin", h.LastVIN)
}

// Bookings is the stateless variant of the customer's table: view state
// comes in as query parameters and nothing persists between requests.
func (h *CustomerHandler) Bookings(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	snapshot, _ := guard.SnapshotFromContext(r.Context())

	q, err := listQuery(r, h.pageSize)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	views, err := h.appointments.ForCustomer(r.Context(), snapshot.User.ID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	writeListPage(w, renderStateless(views, q))
}

// BookingsView drives the live table: updates feed the session's controller,
// search through the debouncer, and the committed state renders the page.
func (h *CustomerHandler) BookingsView(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	snapshot, _ := guard.SnapshotFromContext(r.Context())
	sessionID, _ := guard.SessionIDFromContext(r.Context())

	var update viewUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		})
		return
	}

	views, err := h.appointments.ForCustomer(r.Context(), snapshot.User.ID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	controller := h.views.Controller(sessionID)
	applyViewUpdate(controller, update)
	writeListPage(w, controller.Render(views))
}

func (h *CustomerHandler) Book(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	snapshot, _ := guard.SnapshotFromContext(r.Context())
	sessionID, _ := guard.SessionIDFromContext(r.Context())

	var form model.BookingRequest
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		})
		return
	}

	view, err := h.appointments.Book(r.Context(), snapshot.User.ID, &form)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	h.center.Push(sessionID, "Booking received. We will confirm your slot shortly.", notify.StyleSuccess)
	httputil.WriteCreated(w, view)
}

// CancelBooking only cancels the caller's own appointment; the service
// rejects any other id as unknown.
func (h *CustomerHandler) CancelBooking(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	snapshot, _ := guard.SnapshotFromContext(r.Context())

	view, err := h.appointments.Cancel(r.Context(), snapshot.User.ID, ps.ByName("id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteSuccess(w, view)
}

func (h *CustomerHandler) Pay(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	snapshot, _ := guard.SnapshotFromContext(r.Context())
	sessionID, _ := guard.SessionIDFromContext(r.Context())

	var req model.PaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		})
		return
	}

	result, err := h.appointments.Pay(r.Context(), snapshot.User.ID, &req)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	h.center.Push(sessionID, "Payment received. Thank you!", notify.StyleSuccess)
	httputil.WriteSuccess(w, result)
}

func (h *CustomerHandler) VehicleByVIN(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	snapshot, _ := guard.SnapshotFromContext(r.Context())

	vehicle, err := h.catalog.LookupVIN(r.Context(), snapshot.User.ID, ps.ByName("vin"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	// Customers never see another owner's identity on their own lookup.
	vehicle.Owner = nil
	httputil.WriteSuccess(w, vehicle)
}

func (h *CustomerHandler) LastBookingID(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	snapshot, _ := guard.SnapshotFromContext(r.Context())

	id, ok := h.appointments.LastBookingID(r.Context(), snapshot.User.ID)
	httputil.WriteSuccess(w, map[string]any{"booking_id": id, "found": ok})
}

func (h *CustomerHandler) LastVIN(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	snapshot, _ := guard.SnapshotFromContext(r.Context())

	vin, ok := h.catalog.LastVIN(r.Context(), snapshot.User.ID)
	httputil.WriteSuccess(w, map[string]any{"vin": vin, "found": ok})
}
