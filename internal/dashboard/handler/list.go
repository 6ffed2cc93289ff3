package handler

import (
	"net/http"

	"voltworks/internal/dashboard/service"
	"voltworks/internal/listview"
	httputil "voltworks/pkg/http"
)

// listQuery builds a stateless pipeline query from the request's query
// string. A non-numeric page is rejected; out-of-range pages are clamped by
// the pipeline. Tables that need the debounced live state go through the
// session's controller instead.
func listQuery(r *http.Request, pageSize int) (listview.Query, error) {
	values := r.URL.Query()

	page, err := httputil.ExtractPage(r)
	if err != nil {
		return listview.Query{}, err
	}

	filters := make(map[string]string)
	if s := values.Get("status"); s != "" {
		filters["status"] = s
	}

	return listview.Query{
		Search:   values.Get("search"),
		Filters:  filters,
		Page:     page,
		PageSize: pageSize,
	}, nil
}

func writeListPage[T any](w http.ResponseWriter, page listview.Page[T]) {
	items := page.Items
	if items == nil {
		items = []T{}
	}
	httputil.WritePage(w, items, page.Page, page.TotalPages, page.TotalCount)
}

// viewUpdate is the body of the live table endpoints. Absent fields leave
// the corresponding view state untouched.
type viewUpdate struct {
	Search  *string           `json:"search,omitempty"`
	Filters map[string]string `json:"filters,omitempty"`
	Page    *int              `json:"page,omitempty"`
}

func renderStateless(views []service.AppointmentView, q listview.Query) listview.Page[service.AppointmentView] {
	return listview.Apply(views, q, service.AppointmentExtractors())
}

func applyViewUpdate(controller *listview.Controller[service.AppointmentView], update viewUpdate) {
	if update.Search != nil {
		controller.SetSearch(*update.Search)
	}
	for name, value := range update.Filters {
		controller.SetFilter(name, value)
	}
	if update.Page != nil {
		controller.SetPage(*update.Page)
	}
}
