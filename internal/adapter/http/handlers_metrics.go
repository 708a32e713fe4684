package adapthttp

import (
	"net/http"

	"liftit/internal/app"
	"liftit/internal/domain"

	"github.com/gorilla/mux"
)

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.users.Stats(r.Context(), userFromContext(r).ID)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeOK(w, "ok", map[string]any{"stats": stats})
}

func (s *Server) handleMacros(w http.ResponseWriter, r *http.Request) {
	macros, err := s.metrics.Macros(r.Context(), userFromContext(r).ID)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeOK(w, "ok", map[string]any{"macros": macros})
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	dash, err := s.metrics.Dashboard(r.Context(), userFromContext(r).ID)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeOK(w, "ok", map[string]any{"dashboard": dash})
}

// handleChart serves a chart series. Weight points are converted to the
// unit query parameter, or to the user's preferred unit when it is absent.
func (s *Server) handleChart(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r)
	metric := mux.Vars(r)["metric"]
	days := intQuery(r, "days", 30)

	series, err := s.metrics.Chart(r.Context(), user.ID, metric, days)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	fields := map[string]any{"series": series}
	if metric == app.MetricWeight {
		unit := r.URL.Query().Get("unit")
		if unit != domain.UnitKg && unit != domain.UnitLb {
			unit = domain.UnitForSettings(user.Settings)
		}
		series.ConvertWeight(unit)
		fields["unit"] = unit
	}
	writeOK(w, "ok", fields)
}
