package adapthttp

import (
	"fmt"
	"net/http"

	"liftit/internal/app"
	"liftit/internal/domain"
)

func (s *Server) handleAddWeight(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Value float64 `json:"value"`
		Unit  string  `json:"unit"`
		Note  string  `json:"note"`
	}
	if err := parseJSON(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	switch body.Unit {
	case "", domain.UnitKg, domain.UnitLb:
	default:
		writeError(w, http.StatusBadRequest, fmt.Errorf("%w: unit must be kg or lb", app.ErrValidation))
		return
	}

	in := domain.WeightInput{Value: domain.ToKg(body.Value, body.Unit), Note: body.Note}
	s.addProgress(w, r, in)
}

func (s *Server) handleAddMeasurements(w http.ResponseWriter, r *http.Request) {
	var in domain.MeasurementInput
	if err := parseJSON(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	s.addProgress(w, r, in)
}

func (s *Server) handleAddWorkout(w http.ResponseWriter, r *http.Request) {
	var in domain.WorkoutInput
	if err := parseJSON(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	s.addProgress(w, r, in)
}

func (s *Server) handleAddNutrition(w http.ResponseWriter, r *http.Request) {
	var in domain.NutritionInput
	if err := parseJSON(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	s.addProgress(w, r, in)
}

func (s *Server) addProgress(w http.ResponseWriter, r *http.Request, in domain.ProgressInput) {
	user, err := s.users.AddProgress(r.Context(), userFromContext(r).ID, in)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeOK(w, string(in.Category())+" recorded", map[string]any{"progress": user.Progress})
}
