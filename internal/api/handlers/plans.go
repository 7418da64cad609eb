package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"insertion-route-service/internal/api/dto"
	"insertion-route-service/internal/domain"
	"insertion-route-service/internal/ports"
	"insertion-route-service/internal/services"
)

type PlanHandler struct {
	Instances    ports.InstanceRepository
	Plans        ports.SolutionRepository
	Cache        ports.SolutionCache
	DefaultFleet domain.FleetConfig
	Options      services.ConstructorOptions
}

// Create constructs routes for a stored instance and persists the plan.
func (h *PlanHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.PlanRequest

	dec := json.NewDecoder(r.Body)
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeError(w, r, http.StatusBadRequest, "body must contain only one JSON object")
		return
	}

	name := strings.TrimSpace(req.Instance)
	if name == "" {
		writeError(w, r, http.StatusBadRequest, "instance is required")
		return
	}

	fleet := h.DefaultFleet
	if req.VehicleCapacity != nil {
		fleet.VehicleCapacity = *req.VehicleCapacity
	}
	if req.VehicleLimit != nil {
		fleet.VehicleLimit = *req.VehicleLimit
	}
	if err := fleet.Validate(); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	svcReq := services.PlanInstanceRequest{
		Instance: name,
		Fleet:    fleet,
		Options:  h.Options,
	}

	plan, err := services.PlanInstance(r.Context(), svcReq, h.Instances, h.Plans, h.Cache)
	if err != nil {
		writeServiceError(w, r, "plan instance", err)
		return
	}

	writeJSON(w, r, http.StatusCreated, dto.NewPlanResponse(plan))
}

func (h *PlanHandler) Get(w http.ResponseWriter, r *http.Request) {
	plan, err := h.Plans.GetPlan(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, "get plan", err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.NewPlanResponse(plan))
}
