package handlers

import (
	"net/http"
	"strings"

	"insertion-route-service/internal/adapters/instance"
	"insertion-route-service/internal/api/dto"
	"insertion-route-service/internal/ports"
)

// Largest Solomon text body accepted on upload.
const maxInstanceBytes = 8 << 20

// InstanceHandler exposes instance upload and retrieval endpoints.
type InstanceHandler struct {
	Repo ports.InstanceRepository
}

func (h *InstanceHandler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.Repo.ListInstances(r.Context())
	if err != nil {
		writeServiceError(w, r, "list instances", err)
		return
	}

	res := dto.ListInstancesResponse{
		Instances: make([]dto.InstanceSummaryResponse, 0, len(list)),
	}
	for _, s := range list {
		res.Instances = append(res.Instances, dto.InstanceSummaryResponse{
			Name:            s.Name,
			Customers:       s.Customers,
			VehicleNumber:   s.VehicleNumber,
			VehicleCapacity: s.VehicleCapacity,
		})
	}

	writeJSON(w, r, http.StatusOK, res)
}

// Create parses a Solomon text body and stores it under ?name=.
func (h *InstanceHandler) Create(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimSpace(r.URL.Query().Get("name"))
	if name == "" {
		writeError(w, r, http.StatusBadRequest, "name query parameter is required")
		return
	}

	body := http.MaxBytesReader(w, r.Body, maxInstanceBytes)
	defer body.Close()

	in, err := instance.ParseSolomon(body, name)
	if err != nil {
		writeServiceError(w, r, "parse instance", err)
		return
	}

	if err := h.Repo.SaveInstance(r.Context(), in); err != nil {
		writeServiceError(w, r, "save instance", err)
		return
	}

	writeJSON(w, r, http.StatusCreated, dto.InstanceSummaryResponse{
		Name:            in.Name,
		Customers:       len(in.Customers),
		VehicleNumber:   in.VehicleNumber,
		VehicleCapacity: in.VehicleCapacity,
	})
}

func (h *InstanceHandler) Get(w http.ResponseWriter, r *http.Request) {
	in, err := h.Repo.GetInstance(r.Context(), r.PathValue("name"))
	if err != nil {
		writeServiceError(w, r, "get instance", err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.InstanceResponse{
		Name:            in.Name,
		VehicleNumber:   in.VehicleNumber,
		VehicleCapacity: in.VehicleCapacity,
		Customers:       in.Customers,
	})
}
