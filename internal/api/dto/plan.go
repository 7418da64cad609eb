package dto

import (
	"time"

	"insertion-route-service/internal/domain"
)

// Omitted fleet fields fall back to the server defaults.
type PlanRequest struct {
	Instance        string   `json:"instance"`
	VehicleCapacity *float64 `json:"vehicle_capacity"`
	VehicleLimit    *int     `json:"vehicle_limit"`
}

type PlanResponse struct {
	ID              string               `json:"id"`
	Instance        string               `json:"instance"`
	VehicleCapacity float64              `json:"vehicle_capacity"`
	VehicleLimit    int                  `json:"vehicle_limit"`
	CreatedAt       time.Time            `json:"created_at"`
	Routes          []domain.RouteRecord `json:"routes"`
	Summary         domain.FleetSummary  `json:"summary"`
}

func NewPlanResponse(p *domain.Plan) PlanResponse {
	return PlanResponse{
		ID:              p.ID,
		Instance:        p.Instance,
		VehicleCapacity: p.Fleet.VehicleCapacity,
		VehicleLimit:    p.Fleet.VehicleLimit,
		CreatedAt:       p.CreatedAt,
		Routes:          p.Solution.Routes,
		Summary:         p.Solution.Summary,
	}
}
