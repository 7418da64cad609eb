package dto

import "insertion-route-service/internal/domain"

type InstanceSummaryResponse struct {
	Name            string  `json:"name"`
	Customers       int     `json:"customers"`
	VehicleNumber   int     `json:"vehicle_number"`
	VehicleCapacity float64 `json:"vehicle_capacity"`
}

type ListInstancesResponse struct {
	Instances []InstanceSummaryResponse `json:"instances"`
}

type InstanceResponse struct {
	Name            string            `json:"name"`
	VehicleNumber   int               `json:"vehicle_number"`
	VehicleCapacity float64           `json:"vehicle_capacity"`
	Customers       []domain.Customer `json:"customers"`
}
