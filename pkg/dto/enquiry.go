package dto

import "github.com/google/uuid"

type CreateEnquiryRequest struct {
	TripID            *uuid.UUID `json:"tripId,omitempty"`
	TripTitle         string     `json:"tripTitle"`
	TripLocation      string     `json:"tripLocation"`
	TripPrice         string     `json:"tripPrice"`
	SelectedMonth     string     `json:"selectedMonth"`
	NumberOfTravelers int        `json:"numberOfTravelers"`
	Name              string     `json:"name"`
	Email             string     `json:"email"`
	Phone             string     `json:"phone"`
	Message           string     `json:"message"`
}

type UpdateEnquiryStatusRequest struct {
	Status string `json:"status"`
}
