package handlers

import (
	"context"
	"errors"
	"log"

	"github.com/google/uuid"
	"github.com/m1z23r/drift/pkg/drift"

	"github.com/milena/wayfare-api/internal/repository"
	"github.com/milena/wayfare-api/internal/services"
	"github.com/milena/wayfare-api/pkg/dto"
)

// EnquiriesHandler serves visitor enquiry submission (public) and the
// admin-only listing and status workflow.
type EnquiriesHandler struct {
	repo         ResourceRepositoryInterface
	emailService EmailServiceInterface
	notifyEmail  string
}

func NewEnquiriesHandler(repo ResourceRepositoryInterface, emailService EmailServiceInterface, notifyEmail string) *EnquiriesHandler {
	return &EnquiriesHandler{
		repo:         repo,
		emailService: emailService,
		notifyEmail:  notifyEmail,
	}
}

func (h *EnquiriesHandler) Create(c *drift.Context) {
	var req dto.CreateEnquiryRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}

	if req.NumberOfTravelers <= 0 {
		req.NumberOfTravelers = 1
	}

	payload := repository.Record{
		"tripTitle":         req.TripTitle,
		"tripLocation":      req.TripLocation,
		"tripPrice":         req.TripPrice,
		"selectedMonth":     req.SelectedMonth,
		"numberOfTravelers": req.NumberOfTravelers,
		"name":              req.Name,
		"email":             req.Email,
		"phone":             req.Phone,
		"message":           req.Message,
	}
	if req.TripID != nil {
		payload["tripId"] = *req.TripID
	}

	enquiry, err := h.repo.Create(context.Background(), payload, nil)
	if err != nil {
		var verr *repository.ValidationError
		if errors.As(err, &verr) {
			c.BadRequest(verr.Error())
			return
		}
		c.InternalServerError("failed to submit enquiry")
		return
	}

	// Notification is best-effort; a mail fault never fails the submission.
	if h.notifyEmail != "" && h.emailService.IsConfigured() {
		err := h.emailService.SendEnquiryNotification(h.notifyEmail, services.EnquiryNotification{
			TripTitle:         req.TripTitle,
			TripLocation:      req.TripLocation,
			TripPrice:         req.TripPrice,
			SelectedMonth:     req.SelectedMonth,
			NumberOfTravelers: req.NumberOfTravelers,
			Name:              req.Name,
			Email:             req.Email,
			Phone:             req.Phone,
			Message:           req.Message,
		})
		if err != nil {
			log.Printf("failed to send enquiry notification: %v", err)
		}
	}

	_ = c.JSON(201, map[string]any{
		"message": "enquiry submitted successfully",
		"enquiry": map[string]any{
			"id":            enquiry["id"],
			"tripTitle":     enquiry["tripTitle"],
			"selectedMonth": enquiry["selectedMonth"],
			"status":        enquiry["status"],
		},
	})
}

func (h *EnquiriesHandler) List(c *drift.Context) {
	filter := repository.Filter{
		Status: c.QueryParam("status"),
		Limit:  queryInt(c, "limit"),
		Offset: queryInt(c, "offset"),
	}
	if raw := c.QueryParam("tripId"); raw != "" {
		tripID, err := uuid.Parse(raw)
		if err != nil {
			c.BadRequest("invalid tripId filter")
			return
		}
		filter.Scoped = map[string]any{"tripId": tripID}
	}

	enquiries, err := h.repo.FindAll(context.Background(), filter)
	if err != nil {
		c.InternalServerError("failed to fetch enquiries")
		return
	}

	_ = c.JSON(200, map[string]any{
		"enquiries": enquiries,
		"count":     len(enquiries),
	})
}

func (h *EnquiriesHandler) Get(c *drift.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.BadRequest("invalid id")
		return
	}

	enquiry, err := h.repo.FindByID(context.Background(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.NotFound("enquiry not found")
			return
		}
		c.InternalServerError("failed to fetch enquiry")
		return
	}

	_ = c.JSON(200, map[string]any{"enquiry": enquiry})
}

func (h *EnquiriesHandler) UpdateStatus(c *drift.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.BadRequest("invalid id")
		return
	}

	var req dto.UpdateEnquiryStatusRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}

	switch req.Status {
	case repository.EnquiryStatusNew, repository.EnquiryStatusContacted, repository.EnquiryStatusClosed:
	default:
		c.BadRequest("invalid status")
		return
	}

	enquiry, err := h.repo.Update(context.Background(), id, repository.Record{"status": req.Status})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.NotFound("enquiry not found")
			return
		}
		c.InternalServerError("failed to update enquiry")
		return
	}

	_ = c.JSON(200, map[string]any{
		"message": "enquiry updated successfully",
		"enquiry": enquiry,
	})
}
