package handlers

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/google/uuid"
	"github.com/m1z23r/drift/pkg/drift"

	"github.com/milena/wayfare-api/internal/assets"
	"github.com/milena/wayfare-api/internal/middleware"
	"github.com/milena/wayfare-api/internal/repository"
)

// AssetField declares where a resource keeps one of its asset references:
// the wire field holding the URL(s) and the wire field holding the deletion
// handle(s). Multi marks gallery-style fields holding arrays of both.
type AssetField struct {
	URLWire    string
	HandleWire string
	Kind       assets.Kind
	Multi      bool
}

// ResourceConfig parameterizes the shared CRUD handler for one entity type.
type ResourceConfig struct {
	Name   string // singular JSON key, e.g. "trip"
	Plural string // collection JSON key and route segment, e.g. "trips"
	Assets []AssetField

	// BeforeCreate, when set, can fill derived fields on a create payload.
	BeforeCreate func(payload repository.Record)
}

// ResourceHandler serves the CRUD-plus-assets endpoints every content
// entity shares. Mutations run behind the admin gates; reads are public and
// see only active records.
type ResourceHandler struct {
	repo        ResourceRepositoryInterface
	coordinator *assets.Coordinator
	cfg         ResourceConfig
}

func NewResourceHandler(repo ResourceRepositoryInterface, coordinator *assets.Coordinator, cfg ResourceConfig) *ResourceHandler {
	return &ResourceHandler{repo: repo, coordinator: coordinator, cfg: cfg}
}

func (h *ResourceHandler) List(c *drift.Context) {
	records, err := h.repo.FindAll(context.Background(), repository.Filter{
		Limit:  queryInt(c, "limit"),
		Offset: queryInt(c, "offset"),
	})
	if err != nil {
		c.InternalServerError("failed to fetch " + h.cfg.Plural)
		return
	}

	_ = c.JSON(200, map[string]any{
		h.cfg.Plural: records,
		"count":      len(records),
	})
}

func (h *ResourceHandler) ListAdmin(c *drift.Context) {
	records, err := h.repo.FindAll(context.Background(), repository.Filter{
		Status:       c.QueryParam("status"),
		IncludeDraft: true,
		Limit:        queryInt(c, "limit"),
		Offset:       queryInt(c, "offset"),
	})
	if err != nil {
		c.InternalServerError("failed to fetch " + h.cfg.Plural)
		return
	}

	_ = c.JSON(200, map[string]any{
		h.cfg.Plural: records,
		"count":      len(records),
	})
}

func (h *ResourceHandler) Get(c *drift.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.BadRequest("invalid id")
		return
	}

	record, err := h.repo.FindByID(context.Background(), id)
	if err != nil {
		h.respondReadError(c, err)
		return
	}

	if record["status"] != repository.StatusActive {
		c.NotFound(h.cfg.Name + " not found")
		return
	}

	_ = c.JSON(200, map[string]any{h.cfg.Name: record})
}

func (h *ResourceHandler) Create(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	var payload repository.Record
	if err := c.BindJSON(&payload); err != nil {
		c.BadRequest("invalid request body")
		return
	}

	if h.cfg.BeforeCreate != nil {
		h.cfg.BeforeCreate(payload)
	}

	record, err := h.repo.Create(context.Background(), payload, &userID)
	if err != nil {
		var verr *repository.ValidationError
		if errors.As(err, &verr) {
			c.BadRequest(verr.Error())
			return
		}
		c.InternalServerError("failed to create " + h.cfg.Name)
		return
	}

	_ = c.JSON(201, map[string]any{
		"message":  fmt.Sprintf("%s created successfully", h.cfg.Name),
		h.cfg.Name: record,
	})
}

func (h *ResourceHandler) Update(c *drift.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.BadRequest("invalid id")
		return
	}

	ctx := context.Background()

	existing, err := h.repo.FindByID(ctx, id)
	if err != nil {
		h.respondReadError(c, err)
		return
	}

	var payload repository.Record
	if err := c.BindJSON(&payload); err != nil {
		c.BadRequest("invalid request body")
		return
	}

	// Superseded handles are computed from values the new payload no longer
	// references, before the write; deletions are issued only after the
	// write commits.
	superseded := h.supersededAssets(existing, payload)

	record, err := h.repo.Update(ctx, id, payload)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.NotFound(h.cfg.Name + " not found")
			return
		}
		c.InternalServerError("failed to update " + h.cfg.Name)
		return
	}

	for kind, handles := range superseded {
		h.coordinator.Cleanup(ctx, kind, handles...)
	}

	_ = c.JSON(200, map[string]any{
		"message":  fmt.Sprintf("%s updated successfully", h.cfg.Name),
		h.cfg.Name: record,
	})
}

func (h *ResourceHandler) Delete(c *drift.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.BadRequest("invalid id")
		return
	}

	ctx := context.Background()

	record, err := h.repo.Delete(ctx, id)
	if err != nil {
		h.respondReadError(c, err)
		return
	}

	for kind, handles := range h.allAssets(record) {
		h.coordinator.Cleanup(ctx, kind, handles...)
	}

	_ = c.JSON(200, map[string]any{
		"message": fmt.Sprintf("%s deleted successfully", h.cfg.Name),
	})
}

func (h *ResourceHandler) respondReadError(c *drift.Context, err error) {
	if errors.Is(err, repository.ErrNotFound) {
		c.NotFound(h.cfg.Name + " not found")
		return
	}
	c.InternalServerError("failed to fetch " + h.cfg.Name)
}

// supersededAssets diffs the old record against the new payload and groups
// the freed deletion handles by asset kind.
func (h *ResourceHandler) supersededAssets(existing, payload repository.Record) map[assets.Kind][]string {
	out := make(map[assets.Kind][]string)
	for _, af := range h.cfg.Assets {
		newValue, ok := payload[af.URLWire]
		if !ok {
			continue
		}
		if af.Multi {
			old := stringSlice(existing[af.HandleWire])
			kept := stringSlice(payload[af.HandleWire])
			if handles := assets.SupersededHandles(old, kept); len(handles) > 0 {
				out[af.Kind] = append(out[af.Kind], handles...)
			}
			continue
		}
		newURL, _ := newValue.(string)
		oldURL, _ := existing[af.URLWire].(string)
		oldHandle, _ := existing[af.HandleWire].(string)
		if handle, ok := assets.SupersededRef(oldURL, oldHandle, newURL); ok {
			out[af.Kind] = append(out[af.Kind], handle)
		}
	}
	return out
}

// allAssets collects every deletion handle a record references, for cleanup
// after full deletion.
func (h *ResourceHandler) allAssets(record repository.Record) map[assets.Kind][]string {
	out := make(map[assets.Kind][]string)
	for _, af := range h.cfg.Assets {
		if af.Multi {
			if handles := stringSlice(record[af.HandleWire]); len(handles) > 0 {
				out[af.Kind] = append(out[af.Kind], handles...)
			}
			continue
		}
		if handle, _ := record[af.HandleWire].(string); handle != "" {
			out[af.Kind] = append(out[af.Kind], handle)
		}
	}
	return out
}

func stringSlice(v any) []string {
	switch val := v.(type) {
	case []string:
		return val
	case []any:
		out := make([]string, 0, len(val))
		for _, item := range val {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}

func queryInt(c *drift.Context, key string) int {
	raw := c.QueryParam(key)
	if raw == "" {
		return 0
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0
	}
	return n
}
