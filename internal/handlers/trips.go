package handlers

import (
	"context"
	"errors"

	"github.com/m1z23r/drift/pkg/drift"

	"github.com/milena/wayfare-api/internal/assets"
	"github.com/milena/wayfare-api/internal/repository"
)

// TripsHandler extends the shared resource handler with slug lookup.
type TripsHandler struct {
	*ResourceHandler
	repo ResourceRepositoryInterface
}

func NewTripsHandler(repo ResourceRepositoryInterface, coordinator *assets.Coordinator) *TripsHandler {
	cfg := ResourceConfig{
		Name:   "trip",
		Plural: "trips",
		Assets: []AssetField{
			{URLWire: "image", HandleWire: "imagePublicId", Kind: assets.KindImage},
			{URLWire: "video", HandleWire: "videoPublicId", Kind: assets.KindVideo},
			{URLWire: "gallery", HandleWire: "galleryPublicIds", Kind: assets.KindImage, Multi: true},
		},
		BeforeCreate: func(payload repository.Record) {
			if slug, _ := payload["slug"].(string); slug != "" {
				return
			}
			if title, _ := payload["title"].(string); title != "" {
				payload["slug"] = repository.Slugify(title)
			}
		},
	}
	return &TripsHandler{
		ResourceHandler: NewResourceHandler(repo, coordinator, cfg),
		repo:            repo,
	}
}

// GetBySlug resolves a public trip page; only active trips match.
func (h *TripsHandler) GetBySlug(c *drift.Context) {
	slug := c.Param("slug")
	if slug == "" {
		c.BadRequest("invalid slug")
		return
	}

	trip, err := h.repo.FindOneBy(context.Background(), "slug", slug, true)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.NotFound("trip not found")
			return
		}
		c.InternalServerError("failed to fetch trip")
		return
	}

	_ = c.JSON(200, map[string]any{"trip": trip})
}
