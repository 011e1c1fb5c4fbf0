package handlers

import (
	"context"
	"io"
	"strings"

	"github.com/m1z23r/drift/pkg/drift"

	"github.com/milena/wayfare-api/internal/assets"
)

// UploadHandler accepts raw media binaries from the admin UI, enforces the
// size and mimetype limits at the boundary, and hands the payload to the
// asset store. The returned URL and public ID are what the admin then
// embeds in a create/update payload.
type UploadHandler struct {
	store assets.Store
}

func NewUploadHandler(store assets.Store) *UploadHandler {
	return &UploadHandler{store: store}
}

func (h *UploadHandler) UploadImage(c *drift.Context) {
	h.upload(c, assets.KindImage, "image/", assets.MaxImageSize)
}

func (h *UploadHandler) UploadVideo(c *drift.Context) {
	h.upload(c, assets.KindVideo, "video/", assets.MaxVideoSize)
}

func (h *UploadHandler) upload(c *drift.Context, kind assets.Kind, mimePrefix string, maxSize int64) {
	contentType := c.GetHeader("Content-Type")
	if !strings.HasPrefix(contentType, mimePrefix) {
		c.BadRequest("only " + string(kind) + " files are allowed")
		return
	}

	if c.Request.ContentLength <= 0 {
		c.BadRequest("missing request body")
		return
	}
	if c.Request.ContentLength > maxSize {
		c.BadRequest("file too large")
		return
	}

	ref, err := h.store.Upload(context.Background(), io.LimitReader(c.Request.Body, maxSize), kind)
	if err != nil {
		c.InternalServerError("upload failed")
		return
	}

	_ = c.JSON(201, ref)
}
