package handlers

import "github.com/milena/wayfare-api/internal/assets"

func NewWrittenReviewsHandler(repo ResourceRepositoryInterface, coordinator *assets.Coordinator) *ResourceHandler {
	return NewResourceHandler(repo, coordinator, ResourceConfig{
		Name:   "writtenReview",
		Plural: "writtenReviews",
		Assets: []AssetField{
			{URLWire: "avatar", HandleWire: "avatarPublicId", Kind: assets.KindImage},
		},
	})
}
