package handlers

import "github.com/milena/wayfare-api/internal/assets"

func NewDestinationsHandler(repo ResourceRepositoryInterface, coordinator *assets.Coordinator) *ResourceHandler {
	return NewResourceHandler(repo, coordinator, ResourceConfig{
		Name:   "destination",
		Plural: "destinations",
		Assets: []AssetField{
			{URLWire: "image", HandleWire: "imagePublicId", Kind: assets.KindImage},
		},
	})
}
