package handlers

import "github.com/milena/wayfare-api/internal/assets"

func NewCertificatesHandler(repo ResourceRepositoryInterface, coordinator *assets.Coordinator) *ResourceHandler {
	return NewResourceHandler(repo, coordinator, ResourceConfig{
		Name:   "certificate",
		Plural: "certificates",
		Assets: []AssetField{
			{URLWire: "images", HandleWire: "imagesPublicIds", Kind: assets.KindImage, Multi: true},
		},
	})
}
