package repository

import "strings"

// Record statuses. Only active records are visible to unauthenticated
// readers; transitions between statuses are unrestricted.
const (
	StatusActive   = "active"
	StatusDraft    = "draft"
	StatusArchived = "archived"
)

// Enquiry workflow statuses.
const (
	EnquiryStatusNew       = "new"
	EnquiryStatusContacted = "contacted"
	EnquiryStatusClosed    = "closed"
)

var Trips = Mapping{
	Table: "trips",
	Fields: []Field{
		{Wire: "title", Column: "title"},
		{Wire: "location", Column: "location"},
		{Wire: "duration", Column: "duration"},
		{Wire: "price", Column: "price"},
		{Wire: "oldPrice", Column: "old_price"},
		{Wire: "subtitle", Column: "subtitle"},
		{Wire: "intro", Column: "intro"},
		{Wire: "slug", Column: "slug"},
		{Wire: "image", Column: "image_url"},
		{Wire: "imagePublicId", Column: "image_public_id"},
		{Wire: "video", Column: "video_url"},
		{Wire: "videoPublicId", Column: "video_public_id"},
		JSONField("gallery", "gallery"),
		JSONField("galleryPublicIds", "gallery_public_ids"),
		JSONField("whyVisit", "why_visit"),
		JSONField("itinerary", "itinerary"),
		JSONField("included", "included"),
		JSONField("notIncluded", "not_included"),
		JSONField("notes", "notes"),
		JSONField("faq", "faq"),
		JSONField("reviews", "reviews"),
		{Wire: "status", Column: "status"},
	},
	Required:      []string{"title", "location", "duration", "price"},
	ScopedFilters: map[string]string{"slug": "slug"},
	CreateStatus:  StatusActive,
	VisibleStatus: StatusActive,
	HasCreatedBy:  true,
}

var Destinations = Mapping{
	Table: "destinations",
	Fields: []Field{
		{Wire: "name", Column: "name"},
		{Wire: "image", Column: "image"},
		{Wire: "imagePublicId", Column: "image_public_id"},
		{Wire: "status", Column: "status"},
	},
	Required:      []string{"name"},
	CreateStatus:  StatusActive,
	VisibleStatus: StatusActive,
	HasCreatedBy:  true,
}

var Certificates = Mapping{
	Table: "certificates",
	Fields: []Field{
		{Wire: "title", Column: "title"},
		{Wire: "description", Column: "description"},
		JSONField("images", "images"),
		JSONField("imagesPublicIds", "images_public_ids"),
		{Wire: "status", Column: "status"},
	},
	Required:      []string{"title"},
	CreateStatus:  StatusActive,
	VisibleStatus: StatusActive,
	HasCreatedBy:  true,
}

var WrittenReviews = Mapping{
	Table: "written_reviews",
	Fields: []Field{
		{Wire: "name", Column: "name"},
		{Wire: "location", Column: "location"},
		{Wire: "rating", Column: "rating"},
		{Wire: "text", Column: "text"},
		{Wire: "avatar", Column: "avatar"},
		{Wire: "avatarPublicId", Column: "avatar_public_id"},
		{Wire: "status", Column: "status"},
	},
	Required:      []string{"name"},
	CreateStatus:  StatusActive,
	VisibleStatus: StatusActive,
	HasCreatedBy:  true,
}

// Enquiries are visitor-submitted and carry no authoring identity or draft
// workflow; listings are admin-only so no visibility default applies.
var Enquiries = Mapping{
	Table: "enquiries",
	Fields: []Field{
		{Wire: "tripId", Column: "trip_id"},
		{Wire: "tripTitle", Column: "trip_title"},
		{Wire: "tripLocation", Column: "trip_location"},
		{Wire: "tripPrice", Column: "trip_price"},
		{Wire: "selectedMonth", Column: "selected_month"},
		{Wire: "numberOfTravelers", Column: "number_of_travelers"},
		{Wire: "name", Column: "name"},
		LowerField("email", "email"),
		{Wire: "phone", Column: "phone"},
		{Wire: "message", Column: "message"},
		{Wire: "status", Column: "status"},
	},
	Required:      []string{"name", "email"},
	ScopedFilters: map[string]string{"tripId": "trip_id"},
	CreateStatus:  EnquiryStatusNew,
}

// Slugify derives a URL slug from a title.
func Slugify(title string) string {
	var b strings.Builder
	lastDash := true
	for _, r := range strings.ToLower(strings.TrimSpace(title)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		case r == ' ', r == '_', r == '-':
			if !lastDash {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}
	return strings.TrimRight(b.String(), "-")
}
