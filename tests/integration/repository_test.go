package integration

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/milena/wayfare-api/internal/repository"
	"github.com/milena/wayfare-api/tests/testutil"
)

func TestRepository_Integration_CreateAndFind(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	tdb := setupTest(t)
	fixtures := testutil.NewFixtures(tdb.DB)
	ctx := context.Background()

	admin := fixtures.CreateUser(t)
	repo := repository.New(tdb.DB, repository.Destinations)

	created, err := repo.Create(ctx, repository.Record{
		"name":          "Kyoto",
		"image":         "https://cdn.example.com/kyoto.jpg",
		"imagePublicId": "kyoto-img",
	}, &admin.ID)

	require.NoError(t, err)
	assert.Equal(t, "Kyoto", created["name"])
	assert.Equal(t, "active", created["status"])
	assert.Equal(t, admin.ID.String(), created["createdBy"])

	id, err := uuid.Parse(created["id"].(string))
	require.NoError(t, err)

	found, err := repo.FindByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Kyoto", found["name"])
	assert.Equal(t, "kyoto-img", found["imagePublicId"])
}

func TestRepository_Integration_PartialUpdate(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	tdb := setupTest(t)
	fixtures := testutil.NewFixtures(tdb.DB)
	ctx := context.Background()

	admin := fixtures.CreateUser(t)
	created := fixtures.CreateDestination(t, admin.ID, repository.Record{
		"image":         "https://cdn.example.com/old.jpg",
		"imagePublicId": "old-img",
	})
	id := uuid.MustParse(created["id"].(string))

	repo := repository.New(tdb.DB, repository.Destinations)
	updated, err := repo.Update(ctx, id, repository.Record{"status": "draft"})

	require.NoError(t, err)
	assert.Equal(t, "draft", updated["status"])
	// Fields absent from the payload survive the write.
	assert.Equal(t, created["name"], updated["name"])
	assert.Equal(t, "old-img", updated["imagePublicId"])
}

func TestRepository_Integration_VisibilityDefault(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	tdb := setupTest(t)
	fixtures := testutil.NewFixtures(tdb.DB)
	ctx := context.Background()

	admin := fixtures.CreateUser(t)
	fixtures.CreateDestination(t, admin.ID, nil)
	fixtures.CreateDestination(t, admin.ID, repository.Record{"status": "draft"})

	repo := repository.New(tdb.DB, repository.Destinations)

	visible, err := repo.FindAll(ctx, repository.Filter{})
	require.NoError(t, err)
	assert.Len(t, visible, 1)
	assert.Equal(t, "active", visible[0]["status"])

	all, err := repo.FindAll(ctx, repository.Filter{IncludeDraft: true})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	drafts, err := repo.FindAll(ctx, repository.Filter{Status: "draft"})
	require.NoError(t, err)
	assert.Len(t, drafts, 1)
}

func TestRepository_Integration_TripStructuredFieldsRoundTrip(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	tdb := setupTest(t)
	fixtures := testutil.NewFixtures(tdb.DB)
	ctx := context.Background()

	admin := fixtures.CreateUser(t)

	itinerary := []any{
		map[string]any{"day": float64(1), "title": "Arrival"},
		map[string]any{"day": float64(2), "title": "Old town walk"},
	}
	created := fixtures.CreateTrip(t, admin.ID, repository.Record{
		"itinerary": itinerary,
		"included":  []any{"hotel", "breakfast"},
	})
	id := uuid.MustParse(created["id"].(string))

	repo := repository.New(tdb.DB, repository.Trips)
	found, err := repo.FindByID(ctx, id)

	require.NoError(t, err)
	assert.Equal(t, itinerary, found["itinerary"])
	assert.Equal(t, []any{"hotel", "breakfast"}, found["included"])
	// Structured fields never created are present as empty arrays.
	assert.Equal(t, []any{}, found["gallery"])
	assert.Equal(t, []any{}, found["faq"])
}

func TestRepository_Integration_TripSlugLookup(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	tdb := setupTest(t)
	fixtures := testutil.NewFixtures(tdb.DB)
	ctx := context.Background()

	admin := fixtures.CreateUser(t)
	fixtures.CreateTrip(t, admin.ID, repository.Record{"slug": "kyoto-autumn-tour"})
	fixtures.CreateTrip(t, admin.ID, repository.Record{"slug": "hidden-trip", "status": "draft"})

	repo := repository.New(tdb.DB, repository.Trips)

	found, err := repo.FindOneBy(ctx, "slug", "kyoto-autumn-tour", true)
	require.NoError(t, err)
	assert.Equal(t, "kyoto-autumn-tour", found["slug"])

	_, err = repo.FindOneBy(ctx, "slug", "hidden-trip", true)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestRepository_Integration_Delete(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	tdb := setupTest(t)
	fixtures := testutil.NewFixtures(tdb.DB)
	ctx := context.Background()

	admin := fixtures.CreateUser(t)
	created := fixtures.CreateDestination(t, admin.ID, repository.Record{
		"image":         "https://cdn.example.com/img.jpg",
		"imagePublicId": "img-handle",
	})
	id := uuid.MustParse(created["id"].(string))

	repo := repository.New(tdb.DB, repository.Destinations)

	deleted, err := repo.Delete(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "img-handle", deleted["imagePublicId"])

	_, err = repo.FindByID(ctx, id)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestRepository_Integration_EnquiryScopedFilter(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	tdb := setupTest(t)
	fixtures := testutil.NewFixtures(tdb.DB)
	ctx := context.Background()

	admin := fixtures.CreateUser(t)
	trip := fixtures.CreateTrip(t, admin.ID, nil)
	tripID := uuid.MustParse(trip["id"].(string))

	fixtures.CreateEnquiry(t, repository.Record{"tripId": tripID})
	fixtures.CreateEnquiry(t, nil)

	repo := repository.New(tdb.DB, repository.Enquiries)

	all, err := repo.FindAll(ctx, repository.Filter{})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	scoped, err := repo.FindAll(ctx, repository.Filter{
		Scoped: map[string]any{"tripId": tripID},
	})
	require.NoError(t, err)
	require.Len(t, scoped, 1)
	assert.Equal(t, tripID.String(), scoped[0]["tripId"])
}

func TestRepository_Integration_EnquiryEmailLowercased(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	tdb := setupTest(t)
	ctx := context.Background()

	repo := repository.New(tdb.DB, repository.Enquiries)
	created, err := repo.Create(ctx, repository.Record{
		"name":  "Ana",
		"email": "Ana.Petrova@Example.COM",
	}, nil)

	require.NoError(t, err)
	assert.Equal(t, "ana.petrova@example.com", created["email"])
	assert.Equal(t, "new", created["status"])
}
