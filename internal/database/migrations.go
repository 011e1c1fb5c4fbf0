package database

import (
	"context"
	"fmt"
)

var migrations = []string{
	`CREATE EXTENSION IF NOT EXISTS "uuid-ossp"`,

	`CREATE TABLE IF NOT EXISTS users (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		email VARCHAR(255) UNIQUE NOT NULL,
		name VARCHAR(255) NOT NULL,
		password_hash VARCHAR(255) NOT NULL,
		role VARCHAR(50) NOT NULL DEFAULT 'admin',
		created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
		updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	)`,

	`CREATE TABLE IF NOT EXISTS trips (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		title VARCHAR(255) NOT NULL,
		location VARCHAR(255) NOT NULL,
		duration VARCHAR(100) NOT NULL,
		price VARCHAR(100) NOT NULL,
		old_price VARCHAR(100),
		subtitle VARCHAR(500),
		intro TEXT,
		slug VARCHAR(255) UNIQUE,
		image_url VARCHAR(500),
		image_public_id VARCHAR(255),
		video_url VARCHAR(500),
		video_public_id VARCHAR(255),
		gallery JSONB NOT NULL DEFAULT '[]',
		gallery_public_ids JSONB NOT NULL DEFAULT '[]',
		why_visit JSONB NOT NULL DEFAULT '[]',
		itinerary JSONB NOT NULL DEFAULT '[]',
		included JSONB NOT NULL DEFAULT '[]',
		not_included JSONB NOT NULL DEFAULT '[]',
		notes JSONB NOT NULL DEFAULT '[]',
		faq JSONB NOT NULL DEFAULT '[]',
		reviews JSONB NOT NULL DEFAULT '[]',
		status VARCHAR(20) NOT NULL DEFAULT 'active',
		created_by UUID REFERENCES users(id) ON DELETE SET NULL,
		created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
		updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	)`,

	`CREATE TABLE IF NOT EXISTS destinations (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		name VARCHAR(255) NOT NULL,
		image VARCHAR(500),
		image_public_id VARCHAR(255),
		status VARCHAR(20) NOT NULL DEFAULT 'active',
		created_by UUID REFERENCES users(id) ON DELETE SET NULL,
		created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
		updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	)`,

	`CREATE TABLE IF NOT EXISTS certificates (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		title VARCHAR(255) NOT NULL,
		description TEXT,
		images JSONB NOT NULL DEFAULT '[]',
		images_public_ids JSONB NOT NULL DEFAULT '[]',
		status VARCHAR(20) NOT NULL DEFAULT 'active',
		created_by UUID REFERENCES users(id) ON DELETE SET NULL,
		created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
		updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	)`,

	`CREATE TABLE IF NOT EXISTS written_reviews (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		name VARCHAR(255) NOT NULL,
		location VARCHAR(255),
		rating INTEGER,
		text TEXT,
		avatar VARCHAR(500),
		avatar_public_id VARCHAR(255),
		status VARCHAR(20) NOT NULL DEFAULT 'active',
		created_by UUID REFERENCES users(id) ON DELETE SET NULL,
		created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
		updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	)`,

	`CREATE TABLE IF NOT EXISTS enquiries (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		trip_id UUID REFERENCES trips(id) ON DELETE SET NULL,
		trip_title VARCHAR(255),
		trip_location VARCHAR(255),
		trip_price VARCHAR(100),
		selected_month VARCHAR(50),
		number_of_travelers INTEGER NOT NULL DEFAULT 1,
		name VARCHAR(255) NOT NULL,
		email VARCHAR(255) NOT NULL,
		phone VARCHAR(50),
		message TEXT,
		status VARCHAR(20) NOT NULL DEFAULT 'new',
		created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
		updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	)`,

	`CREATE TABLE IF NOT EXISTS refresh_tokens (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		token_hash VARCHAR(255) NOT NULL UNIQUE,
		expires_at TIMESTAMP WITH TIME ZONE NOT NULL,
		created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	)`,

	`CREATE INDEX IF NOT EXISTS idx_trips_status ON trips(status)`,
	`CREATE INDEX IF NOT EXISTS idx_trips_slug ON trips(slug)`,
	`CREATE INDEX IF NOT EXISTS idx_destinations_status ON destinations(status)`,
	`CREATE INDEX IF NOT EXISTS idx_certificates_status ON certificates(status)`,
	`CREATE INDEX IF NOT EXISTS idx_written_reviews_status ON written_reviews(status)`,
	`CREATE INDEX IF NOT EXISTS idx_enquiries_trip_id ON enquiries(trip_id)`,
	`CREATE INDEX IF NOT EXISTS idx_enquiries_status ON enquiries(status)`,
	`CREATE INDEX IF NOT EXISTS idx_refresh_tokens_user_id ON refresh_tokens(user_id)`,
}

func (db *DB) Migrate(ctx context.Context) error {
	for i, migration := range migrations {
		if _, err := db.Pool.Exec(ctx, migration); err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}
	return nil
}
