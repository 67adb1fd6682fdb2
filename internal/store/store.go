// Package store persists the canonical profile as YAML on the local disk or in an
// S3-compatible bucket.
package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spigell/resume-mate/internal/profile"
)

// ErrNotFound is returned by Read when no profile exists at the locator.
var ErrNotFound = errors.New("profile not found")

// Store reads and writes the serialized profile.
type Store interface {
	Read(ctx context.Context) ([]byte, error)
	// Write replaces the stored profile. A failed write leaves the previous content in place.
	Write(ctx context.Context, data []byte) error
	Exists(ctx context.Context) (bool, error)
	Locator() string
}

// Open returns the store addressed by locator: s3://bucket/key or a file path.
func Open(ctx context.Context, locator string, opts S3Options) (Store, error) {
	locator = strings.TrimSpace(locator)
	if locator == "" {
		return nil, errors.New("profile locator is empty")
	}

	if strings.HasPrefix(locator, s3Scheme) {
		bucket, key, err := parseS3Locator(locator)
		if err != nil {
			return nil, err
		}
		client, err := NewS3Client(ctx, opts)
		if err != nil {
			return nil, err
		}
		return NewS3Store(client, bucket, key), nil
	}

	return NewFileStore(locator), nil
}

// Load reads and parses the stored profile.
func Load(ctx context.Context, s Store) (*profile.MasterProfile, error) {
	data, err := s.Read(ctx)
	if err != nil {
		return nil, err
	}

	p, err := profile.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", s.Locator(), err)
	}
	return p, nil
}

// Save validates and writes the profile. Invalid profiles are never written.
func Save(ctx context.Context, s Store, p *profile.MasterProfile) error {
	if err := profile.Validate(p); err != nil {
		return fmt.Errorf("save %s: %w", s.Locator(), err)
	}

	data, err := profile.Marshal(p)
	if err != nil {
		return err
	}

	return s.Write(ctx, data)
}
