// Package storage resolves plant image references to public URLs.
package storage

import "strings"

// DefaultFallbackImageURL is served whenever a plant has no usable image.
const DefaultFallbackImageURL = "https://images.pexels.com/photos/1084199/pexels-photo-1084199.jpeg?auto=compress&cs=tinysrgb&w=400"

// ImageResolver maps a stored image path to a fetchable URL. A missing path
// resolves to the fallback, never an error; clients are expected to fall
// back to the same URL again if the resolved one fails to load.
type ImageResolver struct {
	baseURL  string
	fallback string
}

// NewImageResolver builds a resolver for a public bucket base URL, e.g.
// "https://cdn.example.com/storage/v1/object/public/plant-images".
func NewImageResolver(baseURL, fallbackURL string) *ImageResolver {
	if fallbackURL == "" {
		fallbackURL = DefaultFallbackImageURL
	}
	return &ImageResolver{
		baseURL:  strings.TrimRight(baseURL, "/"),
		fallback: fallbackURL,
	}
}

// Resolve returns the public URL for an image path. Absolute URLs pass
// through untouched; relative paths resolve against the bucket; an empty
// path yields the fallback.
func (r *ImageResolver) Resolve(imagePath string) string {
	if imagePath == "" {
		return r.fallback
	}
	if strings.HasPrefix(imagePath, "http://") || strings.HasPrefix(imagePath, "https://") {
		return imagePath
	}
	if r.baseURL == "" {
		return r.fallback
	}
	return r.baseURL + "/" + strings.TrimLeft(imagePath, "/")
}

// Fallback returns the fixed fallback image URL.
func (r *ImageResolver) Fallback() string { return r.fallback }
