// Package page loads drawing page rasters for the pipeline.
package page

import (
	"fmt"
	"image"
	_ "image/gif"  // Register GIF format decoder
	_ "image/jpeg" // Register JPEG format decoder
	_ "image/png"  // Register PNG format decoder
	"os"
	"sync"
)

// Cache is a thread-safe cache of decoded page images, keyed by path.
// Batch runs touch the same page for boundary detection, OCR and
// overlay rendering; the cache keeps that to one decode.
type Cache struct {
	mu    sync.RWMutex
	pages map[string]image.Image
}

// NewCache returns an empty page cache.
func NewCache() *Cache {
	return &Cache{pages: make(map[string]image.Image)}
}

// Load returns the decoded page image, reading from disk on first use.
func (c *Cache) Load(path string) (image.Image, error) {
	c.mu.RLock()
	if img, ok := c.pages[path]; ok {
		c.mu.RUnlock()
		return img, nil
	}
	c.mu.RUnlock()

	img, err := Load(path)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.pages[path] = img
	c.mu.Unlock()
	return img, nil
}

// Evict drops a page from the cache.
func (c *Cache) Evict(path string) {
	c.mu.Lock()
	delete(c.pages, path)
	c.mu.Unlock()
}

// Clear drops all cached pages.
func (c *Cache) Clear() {
	c.mu.Lock()
	c.pages = make(map[string]image.Image)
	c.mu.Unlock()
}

// Load decodes a page image from disk. PNG, JPEG and GIF are supported.
func Load(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	return img, nil
}
