// Package assets locates and decodes the files the renderer needs.
package assets

import (
	"fmt"
	"image"
	"os"

	getter "github.com/hashicorp/go-getter"
	stbi "neilpa.me/go-stbi"
)

// EnsureAtlas makes sure the texture atlas exists at path, downloading it
// from url on first run. With no url configured a missing atlas is an
// error the caller reports.
func EnsureAtlas(path, url string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	}
	if url == "" {
		return fmt.Errorf("texture atlas %s missing and no download url configured", path)
	}
	if err := getter.GetFile(path, url); err != nil {
		return fmt.Errorf("fetch texture atlas: %w", err)
	}
	return nil
}

// LoadAtlas decodes the block texture atlas into RGBA pixels ready for
// upload.
func LoadAtlas(path string) (*image.RGBA, error) {
	img, err := stbi.Load(path)
	if err != nil {
		return nil, fmt.Errorf("decode texture atlas %s: %w", path, err)
	}
	return img, nil
}
