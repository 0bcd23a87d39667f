package upstream

import "strings"

const placeholderImage = "https://via.placeholder.com/200"

// Image size-variant folders on the asset host.
const (
	ImageFull      = "full"
	ImageThumbnail = "thumbnail"
)

// ImageURL builds the absolute URL for a product image path. Absolute
// URLs pass through; blank or junk paths get a placeholder.
func (c *Client) ImageURL(path, variant string) string {
	if len(path) < 5 {
		return placeholderImage
	}
	if strings.HasPrefix(path, "http") {
		return path
	}
	if variant == "" {
		variant = ImageFull
	}
	return c.assetBase + "/" + variant + "/" + path
}

// SliderImageURL builds the URL for a home slider image, always the
// full-size variant.
func (c *Client) SliderImageURL(path string) string {
	if path == "" {
		return "https://via.placeholder.com/800x400"
	}
	if strings.HasPrefix(path, "http") {
		return path
	}
	return c.assetBase + "/" + ImageFull + "/" + path
}
