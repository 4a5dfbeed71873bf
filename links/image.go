package links

import "strings"

// ResolveImage turns a site-relative image path into an absolute URL under siteURL.
// Absolute http(s) URLs and empty paths are returned unchanged.
func ResolveImage(image, siteURL string) string {
	if image == "" || IsAbsolute(image) {
		return image
	}
	return strings.TrimRight(siteURL, "/") + "/" + strings.TrimLeft(image, "/")
}

func IsAbsolute(url string) bool {
	return strings.HasPrefix(url, "http://") || strings.HasPrefix(url, "https://")
}
