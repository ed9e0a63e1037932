package photoprism

import (
	"fmt"
	"net/url"
)

// GetPhotos retrieves photos from PhotoPrism
func (pp *PhotoPrism) GetPhotos(count int, offset int) ([]Photo, error) {
	return pp.GetPhotosWithQuery(count, offset, "")
}

// GetPhotosWithQuery retrieves photos from PhotoPrism with an optional search query
// Query examples: "person:jan-novak", "geo:yes", "year:2024"
func (pp *PhotoPrism) GetPhotosWithQuery(count int, offset int, query string) ([]Photo, error) {
	return pp.GetPhotosWithQueryAndOrder(count, offset, query, "")
}

// GetPhotosWithQueryAndOrder retrieves photos with optional search query and ordering
// Order examples: "newest", "oldest", "added", "name", "random"
func (pp *PhotoPrism) GetPhotosWithQueryAndOrder(count int, offset int, query string, order string) ([]Photo, error) {
	endpoint := fmt.Sprintf("photos?count=%d&offset=%d", count, offset)
	if query != "" {
		endpoint += "&q=" + url.QueryEscape(query)
	}
	if order != "" {
		endpoint += "&order=" + url.QueryEscape(order)
	}

	result, err := doGetJSON[[]Photo](pp, endpoint)
	if err != nil {
		return nil, err
	}
	return *result, nil
}
