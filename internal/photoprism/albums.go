package photoprism

import (
	"fmt"
	"net/http"
	"net/url"
)

// GetAlbums retrieves albums from PhotoPrism
// albumType can be: "album" (manual albums), "folder", "moment", "month", "state", or "" for all
func (pp *PhotoPrism) GetAlbums(count int, offset int, query string, albumType string) ([]Album, error) {
	endpoint := fmt.Sprintf("albums?count=%d&offset=%d", count, offset)
	if albumType != "" {
		endpoint += "&type=" + url.QueryEscape(albumType)
	}
	if query != "" {
		endpoint += "&q=" + url.QueryEscape(query)
	}

	result, err := doGetJSON[[]Album](pp, endpoint)
	if err != nil {
		return nil, err
	}
	return *result, nil
}

// CreateAlbum creates a new album with the given title and description
func (pp *PhotoPrism) CreateAlbum(title, description string) (*Album, error) {
	input := struct {
		Title       string `json:"Title"`
		Description string `json:"Description,omitempty"`
	}{
		Title:       title,
		Description: description,
	}

	return doPostJSON[Album](pp, "albums", input)
}

// AddPhotosToAlbum adds photos to an album
func (pp *PhotoPrism) AddPhotosToAlbum(albumUID string, photoUIDs []string) error {
	if len(photoUIDs) == 0 {
		return nil
	}

	selection := struct {
		Photos []string `json:"photos"`
	}{
		Photos: photoUIDs,
	}

	return doRequestRaw(pp, http.MethodPost, fmt.Sprintf("albums/%s/photos", albumUID), selection)
}
