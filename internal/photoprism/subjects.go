package photoprism

import "fmt"

// GetSubjects retrieves subjects (people) from PhotoPrism
func (pp *PhotoPrism) GetSubjects(count int, offset int) ([]Subject, error) {
	endpoint := fmt.Sprintf("subjects?count=%d&offset=%d&type=person", count, offset)
	result, err := doGetJSON[[]Subject](pp, endpoint)
	if err != nil {
		return nil, err
	}
	return *result, nil
}
