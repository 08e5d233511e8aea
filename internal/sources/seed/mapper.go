package seed

import (
	"fmt"
	"strings"

	"github.com/MrSnakeDoc/meteo/internal/bookmark"
)

// MapCities converts the seed file to bookmark entries, in file order.
// Cities with an empty label are skipped; de-duplication is left to the
// bookmark store.
func MapCities(file *File) ([]bookmark.Entry, error) {
	if file == nil {
		return nil, fmt.Errorf("no seed file")
	}

	entries := make([]bookmark.Entry, 0, len(file.Cities))
	for _, c := range file.Cities {
		label := strings.TrimSpace(c.Label)
		if label == "" {
			continue
		}
		if c.ID != nil {
			entries = append(entries, bookmark.NewEntry(*c.ID, label))
			continue
		}
		entries = append(entries, bookmark.LabelOnly(label))
	}

	if len(entries) == 0 {
		return nil, fmt.Errorf("no valid cities found in seed file")
	}

	return entries, nil
}
