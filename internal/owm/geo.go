package owm

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/MrSnakeDoc/meteo/internal/logger"
)

// NameCache stores reverse-geocoded names. Get returns "" on a miss.
type NameCache interface {
	GetName(ctx context.Context, key string) (string, error)
	SetName(ctx context.Context, key, name string) error
}

type reversePayload []struct {
	Name       string            `json:"name"`
	LocalNames map[string]string `json:"local_names"`
}

func nameCacheKey(lat, lon float64, lang string) string {
	return fmt.Sprintf("%s:%.4f:%.4f", lang, lat, lon)
}

// LocalName returns the city name at lat/lon in lang, falling back to the
// default name. ok is false when the API knows no place there.
func (c *Client) LocalName(ctx context.Context, lat, lon float64, lang string) (name string, ok bool, err error) {
	apiLang := geoLang(lang)
	key := nameCacheKey(lat, lon, apiLang)

	if c.names != nil {
		if cached, cerr := c.names.GetName(ctx, key); cerr != nil {
			c.logger.Debug("name cache read failed", logger.Error(cerr))
		} else if cached != "" {
			return cached, true, nil
		}
	}

	params := url.Values{}
	params.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	params.Set("lon", strconv.FormatFloat(lon, 'f', -1, 64))
	params.Set("limit", "1")
	params.Set("lang", apiLang)

	var p reversePayload
	if err := c.getJSON(ctx, c.geoURL+"/reverse", params, &p); err != nil {
		return "", false, err
	}
	if len(p) == 0 {
		return "", false, nil
	}

	name = p[0].LocalNames[apiLang]
	if name == "" {
		name = p[0].Name
	}
	if name == "" {
		return "", false, nil
	}

	if c.names != nil {
		if cerr := c.names.SetName(ctx, key, name); cerr != nil {
			c.logger.Debug("name cache write failed", logger.Error(cerr))
		}
	}
	return name, true, nil
}
