package filecache

import (
	"fmt"
	"strings"

	"hotel_recommender/internal/domain"
)

const (
	filePrefix = "hotels_"
	fileExt    = ".csv"
	delimiter  = "_"
)

// EncodeFilename renders a cache key as its on-disk identity:
// hotels_<cityCode>_<checkin>_<checkout>.csv. Components containing the
// delimiter are rejected so DecodeFilename stays unambiguous; this pair is
// the only place filenames are built or parsed.
func EncodeFilename(key domain.CacheKey) (string, error) {
	for _, part := range []string{key.CityCode, key.CheckIn, key.CheckOut} {
		if part == "" {
			return "", fmt.Errorf("filecache: empty key component in %+v", key)
		}
		if strings.Contains(part, delimiter) {
			return "", fmt.Errorf("filecache: key component %q contains %q", part, delimiter)
		}
	}
	return filePrefix + key.CityCode + delimiter + key.CheckIn + delimiter + key.CheckOut + fileExt, nil
}

// DecodeFilename is the strict inverse of EncodeFilename. The bool is false
// for any name the encoder could not have produced.
func DecodeFilename(name string) (domain.CacheKey, bool) {
	if !strings.HasPrefix(name, filePrefix) || !strings.HasSuffix(name, fileExt) {
		return domain.CacheKey{}, false
	}
	body := strings.TrimSuffix(strings.TrimPrefix(name, filePrefix), fileExt)
	parts := strings.Split(body, delimiter)
	if len(parts) != 3 {
		return domain.CacheKey{}, false
	}
	for _, p := range parts {
		if p == "" {
			return domain.CacheKey{}, false
		}
	}
	return domain.CacheKey{CityCode: parts[0], CheckIn: parts[1], CheckOut: parts[2]}, true
}
