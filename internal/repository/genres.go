package repository

import "encoding/json"

// Genres persist as a JSON array in a TEXT column. Order is preserved and
// no deduplication happens here; the form layer decides what values are
// offered.

func encodeGenres(genres []string) (string, error) {
	if genres == nil {
		genres = []string{}
	}
	b, err := json.Marshal(genres)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func decodeGenres(raw string, dst *[]string) error {
	if raw == "" {
		*dst = nil
		return nil
	}
	return json.Unmarshal([]byte(raw), dst)
}
