package models

import (
	"encoding/json"
	"fmt"
	"strings"
)

// City is a schedule-provider location. Identity is the ID.
type City struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// UnmarshalJSON accepts {id, lokasi} from the provider as well as {id, name},
// with the id given either as a string or a number.
func (c *City) UnmarshalJSON(data []byte) error {
	var raw struct {
		ID     json.RawMessage `json:"id"`
		Name   string          `json:"name"`
		Lokasi string          `json:"lokasi"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	id, err := decodeID(raw.ID)
	if err != nil {
		return fmt.Errorf("city id: %w", err)
	}

	c.ID = id
	c.Name = raw.Name
	if c.Name == "" {
		c.Name = raw.Lokasi
	}
	return nil
}

// Matches reports whether the city name contains query, ignoring case.
func (c City) Matches(query string) bool {
	return strings.Contains(strings.ToLower(c.Name), strings.ToLower(query))
}

func decodeID(raw json.RawMessage) (string, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return "", nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s, nil
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err != nil {
		return "", err
	}
	return n.String(), nil
}
