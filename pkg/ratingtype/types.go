// Package ratingtype provides read-only access to the rating_types relation
// and terminal formatting of rating descriptions.
package ratingtype

import "fmt"

// RatingType describes one rating definition. Instances are immutable once
// fetched; this system never writes to the rating_types relation.
type RatingType struct {
	RatingID    int
	Name        string
	Version     int
	Description string
}

// fromRow builds a RatingType from a store row mapping. The MySQL driver
// returns integers as int64 and text as strings after normalization.
func fromRow(row map[string]interface{}) RatingType {
	return RatingType{
		RatingID:    toInt(row["rating_id"]),
		Name:        toString(row["name"]),
		Version:     toInt(row["version"]),
		Description: toString(row["description"]),
	}
}

func toInt(v interface{}) int {
	switch n := v.(type) {
	case int64:
		return int(n)
	case int:
		return n
	case string:
		var parsed int
		if _, err := fmt.Sscanf(n, "%d", &parsed); err == nil {
			return parsed
		}
	}

	return 0
}

func toString(v interface{}) string {
	if s, ok := v.(string); ok {
		return s
	}

	if v == nil {
		return ""
	}

	return fmt.Sprintf("%v", v)
}
