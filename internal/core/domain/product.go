package domain

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// Product is a catalogue record as written into the index.
// One Product exists per catalogue item; it is immutable after the
// index is built.
type Product struct {
	// ID is the stable catalogue identifier (ASIN).
	ID string `json:"id"`

	// Content is the enriched searchable text: description, category,
	// brand, price and a bracketed rating annotation, concatenated so
	// that ranking and numeric facts are jointly visible to free-text
	// consumers downstream.
	Content string `json:"contents"`

	// Title is the human-readable product title.
	Title string `json:"title"`

	// AverageRating is the mean review score, or unknown ("N/A").
	AverageRating Rating `json:"average_rating"`

	// RatingNumber is the count of ratings behind AverageRating.
	RatingNumber int `json:"rating_number"`

	// Brand is the product brand, possibly empty.
	Brand string `json:"brand"`

	// Price is the display price string ("$29.99" or "N/A").
	Price string `json:"price"`
}

// Rating is a review score that may be unknown. Catalogue dumps store
// it either as a number or as the literal string "N/A"; both decode.
type Rating struct {
	Value float64
	Known bool
}

// String renders the rating the way the catalogue displays it.
func (r Rating) String() string {
	if !r.Known {
		return "N/A"
	}
	return strconv.FormatFloat(r.Value, 'f', -1, 64)
}

// MarshalJSON encodes known ratings as numbers and unknown as "N/A".
func (r Rating) MarshalJSON() ([]byte, error) {
	if !r.Known {
		return json.Marshal("N/A")
	}
	return json.Marshal(r.Value)
}

// UnmarshalJSON accepts a JSON number, a numeric string, or "N/A".
func (r *Rating) UnmarshalJSON(data []byte) error {
	var num float64
	if err := json.Unmarshal(data, &num); err == nil {
		r.Value = num
		r.Known = true
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("rating: %w", err)
	}
	if v, err := strconv.ParseFloat(s, 64); err == nil {
		r.Value = v
		r.Known = true
		return nil
	}

	// "N/A", "", and anything non-numeric all mean unknown.
	*r = Rating{}
	return nil
}
