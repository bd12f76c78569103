package domain

import "time"

type Business struct {
	ID          int64     `json:"id"`
	OwnerID     *string   `json:"owner_id,omitempty"` // auth user id once a claim is verified
	Name        string    `json:"name"`
	Category    *string   `json:"category,omitempty"`
	Description *string   `json:"description,omitempty"`
	Phone       *string   `json:"phone,omitempty"`
	Website     *string   `json:"website,omitempty"`
	Address     *string   `json:"address,omitempty"`
	City        *string   `json:"city,omitempty"`
	Country     *string   `json:"country,omitempty"`
	Lat         *float64  `json:"lat,omitempty"`
	Lon         *float64  `json:"lon,omitempty"`
	Status      string    `json:"status"` // active|removed
	RatingAvg   float64   `json:"rating_avg"`
	RatingCount int       `json:"rating_count"`
	CreatedAt   time.Time `json:"created_at"`
}

const (
	BusinessActive  = "active"
	BusinessRemoved = "removed"
)

type Coords struct{ Lat, Lon float64 }

type BusinessQuery struct {
	Q         *string
	Category  *string
	City      *string
	MinRating *float64
	Limit     int
}

type BusinessesPage struct {
	Items      []Business `json:"items"`
	NextCursor *string    `json:"next_cursor,omitempty"`
}
