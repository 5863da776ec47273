package domain

import "time"

// Lister is the contact block shown on a listing.
type Lister struct {
	Name         string `json:"name"`
	Description  string `json:"description"`
	Relation     string `json:"relation"`
	MobileNumber string `json:"mobileNumber"`
	Email        string `json:"email"`
}

// Property is a real-estate listing owned by a user.
type Property struct {
	ID          string    `json:"_id"`
	Name        string    `json:"name"`
	Price       float64   `json:"price"`
	City        string    `json:"city"`
	Locality    string    `json:"locality"`
	BedsNum     int       `json:"bedsNum"`
	BathsNum    int       `json:"bathsNum"`
	Area        float64   `json:"area"`
	Purpose     string    `json:"purpose"` // "rent" or "sale"
	Description string    `json:"description"`
	ParkingNum  int       `json:"parkingNum"`
	Type        string    `json:"propertyType"`
	Images      []string  `json:"propertyImage"`
	YearBuilt   int       `json:"yearBuilt"`
	LotSize     float64   `json:"lotSize"`
	Lister      Lister    `json:"lister"`
	UserID      string    `json:"user_id"`
	CreatedAt   time.Time `json:"createdAt"`
}
