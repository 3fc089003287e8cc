package models

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	SizeSmall  = "s"
	SizeMedium = "m"
	SizeLarge  = "l"
)

// ParseSize normalises a size label. Both the short and long forms are
// accepted.
func ParseSize(s string) (string, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "s", "small":
		return SizeSmall, true
	case "m", "medium":
		return SizeMedium, true
	case "l", "large":
		return SizeLarge, true
	}
	return "", false
}

type SizePrice struct {
	Size  string  `bson:"size" json:"size"`
	Price float64 `bson:"price" json:"price"`
}

type Review struct {
	ID        primitive.ObjectID `bson:"_id" json:"id"`
	UserID    primitive.ObjectID `bson:"userId" json:"userId"`
	Name      string             `bson:"name" json:"name"`
	Rating    float64            `bson:"rating" json:"rating"`
	Comment   string             `bson:"comment" json:"comment"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}

type Product struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name          string             `bson:"name" json:"name"`
	Description   string             `bson:"description" json:"description"`
	Category      string             `bson:"category" json:"category"`
	Sizes         []SizePrice        `bson:"sizes" json:"sizes"`
	Images        []string           `bson:"images" json:"images"`
	IsTrending    bool               `bson:"isTrending" json:"isTrending"`
	Reviews       []Review           `bson:"reviews" json:"reviews"`
	AverageRating float64            `bson:"averageRating" json:"averageRating"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// PriceFor returns the current price for size.
func (p *Product) PriceFor(size string) (float64, bool) {
	for _, s := range p.Sizes {
		if s.Size == size {
			return s.Price, true
		}
	}
	return 0, false
}

func (p *Product) HasSize(size string) bool {
	_, ok := p.PriceFor(size)
	return ok
}

// FirstImage is the image copied into order snapshots.
func (p *Product) FirstImage() string {
	if len(p.Images) == 0 {
		return ""
	}
	return p.Images[0]
}

// ReviewBy returns the index of userID's review, or -1.
func (p *Product) ReviewBy(userID primitive.ObjectID) int {
	for i, r := range p.Reviews {
		if r.UserID == userID {
			return i
		}
	}
	return -1
}

// AverageRating is the arithmetic mean of the ratings, 0 for none.
func AverageRating(reviews []Review) float64 {
	if len(reviews) == 0 {
		return 0
	}
	var sum float64
	for _, r := range reviews {
		sum += r.Rating
	}
	return sum / float64(len(reviews))
}

// Report rows.

type CategoryCount struct {
	Category string `bson:"_id" json:"category"`
	Count    int    `bson:"count" json:"count"`
}

type ProductRating struct {
	ID            primitive.ObjectID `bson:"_id" json:"id"`
	Name          string             `bson:"name" json:"name"`
	AverageRating float64            `bson:"averageRating" json:"averageRating"`
}

type MonthlyCount struct {
	Year  int `bson:"year" json:"year"`
	Month int `bson:"month" json:"month"`
	Count int `bson:"count" json:"count"`
}

type SizeCount struct {
	Size  string `bson:"_id" json:"size"`
	Count int    `bson:"count" json:"count"`
}
