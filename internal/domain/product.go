package domain

import (
	"time"
)

type Product struct {
	ID          string
	Title       string
	Slug        string
	Description string
	Price       Money
	OldPrice    *Money
	Image       string
	Badge       string
	Platform    string
	Rating      float64
	Sales       int
	Featured    bool
	Category    string
	Genres      []string
	ReleaseDate time.Time
}

func (p Product) Ref() ProductRef {
	return ProductRef{
		ID:       p.ID,
		Title:    p.Title,
		Price:    p.Price,
		Image:    p.Image,
		Platform: p.Platform,
	}
}

type Category struct {
	Name  string
	Slug  string
	Count int
	Image string
}

type Testimonial struct {
	Text   string
	Author string
	Role   string
	Avatar string
	Rating int
}

type Order struct {
	ID     string
	Date   time.Time
	Status string
	Total  Money
	Items  []OrderItem
}

type OrderItem struct {
	Title string
	Price Money
	Image string
}
