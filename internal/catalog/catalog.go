// Package catalog holds the storefront's demo product data and the product
// listing filters.
package catalog

import (
	"time"

	"github.com/nikolayk812/neon-eshop/internal/domain"
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

type Facets struct {
	Categories []string
	Platforms  []string
	Genres     []string
}

// Catalog is read-only after construction and safe for concurrent use.
type Catalog struct {
	products     []domain.Product
	categories   []domain.Category
	testimonials []domain.Testimonial
	orders       []domain.Order
	facets       Facets
}

func New(cur currency.Unit) *Catalog {
	return &Catalog{
		products:     demoProducts(cur),
		categories:   demoCategories(),
		testimonials: demoTestimonials(),
		orders:       demoOrders(cur),
		facets: Facets{
			Categories: []string{"Action", "RPG", "Racing", "Strategy", "Simulation", "Sports"},
			Platforms:  []string{"PC", "PlayStation 5", "Xbox Series X", "Nintendo Switch"},
			Genres:     []string{"Open World", "FPS", "Stealth", "Multiplayer", "Single Player"},
		},
	}
}

func (c *Catalog) Products() []domain.Product {
	return clone(c.products)
}

// Featured returns the games shown on the home page.
func (c *Catalog) Featured() []domain.Product {
	return clone(c.products[:3])
}

// BySlug returns the product with slug, or the first product when none matches.
func (c *Catalog) BySlug(slug string) domain.Product {
	for _, p := range c.products {
		if p.Slug == slug {
			return p
		}
	}
	return c.products[0]
}

func (c *Catalog) ByID(id string) (domain.Product, bool) {
	for _, p := range c.products {
		if p.ID == id {
			return p, true
		}
	}
	return domain.Product{}, false
}

func (c *Catalog) Related() []domain.Product {
	return clone(c.products[:4])
}

func (c *Catalog) Wishlist() []domain.Product {
	return clone(c.products[:3])
}

func (c *Catalog) Categories() []domain.Category {
	return clone(c.categories)
}

func (c *Catalog) Testimonials() []domain.Testimonial {
	return clone(c.testimonials)
}

func (c *Catalog) Orders() []domain.Order {
	return clone(c.orders)
}

func (c *Catalog) Facets() Facets {
	return c.facets
}

func clone[T any](s []T) []T {
	return append([]T(nil), s...)
}

func demoProducts(cur currency.Unit) []domain.Product {
	money := func(v string) domain.Money {
		return domain.NewMoney(decimal.RequireFromString(v), cur)
	}
	oldPrice := money("79.99")

	return []domain.Product{
		{
			ID:          "1",
			Title:       "Cyberpunk Vice City 2077",
			Slug:        "cyberpunk-vice-city-2077",
			Description: "Experience the neon-lit streets of Vice City in this groundbreaking open-world RPG.",
			Price:       money("59.99"),
			OldPrice:    &oldPrice,
			Image:       "https://images.unsplash.com/photo-1542751371-adc38448a05e?w=800&h=600&fit=crop",
			Badge:       "NEW",
			Platform:    "PC",
			Rating:      4.8,
			Sales:       1250,
			Featured:    true,
			Category:    "action",
			Genres:      []string{"RPG", "Action", "Open World"},
			ReleaseDate: date("2024-11-01"),
		},
		{
			ID:          "2",
			Title:       "Street Legends: Underworld",
			Slug:        "street-legends-underworld",
			Description: "Build your criminal empire from the ground up in this intense strategy game.",
			Price:       money("49.99"),
			Image:       "https://images.unsplash.com/photo-1550745165-9bc0b252726f?w=800&h=600&fit=crop",
			Badge:       "SALE",
			Platform:    "PC",
			Rating:      4.6,
			Sales:       890,
			Featured:    true,
			Category:    "strategy",
			Genres:      []string{"Strategy", "Simulation"},
			ReleaseDate: date("2024-10-15"),
		},
		{
			ID:          "3",
			Title:       "Neon Racers: Miami Nights",
			Slug:        "neon-racers-miami-nights",
			Description: "Race through the streets of Miami in this adrenaline-pumped arcade racer.",
			Price:       money("39.99"),
			Image:       "https://images.unsplash.com/photo-1511512578047-dfb367046420?w=800&h=600&fit=crop",
			Platform:    "PC",
			Rating:      4.7,
			Sales:       2100,
			Featured:    true,
			Category:    "racing",
			Genres:      []string{"Racing", "Arcade"},
			ReleaseDate: date("2024-09-20"),
		},
		{
			ID:          "4",
			Title:       "Vice City Heist",
			Slug:        "vice-city-heist",
			Description: "Plan and execute the perfect heist in this tactical stealth action game.",
			Price:       money("44.99"),
			Image:       "https://images.unsplash.com/photo-1538481199705-c710c4e965fc?w=800&h=600&fit=crop",
			Platform:    "PC",
			Rating:      4.5,
			Sales:       750,
			Featured:    true,
			Category:    "action",
			Genres:      []string{"Action", "Stealth"},
			ReleaseDate: date("2024-08-10"),
		},
		{
			ID:          "5",
			Title:       "Urban Warriors",
			Slug:        "urban-warriors",
			Description: "Fight your way through the city in this intense beat 'em up.",
			Price:       money("29.99"),
			Image:       "https://images.unsplash.com/photo-1552820728-8b83bb6b773f?w=800&h=600&fit=crop",
			Platform:    "PC",
			Rating:      4.3,
			Sales:       650,
			Category:    "action",
			Genres:      []string{"Action", "Fighting"},
			ReleaseDate: date("2024-07-05"),
		},
		{
			ID:          "6",
			Title:       "Sunset Boulevard Simulator",
			Slug:        "sunset-boulevard-simulator",
			Description: "Live the high life in this immersive life simulation game.",
			Price:       money("34.99"),
			Image:       "https://images.unsplash.com/photo-1493711662062-fa541adb3fc8?w=800&h=600&fit=crop",
			Platform:    "PC",
			Rating:      4.4,
			Sales:       1020,
			Category:    "simulation",
			Genres:      []string{"Simulation", "RPG"},
			ReleaseDate: date("2024-06-18"),
		},
	}
}

func demoCategories() []domain.Category {
	return []domain.Category{
		{Name: "Action", Slug: "action", Count: 45, Image: "https://images.unsplash.com/photo-1560253023-3ec5d502959f?w=800&h=800&fit=crop"},
		{Name: "RPG", Slug: "rpg", Count: 32, Image: "https://images.unsplash.com/photo-1509198397868-475647b2a1e5?w=800&h=800&fit=crop"},
		{Name: "Racing", Slug: "racing", Count: 18, Image: "https://images.unsplash.com/photo-1547949003-9792a18a2601?w=800&h=800&fit=crop"},
		{Name: "Strategy", Slug: "strategy", Count: 27, Image: "https://images.unsplash.com/photo-1511512578047-dfb367046420?w=800&h=800&fit=crop"},
	}
}

func demoTestimonials() []domain.Testimonial {
	return []domain.Testimonial{
		{
			Text:   "Best gaming marketplace I've ever used! The selection is incredible and the prices are unbeatable.",
			Author: "Alex Rodriguez",
			Role:   "Pro Gamer",
			Avatar: "https://i.pravatar.cc/150?img=12",
			Rating: 5,
		},
		{
			Text:   "Lightning-fast delivery and amazing customer support. These guys really know what gamers want!",
			Author: "Sarah Chen",
			Role:   "Game Streamer",
			Avatar: "https://i.pravatar.cc/150?img=45",
			Rating: 5,
		},
		{
			Text:   "The GTA-6 theme is absolutely fire! Makes shopping for games an experience in itself.",
			Author: "Marcus Johnson",
			Role:   "Gaming Enthusiast",
			Avatar: "https://i.pravatar.cc/150?img=33",
			Rating: 5,
		},
	}
}

func demoOrders(cur currency.Unit) []domain.Order {
	money := func(v string) domain.Money {
		return domain.NewMoney(decimal.RequireFromString(v), cur)
	}

	return []domain.Order{
		{
			ID:     "#A8F3D92B",
			Date:   date("2024-10-28"),
			Status: "delivered",
			Total:  money("109.97"),
			Items: []domain.OrderItem{
				{Title: "Cyberpunk Vice City 2077", Price: money("59.99"), Image: "https://images.unsplash.com/photo-1542751371-adc38448a05e?w=800&h=600&fit=crop"},
				{Title: "Neon Racers: Miami Nights", Price: money("49.99"), Image: "https://images.unsplash.com/photo-1511512578047-dfb367046420?w=800&h=600&fit=crop"},
			},
		},
		{
			ID:     "#B7E2C81A",
			Date:   date("2024-10-15"),
			Status: "processing",
			Total:  money("44.99"),
			Items: []domain.OrderItem{
				{Title: "Vice City Heist", Price: money("44.99"), Image: "https://images.unsplash.com/photo-1538481199705-c710c4e965fc?w=800&h=600&fit=crop"},
			},
		},
	}
}

func date(s string) time.Time {
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		panic(err)
	}
	return t
}
