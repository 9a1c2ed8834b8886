package main

import (
	"errors"
	"fmt"
	"log"

	"github.com/serg-shkviro/eshop/config"
	"github.com/serg-shkviro/eshop/internal/app/model"
	"github.com/serg-shkviro/eshop/internal/db"
	"github.com/serg-shkviro/eshop/pkg/util"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type seedProduct struct {
	name        string
	description string
	price       string
	stock       int
	category    string
}

var seedCategories = []model.Category{
	{Name: "Electronics", Description: "Phones, laptops and accessories"},
	{Name: "Books", Description: "Fiction and non-fiction titles"},
	{Name: "Clothing", Description: "Apparel for all seasons"},
	{Name: "Home & Garden", Description: "Everything for your home"},
	{Name: "Sports", Description: "Sports and outdoor equipment"},
}

var seedProducts = []seedProduct{
	{"Wireless Headphones", "Over-ear noise cancelling headphones", "129.99", 50, "Electronics"},
	{"Smartphone X200", "6.5 inch display, 128GB storage", "699.00", 30, "Electronics"},
	{"Mechanical Keyboard", "Tenkeyless, hot-swappable switches", "89.50", 40, "Electronics"},
	{"The Go Programming Language", "Comprehensive introduction to Go", "39.99", 100, "Books"},
	{"Clean Architecture", "A craftsman's guide to software structure", "34.95", 80, "Books"},
	{"Cotton T-Shirt", "Plain crew neck, 100% cotton", "14.99", 200, "Clothing"},
	{"Winter Jacket", "Waterproof insulated jacket", "119.00", 25, "Clothing"},
	{"Ceramic Plant Pot", "Indoor pot with drainage tray, 20cm", "18.50", 60, "Home & Garden"},
	{"LED Desk Lamp", "Dimmable lamp with USB charging port", "27.99", 45, "Home & Garden"},
	{"Yoga Mat", "Non-slip mat, 6mm thick", "24.00", 70, "Sports"},
	{"Running Shoes", "Lightweight road running shoes", "95.00", 35, "Sports"},
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	if err := db.Initialize(&cfg.Database); err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	gdb := db.GetDB()

	categoryIDs := map[string]uint{}
	for _, c := range seedCategories {
		var existing model.Category
		err := gdb.Where("name = ?", c.Name).First(&existing).Error
		if err == nil {
			categoryIDs[c.Name] = existing.ID
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Fatal("Failed to look up category:", err)
		}
		category := c
		if err := gdb.Create(&category).Error; err != nil {
			log.Fatal("Failed to create category:", err)
		}
		categoryIDs[c.Name] = category.ID
		fmt.Printf("Created category: %s\n", category.Name)
	}

	created := 0
	for _, p := range seedProducts {
		var existing model.Product
		err := gdb.Where("name = ?", p.name).First(&existing).Error
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Fatal("Failed to look up product:", err)
		}

		price, err := decimal.NewFromString(p.price)
		if err != nil {
			log.Fatal("Invalid seed price:", err)
		}
		categoryID := categoryIDs[p.category]
		product := model.Product{
			Name:        p.name,
			Description: p.description,
			Price:       price,
			Stock:       p.stock,
			CategoryID:  &categoryID,
			IsActive:    true,
		}
		if err := gdb.Create(&product).Error; err != nil {
			log.Fatal("Failed to create product:", err)
		}
		created++
	}
	fmt.Printf("Created %d products\n", created)

	if err := seedDemoUser(gdb); err != nil {
		log.Fatal("Failed to seed demo user:", err)
	}

	fmt.Println("Seeding complete.")
}

func seedDemoUser(gdb *gorm.DB) error {
	const email = "demo@example.com"

	var existing model.User
	err := gdb.Where("email = ?", email).First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hash, err := util.HashPassword("demopassword")
	if err != nil {
		return err
	}

	user := model.User{
		Email:        email,
		PasswordHash: hash,
		Name:         "Demo Customer",
		IsActive:     true,
	}
	if err := gdb.Create(&user).Error; err != nil {
		return err
	}
	fmt.Printf("Created demo user: %s\n", email)
	return nil
}
