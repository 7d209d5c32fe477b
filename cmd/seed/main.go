package main

import (
	"context"
	"log"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"craftmarket/internal/config"
	"craftmarket/internal/db"
	"craftmarket/internal/model"
	"craftmarket/internal/repository"
)

const seedPassword = "Passw0rd"

type seedUser struct {
	name  string
	email string
	role  model.Role
}

var seedUsers = []seedUser{
	{"Анна Иванова", "anna@example.com", model.RoleBuyer},
	{"Мария Петрова", "maria@example.com", model.RoleMaster},
	{"Admin", "admin@example.com", model.RoleAdmin},
}

type seedProduct struct {
	title       string
	description string
	price       string
	category    string
	ownerEmail  string
}

var seedProducts = []seedProduct{
	{"Ceramic mug", "Hand-thrown stoneware mug, 300ml", "1200.00", "ceramics", "maria@example.com"},
	{"Wool scarf", "Hand-knitted merino scarf", "2400.00", "knitwear", "maria@example.com"},
	{"Oak cutting board", "End-grain oak board, oiled", "3400.00", "woodwork", "maria@example.com"},
}

func main() {
	log.Println("Starting seed script...")

	cfg := config.Load()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	if err := gormDB.AutoMigrate(&model.User{}, &model.Product{}, &model.Order{}, &model.OrderItem{}); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	ctx := context.Background()
	users := repository.NewUserRepository(gormDB)
	products := repository.NewProductRepository(gormDB)

	hash, err := bcrypt.GenerateFromPassword([]byte(seedPassword), 12)
	if err != nil {
		log.Fatalf("Failed to hash seed password: %v", err)
	}

	owners := map[string]uuid.UUID{}
	for _, su := range seedUsers {
		existing, err := users.FindByEmail(ctx, su.email)
		if err == nil {
			owners[su.email] = existing.ID
			log.Printf("User %s already exists, skipping", su.email)
			continue
		}
		if err != gorm.ErrRecordNotFound {
			log.Fatalf("Failed to look up %s: %v", su.email, err)
		}

		user := &model.User{
			ID:           uuid.New(),
			Name:         su.name,
			Email:        su.email,
			PasswordHash: string(hash),
			Role:         su.role,
		}
		if err := users.Create(ctx, user); err != nil {
			log.Fatalf("Failed to create user %s: %v", su.email, err)
		}
		owners[su.email] = user.ID
		log.Printf("Created user %s (%s)", su.email, su.role)
	}

	existing, err := products.List(ctx, repository.ProductFilter{})
	if err != nil {
		log.Fatalf("Failed to list products: %v", err)
	}
	if len(existing) > 0 {
		log.Printf("Catalog already has %d products, skipping product seed", len(existing))
		return
	}

	for _, sp := range seedProducts {
		price, err := decimal.NewFromString(sp.price)
		if err != nil {
			log.Fatalf("Invalid seed price %q: %v", sp.price, err)
		}
		product := &model.Product{
			ID:          uuid.New(),
			Title:       sp.title,
			Description: sp.description,
			Price:       price,
			Category:    sp.category,
			OwnerID:     owners[sp.ownerEmail],
			IsActive:    true,
		}
		if err := products.Create(ctx, product); err != nil {
			log.Fatalf("Failed to create product %q: %v", sp.title, err)
		}
		log.Printf("Created product %q", sp.title)
	}

	log.Println("Seed completed")
}
