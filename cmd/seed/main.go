package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"os"

	"inkwell/internal/config"
	"inkwell/internal/db"
	"inkwell/internal/model"
	"inkwell/internal/repository"
	"inkwell/internal/service"
)

// SeedFile is the provisioning input. Users carry plaintext passwords here
// and are stored hashed; the API itself has no registration endpoint.
type SeedFile struct {
	Users []SeedUser `json:"users"`
	Posts []SeedPost `json:"posts"`
}

// SeedUser is one account to provision.
type SeedUser struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SeedPost is one sample post to insert.
type SeedPost struct {
	Title   string   `json:"title"`
	Content string   `json:"content"`
	Tags    []string `json:"tags"`
}

func main() {
	path := flag.String("file", "seed.json", "path to the seed file")
	flag.Parse()

	log.Println("Starting seed script...")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	if err := gormDB.AutoMigrate(&model.User{}, &model.Post{}); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	seed, err := readSeedFile(*path)
	if err != nil {
		log.Fatalf("Failed to read seed file: %v", err)
	}
	log.Printf("Loaded %d users and %d posts from %s", len(seed.Users), len(seed.Posts), *path)

	ctx := context.Background()
	userRepo := repository.NewUserRepository(gormDB)
	postRepo := repository.NewPostRepository(gormDB)

	created, skipped := 0, 0
	for _, u := range seed.Users {
		if u.Email == "" || u.Password == "" {
			log.Printf("Skipping user with missing email or password")
			skipped++
			continue
		}
		if _, err := userRepo.FindByEmail(ctx, u.Email); err == nil {
			log.Printf("Skipping existing user %s", u.Email)
			skipped++
			continue
		}
		hash, err := service.HashPassword(u.Password)
		if err != nil {
			log.Fatalf("Failed to hash password for %s: %v", u.Email, err)
		}
		if err := userRepo.Create(ctx, &model.User{Email: u.Email, PasswordHash: hash}); err != nil {
			log.Fatalf("Failed to create user %s: %v", u.Email, err)
		}
		created++
	}

	posts := 0
	for _, p := range seed.Posts {
		if p.Title == "" {
			log.Printf("Skipping post with empty title")
			skipped++
			continue
		}
		tags := p.Tags
		if tags == nil {
			tags = []string{}
		}
		if err := postRepo.Create(ctx, &model.Post{Title: p.Title, Content: p.Content, Tags: tags}); err != nil {
			log.Fatalf("Failed to create post %q: %v", p.Title, err)
		}
		posts++
	}

	log.Printf("Seed completed successfully!")
	log.Printf("  - Users created: %d", created)
	log.Printf("  - Posts created: %d", posts)
	if skipped > 0 {
		log.Printf("  - Entries skipped: %d", skipped)
	}
}

func readSeedFile(path string) (*SeedFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var seed SeedFile
	if err := json.Unmarshal(data, &seed); err != nil {
		return nil, err
	}
	return &seed, nil
}
