package cmd

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with sample data",
	Long:  `Seed the database with sample data for development and testing purposes.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(".")
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		sqlDB, err := initDB(cfg.Database)
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}

		db, err := initGorm(sqlDB)
		if err != nil {
			log.Fatalf("failed to init gorm: %v", err)
		}

		hash, _ := bcrypt.GenerateFromPassword([]byte("pastibisa"), cfg.Security.BCryptCost)

		users := []struct {
			Name     string
			Username string
			Phone    string
			Email    string
		}{
			{"Administrator", "admin", "+6281234567890", "admin@example.com"},
			{"Test User", "testuser", "+6281234567891", "test@example.com"},
		}

		for _, u := range users {
			var exists int
			row := db.Raw("SELECT 1 FROM users WHERE username = ?", u.Username).Row()
			if err := row.Scan(&exists); err == nil {
				fmt.Printf("user %s already exists, skipping\n", u.Username)
				continue
			}

			if err := db.Exec(
				"INSERT INTO users (name, username, phone, email, password_hash, created_at, updated_at) VALUES (?, ?, ?, ?, ?, now(), now())",
				u.Name, u.Username, u.Phone, u.Email, string(hash),
			).Error; err != nil {
				log.Fatalf("failed to insert user %s: %v", u.Username, err)
			}
			fmt.Println("Seeded user:", u.Username)
		}

		divisions := []string{
			"Mobile Apps",
			"QA",
			"Full Stack",
			"Backend",
			"Frontend",
			"UI/UX Designer",
		}

		for _, name := range divisions {
			var exists int
			row := db.Raw("SELECT 1 FROM divisions WHERE name = ?", name).Row()
			if err := row.Scan(&exists); err != nil {
				if err := db.Exec("INSERT INTO divisions (name, created_at, updated_at) VALUES (?, now(), now())", name).Error; err != nil {
					log.Fatalf("failed to insert division %s: %v", name, err)
				}
				fmt.Printf("Seeded division: %s\n", name)
			}
		}

		employees := []struct {
			Name     string
			Phone    string
			Position string
			Division string
		}{
			{"John Doe", "+6281111111111", "Software Engineer", "Backend"},
			{"Jane Smith", "+6282222222222", "QA Engineer", "QA"},
			{"Bob Johnson", "+6283333333333", "Product Designer", "UI/UX Designer"},
		}

		for _, e := range employees {
			var exists int
			row := db.Raw("SELECT 1 FROM employees WHERE phone = ?", e.Phone).Row()
			if err := row.Scan(&exists); err == nil {
				fmt.Printf("employee %s already exists, skipping\n", e.Name)
				continue
			}

			var divisionID int64
			if err := db.Raw("SELECT id FROM divisions WHERE name = ?", e.Division).Row().Scan(&divisionID); err != nil {
				log.Fatalf("division not found for employee %s: %v", e.Name, err)
			}

			if err := db.Exec(
				"INSERT INTO employees (name, phone, position, division_id, created_at, updated_at) VALUES (?, ?, ?, ?, now(), now())",
				e.Name, e.Phone, e.Position, divisionID,
			).Error; err != nil {
				log.Fatalf("failed to insert employee %s: %v", e.Name, err)
			}
			fmt.Println("Seeded employee:", e.Name)
		}

		fmt.Println("Seeding completed")
	},
}
