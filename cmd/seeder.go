package cmd

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"
)

var clearData bool

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with sample data",
	Long:  `Seed the database with sample categories and cards for development and testing purposes.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(".")
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		db, err := initDB(cfg.Database)
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}
		defer db.Close()

		if clearData {
			if _, err := db.Exec("DELETE FROM cards"); err != nil {
				log.Fatalf("failed to clear cards: %v", err)
			}
			if _, err := db.Exec("DELETE FROM categories"); err != nil {
				log.Fatalf("failed to clear categories: %v", err)
			}
			fmt.Println("Cleared existing categories and cards")
		}

		categories := []struct {
			Name   string
			Desc   string
			UserID int64
		}{
			{"Math", "arithmetic and algebra decks", 1},
			{"Science", "physics, chemistry, biology decks", 1},
			{"History", "world history decks", 2},
			{"Languages", "vocabulary decks", 2},
		}

		for _, c := range categories {
			var exists int
			row := db.QueryRow("SELECT 1 FROM categories WHERE name = $1 AND deleted_at IS NULL", c.Name)
			if err := row.Scan(&exists); err == nil {
				continue
			}

			if _, err := db.Exec(
				"INSERT INTO categories (name, description, user_id, created_at, updated_at) VALUES ($1, $2, $3, now(), now())",
				c.Name, c.Desc, c.UserID,
			); err != nil {
				log.Fatalf("failed to insert category %s: %v", c.Name, err)
			}
			fmt.Printf("Seeded category: %s\n", c.Name)
		}

		// give one category a card so the delete guard is exercisable locally
		var mathID int64
		if err := db.QueryRow("SELECT id FROM categories WHERE name = $1 AND deleted_at IS NULL", "Math").Scan(&mathID); err != nil {
			log.Fatalf("failed to lookup Math category: %v", err)
		}

		var cardExists int
		if err := db.QueryRow("SELECT 1 FROM cards WHERE category_id = $1", mathID).Scan(&cardExists); err != nil {
			if _, err := db.Exec("INSERT INTO cards (category_id) VALUES ($1)", mathID); err != nil {
				log.Fatalf("failed to insert card: %v", err)
			}
			fmt.Println("Seeded card for Math category")
		}

		fmt.Println("Categories seeded successfully")
	},
}

func init() {
	seedCmd.Flags().BoolVar(&clearData, "clear", false, "Clear existing data before seeding")
}
