package cmd

import (
	"fmt"
	"log"
	"time"

	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

// ledgerTables lists every table seed may clear, children first.
var ledgerTables = []string{
	"credit_card_installments",
	"expenses",
	"monthly_spending_limits",
	"establishments",
	"cards",
	"spending_categories",
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with sample data",
	Long:  `Seed the database with spending categories, cards, establishments and limits for development.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(".")
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		sqlDB, err := initDB(cfg.Database)
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}
		defer sqlDB.Close()

		db, err := openGorm(sqlDB)
		if err != nil {
			log.Fatalf("failed to init gorm: %v", err)
		}

		if err := db.Transaction(func(tx *gorm.DB) error {
			if clearData {
				for _, table := range ledgerTables {
					if err := tx.Exec(fmt.Sprintf("TRUNCATE TABLE %s RESTART IDENTITY CASCADE", table)).Error; err != nil {
						return fmt.Errorf("clear %s: %w", table, err)
					}
				}
				fmt.Println("Cleared existing ledger data")
			}
			return seed(tx, time.Now().UTC())
		}); err != nil {
			log.Fatalf("seed failed: %v", err)
		}

		fmt.Println("Ledger data seeded successfully")
	},
}

func seed(db *gorm.DB, now time.Time) error {
	categories := []struct {
		Name string
		Desc string
	}{
		{"groceries", "supermarkets and food shopping"},
		{"dining", "restaurants, cafes and delivery"},
		{"transport", "fuel, transit and rides"},
		{"entertainment", "streaming, events and games"},
		{"health", "pharmacy and medical care"},
		{"electronics", "devices and accessories"},
	}
	for _, c := range categories {
		var exists int
		if err := db.Raw("SELECT 1 FROM spending_categories WHERE name = ?", c.Name).Row().Scan(&exists); err == nil {
			continue
		}
		if err := db.Exec("INSERT INTO spending_categories (name, description, is_active, created_at, updated_at) VALUES (?, ?, true, now(), now())", c.Name, c.Desc).Error; err != nil {
			return fmt.Errorf("insert category %s: %w", c.Name, err)
		}
		fmt.Printf("Seeded spending category: %s\n", c.Name)
	}

	cards := []struct {
		Name       string
		LastFour   string
		Brand      string
		ClosingDay *int
	}{
		{"Everyday Visa", "4242", "visa", intPtr(10)},
		{"Travel Mastercard", "5454", "mastercard", intPtr(25)},
		{"Store Card", "1111", "private label", nil},
	}
	for _, c := range cards {
		var exists int
		if err := db.Raw("SELECT 1 FROM cards WHERE last_four_digits = ? AND name = ?", c.LastFour, c.Name).Row().Scan(&exists); err == nil {
			continue
		}
		if err := db.Exec("INSERT INTO cards (name, last_four_digits, brand, closing_day, created_at, updated_at) VALUES (?, ?, ?, ?, now(), now())", c.Name, c.LastFour, c.Brand, c.ClosingDay).Error; err != nil {
			return fmt.Errorf("insert card %s: %w", c.Name, err)
		}
		fmt.Printf("Seeded card: %s (*%s)\n", c.Name, c.LastFour)
	}

	establishments := []struct {
		Name     string
		Category string
	}{
		{"Green Market", "groceries"},
		{"Corner Bistro", "dining"},
		{"City Metro", "transport"},
		{"Gadget Hub", "electronics"},
		{"Night Cinema", "entertainment"},
	}
	for _, e := range establishments {
		var exists int
		if err := db.Raw("SELECT 1 FROM establishments WHERE name = ?", e.Name).Row().Scan(&exists); err == nil {
			continue
		}
		if err := db.Exec("INSERT INTO establishments (name, category, created_at, updated_at) VALUES (?, ?, now(), now())", e.Name, e.Category).Error; err != nil {
			return fmt.Errorf("insert establishment %s: %w", e.Name, err)
		}
		fmt.Printf("Seeded establishment: %s [%s]\n", e.Name, e.Category)
	}

	limits := map[string]string{
		"groceries":   "600.00",
		"dining":      "250.00",
		"electronics": "300.00",
	}
	for cat, amount := range limits {
		if err := db.Exec(`INSERT INTO monthly_spending_limits (category, month, year, amount, is_active, created_at, updated_at)
			VALUES (?, ?, ?, ?, true, now(), now())
			ON CONFLICT (category, month, year) DO NOTHING`, cat, int(now.Month()), now.Year(), amount).Error; err != nil {
			return fmt.Errorf("insert limit %s: %w", cat, err)
		}
	}
	fmt.Printf("Seeded spending limits for %04d-%02d\n", now.Year(), int(now.Month()))

	return nil
}

func intPtr(v int) *int {
	return &v
}
