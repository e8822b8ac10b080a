// Command import_items migrates the legacy JSON item dump into the items
// table. The site originally shipped the whole catalog as a static JSON file;
// the database is now the source of truth, and this tool is how a fresh dump
// gets loaded (idempotent: rows are upserted by id).
package main

import (
	"encoding/json"
	"flag"
	"log"
	"os"
	"strings"

	"github.com/beherw/FFXIV-Market-sub004/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type dumpItem struct {
	ID        uint   `json:"id"`
	Name      string `json:"name"`
	NameEn    string `json:"name_en"`
	Category  string `json:"category"`
	ItemLevel int    `json:"item_level"`
}

func main() {
	path := flag.String("file", "items.json", "path to the JSON item dump")
	dry := flag.Bool("dry-run", false, "parse and report without writing to DB")
	flag.Parse()

	data, err := os.ReadFile(*path)
	if err != nil {
		log.Fatalf("read dump: %v", err)
	}
	var dump []dumpItem
	if err := json.Unmarshal(data, &dump); err != nil {
		log.Fatalf("parse dump: %v", err)
	}

	valid := make([]models.Item, 0, len(dump))
	skipped := 0
	for _, d := range dump {
		name := strings.TrimSpace(d.Name)
		if d.ID == 0 || name == "" {
			skipped++
			continue
		}
		valid = append(valid, models.Item{
			ID:        d.ID,
			Name:      name,
			NameEn:    strings.TrimSpace(d.NameEn),
			Category:  d.Category,
			ItemLevel: d.ItemLevel,
		})
	}
	log.Printf("dump contains %d items (%d skipped)", len(valid), skipped)
	if *dry {
		return
	}

	dsn := os.Getenv("DB_DSN")
	if dsn == "" {
		log.Fatal("DB_DSN not set in environment")
	}
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(&models.Item{}); err != nil {
		log.Printf("migration warning (items): %v", err)
	}

	// upsert in batches; dumps run to tens of thousands of rows
	const batch = 500
	for i := 0; i < len(valid); i += batch {
		end := i + batch
		if end > len(valid) {
			end = len(valid)
		}
		chunk := valid[i:end]
		if err := db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"name", "name_en", "category", "item_level"}),
		}).Create(&chunk).Error; err != nil {
			log.Fatalf("upsert batch %d-%d: %v", i, end, err)
		}
	}
	log.Printf("imported %d items", len(valid))
}
