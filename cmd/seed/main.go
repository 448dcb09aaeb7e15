package main

import (
	"log"

	"github.com/recipe-notebook/backend/config"
	"github.com/recipe-notebook/backend/internal/database"
	"github.com/recipe-notebook/backend/internal/model"
	"github.com/recipe-notebook/backend/internal/service"
)

// Seeds a fresh installation with the default genre set and a couple of
// sample recipes. Safe to re-run: it only inserts into empty tables.
func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.New(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := database.RunMigrations(db, "migrations"); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	var genreCount int64
	if err := db.Model(&model.Genre{}).Count(&genreCount).Error; err != nil {
		log.Fatalf("Failed to count genres: %v", err)
	}
	if genreCount == 0 {
		for _, name := range service.DefaultGenreNames {
			genre := model.Genre{Name: name}
			if err := db.Create(&genre).Error; err != nil {
				log.Fatalf("Failed to seed genre %s: %v", name, err)
			}
			log.Printf("Seeded genre: %s", name)
		}
	} else {
		log.Printf("Genres already present, skipping (%d rows)", genreCount)
	}

	var recipeCount int64
	if err := db.Model(&model.Recipe{}).Count(&recipeCount).Error; err != nil {
		log.Fatalf("Failed to count recipes: %v", err)
	}
	if recipeCount > 0 {
		log.Printf("Recipes already present, skipping (%d rows)", recipeCount)
		return
	}

	samples := []model.Recipe{
		{
			Title:        "カルボナーラ",
			Description:  "濃厚なチーズと卵のソースが絡む定番パスタ",
			Ingredients:  "スパゲッティ 200g\nベーコン 100g\n卵 2個\nパルメザンチーズ 50g\n黒こしょう 適量",
			Instructions: "1. スパゲッティを茹でる\n2. ベーコンを炒める\n3. 卵とチーズを混ぜる\n4. 全てを和えて黒こしょうをふる",
			Genres:       model.JSONBStringArray{"メインディッシュ"},
			Memo:         "火を止めてから卵液を加えると固まらない",
		},
		{
			Title:        "アラビアータ",
			Description:  "唐辛子が効いたピリ辛トマトパスタ",
			Ingredients:  "ペンネ 200g\nトマト缶 1缶\nにんにく 2片\n唐辛子 2本\nオリーブオイル 大さじ2",
			Instructions: "1. にんにくと唐辛子をオイルで熱する\n2. トマト缶を加えて煮詰める\n3. 茹でたペンネとソースを和える",
			Genres:       model.JSONBStringArray{"メインディッシュ"},
			Memo:         "辛さは唐辛子の量で調整する",
		},
	}

	for _, recipe := range samples {
		recipe.SyncCoverImage()
		if err := db.Create(&recipe).Error; err != nil {
			log.Fatalf("Failed to seed recipe %s: %v", recipe.Title, err)
		}
		log.Printf("Seeded recipe: %s", recipe.Title)
	}

	log.Println("Seeding complete")
}
