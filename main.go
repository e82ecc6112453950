package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/example/hangbot/internal/bot"
	"github.com/example/hangbot/internal/database"
	"github.com/example/hangbot/internal/excel"
	"github.com/example/hangbot/internal/scheduler"
	"github.com/joho/godotenv"
)

func main() {
	importFile := flag.String("import", "", "import the word catalog from an Excel or CSV file and exit")
	flag.Parse()

	// Load environment variables from .env if present
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file loaded: %v", err)
	}

	db, err := database.Connect()
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if *importFile != "" {
		config := excel.DefaultImportConfig()
		config.FilePath = *importFile

		result, err := excel.ImportWords(context.Background(), database.NewStore(db), config)
		if err != nil {
			log.Fatalf("Import failed: %v", err)
		}
		log.Printf("Import finished: %d processed, %d created, %d categories created, %d skipped",
			result.TotalProcessed, result.Created, result.CategoriesCreated, result.Skipped)
		for _, importErr := range result.Errors {
			log.Printf("Import error: %s", importErr)
		}
		return
	}

	b, err := bot.New(db)
	if err != nil {
		log.Fatalf("Failed to create bot: %v", err)
	}

	s := scheduler.New(database.NewGameRepository(database.NewStore(db)), b)
	if os.Getenv("ENABLE_SCHEDULER") != "false" {
		s.Start()
		defer s.Stop()
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		sig := <-sigChan
		log.Printf("Received signal: %v", sig)
		b.Stop()
		cancel()
	}()

	log.Println("Bot started. Press Ctrl+C to stop.")
	if err := b.Start(ctx); err != nil && err != context.Canceled {
		log.Fatalf("Bot error: %v", err)
	}
	log.Println("Bot stopped")
}
