// Command sentence-import bulk-loads source sentences from a CSV corpus
// into the sentences table.
package main

import (
	"flag"
	"log"
	"os"
	"path/filepath"
	"strings"

	"tokples-api/config"
	"tokples-api/services"

	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	config.InitDB()

	var (
		filePath string
		batch    string
	)

	flag.StringVar(&filePath, "file", "", "path to the CSV corpus (header: source_text[,difficulty][,priority_score][,target_redundancy])")
	flag.StringVar(&batch, "batch", "", "import batch label stored on each sentence (defaults to file name)")
	flag.Parse()

	if strings.TrimSpace(filePath) == "" {
		log.Fatal("-file is required")
	}
	if batch == "" {
		batch = filepath.Base(filePath)
	}

	f, err := os.Open(filePath)
	if err != nil {
		log.Fatalf("cannot open corpus: %v", err)
	}
	defer f.Close()

	svc := services.NewSentenceImportService(config.DB)
	summary, err := svc.ImportCSV(f, batch)
	if err != nil {
		log.Fatalf("import failed: %v", err)
	}

	log.Printf("imported %d sentences, skipped %d", summary.Imported, summary.Skipped)
	for _, msg := range summary.Errors {
		log.Printf("  %s", msg)
	}
}
