package main

import (
	"log"
	"strings"

	"edupilot/config"
	"edupilot/services"
	"edupilot/services/ai"
	"edupilot/services/extract"
	"edupilot/storage"
)

// reindex rebuilds the retrieval index from the processed content on disk.
// Useful after restoring a storage root or when index files were lost.
func main() {
	log.Printf("[INFO] Starting retrieval index rebuild")

	cfg := config.Load()

	store, err := storage.NewStore(cfg.StorageRoot)
	if err != nil {
		log.Fatalf("[ERROR] Failed to initialize storage: %v", err)
	}

	aiClient, err := ai.NewClient(cfg)
	if err != nil {
		log.Fatalf("[ERROR] Failed to initialize AI client: %v", err)
	}
	defer aiClient.Close()

	indexRepo := storage.NewFileIndexRepository(store)
	searchService := services.NewSearchService(indexRepo)
	contentService := services.NewContentService(store, aiClient, extract.NewAdapter(aiClient), searchService)

	infos, err := contentService.ListProcessedContent()
	if err != nil {
		log.Fatalf("[ERROR] Failed to list processed content: %v", err)
	}
	log.Printf("[INFO] Found %d processed documents", len(infos))

	indexed := 0
	for i, info := range infos {
		log.Printf("[INFO] Indexing document %d/%d: %s", i+1, len(infos), info.Path)

		text, err := store.ReadText(info.Path)
		if err != nil {
			log.Printf("[ERROR] Skipping unreadable document %s: %v", info.Path, err)
			continue
		}
		if strings.TrimSpace(text) == "" {
			log.Printf("[WARN] Skipping empty document %s", info.Path)
			continue
		}

		if err := searchService.IndexContent(info.Path, info.OriginalName, text); err != nil {
			log.Printf("[ERROR] Failed to index %s: %v", info.Path, err)
			continue
		}
		indexed++
	}

	log.Printf("[INFO] Index rebuild completed: %d of %d documents indexed", indexed, len(infos))
}
