package main

import (
	"fmt"
	"log"
	"net/http"

	"edupilot/config"
	"edupilot/handlers"
	"edupilot/services"
	"edupilot/services/ai"
	"edupilot/services/extract"
	"edupilot/services/grading"
	"edupilot/services/quizgen"
	"edupilot/storage"

	"github.com/gorilla/mux"
)

func main() {
	cfg := config.Load()

	store, err := storage.NewStore(cfg.StorageRoot)
	if err != nil {
		log.Fatalf("Failed to initialize storage: %v", err)
	}

	aiClient, err := ai.NewClient(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize AI client: %v", err)
	}
	defer aiClient.Close()

	quizRepo := storage.NewFileQuizRepository(store)
	assignmentRepo := storage.NewFileAssignmentRepository(store)
	gradeRepo := storage.NewFileGradeRepository(store)
	sessionRepo := storage.NewFileSessionRepository(store)
	indexRepo := storage.NewFileIndexRepository(store)

	searchService := services.NewSearchService(indexRepo)
	extractor := extract.NewAdapter(aiClient)
	contentService := services.NewContentService(store, aiClient, extractor, searchService)

	generator := quizgen.NewGenerator(aiClient)
	engine := grading.NewEngine(aiClient)

	quizService := services.NewQuizService(quizRepo, contentService, generator)
	teacherService := services.NewTeacherService(assignmentRepo, gradeRepo, generator, engine)
	chatService := services.NewChatService(sessionRepo, contentService, searchService, aiClient)
	flashcardService := services.NewFlashcardService(contentService, aiClient)

	router := mux.NewRouter()

	router.Use(corsMiddleware)
	router.Use(jsonMiddleware)

	router.PathPrefix("/").HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}).Methods("OPTIONS")

	api := router.PathPrefix("/api").Subrouter()
	handlers.NewContentHandler(contentService).RegisterRoutes(api)
	handlers.NewQuizHandler(quizService).RegisterRoutes(api)
	handlers.NewTeacherHandler(teacherService).RegisterRoutes(api)
	handlers.NewChatHandler(chatService).RegisterRoutes(api)
	handlers.NewSearchHandler(searchService).RegisterRoutes(api)
	handlers.NewFlashcardHandler(flashcardService).RegisterRoutes(api)

	router.HandleFunc("/health", healthCheckHandler).Methods("GET")

	addr := ":" + cfg.Port
	fmt.Printf("Server starting on port %s\n", cfg.Port)

	if err := http.ListenAndServe(addr, router); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS, PATCH")
		w.Header().Set("Access-Control-Allow-Headers", "*")
		w.Header().Set("Access-Control-Expose-Headers", "*")
		w.Header().Set("Access-Control-Allow-Credentials", "true")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func jsonMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		next.ServeHTTP(w, r)
	})
}

func healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "healthy"}`))
}
