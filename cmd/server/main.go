package main

import (
	"context"
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/KaanSezen1923/MovieRag/internal/server"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment as-is")
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8000"
	}

	srv := server.NewServer()
	defer srv.Close(context.Background())

	r := srv.SetupRouter()

	log.Printf("Starting MovieRag on port %s", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatal(err)
	}
}
