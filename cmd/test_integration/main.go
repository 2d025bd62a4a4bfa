package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"time"
)

const baseURL = "http://localhost:8000"

// Smoke test for a running server: exercises the search endpoint with a
// grounded query, a vague one and a seed-movie one.
func main() {
	// Wait for server to start
	time.Sleep(2 * time.Second)

	fmt.Println("Starting smoke test...")

	queries := []struct {
		name  string
		query string
	}{
		{"director search", "Christopher Nolan"},
		{"vague mood query", "I'm bored"},
		{"seed movie search", "Inception"},
	}

	failed := false
	for i, q := range queries {
		fmt.Printf("%d. %s: %q\n", i+1, q.name, q.query)
		if !search(q.query) {
			fmt.Printf("FAILED: %s\n", q.name)
			failed = true
			continue
		}
		fmt.Printf("PASSED: %s\n", q.name)
	}

	if failed {
		os.Exit(1)
	}
	fmt.Println("All smoke tests passed.")
}

func search(query string) bool {
	endpoint := baseURL + "/movies/search/" + url.PathEscape(query)

	resp, err := http.Get(endpoint)
	if err != nil {
		fmt.Printf("Error sending request: %v\n", err)
		return false
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		fmt.Printf("Request failed with status %d: %s\n", resp.StatusCode, string(body))
		return false
	}

	var payload struct {
		Question string             `json:"question"`
		Response string             `json:"response"`
		Images   map[string]*string `json:"images"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		fmt.Printf("Could not decode response: %v\n", err)
		return false
	}
	if payload.Response == "" {
		fmt.Println("Empty response text")
		return false
	}

	fmt.Printf("Got %d chars of response, %d images\n", len(payload.Response), len(payload.Images))
	return true
}
