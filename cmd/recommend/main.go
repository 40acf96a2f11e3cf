// Command recommend asks a running server for note recommendations and
// prints them.
//
//	go run ./cmd/recommend -lesson "light reactions of photosynthesis" -subject Biology
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"notehub-be/internal/dto"

	"github.com/fatih/color"
)

func main() {
	baseURL := flag.String("url", "http://localhost:3000/api", "API base URL")
	lesson := flag.String("lesson", "", "lesson topic (required)")
	subject := flag.String("subject", "", "exact subject filter")
	className := flag.String("class", "", "exact class filter")
	token := flag.String("token", os.Getenv("NOTEHUB_TOKEN"), "bearer token for school affinity")
	timeout := flag.Duration("timeout", 90*time.Second, "request timeout")
	flag.Parse()

	req := dto.RecommendNotesRequest{Lesson: *lesson}
	if *subject != "" {
		req.Subject = subject
	}
	if *className != "" {
		req.ClassName = className
	}

	color.Cyan("Asking for recommendations: %q", *lesson)

	status, body, err := send(*baseURL+"/recommendation/v1", *token, req, *timeout)
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}

	if status != http.StatusOK {
		var failure dto.RecommendationErrorResponse
		_ = json.Unmarshal(body, &failure)
		color.Red("Status %d: %s", status, failure.Error)
		os.Exit(1)
	}

	var res dto.RecommendNotesResponse
	if err := json.Unmarshal(body, &res); err != nil {
		color.Red("Unreadable response: %v", err)
		os.Exit(1)
	}

	if len(res.Recommendations) == 0 {
		color.Yellow("No matching notes. Try a broader lesson or drop the filters.")
		return
	}

	for i, n := range res.Recommendations {
		color.Green("%d. %s", i+1, n.Title)
		fmt.Printf("   %s / %s / %s  rating %.1f (%d)\n", n.Subject, n.ClassName, n.NoteType, n.AverageRating, n.RatingCount)
		if n.Owner != nil {
			fmt.Printf("   by %s\n", n.Owner.Username)
		}
		fmt.Printf("   id %s\n", n.Id)
	}
}

func send(url, token string, body interface{}, timeout time.Duration) (int, []byte, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return 0, nil, err
	}

	req, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return 0, nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	client := &http.Client{Timeout: timeout}
	resp, err := client.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	return resp.StatusCode, respBody, err
}
