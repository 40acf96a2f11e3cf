// Package recommend holds the transport-free pieces of note recommendation:
// candidate merging, prompt rendering, parsing the model's ranking and
// restoring that ranking over hydrated records.
package recommend

import (
	"fmt"
	"strconv"
	"strings"

	"notehub-be/pkg/llm"
)

// MaxRecommendations is how many ids the model is asked to return.
const MaxRecommendations = 3

const candidateSeparator = "\n\n---\n\n"

// Query is what the caller asked for.
type Query struct {
	Lesson    string
	Subject   string
	ClassName string
}

// Candidate is the slice of a note the model gets to see.
type Candidate struct {
	ID          string
	Title       string
	Description string
	Subject     string
	ClassName   string
	NoteType    string
	RatingSum   int
	RatingCount int
}

const systemInstruction = `You are an AI study assistant that recommends the best notes for students.
Analyze the provided notes and recommend the TOP 3 most relevant notes for the given lesson topic.
Consider:
1. Relevance to the lesson topic
2. Note ratings and popularity
3. Note type (prefer study guides, lecture notes, and exam materials for learning)
4. Description quality and detail

Return ONLY a JSON array of exactly 3 note IDs in order of recommendation (best first).
Format: ["id1", "id2", "id3"]`

// FormatAverage renders rating_sum/rating_count with one decimal, or "0"
// for unrated notes.
func FormatAverage(ratingSum, ratingCount int) string {
	if ratingCount <= 0 {
		return "0"
	}
	return strconv.FormatFloat(float64(ratingSum)/float64(ratingCount), 'f', 1, 64)
}

// RenderCandidate produces the fixed-format block for one note.
func RenderCandidate(c Candidate) string {
	description := c.Description
	if strings.TrimSpace(description) == "" {
		description = "No description"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "ID: %s\n", c.ID)
	fmt.Fprintf(&b, "Title: %s\n", c.Title)
	fmt.Fprintf(&b, "Description: %s\n", description)
	fmt.Fprintf(&b, "Subject: %s\n", c.Subject)
	fmt.Fprintf(&b, "Class: %s\n", c.ClassName)
	fmt.Fprintf(&b, "Type: %s\n", c.NoteType)
	fmt.Fprintf(&b, "Rating: %s/5 (%d ratings)", FormatAverage(c.RatingSum, c.RatingCount), c.RatingCount)
	return b.String()
}

// RenderCandidates joins every block with the fixed separator.
func RenderCandidates(candidates []Candidate) string {
	blocks := make([]string, len(candidates))
	for i, c := range candidates {
		blocks[i] = RenderCandidate(c)
	}
	return strings.Join(blocks, candidateSeparator)
}

// BuildMessages returns the system instruction and the user turn for a ranking call.
func BuildMessages(q Query, candidates []Candidate) []llm.Message {
	var user strings.Builder
	fmt.Fprintf(&user, "Lesson topic: \"%s\"\n", q.Lesson)
	if q.Subject != "" {
		fmt.Fprintf(&user, "Subject: %s\n", q.Subject)
	}
	if q.ClassName != "" {
		fmt.Fprintf(&user, "Class: %s\n", q.ClassName)
	}
	user.WriteString("\nAvailable notes:\n")
	user.WriteString(RenderCandidates(candidates))
	user.WriteString("\n\nRecommend the top 3 notes for this lesson.")

	return []llm.Message{
		{Role: llm.RoleSystem, Content: systemInstruction},
		{Role: llm.RoleUser, Content: user.String()},
	}
}
