// Package insight turns recent activity into a natural-language
// analysis via an external text-generation service. The service is a
// black box: a pre-computed summary goes in, free text comes out, and
// every failure degrades to a fixed fallback message without touching
// any other state.
package insight

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"strings"
	"time"

	"github.com/sadopc/chronoflow/internal/track"
)

// Fixed user-visible fallbacks.
const (
	FallbackMissingKey = "API Key is missing. Please configure your API Key to use AI insights."
	FallbackFailure    = "Failed to generate insights. Please try again later."
	FallbackEmpty      = "No insights generated."
)

const defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"

// SummaryRow is one activity condensed for the prompt.
type SummaryRow struct {
	Categories      string `json:"categories"`
	DurationMinutes int    `json:"durationMinutes"`
	Date            string `json:"date"`
	Thoughts        string `json:"thoughts"`
}

// BuildSummary condenses the activities whose end time falls within
// the trailing 7 days of now.
func BuildSummary(activities []track.Activity, categories []track.Category, now time.Time) []SummaryRow {
	weekAgo := now.AddDate(0, 0, -7).UnixMilli()

	names := make(map[string]string, len(categories))
	for _, c := range categories {
		names[c.ID] = c.Name
	}

	var rows []SummaryRow
	for _, a := range activities {
		if a.EndTime == nil || *a.EndTime <= weekAgo {
			continue
		}

		joined := make([]string, 0, len(a.CategoryIDs))
		for _, id := range a.CategoryIDs {
			name, ok := names[id]
			if !ok {
				name = track.Unknown.Name
			}
			joined = append(joined, name)
		}

		thoughts := make([]string, 0, len(a.Thoughts))
		for _, th := range a.Thoughts {
			thoughts = append(thoughts, th.Text)
		}

		rows = append(rows, SummaryRow{
			Categories:      strings.Join(joined, " & "),
			DurationMinutes: int(math.Round(a.Duration(now).Minutes())),
			Date:            a.StartAt().Format("2006-01-02"),
			Thoughts:        strings.Join(thoughts, "; "),
		})
	}
	return rows
}

// Generator calls the generateContent endpoint of a Gemini-style API.
type Generator struct {
	apiKey  string
	model   string
	baseURL string
	client  *http.Client
}

func New(apiKey, model string) *Generator {
	return &Generator{
		apiKey:  apiKey,
		model:   model,
		baseURL: defaultBaseURL,
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

// Generate produces the insight text for the trailing week. It always
// returns displayable text: service failures map to the fixed
// fallbacks, never to an error the caller must branch on.
func (g *Generator) Generate(ctx context.Context, activities []track.Activity, categories []track.Category) string {
	if g.apiKey == "" {
		return FallbackMissingKey
	}

	rows := BuildSummary(activities, categories, time.Now())
	data, err := json.Marshal(rows)
	if err != nil {
		return FallbackFailure
	}

	prompt := fmt.Sprintf(`Analyze the following time tracking data for the past week:
%s

Please provide a concise analysis in markdown format:
1. A brief summary of how time was spent.
2. Any patterns noticed (e.g., specific days with high workload, multitasking).
3. One actionable suggestion for better time management.
4. If there are thoughts pinned to activities, summarize the user's mindset.

Keep the tone professional yet encouraging.`, data)

	text, err := g.generateContent(ctx, prompt)
	if err != nil {
		return FallbackFailure
	}
	if text == "" {
		return FallbackEmpty
	}
	return text
}

type generateRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

func (g *Generator) generateContent(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
	})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", g.baseURL, g.model, g.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("call insight service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("insight service returned %s", resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}
	var out generateResponse
	if err := json.Unmarshal(data, &out); err != nil {
		return "", fmt.Errorf("parse response: %w", err)
	}

	var sb strings.Builder
	for _, c := range out.Candidates {
		for _, p := range c.Content.Parts {
			sb.WriteString(p.Text)
		}
		break
	}
	return strings.TrimSpace(sb.String()), nil
}
