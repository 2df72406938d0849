// Package generative fetches catalog listings from an OpenAI-style
// responses endpoint.
package generative

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/caoslabs/caos/internal/catalog"
	"github.com/caoslabs/caos/internal/platform/id"
)

const defaultResponsesURL = "https://api.openai.com/v1/responses"

// Config configures the responses endpoint and HTTP behavior.
type Config struct {
	ResponsesURL string
	APIKey       string
	Model        string
	HTTPClient   *http.Client
	IDGenerator  func() (string, error)
}

// Provider generates category-relevant listings with a language model so the
// catalog feels alive without a real inventory behind it.
type Provider struct {
	cfg Config
}

// New builds a generative catalog provider.
func New(cfg Config) *Provider {
	if strings.TrimSpace(cfg.ResponsesURL) == "" {
		cfg.ResponsesURL = defaultResponsesURL
	}
	if strings.TrimSpace(cfg.Model) == "" {
		cfg.Model = "gpt-4o-mini"
	}
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = &http.Client{Timeout: 30 * time.Second}
	}
	if cfg.IDGenerator == nil {
		cfg.IDGenerator = id.NewID
	}
	return &Provider{cfg: cfg}
}

func prompt(category string) string {
	if strings.TrimSpace(category) == "" || category == catalog.CategoryAll {
		category = "all"
	}
	return fmt.Sprintf(`Generate a JSON array of %d cultural listings for a web app called CAOS (Cultural Artistic Organization System).
The category filter is currently: %s.

Include a mix of:
- Events (concerts, exhibitions, plays)
- Spaces (studios, galleries, theaters)
- Artists (painters, musicians, performers offering services)
- Experiences (workshops, tours)

Each element has fields: id, type (one of EVENT, SPACE, ARTIST, EXPERIENCE), title, subtitle, description, imageUrl, price, rating (number), reviews (integer), date, coordinates ({lat, lng} floats between 20 and 80 for a relative mock map), tags (array of strings).
Make titles and descriptions sound artistic and culturally relevant to a vibrant city like São Paulo or Berlin.
Respond with only the JSON array, no prose.`, catalog.FetchSize, category)
}

type wireListing struct {
	ID          string   `json:"id"`
	Type        string   `json:"type"`
	Title       string   `json:"title"`
	Subtitle    string   `json:"subtitle"`
	Description string   `json:"description"`
	Price       string   `json:"price"`
	Rating      float64  `json:"rating"`
	Reviews     int      `json:"reviews"`
	Date        string   `json:"date"`
	Coordinates *struct {
		Lat float64 `json:"lat"`
		Lng float64 `json:"lng"`
	} `json:"coordinates"`
	Tags []string `json:"tags"`
}

// Fetch asks the model for catalog.FetchSize listings in the category.
func (p *Provider) Fetch(ctx context.Context, category string) ([]catalog.Listing, error) {
	apiKey := strings.TrimSpace(p.cfg.APIKey)
	if apiKey == "" {
		return nil, fmt.Errorf("api key is required")
	}

	requestBody, err := json.Marshal(map[string]any{
		"model": p.cfg.Model,
		"input": prompt(category),
	})
	if err != nil {
		return nil, fmt.Errorf("marshal content request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.cfg.ResponsesURL, bytes.NewReader(requestBody))
	if err != nil {
		return nil, fmt.Errorf("build content request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	// Credential material is sent only as an Authorization header and is
	// never echoed in errors or response payloads.
	req.Header.Set("Authorization", "Bearer "+apiKey)

	res, err := p.cfg.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("content request failed: %w", err)
	}
	defer res.Body.Close()
	if res.StatusCode < 200 || res.StatusCode >= 300 {
		body, err := io.ReadAll(io.LimitReader(res.Body, 4096))
		if err != nil {
			return nil, fmt.Errorf("read content error body: %w", err)
		}
		return nil, fmt.Errorf("content request status %d: %s", res.StatusCode, strings.TrimSpace(string(body)))
	}

	var payload struct {
		OutputText string `json:"output_text"`
		Output     []struct {
			Content []struct {
				Type string `json:"type"`
				Text string `json:"text"`
			} `json:"content"`
		} `json:"output"`
	}
	if err := json.NewDecoder(res.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode content response: %w", err)
	}
	outputText := strings.TrimSpace(payload.OutputText)
	if outputText == "" {
		for _, item := range payload.Output {
			for _, content := range item.Content {
				if strings.TrimSpace(content.Text) != "" {
					outputText = strings.TrimSpace(content.Text)
					break
				}
			}
			if outputText != "" {
				break
			}
		}
	}
	if outputText == "" {
		return nil, fmt.Errorf("content response missing output text")
	}

	return p.parseListings(outputText)
}

// parseListings decodes the model output and normalizes every item: ids are
// filled when missing, image URLs are rewritten to a deterministic source,
// and items with unusable kinds are skipped rather than failing the batch.
func (p *Provider) parseListings(outputText string) ([]catalog.Listing, error) {
	outputText = trimCodeFence(outputText)

	var wire []wireListing
	if err := json.Unmarshal([]byte(outputText), &wire); err != nil {
		return nil, fmt.Errorf("decode generated listings: %w", err)
	}

	listings := make([]catalog.Listing, 0, len(wire))
	for _, item := range wire {
		kind, err := catalog.ParseKind(item.Type)
		if err != nil {
			continue
		}
		listingID := strings.TrimSpace(item.ID)
		if listingID == "" {
			listingID, err = p.cfg.IDGenerator()
			if err != nil {
				return nil, fmt.Errorf("generate listing id: %w", err)
			}
		}
		listing := catalog.Listing{
			ID:          listingID,
			Kind:        kind,
			Title:       strings.TrimSpace(item.Title),
			Subtitle:    strings.TrimSpace(item.Subtitle),
			Description: strings.TrimSpace(item.Description),
			ImageURL:    fmt.Sprintf("https://picsum.photos/seed/%s/600/400", listingID),
			Price:       strings.TrimSpace(item.Price),
			Rating:      item.Rating,
			Reviews:     item.Reviews,
			Date:        strings.TrimSpace(item.Date),
			Tags:        item.Tags,
		}
		if item.Coordinates != nil {
			listing.Coordinates = &catalog.Coordinates{
				Lat: clamp(item.Coordinates.Lat, 0, 100),
				Lng: clamp(item.Coordinates.Lng, 0, 100),
			}
		}
		listings = append(listings, listing)
	}
	if len(listings) == 0 {
		return nil, fmt.Errorf("generated output contained no usable listings")
	}
	return listings, nil
}

func trimCodeFence(text string) string {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "```") {
		return text
	}
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(strings.TrimSpace(text), "```")
	return strings.TrimSpace(text)
}

func clamp(value, low, high float64) float64 {
	if value < low {
		return low
	}
	if value > high {
		return high
	}
	return value
}
