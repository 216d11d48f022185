package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/stylefinder/backend/internal/domain"
	"golang.org/x/time/rate"
)

// Client is the generative style advisor: it asks the Gemini API to
// determine the size and to generate search queries directly from the
// profile. It is strictly optional; the deterministic rule tables are the
// default and the fallback whenever this client errors or its output does
// not parse.
type Client struct {
	httpClient  *http.Client
	apiKey      string
	baseURL     string
	model       string
	rateLimiter *rate.Limiter
	debug       bool
}

// NewClient creates a new Gemini advisor client
func NewClient(apiKey, baseURL string) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		apiKey:      apiKey,
		baseURL:     baseURL,
		model:       "gemini-pro",
		rateLimiter: rate.NewLimiter(rate.Limit(1), 5),
	}
}

// SetDebug toggles request logging
func (c *Client) SetDebug(debug bool) {
	c.debug = debug
}

// sizeLinePattern matches a single advisor size line: department + token,
// e.g. "Mens XL", "Girls S (Size 6-8)".
var sizeLinePattern = regexp.MustCompile(`^(Boys|Girls|Mens|Womens)\s+(\S.*)$`)

// DetermineSize asks the advisor for a size label. Output that does not
// match the department-prefixed format is ErrUnparseableAdvice so the
// caller can fall back to the rule tables.
func (c *Client) DetermineSize(ctx context.Context, m domain.CanonicalMeasurement, d domain.Demographic) (domain.SizeLabel, error) {
	feet := int(m.HeightIn) / 12
	inches := int(m.HeightIn) % 12

	prompt := fmt.Sprintf(`You are a professional clothing size expert. Based on the following measurements and demographics, determine the most accurate clothing size using industry standards.

Person Details:
- Height: %d feet %d inches (%.0f total inches)
- Weight: %.0f pounds
- Age: %d years old
- Gender: %s

Provide ONLY the size in this exact format based on gender and age:
- For children under 18: "Boys XS", "Girls M", "Boys L", etc.
- For adults: "Mens S", "Womens M", "Mens XL", etc.

Respond with ONLY the size, nothing else.`,
		feet, inches, m.HeightIn, m.WeightLb, d.AgeYears, d.Gender)

	text, err := c.generate(ctx, prompt)
	if err != nil {
		return domain.SizeLabel{}, err
	}

	label, ok := parseSizeLabel(text)
	if !ok {
		if c.debug {
			log.Printf("[GEMINI] unparseable size response: %q", text)
		}
		return domain.SizeLabel{}, domain.ErrUnparseableAdvice
	}
	return label, nil
}

// GenerateQueries asks the advisor for product-search queries, one per
// line, capped at the spec fan-out bound. An empty usable set is
// ErrUnparseableAdvice.
func (c *Client) GenerateQueries(ctx context.Context, style domain.StylePreference, occasion domain.OccasionContext) ([]string, error) {
	prompt := fmt.Sprintf(`You are an expert fashion stylist and e-commerce search specialist. Generate 5-8 specific product search queries for clothing that would be perfect for this person and occasion.

Person Profile:
- Size: %s
- Budget: %s
- Preferred Brands: %s
- Style Preferences: %s
- Colors: %s

Occasion Details:
- Event: %s
- Season: %s
- Specific Needs: %s

One query per line, lowercase, no numbering or bullets. Each query names the department, a garment, and the size token. Respond with ONLY the search queries, nothing else.`,
		style.Size, style.Budget,
		joinOrAny(style.Brands), joinOrAny(style.Styles), joinOrAny(style.Colors),
		occasion.Occasion, occasion.Season, orNone(occasion.SpecificNeeds))

	text, err := c.generate(ctx, prompt)
	if err != nil {
		return nil, err
	}

	var queries []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		queries = append(queries, line)
		if len(queries) == domain.MaxQueryTerms {
			break
		}
	}
	if len(queries) == 0 {
		return nil, domain.ErrUnparseableAdvice
	}

	if c.debug {
		log.Printf("[GEMINI] generated %d queries", len(queries))
	}
	return queries, nil
}

// generateRequest and generateResponse follow the Gemini generateContent
// wire format.
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

// generate posts one prompt and returns the first candidate's text.
func (c *Client) generate(ctx context.Context, prompt string) (string, error) {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limiter error: %w", err)
	}

	payload, err := json.Marshal(generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
	})
	if err != nil {
		return "", fmt.Errorf("failed to encode request: %w", err)
	}

	reqURL := fmt.Sprintf("%s/models/%s:generateContent?key=%s", c.baseURL, c.model, c.apiKey)
	req, err := http.NewRequestWithContext(ctx, "POST", reqURL, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrAdvisorUnavailable, err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		if c.debug {
			log.Printf("[GEMINI] status %d: %s", resp.StatusCode, string(body))
		}
		return "", fmt.Errorf("%w: status %d", domain.ErrAdvisorUnavailable, resp.StatusCode)
	}

	var genResp generateResponse
	if err := json.Unmarshal(body, &genResp); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}
	if len(genResp.Candidates) == 0 || len(genResp.Candidates[0].Content.Parts) == 0 {
		return "", domain.ErrUnparseableAdvice
	}

	return strings.TrimSpace(genResp.Candidates[0].Content.Parts[0].Text), nil
}

func parseSizeLabel(text string) (domain.SizeLabel, bool) {
	// Advisors sometimes wrap the answer in quotes or extra lines; take the
	// first line that fits the format.
	for _, line := range strings.Split(text, "\n") {
		line = strings.Trim(strings.TrimSpace(line), `"'`)
		matches := sizeLinePattern.FindStringSubmatch(line)
		if matches == nil {
			continue
		}
		return domain.SizeLabel{
			Department: domain.Department(matches[1]),
			Token:      strings.TrimSpace(matches[2]),
		}, true
	}
	return domain.SizeLabel{}, false
}

func joinOrAny(values []string) string {
	if len(values) == 0 {
		return "any"
	}
	return strings.Join(values, ", ")
}

func orNone(s string) string {
	if strings.TrimSpace(s) == "" {
		return "none"
	}
	return s
}
