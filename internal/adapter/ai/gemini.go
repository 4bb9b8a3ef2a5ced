package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/arturoeanton/go-code-review-api/internal/port"
)

const reviewSystemPrompt = `Act as a senior software architect and application security (AppSec) specialist.
Your task is to perform a rigorous code review of the provided snippet.

Look strictly for:
1. Security vulnerabilities (hardcoded secrets, injection, OWASP Top 10).
2. Serious logic bugs or syntax errors.
3. Performance problems (infinite loops, unnecessary complexity).
4. Code smells and clean-code violations.

SCORING CRITERIA:
- 0-30: dangerous code (exposed credentials, critical flaws) or broken code.
- 31-60: works, but has strong code smells or bad performance.
- 61-80: good code whose readability could improve.
- 81-100: excellent, secure and performant code.

IMPORTANT: Respond STRICTLY with this JSON. Do not use markdown code blocks.
RESPONSE FORMAT:
{
"score": <integer between 0 and 100>,
"summary": "<one-sentence executive summary>",
"issues": [
"<short, direct strings describing each problem found>"
]
}`

const fixSystemPrompt = `Act as a senior software engineer. Rewrite the code below so that every
listed issue is resolved. Return ONLY the corrected code. Do not use markdown
formatting and do not add commentary.`

// GeminiConfig holds the configuration for the Gemini endpoint.
type GeminiConfig struct {
	BaseURL string        // e.g. https://generativelanguage.googleapis.com
	Model   string        // e.g. gemini-2.5-flash
	APIKey  string        // x-goog-api-key header value
	Timeout time.Duration // bound on each remote call; zero means no timeout
}

// GeminiProvider implements port.AIProvider using the Gemini REST API.
type GeminiProvider struct {
	cfg        GeminiConfig
	httpClient *http.Client
}

// NewGeminiProvider creates a Gemini-backed AI provider. All configuration
// is passed in explicitly; the provider keeps no global state.
func NewGeminiProvider(cfg GeminiConfig) *GeminiProvider {
	return &GeminiProvider{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}
}

// ModelName returns the model identifier.
func (g *GeminiProvider) ModelName() string {
	return g.cfg.Model
}

// Analyze reviews a code snippet and returns a scored result. Any failure
// (network error, non-JSON response, fenced garbage) is absorbed into a
// degraded result with score 0 so the caller can always persist a report.
func (g *GeminiProvider) Analyze(ctx context.Context, code string) port.ReviewResult {
	prompt := reviewSystemPrompt + "\n\nCODE:\n" + code

	text, err := g.generate(ctx, prompt)
	if err != nil {
		return fallbackResult(err)
	}

	text = strings.TrimSpace(text)
	if strings.HasPrefix(text, "```json") {
		text = text[7:]
	} else if strings.HasPrefix(text, "```") {
		text = text[3:]
	}
	if strings.HasSuffix(text, "```") {
		text = text[:len(text)-3]
	}

	var result port.ReviewResult
	if err := json.Unmarshal([]byte(strings.TrimSpace(text)), &result); err != nil {
		return fallbackResult(fmt.Errorf("decode review: %w", err))
	}

	if result.Score < 0 {
		result.Score = 0
	}
	if result.Score > 100 {
		result.Score = 100
	}
	if result.Issues == nil {
		result.Issues = []string{}
	}
	return result
}

// Fix asks the model for corrected code. Transport failures propagate to
// the caller; an analysis summary must always exist, a fix is best-effort.
func (g *GeminiProvider) Fix(ctx context.Context, code string, issues []string) (string, error) {
	issueList := "- No specific issues were listed; apply general best practices."
	if len(issues) > 0 {
		bullets := make([]string, len(issues))
		for i, issue := range issues {
			bullets[i] = "- " + issue
		}
		issueList = strings.Join(bullets, "\n")
	}

	prompt := fixSystemPrompt + "\n\nCODE:\n" + code + "\n\nISSUES TO FIX:\n" + issueList

	text, err := g.generate(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("gemini fix: %w", err)
	}

	return stripCodeFence(text), nil
}

// stripCodeFence removes exactly one leading fence line (with or without a
// language tag) and one trailing fence line from the model output.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	lines := strings.Split(s, "\n")
	lines = lines[1:]
	if n := len(lines); n > 0 && strings.TrimSpace(lines[n-1]) == "```" {
		lines = lines[:n-1]
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}

func fallbackResult(err error) port.ReviewResult {
	return port.ReviewResult{
		Score:   0,
		Summary: fmt.Sprintf("model error: %v", err),
		Issues:  []string{"the model response could not be obtained or parsed; check the configured model"},
	}
}

// generate sends a single-turn generateContent request and returns the
// first candidate's text.
func (g *GeminiProvider) generate(ctx context.Context, prompt string) (string, error) {
	payload := map[string]interface{}{
		"contents": []map[string]interface{}{
			{"parts": []map[string]string{{"text": prompt}}},
		},
	}

	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("marshal payload: %w", err)
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent", g.cfg.BaseURL, g.cfg.Model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payloadBytes))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", g.cfg.APIKey)

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("gemini API error (%d): %s", resp.StatusCode, string(body))
	}

	var decoded struct {
		Candidates []struct {
			Content struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"content"`
		} `json:"candidates"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", fmt.Errorf("gemini decode: %w", err)
	}

	if len(decoded.Candidates) == 0 || len(decoded.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("gemini: empty response")
	}
	return decoded.Candidates[0].Content.Parts[0].Text, nil
}
