package advisor

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"pesaswift/utils"
)

const defaultBaseURL = "https://generativelanguage.googleapis.com"

const model = "gemini-2.5-flash"

// Fallbacks returned whenever the upstream call fails. The workflow must be
// able to show a generic decline or offline message instead of an error.
const (
	adviceUnavailable         = "Our AI advisor is currently offline. Please try again later."
	eligibilityFallbackReason = "System maintenance."
)

type Client struct {
	apiKey  string
	baseURL string
	cl      *http.Client
}

func NewClient(apiKey, baseURL string) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		apiKey:  apiKey,
		baseURL: baseURL,
		cl:      &http.Client{Timeout: 20 * time.Second},
	}
}

// EligibilityResult is the advisory verdict for a requested loan.
type EligibilityResult struct {
	Eligible          bool   `json:"eligible"`
	Reasoning         string `json:"reasoning"`
	RecommendedAmount int    `json:"recommendedAmount,omitempty"`
}

type generateRequest struct {
	Contents         []content         `json:"contents"`
	GenerationConfig *generationConfig `json:"generationConfig,omitempty"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generationConfig struct {
	ResponseMimeType string `json:"responseMimeType,omitempty"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

func (c *Client) generate(prompt string, jsonResponse bool) (string, error) {
	reqBody := generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
	}
	if jsonResponse {
		reqBody.GenerationConfig = &generationConfig{ResponseMimeType: "application/json"}
	}
	b, _ := json.Marshal(reqBody)

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s", c.baseURL, model, c.apiKey)
	req, err := http.NewRequest("POST", url, bytes.NewBuffer(b))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.cl.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("gemini api status %d: %s", resp.StatusCode, string(body))
	}

	var gr generateResponse
	if err := json.Unmarshal(body, &gr); err != nil {
		return "", err
	}
	if len(gr.Candidates) == 0 || len(gr.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("gemini api returned no candidates")
	}
	return gr.Candidates[0].Content.Parts[0].Text, nil
}

// CheckEligibility asks the advisor for a verdict on a requested loan.
// Transport or decode failures never propagate: the caller always gets a
// deterministic "not eligible" result it can render as a decline.
func (c *Client) CheckEligibility(amount, termDays, monthlyIncome int) EligibilityResult {
	prompt := fmt.Sprintf(`Analyze loan eligibility for a user in Kenya.
Requested Amount: KES %d
Term: %d days
Monthly Income: KES %d

Rules:
1. Loan should not exceed 30%% of income.
2. If term is less than 14 days, risk is higher.

Return JSON with:
- eligible (boolean)
- reasoning (string, max 20 words)
- recommendedAmount (number, optional, if rejected)`, amount, termDays, monthlyIncome)

	text, err := c.generate(prompt, true)
	if err != nil {
		utils.LogError(err, "advisor eligibility")
		return EligibilityResult{Eligible: false, Reasoning: eligibilityFallbackReason}
	}
	var result EligibilityResult
	if err := json.Unmarshal([]byte(text), &result); err != nil {
		utils.LogError(err, "advisor eligibility decode")
		return EligibilityResult{Eligible: false, Reasoning: eligibilityFallbackReason}
	}
	return result
}

// GetFinancialAdvice returns short free-text credit tips for the dashboard.
func (c *Client) GetFinancialAdvice(income, expenses, goal string) string {
	prompt := fmt.Sprintf(`Act as a financial advisor for a Kenyan user.
Context:
- Monthly Income: KES %s
- Monthly Expenses: KES %s
- Goal: %s

Provide 3 brief, actionable tips (bullet points) to help them improve their creditworthiness and achieve their goal.
Keep the tone encouraging and professional.
Limit to 150 words total.`, income, expenses, goal)

	text, err := c.generate(prompt, false)
	if err != nil {
		utils.LogError(err, "advisor advice")
		return adviceUnavailable
	}
	if text == "" {
		return adviceUnavailable
	}
	return text
}
