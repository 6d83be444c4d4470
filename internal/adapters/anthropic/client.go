// Package anthropic adapts the Anthropic Messages API to the AI operations
// the service needs. One API call per operation, no retries: callers see the
// provider's failure as a domain.UpstreamError and decide what to do.
package anthropic

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	sdk "github.com/liushuangls/go-anthropic/v2"

	"hotelia/internal/adapters/observability"
	"hotelia/internal/domain"
)

const DefaultModel = "claude-sonnet-4-20250514"

// languageNames maps the dashboard's language codes to the names used in
// prompts. Unknown codes pass through verbatim.
var languageNames = map[string]string{
	"en": "English",
	"th": "Thai",
	"id": "Indonesian",
	"vi": "Vietnamese",
	"ja": "Japanese",
	"zh": "Chinese (Simplified)",
	"ko": "Korean",
	"ms": "Malay",
}

func languageName(code string) string {
	if name, ok := languageNames[code]; ok {
		return name
	}
	return code
}

type Client struct {
	ac    *sdk.Client
	model sdk.Model
}

// New builds the adapter. Extra options are for tests (base URL override).
func New(apiKey, model string, opts ...sdk.ClientOption) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("anthropic: API key: %w", domain.ErrNotConfigured)
	}
	if model == "" {
		model = DefaultModel
	}
	return &Client{ac: sdk.NewClient(apiKey, opts...), model: sdk.Model(model)}, nil
}

const sentimentPrompt = `IMPORTANT RULES FOR TOPIC EXTRACTION:
1. ONLY extract topics that are EXPLICITLY mentioned in the review text
2. Do NOT infer or assume topics that aren't directly stated
3. If the review says 'bad staff' - extract 'staff'. If it says 'nice room' - extract 'room'
4. Do NOT add common hotel topics (pool, breakfast, parking) unless they are actually written in the review
5. Return an empty array [] if no clear topics are mentioned
6. Maximum 5 topics per review
7. Use simple, lowercase single words: 'staff', 'room', 'location', 'breakfast', 'noise', 'cleanliness', 'service', 'food', 'bed', 'bathroom', 'wifi', 'parking', 'view', 'price', 'value'

Examples:
- Review: 'Bad staff' → topics: ['staff']
- Review: 'Great location, quiet rooms' → topics: ['location', 'room', 'noise']
- Review: 'Nice hotel' → topics: [] (too vague, no specific topic)
- Review: 'The breakfast was amazing and staff were friendly' → topics: ['breakfast', 'staff']

DO NOT make up topics. Only extract what is explicitly written.

Analyze this hotel review%s:

Review:
"%s"

Respond in JSON format only:
{
  "sentiment": "positive|neutral|negative",
  "topics": ["topic1", "topic2"],
  "language": "code (e.g. en, th)"
}`

func (c *Client) AnalyzeSentiment(ctx context.Context, text string, rating float64) (domain.SentimentResult, error) {
	ratingNote := ""
	if rating > 0 {
		ratingNote = fmt.Sprintf(" (Guest rating: %g/5 stars)", rating)
	}
	out, err := c.complete(ctx, "analyze_sentiment", 500, "", fmt.Sprintf(sentimentPrompt, ratingNote, text))
	if err != nil {
		return domain.SentimentResult{}, err
	}

	raw, ok := extractJSON(out)
	if !ok {
		return domain.SentimentResult{}, &domain.UpstreamError{Service: "anthropic", Message: "no JSON object in model output"}
	}
	var payload struct {
		Sentiment string   `json:"sentiment"`
		Topics    []string `json:"topics"`
		Language  string   `json:"language"`
	}
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		return domain.SentimentResult{}, &domain.UpstreamError{Service: "anthropic", Message: "malformed analysis JSON: " + err.Error()}
	}

	return domain.SentimentResult{
		Sentiment: parseSentiment(payload.Sentiment),
		Topics:    normalizeTopics(payload.Topics),
		Language:  strings.ToLower(strings.TrimSpace(payload.Language)),
	}, nil
}

// parseSentiment coerces whatever the model wrote to a known label,
// defaulting to neutral.
func parseSentiment(s string) domain.Sentiment {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "positive":
		return domain.SentimentPositive
	case "negative":
		return domain.SentimentNegative
	}
	return domain.SentimentNeutral
}

// normalizeTopics lowercases, trims, dedupes preserving order, caps at 5.
func normalizeTopics(in []string) []string {
	seen := map[string]bool{}
	var out []string
	for _, t := range in {
		t = strings.ToLower(strings.TrimSpace(t))
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
		if len(out) == 5 {
			break
		}
	}
	return out
}

const replySystemPrompt = `You are an expert hotel manager writing responses to guest reviews. Your goal is to be warm, professional, and solution-oriented.

Tone Guidelines:
- Be warm, professional, and hospitable at all times. Avoid sounding corporate or stiff.
- Address specific points mentioned in the review.
- Start by thanking the guest for their feedback.
- Format properly with paragraphs for readability.
- Be concise (80-150 words).

Handling Negative Feedback:
- Express genuine concern without being overly dramatic or apologetic.
- Avoid phrases like 'troubles me greatly', 'deeply sorry', or 'sincerely apologize' for minor complaints.
- Instead use phrases like: 'Thank you for your feedback', 'We appreciate you bringing this to our attention', 'We'd love to hear more about your experience'.
- Focus on inviting dialogue and offering to make things right.
- For staff complaints specifically: Acknowledge the feedback, mention you'll review with the team, and invite them to share more details.
- Never be defensive or make excuses.

Closing:
- Sign off warmly but not excessively (e.g., "Warm regards", "Kind regards").
- Invite them to reach out directly if further discussion is needed.

Context:
Hotel Name: %s
Brand Voice: %s
Response Language: %s
%s`

func (c *Client) GenerateReply(ctx context.Context, req domain.ReplyRequest) (string, error) {
	hotelName := req.HotelName
	if hotelName == "" {
		hotelName = "our hotel"
	}
	brandVoice := req.BrandVoice
	if brandVoice == "" {
		brandVoice = "professional and friendly"
	}
	lang := req.ReplyLanguage
	if lang == "" {
		lang = "en"
	}

	langLine := "English"
	langWarning := ""
	if lang != "en" {
		langLine = languageName(lang)
		langWarning = fmt.Sprintf("\nIMPORTANT: Write the entire response in %s. Do not include any English.", languageName(lang))
	}
	system := fmt.Sprintf(replySystemPrompt, hotelName, brandVoice, langLine, langWarning)

	var b strings.Builder
	fmt.Fprintf(&b, "Write a response to this %s review:\n\n", req.Platform)
	fmt.Fprintf(&b, "Reviewer: %s\n", req.ReviewerName)
	fmt.Fprintf(&b, "Rating: %g/5 stars\n", req.Rating)
	if req.Sentiment != nil {
		fmt.Fprintf(&b, "Sentiment: %s\n", *req.Sentiment)
	}
	if len(req.Topics) > 0 {
		fmt.Fprintf(&b, "Key topics: %s\n", strings.Join(req.Topics, ", "))
	}
	fmt.Fprintf(&b, "\nReview:\n%q\n\nWrite a personalized response that addresses their specific feedback.", req.ReviewText)

	return c.complete(ctx, "generate_reply", 1024, system, b.String())
}

func (c *Client) Translate(ctx context.Context, text, sourceLang, targetLang string) (string, error) {
	if targetLang == "" {
		targetLang = "en"
	}
	source := "the source language"
	if sourceLang != "" {
		source = languageName(sourceLang)
	}
	prompt := fmt.Sprintf(`Translate the following text from %s to %s.
Only provide the translation, no explanations or notes.

Text to translate:
%q`, source, languageName(targetLang), text)

	return c.complete(ctx, "translate", 1000, "", prompt)
}

// complete performs one Messages call and returns the first text block.
func (c *Client) complete(ctx context.Context, op string, maxTokens int, system, prompt string) (string, error) {
	req := sdk.MessagesRequest{
		Model:     c.model,
		MaxTokens: maxTokens,
		Messages: []sdk.Message{
			{Role: sdk.RoleUser, Content: []sdk.MessageContent{
				{Type: "text", Text: &prompt},
			}},
		},
	}
	if system != "" {
		req.System = system
	}

	start := time.Now()
	resp, err := c.ac.CreateMessages(ctx, req)
	if err != nil {
		mapped := mapErr(err)
		observability.ObserveProvider("anthropic", op, upstreamStatus(mapped), time.Since(start))
		return "", mapped
	}
	observability.ObserveProvider("anthropic", op, 200, time.Since(start))

	for _, block := range resp.Content {
		if block.Type == "text" && block.Text != nil {
			return strings.TrimSpace(*block.Text), nil
		}
	}
	return "", &domain.UpstreamError{Service: "anthropic", Message: "completion has no text content"}
}

func upstreamStatus(err error) int {
	var ue *domain.UpstreamError
	if errors.As(err, &ue) && ue.Status > 0 {
		return ue.Status
	}
	return 0
}

// mapErr converts SDK failures to UpstreamError. The SDK returns an APIError
// when the provider's error body parses (which loses the HTTP status, so we
// recover it from the error type) and a RequestError otherwise.
func mapErr(err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	var reqErr *sdk.RequestError
	if errors.As(err, &reqErr) {
		return &domain.UpstreamError{Service: "anthropic", Status: reqErr.StatusCode, Message: reqErr.Error()}
	}
	var apiErr *sdk.APIError
	if errors.As(err, &apiErr) {
		return &domain.UpstreamError{Service: "anthropic", Status: statusForErrType(string(apiErr.Type)), Message: apiErr.Message}
	}
	return &domain.UpstreamError{Service: "anthropic", Message: err.Error()}
}

func statusForErrType(t string) int {
	switch t {
	case "invalid_request_error":
		return 400
	case "authentication_error":
		return 401
	case "permission_error":
		return 403
	case "not_found_error":
		return 404
	case "rate_limit_error":
		return 429
	case "api_error":
		return 500
	case "overloaded_error":
		return 529
	}
	return 502
}
