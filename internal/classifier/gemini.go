package classifier

import (
	"context"
	"fmt"
	"strings"
	"time"

	"fjacquet/stmt-csv/internal/logging"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// sampleLines caps how much of a statement is sent to the model.
const sampleLines = 20

// contentGenerator is the part of *genai.GenerativeModel the classifier uses.
type contentGenerator interface {
	GenerateContent(ctx context.Context, parts ...genai.Part) (*genai.GenerateContentResponse, error)
}

// GeminiClassifier asks a Gemini model whether a statement is a credit-card
// or deposit-account statement.
type GeminiClassifier struct {
	client  *genai.Client
	model   contentGenerator
	timeout time.Duration
	logger  logging.Logger
}

// NewGeminiClassifier creates a classifier backed by the Gemini API.
func NewGeminiClassifier(ctx context.Context, apiKey, model string, timeout time.Duration, logger logging.Logger) (*GeminiClassifier, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini api key is empty")
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	gm := client.GenerativeModel(model)

	return &GeminiClassifier{
		client:  client,
		model:   gm,
		timeout: timeout,
		logger:  logging.OrDefault(logger),
	}, nil
}

// newGeminiClassifierWithModel wires an arbitrary generator (tests).
func newGeminiClassifierWithModel(model contentGenerator, logger logging.Logger) *GeminiClassifier {
	return &GeminiClassifier{model: model, logger: logging.OrDefault(logger)}
}

// Name implements Classifier.
func (c *GeminiClassifier) Name() string { return "gemini" }

// Close releases the underlying client.
func (c *GeminiClassifier) Close() error {
	if c.client == nil {
		return nil
	}
	return c.client.Close()
}

// Classify implements Classifier.
func (c *GeminiClassifier) Classify(ctx context.Context, text string) (Dialect, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	resp, err := c.model.GenerateContent(ctx, genai.Text(buildPrompt(text)))
	if err != nil {
		return DialectUnknown, fmt.Errorf("gemini api error: %w", err)
	}
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return DialectUnknown, fmt.Errorf("no response from Gemini API")
	}

	answer := fmt.Sprintf("%v", resp.Candidates[0].Content.Parts[0])
	dialect := parseAnswer(answer)
	c.logger.Debug("Gemini statement hint",
		logging.Field{Key: logging.FieldDialect, Value: string(dialect)},
		logging.Field{Key: "answer", Value: answer})
	return dialect, nil
}

func buildPrompt(text string) string {
	lines := strings.Split(text, "\n")
	if len(lines) > sampleLines {
		lines = lines[:sampleLines]
	}
	return fmt.Sprintf(`The following lines were pasted from a Taiwanese bank statement.
Answer with exactly one word: CREDIT if it is a credit-card statement, DEPOSIT if it is a deposit-account ledger, UNKNOWN otherwise.

%s`, strings.Join(lines, "\n"))
}

func parseAnswer(answer string) Dialect {
	a := strings.ToUpper(answer)
	hasCredit := strings.Contains(a, "CREDIT")
	hasDeposit := strings.Contains(a, "DEPOSIT")
	switch {
	case hasCredit && !hasDeposit:
		return DialectCredit
	case hasDeposit && !hasCredit:
		return DialectDeposit
	default:
		return DialectUnknown
	}
}
