package gemini

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// Client wraps the Gemini model used for drafting introduction messages.
// Entirely optional: the container tolerates a nil client.
type Client struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

func NewClient(apiKey string) (*Client, error) {
	ctx := context.Background()
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	model := client.GenerativeModel("gemini-1.5-pro")
	model.SetTemperature(0.7)

	return &Client{
		client: client,
		model:  model,
	}, nil
}

func (c *Client) Close() error {
	return c.client.Close()
}

// PairSummary is the non-identifying subset of a profile handed to the model.
type PairSummary struct {
	DisplayName   string
	Age           int
	City          string
	MaritalStatus string
	Hobbies       []string
}

// SuggestIntroduction drafts a short introduction message a matchmaker can
// edit before sending a proposition.
func (c *Client) SuggestIntroduction(ctx context.Context, reference, candidate PairSummary, matchedCriteria []string) (string, error) {
	prompt := fmt.Sprintf(`
		You write short introduction messages for a matrimonial agency.
		Person seeking: %s, %d, %s, %s, hobbies: %v
		Suggested match: %s, %d, %s, %s, hobbies: %v
		Matched criteria: %v

		Task: Write a warm, respectful message (2-3 sentences) a matchmaker
		would send to introduce the suggested match. Mention at most two of
		the matched criteria. Do not invent facts.
		Output: Just the message text.
	`,
		reference.DisplayName, reference.Age, reference.City, reference.MaritalStatus, reference.Hobbies,
		candidate.DisplayName, candidate.Age, candidate.City, candidate.MaritalStatus, candidate.Hobbies,
		matchedCriteria,
	)

	resp, err := c.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", err
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("no content generated")
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			sb.WriteString(string(txt))
		}
	}
	return strings.TrimSpace(sb.String()), nil
}
