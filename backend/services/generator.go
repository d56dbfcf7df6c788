package services

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"quizapp/backend/models"
)

const questionsPerQuiz = 10

const (
	refusalMessage = "❗ I can only answer quiz-related questions. Please ask something about the quiz."
	apologyMessage = "An error occurred while generating the explanation."
)

// explanationKeywords gate the bot: a user question must contain at
// least one of them before the model is called. Heuristic, not a
// security boundary.
var explanationKeywords = []string{"why", "how", "explain", "what"}

// codeFence matches the ``` markup models like to wrap JSON output in.
var codeFence = regexp.MustCompile("(?m)^```(?:json)?|```$")

// TextModel is the single operation we need from a generative-text
// service: prompt in, free text out. The call may block on network I/O.
type TextModel interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// OpenAIModel implements TextModel on the OpenAI chat completion API.
type OpenAIModel struct {
	client *openai.Client
	model  string
}

func NewOpenAIModel(apiKey, model string) *OpenAIModel {
	return &OpenAIModel{
		client: openai.NewClient(apiKey),
		model:  model,
	}
}

func (m *OpenAIModel) Complete(ctx context.Context, prompt string) (string, error) {
	resp, err := m.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: m.model,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleUser,
					Content: prompt,
				},
			},
		},
	)
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("chat completion: empty response")
	}
	return resp.Choices[0].Message.Content, nil
}

// Generator turns model output into validated quiz questions and
// produces per-question explanations for the bot.
type Generator struct {
	model TextModel
}

func NewGenerator(model TextModel) *Generator {
	return &Generator{model: model}
}

// GenerateQuestions asks the model for a set of multiple-choice
// questions at the given difficulty level. Any transport, parse, or
// shape failure is reported as ErrGenerationFailed.
func (g *Generator) GenerateQuestions(ctx context.Context, level string) ([]models.Question, error) {
	prompt := buildQuizPrompt(level)

	raw, err := g.model.Complete(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGenerationFailed, err)
	}

	questions, err := parseQuestions(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGenerationFailed, err)
	}
	return questions, nil
}

// parseQuestions strips code fences, decodes the JSON object and
// validates the shape of every question.
func parseQuestions(raw string) ([]models.Question, error) {
	clean := strings.TrimSpace(codeFence.ReplaceAllString(strings.TrimSpace(raw), ""))

	var payload struct {
		Questions *[]models.Question `json:"questions"`
	}
	if err := json.Unmarshal([]byte(clean), &payload); err != nil {
		return nil, fmt.Errorf("invalid JSON in model output: %v", err)
	}
	if payload.Questions == nil {
		return nil, fmt.Errorf("expected a JSON object with a 'questions' key")
	}

	for i, q := range *payload.Questions {
		if strings.TrimSpace(q.Question) == "" {
			return nil, fmt.Errorf("question %d has empty text", i)
		}
		if len(q.Options) != 4 {
			return nil, fmt.Errorf("question %d has %d options, want 4", i, len(q.Options))
		}
		if q.CorrectAnswer < 0 || q.CorrectAnswer > 3 {
			return nil, fmt.Errorf("question %d has correct_answer %d out of range", i, q.CorrectAnswer)
		}
	}
	return *payload.Questions, nil
}

// Explain answers a free-text user question about one quiz question.
// Questions without an explanatory keyword get a fixed refusal; model
// failures are swallowed into a fixed apology, never an error.
func (g *Generator) Explain(ctx context.Context, q models.Question, questionIndex int, userQuestion string) string {
	lowered := strings.ToLower(userQuestion)
	matched := false
	for _, kw := range explanationKeywords {
		if strings.Contains(lowered, kw) {
			matched = true
			break
		}
	}
	if !matched {
		return refusalMessage
	}

	prompt := buildExplainPrompt(q, questionIndex, userQuestion)
	answer, err := g.model.Complete(ctx, prompt)
	if err != nil {
		return apologyMessage
	}
	return strings.TrimSpace(answer)
}

func buildQuizPrompt(level string) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Generate %d quiz questions for a %s level quiz. Each question should have:\n", questionsPerQuiz, level))
	sb.WriteString("- A clear question text\n")
	sb.WriteString("- Four multiple-choice options\n")
	sb.WriteString("- The index of the correct answer (0-3)\n")
	sb.WriteString("Format the response as a JSON object with a list of questions, each containing:\n")
	sb.WriteString("- question: string\n")
	sb.WriteString("- options: list of 4 strings\n")
	sb.WriteString("- correct_answer: integer (0-3)\n")
	return sb.String()
}

func buildExplainPrompt(q models.Question, questionIndex int, userQuestion string) string {
	var sb strings.Builder
	sb.WriteString("Provide a detailed explanation for the following quiz question:\n\n")
	sb.WriteString(fmt.Sprintf("Question %d: %s\n", questionIndex+1, q.Question))
	sb.WriteString(fmt.Sprintf("Options: %s\n", strings.Join(q.Options, ", ")))
	sb.WriteString(fmt.Sprintf("Correct Answer: %s\n\n", q.Options[q.CorrectAnswer]))
	sb.WriteString(fmt.Sprintf("User's question: %s\n", userQuestion))
	return sb.String()
}
