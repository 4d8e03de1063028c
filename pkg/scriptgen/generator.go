package scriptgen

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/willtroppe/callrep/pkg/logger"
)

// ErrEmptyNotes is returned when the caller provides nothing to work from.
var ErrEmptyNotes = errors.New("notes are empty")

// Source tells the caller which engine produced the draft.
type Source string

const (
	SourceLocal Source = "local"
	SourceLLM   Source = "llm"
)

// Result is a generated script draft with its provenance.
type Result struct {
	Script string `json:"script"`
	Source Source `json:"source"`
}

const systemPrompt = "You write short, polite phone scripts a constituent reads aloud " +
	"when calling an elected official. Keep the script under 120 words, first person, " +
	"and end with a clear ask. Return only the script text."

// chatClient is the slice of the OpenAI client the generator needs.
type chatClient interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// Generator drafts call scripts from free-form notes. When an API key is
// configured it asks the LLM first and falls back to the local template
// engine on any failure, so script generation never hard-fails on an
// upstream outage.
type Generator struct {
	llm   chatClient
	model string
	rnd   *rand.Rand
}

// Option configures a Generator.
type Option func(*Generator)

// WithLLM enables the LLM mode using the given credentials.
func WithLLM(apiKey, baseURL, model string) Option {
	return func(g *Generator) {
		if apiKey == "" {
			return
		}
		config := openai.DefaultConfig(apiKey)
		if baseURL != "" {
			config.BaseURL = baseURL
		}
		g.llm = openai.NewClientWithConfig(config)
		g.model = model
	}
}

// WithChatClient injects a chat client directly. Used by tests.
func WithChatClient(c chatClient, model string) Option {
	return func(g *Generator) {
		g.llm = c
		g.model = model
	}
}

// WithRandSource fixes the random source so template choice is reproducible.
func WithRandSource(src rand.Source) Option {
	return func(g *Generator) {
		g.rnd = rand.New(src)
	}
}

// New creates a generator. Without options it runs in local-only mode.
func New(opts ...Option) *Generator {
	g := &Generator{}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate drafts a script from the user's notes.
func (g *Generator) Generate(ctx context.Context, notes string) (*Result, error) {
	if strings.TrimSpace(notes) == "" {
		return nil, ErrEmptyNotes
	}

	if g.llm != nil {
		script, err := g.generateLLM(ctx, notes)
		if err == nil {
			return &Result{Script: script, Source: SourceLLM}, nil
		}
		logger.Warn("LLM script generation failed, falling back to local templates",
			zap.String("model", g.model),
			zap.Error(err),
		)
	}

	return &Result{Script: g.generateLocal(notes), Source: SourceLocal}, nil
}

func (g *Generator) generateLLM(ctx context.Context, notes string) (string, error) {
	resp, err := g.llm.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: g.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: notes},
		},
	})
	if err != nil {
		return "", fmt.Errorf("error querying LLM API: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("LLM returned no choices")
	}
	script := strings.TrimSpace(resp.Choices[0].Message.Content)
	if script == "" {
		return "", errors.New("LLM returned an empty script")
	}
	return script, nil
}

var templates = []string{
	"Hello, I'm calling as a concerned constituent about %[1]s. I believe it's important that %[2]s. I would appreciate if you could %[3]s. Thank you for your time and consideration.",
	"Hi, I'm reaching out regarding %[1]s. As your constituent, I feel strongly that %[2]s. I hope you will %[3]s. I appreciate you taking the time to listen to my concerns.",
	"Good day, I'm calling about %[1]s. This issue matters to me because %[2]s. I'm asking you to %[3]s. Thank you for your attention to this matter.",
	"Hello, I'm a constituent calling about %[1]s. I want to express my concern that %[2]s. I'm urging you to %[3]s. Thank you for your service and consideration.",
	"Hi there, I'm calling as a concerned voter about %[1]s. I believe %[2]s. I'm requesting that you %[3]s. I appreciate your time and look forward to your response.",
}

// topicKeywords maps a topic label to the phrases that signal it. Order
// matters: the first topic whose keyword appears in the notes wins.
var topicKeywords = []struct {
	topic    string
	keywords []string
}{
	{"climate change", []string{"climate", "environment", "global warming", "carbon", "renewable", "green energy"}},
	{"healthcare", []string{"healthcare", "health care", "medical", "insurance", "medicare", "medicaid", "affordable care"}},
	{"education", []string{"education", "school", "student", "teacher", "college", "university", "funding"}},
	{"economy", []string{"economy", "economic", "jobs", "employment", "business", "tax", "financial"}},
	{"immigration", []string{"immigration", "immigrant", "border", "citizenship", "visa", "asylum"}},
	{"gun control", []string{"gun", "firearm", "weapon", "safety", "background check", "second amendment"}},
	{"infrastructure", []string{"infrastructure", "roads", "bridges", "transportation", "construction", "public works"}},
	{"social security", []string{"social security", "retirement", "senior", "elderly", "pension"}},
	{"veterans", []string{"veteran", "military", "service member", "armed forces", "veterans affairs"}},
	{"civil rights", []string{"civil rights", "equality", "discrimination", "justice", "fairness", "rights"}},
}

var actionKeywords = []struct {
	action   string
	keywords []string
}{
	{"support legislation", []string{"support", "vote for", "back", "endorse", "champion"}},
	{"oppose legislation", []string{"oppose", "vote against", "reject", "block", "prevent"}},
	{"consider this issue", []string{"consider", "look into", "examine", "review", "study"}},
	{"take action", []string{"take action", "act", "do something", "address", "tackle"}},
	{"fund this program", []string{"fund", "allocate", "budget", "invest in", "support funding"}},
	{"investigate this", []string{"investigate", "look into", "examine", "probe", "study"}},
}

var reasoningTemplates = []string{
	"this affects our community directly",
	"this is crucial for our future",
	"this impacts many of your constituents",
	"this is a matter of public safety and well-being",
	"this is essential for our economic growth",
	"this is important for social justice",
	"this affects the most vulnerable among us",
	"this is critical for environmental protection",
}

// topicReasoning overrides the random reasoning when the detected topic has
// a tailored line.
var topicReasoning = map[string]string{
	"climate change": "this is crucial for protecting our environment and future generations",
	"healthcare":     "this directly impacts the health and well-being of our community",
	"education":      "this is essential for our children's future and community development",
	"economy":        "this affects our local economy and job opportunities",
}

// generateLocal builds a script from keyword detection over the notes plus a
// randomly chosen template.
func (g *Generator) generateLocal(notes string) string {
	lower := strings.ToLower(notes)

	topic := "this important issue"
	for _, entry := range topicKeywords {
		if containsAny(lower, entry.keywords) {
			topic = entry.topic
			break
		}
	}

	action := "consider my position on this matter"
	for _, entry := range actionKeywords {
		if containsAny(lower, entry.keywords) {
			action = entry.action
			break
		}
	}

	reasoning := reasoningTemplates[g.intn(len(reasoningTemplates))]
	if tailored, ok := topicReasoning[topic]; ok {
		reasoning = tailored
	}

	return fmt.Sprintf(templates[g.intn(len(templates))], topic, reasoning, action)
}

func (g *Generator) intn(n int) int {
	if g.rnd != nil {
		return g.rnd.Intn(n)
	}
	return rand.Intn(n)
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}
