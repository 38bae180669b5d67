package recommend

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	_ "embed"

	"go.uber.org/zap"

	"github.com/spigell/hh-advisor/internal/market"
	"github.com/spigell/hh-advisor/internal/profile"
	"github.com/spigell/hh-advisor/internal/utils"
)

type contentGenerator interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
}

//go:embed prompt.md
var promptTemplate string

const defaultMaxLogLength = 200

// External is the AI tier. It sends the whole profile to the model and
// expects a strict-JSON recommendation back. Any transport or parse failure
// surfaces as an error so the chain can degrade.
type External struct {
	generator contentGenerator
	logger    *zap.Logger
	maxLogLen int
}

func NewExternal(generator contentGenerator, logger *zap.Logger) *External {
	return &External{
		generator: generator,
		logger:    logger,
		maxLogLen: defaultMaxLogLength,
	}
}

func (e *External) Name() string { return "external" }

func (e *External) Recommend(ctx context.Context, p *profile.Profile, opts market.Options) (*market.Result, error) {
	started := time.Now()

	profileJSON, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal profile payload: %w", err)
	}

	optionsJSON, err := json.Marshal(opts)
	if err != nil {
		return nil, fmt.Errorf("marshal options payload: %w", err)
	}

	prompt := buildPrompt(string(profileJSON), string(optionsJSON))

	e.logger.Debug("gemini recommendation request",
		zap.Int("prompt_length", utf8.RuneCountInString(prompt)),
		zap.String("prompt_preview", utils.TruncateForLog(prompt, e.maxLogLen)),
	)

	raw, err := e.generator.GenerateContent(ctx, prompt)
	if err != nil {
		return nil, err
	}

	e.logger.Debug("gemini recommendation response",
		zap.Int("response_length", utf8.RuneCountInString(raw)),
		zap.String("response_preview", utils.TruncateForLog(raw, e.maxLogLen)),
	)

	result, err := parseRecommendation(raw)
	if err != nil {
		return nil, err
	}

	result.MarketFitScore = market.ClampScore(result.MarketFitScore)
	result.Debug.Source = "external"
	result.Debug.Fallback = false
	result.Debug.ElapsedMS = time.Since(started).Milliseconds()
	if result.Debug.ExperienceBucket == "" {
		result.Debug.ExperienceBucket = string(profile.ExperienceBucket(p))
	}

	return result, nil
}

func buildPrompt(profileJSON, optionsJSON string) string {
	template := promptTemplate
	if strings.TrimSpace(template) == "" {
		template = "Profile:\n{{PROFILE_JSON}}\n\nOptions:\n{{OPTIONS_JSON}}\n\nJSON Response:"
	}
	prompt := strings.ReplaceAll(template, "{{PROFILE_JSON}}", profileJSON)
	prompt = strings.ReplaceAll(prompt, "{{OPTIONS_JSON}}", optionsJSON)
	return prompt
}

// parseRecommendation decodes the model output into the shared result
// contract. A response without roles and without skill gaps is treated as
// unusable rather than rendered empty.
func parseRecommendation(raw string) (*market.Result, error) {
	cleaned := extractJSON(raw)

	var result market.Result
	if err := json.Unmarshal([]byte(cleaned), &result); err != nil {
		return nil, fmt.Errorf("parse gemini response: %w", err)
	}

	if len(result.Roles) == 0 && len(result.GrowSkills) == 0 {
		return nil, fmt.Errorf("gemini response carries no roles and no skill gaps")
	}

	return &result, nil
}

func extractJSON(raw string) string {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "```") {
		raw = strings.TrimPrefix(raw, "```json")
		raw = strings.TrimPrefix(raw, "```")
		raw = strings.TrimSpace(raw)
		if idx := strings.LastIndex(raw, "```"); idx != -1 {
			raw = raw[:idx]
		}
	}
	raw = strings.Trim(raw, "`")
	return strings.TrimSpace(raw)
}
