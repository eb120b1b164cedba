package sentiment

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	"github.com/invopop/jsonschema"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/responses"

	"github.com/moodmap/moodmap/internal/infra/observability"
	"github.com/moodmap/moodmap/internal/logging"
)

const scorerInstructions = `You rate the emotional tone of short personal journal notes.

Each note describes how the writer felt at a place. Return a single sentiment
score between -1.0 (devastated, distressed) and 1.0 (euphoric), where 0.0 is
emotionally neutral. Judge only the writer's feelings, not the place.
If the note carries no emotional signal at all, set "scorable" to false.`

// scoreResponse is the structured output the model must return.
type scoreResponse struct {
	Score    float64 `json:"score" jsonschema:"required,minimum=-1,maximum=1"`
	Scorable bool    `json:"scorable" jsonschema:"required"`
}

var scoreSchema = generateSchema[scoreResponse]()

// responsesAPI is the slice of the OpenAI client the scorer needs.
type responsesAPI interface {
	New(ctx context.Context, body responses.ResponseNewParams, opts ...option.RequestOption) (*responses.Response, error)
}

// OpenAIConfig configures the hosted scorer.
type OpenAIConfig struct {
	APIKey  string
	Model   string
	Timeout time.Duration // per request; 0 means 20s
}

// OpenAI scores text with a hosted model. Every failure is logged and
// reported as "no score".
type OpenAI struct {
	api     responsesAPI
	model   string
	timeout time.Duration
	log     logging.Logger
}

// NewOpenAI builds a scorer using the OpenAI Responses API.
func NewOpenAI(cfg OpenAIConfig, log logging.Logger) (*OpenAI, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("openai scorer: api key is empty")
	}
	if cfg.Model == "" {
		return nil, errors.New("openai scorer: model is empty")
	}
	client := openai.NewClient(option.WithAPIKey(cfg.APIKey))
	return newOpenAI(&client.Responses, cfg, log), nil
}

func newOpenAI(api responsesAPI, cfg OpenAIConfig, log logging.Logger) *OpenAI {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 20 * time.Second
	}
	return &OpenAI{api: api, model: cfg.Model, timeout: timeout, log: log}
}

// Score implements domain.SentimentScorer.
func (o *OpenAI) Score(ctx context.Context, text string) (float64, bool) {
	ctx, cancel := context.WithTimeout(ctx, o.timeout)
	defer cancel()

	params := responses.ResponseNewParams{
		Model:           o.model,
		MaxOutputTokens: openai.Int(200),
		Instructions:    openai.String(scorerInstructions),
		Input: responses.ResponseNewParamsInputUnion{
			OfInputItemList: []responses.ResponseInputItemUnionParam{
				responses.ResponseInputItemParamOfMessage(text, responses.EasyInputMessageRoleUser),
			},
		},
		Text: responses.ResponseTextConfigParam{
			Format: responses.ResponseFormatTextConfigUnionParam{
				OfJSONSchema: &responses.ResponseFormatTextJSONSchemaConfigParam{
					Name:        "SentimentScore",
					Schema:      scoreSchema,
					Strict:      openai.Bool(true),
					Description: openai.String("Sentiment score of a journal note"),
					Type:        "json_schema",
				},
			},
		},
	}

	resp, err := o.api.New(ctx, params)
	if err != nil {
		o.fail(ctx, "request failed", err)
		return 0, false
	}

	score, ok, err := parseScore(resp.OutputText())
	if err != nil {
		o.fail(ctx, "decode failed", err)
		return 0, false
	}
	return score, ok
}

func (o *OpenAI) fail(ctx context.Context, msg string, err error) {
	observability.ScorerErrors.WithLabelValues("openai").Inc()
	if o.log != nil {
		o.log.Warn(ctx, "openai scorer: "+msg, "model", o.model, "error", err)
	}
}

// parseScore decodes the model output. ok is false when the model marked the
// note unscorable.
func parseScore(output string) (float64, bool, error) {
	var out scoreResponse
	if err := decodeModelJSON(output, &out); err != nil {
		return 0, false, err
	}
	if !out.Scorable {
		return 0, false, nil
	}
	if math.IsNaN(out.Score) || math.IsInf(out.Score, 0) {
		return 0, false, fmt.Errorf("score %v is not finite", out.Score)
	}
	return out.Score, true, nil
}

// decodeModelJSON unmarshals JSON from a model response, tolerating text
// wrapped around the object.
func decodeModelJSON(outputText string, v any) error {
	s := strings.TrimSpace(outputText)
	if s == "" {
		return io.ErrUnexpectedEOF
	}
	if err := json.Unmarshal([]byte(s), v); err == nil {
		return nil
	}

	start := strings.IndexByte(s, '{')
	end := strings.LastIndexByte(s, '}')
	if start == -1 || end == -1 || end <= start {
		return fmt.Errorf("no JSON object found in model output (len=%d)", len(s))
	}
	sub := s[start : end+1]
	if err := json.Unmarshal([]byte(sub), v); err != nil {
		return fmt.Errorf("unmarshal extracted JSON (len=%d): %w", len(sub), err)
	}
	return nil
}

func generateSchema[T any]() map[string]any {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties:  false,
		DoNotReference:             true,
		RequiredFromJSONSchemaTags: true,
	}
	var v T
	b, err := reflector.Reflect(v).MarshalJSON()
	if err != nil {
		panic(err)
	}
	var m map[string]any
	if err := json.Unmarshal(b, &m); err != nil {
		panic(err)
	}
	// strict mode wants every property required and no extras
	m["additionalProperties"] = false
	if props, ok := m["properties"].(map[string]any); ok {
		required := make([]string, 0, len(props))
		for name := range props {
			required = append(required, name)
		}
		m["required"] = required
	}
	return m
}
