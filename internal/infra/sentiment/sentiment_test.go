package sentiment

import (
	"context"
	"errors"
	"testing"

	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/responses"

	"github.com/moodmap/moodmap/internal/app/classifier"
	"github.com/moodmap/moodmap/internal/domain"
	"github.com/moodmap/moodmap/internal/logging"
)

// ─── Lexicon Tests ──────────────────────────────────────────────────────────

func TestLexicon_NoSignal(t *testing.T) {
	l := NewLexicon()
	for _, text := range []string{"", "   ", "12345 !!!", "the bus left at noon"} {
		if _, ok := l.Score(context.Background(), text); ok {
			t.Errorf("Score(%q) ok = true, want false", text)
		}
	}
}

func TestLexicon_Polarity(t *testing.T) {
	l := NewLexicon()
	ctx := context.Background()

	tests := []struct {
		text     string
		positive bool
	}{
		{"What a wonderful sunny afternoon, I loved it", true},
		{"I feel happy and grateful", true},
		{"Lonely and sad on the pier", false},
		{"This was the worst, most horrible day", false},
		{"I am not happy", false},
		{"I wasn't sad at all", true},
		{"I don’t hate it", true},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			s, ok := l.Score(ctx, tt.text)
			if !ok {
				t.Fatalf("Score(%q) ok = false", tt.text)
			}
			if (s > 0) != tt.positive {
				t.Errorf("Score(%q) = %v, want positive=%v", tt.text, s, tt.positive)
			}
			if s <= -1 || s >= 1 {
				t.Errorf("Score(%q) = %v outside (-1, 1)", tt.text, s)
			}
		})
	}
}

func TestLexicon_Intensifier(t *testing.T) {
	l := NewLexicon()
	ctx := context.Background()

	plain, _ := l.Score(ctx, "happy")
	boosted, _ := l.Score(ctx, "very happy")
	damped, _ := l.Score(ctx, "slightly happy")

	if !(boosted > plain && plain > damped) {
		t.Errorf("want very(%v) > plain(%v) > slightly(%v)", boosted, plain, damped)
	}

	sad, _ := l.Score(ctx, "sad")
	verySad, _ := l.Score(ctx, "very sad")
	if !(verySad < sad) {
		t.Errorf("very sad (%v) should be below sad (%v)", verySad, sad)
	}
}

func TestLexicon_NegationWindow(t *testing.T) {
	l := NewLexicon()
	ctx := context.Background()

	// "happy" is four tokens after "not": outside the window
	s, _ := l.Score(ctx, "not on this long road happy")
	if s <= 0 {
		t.Errorf("negation leaked past its window: score = %v", s)
	}
}

func TestLexicon_DrivesClassifier(t *testing.T) {
	c := classifier.New(NewLexicon())
	ctx := context.Background()

	if got := c.TextToLabel(ctx, "ecstatic, amazing, perfect, love love love"); got != domain.Euphoric {
		t.Errorf("TextToLabel(joyous text) = %v, want Euphoric", got)
	}
	if got := c.TextToLabel(ctx, "devastated, hopeless, miserable, despair"); got != domain.Distressed {
		t.Errorf("TextToLabel(bleak text) = %v, want Distressed", got)
	}
	if got := c.TextToLabel(ctx, "parked the car"); got != domain.Neutral {
		t.Errorf("TextToLabel(flat text) = %v, want Neutral", got)
	}
}

// ─── OpenAI Scorer Tests ────────────────────────────────────────────────────

type failingAPI struct{ calls int }

func (f *failingAPI) New(context.Context, responses.ResponseNewParams, ...option.RequestOption) (*responses.Response, error) {
	f.calls++
	return nil, errors.New("503 service unavailable")
}

func TestOpenAI_RequestFailureIsNoScore(t *testing.T) {
	api := &failingAPI{}
	o := newOpenAI(api, OpenAIConfig{Model: "gpt-4.1-mini"}, logging.Discard())

	if _, ok := o.Score(context.Background(), "lovely evening"); ok {
		t.Error("Score() ok = true after API failure")
	}
	if api.calls != 1 {
		t.Errorf("api calls = %d, want 1 (no retries)", api.calls)
	}
}

func TestNewOpenAI_Validates(t *testing.T) {
	if _, err := NewOpenAI(OpenAIConfig{Model: "m"}, logging.Discard()); err == nil {
		t.Error("expected error for empty api key")
	}
	if _, err := NewOpenAI(OpenAIConfig{APIKey: "k"}, logging.Discard()); err == nil {
		t.Error("expected error for empty model")
	}
}

func TestParseScore(t *testing.T) {
	tests := []struct {
		name   string
		output string
		score  float64
		ok     bool
		err    bool
	}{
		{"plain", `{"score": 0.42, "scorable": true}`, 0.42, true, false},
		{"wrapped", "Here you go:\n{\"score\": -0.7, \"scorable\": true}\n", -0.7, true, false},
		{"unscorable", `{"score": 0, "scorable": false}`, 0, false, false},
		{"empty", "", 0, false, true},
		{"garbage", "no json here", 0, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score, ok, err := parseScore(tt.output)
			if (err != nil) != tt.err {
				t.Fatalf("parseScore() error = %v, wantErr %v", err, tt.err)
			}
			if ok != tt.ok || score != tt.score {
				t.Errorf("parseScore() = (%v, %v), want (%v, %v)", score, ok, tt.score, tt.ok)
			}
		})
	}
}

func TestScoreSchema_Strict(t *testing.T) {
	if scoreSchema["additionalProperties"] != false {
		t.Errorf("additionalProperties = %v, want false", scoreSchema["additionalProperties"])
	}
	req, ok := scoreSchema["required"].([]string)
	if !ok || len(req) != 2 {
		t.Errorf("required = %v, want both properties", scoreSchema["required"])
	}
}
