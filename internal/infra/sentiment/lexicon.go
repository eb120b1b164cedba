// Package sentiment provides SentimentScorer implementations.
//
//   - Lexicon: offline word-valence scorer with negation and intensifiers
//   - OpenAI:  asks a hosted model for a score through the Responses API
//
// Both return ok=false rather than an error when no score can be produced;
// the classifier maps that to Neutral.
package sentiment

import (
	"context"
	"math"
	"strings"
	"unicode"
)

// normAlpha approximates the maximum expected raw sum; x/sqrt(x²+alpha)
// maps the raw sum into (-1, 1).
const normAlpha = 15.0

// boostStep is how much an intensifier or dampener moves a word's valence.
const boostStep = 0.293

// negationScale is applied (with a sign flip) to a negated word.
const negationScale = -0.74

// negationWindow is how many tokens after a negator are affected.
const negationWindow = 3

// Lexicon scores text by summing word valences.
type Lexicon struct {
	words    map[string]float64
	boosters map[string]float64
}

// NewLexicon returns a scorer over the built-in English lexicon.
func NewLexicon() *Lexicon {
	return &Lexicon{words: defaultValences, boosters: defaultBoosters}
}

// Score implements domain.SentimentScorer. Text with no lexicon words has no score.
func (l *Lexicon) Score(_ context.Context, text string) (float64, bool) {
	tokens := tokenize(text)
	if len(tokens) == 0 {
		return 0, false
	}

	var (
		sum      float64
		matched  int
		negateIn int // tokens left in the current negation window
		boost    float64
	)
	for _, tok := range tokens {
		if isNegator(tok) {
			negateIn = negationWindow
			continue
		}
		if b, ok := l.boosters[tok]; ok {
			boost += b
			continue
		}

		v, ok := l.words[tok]
		if ok {
			matched++
			if v > 0 {
				v += boost
			} else {
				v -= boost
			}
			if negateIn > 0 {
				v *= negationScale
				negateIn = 0
			}
			sum += v
		}
		boost = 0
		if negateIn > 0 {
			negateIn--
		}
	}

	if matched == 0 {
		return 0, false
	}
	return sum / math.Sqrt(sum*sum+normAlpha), true
}

func tokenize(text string) []string {
	text = strings.ReplaceAll(strings.ToLower(text), "’", "'")
	return strings.FieldsFunc(text, func(r rune) bool {
		return !unicode.IsLetter(r) && r != '\''
	})
}

func isNegator(tok string) bool {
	switch tok {
	case "not", "no", "never", "nothing", "nobody", "neither", "nor", "without", "hardly", "barely":
		return true
	}
	return strings.HasSuffix(tok, "n't")
}

var defaultBoosters = map[string]float64{
	"very":       boostStep,
	"really":     boostStep,
	"so":         boostStep,
	"extremely":  boostStep,
	"incredibly": boostStep,
	"totally":    boostStep,
	"absolutely": boostStep,
	"deeply":     boostStep,
	"truly":      boostStep,
	"super":      boostStep,
	"slightly":   -boostStep,
	"somewhat":   -boostStep,
	"kinda":      -boostStep,
	"little":     -boostStep,
	"bit":        -boostStep,
}

// defaultValences rates words from -4 (very negative) to 4 (very positive).
var defaultValences = map[string]float64{
	// strongly positive
	"ecstatic": 4, "euphoric": 4, "thrilled": 3.6, "elated": 3.6, "overjoyed": 3.8,
	"amazing": 3.2, "awesome": 3.1, "fantastic": 3.3, "wonderful": 3.1, "incredible": 3.0,
	"love": 3.2, "loved": 2.9, "loving": 2.8, "perfect": 3.0, "blissful": 3.4,
	"magical": 2.9, "spectacular": 3.1, "breathtaking": 3.0, "brilliant": 2.8,
	// positive
	"happy": 2.7, "joy": 2.8, "joyful": 2.9, "glad": 2.0, "delighted": 2.9,
	"excited": 2.5, "beautiful": 2.6, "great": 2.5, "good": 1.9, "nice": 1.8,
	"fun": 2.3, "enjoyed": 2.2, "enjoy": 2.2, "grateful": 2.4, "thankful": 2.2,
	"proud": 2.1, "cheerful": 2.5, "smile": 1.8, "smiled": 1.8, "laugh": 2.0,
	"laughed": 2.0, "lovely": 2.6, "sunny": 1.5, "warm": 1.3, "friendly": 1.9,
	"hopeful": 1.9, "inspired": 2.2, "free": 1.4, "refreshed": 1.8,
	// mildly positive
	"calm": 1.3, "peaceful": 1.8, "relaxed": 1.7, "content": 1.5, "fine": 0.8,
	"okay": 0.6, "ok": 0.6, "pleasant": 1.6, "cozy": 1.5, "comfortable": 1.4,
	"safe": 1.3, "rested": 1.2, "quiet": 0.4, "interesting": 1.2, "curious": 0.8,
	// mildly negative
	"tired": -1.0, "bored": -1.3, "meh": -0.6, "nostalgic": -0.4, "pensive": -0.5,
	"uncertain": -1.0, "confused": -1.2, "wistful": -0.7, "homesick": -1.4,
	"restless": -1.1, "uneasy": -1.4, "awkward": -1.1, "annoyed": -1.6,
	"cold": -0.6, "rainy": -0.4, "grey": -0.5, "gray": -0.5, "dull": -1.2,
	// negative
	"sad": -2.1, "lonely": -2.0, "alone": -1.0, "upset": -1.9, "angry": -2.3,
	"worried": -1.9, "anxious": -2.0, "stressed": -2.0, "disappointed": -2.1,
	"hurt": -2.1, "cried": -2.1, "cry": -2.0, "crying": -2.1, "bad": -2.5,
	"frustrated": -2.0, "scared": -2.0, "afraid": -2.0, "nervous": -1.5,
	"regret": -1.9, "lost": -1.3, "sorry": -1.1, "missing": -1.2, "miss": -1.2,
	"gloomy": -1.8, "melancholy": -1.9, "heartbroken": -2.8, "empty": -1.8,
	// strongly negative
	"terrible": -2.9, "awful": -3.0, "horrible": -3.1, "miserable": -3.1,
	"devastated": -3.4, "hopeless": -3.0, "hate": -2.7, "hated": -2.9,
	"depressed": -2.9, "terrified": -3.0, "panic": -2.6, "furious": -3.0,
	"worst": -3.1, "dread": -2.6, "agony": -3.3, "despair": -3.3,
	"grief": -2.9, "broken": -2.2, "unbearable": -3.2, "exhausted": -1.9,
}
