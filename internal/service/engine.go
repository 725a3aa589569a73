package service

import (
	"errors"
	"net/url"
	"strings"

	"phishhook/internal/model"
)

// ErrInvalidURL marks input that is not an absolute URL with a host. Handlers
// reject such input before it reaches the engine.
var ErrInvalidURL = errors.New("invalid URL")

const (
	msgKnownLegitimate = "This website is recognized as legitimate and safe to visit."
	msgKnownPhishing   = "This website is recognized as a known phishing site."
	msgSafe            = "This website appears to be legitimate and safe to visit."
	msgMinorIndicators = "This website seems legitimate but shows some minor suspicious indicators."
	msgMultipleSigns   = "This website shows multiple signs of being a potential phishing attempt."
	msgStrongSigns     = "This website shows strong indicators of being a phishing site."
	msgParseError      = "Error analyzing URL. The URL may be malformed."
)

// Engine classifies URLs: exact reputation lookup first, heuristic scoring on
// a dataset miss. It performs no I/O and is safe for concurrent use against
// its immutable dataset.
type Engine struct {
	data *Dataset
}

func NewEngine(data *Dataset) *Engine {
	return &Engine{data: data}
}

// ValidateURL rejects input the engine is not meant to see: anything that does
// not parse as an absolute URL with a scheme and a host.
func ValidateURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return ErrInvalidURL
	}
	return nil
}

// Classify deterministically scores a URL. A direct dataset hit short-circuits
// with 100 (legitimate) or 0 (phishing); otherwise the heuristic table runs
// from a neutral 50 and the result is clamped to [0,100]. Callers are expected
// to have validated the input; an unparsable URL still gets a defensive
// unsafe result rather than a panic.
func (e *Engine) Classify(raw string) model.Analysis {
	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return model.Analysis{
			IsSafe:  false,
			Message: msgParseError,
			Score:   0,
			Signals: model.Signals{
				Suspicious: []string{"Error parsing URL"},
				Positive:   []string{},
			},
		}
	}

	host := strings.ToLower(u.Hostname())

	if e.data.IsLegitimate(host) {
		return model.Analysis{
			IsSafe:  true,
			Message: msgKnownLegitimate,
			Score:   100,
			Signals: model.Signals{
				Suspicious: []string{},
				Positive:   []string{"Domain is in trusted websites database"},
			},
		}
	}

	if e.data.IsPhishing(host) || e.data.IsPhishing(raw) {
		return model.Analysis{
			IsSafe:  false,
			Message: msgKnownPhishing,
			Score:   0,
			Signals: model.Signals{
				Suspicious: []string{"Domain is in known phishing database"},
				Positive:   []string{},
			},
		}
	}

	t := target{
		raw:     raw,
		scheme:  strings.ToLower(u.Scheme),
		host:    host,
		path:    u.Path,
		lowered: strings.ToLower(host + u.Path),
	}

	score := 50
	suspicious := []string{}
	positive := []string{}
	for _, r := range heuristics {
		for _, s := range r.eval(t) {
			score += s.delta
			if s.delta >= 0 {
				positive = append(positive, s.reason)
			} else {
				suspicious = append(suspicious, s.reason)
			}
		}
	}

	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}

	var message string
	switch {
	case score >= 80:
		message = msgSafe
	case score >= 50:
		message = msgMinorIndicators
	case score >= 30:
		message = msgMultipleSigns
	default:
		message = msgStrongSigns
	}

	return model.Analysis{
		IsSafe:  score >= 50,
		Message: message,
		Score:   score,
		Signals: model.Signals{Suspicious: suspicious, Positive: positive},
	}
}
