// Package impact scores how much a classified drift matters. Raw diff
// size cannot tell a one-line fee correction from a rewritten service
// obligation, so legally consequential keyword families carry most of
// the weight.
package impact

import (
	"strings"

	"github.com/lexdrift/lexdrift/internal/model"
)

// family groups the keywords whose presence in changed lines marks a
// procedurally consequential edit.
type family struct {
	name     string
	keywords []string
}

// defaultFamilies covers the procedural mechanics where silent index
// drift hurts a litigant: getting a deadline, a service step, a costs
// consequence or a permission requirement wrong.
var defaultFamilies = []family{
	{
		name: "service",
		keywords: []string{
			"service", "serve", "served", "deemed service", "notice",
			"claim form", "acknowledgment of service",
		},
	},
	{
		name: "time-limit",
		keywords: []string{
			"within", "days", "time limit", "deadline", "before the expiry",
			"extension of time", "not later than", "period of",
		},
	},
	{
		name: "costs",
		keywords: []string{
			"costs", "assessment", "detailed assessment", "summary assessment",
			"fixed costs", "budget",
		},
	},
	{
		name: "appeals",
		keywords: []string{
			"appeal", "permission", "leave to appeal", "appellant",
			"respondent's notice", "lower court",
		},
	},
	{
		name: "disclosure",
		keywords: []string{
			"disclosure", "inspection", "privilege", "redaction",
			"standard disclosure", "specific disclosure",
		},
	},
}

// Scorer computes an integer severity and triage bucket from a diff
// record, using the weight table and thresholds in ImpactConfig.
type Scorer struct {
	config   model.ImpactConfig
	families []family
}

// NewScorer creates a scorer with the default keyword families.
func NewScorer(config model.ImpactConfig) *Scorer {
	return &Scorer{config: config, families: defaultFamilies}
}

// Score combines keyword-family hits with a magnitude term. A family
// contributes its weight once if any changed line on either side
// matches any of its keywords.
func (s *Scorer) Score(diff model.DiffRecord) model.ImpactScore {
	changed := make([]string, 0, len(diff.RemovedLines)+len(diff.AddedLines))
	for _, line := range diff.RemovedLines {
		changed = append(changed, strings.ToLower(line))
	}
	for _, line := range diff.AddedLines {
		changed = append(changed, strings.ToLower(line))
	}

	score := 0
	var matched []string
	for _, fam := range s.families {
		if familyMatches(fam, changed) {
			score += s.config.FamilyWeight
			matched = append(matched, fam.name)
		}
	}

	// Magnitude: one point per MagnitudeDiv changed lines, capped so a
	// sprawling but legally inert diff cannot outrank a keyword hit.
	if div := s.config.MagnitudeDiv; div > 0 {
		magnitude := len(changed) / div
		if magnitude > s.config.MagnitudeCap {
			magnitude = s.config.MagnitudeCap
		}
		score += magnitude
	}

	return model.ImpactScore{
		Score:    score,
		Bucket:   s.bucket(score),
		Families: matched,
	}
}

func (s *Scorer) bucket(score int) model.ImpactBucket {
	switch {
	case score >= s.config.HighThreshold:
		return model.ImpactHigh
	case score >= s.config.MediumThreshold:
		return model.ImpactMedium
	default:
		return model.ImpactLow
	}
}

func familyMatches(fam family, changed []string) bool {
	for _, line := range changed {
		for _, kw := range fam.keywords {
			if strings.Contains(line, kw) {
				return true
			}
		}
	}
	return false
}
