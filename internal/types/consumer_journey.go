//nolint:revive // types is a standard Go package name pattern
package types

import (
	"encoding/json"
	"fmt"
)

// Funnel stage names
const (
	StageAwareness     = "awareness"
	StageConsideration = "consideration"
	StageConversion    = "conversion"
)

// ConsumerJourney classifies keywords along the buying funnel.
type ConsumerJourney struct {
	Stages JourneyStages `json:"stages"`
}

// JourneyStages holds the three funnel stages
type JourneyStages struct {
	Awareness     JourneyStage `json:"awareness"`
	Consideration JourneyStage `json:"consideration"`
	Conversion    JourneyStage `json:"conversion"`
}

// JourneyStage is one funnel stage with its sample keywords.
type JourneyStage struct {
	Keywords    []StageKeyword `json:"keywords"`
	TotalVolume int64          `json:"total_volume,omitempty"`
	ExitSignals *ExitSignals   `json:"exit_signals,omitempty"`
}

// Volume is the stage's search volume: total_volume when present, otherwise the sum of keyword volumes.
func (s JourneyStage) Volume() int64 {
	if s.TotalVolume > 0 {
		return s.TotalVolume
	}
	var sum int64
	for _, k := range s.Keywords {
		sum += k.Volume
	}
	return sum
}

// ByName returns the stage called name.
func (s JourneyStages) ByName(name string) (JourneyStage, bool) {
	switch name {
	case StageAwareness:
		return s.Awareness, true
	case StageConsideration:
		return s.Consideration, true
	case StageConversion:
		return s.Conversion, true
	}
	return JourneyStage{}, false
}

// ExitSignals maps competitor brand → keywords that suggest attrition toward it.
type ExitSignals struct {
	Competitors map[string]ExitCompetitor `json:"competitors"`
}

// ExitCompetitor is the inferred attrition toward one competitor
type ExitCompetitor struct {
	Samples      []string `json:"samples"`
	MentionCount int      `json:"mention_count,omitempty"`
	Share        float64  `json:"share,omitempty"`
}

// UnmarshalJSON also accepts the singular "sample" key, as a list or a single string.
// When both keys are present "samples" wins.
func (e *ExitCompetitor) UnmarshalJSON(data []byte) error {
	type plain ExitCompetitor
	var p struct {
		plain
		Sample json.RawMessage `json:"sample"`
	}
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*e = ExitCompetitor(p.plain)
	if e.Samples != nil || len(p.Sample) == 0 || string(p.Sample) == "null" {
		return nil
	}
	var one string
	if err := json.Unmarshal(p.Sample, &one); err == nil {
		e.Samples = []string{one}
		return nil
	}
	if err := json.Unmarshal(p.Sample, &e.Samples); err != nil {
		return fmt.Errorf("exit competitor sample must be a string or a list of strings: %w", err)
	}
	return nil
}

// StageKeyword is a funnel keyword. It decodes from either a bare string or {"keyword", "volume"}.
type StageKeyword struct {
	Keyword string `json:"keyword"`
	Volume  int64  `json:"volume,omitempty"`
}

// UnmarshalJSON accepts both the string and the object form.
func (k *StageKeyword) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		k.Keyword = s
		k.Volume = 0
		return nil
	}
	type plain StageKeyword
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return fmt.Errorf("stage keyword must be a string or an object: %w", err)
	}
	*k = StageKeyword(p)
	return nil
}
