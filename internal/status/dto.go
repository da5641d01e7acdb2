package status

import (
	"time"

	"github.com/Sk3pz/angler-bot-v2/internal/cast"
)

// CastsResponse is the JSON shape returned by GET /v1/casts.
type CastsResponse struct {
	Count   int             `json:"count"`
	Casts   []cast.Snapshot `json:"casts"`
	Anglers []string        `json:"anglers"`
	AsOf    time.Time       `json:"as_of"`
}

// PondResponse is the JSON shape returned by GET /v1/pond.
type PondResponse struct {
	DepthFt float64         `json:"depth_ft"`
	Band    string          `json:"band"`
	Ceiling string          `json:"ceiling"`
	Species []PondCandidate `json:"species"`
	Meta    MetaResp        `json:"meta"`
}

// PondCandidate is one species that can bite at the requested depth, with
// its share of the draw when nothing else is on the hook.
type PondCandidate struct {
	Name        string  `json:"name"`
	Rarity      string  `json:"rarity"`
	Category    string  `json:"category"`
	Probability float64 `json:"probability"`
}

// SpeciesResponse is the JSON shape returned by GET /v1/species/:name.
// ExpectedValue is what a catch of mean size and weight is worth.
type SpeciesResponse struct {
	Name          string   `json:"name"`
	Rarity        string   `json:"rarity"`
	Category      string   `json:"category"`
	SizeIn        Range    `json:"size_in"`
	WeightLb      Range    `json:"weight_lb"`
	DepthFt       Range    `json:"depth_ft"`
	BaseValue     string   `json:"base_value"`
	ExpectedValue string   `json:"expected_value"`
	Meta          MetaResp `json:"meta"`
}

// Range bounds a species attribute. Mean is the expected draw, which only
// equals Average when the range is symmetric around it.
type Range struct {
	Min     float64  `json:"min"`
	Max     float64  `json:"max"`
	Average *float64 `json:"average,omitempty"`
	Mean    *float64 `json:"mean,omitempty"`
}

type MetaResp struct {
	RequestID string `json:"request_id"`
}

type ErrorResponse struct {
	Error       string   `json:"error"`
	Suggestions []string `json:"suggestions,omitempty"`
}
