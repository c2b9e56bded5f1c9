package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

type Likelihood string

const (
	LikelihoodUnknown      Likelihood = "LIKELIHOOD_UNSPECIFIED"
	LikelihoodVeryUnlikely Likelihood = "VERY_UNLIKELY"
	LikelihoodUnlikely     Likelihood = "UNLIKELY"
	LikelihoodPossible     Likelihood = "POSSIBLE"
	LikelihoodLikely       Likelihood = "LIKELY"
	LikelihoodVeryLikely   Likelihood = "VERY_LIKELY"
)

// Qualifies reports whether a frame at this likelihood counts as explicit.
func (l Likelihood) Qualifies() bool {
	return l == LikelihoodLikely || l == LikelihoodVeryLikely
}

type ExplicitFrame struct {
	TimeOffset float64    `json:"time_offset"`
	Likelihood Likelihood `json:"likelihood"`
}

type ExplicitFrames []ExplicitFrame

func (f ExplicitFrames) Value() (driver.Value, error) {
	if f == nil {
		return nil, nil
	}
	b, err := json.Marshal(f)
	if err != nil {
		return nil, fmt.Errorf("marshal ExplicitFrames: %w", err)
	}
	return b, nil
}
func (f *ExplicitFrames) Scan(src interface{}) error {
	if src == nil {
		*f = nil
		return nil
	}
	data, err := jsonBytes(src)
	if err != nil {
		return fmt.Errorf("ExplicitFrames.Scan: %w", err)
	}
	if err := json.Unmarshal(data, f); err != nil {
		return fmt.Errorf("unmarshal ExplicitFrames: %w", err)
	}
	return nil
}

type Tags []string

func (t Tags) Value() (driver.Value, error) {
	if t == nil {
		return nil, nil
	}
	b, err := json.Marshal(t)
	if err != nil {
		return nil, fmt.Errorf("marshal Tags: %w", err)
	}
	return b, nil
}
func (t *Tags) Scan(src interface{}) error {
	if src == nil {
		*t = nil
		return nil
	}
	data, err := jsonBytes(src)
	if err != nil {
		return fmt.Errorf("Tags.Scan: %w", err)
	}
	if err := json.Unmarshal(data, t); err != nil {
		return fmt.Errorf("unmarshal Tags: %w", err)
	}
	return nil
}

// the mysql driver hands JSON columns back as []byte, sqlmock sometimes as string
func jsonBytes(src interface{}) ([]byte, error) {
	switch v := src.(type) {
	case []byte:
		return v, nil
	case string:
		return []byte(v), nil
	default:
		return nil, fmt.Errorf("expected []byte, got %T", src)
	}
}
