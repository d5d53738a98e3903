package domain

import (
	"encoding/json"
	"strings"
	"time"
)

// Complexity classifies how involved an example's target query is.
type Complexity string

const (
	// ComplexitySimple covers single-clause queries.
	ComplexitySimple Complexity = "simple"
	// ComplexityMedium covers queries with filters or a single join/traversal.
	ComplexityMedium Complexity = "medium"
	// ComplexityComplex covers multi-step queries with aggregation or subqueries.
	ComplexityComplex Complexity = "complex"
)

// Valid reports whether the complexity is a known value.
// The empty string is valid because complexity is an optional label.
func (c Complexity) Valid() bool {
	switch c {
	case "", ComplexitySimple, ComplexityMedium, ComplexityComplex:
		return true
	default:
		return false
	}
}

// TrainingExample pairs a natural-language question with the target query it
// should translate to. The answer query is an opaque payload in whatever
// query language the deployment targets (Cypher, SPARQL, SQL); it is stored
// and returned verbatim, never parsed.
type TrainingExample struct {
	// ID is the opaque unique identifier, assigned at creation, immutable.
	ID string `json:"id"`

	// Question is the natural-language query text.
	Question string `json:"question"`

	// AnswerQuery is the target query text.
	AnswerQuery string `json:"answer_query"`

	// Metadata carries optional annotations.
	Metadata Metadata `json:"metadata"`
}

// Metadata is an open bag of example annotations. The recognised keys are
// typed fields; unrecognised keys round-trip through Extra without
// validation.
type Metadata struct {
	// Domain groups examples by subject area (e.g. "users", "orders").
	Domain string

	// Complexity is the optional complexity label.
	Complexity Complexity

	// CreatedAt is set when the example is created. It is the tie-break for
	// duplicate resolution: the oldest member of a duplicate group is kept.
	CreatedAt time.Time

	// Tags is an optional set of free-form labels.
	Tags []string

	// Extra holds unrecognised metadata keys verbatim.
	Extra map[string]any
}

// Recognised metadata keys in the serialized form.
const (
	metaKeyDomain     = "domain"
	metaKeyComplexity = "complexity"
	metaKeyCreatedAt  = "created_at"
	metaKeyTags       = "tags"
)

// MarshalJSON serializes the metadata as a flat JSON object: recognised
// fields under their fixed keys, Extra keys alongside them.
func (m Metadata) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(m.Extra)+4)
	for k, v := range m.Extra {
		out[k] = v
	}
	if m.Domain != "" {
		out[metaKeyDomain] = m.Domain
	}
	if m.Complexity != "" {
		out[metaKeyComplexity] = string(m.Complexity)
	}
	if !m.CreatedAt.IsZero() {
		out[metaKeyCreatedAt] = m.CreatedAt.UTC().Format(time.RFC3339)
	}
	if len(m.Tags) > 0 {
		out[metaKeyTags] = m.Tags
	}
	return json.Marshal(out)
}

// UnmarshalJSON restores recognised keys into their typed fields and keeps
// everything else in Extra.
func (m *Metadata) UnmarshalJSON(data []byte) error {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*m = Metadata{}
	for k, v := range raw {
		switch k {
		case metaKeyDomain:
			if s, ok := v.(string); ok {
				m.Domain = s
				continue
			}
		case metaKeyComplexity:
			if s, ok := v.(string); ok {
				m.Complexity = Complexity(s)
				continue
			}
		case metaKeyCreatedAt:
			if s, ok := v.(string); ok {
				if t, err := time.Parse(time.RFC3339, s); err == nil {
					m.CreatedAt = t
					continue
				}
			}
		case metaKeyTags:
			if items, ok := v.([]any); ok {
				tags := make([]string, 0, len(items))
				for _, item := range items {
					if s, ok := item.(string); ok {
						tags = append(tags, s)
					}
				}
				m.Tags = tags
				continue
			}
		}
		if m.Extra == nil {
			m.Extra = make(map[string]any)
		}
		m.Extra[k] = v
	}
	return nil
}

// CreatedAtOrEpoch returns CreatedAt, falling back to the Unix epoch when
// unset so examples without timestamps sort as oldest.
func (m Metadata) CreatedAtOrEpoch() time.Time {
	if m.CreatedAt.IsZero() {
		return time.Unix(0, 0).UTC()
	}
	return m.CreatedAt
}

// DuplicateKey returns the normalised identity used for duplicate detection:
// case-insensitive, whitespace-trimmed question and answer query.
func DuplicateKey(question, answerQuery string) string {
	return strings.ToLower(strings.TrimSpace(question)) +
		"\x00" +
		strings.ToLower(strings.TrimSpace(answerQuery))
}
