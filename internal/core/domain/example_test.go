package domain

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComplexity_Valid(t *testing.T) {
	tests := []struct {
		name       string
		complexity Complexity
		want       bool
	}{
		{"empty is valid", "", true},
		{"simple", ComplexitySimple, true},
		{"medium", ComplexityMedium, true},
		{"complex", ComplexityComplex, true},
		{"unknown value", "trivial", false},
		{"wrong casing", "Simple", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.complexity.Valid())
		})
	}
}

func TestMetadata_JSONRoundTrip(t *testing.T) {
	t.Run("recognised keys", func(t *testing.T) {
		created := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
		meta := Metadata{
			Domain:     "users",
			Complexity: ComplexityMedium,
			CreatedAt:  created,
			Tags:       []string{"count", "aggregate"},
		}

		data, err := json.Marshal(meta)
		require.NoError(t, err)

		var got Metadata
		require.NoError(t, json.Unmarshal(data, &got))

		assert.Equal(t, "users", got.Domain)
		assert.Equal(t, ComplexityMedium, got.Complexity)
		assert.True(t, created.Equal(got.CreatedAt))
		assert.Equal(t, []string{"count", "aggregate"}, got.Tags)
		assert.Nil(t, got.Extra)
	})

	t.Run("unrecognised keys pass through", func(t *testing.T) {
		raw := []byte(`{"domain":"orders","source":"import","weight":2}`)

		var meta Metadata
		require.NoError(t, json.Unmarshal(raw, &meta))

		assert.Equal(t, "orders", meta.Domain)
		assert.Equal(t, "import", meta.Extra["source"])
		assert.Equal(t, float64(2), meta.Extra["weight"])

		data, err := json.Marshal(meta)
		require.NoError(t, err)

		var round map[string]any
		require.NoError(t, json.Unmarshal(data, &round))
		assert.Equal(t, "import", round["source"])
		assert.Equal(t, float64(2), round["weight"])
	})

	t.Run("empty metadata marshals to empty object", func(t *testing.T) {
		data, err := json.Marshal(Metadata{})
		require.NoError(t, err)
		assert.JSONEq(t, `{}`, string(data))
	})
}

func TestMetadata_CreatedAtOrEpoch(t *testing.T) {
	t.Run("unset falls back to epoch", func(t *testing.T) {
		assert.Equal(t, time.Unix(0, 0).UTC(), Metadata{}.CreatedAtOrEpoch())
	})

	t.Run("set is returned as-is", func(t *testing.T) {
		created := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
		assert.Equal(t, created, Metadata{CreatedAt: created}.CreatedAtOrEpoch())
	})
}

func TestDuplicateKey(t *testing.T) {
	base := DuplicateKey("How many users are there?", "MATCH (u:User) RETURN count(u)")

	t.Run("case insensitive", func(t *testing.T) {
		assert.Equal(t, base, DuplicateKey("HOW MANY USERS ARE THERE?", "match (u:user) return COUNT(u)"))
	})

	t.Run("whitespace trimmed", func(t *testing.T) {
		assert.Equal(t, base, DuplicateKey("  How many users are there?  ", "\tMATCH (u:User) RETURN count(u)\n"))
	})

	t.Run("different answer is a different key", func(t *testing.T) {
		assert.NotEqual(t, base, DuplicateKey("How many users are there?", "MATCH (u:User) RETURN u"))
	})

	t.Run("interior whitespace is significant", func(t *testing.T) {
		assert.NotEqual(t, base, DuplicateKey("How many  users are there?", "MATCH (u:User) RETURN count(u)"))
	})
}

func TestDuplicateError(t *testing.T) {
	err := &DuplicateError{ExistingID: "ex-123"}

	assert.Contains(t, err.Error(), "ex-123")
	assert.True(t, errors.Is(err, ErrDuplicateExample))

	var dup *DuplicateError
	require.True(t, errors.As(err, &dup))
	assert.Equal(t, "ex-123", dup.ExistingID)
}
