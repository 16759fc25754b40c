package validation

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStructCollectsAllViolations(t *testing.T) {
	err := Struct(NewRecognition{GivenBy: 7, GivenAt: 1700000000})
	require.Error(t, err)

	var verrs Errors
	require.True(t, errors.As(err, &verrs))

	fields := verrs.Fields()
	assert.Len(t, fields, 3)
	assert.Equal(t, "core_value_id is a required field", fields["core_value_id"])
	assert.Equal(t, "text is a required field", fields["text"])
	assert.Equal(t, "given_for is a required field", fields["given_for"])
}

func TestStructValid(t *testing.T) {
	err := Struct(NewRecognition{
		CoreValueID: 3,
		Text:        "Great job",
		GivenFor:    42,
		GivenBy:     7,
		GivenAt:     1700000000,
	})
	assert.NoError(t, err)

	assert.NoError(t, Struct(NewHi5{RecognitionID: 1, GivenBy: 7, GivenAt: 1700000000}))
}

func TestIDParams(t *testing.T) {
	tests := []struct {
		name  string
		id    string
		valid bool
	}{
		{name: "numeric", id: "12", valid: true},
		{name: "zero", id: "0", valid: false},
		{name: "leading zeros", id: "007", valid: true},
		{name: "empty", id: "", valid: false},
		{name: "alpha", id: "abc", valid: false},
		{name: "negative", id: "-1", valid: false},
		{name: "overflow", id: "99999999999999999999", valid: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Struct(IDParams{ID: tt.id})
			if tt.valid {
				assert.NoError(t, err)
				return
			}
			var verrs Errors
			require.True(t, errors.As(err, &verrs))
			assert.Contains(t, verrs.Fields(), "id")
		})
	}

	err := Struct(IDParams{ID: "0"})
	var verrs Errors
	require.True(t, errors.As(err, &verrs))
	assert.Equal(t, "id must be a positive integer", verrs.Fields()["id"])
}

func TestRecognitionQuery(t *testing.T) {
	assert.NoError(t, Struct(RecognitionQuery{}))
	assert.NoError(t, Struct(RecognitionQuery{GivenFor: "42", Limit: "500", Offset: "0"}))

	err := Struct(RecognitionQuery{GivenFor: "x", GivenBy: "1 or 1=1", Limit: "-5"})
	var verrs Errors
	require.True(t, errors.As(err, &verrs))

	fields := verrs.Fields()
	assert.Len(t, fields, 3)
	assert.Equal(t, "given_for must be a non-negative integer", fields["given_for"])
	assert.Contains(t, fields, "given_by")
	assert.Contains(t, fields, "limit")
}

func TestFromBindError(t *testing.T) {
	var req struct {
		GivenFor uint `json:"given_for"`
	}
	err := json.Unmarshal([]byte(`{"given_for": -1}`), &req)
	require.Error(t, err)

	verrs := FromBindError(err)
	require.Len(t, verrs, 1)
	assert.Equal(t, "given_for", verrs[0].Field)
	assert.Equal(t, "given_for must be a non-negative integer", verrs[0].Message)

	err = json.Unmarshal([]byte(`{`), &req)
	require.Error(t, err)
	assert.Equal(t, "body", FromBindError(err)[0].Field)
}

func TestParseUint(t *testing.T) {
	v, err := ParseUint("100")
	require.NoError(t, err)
	assert.Equal(t, uint64(100), v)

	_, err = ParseUint("9223372036854775808")
	assert.Error(t, err)
}
