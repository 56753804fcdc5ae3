package task

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFilter(t *testing.T) {
	tests := []struct {
		input   string
		want    Filter
		wantErr bool
	}{
		{"", FilterAll, false},
		{"all", FilterAll, false},
		{"ALL", FilterAll, false},
		{"active", FilterActive, false},
		{" Active ", FilterActive, false},
		{"completed", FilterAll, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseFilter(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, got, mustParse(t, got.String()), "String round-trips through ParseFilter")
		})
	}
}

func mustParse(t *testing.T, s string) Filter {
	t.Helper()
	f, err := ParseFilter(s)
	require.NoError(t, err)
	return f
}

func TestShortID(t *testing.T) {
	assert.Equal(t, "0f8fad5b", Task{ID: "0f8fad5b-d9cb-469f-a165-70867728950e"}.ShortID())
	assert.Equal(t, "abc", Task{ID: "abc"}.ShortID())
}

func TestEncode(t *testing.T) {
	data, err := Encode(nil)
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, string(data))

	data, err = Encode([]Task{{ID: "1", Text: "Buy milk"}, {ID: "2", Text: "Walk dog", Completed: true}})
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":"1","text":"Buy milk","completed":false},{"id":"2","text":"Walk dog","completed":true}]`, string(data))

	decoded, err := Decode(data)
	require.NoError(t, err)
	assert.Equal(t, []Task{{ID: "1", Text: "Buy milk"}, {ID: "2", Text: "Walk dog", Completed: true}}, decoded)
}
