package enums

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlag(t *testing.T) {
	tests := []struct {
		name  string
		input interface{}
		want  Flag
	}{
		{name: "bool true", input: true, want: FlagYes},
		{name: "bool false", input: false, want: FlagNo},
		{name: "lowercase y", input: "y", want: FlagYes},
		{name: "lowercase n", input: "n", want: FlagNo},
		{name: "uppercase Y", input: "Y", want: FlagYes},
		{name: "uppercase N", input: "N", want: FlagNo},
		{name: "flag value", input: FlagYes, want: FlagYes},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseFlag(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseFlagInvalid(t *testing.T) {
	for _, input := range []interface{}{nil, "maybe", "", 1, 0.5, Flag("")} {
		_, err := ParseFlag(input)
		require.Error(t, err)

		var invalidErr *InvalidEnumValueError
		assert.ErrorAs(t, err, &invalidErr)
	}
}

func TestFlagIsSet(t *testing.T) {
	assert.True(t, FlagYes.IsSet())
	assert.True(t, FlagNo.IsSet())
	assert.False(t, Flag("").IsSet())
	assert.False(t, Flag("x").IsSet())
}

func TestFlagValue(t *testing.T) {
	v, err := FlagYes.Value()
	require.NoError(t, err)
	assert.Equal(t, "y", v)

	v, err = Flag("").Value()
	require.NoError(t, err)
	assert.Nil(t, v)
}
