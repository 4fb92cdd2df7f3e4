package primitive_test

import (
	"reflect"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"typed-env/options"
	"typed-env/primitive"
)

type Mode string

func (m Mode) IsValid() bool { return m == "dev" || m == "prod" }

type Level int

func TestParseNumbers(t *testing.T) {
	t.Parallel()

	for _, raw := range []string{"0", "8080", "-17", "9223372036854775807"} {
		want, err := strconv.Atoi(raw)
		require.NoError(t, err)

		got, err := primitive.Parse(raw, reflect.TypeFor[int](), options.CategoryAll)
		require.NoError(t, err)
		assert.Equal(t, want, got.Interface())
	}

	got, err := primitive.Parse("2.5", reflect.TypeFor[float64](), options.CategoryAll)
	require.NoError(t, err)
	assert.Equal(t, 2.5, got.Interface())

	got, err = primitive.Parse("255", reflect.TypeFor[uint8](), options.CategoryAll)
	require.NoError(t, err)
	assert.Equal(t, uint8(255), got.Interface())

	_, err = primitive.Parse("256", reflect.TypeFor[uint8](), options.CategoryAll)
	require.Error(t, err)

	_, err = primitive.Parse("notanumber", reflect.TypeFor[int](), options.CategoryAll)
	require.ErrorIs(t, err, strconv.ErrSyntax)

	_, err = primitive.Parse("1", reflect.TypeFor[int](), options.CategoryNone)
	require.ErrorIs(t, err, primitive.ErrUnsupportedKind)
}

func TestParseBool(t *testing.T) {
	t.Parallel()

	tests := []struct {
		raw      string
		allowed  options.CategoryEnum
		expected bool
		wantErr  bool
	}{
		{"true", options.CategoryAll, true, false},
		{"YES", options.CategoryAll, true, false},
		{"off", options.CategoryAll, false, false},
		{"1", options.CategoryAll, true, false},
		{"0", options.CategoryNumericBool, false, false},
		{"1", options.CategoryTextualBool, false, true},
		{"on", options.CategoryNumericBool, false, true},
		{"maybe", options.CategoryAll, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := primitive.Parse(tt.raw, reflect.TypeFor[bool](), tt.allowed)
			if tt.wantErr {
				require.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.expected, got.Interface())
		})
	}
}

func TestParseDuration(t *testing.T) {
	t.Parallel()

	durationType := reflect.TypeFor[time.Duration]()
	nanos := options.CategoryDuration | options.CategoryNanoseconds

	tests := []struct {
		raw      string
		allowed  options.CategoryEnum
		expected time.Duration
		wantErr  bool
	}{
		{"2h45m", options.CategoryAll, 2*time.Hour + 45*time.Minute, false},
		{"30", options.CategoryAll, 30 * time.Second, false},
		{"30.0", options.CategoryAll, 30 * time.Second, false},
		{"1.5", options.CategoryAll, 1500 * time.Millisecond, false},
		{"-2", options.CategoryAll, -2 * time.Second, false},
		{"1500", nanos, 1500 * time.Nanosecond, false},
		{"1.5", nanos, 0, true},
		{"1500", options.CategoryDuration, 0, true},
		{"NaN", options.CategoryAll, 0, true},
		{"Inf", options.CategoryAll, 0, true},
		{"-Inf", options.CategoryAll, 0, true},
		{"1e30", options.CategoryAll, 0, true},
		{"-1e300", options.CategoryAll, 0, true},
		{"1e400", options.CategoryAll, 0, true},
		{"soon", options.CategoryAll, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			t.Parallel()

			got, err := primitive.Parse(tt.raw, durationType, tt.allowed)
			if tt.wantErr {
				require.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.expected, got.Interface())
		})
	}

	_, err := primitive.Parse("NaN", durationType, options.CategorySeconds)
	require.ErrorIs(t, err, primitive.ErrInvalidDuration)
}

func TestParseTime(t *testing.T) {
	t.Parallel()

	got, err := primitive.Parse("2024-05-01T10:00:00Z", reflect.TypeFor[time.Time](), options.CategoryAll)
	require.NoError(t, err)
	assert.True(t, time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC).Equal(got.Interface().(time.Time)))

	got, err = primitive.Parse("0", reflect.TypeFor[time.Time](), options.CategoryAll)
	require.NoError(t, err)
	assert.Equal(t, int64(0), got.Interface().(time.Time).Unix())

	_, err = primitive.Parse("0", reflect.TypeFor[time.Time](), options.CategoryDatetime)
	require.Error(t, err)
}

func TestParseEnum(t *testing.T) {
	t.Parallel()

	got, err := primitive.Parse("prod", reflect.TypeFor[Mode](), options.CategoryAll)
	require.NoError(t, err)
	assert.Equal(t, Mode("prod"), got.Interface())

	_, err = primitive.Parse("staging", reflect.TypeFor[Mode](), options.CategoryAll)
	require.ErrorIs(t, err, primitive.ErrInvalidEnum)

	got, err = primitive.Parse("3", reflect.TypeFor[Level](), options.CategoryAll)
	require.NoError(t, err)
	assert.Equal(t, Level(3), got.Interface())

	_, err = primitive.Parse("prod", reflect.TypeFor[Mode](), options.CategoryTextNumber)
	require.ErrorIs(t, err, primitive.ErrUnsupportedKind)
}
