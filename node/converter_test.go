package node_test

import (
	"errors"
	"net/netip"
	"reflect"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"typed-env/node"
	"typed-env/options"
	"typed-env/primitive"
)

func str() *node.Descriptor { return node.Scalar(primitive.KindString) }

func TestCastScalars(t *testing.T) {
	t.Parallel()

	t.Run("integer matches native parse", func(t *testing.T) {
		t.Parallel()

		for _, raw := range []string{"0", "1", "-1", "8080", "2147483648", "-9223372036854775808"} {
			want, err := strconv.Atoi(raw)
			require.NoError(t, err)

			got, err := node.Cast(raw, node.Scalar(primitive.KindInt))
			require.NoError(t, err)
			assert.Equal(t, want, got)
		}
	})

	t.Run("float", func(t *testing.T) {
		t.Parallel()

		got, err := node.Cast("3.25", node.Scalar(primitive.KindFloat64))
		require.NoError(t, err)
		assert.Equal(t, 3.25, got)
	})

	t.Run("string is identity", func(t *testing.T) {
		t.Parallel()

		got, err := node.Cast(" spaced = value ", str())
		require.NoError(t, err)
		assert.Equal(t, " spaced = value ", got)
	})

	t.Run("invalid literal", func(t *testing.T) {
		t.Parallel()

		_, err := node.Cast("notanumber", node.Scalar(primitive.KindInt))
		require.ErrorIs(t, err, node.ErrConversion)

		var convErr *node.ConversionError
		require.ErrorAs(t, err, &convErr)
		assert.Equal(t, "notanumber", convErr.Raw)
		assert.Equal(t, "int", convErr.Type)
		assert.ErrorIs(t, err, strconv.ErrSyntax)
	})
}

func TestCastSequence(t *testing.T) {
	t.Parallel()

	for _, items := range [][]string{{"a"}, {"a", "b", "c"}, {"x", "x", "y"}, {""}, {"", ""}} {
		got, err := node.Cast(strings.Join(items, ","), node.Sequence(nil))
		require.NoError(t, err)
		assert.Equal(t, items, got)
	}

	got, err := node.Cast("3,1,3", node.Sequence(node.Scalar(primitive.KindInt)))
	require.NoError(t, err)
	assert.Equal(t, []int{3, 1, 3}, got)

	_, err = node.Cast("1,two,3", node.Sequence(node.Scalar(primitive.KindInt)))
	require.ErrorIs(t, err, node.ErrConversion)
	assert.Contains(t, err.Error(), "item 1")
}

func TestCastSet(t *testing.T) {
	t.Parallel()

	got, err := node.Cast("a,b,a", node.Set(nil))
	require.NoError(t, err)
	assert.Equal(t, map[string]struct{}{"a": {}, "b": {}}, got)
	assert.Len(t, got, 2)

	got, err = node.Cast("1.5,2,1.5", node.Set(node.Scalar(primitive.KindFloat64)))
	require.NoError(t, err)
	assert.Equal(t, map[float64]struct{}{1.5: {}, 2: {}}, got)
}

func TestCastMapping(t *testing.T) {
	t.Parallel()

	got, err := node.Cast("k1=v1,k2=v2", node.Mapping(nil, nil))
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"k1": "v1", "k2": "v2"}, got)

	got, err = node.Cast("a=1,b=2,a=3", node.Mapping(nil, node.Scalar(primitive.KindInt)))
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"a": 3, "b": 2}, got, "last duplicate key wins")

	got, err = node.Cast("80=http,443=https", node.Mapping(node.Scalar(primitive.KindInt), nil))
	require.NoError(t, err)
	assert.Equal(t, map[int]string{80: "http", 443: "https"}, got)

	_, err = node.Cast("k1", node.Mapping(nil, nil))
	require.ErrorIs(t, err, node.ErrConversion)
	require.ErrorIs(t, err, node.ErrMalformedPair)

	_, err = node.Cast("k=v=w", node.Mapping(nil, nil))
	require.ErrorIs(t, err, node.ErrMalformedPair)

	_, err = node.Cast("a=x", node.Mapping(nil, node.Scalar(primitive.KindInt)))
	require.ErrorIs(t, err, node.ErrConversion)
	assert.Contains(t, err.Error(), "value 0")
}

func TestCastNested(t *testing.T) {
	t.Parallel()

	conv := node.NewConverter(options.Options{
		Categories:    options.CategoryAll,
		ItemSeparator: ";",
	})

	d := node.Mapping(nil, node.Sequence(node.Scalar(primitive.KindInt)))
	// the inner sequence reuses the item separator, so only single element lists survive
	got, err := conv.Cast("a=1;b=2", d)
	require.NoError(t, err)
	assert.Equal(t, map[string][]int{"a": {1}, "b": {2}}, got)

	got, err = node.Cast("1,2", node.Sequence(node.Sequence(node.Scalar(primitive.KindInt))))
	require.NoError(t, err)
	assert.Equal(t, [][]int{{1}, {2}}, got)
}

func TestCastUnsupported(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		desc *node.Descriptor
	}{
		{"nil", nil},
		{"unknown root", &node.Descriptor{Type: reflect.TypeFor[string]()}},
		{"zero kind", &node.Descriptor{Dispatcher: node.DispatcherScalar, Type: reflect.TypeFor[string]()}},
		{"enum without type", node.Scalar(primitive.KindPrimitiveEnum)},
		{"set of lists", node.Set(node.Sequence(nil))},
		{"map keyed by list", node.Mapping(node.Sequence(nil), nil)},
		{"nested unknown", node.Sequence(&node.Descriptor{Dispatcher: node.DispatcherEnum(42), Type: reflect.TypeFor[int]()})},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := node.Cast("x", tt.desc)
			require.ErrorIs(t, err, node.ErrTypeUnsupported)
			assert.False(t, errors.Is(err, node.ErrConversion))
		})
	}
}

func TestCastCategories(t *testing.T) {
	t.Parallel()

	conv := node.NewConverter(options.Options{Categories: options.CategoryNone})

	got, err := conv.Cast("x,y", node.Sequence(nil))
	require.NoError(t, err)
	assert.Equal(t, []string{"x", "y"}, got)

	_, err = conv.Cast("1", node.Scalar(primitive.KindInt))
	require.ErrorIs(t, err, node.ErrTypeUnsupported)

	_, err = conv.Cast("1,2", node.Sequence(node.Scalar(primitive.KindBool)))
	require.ErrorIs(t, err, node.ErrTypeUnsupported)
}

func TestConverterDescribe(t *testing.T) {
	t.Parallel()

	type Mode string

	conv := node.NewConverter(options.Default())

	d, err := conv.Describe(reflect.TypeFor[map[Mode][]time.Duration]())
	require.NoError(t, err)

	got, err := conv.Cast("fast=1s,slow=1m", d)
	require.NoError(t, err)
	assert.Equal(t, map[Mode][]time.Duration{"fast": {time.Second}, "slow": {time.Minute}}, got)

	_, err = conv.Describe(reflect.TypeFor[netip.Addr]())
	require.ErrorIs(t, err, node.ErrTypeUnsupported)

	_, err = conv.Describe(reflect.TypeFor[*int]())
	require.ErrorIs(t, err, node.ErrTypeUnsupported)
}

func TestConverterRegister(t *testing.T) {
	t.Parallel()

	conv := node.NewConverter(options.Default())
	require.NoError(t, conv.Register(netip.ParseAddr))

	d, err := conv.Describe(reflect.TypeFor[[]netip.Addr]())
	require.NoError(t, err)
	assert.Equal(t, "list[netip.Addr]", d.String())

	got, err := conv.Cast("10.0.0.1,::1", d)
	require.NoError(t, err)
	assert.Equal(t, []netip.Addr{netip.MustParseAddr("10.0.0.1"), netip.MustParseAddr("::1")}, got)

	_, err = conv.Cast("10.0.0.300", d)
	require.ErrorIs(t, err, node.ErrConversion)

	require.ErrorIs(t, conv.Register(strconv.Itoa), node.ErrCasterSource)
}

func TestConverterRegisterBool(t *testing.T) {
	t.Parallel()

	type Color int

	lookup := func(s string) (Color, bool) {
		switch s {
		case "red":
			return 1, true
		case "blue":
			return 2, true
		}
		return 0, false
	}

	conv := node.NewConverter(options.Default())
	require.NoError(t, conv.Register(lookup))

	d, err := conv.Describe(reflect.TypeFor[Color]())
	require.NoError(t, err)

	got, err := conv.Cast("blue", d)
	require.NoError(t, err)
	assert.Equal(t, Color(2), got)

	_, err = conv.Cast("green", d)
	require.ErrorIs(t, err, node.ErrCasterRejected)
}
