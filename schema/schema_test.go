package schema_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"typed-env/node"
	"typed-env/options"
	"typed-env/primitive"
	"typed-env/schema"
)

type Base struct {
	Region string `default:"eu-west-1"`
}

type serviceConfig struct {
	Base
	Port    int            `default:"8080"`
	Name    string         `env:"SERVICE_NAME"`
	Tags    []string       `default:"a,b"`
	Limits  map[string]int `default:"cpu=2"`
	Modes   map[string]struct{}
	Timeout time.Duration
	Secret  string `env:"-"`
	hidden  int
}

func TestExtract(t *testing.T) {
	t.Parallel()

	var cfg serviceConfig

	s, err := schema.Extract(&cfg, nil)
	require.NoError(t, err)

	assert.Equal(t, []string{"Region", "Port", "SERVICE_NAME", "Tags", "Limits", "Modes", "Timeout"}, s.Names())

	port, ok := s.Lookup("PORT")
	require.True(t, ok)
	assert.Equal(t, "Port", port.Name)
	assert.Equal(t, "port", port.Key)
	assert.True(t, port.HasDefault)
	assert.Equal(t, 8080, port.Default)
	assert.Equal(t, node.DispatcherScalar, port.Descriptor.Dispatcher)

	name, ok := s.Lookup("service_name")
	require.True(t, ok)
	assert.False(t, name.HasDefault)
	assert.Nil(t, name.Default)

	tags, _ := s.Lookup("tags")
	assert.Equal(t, []string{"a", "b"}, tags.Default)

	limits, _ := s.Lookup("LIMITS")
	assert.Equal(t, map[string]int{"cpu": 2}, limits.Default)

	modes, _ := s.Lookup("modes")
	assert.Equal(t, node.DispatcherSet, modes.Descriptor.Dispatcher)

	region, _ := s.Lookup("region")
	assert.Equal(t, "eu-west-1", region.Default)

	_, ok = s.Lookup("secret")
	assert.False(t, ok)
	_, ok = s.Lookup("hidden")
	assert.False(t, ok)
}

func TestExtractSetters(t *testing.T) {
	t.Parallel()

	var cfg serviceConfig

	s, err := schema.Extract(&cfg, nil)
	require.NoError(t, err)

	port, _ := s.Lookup("port")
	port.Set(9090)
	assert.Equal(t, 9090, cfg.Port)

	port.Set(nil)
	assert.Zero(t, cfg.Port)

	region, _ := s.Lookup("region")
	region.Set("us-east-1")
	assert.Equal(t, "us-east-1", cfg.Region)
}

func TestExtractExistingValuesAreDefaults(t *testing.T) {
	t.Parallel()

	cfg := serviceConfig{Port: 99, Name: "svc"}

	s, err := schema.Extract(&cfg, nil)
	require.NoError(t, err)

	port, _ := s.Lookup("port")
	assert.Equal(t, 99, port.Default, "existing value wins over the default tag")

	name, _ := s.Lookup("service_name")
	assert.True(t, name.HasDefault)
	assert.Equal(t, "svc", name.Default)
}

func TestExtractEmpty(t *testing.T) {
	t.Parallel()

	s, err := schema.Extract(&struct{}{}, nil)
	require.NoError(t, err)
	assert.Zero(t, s.Len())
	assert.Empty(t, s.Fields())
}

func TestExtractShadowing(t *testing.T) {
	t.Parallel()

	var cfg struct {
		Port int `default:"1"`
		PORT int `default:"2"`
	}

	s, err := schema.Extract(&cfg, nil)
	require.NoError(t, err)
	require.Equal(t, 1, s.Len())

	f, _ := s.Lookup("port")
	assert.Equal(t, "PORT", f.Name, "last declared field wins")
	assert.Equal(t, 2, f.Default)
}

func TestExtractLooseKeys(t *testing.T) {
	t.Parallel()

	var cfg struct {
		DatabaseURL string
	}

	conv := node.NewConverter(options.Options{Categories: options.CategoryAll, KeyMatch: options.KeyMatchLoose})

	s, err := schema.Extract(&cfg, conv)
	require.NoError(t, err)

	f, ok := s.Lookup("DATABASE_URL")
	require.True(t, ok)
	assert.Equal(t, "DatabaseURL", f.Name)
}

func TestExtractErrors(t *testing.T) {
	t.Parallel()

	var cfg serviceConfig

	_, err := schema.Extract(cfg, nil)
	require.ErrorIs(t, err, schema.ErrNotStructPointer)

	_, err = schema.Extract((*serviceConfig)(nil), nil)
	require.ErrorIs(t, err, schema.ErrNotStructPointer)

	n := 1
	_, err = schema.Extract(&n, nil)
	require.ErrorIs(t, err, schema.ErrNotStructPointer)

	var unsupported struct {
		Ch chan int
	}
	_, err = schema.Extract(&unsupported, nil)
	require.ErrorIs(t, err, node.ErrTypeUnsupported)
	assert.Contains(t, err.Error(), "field Ch")

	var badDefault struct {
		Port int `default:"http"`
	}
	_, err = schema.Extract(&badDefault, nil)
	require.ErrorIs(t, err, node.ErrConversion)
	assert.Contains(t, err.Error(), "default tag")
}

func TestBuilder(t *testing.T) {
	t.Parallel()

	values := map[string]any{}
	setter := func(name string) schema.Setter {
		return func(v any) { values[name] = v }
	}

	s, err := schema.NewBuilder(nil).
		Field("Port", node.Scalar(primitive.KindInt), setter("Port")).Default(8080).
		Field("Hosts", node.Sequence(nil), setter("Hosts")).DefaultRaw("a,b").
		Field("Name", node.Scalar(primitive.KindString), setter("Name")).
		Build()
	require.NoError(t, err)
	assert.Equal(t, []string{"Port", "Hosts", "Name"}, s.Names())

	hosts, ok := s.Lookup("HOSTS")
	require.True(t, ok)
	assert.Equal(t, []string{"a", "b"}, hosts.Default)

	hosts.Set([]string{"c"})
	assert.Equal(t, []string{"c"}, values["Hosts"])
}

func TestBuilderErrors(t *testing.T) {
	t.Parallel()

	noop := func(any) {}

	_, err := schema.NewBuilder(nil).
		Field("Port", node.Scalar(primitive.KindInt), noop).Default("8080").
		Field("Bad", &node.Descriptor{}, noop).Default(1).
		Field("Ratio", node.Scalar(primitive.KindFloat64), noop).DefaultRaw("high").
		Build()
	require.Error(t, err)
	assert.ErrorIs(t, err, schema.ErrDefaultType)
	assert.ErrorIs(t, err, node.ErrTypeUnsupported)
	assert.ErrorIs(t, err, node.ErrConversion)
}
