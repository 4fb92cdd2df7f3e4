package schemafile

import (
	"errors"
	"fmt"

	"typed-env/node"
	"typed-env/options"
	"typed-env/schema"
)

// Converter returns a converter configured with the file's options.
func (f *File) Converter() (*node.Converter, error) {
	keyMatch, err := options.ParseKeyMatch(f.Options.KeyMatch)
	if err != nil {
		return nil, fmt.Errorf("options: %w", err)
	}

	opts := options.Default()
	opts.KeyMatch = keyMatch

	if f.Options.ItemSeparator != "" {
		opts.ItemSeparator = f.Options.ItemSeparator
	}

	if f.Options.PairSeparator != "" {
		opts.PairSeparator = f.Options.PairSeparator
	}

	return node.NewConverter(opts), nil
}

// Schema builds the schema the file declares. Binding writes into the returned Record.
func (f *File) Schema() (*schema.Schema, *Record, error) {
	conv, err := f.Converter()
	if err != nil {
		return nil, nil, err
	}

	var (
		errs   []error
		record = newRecord()
		b      = schema.NewBuilder(conv)
		opts   = conv.Options()
	)

	for _, fd := range f.Fields {
		d, err := node.ParseTag(fd.Type)
		if err != nil {
			errs = append(errs, fmt.Errorf("field %s: %w", fd.Name, err))
			continue
		}

		b.Field(fd.Name, d, record.setter(fd.Name))
		if fd.Default != nil {
			b.DefaultRaw(fd.Default.Raw(opts.ItemSeparator, opts.PairSeparator))
		}
	}

	s, err := b.Build()
	if err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		return nil, nil, errors.Join(errs...)
	}

	record.names = s.Names()

	return s, record, nil
}

// Describe lists the file's fields with their parsed type tags.
func (f *File) Describe() ([]FieldInfo, error) {
	s, _, err := f.Schema()
	if err != nil {
		return nil, err
	}

	descriptions := make(map[string]string, len(f.Fields))
	for _, fd := range f.Fields {
		descriptions[fd.Name] = fd.Description
	}

	infos := make([]FieldInfo, 0, s.Len())
	for _, field := range s.Fields() {
		info := FieldInfo{
			Name:        field.Name,
			Key:         field.Key,
			Type:        field.Descriptor.String(),
			Description: descriptions[field.Name],
		}

		if field.HasDefault {
			info.Default = Plain(field.Default)
		}

		infos = append(infos, info)
	}

	return infos, nil
}

// FieldInfo is one row of a schema description.
type FieldInfo struct {
	Name        string `json:"name" yaml:"name"`
	Key         string `json:"key" yaml:"key"`
	Type        string `json:"type" yaml:"type"`
	Default     any    `json:"default,omitempty" yaml:"default,omitempty"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}
