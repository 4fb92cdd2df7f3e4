// Package schema describes the fields of a configuration record.
//
// A Schema is a set of fields, each carrying the canonical field name, its
// node.Descriptor, an optional default value and a setter closed over the
// record instance. Schemas are built either by Extract, which reflects over a
// tagged struct, or explicitly with a Builder.
//
// Struct tags understood by Extract:
//
//	type Config struct {
//	    Port    int               `default:"8080"`
//	    Name    string            `env:"SERVICE_NAME"`
//	    Tags    []string
//	    Limits  map[string]int    `default:"cpu=2,mem=512"`
//	    Secret  string            `env:"-"` // skipped
//	}
//
// A field without a default tag still gets a default when the target already
// holds a non-zero value for it, so values set by a constructor (or by a
// SetDefaults method, see Defaulter) act as defaults.
package schema
