// Package schemafile loads explicit record schemas from YAML files:
//
//	version: "1"
//	options:
//	  item_separator: ","
//	  key_match: loose
//	fields:
//	  - name: Port
//	    type: int
//	    default: 8080
//	  - name: Hosts
//	    type: list[str]
//	    default: [a, b]
//	  - name: Limits
//	    type: dict[str,float]
//	    default: {cpu: 1.5}
//
// Values bound through such a schema land in a Record, which encodes to YAML
// in field order.
package schemafile
