package yaml

import (
	"bytes"
	"encoding/json"

	"github.com/giantswarm/microerror"
	yamllib "gopkg.in/yaml.v2"
)

// MarshalWithJsonAnnotations marshals the given value to YAML using the JSON
// annotations of the struct fields. Keys keep the order in which they are
// declared instead of being sorted.
func MarshalWithJsonAnnotations(v any) ([]byte, error) {
	jsonData, err := json.Marshal(v)
	if err != nil {
		return nil, microerror.Mask(err)
	}
	dec := json.NewDecoder(bytes.NewReader(jsonData))
	dec.UseNumber()
	ordered, err := decodeOrdered(dec)
	if err != nil {
		return nil, microerror.Mask(err)
	}
	data, err := yamllib.Marshal(ordered)
	if err != nil {
		return nil, microerror.Mask(err)
	}
	return data, nil
}

func decodeOrdered(dec *json.Decoder) (any, error) {
	t, err := dec.Token()
	if err != nil {
		return nil, err
	}
	switch t {
	case json.Delim('{'):
		m := yamllib.MapSlice{}
		for dec.More() {
			k, err := dec.Token()
			if err != nil {
				return nil, err
			}
			v, err := decodeOrdered(dec)
			if err != nil {
				return nil, err
			}
			m = append(m, yamllib.MapItem{Key: k, Value: v})
		}
		// closing brace
		if _, err := dec.Token(); err != nil {
			return nil, err
		}
		return m, nil
	case json.Delim('['):
		l := []any{}
		for dec.More() {
			v, err := decodeOrdered(dec)
			if err != nil {
				return nil, err
			}
			l = append(l, v)
		}
		if _, err := dec.Token(); err != nil {
			return nil, err
		}
		return l, nil
	}
	if n, ok := t.(json.Number); ok {
		if i, err := n.Int64(); err == nil {
			return i, nil
		}
		return n.Float64()
	}
	return t, nil
}
