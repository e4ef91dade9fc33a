package graphql

import (
	"encoding/json"
	"fmt"
	"time"
)

// DateTime escalar RFC 3339 en UTC.
type DateTime struct {
	time.Time
}

// ImplementsGraphQLType asocia el tipo Go con el escalar DateTime del esquema.
func (DateTime) ImplementsGraphQLType(name string) bool {
	return name == "DateTime"
}

// UnmarshalGraphQL acepta string RFC 3339 o segundos Unix.
func (t *DateTime) UnmarshalGraphQL(input interface{}) error {
	switch v := input.(type) {
	case string:
		parsed, err := time.Parse(time.RFC3339Nano, v)
		if err != nil {
			return fmt.Errorf("DateTime: %w", err)
		}
		t.Time = parsed.UTC()
		return nil
	case int32:
		t.Time = time.Unix(int64(v), 0).UTC()
		return nil
	case int64:
		t.Time = time.Unix(v, 0).UTC()
		return nil
	case float64:
		t.Time = time.Unix(int64(v), 0).UTC()
		return nil
	default:
		return fmt.Errorf("DateTime: tipo de entrada no soportado %T", input)
	}
}

// MarshalJSON serializa como string RFC 3339 en UTC.
func (t DateTime) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.UTC().Format(time.RFC3339Nano))
}
