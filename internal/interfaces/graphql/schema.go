// Package graphql expone la API GraphQL (POST /graphql) sobre los mismos casos de uso que REST.
package graphql

import (
	_ "embed"
	"fmt"

	graphql "github.com/graph-gophers/graphql-go"
)

//go:embed schema.graphql
var schemaSDL string

// SchemaOptions límites del esquema.
type SchemaOptions struct {
	// Introspection habilita __schema/__type (solo development).
	Introspection bool
	MaxDepth      int
}

// NewSchema parsea el esquema embebido contra el resolver raíz.
func NewSchema(r *Resolver, opts SchemaOptions) (*graphql.Schema, error) {
	maxDepth := opts.MaxDepth
	if maxDepth <= 0 {
		maxDepth = 10
	}
	schemaOpts := []graphql.SchemaOpt{
		graphql.MaxDepth(maxDepth),
		graphql.MaxParallelism(10),
	}
	if !opts.Introspection {
		schemaOpts = append(schemaOpts, graphql.DisableIntrospection())
	}
	schema, err := graphql.ParseSchema(schemaSDL, r, schemaOpts...)
	if err != nil {
		return nil, fmt.Errorf("graphql: parsear esquema: %w", err)
	}
	return schema, nil
}
