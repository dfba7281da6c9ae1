package llm

import (
	"context"
)

// Client is the interface for LLM completion clients
type Client interface {
	// GenerateStructured asks for a reply constrained to the given schema
	// and returns the raw reply text.
	GenerateStructured(ctx context.Context, prompt string, schema *Schema) (string, error)

	// GenerateText asks for a free-form reply.
	GenerateText(ctx context.Context, prompt string) (string, error)

	// ModelName returns the name of the model being used
	ModelName() string
}

// SchemaType is a JSON schema primitive type
type SchemaType string

const (
	TypeObject SchemaType = "object"
	TypeString SchemaType = "string"
)

// Schema is a provider-neutral description of a structured reply.
// Providers translate it into their own schema representation.
type Schema struct {
	Name        string
	Type        SchemaType
	Description string
	Properties  map[string]*Schema
	Required    []string
}
