package llm

import (
	"strings"

	"github.com/sashabaranov/go-openai/jsonschema"
	"google.golang.org/genai"
)

// GenAI converts the schema to the Gemini SDK representation.
func (s *Schema) GenAI() *genai.Schema {
	if s == nil {
		return nil
	}
	out := &genai.Schema{
		Type:        genai.Type(strings.ToUpper(string(s.Type))),
		Description: s.Description,
		Required:    s.Required,
	}
	if len(s.Properties) > 0 {
		out.Properties = make(map[string]*genai.Schema, len(s.Properties))
		for name, prop := range s.Properties {
			out.Properties[name] = prop.GenAI()
		}
	}
	return out
}

// OpenAI converts the schema to a JSON schema definition for OpenAI-compatible
// APIs. Objects are closed, as strict mode requires.
func (s *Schema) OpenAI() *jsonschema.Definition {
	if s == nil {
		return nil
	}
	def := s.openAI()
	return &def
}

func (s *Schema) openAI() jsonschema.Definition {
	def := jsonschema.Definition{
		Type:        jsonschema.DataType(s.Type),
		Description: s.Description,
		Required:    s.Required,
	}
	if s.Type == TypeObject {
		def.AdditionalProperties = false
		def.Properties = make(map[string]jsonschema.Definition, len(s.Properties))
		for name, prop := range s.Properties {
			def.Properties[name] = prop.openAI()
		}
	}
	return def
}
