package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const personSchema = `{
	"$schema": "https://json-schema.org/draft/2020-12/schema",
	"type": "object",
	"properties": {
		"name": {"type": "string"},
		"age": {"type": "integer", "minimum": 0}
	},
	"required": ["name"]
}`

func TestSchemaValidator_ValidateBytes(t *testing.T) {
	v := NewSchemaValidator()
	require.NoError(t, v.Register("person.json", []byte(personSchema)))

	tests := []struct {
		name      string
		data      string
		wantError bool
		errorMsg  string
	}{
		{"valid data", `{"name": "John", "age": 30}`, false, ""},
		{"valid data without optional field", `{"name": "Jane"}`, false, ""},
		{"missing required field", `{"age": 25}`, true, "required"},
		{"wrong type for field", `{"name": "John", "age": "thirty"}`, true, "/age"},
		{"negative age", `{"name": "John", "age": -1}`, true, "minimum"},
		{"invalid json", `{"name": `, true, "failed to parse JSON data"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidateBytes([]byte(tt.data), "person.json")
			if !tt.wantError {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errorMsg)
		})
	}
}

func TestSchemaValidator_ValidateDocument(t *testing.T) {
	v := NewSchemaValidator()
	require.NoError(t, v.Register("person.json", []byte(personSchema)))

	// yaml decoders produce plain ints
	assert.NoError(t, v.ValidateDocument(map[string]any{"name": "Ada", "age": 36}, "person.json"))
	assert.Error(t, v.ValidateDocument(map[string]any{"age": 36}, "person.json"))
}

func TestSchemaValidator_Registration(t *testing.T) {
	v := NewSchemaValidator()

	err := v.ValidateBytes([]byte(`{}`), "missing.json")
	assert.ErrorContains(t, err, "not registered")

	assert.Error(t, v.Register("broken.json", []byte(`{"type": `)))

	require.NoError(t, v.Register("person.json", []byte(personSchema)))
	assert.NoError(t, v.Register("person.json", []byte(personSchema)), "re-registering is a no-op")
}
