package output

import (
	"bytes"
	"encoding/json"
	"errors"
	"path/filepath"
	"testing"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kargones/dr-downloader/internal/pkg/apperrors"
)

func loadSchema(t *testing.T) *jsonschema.Schema {
	t.Helper()
	schemaPath := filepath.Join("testdata", "schema", "result.schema.json")
	compiler := jsonschema.NewCompiler()
	schema, err := compiler.Compile(schemaPath)
	require.NoError(t, err, "не удалось загрузить JSON Schema")
	return schema
}

func writeAndDecode(t *testing.T, result *Result) any {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, NewJSONWriter().Write(&buf, result))

	var data any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &data))
	return data
}

func TestJSONWriter_SchemaValidation(t *testing.T) {
	schema := loadSchema(t)
	meta := &Metadata{DurationMs: 150, TraceID: "0123456789abcdef0123456789abcdef", APIVersion: APIVersion}

	tests := []struct {
		name   string
		result *Result
		valid  bool
	}{
		{"success", NewSuccess("version", map[string]string{"version": "1.0.0"}, meta), true},
		{"success without metadata", NewSuccess("clear", nil, nil), true},
		{"app error", NewError("download", apperrors.NewAppError(apperrors.ErrMissingArgument, "не указан URL", nil), meta), true},
		{"plain error", NewError("download", errors.New("boom"), nil), true},
		{"error status without error", &Result{Status: StatusError, Command: "x"}, false},
		{"unknown status", &Result{Status: "partial", Command: "x"}, false},
		{"bad trace id", NewSuccess("x", nil, &Metadata{TraceID: "XYZ", APIVersion: APIVersion}), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := schema.Validate(writeAndDecode(t, tt.result))
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestJSONWriter_DoesNotEscapeURLs(t *testing.T) {
	var buf bytes.Buffer
	result := NewSuccess("download", map[string]string{"url": "https://x/watch?v=1&t=2"}, nil)
	require.NoError(t, NewJSONWriter().Write(&buf, result))

	assert.Contains(t, buf.String(), "v=1&t=2")
}

func TestNewError_HidesCause(t *testing.T) {
	err := apperrors.NewAppError(apperrors.ErrCacheRead, "Failed to read token", errors.New("password=secret"))
	result := NewError("token", err, nil)

	assert.Equal(t, apperrors.ErrCacheRead, result.Error.Code)
	assert.NotContains(t, result.Error.Message, "secret")
}

func TestNewError_PlainErrorIsHandlerFault(t *testing.T) {
	result := NewError("x", errors.New("boom"), nil)
	assert.Equal(t, apperrors.ErrHandlerFault, result.Error.Code)
	assert.Equal(t, "boom", result.Error.Message)
}
