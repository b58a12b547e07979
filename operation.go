package ragproxy

import (
	"strings"

	"github.com/RichardKnop/ragproxy/pkg/fields"
)

// Operation is the canonical record of one ingestion operation, one per
// uploaded file. Immutable once built.
type Operation struct {
	Name         string `json:"operation"`
	DocumentName string `json:"document_name"`
	DisplayName  string `json:"display_name"`
	Store        string `json:"store"`
	Done         bool   `json:"done"`
	Error        string `json:"error"`
}

// NormalizeOperation flattens a raw ingestion operation into an Operation.
// It never fails: fields missing from a malformed or partial payload degrade
// to their zero values.
func NormalizeOperation(raw RawValue, fallbackDisplayName string) Operation {
	response := fields.Resolve(raw, "response", "result")

	var (
		documentName = fields.String(fields.Resolve(response, "document_name", "documentName", "name"))
		store        = fields.String(fields.Resolve(response, "parent", "file_search_store_name", "fileSearchStoreName"))
		displayName  = fields.String(fields.Resolve(response, "display_name", "displayName"))
	)
	if displayName == "" {
		displayName = fallbackDisplayName
	}
	if displayName == "" {
		displayName = lastPathSegment(documentName)
	}

	return Operation{
		Name:         fields.String(fields.Resolve(raw, "name")),
		DocumentName: documentName,
		DisplayName:  displayName,
		Store:        store,
		Done:         fields.Bool(fields.Resolve(raw, "done")),
		Error:        operationError(raw),
	}
}

// operationError renders the operation's error field, preferring the message
// of a mapping-shaped error over its string form.
func operationError(raw RawValue) string {
	errValue := fields.Resolve(raw, "error")
	if errValue == nil {
		return ""
	}
	if fields.IsMapping(errValue) {
		if msg := fields.String(fields.Resolve(errValue, "message")); msg != "" {
			return msg
		}
	}
	return fields.String(errValue)
}

func lastPathSegment(name string) string {
	if name == "" {
		return ""
	}
	if idx := strings.LastIndexByte(name, '/'); idx >= 0 {
		return name[idx+1:]
	}
	return name
}
