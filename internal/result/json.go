package result

import (
	"encoding/json"
	"fmt"
)

type reasonDocument struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
	Cause   string `json:"cause,omitempty"`
}

type entryDocument struct {
	Key   string `json:"key"`
	Value any    `json:"value"`
}

type nodeDocument struct {
	Title    string           `json:"title"`
	Outcome  string           `json:"outcome"`
	Value    any              `json:"value,omitempty"`
	Reasons  []reasonDocument `json:"reasons,omitempty"`
	Metadata []entryDocument  `json:"metadata,omitempty"`
	Failures []string         `json:"failures,omitempty"`
	Children []nodeDocument   `json:"children,omitempty"`
}

// MarshalJSON renders the whole tree. Causes are rendered as their error
// strings and metadata keeps its insertion order.
func (r *Result[T]) MarshalJSON() ([]byte, error) {
	return json.Marshal(toDocument(r))
}

// MarshalNode renders any node, including ones not created by this package
func MarshalNode(n Node) ([]byte, error) {
	return json.MarshalIndent(toDocument(n), "", "  ")
}

func toDocument(n Node) nodeDocument {
	doc := nodeDocument{
		Title:   n.Title(),
		Outcome: n.Outcome().String(),
	}
	if v, ok := n.AnyValue(); ok {
		if _, isNone := v.(None); !isNone {
			doc.Value = jsonSafe(v)
		}
	}
	for _, reason := range n.Reasons() {
		rd := reasonDocument{Kind: reason.Kind.String(), Message: reason.Message}
		if reason.Cause != nil {
			rd.Cause = reason.Cause.Error()
		}
		doc.Reasons = append(doc.Reasons, rd)
	}
	for _, e := range n.Metadata() {
		doc.Metadata = append(doc.Metadata, entryDocument{Key: e.Key, Value: jsonSafe(e.Value)})
	}
	for _, f := range n.Failures() {
		doc.Failures = append(doc.Failures, f.Error())
	}
	for _, c := range n.Children() {
		doc.Children = append(doc.Children, toDocument(c))
	}
	return doc
}

// jsonSafe falls back to the fmt rendering of values encoding/json rejects
func jsonSafe(v any) any {
	if err, ok := v.(error); ok {
		return err.Error()
	}
	if _, err := json.Marshal(v); err != nil {
		return fmt.Sprintf("%v", v)
	}
	return v
}
