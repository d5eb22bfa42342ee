// Package wire normalizes the task service's payloads.
//
// The service's responses come in several historical shapes: a bare task,
// a bare task list, or an envelope {success, data, message} wrapping
// either. Field names arrive snake_cased and leave snake_cased, while the
// rest of the client speaks camelCase. This package detects the shape by
// structural inspection and hands callers canonical values, so nothing
// outside it ever branches on envelope shape or key style.
package wire

import (
	"encoding/json"
	"fmt"
	"strings"

	"taskhub/internal/task"
)

// NormalizeTask decodes a response body holding one task, in any of the
// known shapes, into a canonical task. The returned field set names the
// keys the payload actually carried, so callers merging a partial echo
// can skip fields the service omitted.
func NormalizeTask(raw []byte) (task.Task, task.Fields, error) {
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return task.Task{}, nil, fmt.Errorf("decode task response: %w", err)
	}
	m, ok := v.(map[string]any)
	if !ok {
		return task.Task{}, nil, fmt.Errorf("unexpected task response shape")
	}
	if inner, ok := envelopedTask(m); ok {
		m = inner
	}
	return taskFromMap(m)
}

// NormalizeTaskList decodes a response body holding tasks, in any of the
// known shapes, into a canonical list. A single-task payload becomes a
// one-element list.
func NormalizeTaskList(raw []byte) ([]task.Task, error) {
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, fmt.Errorf("decode task list response: %w", err)
	}

	switch payload := v.(type) {
	case []any:
		return tasksFromSlice(payload)
	case map[string]any:
		if data, ok := payload["data"].(map[string]any); ok {
			if items, ok := data["tasks"].([]any); ok {
				return tasksFromSlice(items)
			}
			if inner, ok := data["task"].(map[string]any); ok {
				t, _, err := taskFromMap(inner)
				if err != nil {
					return nil, err
				}
				return []task.Task{t}, nil
			}
		}
		t, _, err := taskFromMap(payload)
		if err != nil {
			return nil, err
		}
		return []task.Task{t}, nil
	default:
		return nil, fmt.Errorf("unexpected task list response shape")
	}
}

// ToWireFormat converts an outgoing camelCase payload to the service's
// snake_case convention.
func ToWireFormat(m map[string]any) map[string]any {
	return SnakeKeys(m)
}

// DecodeError extracts a human-readable message from a failed response
// body: the structured message field when the body parses, the raw text
// when it does not, a generic status message when there is nothing else.
func DecodeError(status int, body []byte) string {
	text := strings.TrimSpace(string(body))
	if text == "" {
		return fmt.Sprintf("HTTP error, status %d", status)
	}
	var m map[string]any
	if err := json.Unmarshal([]byte(text), &m); err != nil {
		return text
	}
	if msg, ok := m["message"].(string); ok && msg != "" {
		return msg
	}
	return fmt.Sprintf("HTTP error, status %d", status)
}

// CamelKeys returns a copy of m with snake_case keys converted to
// camelCase. Unknown keys convert by the same rule; keys with no
// underscores pass through unchanged. The conversion is shallow: task
// payloads are flat.
func CamelKeys(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[camelKey(k)] = v
	}
	return out
}

// SnakeKeys is the inverse of CamelKeys.
func SnakeKeys(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[snakeKey(k)] = v
	}
	return out
}

// camelKey converts "due_date" to "dueDate". Only an interior underscore
// followed by a lowercase letter folds; a leading one, as in "_private",
// passes through.
func camelKey(k string) string {
	var b strings.Builder
	b.Grow(len(k))
	for i := 0; i < len(k); i++ {
		if k[i] == '_' && i > 0 && i+1 < len(k) && k[i+1] >= 'a' && k[i+1] <= 'z' {
			b.WriteByte(k[i+1] - 'a' + 'A')
			i++
			continue
		}
		b.WriteByte(k[i])
	}
	return b.String()
}

// snakeKey converts "dueDate" to "due_date".
func snakeKey(k string) string {
	var b strings.Builder
	b.Grow(len(k) + 2)
	for i := 0; i < len(k); i++ {
		if k[i] >= 'A' && k[i] <= 'Z' {
			b.WriteByte('_')
			b.WriteByte(k[i] - 'A' + 'a')
			continue
		}
		b.WriteByte(k[i])
	}
	return b.String()
}

// envelopedTask unwraps {data: {task: {...}}} payloads.
func envelopedTask(m map[string]any) (map[string]any, bool) {
	data, ok := m["data"].(map[string]any)
	if !ok {
		return nil, false
	}
	inner, ok := data["task"].(map[string]any)
	return inner, ok
}

func taskFromMap(m map[string]any) (task.Task, task.Fields, error) {
	camel := CamelKeys(m)
	b, err := json.Marshal(camel)
	if err != nil {
		return task.Task{}, nil, fmt.Errorf("re-encode task payload: %w", err)
	}
	var t task.Task
	if err := json.Unmarshal(b, &t); err != nil {
		return task.Task{}, nil, fmt.Errorf("decode task fields: %w", err)
	}
	fields := make(task.Fields, len(camel))
	for k := range camel {
		fields[k] = true
	}
	return t, fields, nil
}

func tasksFromSlice(items []any) ([]task.Task, error) {
	tasks := make([]task.Task, 0, len(items))
	for _, item := range items {
		m, ok := item.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("task list element is not an object")
		}
		t, _, err := taskFromMap(m)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, nil
}
