// Package toolcall разбирает маркеры вызова функций в тексте модели:
// [FUNC_CALL:name=<tool>, key=value, ...].
package toolcall

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Call: разобранный вызов: имя инструмента и типизированные аргументы.
// Значения аргументов: bool, nil, int64, float64, map[string]any, []any или string.
type Call struct {
	Name string
	Args map[string]any
	// Raw: исходное тело маркера, используется в сообщениях об ошибках.
	Raw string
}

// MalformedCallError: тело маркера не соответствует грамматике.
type MalformedCallError struct {
	Raw    string
	Reason string
}

func (e *MalformedCallError) Error() string {
	return fmt.Sprintf("malformed call %q: %s", e.Raw, e.Reason)
}

var (
	headPattern  = regexp.MustCompile(`^name\s*=`)
	keyBoundary  = regexp.MustCompile(`,\s*([A-Za-z_][A-Za-z0-9_]*)\s*=`)
	identPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)
	intPattern   = regexp.MustCompile(`^[+-]?\d+$`)
	floatPattern = regexp.MustCompile(`^[+-]?(\d+\.\d*|\.\d+|\d+)([eE][+-]?\d+)?$`)
)

// Parse разбирает тело одного маркера вида "name=<tool>, k1=v1, k2=v2".
// Значение тянется до следующего ", key=" или до конца строки.
func Parse(body string) (Call, error) {
	raw := strings.TrimSpace(body)
	if raw == "" {
		return Call{}, &MalformedCallError{Raw: body, Reason: "empty call"}
	}

	head := headPattern.FindStringIndex(raw)
	if head == nil {
		return Call{}, &MalformedCallError{Raw: raw, Reason: `call must start with "name="`}
	}
	rest := raw[head[1]:]

	bounds := keyBoundary.FindAllStringSubmatchIndex(rest, -1)

	nameEnd := len(rest)
	if len(bounds) > 0 {
		nameEnd = bounds[0][0]
	}
	name := unquote(strings.TrimSpace(rest[:nameEnd]))
	if !identPattern.MatchString(name) {
		return Call{}, &MalformedCallError{Raw: raw, Reason: fmt.Sprintf("invalid tool name %q", name)}
	}

	args := make(map[string]any, len(bounds))
	for i, b := range bounds {
		key := rest[b[2]:b[3]]
		valueEnd := len(rest)
		if i+1 < len(bounds) {
			valueEnd = bounds[i+1][0]
		}
		args[key] = Coerce(rest[b[1]:valueEnd])
	}

	return Call{Name: name, Args: args, Raw: raw}, nil
}

// Coerce приводит литерал к типу; побеждает первое совпадение:
// true/false, null/none, целое, десятичное, JSON-объект/массив, строка без одной пары кавычек.
func Coerce(value string) any {
	v := strings.TrimSpace(value)
	lower := strings.ToLower(v)

	switch lower {
	case "true":
		return true
	case "false":
		return false
	case "null", "none":
		return nil
	}

	if intPattern.MatchString(v) {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	if floatPattern.MatchString(v) {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}

	if isWrapped(v, '{', '}') || isWrapped(v, '[', ']') {
		var structured any
		if err := json.Unmarshal([]byte(v), &structured); err == nil {
			return structured
		}
		return v
	}

	return unquote(v)
}

func unquote(v string) string {
	if isWrapped(v, '"', '"') || isWrapped(v, '\'', '\'') {
		return v[1 : len(v)-1]
	}
	return v
}

func isWrapped(v string, open, close byte) bool {
	return len(v) >= 2 && v[0] == open && v[len(v)-1] == close
}
