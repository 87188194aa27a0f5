package tools

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Args: аргументы вызова после фильтрации по allow-list.
type Args map[string]any

// ArgError: аргумент есть, но его нельзя привести к нужному типу, или обязательного нет.
type ArgError struct {
	Key    string
	Reason string
}

func (e *ArgError) Error() string {
	return fmt.Sprintf("argument %s: %s", e.Key, e.Reason)
}

func (a Args) has(key string) bool {
	v, ok := a[key]
	return ok && v != nil
}

// Int читает целое; def возвращается, если аргумента нет.
func (a Args) Int(key string, def int64) (int64, error) {
	if !a.has(key) {
		return def, nil
	}
	switch v := a[key].(type) {
	case int64:
		return v, nil
	case int:
		return int64(v), nil
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) || v != math.Trunc(v) || math.Abs(v) >= math.MaxInt64 {
			return 0, &ArgError{Key: key, Reason: "expected integer"}
		}
		return int64(v), nil
	case string:
		n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		if err != nil {
			return 0, &ArgError{Key: key, Reason: "expected integer"}
		}
		return n, nil
	default:
		return 0, &ArgError{Key: key, Reason: fmt.Sprintf("expected integer, got %T", v)}
	}
}

// Text читает строку; числа и bool переводятся в текст.
func (a Args) Text(key, def string) (string, error) {
	if !a.has(key) {
		return def, nil
	}
	switch v := a[key].(type) {
	case string:
		return strings.TrimSpace(v), nil
	case int64:
		return strconv.FormatInt(v, 10), nil
	case int:
		return strconv.Itoa(v), nil
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), nil
	case bool:
		return strconv.FormatBool(v), nil
	default:
		return "", &ArgError{Key: key, Reason: fmt.Sprintf("expected text, got %T", v)}
	}
}

// RequiredText: как Text, но пустое значение считается ошибкой.
func (a Args) RequiredText(key string) (string, error) {
	s, err := a.Text(key, "")
	if err != nil {
		return "", err
	}
	if s == "" {
		return "", &ArgError{Key: key, Reason: "required"}
	}
	return s, nil
}

// TextList принимает JSON-список строк или строку через запятую.
func (a Args) TextList(key string) ([]string, error) {
	if !a.has(key) {
		return nil, nil
	}
	var items []string
	switch v := a[key].(type) {
	case []any:
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, &ArgError{Key: key, Reason: "expected list of strings"}
			}
			items = append(items, s)
		}
	case []string:
		items = v
	case string:
		items = strings.Split(strings.Trim(v, "[]"), ",")
	default:
		return nil, &ArgError{Key: key, Reason: fmt.Sprintf("expected list, got %T", v)}
	}

	out := make([]string, 0, len(items))
	for _, s := range items {
		s = strings.Trim(strings.TrimSpace(s), `"'`)
		if s != "" {
			out = append(out, s)
		}
	}
	return out, nil
}
