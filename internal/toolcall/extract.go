package toolcall

import "strings"

// MarkerPrefix открывает маркер вызова функции в ответе модели.
const MarkerPrefix = "[FUNC_CALL:"

// Extract возвращает тела всех маркеров в порядке появления, без пересечений.
// Маркер закрывается первой ']' вне вложенных скобок и кавычек, поэтому
// JSON-массивы внутри аргументов не обрывают его. Если скобки или кавычки
// не сбалансированы, маркер закрывает просто первая ']'. Поиск не заходит
// за начало следующего маркера; маркер без ']' до него пропускается.
func Extract(text string) []string {
	var bodies []string
	pos := 0
	for {
		start := strings.Index(text[pos:], MarkerPrefix)
		if start < 0 {
			return bodies
		}
		bodyStart := pos + start + len(MarkerPrefix)

		limit := len(text)
		if next := strings.Index(text[bodyStart:], MarkerPrefix); next >= 0 {
			limit = bodyStart + next
		}

		end := closingBracket(text[:limit], bodyStart)
		if end < 0 {
			if i := strings.IndexByte(text[bodyStart:limit], ']'); i >= 0 {
				end = bodyStart + i
			}
		}
		if end < 0 {
			pos = limit
			continue
		}
		bodies = append(bodies, strings.TrimSpace(text[bodyStart:end]))
		pos = end + 1
	}
}

func closingBracket(text string, from int) int {
	depth := 0
	var quote byte
	for i := from; i < len(text); i++ {
		c := text[i]
		if quote != 0 {
			switch c {
			case '\\':
				i++
			case quote:
				quote = 0
			}
			continue
		}
		switch c {
		case '"':
			quote = c
		case '[', '{':
			depth++
		case '}':
			if depth > 0 {
				depth--
			}
		case ']':
			if depth == 0 {
				return i
			}
			depth--
		}
	}
	return -1
}
