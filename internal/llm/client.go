package llm

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/valyala/fasthttp"

	"bank-assistant/internal/models"
	"bank-assistant/internal/utils"
)

var ErrEmptyReply = errors.New("модель вернула пустой ответ")

// StatusError: сервер модели ответил не 2xx.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("llm: status %d: %s", e.Code, e.Body)
}

type Config struct {
	URL         string
	Model       string
	Temperature float64
	Timeout     time.Duration
}

// Client ходит в чат-модель по HTTP и собирает потоковый (SSE) ответ в одну строку.
type Client struct {
	cfg  Config
	http *fasthttp.Client
}

func NewClient(cfg Config) *Client {
	return &Client{cfg: cfg, http: &fasthttp.Client{Name: "bank-assistant"}}
}

// WithDial подменяет способ соединения, нужен для тестов с in-memory listener.
func (c *Client) WithDial(dial fasthttp.DialFunc) *Client {
	c.http.Dial = dial
	return c
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []models.Turn `json:"messages"`
	Temperature float64       `json:"temperature"`
	Stream      bool          `json:"stream"`
}

type streamChunk struct {
	Choices []struct {
		Delta struct {
			Content string `json:"content"`
		} `json:"delta"`
	} `json:"choices"`
}

func (c *Client) Respond(ctx context.Context, turns []models.Turn) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	payload, err := json.Marshal(chatRequest{
		Model:       c.cfg.Model,
		Messages:    turns,
		Temperature: c.cfg.Temperature,
		Stream:      true,
	})
	if err != nil {
		return "", fmt.Errorf("ошибка кодирования запроса: %w", err)
	}

	deadline := c.deadline(ctx)

	type result struct {
		text string
		err  error
	}
	done := make(chan result, 1)
	started := time.Now()

	go func() {
		req := fasthttp.AcquireRequest()
		resp := fasthttp.AcquireResponse()
		defer fasthttp.ReleaseRequest(req)
		defer fasthttp.ReleaseResponse(resp)

		req.SetRequestURI(c.cfg.URL)
		req.Header.SetMethod(fasthttp.MethodPost)
		req.Header.SetContentType("application/json")
		req.Header.Set("Accept", "text/event-stream")
		req.SetBody(payload)

		var err error
		if deadline.IsZero() {
			err = c.http.Do(req, resp)
		} else {
			err = c.http.DoDeadline(req, resp, deadline)
		}
		if err != nil {
			done <- result{err: fmt.Errorf("ошибка запроса к модели: %w", err)}
			return
		}
		if code := resp.StatusCode(); code < 200 || code > 299 {
			done <- result{err: &StatusError{Code: code, Body: truncate(string(resp.Body()), 200)}}
			return
		}
		text, err := ParseStream(bytes.NewReader(resp.Body()))
		done <- result{text: text, err: err}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case r := <-done:
		if r.err != nil {
			if ctx.Err() != nil {
				return "", ctx.Err()
			}
			utils.LogError("LLM", "Запрос к модели не выполнен", r.err)
			return "", r.err
		}
		if strings.TrimSpace(r.text) == "" {
			return "", ErrEmptyReply
		}
		utils.LogDebug("LLM", "Ответ модели за %v: %d симв.", time.Since(started), len([]rune(r.text)))
		return r.text, nil
	}
}

// deadline: более ранний из дедлайна контекста и Timeout; нулевой, если нет обоих.
func (c *Client) deadline(ctx context.Context) time.Time {
	var deadline time.Time
	if c.cfg.Timeout > 0 {
		deadline = time.Now().Add(c.cfg.Timeout)
	}
	if d, ok := ctx.Deadline(); ok && (deadline.IsZero() || d.Before(deadline)) {
		deadline = d
	}
	return deadline
}

// ParseStream склеивает choices[0].delta.content из строк "data:" до "[DONE]".
// Строки, которые не разбираются как JSON, пропускаются.
func ParseStream(r io.Reader) (string, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 4*1024*1024)

	var sb strings.Builder
	for scanner.Scan() {
		line := scanner.Text()
		data, ok := strings.CutPrefix(line, "data:")
		if !ok {
			continue
		}
		data = strings.TrimSpace(data)
		if data == "[DONE]" {
			break
		}
		var chunk streamChunk
		if err := json.Unmarshal([]byte(data), &chunk); err != nil {
			continue
		}
		if len(chunk.Choices) > 0 {
			sb.WriteString(chunk.Choices[0].Delta.Content)
		}
	}
	if err := scanner.Err(); err != nil {
		return "", fmt.Errorf("ошибка чтения потока: %w", err)
	}
	return sb.String(), nil
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}
