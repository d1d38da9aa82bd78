package analysis

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/smartgallery/smartgallery/internal/config"
	"github.com/smartgallery/smartgallery/pkg/log"
)

// Analyzer produces an analysis result for an image file. Implementations
// never fail past this boundary; callers receive a well-shaped result for
// every input.
type Analyzer interface {
	AnalyzeImage(ctx context.Context, path string) Result
}

var (
	errReadFailed  = errors.New("image read failed")
	errUnreachable = errors.New("endpoint unreachable")
	errMalformed   = errors.New("malformed response")
)

// Engine implements Analyzer against an Ollama-style generate endpoint, with
// a mock mode that answers instantly without any I/O.
type Engine struct {
	cfg    config.AIConfig
	client *http.Client
	log    log.Logger
}

func NewEngine(cfg config.AIConfig, logger log.Logger) *Engine {
	timeout, err := time.ParseDuration(cfg.Timeout)
	if err != nil || timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &Engine{
		cfg:    cfg,
		client: &http.Client{Timeout: timeout},
		log:    logger,
	}
}

// AnalyzeImage returns analysis data for an image path. In mock mode the
// response is instantaneous. In live mode every failure is collapsed into
// the placeholder payload with a marker description.
func (e *Engine) AnalyzeImage(ctx context.Context, path string) Result {
	if !e.cfg.UseRealAI {
		return Placeholder()
	}

	result, err := e.analyze(ctx, path)
	switch {
	case err == nil:
		return result
	case errors.Is(err, errReadFailed):
		e.log.Warn("Failed to read image %s: %v", path, err)
		return placeholderWith(MarkerReadFailed)
	case errors.Is(err, errUnreachable):
		e.log.Warn("AI endpoint %s unreachable: %v", e.cfg.Endpoint, err)
		return placeholderWith(MarkerUnreachable)
	default:
		e.log.Warn("Unexpected AI response for %s: %v", path, err)
		return placeholderWith(MarkerUnexpected)
	}
}

type generateRequest struct {
	Model   string          `json:"model"`
	Prompt  string          `json:"prompt"`
	Stream  bool            `json:"stream"`
	Options generateOptions `json:"options"`
	Input   generateInput   `json:"input"`
}

type generateOptions struct {
	Temperature float64 `json:"temperature"`
}

type generateInput struct {
	Image string `json:"image"`
}

// analyze runs the live analysis as an ordered sequence of fallible steps.
// Every error wraps one of the sentinel errors above so AnalyzeImage can map
// it to the matching marker.
func (e *Engine) analyze(ctx context.Context, path string) (Result, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return Result{}, fmt.Errorf("%w: %v", errReadFailed, err)
	}

	payload, err := json.Marshal(generateRequest{
		Model:   e.cfg.Model,
		Prompt:  e.cfg.SystemPrompt,
		Stream:  false,
		Options: generateOptions{Temperature: 0.2},
		Input:   generateInput{Image: base64.StdEncoding.EncodeToString(content)},
	})
	if err != nil {
		return Result{}, fmt.Errorf("%w: %v", errMalformed, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.cfg.Endpoint, bytes.NewReader(payload))
	if err != nil {
		return Result{}, fmt.Errorf("%w: %v", errUnreachable, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := e.client.Do(req)
	if err != nil {
		return Result{}, fmt.Errorf("%w: %v", errUnreachable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return Result{}, fmt.Errorf("%w: status %d", errUnreachable, resp.StatusCode)
	}

	// The generate endpoint answers with a flat envelope whose "response"
	// field holds text. In JSON mode that text is itself a JSON document.
	var envelope struct {
		Response string `json:"response"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return Result{}, fmt.Errorf("%w: envelope: %v", errMalformed, err)
	}

	return e.parseInner(envelope.Response)
}

// parseInner decodes the nested JSON document carried in the envelope's
// response field, substituting placeholder values for missing or misshapen
// fields.
func (e *Engine) parseInner(text string) (Result, error) {
	var inner struct {
		Description string          `json:"description"`
		Caption     string          `json:"caption"`
		Tags        json.RawMessage `json:"tags"`
		NSFW        json.RawMessage `json:"nsfw"`
	}
	if err := json.Unmarshal([]byte(text), &inner); err != nil {
		return Result{}, fmt.Errorf("%w: %v", errMalformed, err)
	}

	result := Result{Description: inner.Description}
	if result.Description == "" {
		result.Description = inner.Caption
	}
	if result.Description == "" {
		result.Description = placeholderDescription
	}

	result.Tags = append([]string(nil), placeholderTags...)
	if len(inner.Tags) > 0 && string(inner.Tags) != "null" {
		var tags []string
		if err := json.Unmarshal(inner.Tags, &tags); err == nil {
			result.Tags = tags
		}
	}

	if len(inner.NSFW) > 0 {
		// Non-boolean values are treated as false rather than failing
		var nsfw bool
		if err := json.Unmarshal(inner.NSFW, &nsfw); err == nil {
			result.NSFW = nsfw
		}
	}

	return result, nil
}
