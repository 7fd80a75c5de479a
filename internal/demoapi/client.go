package demoapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/stevehiehn/demoprobe/internal/console"
	checkerrors "github.com/stevehiehn/demoprobe/internal/errors"
)

// DefaultPathPrefix is where the demo plugin is mounted on the API host.
const DefaultPathPrefix = "/api/webrobot/api/demo"

// Endpoints builds the URLs of the demo plugin routes.
type Endpoints struct {
	BaseURL    string
	PathPrefix string
}

func (e Endpoints) root() string {
	prefix := e.PathPrefix
	if prefix == "" {
		prefix = DefaultPathPrefix
	}
	return strings.TrimRight(e.BaseURL, "/") + "/" + strings.Trim(prefix, "/")
}

func (e Endpoints) Info() string { return e.root() + "/info" }

func (e Endpoints) List() string { return e.root() + "/list" }

// Execute returns the execute route for a pipeline, path-escaping the name.
func (e Endpoints) Execute(pipelineName string) string {
	return e.root() + "/execute/" + url.PathEscape(pipelineName)
}

// Client talks to the demo plugin. It never retries.
type Client struct {
	endpoints Endpoints
	http      *http.Client
	out       console.Printer
	logger    *slog.Logger
	limit     int
	resolve   Resolver
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithPrinter sets where progress lines go.
func WithPrinter(p console.Printer) Option {
	return func(c *Client) { c.out = p }
}

// WithLogger sets the diagnostic logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// WithExecuteLimit sets the limit parameter sent to the execute endpoint.
func WithExecuteLimit(n int) Option {
	return func(c *Client) { c.limit = n }
}

// WithResolver sets how list entries are labelled in the printout.
func WithResolver(r Resolver) Option {
	return func(c *Client) { c.resolve = r }
}

// NewClient creates a client. The default HTTP client has no timeout, so
// only the transport defaults and the caller's context bound a request.
func NewClient(endpoints Endpoints, opts ...Option) *Client {
	c := &Client{
		endpoints: endpoints,
		http:      &http.Client{},
		out:       console.Discard(),
		logger:    slog.New(slog.DiscardHandler),
		limit:     10,
		resolve:   DefaultResolve,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Endpoints returns the routes this client calls.
func (c *Client) Endpoints() Endpoints {
	return c.endpoints
}

// Call performs one request and classifies the outcome. It never returns an
// error: failures are described by the result.
func (c *Client) Call(ctx context.Context, name, method, rawURL string, body any) *EndpointResult {
	res := &EndpointResult{Name: name, Method: method, URL: rawURL}
	c.out.Info("Testing %s...", name)
	c.out.Detail("  URL: %s", rawURL)

	start := time.Now()
	defer func() {
		elapsed := time.Since(start)
		res.Duration = elapsed.Round(time.Millisecond).String()
		c.logger.Debug("endpoint call finished",
			slog.String("endpoint", name),
			slog.String("method", method),
			slog.Int("status", res.Status),
			slog.Bool("success", res.Success),
			slog.Duration("duration", elapsed),
		)
	}()

	var bodyReader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return c.transportFailure(res, fmt.Errorf("encoding request body: %w", err))
		}
		bodyReader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, rawURL, bodyReader)
	if err != nil {
		return c.transportFailure(res, fmt.Errorf("creating request: %w", err))
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return c.transportFailure(res, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return c.transportFailure(res, fmt.Errorf("reading response: %w", err))
	}

	ok := resp.StatusCode >= 200 && resp.StatusCode < 300
	res.Status = resp.StatusCode
	if ok {
		c.out.Line("  Status: %d OK", resp.StatusCode)
	} else {
		c.out.Line("  Status: %d ERROR", resp.StatusCode)
	}

	if !json.Valid(respBody) {
		res.Err = checkerrors.NewParseError(name, resp.StatusCode)
		res.Error = res.Err.Message
		c.out.Error("  Failed to parse JSON response: %s", string(respBody))
		return res
	}
	res.Data = json.RawMessage(respBody)

	if !ok {
		var eb errorBody
		_ = json.Unmarshal(respBody, &eb)
		msg, _ := FirstPresent(eb.Error, eb.Message)
		if msg == "" {
			msg = "Unknown error"
		}
		res.Err = checkerrors.NewStatusError(name, resp.StatusCode, msg)
		c.out.Error("  Error: %s", msg)
		return res
	}

	res.Success = true
	c.out.Success("%s - Success", name)
	return res
}

func (c *Client) transportFailure(res *EndpointResult, err error) *EndpointResult {
	res.Err = checkerrors.NewTransportError(res.Name, err.Error())
	res.Error = err.Error()
	c.out.Error("%s - Failed: %s", res.Name, err)
	return res
}

// FetchInfo calls the info endpoint and prints the plugin details.
func (c *Client) FetchInfo(ctx context.Context) *EndpointResult {
	c.out.Heading("Testing Demo Plugin Info Endpoint")
	res := c.Call(ctx, "Plugin Info", http.MethodGet, c.endpoints.Info(), nil)
	if !res.Success || res.Data == nil {
		return res
	}

	var info InfoResponse
	_ = json.Unmarshal(res.Data, &info)
	c.out.Line("  Plugin Name: %s", info.PluginName.Or("N/A"))
	c.out.Line("  Plugin Version: %s", info.PluginVersion.Or("N/A"))
	c.out.Line("  Pipeline Count: %s", info.PipelineCount.Or("0"))
	c.out.Line("  Status: %s", info.Status.Or("N/A"))
	if len(info.Endpoints) > 0 {
		c.out.Line("  Available Endpoints:")
		for _, ep := range info.Endpoints {
			c.out.Detail("    - %s", ep)
		}
	}
	return res
}

// ListOutcome is the result of FetchList.
type ListOutcome struct {
	Success   bool              `json:"success"`
	Pipelines []PipelineSummary `json:"pipelines"`
	Result    *EndpointResult   `json:"result"`
}

// FetchList calls the list endpoint and extracts the demos array.
func (c *Client) FetchList(ctx context.Context) *ListOutcome {
	c.out.Heading("Testing Demo Plugin List Endpoint")
	res := c.Call(ctx, "List Pipelines", http.MethodGet, c.endpoints.List(), nil)
	if !res.Success || res.Data == nil {
		return &ListOutcome{Success: false, Pipelines: []PipelineSummary{}, Result: res}
	}

	if !isObject(res.Data) {
		res.Success = false
		res.Err = checkerrors.NewShapeError(res.Name, res.Status, "Response body is not a JSON object")
		res.Error = res.Err.Message
		c.out.Error("  %s", res.Error)
		return &ListOutcome{Success: false, Pipelines: []PipelineSummary{}, Result: res}
	}

	var list ListResponse
	_ = json.Unmarshal(res.Data, &list)
	if list.Demos == nil {
		list.Demos = []PipelineSummary{}
	}

	c.out.Line("  Total Pipelines: %s", list.Total.Or("0"))
	if len(list.Demos) > 0 {
		c.out.Success("  Available Pipelines:")
		for i, demo := range list.Demos {
			c.out.Line("    %d. %s", i+1, c.label("name", demo, "Unknown"))
			c.out.Line("       ID: %s", c.label("id", demo, "N/A"))
			c.out.Line("       Description: %s", c.label("description", demo, "No description"))
			if stages, ok := c.resolve("stages", demo); ok {
				c.out.Line("       Stages: %s", stages)
			}
		}
	} else {
		c.out.Warning("  No pipelines available")
	}
	if list.Message.Set {
		c.out.Line("  Message: %s", list.Message.Value)
	}

	return &ListOutcome{Success: true, Pipelines: list.Demos, Result: res}
}

func (c *Client) label(field string, p PipelineSummary, fallback string) string {
	if v, ok := c.resolve(field, p); ok {
		return v
	}
	return fallback
}

func isObject(data json.RawMessage) bool {
	trimmed := bytes.TrimSpace(data)
	return len(trimmed) > 0 && trimmed[0] == '{'
}

// ExecutePipeline posts an execution request for the named pipeline.
func (c *Client) ExecutePipeline(ctx context.Context, pipelineName string) *EndpointResult {
	c.out.Heading("Testing Demo Plugin Execute Endpoint")
	c.out.Line("  Pipeline: %s", pipelineName)

	body := ExecuteRequest{Parameters: ExecuteParameters{Limit: c.limit}}
	res := c.Call(ctx, "Execute Pipeline", http.MethodPost, c.endpoints.Execute(pipelineName), body)
	if !res.Success || res.Data == nil {
		return res
	}

	var exec ExecuteResponse
	if err := json.Unmarshal(res.Data, &exec); err != nil {
		c.logger.Warn("execute response is not an object", slog.String("error", err.Error()))
	}
	c.out.Line("  Pipeline Name: %s", exec.PipelineName.Or("N/A"))
	c.out.Line("  Job ID: %s", exec.JobID.Or("N/A"))
	c.out.Line("  Agent ID: %s", exec.AgentID.Or("N/A"))
	c.out.Line("  Status: %s", exec.Status.Or("N/A"))
	c.out.Line("  Limit: %s", exec.Limit.Or("N/A"))
	if exec.Message.Set {
		c.out.Line("  Message: %s", exec.Message.Value)
	}
	if exec.Note.Set {
		c.out.Line("  Note: %s", exec.Note.Value)
	}
	return res
}
