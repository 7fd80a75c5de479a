package demoapi

import (
	"bytes"
	"encoding/json"
	"strconv"

	checkerrors "github.com/stevehiehn/demoprobe/internal/errors"
)

// EndpointResult is the outcome of a single HTTP call.
type EndpointResult struct {
	Name     string                  `json:"name"`
	Method   string                  `json:"method"`
	URL      string                  `json:"url"`
	Success  bool                    `json:"success"`
	Status   int                     `json:"status,omitempty"` // 0 when no response was received
	Data     json.RawMessage         `json:"data,omitempty"`
	Error    string                  `json:"error,omitempty"`
	Err      *checkerrors.CheckError `json:"error_detail,omitempty"`
	Duration string                  `json:"duration,omitempty"`
}

// OptString is a JSON field that may be absent. Present-but-empty strings are
// present. Non-string scalars keep their JSON text, and null is absent.
type OptString struct {
	Value string
	Set   bool
}

// Some returns a present OptString.
func Some(v string) OptString {
	return OptString{Value: v, Set: true}
}

func (o *OptString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*o = OptString{}
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err == nil {
			*o = Some(s)
			return nil
		}
	}
	*o = Some(string(data))
	return nil
}

func (o OptString) MarshalJSON() ([]byte, error) {
	if !o.Set {
		return []byte("null"), nil
	}
	return json.Marshal(o.Value)
}

// Or returns the value, or fallback when absent.
func (o OptString) Or(fallback string) string {
	if o.Set {
		return o.Value
	}
	return fallback
}

// FirstPresent returns the first present value in argument order. The boolean
// is false when every candidate is absent.
func FirstPresent(candidates ...OptString) (string, bool) {
	for _, c := range candidates {
		if c.Set {
			return c.Value, true
		}
	}
	return "", false
}

// PipelineSummary is one entry of the list endpoint's demos array.
type PipelineSummary struct {
	PipelineName OptString         `json:"pipeline_name"`
	Name         OptString         `json:"name"`
	DisplayName  OptString         `json:"display_name"`
	Description  OptString         `json:"description"`
	Source       OptString         `json:"source"`
	DocLink      OptString         `json:"doc_link"`
	Stages       []json.RawMessage `json:"stages,omitempty"`
	HasStages    bool              `json:"-"`
}

// UnmarshalJSON decodes a summary without ever failing on unexpected field
// types; anything unusable is treated as absent.
func (p *PipelineSummary) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		*p = PipelineSummary{}
		return nil
	}
	out := PipelineSummary{}
	for key, dst := range map[string]*OptString{
		"pipeline_name": &out.PipelineName,
		"name":          &out.Name,
		"display_name":  &out.DisplayName,
		"description":   &out.Description,
		"source":        &out.Source,
		"doc_link":      &out.DocLink,
	} {
		if raw, ok := fields[key]; ok {
			_ = dst.UnmarshalJSON(raw)
		}
	}
	if raw, ok := fields["stages"]; ok {
		var stages []json.RawMessage
		if err := json.Unmarshal(raw, &stages); err == nil && stages != nil {
			out.Stages = stages
			out.HasStages = true
		}
	}
	*p = out
	return nil
}

// ID resolves the pipeline identity: pipeline_name, then name.
func (p PipelineSummary) ID() (string, bool) {
	return FirstPresent(p.PipelineName, p.Name)
}

// Title resolves the display label: display_name, then name, then pipeline_name.
func (p PipelineSummary) Title() (string, bool) {
	return FirstPresent(p.DisplayName, p.Name, p.PipelineName)
}

// Fields lists the backend field names Field understands.
var Fields = []string{"pipeline_name", "name", "display_name", "description", "source", "doc_link", "stages"}

// IsField reports whether name is one of Fields.
func IsField(name string) bool {
	for _, f := range Fields {
		if f == name {
			return true
		}
	}
	return false
}

// Field returns the named backend field, for contract-driven lookups.
func (p PipelineSummary) Field(name string) OptString {
	switch name {
	case "pipeline_name":
		return p.PipelineName
	case "name":
		return p.Name
	case "display_name":
		return p.DisplayName
	case "description":
		return p.Description
	case "source":
		return p.Source
	case "doc_link":
		return p.DocLink
	case "stages":
		if p.HasStages {
			return Some(strconv.Itoa(len(p.Stages)))
		}
	}
	return OptString{}
}

// Resolver fills a portal component field from a pipeline summary.
type Resolver func(field string, p PipelineSummary) (string, bool)

// DefaultResolve applies the portal's built-in precedence for the fields the
// list printout shows. Other fields resolve to the backend field of the same
// name.
func DefaultResolve(field string, p PipelineSummary) (string, bool) {
	switch field {
	case "id":
		return p.ID()
	case "name":
		return p.Title()
	}
	return FirstPresent(p.Field(field))
}

// InfoResponse is the body of the info endpoint.
type InfoResponse struct {
	PluginName    OptString `json:"plugin_name"`
	PluginVersion OptString `json:"plugin_version"`
	PipelineCount OptString `json:"pipeline_count"`
	Status        OptString `json:"status"`
	Endpoints     []string  `json:"-"`
}

func (i *InfoResponse) UnmarshalJSON(data []byte) error {
	type plain InfoResponse
	var fields struct {
		plain
		Endpoints json.RawMessage `json:"endpoints"`
	}
	if err := json.Unmarshal(data, &fields); err != nil {
		*i = InfoResponse{}
		return nil
	}
	*i = InfoResponse(fields.plain)
	i.Endpoints = stringList(fields.Endpoints)
	return nil
}

// ListResponse is the body of the list endpoint.
type ListResponse struct {
	Demos   []PipelineSummary `json:"demos"`
	Total   OptString         `json:"total"`
	Message OptString         `json:"message"`
}

func (l *ListResponse) UnmarshalJSON(data []byte) error {
	var fields struct {
		Demos   json.RawMessage `json:"demos"`
		Total   OptString       `json:"total"`
		Message OptString       `json:"message"`
	}
	if err := json.Unmarshal(data, &fields); err != nil {
		*l = ListResponse{Demos: []PipelineSummary{}}
		return nil
	}
	out := ListResponse{Total: fields.Total, Message: fields.Message}
	if err := json.Unmarshal(fields.Demos, &out.Demos); err != nil || out.Demos == nil {
		out.Demos = []PipelineSummary{}
	}
	*l = out
	return nil
}

// ExecuteResponse is the body of the execute endpoint.
type ExecuteResponse struct {
	PipelineName OptString `json:"pipeline_name"`
	JobID        OptString `json:"job_id"`
	AgentID      OptString `json:"agent_id"`
	Status       OptString `json:"status"`
	Limit        OptString `json:"limit"`
	Message      OptString `json:"message"`
	Note         OptString `json:"note"`
}

// ExecuteRequest is the POST body sent to the execute endpoint.
type ExecuteRequest struct {
	Parameters ExecuteParameters `json:"parameters"`
}

type ExecuteParameters struct {
	Limit int `json:"limit"`
}

// errorBody holds the fields an error response may explain itself with.
type errorBody struct {
	Error   OptString `json:"error"`
	Message OptString `json:"message"`
}

func stringList(raw json.RawMessage) []string {
	var items []OptString
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil
	}
	out := make([]string, 0, len(items))
	for _, it := range items {
		if it.Set {
			out = append(out, it.Value)
		}
	}
	return out
}
