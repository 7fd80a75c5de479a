package contract

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stevehiehn/demoprobe/internal/demoapi"
)

func summary(t *testing.T, raw string) demoapi.PipelineSummary {
	t.Helper()
	var p demoapi.PipelineSummary
	require.NoError(t, json.Unmarshal([]byte(raw), &p))
	return p
}

func TestDefaultContract(t *testing.T) {
	c := Default()

	fields := make([]string, len(c.Mappings))
	for i, m := range c.Mappings {
		fields[i] = m.Field
	}
	assert.Equal(t, []string{"id", "name", "description", "source", "docLink", "stages"}, fields)
	assert.Equal(t, "display_name || name || pipeline_name", c.Mappings[1].Source())

	require.Len(t, c.Required, 2)
	assert.Equal(t, []string{"pipeline_name", "name"}, c.Required[0].AnyOf)
	assert.Equal(t, []string{"display_name", "name"}, c.Required[1].AnyOf)
}

func TestMappingResolve(t *testing.T) {
	c := Default()
	byField := map[string]Mapping{}
	for _, m := range c.Mappings {
		byField[m.Field] = m
	}

	p := summary(t, `{"pipeline_name":"p1","doc_link":"/docs/p1","stages":[1,2]}`)

	name, ok := byField["name"].Resolve(p)
	assert.True(t, ok)
	assert.Equal(t, "p1", name)

	source, ok := byField["source"].Resolve(p)
	assert.True(t, ok)
	assert.Equal(t, "p1", source)

	stages, ok := byField["stages"].Resolve(p)
	assert.True(t, ok)
	assert.Equal(t, "2", stages)

	_, ok = byField["description"].Resolve(p)
	assert.False(t, ok)
}

func TestRuleSatisfied(t *testing.T) {
	r := Rule{Message: "m", AnyOf: []string{"display_name", "name"}}
	assert.True(t, r.Satisfied(summary(t, `{"name":"x"}`)))
	assert.True(t, r.Satisfied(summary(t, `{"display_name":""}`)))
	assert.False(t, r.Satisfied(summary(t, `{"pipeline_name":"x"}`)))
	assert.False(t, r.Satisfied(summary(t, `{"name":null}`)))
}

func TestParseRejectsIncompleteEntries(t *testing.T) {
	_, err := Parse([]byte("mappings:\n  - field: id\n"))
	assert.Error(t, err)

	_, err = Parse([]byte("required:\n  - any_of: [name]\n"))
	assert.Error(t, err)

	_, err = Parse([]byte("mappings: [unterminated"))
	assert.Error(t, err)
}

func TestParseCustomContract(t *testing.T) {
	c, err := Parse([]byte(`
required:
  - message: Missing description
    any_of: [description]
`))
	require.NoError(t, err)
	assert.Empty(t, c.Mappings)
	require.Len(t, c.Required, 1)
	assert.False(t, c.Required[0].Satisfied(summary(t, `{"name":"x"}`)))
}

func TestParseRejectsUnknownFields(t *testing.T) {
	_, err := Parse([]byte("required:\n  - message: Missing name\n    any_of: [nmae]\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown field "nmae"`)

	_, err = Parse([]byte("mappings:\n  - field: docLink\n    from: [doclink]\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), `mapping "docLink"`)
}

func TestContractResolve(t *testing.T) {
	p := summary(t, `{"pipeline_name":"p1","description":"Tracks prices"}`)

	custom, err := Parse([]byte("mappings:\n  - field: name\n    from: [description, pipeline_name]\n"))
	require.NoError(t, err)

	name, ok := custom.Resolve("name", p)
	assert.True(t, ok)
	assert.Equal(t, "Tracks prices", name)

	// id is not mapped by the custom contract and keeps the built-in chain.
	id, ok := custom.Resolve("id", p)
	assert.True(t, ok)
	assert.Equal(t, "p1", id)

	_, ok = Default().Resolve("docLink", p)
	assert.False(t, ok)
}
