package demoapi

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stevehiehn/demoprobe/internal/testutil"
)

func TestClientAgainstRecordedAPI(t *testing.T) {
	rec, cleanup := testutil.NewVCRRecorder(t, "demo_api")
	defer cleanup()

	c := NewClient(
		Endpoints{BaseURL: "https://api.webrobot.eu"},
		WithHTTPClient(testutil.VCRHTTPClient(rec)),
	)
	ctx := context.Background()

	info := c.FetchInfo(ctx)
	require.True(t, info.Success, "info: %+v", info)
	assert.Equal(t, 200, info.Status)

	list := c.FetchList(ctx)
	require.True(t, list.Success, "list: %+v", list.Result)
	require.Len(t, list.Pipelines, 2)

	first, ok := list.Pipelines[0].ID()
	require.True(t, ok)
	assert.Equal(t, "amazon-price-tracker", first)

	second, ok := list.Pipelines[1].Title()
	require.True(t, ok)
	assert.Equal(t, "news-digest", second)

	exec := c.ExecutePipeline(ctx, first)
	require.True(t, exec.Success, "execute: %+v", exec)
	assert.Equal(t, 202, exec.Status)
	assert.Contains(t, string(exec.Data), "job-7f3a")
}
