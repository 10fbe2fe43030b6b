package linear_test

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	vito "github.com/vito/progrock"
	"google.golang.org/protobuf/types/known/timestamppb"

	"github.com/warpack/warpack/internal/adapters/linear"
	"github.com/warpack/warpack/internal/adapters/telemetry/progrock"
	"github.com/warpack/warpack/internal/core/domain"
	"github.com/warpack/warpack/internal/core/ports"
)

func TestRenderer_TaskLifecycle(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	feed := progrock.NewFeed()
	rec := progrock.NewRecorder(feed)

	_, vertex := rec.Record(context.Background(), "copy:index.html")
	vertex.Log(domain.LogLevelInfo, "copied index.html")
	vertex.Complete(nil)
	require.NoError(t, rec.Close())

	var buf bytes.Buffer
	r := linear.NewRenderer(feed, &buf)
	require.NoError(t, r.Start(context.Background()))
	require.NoError(t, r.Wait())
	require.NoError(t, r.Stop())

	out := buf.String()
	t.Logf("output:\n%s", out)

	assert.Contains(t, out, "[copy:index.html] started")
	assert.Contains(t, out, "[INFO] copied index.html")
	assert.Contains(t, out, "done")
}

func TestRenderer_CachedAndFailedTasks(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	feed := progrock.NewFeed()
	rec := progrock.NewRecorder(feed)

	_, cached := rec.Record(context.Background(), "dir:WEB-INF")
	cached.Cached()
	cached.Complete(nil)

	_, failed := rec.Record(context.Background(), "unpack:rack-2.2.8")
	failed.Complete(errors.New("gem unpack exploded"))

	require.NoError(t, rec.Close())

	var buf bytes.Buffer
	r := linear.NewRenderer(feed, &buf)
	require.NoError(t, r.Start(context.Background()))
	require.NoError(t, r.Wait())

	out := buf.String()
	assert.Contains(t, out, "[dir:WEB-INF] ~ cached")
	assert.Contains(t, out, "failed")
	assert.Contains(t, out, "gem unpack exploded")
}

func TestRenderer_SkipsInternalVertices(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	feed := progrock.NewFeed()
	rec := progrock.NewRecorder(feed)

	_, vertex := rec.Record(context.Background(), "application", ports.WithInternal())
	vertex.Complete(nil)
	require.NoError(t, rec.Close())

	var buf bytes.Buffer
	r := linear.NewRenderer(feed, &buf)
	require.NoError(t, r.Start(context.Background()))
	require.NoError(t, r.Wait())

	assert.NotContains(t, buf.String(), "application")
}

func TestRenderer_FlushesPartialLinesOnStop(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	feed := progrock.NewFeed()
	require.NoError(t, feed.WriteStatus(&vito.StatusUpdate{
		Vertexes: []*vito.Vertex{
			{Id: "v1", Name: "unpack:rack-2.2.8", Started: timestamppb.Now()},
		},
	}))
	require.NoError(t, feed.WriteStatus(&vito.StatusUpdate{
		Logs: []*vito.VertexLog{
			{Vertex: "v1", Data: []byte("no newline yet")},
		},
	}))
	feed.Close()

	var buf bytes.Buffer
	r := linear.NewRenderer(feed, &buf)
	require.NoError(t, r.Start(context.Background()))
	require.NoError(t, r.Wait())

	assert.NotContains(t, buf.String(), "no newline yet")

	require.NoError(t, r.Stop())
	assert.Contains(t, buf.String(), "no newline yet")
}

func TestRenderer_ReportsEachTaskOnce(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	done := timestamppb.Now()
	update := &vito.StatusUpdate{
		Vertexes: []*vito.Vertex{
			{Id: "v1", Name: "descriptor", Started: timestamppb.Now(), Completed: done},
		},
	}

	feed := progrock.NewFeed()
	require.NoError(t, feed.WriteStatus(update))
	require.NoError(t, feed.WriteStatus(update))
	feed.Close()

	var buf bytes.Buffer
	r := linear.NewRenderer(feed, &buf)
	require.NoError(t, r.Start(context.Background()))
	require.NoError(t, r.Wait())

	assert.Equal(t, 1, strings.Count(buf.String(), "done"))
}
