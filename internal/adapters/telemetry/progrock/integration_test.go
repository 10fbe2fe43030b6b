package progrock_test

import (
	"context"
	"testing"

	"github.com/warpack/warpack/internal/adapters/telemetry/progrock"
	"github.com/warpack/warpack/internal/core/domain"
	"github.com/warpack/warpack/internal/core/ports"
)

func TestRecorder_Integration(t *testing.T) {
	recorder := progrock.New()

	ctx := context.Background()
	vctx, vertex := recorder.Record(ctx, "copy:WEB-INF/app/models/order.rb")

	if _, ok := ports.VertexFromContext(vctx); !ok {
		t.Error("expected returned context to carry the vertex")
	}

	vertex.Log(domain.LogLevelDebug, "debug msg")
	vertex.Complete(nil)

	_, cached := recorder.Record(ctx, "unpack:rack-2.2.8", ports.WithInternal())
	cached.Cached()

	if err := recorder.Close(); err != nil {
		t.Errorf("failed to close recorder: %v", err)
	}
}
