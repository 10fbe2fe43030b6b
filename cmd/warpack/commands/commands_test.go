package commands_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warpack/warpack/cmd/warpack/commands"
	"github.com/warpack/warpack/internal/app"
	"github.com/warpack/warpack/internal/build"
	"github.com/warpack/warpack/internal/core/domain"
)

type mockApp struct {
	stageFunc   func(ctx context.Context, opts app.StageOptions) error
	packageFunc func(ctx context.Context, opts app.StageOptions) error
	planFunc    func(ctx context.Context) (*domain.Graph, error)
	verifyFunc  func(ctx context.Context) (domain.ManifestDiff, error)
	cleanFunc   func(ctx context.Context, opts app.CleanOptions) error
	configPath  string
}

func (m *mockApp) Stage(ctx context.Context, opts app.StageOptions) error {
	if m.stageFunc != nil {
		return m.stageFunc(ctx, opts)
	}
	return nil
}

func (m *mockApp) Package(ctx context.Context, opts app.StageOptions) error {
	if m.packageFunc != nil {
		return m.packageFunc(ctx, opts)
	}
	return nil
}

func (m *mockApp) Plan(ctx context.Context) (*domain.Graph, error) {
	if m.planFunc != nil {
		return m.planFunc(ctx)
	}
	return domain.NewGraph(), nil
}

func (m *mockApp) Verify(ctx context.Context) (domain.ManifestDiff, error) {
	if m.verifyFunc != nil {
		return m.verifyFunc(ctx)
	}
	return domain.ManifestDiff{}, nil
}

func (m *mockApp) Clean(ctx context.Context, opts app.CleanOptions) error {
	if m.cleanFunc != nil {
		return m.cleanFunc(ctx, opts)
	}
	return nil
}

func (m *mockApp) SetConfigPath(path string) {
	m.configPath = path
}

// planGraph builds a small validated graph: one directory task and one copy
// task depending on it.
func planGraph(t *testing.T) *domain.Graph {
	t.Helper()
	g := domain.NewGraph()
	dir := &domain.Task{
		Name:        domain.NewInternedString("dir:WEB-INF"),
		Kind:        domain.KindCreateDirectory,
		Destination: "/tmp/war/WEB-INF",
	}
	cp := &domain.Task{
		Name:          domain.NewInternedString("copy:WEB-INF/web.xml"),
		Kind:          domain.KindCopyFile,
		Prerequisites: []domain.InternedString{dir.Name},
		Source:        "/proj/config/web.xml",
		Destination:   "/tmp/war/WEB-INF/web.xml",
	}
	require.NoError(t, g.AddTask(dir))
	require.NoError(t, g.AddTask(cp))
	require.NoError(t, g.Validate())
	return g
}

func TestCommands_Stage(t *testing.T) {
	t.Run("wires flags correctly", func(t *testing.T) {
		var captured app.StageOptions
		called := false

		mock := &mockApp{
			stageFunc: func(_ context.Context, opts app.StageOptions) error {
				captured = opts
				called = true
				return nil
			},
		}

		cli := commands.New(mock)
		cli.SetArgs([]string{"stage", "-j", "4", "--output-mode", "tui"})

		err := cli.Execute(context.Background())
		require.NoError(t, err)
		assert.True(t, called)
		assert.Equal(t, 4, captured.Parallelism)
		assert.Equal(t, "tui", captured.OutputMode)
	})

	t.Run("ci flag forces linear output", func(t *testing.T) {
		var captured app.StageOptions

		mock := &mockApp{
			stageFunc: func(_ context.Context, opts app.StageOptions) error {
				captured = opts
				return nil
			},
		}

		cli := commands.New(mock)
		cli.SetArgs([]string{"stage", "--ci", "--output-mode", "tui"})

		err := cli.Execute(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "linear", captured.OutputMode)
	})

	t.Run("returns error on stage failure", func(t *testing.T) {
		mock := &mockApp{
			stageFunc: func(_ context.Context, _ app.StageOptions) error {
				return errors.New("simulated error")
			},
		}

		cli := commands.New(mock)
		cli.SetArgs([]string{"stage"})
		cli.SetOutput(new(bytes.Buffer), new(bytes.Buffer))

		err := cli.Execute(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "simulated error")
	})
}

func TestCommands_Package(t *testing.T) {
	var captured app.StageOptions
	called := false

	mock := &mockApp{
		packageFunc: func(_ context.Context, opts app.StageOptions) error {
			captured = opts
			called = true
			return nil
		},
	}

	cli := commands.New(mock)
	cli.SetArgs([]string{"package"})

	err := cli.Execute(context.Background())
	require.NoError(t, err)
	assert.True(t, called)
	assert.Equal(t, 0, captured.Parallelism)
	assert.Equal(t, "auto", captured.OutputMode)
}

func TestCommands_Plan(t *testing.T) {
	t.Run("prints tasks in execution order", func(t *testing.T) {
		mock := &mockApp{
			planFunc: func(_ context.Context) (*domain.Graph, error) {
				return planGraph(t), nil
			},
		}

		cli := commands.New(mock)
		buf := new(bytes.Buffer)
		cli.SetOutput(buf, buf)
		cli.SetArgs([]string{"plan"})

		err := cli.Execute(context.Background())
		require.NoError(t, err)

		out := buf.String()
		assert.Contains(t, out, "dir:WEB-INF")
		assert.Contains(t, out, "copy:WEB-INF/web.xml")
		assert.Less(t,
			bytes.Index(buf.Bytes(), []byte("dir:WEB-INF")),
			bytes.Index(buf.Bytes(), []byte("copy:WEB-INF/web.xml")),
		)
	})

	t.Run("prints JSON with --json", func(t *testing.T) {
		mock := &mockApp{
			planFunc: func(_ context.Context) (*domain.Graph, error) {
				return planGraph(t), nil
			},
		}

		cli := commands.New(mock)
		buf := new(bytes.Buffer)
		cli.SetOutput(buf, buf)
		cli.SetArgs([]string{"plan", "--json"})

		err := cli.Execute(context.Background())
		require.NoError(t, err)

		var entries []map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &entries))
		require.Len(t, entries, 2)
		assert.Equal(t, "dir:WEB-INF", entries[0]["name"])
		assert.Equal(t, "dir", entries[0]["kind"])
		assert.Equal(t, "copy:WEB-INF/web.xml", entries[1]["name"])
		assert.Equal(t, []any{"dir:WEB-INF"}, entries[1]["prerequisites"])
		assert.Equal(t, "/proj/config/web.xml", entries[1]["source"])
	})

	t.Run("returns planning errors", func(t *testing.T) {
		mock := &mockApp{
			planFunc: func(_ context.Context) (*domain.Graph, error) {
				return nil, errors.New("planning failed")
			},
		}

		cli := commands.New(mock)
		cli.SetArgs([]string{"plan"})
		cli.SetOutput(new(bytes.Buffer), new(bytes.Buffer))

		err := cli.Execute(context.Background())
		require.Error(t, err)
	})
}

func TestCommands_Verify(t *testing.T) {
	t.Run("reports a matching tree", func(t *testing.T) {
		cli := commands.New(&mockApp{})
		buf := new(bytes.Buffer)
		cli.SetOutput(buf, buf)
		cli.SetArgs([]string{"verify"})

		err := cli.Execute(context.Background())
		require.NoError(t, err)
		assert.Contains(t, buf.String(), "matches the manifest")
	})

	t.Run("prints the diff on mismatch", func(t *testing.T) {
		mock := &mockApp{
			verifyFunc: func(_ context.Context) (domain.ManifestDiff, error) {
				return domain.ManifestDiff{
					Missing: []string{"WEB-INF/app/models/order.rb"},
					Changed: []string{"WEB-INF/web.xml"},
				}, domain.ErrManifestMismatch
			},
		}

		cli := commands.New(mock)
		buf := new(bytes.Buffer)
		cli.SetOutput(buf, buf)
		cli.SetArgs([]string{"verify"})

		err := cli.Execute(context.Background())
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrManifestMismatch)
		assert.Contains(t, buf.String(), "missing: WEB-INF/app/models/order.rb")
		assert.Contains(t, buf.String(), "changed: WEB-INF/web.xml")
	})
}

func TestCommands_Clean(t *testing.T) {
	var captured app.CleanOptions

	mock := &mockApp{
		cleanFunc: func(_ context.Context, opts app.CleanOptions) error {
			captured = opts
			return nil
		},
	}

	cli := commands.New(mock)
	cli.SetArgs([]string{"clean", "--archive"})

	err := cli.Execute(context.Background())
	require.NoError(t, err)
	assert.True(t, captured.Archive)
}

func TestCommands_ConfigFlag(t *testing.T) {
	mock := &mockApp{}

	cli := commands.New(mock)
	buf := new(bytes.Buffer)
	cli.SetOutput(buf, buf)
	cli.SetArgs([]string{"-c", "/elsewhere/warpack.yaml", "plan"})

	err := cli.Execute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "/elsewhere/warpack.yaml", mock.configPath)
}

func TestCommands_Version(t *testing.T) {
	mock := &mockApp{}
	cli := commands.New(mock)

	buf := new(bytes.Buffer)
	cli.SetOutput(buf, buf)
	cli.SetArgs([]string{"version"})

	err := cli.Execute(context.Background())
	require.NoError(t, err)

	assert.Contains(t, buf.String(), build.Version)
}
