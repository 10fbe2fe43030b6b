package shell_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warpack/warpack/internal/adapters/shell"
	"github.com/warpack/warpack/internal/core/domain"
)

func TestArchiver_Create_ExpandsPlaceholders(t *testing.T) {
	stagingDir := t.TempDir()
	webInf := filepath.Join(stagingDir, domain.WebInfDirName)
	require.NoError(t, os.MkdirAll(webInf, domain.DirPerm))
	descriptor := filepath.Join(webInf, "web.xml")
	require.NoError(t, os.WriteFile(descriptor, []byte("<web-app/>"), domain.PrivateFilePerm))

	outputPath := filepath.Join(t.TempDir(), "storefront.war")

	archiver := shell.NewArchiver()
	command := []string{"tar", "-cf", "{output}", "-C", "{dir}", "."}

	err := archiver.Create(t.Context(), command, stagingDir, outputPath)
	require.NoError(t, err)

	info, err := os.Stat(outputPath)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}

func TestArchiver_Create_AppendsUnreferencedValues(t *testing.T) {
	tmpDir := t.TempDir()
	argsFile := filepath.Join(tmpDir, "args.txt")
	script := filepath.Join(tmpDir, "archive.sh")
	content := "#!/bin/sh\nprintf '%s\\n%s\\n' \"$1\" \"$2\" > " + argsFile + "\n"
	require.NoError(t, os.WriteFile(script, []byte(content), 0o700))

	archiver := shell.NewArchiver()

	err := archiver.Create(t.Context(), []string{script}, "/build/stage", "/dist/storefront.war")
	require.NoError(t, err)

	data, err := os.ReadFile(argsFile)
	require.NoError(t, err)
	assert.Equal(t, "/dist/storefront.war\n/build/stage\n", string(data),
		"output then staging directory should be appended when the command references neither")
}

func TestArchiver_Create_FailureSurfacesStderr(t *testing.T) {
	archiver := shell.NewArchiver()
	command := []string{"sh", "-c", "echo 'disk full' >&2; exit 2"}

	err := archiver.Create(t.Context(), command, "stage", "out.war")
	require.Error(t, err)
	require.ErrorContains(t, err, domain.ErrArchiveFailed.Error())

	rich, ok := err.(interface{ Metadata() map[string]any })
	require.True(t, ok, "error should carry metadata")
	md := rich.Metadata()
	assert.Equal(t, "disk full", md["stderr"])
	assert.Equal(t, 2, md["exit_code"])
	assert.Equal(t, "out.war", md["output"])
}

func TestArchiver_Create_EmptyCommand(t *testing.T) {
	archiver := shell.NewArchiver()

	err := archiver.Create(t.Context(), nil, "stage", "out.war")
	require.ErrorIs(t, err, domain.ErrArchiveFailed)
}
