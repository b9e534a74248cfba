package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadUploads(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "comissoes_fev.html")
	require.NoError(t, os.WriteFile(path, []byte("<table></table>"), 0o600))

	uploads, err := readUploads([]string{path})
	require.NoError(t, err)
	require.Len(t, uploads, 1)
	assert.Equal(t, "comissoes_fev.html", uploads[0].Nome)
	assert.Equal(t, "<table></table>", string(uploads[0].Dados))

	_, err = readUploads([]string{filepath.Join(dir, "inexistente.html")})
	assert.Error(t, err)
}
