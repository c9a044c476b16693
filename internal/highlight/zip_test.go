package highlight

import (
	"archive/zip"
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeZip(t *testing.T, members map[string][]byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, data := range members {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write(data)
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func readZip(t *testing.T, data []byte) map[string][]byte {
	t.Helper()
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)
	out := make(map[string][]byte, len(zr.File))
	for _, f := range zr.File {
		rc, err := f.Open()
		require.NoError(t, err)
		content, err := io.ReadAll(rc)
		require.NoError(t, err)
		rc.Close()
		out[f.Name] = content
	}
	return out
}

func TestProcessZipPrefixesPDFs(t *testing.T) {
	h := NewHighlighter(nil)
	original := []byte("unparseable")
	in := makeZip(t, map[string][]byte{"doc.pdf": original})

	out, err := h.ProcessZip(in, []string{"Witness"})
	require.NoError(t, err)

	members := readZip(t, out)
	require.Len(t, members, 1)
	// Highlighting failed, so the original bytes survive under the
	// highlighted_ name.
	assert.Equal(t, original, members[HighlightedPrefix+"doc.pdf"])
}

func TestProcessZipCopiesNonPDFsThrough(t *testing.T) {
	h := NewHighlighter(nil)
	in := makeZip(t, map[string][]byte{
		"readme.txt": []byte("notes"),
		"doc.pdf":    []byte("fake"),
	})

	out, err := h.ProcessZip(in, []string{"Witness"})
	require.NoError(t, err)

	members := readZip(t, out)
	require.Len(t, members, 2)
	assert.Equal(t, []byte("notes"), members["readme.txt"])
	assert.Contains(t, members, HighlightedPrefix+"doc.pdf")
}

func TestProcessZipBadArchive(t *testing.T) {
	h := NewHighlighter(nil)
	_, err := h.ProcessZip([]byte("not a zip"), []string{"Witness"})
	assert.Error(t, err)
}
