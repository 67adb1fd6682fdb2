package extract

import (
	"archive/zip"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestTextPlain(t *testing.T) {
	path := writeFile(t, "resume.md", "# Jane Doe\r\n\r\n\r\n  Senior   Engineer  \n\n\nAcme Corp\n")

	text, err := Text(path)
	require.NoError(t, err)
	assert.Equal(t, "# Jane Doe\n\nSenior Engineer\n\nAcme Corp", text)
}

func TestTextHTML(t *testing.T) {
	path := writeFile(t, "job.HTML", `<html><head><title>t</title><style>p{}</style></head>`+
		`<body><h1>Staff Engineer</h1><script>var x = 1;</script>`+
		`<ul><li>Go</li><li>Kubernetes</li></ul><p>Remote <b>EU</b></p></body></html>`)

	text, err := Text(path)
	require.NoError(t, err)
	assert.Equal(t, "Staff Engineer\nGo\nKubernetes\nRemote EU", text)
	assert.NotContains(t, text, "var x")
}

func TestTextDocx(t *testing.T) {
	path := filepath.Join(t.TempDir(), "resume.docx")
	f, err := os.Create(path)
	require.NoError(t, err)

	zw := zip.NewWriter(f)
	for name, body := range map[string]string{
		"word/document.xml": `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>
<w:p><w:r><w:t>Jane</w:t></w:r><w:r><w:t xml:space="preserve"> Doe</w:t></w:r></w:p>
<w:p><w:r><w:t>Acme</w:t><w:tab/><w:t>2019 - Present</w:t></w:r></w:p>
</w:body></w:document>`,
		"word/_rels/document.xml.rels": `<?xml version="1.0" encoding="UTF-8"?><Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships"></Relationships>`,
	} {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(body))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	require.NoError(t, f.Close())

	text, err := Text(path)
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe\nAcme 2019 - Present", text)
}

func TestTextUnsupported(t *testing.T) {
	path := writeFile(t, "resume.odt", "x")

	_, err := Text(path)
	var unsupported *UnsupportedFormat
	require.True(t, errors.As(err, &unsupported))
	assert.Equal(t, ".odt", unsupported.Ext)
	assert.Equal(t, path, unsupported.Path)
}

func TestTextBrokenPDF(t *testing.T) {
	path := writeFile(t, "resume.pdf", "not a pdf")

	_, err := Text(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "resume.pdf")
}

func TestTextMissingFile(t *testing.T) {
	_, err := Text(filepath.Join(t.TempDir(), "missing.txt"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestAttachments(t *testing.T) {
	pdfPath := writeFile(t, "resume.pdf", "%PDF-1.4")
	txtPath := writeFile(t, "resume.txt", "text")

	got, err := Attachments(pdfPath, true)
	require.NoError(t, err)
	assert.Equal(t, []Attachment{{MIMEType: "application/pdf", Data: []byte("%PDF-1.4")}}, got)

	got, err = Attachments(pdfPath, false)
	require.NoError(t, err)
	assert.Empty(t, got)

	got, err = Attachments(txtPath, true)
	require.NoError(t, err)
	assert.Empty(t, got)
}
