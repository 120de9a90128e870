package files

import (
	"bytes"
	"io"
	"mime/multipart"
	"net/textproto"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const samplePDF = "%PDF-1.4\n1 0 obj\n<< /Type /Catalog >>\nendobj\ntrailer\n<< /Root 1 0 R >>\n%%EOF\n"

func readAll(t *testing.T, a *Attachment) []byte {
	t.Helper()
	rc, err := a.Open()
	require.NoError(t, err)
	defer func() { _ = rc.Close() }()
	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	return data
}

func TestFromBytes(t *testing.T) {
	a := FromBytes(RoleResume, "cv.pdf", MimePDF, []byte("hello"))

	assert.Equal(t, "cv.pdf", a.Filename)
	assert.Equal(t, int64(5), a.Size)
	assert.Equal(t, RoleResume, a.Role)
	assert.True(t, a.Validate().OK())
	assert.Equal(t, []byte("hello"), readAll(t, a))
	assert.Equal(t, "cv.pdf (5 Bytes)", a.Describe())
}

func TestAttachment_OpenWithoutContent(t *testing.T) {
	a := &Attachment{Filename: "empty.pdf"}
	_, err := a.Open()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty.pdf")
}

func TestFromPath_SniffsPDF(t *testing.T) {
	path := filepath.Join(t.TempDir(), "resume.pdf")
	require.NoError(t, os.WriteFile(path, []byte(samplePDF), 0o600))

	a, err := FromPath(RoleResume, path)
	require.NoError(t, err)

	assert.Equal(t, "resume.pdf", a.Filename)
	assert.Equal(t, MimePDF, a.ContentType)
	assert.Equal(t, int64(len(samplePDF)), a.Size)
	assert.Equal(t, []byte(samplePDF), readAll(t, a))
}

func TestFromPath_Missing(t *testing.T) {
	_, err := FromPath(RoleResume, filepath.Join(t.TempDir(), "nope.pdf"))
	require.Error(t, err)
}

func TestFromPath_Directory(t *testing.T) {
	_, err := FromPath(RoleResume, t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "directory")
}

func uploadHeader(t *testing.T, filename, contentType string, content []byte) *multipart.FileHeader {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", `form-data; name="resume"; filename="`+filename+`"`)
	if contentType != "" {
		h.Set("Content-Type", contentType)
	}
	part, err := w.CreatePart(h)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	form, err := multipart.NewReader(&buf, w.Boundary()).ReadForm(1 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { _ = form.RemoveAll() })
	require.Len(t, form.File["resume"], 1)
	return form.File["resume"][0]
}

func TestFromFileHeader_DeclaredType(t *testing.T) {
	fh := uploadHeader(t, "letter.docx", MimeDOCX, []byte("not really a docx"))

	a, err := FromFileHeader(RoleCoverLetter, fh)
	require.NoError(t, err)

	assert.Equal(t, "letter.docx", a.Filename)
	assert.Equal(t, MimeDOCX, a.ContentType)
	assert.Equal(t, RoleCoverLetter, a.Role)
	assert.Equal(t, []byte("not really a docx"), readAll(t, a))
}

func TestFromFileHeader_SniffsMissingType(t *testing.T) {
	fh := uploadHeader(t, "resume.pdf", "application/octet-stream", []byte(samplePDF))

	a, err := FromFileHeader(RoleResume, fh)
	require.NoError(t, err)
	assert.Equal(t, MimePDF, a.ContentType)
	assert.True(t, a.Validate().OK())
}
