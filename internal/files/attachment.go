package files

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/jonathan/careers-page/internal/types"
)

// Role tags an attachment as a resume or a cover letter.
type Role string

// Attachment roles.
const (
	RoleResume      Role = types.AttachmentResume
	RoleCoverLetter Role = types.AttachmentCoverLetter
)

// Attachment is a user-selected file. Content is only read when Open is called.
type Attachment struct {
	Filename    string
	ContentType string
	Size        int64
	Role        Role
	open        func() (io.ReadCloser, error)
}

// Open returns a reader over the attachment's bytes.
func (a *Attachment) Open() (io.ReadCloser, error) {
	if a.open == nil {
		return nil, fmt.Errorf("attachment %q has no content", a.Filename)
	}
	return a.open()
}

// Validate runs the file rules against the attachment.
func (a *Attachment) Validate() Result {
	return Validate(a.Size, a.ContentType)
}

// Describe renders "name (size)".
func (a *Attachment) Describe() string {
	return fmt.Sprintf("%s (%s)", a.Filename, FormatSize(a.Size))
}

// FromBytes builds an attachment over an in-memory buffer.
func FromBytes(role Role, filename, contentType string, data []byte) *Attachment {
	return &Attachment{
		Filename:    filename,
		ContentType: contentType,
		Size:        int64(len(data)),
		Role:        role,
		open: func() (io.ReadCloser, error) {
			return io.NopCloser(bytes.NewReader(data)), nil
		},
	}
}

// FromFileHeader builds an attachment over a multipart upload. When the browser sent no
// Content-Type the type is sniffed from the content.
func FromFileHeader(role Role, fh *multipart.FileHeader) (*Attachment, error) {
	contentType := fh.Header.Get("Content-Type")
	if contentType == "" || contentType == "application/octet-stream" {
		f, err := fh.Open()
		if err != nil {
			return nil, fmt.Errorf("failed to open upload %s: %w", fh.Filename, err)
		}
		mt, err := mimetype.DetectReader(f)
		_ = f.Close()
		if err != nil {
			return nil, fmt.Errorf("failed to detect type of %s: %w", fh.Filename, err)
		}
		contentType = DeclaredType(mt)
	}
	return &Attachment{
		Filename:    fh.Filename,
		ContentType: contentType,
		Size:        fh.Size,
		Role:        role,
		open: func() (io.ReadCloser, error) {
			return fh.Open()
		},
	}, nil
}

// FromPath builds an attachment over a file on disk, sniffing its MIME type.
func FromPath(role Role, path string) (*Attachment, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat %s: %w", path, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%s is a directory", path)
	}
	mt, err := mimetype.DetectFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to detect type of %s: %w", path, err)
	}
	return &Attachment{
		Filename:    filepath.Base(path),
		ContentType: DeclaredType(mt),
		Size:        info.Size(),
		Role:        role,
		open: func() (io.ReadCloser, error) {
			return os.Open(path) //nolint:gosec // path is supplied by the operator running the CLI
		},
	}, nil
}

// DeclaredType returns the sniffed type without parameters, as a browser would declare it.
func DeclaredType(mt *mimetype.MIME) string {
	t := mt.String()
	if i := strings.IndexByte(t, ';'); i >= 0 {
		t = strings.TrimSpace(t[:i])
	}
	return t
}
