package handlers

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"

	app "github.com/oksasatya/vidtube/internal/application"
)

var errTooLarge = errors.New("file too large")

// formFile opens an optional multipart file. The returned closer is always
// safe to call; a missing field yields a nil upload.
func formFile(c *gin.Context, field string, maxBytes int64) (*app.Upload, func(), error) {
	fh, err := c.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, func() {}, nil
		}
		return nil, func() {}, err
	}
	if maxBytes > 0 && fh.Size > maxBytes {
		return nil, func() {}, errTooLarge
	}
	f, err := fh.Open()
	if err != nil {
		return nil, func() {}, err
	}
	return &app.Upload{
		Filename:    fh.Filename,
		ContentType: contentType(fh),
		Body:        limit(f, maxBytes),
	}, func() { _ = f.Close() }, nil
}

func contentType(fh *multipart.FileHeader) string {
	if ct := fh.Header.Get("Content-Type"); ct != "" {
		return ct
	}
	return "application/octet-stream"
}

func limit(r io.Reader, n int64) io.Reader {
	if n <= 0 {
		return r
	}
	return io.LimitReader(r, n)
}

// openFiles opens each named form file and returns one closer for all of them.
func openFiles(c *gin.Context, maxBytes int64, fields ...string) (map[string]*app.Upload, func(), error) {
	out := make(map[string]*app.Upload, len(fields))
	var closers []func()
	closeAll := func() {
		for _, fn := range closers {
			fn()
		}
	}
	for _, f := range fields {
		up, closer, err := formFile(c, f, maxBytes)
		closers = append(closers, closer)
		if err != nil {
			closeAll()
			return nil, func() {}, err
		}
		out[f] = up
	}
	return out, closeAll, nil
}
