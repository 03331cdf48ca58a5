// Package testutil holds helpers shared by package tests.
package testutil

import (
	"bytes"
	"fmt"
	"mime/multipart"
	"net/textproto"
	"sort"
	"testing"
)

// File is one file part of a multipart body.
type File struct {
	Field       string
	Filename    string
	ContentType string
	Data        []byte
}

// JPEG returns size bytes starting with a JFIF header.
func JPEG(size int) []byte {
	head := []byte{0xFF, 0xD8, 0xFF, 0xE0, 0x00, 0x10, 'J', 'F', 'I', 'F', 0x00, 0x01}
	return pad(head, size)
}

// PNG returns size bytes starting with the PNG signature.
func PNG(size int) []byte {
	return pad([]byte("\x89PNG\r\n\x1a\n"), size)
}

// PDF returns size bytes starting with a PDF header.
func PDF(size int) []byte {
	return pad([]byte("%PDF-1.7\n"), size)
}

func pad(head []byte, size int) []byte {
	if size < len(head) {
		size = len(head)
	}
	out := make([]byte, size)
	copy(out, head)
	return out
}

// MultipartBody encodes fields and files. Fields are written in key order.
func MultipartBody(t testing.TB, fields map[string]string, files ...File) (*bytes.Buffer, string) {
	t.Helper()

	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)

	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if err := w.WriteField(k, fields[k]); err != nil {
			t.Fatalf("write field %s: %v", k, err)
		}
	}

	for _, f := range files {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, f.Field, f.Filename))
		h.Set("Content-Type", f.ContentType)
		part, err := w.CreatePart(h)
		if err != nil {
			t.Fatalf("create part %s: %v", f.Field, err)
		}
		if _, err := part.Write(f.Data); err != nil {
			t.Fatalf("write part %s: %v", f.Field, err)
		}
	}

	if err := w.Close(); err != nil {
		t.Fatalf("close multipart writer: %v", err)
	}
	return body, w.FormDataContentType()
}

// Form parses files into a multipart.Form as a server would.
func Form(t testing.TB, files ...File) *multipart.Form {
	t.Helper()

	body, contentType := MultipartBody(t, nil, files...)
	boundary := contentType[len("multipart/form-data; boundary="):]
	form, err := multipart.NewReader(body, boundary).ReadForm(64 << 20)
	if err != nil {
		t.Fatalf("read form: %v", err)
	}
	t.Cleanup(func() { _ = form.RemoveAll() })
	return form
}

// FileHeader returns the parsed header for a single file part.
func FileHeader(t testing.TB, f File) *multipart.FileHeader {
	t.Helper()

	form := Form(t, f)
	headers := form.File[f.Field]
	if len(headers) != 1 {
		t.Fatalf("expected one file under %s, got %d", f.Field, len(headers))
	}
	return headers[0]
}

// Image is a convenience for an image part under the "image" field.
func Image(t testing.TB, filename, contentType string, data []byte) *multipart.FileHeader {
	t.Helper()
	return FileHeader(t, File{Field: "image", Filename: filename, ContentType: contentType, Data: data})
}
