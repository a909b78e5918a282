package staffhandler

import (
	"bytes"
	"image"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-chi/chi/v5"

	"staffhub/internal/platform/uploads"
)

const testUserID = "0c6f5b9e-4a2d-4e61-9f3a-8b2b4c5d6e7f"

type formFile struct {
	field       string
	name        string
	contentType string
	data        []byte
}

func multipartRequest(t *testing.T, target string, fields map[string]string, files []formFile) *http.Request {
	t.Helper()
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	for key, value := range fields {
		if err := writer.WriteField(key, value); err != nil {
			t.Fatalf("write field %s: %v", key, err)
		}
	}
	for _, file := range files {
		header := make(textproto.MIMEHeader)
		header.Set("Content-Disposition", `form-data; name="`+file.field+`"; filename="`+file.name+`"`)
		header.Set("Content-Type", file.contentType)
		part, err := writer.CreatePart(header)
		if err != nil {
			t.Fatalf("create part: %v", err)
		}
		if _, err := part.Write(file.data); err != nil {
			t.Fatalf("write part: %v", err)
		}
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, target, &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func pngFile(t *testing.T, field, name string) formFile {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 4, 4))); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return formFile{field: field, name: name, contentType: "image/png", data: buf.Bytes()}
}

func validFields() map[string]string {
	return map[string]string{
		"fullName":              "Akshaya Kumar",
		"dateOfBirth":           "1994-06-12",
		"gender":                "female",
		"address":               "12 Park Street",
		"phone":                 "9876543210",
		"email":                 "akshaya@example.com",
		"emergencyName":         "Ravi Kumar",
		"emergencyRelationship": "father",
		"emergencyPhone":        "9876500000",
	}
}

func newTestRouter(t *testing.T, root string) chi.Router {
	t.Helper()
	uploadStore, err := uploads.New(root)
	if err != nil {
		t.Fatalf("upload store: %v", err)
	}
	handler := NewHandler(nil, uploadStore)
	router := chi.NewRouter()
	handler.RegisterRoutes(router)
	return router
}

func TestReplaceProfileRequiresProfilePhoto(t *testing.T) {
	router := newTestRouter(t, t.TempDir())

	req := multipartRequest(t, "/employees/"+testUserID, validFields(), []formFile{
		{field: "identificationDocs", name: "id.pdf", contentType: "application/pdf", data: []byte("%PDF")},
	})
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestReplaceProfileRequiresIdentificationDocs(t *testing.T) {
	router := newTestRouter(t, t.TempDir())

	req := multipartRequest(t, "/employees/"+testUserID, validFields(), []formFile{
		pngFile(t, "profilePhoto", "me.png"),
	})
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestReplaceProfileRejectsTooManyDocs(t *testing.T) {
	router := newTestRouter(t, t.TempDir())

	files := []formFile{pngFile(t, "profilePhoto", "me.png")}
	for i := 0; i < maxIdentificationDocs+1; i++ {
		files = append(files, formFile{field: "identificationDocs", name: "id.pdf", contentType: "application/pdf", data: []byte("%PDF")})
	}

	req := multipartRequest(t, "/employees/"+testUserID, validFields(), files)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestReplaceProfileRejectsWrongDocType(t *testing.T) {
	root := t.TempDir()
	router := newTestRouter(t, root)

	req := multipartRequest(t, "/employees/"+testUserID, validFields(), []formFile{
		pngFile(t, "profilePhoto", "me.png"),
		{field: "identificationDocs", name: "notes.txt", contentType: "text/plain", data: []byte("hello")},
	})
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	assertNoFiles(t, root)
}

func TestReplaceProfileRejectsBadDateOfBirth(t *testing.T) {
	root := t.TempDir()
	router := newTestRouter(t, root)

	fields := validFields()
	fields["dateOfBirth"] = "12/06/1994"
	req := multipartRequest(t, "/employees/"+testUserID, fields, []formFile{
		pngFile(t, "profilePhoto", "me.png"),
		{field: "identificationDocs", name: "id.pdf", contentType: "application/pdf", data: []byte("%PDF")},
	})
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	assertNoFiles(t, root)
}

func TestReplaceProfileRemovesUploadsOnValidationFailure(t *testing.T) {
	root := t.TempDir()
	router := newTestRouter(t, root)

	fields := validFields()
	fields["fullName"] = ""
	req := multipartRequest(t, "/employees/"+testUserID, fields, []formFile{
		pngFile(t, "profilePhoto", "me.png"),
		{field: "identificationDocs", name: "id.pdf", contentType: "application/pdf", data: []byte("%PDF")},
	})
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	assertNoFiles(t, root)
}

func TestGetEmployeeRejectsMalformedID(t *testing.T) {
	router := newTestRouter(t, t.TempDir())

	req := httptest.NewRequest(http.MethodGet, "/employees/abc", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for malformed id, got %d", rec.Code)
	}
}

func TestReplaceProfileRejectsMalformedID(t *testing.T) {
	root := t.TempDir()
	router := newTestRouter(t, root)

	req := multipartRequest(t, "/employees/abc", validFields(), []formFile{
		pngFile(t, "profilePhoto", "me.png"),
		{field: "identificationDocs", name: "id.pdf", contentType: "application/pdf", data: []byte("%PDF")},
	})
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for malformed id, got %d", rec.Code)
	}
	assertNoFiles(t, root)
}

func TestReplaceProfileReleasesFormTempFiles(t *testing.T) {
	tempDir := t.TempDir()
	t.Setenv("TMPDIR", tempDir)

	router := newTestRouter(t, t.TempDir())

	// Over the in-memory form threshold, so the part spills to a temp file.
	largeDoc := append([]byte("%PDF-1.4\n"), bytes.Repeat([]byte{0x20}, 2*maxProfileFormMemory)...)
	fields := validFields()
	fields["fullName"] = ""
	req := multipartRequest(t, "/employees/"+testUserID, fields, []formFile{
		pngFile(t, "profilePhoto", "me.png"),
		{field: "identificationDocs", name: "big.pdf", contentType: "application/pdf", data: largeDoc},
	})
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}

	entries, err := os.ReadDir(tempDir)
	if err != nil {
		t.Fatalf("read temp dir: %v", err)
	}
	for _, entry := range entries {
		t.Fatalf("form temp file left behind: %s", entry.Name())
	}
}

func assertNoFiles(t *testing.T, root string) {
	t.Helper()
	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() {
			t.Fatalf("expected no files left behind, found %s", path)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("walk: %v", err)
	}
}
