package server_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ezhumalaisanjay/go-rentalform/internal/server"
	"github.com/ezhumalaisanjay/go-rentalform/pkg/application"
	"github.com/ezhumalaisanjay/go-rentalform/pkg/render"
	"github.com/ezhumalaisanjay/go-rentalform/pkg/renderers/htmlpreview"
	"github.com/ezhumalaisanjay/go-rentalform/pkg/renderers/text"
	"github.com/ezhumalaisanjay/go-rentalform/pkg/storage"
	"github.com/ezhumalaisanjay/go-rentalform/pkg/testsupport"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	registry := render.NewRegistry()
	require.NoError(t, registry.Register(text.New()))
	html, err := htmlpreview.New()
	require.NoError(t, err)
	require.NoError(t, registry.Register(html))

	srv := server.New(
		storage.NewMemory(),
		registry,
		server.WithFiles(storage.NewMemoryFiles()),
		server.WithFormat("text"),
	)
	ts := httptest.NewServer(srv.Router())
	t.Cleanup(ts.Close)
	return ts
}

func postApplication(t *testing.T, ts *httptest.Server, app application.Application) *http.Response {
	t.Helper()
	body, err := json.Marshal(app)
	require.NoError(t, err)
	resp, err := http.Post(ts.URL+"/api/rental-applications", "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestCreateValidApplication(t *testing.T) {
	ts := newTestServer(t)

	resp := postApplication(t, ts, testsupport.ValidApplication())
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var rec storage.Stored
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&rec))
	assert.Equal(t, 1, rec.ID)
	assert.Equal(t, application.StatusSubmitted, rec.Status)
}

func TestCreateInvalidApplicationReturnsFindings(t *testing.T) {
	ts := newTestServer(t)

	app := testsupport.ValidApplication()
	app.PrimaryApplicant.Email = "nope"
	resp := postApplication(t, ts, app)
	require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	var body struct {
		Validation struct {
			Valid  bool `json:"valid"`
			Errors []struct {
				Path string `json:"path"`
			} `json:"errors"`
		} `json:"validation"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.False(t, body.Validation.Valid)
	require.NotEmpty(t, body.Validation.Errors)
	assert.Equal(t, "primaryApplicant.email", body.Validation.Errors[0].Path)
}

func TestCreateMalformedBody(t *testing.T) {
	ts := newTestServer(t)
	resp, err := http.Post(ts.URL+"/api/rental-applications", "application/json", strings.NewReader("{nope"))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestGetAndList(t *testing.T) {
	ts := newTestServer(t)
	postApplication(t, ts, testsupport.ValidApplication())

	resp, err := http.Get(ts.URL + "/api/rental-applications/1")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var rec storage.Stored
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&rec))
	assert.Equal(t, "Jordan Rivera", rec.Application.PrimaryApplicant.Name)

	listResp, err := http.Get(ts.URL + "/api/rental-applications")
	require.NoError(t, err)
	defer listResp.Body.Close()
	var recs []storage.Stored
	require.NoError(t, json.NewDecoder(listResp.Body).Decode(&recs))
	assert.Len(t, recs, 1)
}

func TestGetUnknownID(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/api/rental-applications/42")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	bad, err := http.Get(ts.URL + "/api/rental-applications/nope")
	require.NoError(t, err)
	defer bad.Body.Close()
	assert.Equal(t, http.StatusBadRequest, bad.StatusCode)
}

func patch(t *testing.T, ts *httptest.Server, id int, body string) *http.Response {
	t.Helper()
	req, err := http.NewRequest(http.MethodPatch,
		fmt.Sprintf("%s/api/rental-applications/%d", ts.URL, id), strings.NewReader(body))
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestPatchMergesPartialDocument(t *testing.T) {
	ts := newTestServer(t)
	postApplication(t, ts, testsupport.ValidApplication())

	resp := patch(t, ts, 1, `{"application": {"applicationDetails": {"apartmentNumber": "7A"}}}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var rec storage.Stored
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&rec))
	assert.Equal(t, "7A", rec.Application.ApplicationDetails.ApartmentNumber)
	assert.Equal(t, "100 Main St", rec.Application.ApplicationDetails.BuildingAddress,
		"untouched fields must survive the patch")
}

func TestPatchStatus(t *testing.T) {
	ts := newTestServer(t)
	postApplication(t, ts, testsupport.ValidApplication())

	resp := patch(t, ts, 1, `{"status": "approved"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var rec storage.Stored
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&rec))
	assert.Equal(t, application.StatusApproved, rec.Status)

	bad := patch(t, ts, 1, `{"status": "nonsense"}`)
	assert.Equal(t, http.StatusBadRequest, bad.StatusCode)
}

func TestDocumentDownload(t *testing.T) {
	ts := newTestServer(t)
	postApplication(t, ts, testsupport.ValidApplication())

	resp, err := http.Get(ts.URL + "/api/rental-applications/1/document")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	assert.Equal(t, "text/plain; charset=utf-8", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "rental-application-rivera-2024-03-15.txt")

	var body bytes.Buffer
	_, err = body.ReadFrom(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, body.String(), "100 Main St")
}

func TestDocumentPreviewOpensInline(t *testing.T) {
	ts := newTestServer(t)
	postApplication(t, ts, testsupport.ValidApplication())

	resp, err := http.Get(ts.URL + "/api/rental-applications/1/document?format=html")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	disposition := resp.Header.Get("Content-Disposition")
	assert.True(t, strings.HasPrefix(disposition, "inline;"), disposition)
	assert.NotContains(t, disposition, "attachment")
	assert.Equal(t, "text/html; charset=utf-8", resp.Header.Get("Content-Type"))
}

func TestDocumentInlineDispositionQuery(t *testing.T) {
	ts := newTestServer(t)
	postApplication(t, ts, testsupport.ValidApplication())

	resp, err := http.Get(ts.URL + "/api/rental-applications/1/document?disposition=inline")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, strings.HasPrefix(resp.Header.Get("Content-Disposition"), "inline;"))
}

func TestDocumentUnknownFormat(t *testing.T) {
	ts := newTestServer(t)
	postApplication(t, ts, testsupport.ValidApplication())

	resp, err := http.Get(ts.URL + "/api/rental-applications/1/document?format=docx")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestUploadAndFetchFile(t *testing.T) {
	ts := newTestServer(t)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", "../sneaky/../pay stub.pdf")
	require.NoError(t, err)
	_, err = part.Write([]byte("stub-bytes"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	resp, err := http.Post(ts.URL+"/api/upload", mw.FormDataContentType(), &buf)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var uploaded struct {
		Filename string `json:"filename"`
		Size     int    `json:"size"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&uploaded))
	assert.Equal(t, 10, uploaded.Size)
	assert.NotContains(t, uploaded.Filename, "/")
	assert.NotContains(t, uploaded.Filename, " ")

	fetch, err := http.Get(ts.URL + "/api/files/" + uploaded.Filename)
	require.NoError(t, err)
	defer fetch.Body.Close()
	require.Equal(t, http.StatusOK, fetch.StatusCode)

	var data bytes.Buffer
	_, err = data.ReadFrom(fetch.Body)
	require.NoError(t, err)
	assert.Equal(t, "stub-bytes", data.String())
}

func TestUploadWithoutFileField(t *testing.T) {
	ts := newTestServer(t)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField("other", "x"))
	require.NoError(t, mw.Close())

	resp, err := http.Post(ts.URL+"/api/upload", mw.FormDataContentType(), &buf)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestFetchUnknownFile(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/api/files/missing.pdf")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
