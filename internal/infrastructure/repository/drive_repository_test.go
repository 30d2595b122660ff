package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	driveapi "google.golang.org/api/drive/v3"
	"google.golang.org/api/option"

	"drivegallery/internal/domain/drive"
)

const testIdentity = "gallery@project.iam.gserviceaccount.com"

// newTestRepo builds a repository whose Drive service talks to the
// given fake API handler.
func newTestRepo(t *testing.T, handler http.HandlerFunc) *DriveRepository {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	svc, err := driveapi.NewService(context.Background(),
		option.WithEndpoint(srv.URL),
		option.WithHTTPClient(srv.Client()))
	require.NoError(t, err)

	return NewDriveRepository(svc, testIdentity)
}

func writeJSON(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	fmt.Fprint(w, body)
}

func apiError(w http.ResponseWriter, code int, reason, message string) {
	writeJSON(w, code, fmt.Sprintf(
		`{"error": {"code": %d, "message": %q, "errors": [{"reason": %q, "message": %q}]}}`,
		code, message, reason, message))
}

func TestListPassesQueryOptions(t *testing.T) {
	repo := newTestRepo(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "trashed=false", q.Get("q"))
		assert.Equal(t, "name", q.Get("orderBy"))
		assert.Equal(t, "5", q.Get("pageSize"))
		assert.Equal(t, "tok", q.Get("pageToken"))
		assert.Equal(t, "true", q.Get("supportsAllDrives"))
		assert.Equal(t, "true", q.Get("includeItemsFromAllDrives"))
		writeJSON(w, http.StatusOK, `{"files": [{"id": "a", "name": "A", "mimeType": "image/png"}]}`)
	})

	list, err := repo.List(context.Background(), drive.ListQuery{
		Query:     "trashed=false",
		OrderBy:   "name",
		PageSize:  5,
		PageToken: "tok",
	})
	require.NoError(t, err)
	require.Len(t, list.Files, 1)
	assert.Equal(t, "a", list.Files[0].ID)
	assert.Equal(t, "image/png", list.Files[0].MimeType)
	assert.Empty(t, list.NextPageToken)
}

func TestListAllFollowsPagination(t *testing.T) {
	pages := map[string]string{
		"":   `{"files": [{"id": "a", "name": "A"}, {"id": "b", "name": "B"}], "nextPageToken": "p2"}`,
		"p2": `{"files": [{"id": "c", "name": "C"}], "nextPageToken": "p3"}`,
		"p3": `{"files": [{"id": "d", "name": "D"}]}`,
	}

	requests := 0
	repo := newTestRepo(t, func(w http.ResponseWriter, r *http.Request) {
		requests++
		body, ok := pages[r.URL.Query().Get("pageToken")]
		require.True(t, ok, "unexpected page token")
		writeJSON(w, http.StatusOK, body)
	})

	files, err := repo.ListAll(context.Background(), "trashed=false", "name")
	require.NoError(t, err)
	assert.Equal(t, 3, requests)

	names := make([]string, 0, len(files))
	for _, f := range files {
		names = append(names, f.Name)
	}
	assert.Equal(t, []string{"A", "B", "C", "D"}, names)
}

func TestGetNotFound(t *testing.T) {
	repo := newTestRepo(t, func(w http.ResponseWriter, r *http.Request) {
		apiError(w, http.StatusNotFound, "notFound", "File not found: nope")
	})

	record, err := repo.Get(context.Background(), "nope")
	assert.Nil(t, record)
	require.Error(t, err)
	assert.ErrorIs(t, err, drive.ErrNotFound)
	assert.Contains(t, err.Error(), "File not found")
}

func TestCreateFolderPermissionDenied(t *testing.T) {
	repo := newTestRepo(t, func(w http.ResponseWriter, r *http.Request) {
		apiError(w, http.StatusForbidden, "insufficientFilePermissions",
			"The user does not have sufficient permissions for this file.")
	})

	folder, err := repo.CreateFolder(context.Background(), "uploads", "parent")
	assert.Nil(t, folder)

	var denied *drive.PermissionDeniedError
	require.ErrorAs(t, err, &denied)
	assert.Contains(t, denied.Message, testIdentity)
	assert.Contains(t, denied.Message, "Editor")
}

func TestCreateFolderQuotaMessageDenied(t *testing.T) {
	// Some quota rejections come back with a generic reason; the known
	// service-account message still classifies as permission denied.
	repo := newTestRepo(t, func(w http.ResponseWriter, r *http.Request) {
		apiError(w, http.StatusForbidden, "forbidden",
			"Service Accounts do not have storage quota. Leverage shared drives or use OAuth delegation instead.")
	})

	_, err := repo.CreateFolder(context.Background(), "uploads", "parent")

	var denied *drive.PermissionDeniedError
	require.ErrorAs(t, err, &denied)
}

func TestServerErrorIsProviderError(t *testing.T) {
	repo := newTestRepo(t, func(w http.ResponseWriter, r *http.Request) {
		apiError(w, http.StatusInternalServerError, "backendError", "Backend Error")
	})

	_, err := repo.Get(context.Background(), "a")
	require.Error(t, err)

	var provider *drive.ProviderError
	require.ErrorAs(t, err, &provider)
	assert.Equal(t, "get file", provider.Op)
	assert.Contains(t, err.Error(), "Backend Error")

	var denied *drive.PermissionDeniedError
	assert.False(t, errors.As(err, &denied))
}

func TestDownload(t *testing.T) {
	repo := newTestRepo(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("alt") == "media" {
			w.Header().Set("Content-Type", "image/png")
			w.Write([]byte("png-bytes"))
			return
		}
		writeJSON(w, http.StatusOK, `{"name": "cat.png", "mimeType": "image/png"}`)
	})

	content, err := repo.Download(context.Background(), "img1")
	require.NoError(t, err)
	assert.Equal(t, "cat.png", content.Name)
	assert.Equal(t, "image/png", content.MimeType)
	assert.Equal(t, []byte("png-bytes"), content.Data)
}

func TestDownloadFailsAtomically(t *testing.T) {
	repo := newTestRepo(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("alt") == "media" {
			apiError(w, http.StatusInternalServerError, "backendError", "Backend Error")
			return
		}
		writeJSON(w, http.StatusOK, `{"name": "cat.png", "mimeType": "image/png"}`)
	})

	content, err := repo.Download(context.Background(), "img1")
	assert.Nil(t, content)
	require.Error(t, err)
}

func TestUploadSendsEmptyDescription(t *testing.T) {
	var body map[string]any
	repo := newTestRepo(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		writeJSON(w, http.StatusOK, `{"id": "n1", "name": "note.txt"}`)
	})

	record, err := repo.Upload(context.Background(), &drive.UploadRequest{
		Name:     "note.txt",
		FolderID: "parent",
	})
	require.NoError(t, err)
	assert.Equal(t, "n1", record.ID)

	assert.Equal(t, "note.txt", body["name"])
	assert.Equal(t, []any{"parent"}, body["parents"])

	desc, present := body["description"]
	assert.True(t, present, "description must be sent even when empty")
	assert.Equal(t, "", desc)
}

func TestUpdateSendsOnlySuppliedFields(t *testing.T) {
	var body map[string]any
	repo := newTestRepo(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPatch, r.Method)
		require.True(t, strings.HasSuffix(r.URL.Path, "/files/f1"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		writeJSON(w, http.StatusOK, `{"id": "f1", "name": "unchanged"}`)
	})

	description := "new text"
	_, err := repo.Update(context.Background(), "f1", &drive.UpdateRequest{
		Description: &description,
	})
	require.NoError(t, err)

	assert.Equal(t, "new text", body["description"])
	_, hasName := body["name"]
	assert.False(t, hasName, "omitted name must not be sent")
}

func TestDelete(t *testing.T) {
	var method, path string
	repo := newTestRepo(t, func(w http.ResponseWriter, r *http.Request) {
		method = r.Method
		path = r.URL.Path
		w.WriteHeader(http.StatusNoContent)
	})

	err := repo.Delete(context.Background(), "f1")
	require.NoError(t, err)
	assert.Equal(t, http.MethodDelete, method)
	assert.True(t, strings.HasSuffix(path, "/files/f1"))
}
