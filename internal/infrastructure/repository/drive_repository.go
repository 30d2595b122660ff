package repository

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	driveapi "google.golang.org/api/drive/v3"
	"google.golang.org/api/googleapi"

	"drivegallery/internal/domain/drive"
)

const (
	fileFields = "id, name, mimeType, size, createdTime, modifiedTime, webViewLink, webContentLink, thumbnailLink"
	listFields = "nextPageToken, files(" + fileFields + ")"

	defaultPageSize = 10
	fullPageSize    = 100
)

// DriveRepository implements drive.Repository against the Google Drive
// v3 API.
type DriveRepository struct {
	svc      *driveapi.Service
	identity string
}

// NewDriveRepository wraps an authenticated Drive service. identity is
// the account named in permission-denied remediation messages.
func NewDriveRepository(svc *driveapi.Service, identity string) *DriveRepository {
	return &DriveRepository{svc: svc, identity: identity}
}

func (r *DriveRepository) List(ctx context.Context, q drive.ListQuery) (*drive.FileList, error) {
	pageSize := q.PageSize
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}

	call := r.svc.Files.List().
		PageSize(pageSize).
		Fields(listFields).
		SupportsAllDrives(true).
		IncludeItemsFromAllDrives(true).
		Context(ctx)

	if q.OrderBy != "" {
		call = call.OrderBy(q.OrderBy)
	}
	if q.PageToken != "" {
		call = call.PageToken(q.PageToken)
	}
	if q.Query != "" {
		call = call.Q(q.Query)
	}

	res, err := call.Do()
	if err != nil {
		return nil, r.classify("list files", err)
	}

	list := &drive.FileList{
		Files:         make([]*drive.FileRecord, 0, len(res.Files)),
		NextPageToken: res.NextPageToken,
	}
	for _, f := range res.Files {
		list.Files = append(list.Files, toRecord(f))
	}
	return list, nil
}

func (r *DriveRepository) ListAll(ctx context.Context, query, orderBy string) ([]*drive.FileRecord, error) {
	var all []*drive.FileRecord
	pageToken := ""
	for {
		page, err := r.List(ctx, drive.ListQuery{
			Query:     query,
			OrderBy:   orderBy,
			PageSize:  fullPageSize,
			PageToken: pageToken,
		})
		if err != nil {
			return nil, err
		}
		all = append(all, page.Files...)
		if page.NextPageToken == "" {
			return all, nil
		}
		pageToken = page.NextPageToken
	}
}

func (r *DriveRepository) Get(ctx context.Context, fileID string) (*drive.FileRecord, error) {
	f, err := r.svc.Files.Get(fileID).
		Fields(fileFields).
		SupportsAllDrives(true).
		Context(ctx).
		Do()
	if err != nil {
		return nil, r.classify("get file", err)
	}
	return toRecord(f), nil
}

func (r *DriveRepository) Download(ctx context.Context, fileID string) (*drive.FileContent, error) {
	meta, err := r.svc.Files.Get(fileID).
		Fields("name, mimeType").
		SupportsAllDrives(true).
		Context(ctx).
		Do()
	if err != nil {
		return nil, r.classify("download file", err)
	}

	res, err := r.svc.Files.Get(fileID).
		SupportsAllDrives(true).
		Context(ctx).
		Download()
	if err != nil {
		return nil, r.classify("download file", err)
	}
	defer res.Body.Close()

	data, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, r.classify("download file", err)
	}

	return &drive.FileContent{
		Name:     meta.Name,
		MimeType: meta.MimeType,
		Data:     data,
	}, nil
}

func (r *DriveRepository) Upload(ctx context.Context, req *drive.UploadRequest) (*drive.FileRecord, error) {
	meta := &driveapi.File{
		Name:        req.Name,
		Description: req.Description,
		// An absent description is sent as the empty string, never null.
		ForceSendFields: []string{"Description"},
	}
	if req.FolderID != "" {
		meta.Parents = []string{req.FolderID}
	}

	call := r.svc.Files.Create(meta).
		Fields(fileFields).
		SupportsAllDrives(true).
		Context(ctx)
	if len(req.Data) > 0 || req.MimeType != "" {
		call = call.Media(bytes.NewReader(req.Data), googleapi.ContentType(req.MimeType))
	}

	f, err := call.Do()
	if err != nil {
		return nil, r.classify("upload file", err)
	}
	return toRecord(f), nil
}

func (r *DriveRepository) Update(ctx context.Context, fileID string, req *drive.UpdateRequest) (*drive.FileRecord, error) {
	meta := &driveapi.File{}
	if req.Name != nil {
		meta.Name = *req.Name
		meta.ForceSendFields = append(meta.ForceSendFields, "Name")
	}
	if req.Description != nil {
		meta.Description = *req.Description
		meta.ForceSendFields = append(meta.ForceSendFields, "Description")
	}

	call := r.svc.Files.Update(fileID, meta).
		Fields(fileFields).
		SupportsAllDrives(true).
		Context(ctx)
	if req.Data != nil {
		call = call.Media(bytes.NewReader(req.Data), googleapi.ContentType(req.MimeType))
	}

	f, err := call.Do()
	if err != nil {
		return nil, r.classify("update file", err)
	}
	return toRecord(f), nil
}

func (r *DriveRepository) Delete(ctx context.Context, fileID string) error {
	err := r.svc.Files.Delete(fileID).
		SupportsAllDrives(true).
		Context(ctx).
		Do()
	if err != nil {
		return r.classify("delete file", err)
	}
	return nil
}

func (r *DriveRepository) CreateFolder(ctx context.Context, name, parentID string) (*drive.FolderRecord, error) {
	meta := &driveapi.File{
		Name:     name,
		MimeType: drive.FolderMimeType,
	}
	if parentID != "" {
		meta.Parents = []string{parentID}
	}

	f, err := r.svc.Files.Create(meta).
		Fields("id, name, createdTime, modifiedTime").
		SupportsAllDrives(true).
		Context(ctx).
		Do()
	if err != nil {
		return nil, r.classify("create folder", err)
	}

	return &drive.FolderRecord{
		ID:           f.Id,
		Name:         f.Name,
		CreatedTime:  f.CreatedTime,
		ModifiedTime: f.ModifiedTime,
	}, nil
}

// classify maps a raw API failure onto the domain error taxonomy.
// Write attempts rejected for lack of quota or editor access become
// PermissionDeniedError; everything else wraps as ProviderError.
func (r *DriveRepository) classify(op string, err error) error {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		if apiErr.Code == http.StatusNotFound {
			return &drive.NotFoundError{Msg: fmt.Sprintf("%s: %s", op, apiErr.Message)}
		}
		if apiErr.Code == http.StatusForbidden && isPermissionReason(apiErr) {
			return &drive.PermissionDeniedError{
				Message: fmt.Sprintf("no permission to write to this folder: share it with %s and grant Editor access", r.identity),
			}
		}
	}
	return &drive.ProviderError{Op: op, Err: err}
}

func isPermissionReason(apiErr *googleapi.Error) bool {
	for _, item := range apiErr.Errors {
		switch item.Reason {
		case "storageQuotaExceeded", "insufficientFilePermissions", "insufficientPermissions", "appNotAuthorizedToFile":
			return true
		}
	}
	// Service accounts have no storage of their own; Drive rejects
	// creates in unshared folders with this message.
	return strings.Contains(apiErr.Message, "Service Accounts do not have storage quota")
}

func toRecord(f *driveapi.File) *drive.FileRecord {
	return &drive.FileRecord{
		ID:             f.Id,
		Name:           f.Name,
		MimeType:       f.MimeType,
		Size:           f.Size,
		CreatedTime:    f.CreatedTime,
		ModifiedTime:   f.ModifiedTime,
		WebViewLink:    f.WebViewLink,
		WebContentLink: f.WebContentLink,
		ThumbnailLink:  f.ThumbnailLink,
	}
}
