package gallery

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"drivegallery/internal/domain/drive"
)

const (
	// rootFolderName is the well-known folder the gallery hangs off.
	rootFolderName = "3D"

	// uploadsFolderName is the per-folder drop box for user uploads.
	uploadsFolderName = "uploads"
)

// Service defines the business logic over the remote storage provider:
// plain file operations, the folder-preview aggregation, and the
// write-permission probe.
type Service interface {
	ListFiles(ctx context.Context, pageSize int64, pageToken, query string) (*drive.FileList, error)
	GetFile(ctx context.Context, fileID string) (*drive.FileRecord, error)
	DownloadFile(ctx context.Context, fileID string) (*drive.FileContent, error)
	UploadFile(ctx context.Context, req *drive.UploadRequest) (*drive.FileRecord, error)
	UpdateFile(ctx context.Context, fileID string, req *drive.UpdateRequest) (*drive.FileRecord, error)
	DeleteFile(ctx context.Context, fileID string) error

	FindFolderByName(ctx context.Context, name string) (*drive.FolderRecord, error)
	ListFoldersInFolder(ctx context.Context, parentID string) ([]*drive.FolderRecord, error)
	FirstImageInFolder(ctx context.Context, folderID string) (*drive.PreviewImage, error)
	FolderDescription(ctx context.Context, folderID string) *string
	FoldersWithPreviews(ctx context.Context) ([]*drive.FolderSummary, error)
	ImageAsBase64(ctx context.Context, fileID string) (*drive.ImageData, error)

	CreateUploadsFolder(ctx context.Context, folderID, folderName string) (*drive.FolderResult, error)
	SaveTextFile(ctx context.Context, fileName, content, parentID string) (*drive.FileResult, error)

	TestFolderPermissions(ctx context.Context, folderID string) *drive.PermissionResult
}

type service struct {
	repo drive.Repository
	log  zerolog.Logger
}

// NewService creates a new gallery service over the given provider
// adapter.
func NewService(repo drive.Repository, log zerolog.Logger) Service {
	return &service{repo: repo, log: log}
}

func (s *service) ListFiles(ctx context.Context, pageSize int64, pageToken, query string) (*drive.FileList, error) {
	return s.repo.List(ctx, drive.ListQuery{
		Query:     query,
		OrderBy:   "modifiedTime desc",
		PageSize:  pageSize,
		PageToken: pageToken,
	})
}

func (s *service) GetFile(ctx context.Context, fileID string) (*drive.FileRecord, error) {
	return s.repo.Get(ctx, fileID)
}

func (s *service) DownloadFile(ctx context.Context, fileID string) (*drive.FileContent, error) {
	return s.repo.Download(ctx, fileID)
}

func (s *service) UploadFile(ctx context.Context, req *drive.UploadRequest) (*drive.FileRecord, error) {
	return s.repo.Upload(ctx, req)
}

func (s *service) UpdateFile(ctx context.Context, fileID string, req *drive.UpdateRequest) (*drive.FileRecord, error) {
	return s.repo.Update(ctx, fileID, req)
}

func (s *service) DeleteFile(ctx context.Context, fileID string) error {
	return s.repo.Delete(ctx, fileID)
}

// FindFolderByName returns the first not-trashed folder with the exact
// name, or nil when none exists. Under name collisions the provider's
// default ordering decides which match wins.
func (s *service) FindFolderByName(ctx context.Context, name string) (*drive.FolderRecord, error) {
	q := fmt.Sprintf("name='%s' and mimeType='%s' and trashed=false",
		escapeQuery(name), drive.FolderMimeType)

	page, err := s.repo.List(ctx, drive.ListQuery{Query: q, PageSize: 1})
	if err != nil {
		return nil, err
	}
	if len(page.Files) == 0 {
		return nil, nil
	}
	return folderFromRecord(page.Files[0]), nil
}

// ListFoldersInFolder returns every direct subfolder of parentID,
// ordered by name. All pages are fetched before returning.
func (s *service) ListFoldersInFolder(ctx context.Context, parentID string) ([]*drive.FolderRecord, error) {
	q := fmt.Sprintf("'%s' in parents and mimeType='%s' and trashed=false",
		escapeQuery(parentID), drive.FolderMimeType)

	files, err := s.repo.ListAll(ctx, q, "name")
	if err != nil {
		return nil, err
	}

	folders := make([]*drive.FolderRecord, 0, len(files))
	for _, f := range files {
		folders = append(folders, folderFromRecord(f))
	}
	return folders, nil
}

// FirstImageInFolder returns the earliest-created image directly inside
// the folder, or nil when the folder has no images.
func (s *service) FirstImageInFolder(ctx context.Context, folderID string) (*drive.PreviewImage, error) {
	q := fmt.Sprintf("'%s' in parents and (mimeType contains 'image/') and trashed=false",
		escapeQuery(folderID))

	page, err := s.repo.List(ctx, drive.ListQuery{
		Query:    q,
		OrderBy:  "createdTime",
		PageSize: 1,
	})
	if err != nil {
		return nil, err
	}
	if len(page.Files) == 0 {
		return nil, nil
	}

	f := page.Files[0]
	return &drive.PreviewImage{
		ID:             f.ID,
		Name:           f.Name,
		MimeType:       f.MimeType,
		ThumbnailLink:  f.ThumbnailLink,
		WebContentLink: f.WebContentLink,
	}, nil
}

// FolderDescription reads the folder's description file. The lookup is
// best effort: any failure degrades to nil instead of propagating.
func (s *service) FolderDescription(ctx context.Context, folderID string) *string {
	existing, err := s.findFileByName(ctx, drive.DescriptionFileName, folderID)
	if err != nil {
		s.log.Warn().Err(err).Str("folder_id", folderID).Msg("description lookup failed")
		return nil
	}
	if existing == nil {
		return nil
	}

	content, err := s.repo.Download(ctx, existing.ID)
	if err != nil {
		s.log.Warn().Err(err).Str("folder_id", folderID).Msg("description read failed")
		return nil
	}

	text := string(content.Data)
	return &text
}

// FoldersWithPreviews resolves the root gallery folder, lists its
// subfolders, and joins each with its preview image and description.
// The per-folder fetches run concurrently; the result keeps the listing
// order, not completion order.
func (s *service) FoldersWithPreviews(ctx context.Context) ([]*drive.FolderSummary, error) {
	root, err := s.FindFolderByName(ctx, rootFolderName)
	if err != nil {
		return nil, err
	}
	if root == nil {
		return nil, &drive.NotFoundError{Msg: rootFolderName + " folder not found"}
	}

	folders, err := s.ListFoldersInFolder(ctx, root.ID)
	if err != nil {
		return nil, err
	}

	summaries := make([]*drive.FolderSummary, len(folders))
	g, gctx := errgroup.WithContext(ctx)

	for i, folder := range folders {
		g.Go(func() error {
			var (
				image *drive.PreviewImage
				desc  *string
			)

			var fg errgroup.Group
			fg.Go(func() error {
				img, err := s.FirstImageInFolder(gctx, folder.ID)
				if err != nil {
					// A failed preview fetch degrades this folder's
					// image to null; it never fails the aggregate.
					s.log.Warn().Err(err).Str("folder", folder.Name).Msg("preview image fetch failed")
					return nil
				}
				image = img
				return nil
			})
			fg.Go(func() error {
				desc = s.FolderDescription(gctx, folder.ID)
				return nil
			})
			fg.Wait()

			summaries[i] = &drive.FolderSummary{
				ID:           folder.ID,
				Name:         folder.Name,
				CreatedTime:  folder.CreatedTime,
				ModifiedTime: folder.ModifiedTime,
				Description:  desc,
				Image:        image,
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return summaries, nil
}

func (s *service) ImageAsBase64(ctx context.Context, fileID string) (*drive.ImageData, error) {
	content, err := s.repo.Download(ctx, fileID)
	if err != nil {
		return nil, err
	}
	return &drive.ImageData{
		Base64:   base64.StdEncoding.EncodeToString(content.Data),
		MimeType: content.MimeType,
	}, nil
}

// CreateUploadsFolder creates the "uploads" folder inside folderID if
// it does not exist yet. Calling it twice never creates duplicates.
func (s *service) CreateUploadsFolder(ctx context.Context, folderID, folderName string) (*drive.FolderResult, error) {
	existing, err := s.findSubfolderByName(ctx, uploadsFolderName, folderID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return &drive.FolderResult{
			Folder:  existing,
			Created: false,
			Message: fmt.Sprintf("Uploads folder already exists in %s", folderName),
		}, nil
	}

	created, err := s.repo.CreateFolder(ctx, uploadsFolderName, folderID)
	if err != nil {
		return nil, err
	}
	return &drive.FolderResult{
		Folder:  created,
		Created: true,
		Message: fmt.Sprintf("Uploads folder created in %s", folderName),
	}, nil
}

// SaveTextFile upserts a plain-text file by exact name inside parentID:
// the content of an existing file is overwritten, otherwise the file is
// created. The bytes are written exactly as given.
func (s *service) SaveTextFile(ctx context.Context, fileName, content, parentID string) (*drive.FileResult, error) {
	existing, err := s.findFileByName(ctx, fileName, parentID)
	if err != nil {
		return nil, err
	}

	if existing != nil {
		updated, err := s.repo.Update(ctx, existing.ID, &drive.UpdateRequest{
			MimeType: "text/plain",
			Data:     []byte(content),
		})
		if err != nil {
			return nil, err
		}
		return &drive.FileResult{
			File:    updated,
			Created: false,
			Message: "Description updated successfully",
		}, nil
	}

	created, err := s.repo.Upload(ctx, &drive.UploadRequest{
		Name:     fileName,
		MimeType: "text/plain",
		Data:     []byte(content),
		FolderID: parentID,
	})
	if err != nil {
		return nil, err
	}
	return &drive.FileResult{
		File:    created,
		Created: true,
		Message: "Description created successfully",
	}, nil
}

// findSubfolderByName looks up a folder by exact name inside a parent.
func (s *service) findSubfolderByName(ctx context.Context, name, parentID string) (*drive.FolderRecord, error) {
	q := fmt.Sprintf("name='%s' and '%s' in parents and mimeType='%s' and trashed=false",
		escapeQuery(name), escapeQuery(parentID), drive.FolderMimeType)

	page, err := s.repo.List(ctx, drive.ListQuery{Query: q, PageSize: 1})
	if err != nil {
		return nil, err
	}
	if len(page.Files) == 0 {
		return nil, nil
	}
	return folderFromRecord(page.Files[0]), nil
}

// findFileByName looks up a plain-text file by exact name inside a
// parent. The first match is canonical.
func (s *service) findFileByName(ctx context.Context, name, parentID string) (*drive.FileRecord, error) {
	q := fmt.Sprintf("name='%s' and '%s' in parents and mimeType='text/plain' and trashed=false",
		escapeQuery(name), escapeQuery(parentID))

	page, err := s.repo.List(ctx, drive.ListQuery{Query: q, PageSize: 1})
	if err != nil {
		return nil, err
	}
	if len(page.Files) == 0 {
		return nil, nil
	}
	return page.Files[0], nil
}

func folderFromRecord(f *drive.FileRecord) *drive.FolderRecord {
	return &drive.FolderRecord{
		ID:           f.ID,
		Name:         f.Name,
		CreatedTime:  f.CreatedTime,
		ModifiedTime: f.ModifiedTime,
	}
}

// escapeQuery escapes a literal for inclusion in a Drive query string.
func escapeQuery(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return strings.ReplaceAll(s, `'`, `\'`)
}
