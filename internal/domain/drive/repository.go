package drive

import "context"

// ListQuery selects one page of files.
type ListQuery struct {
	Query     string
	OrderBy   string
	PageSize  int64
	PageToken string
}

// Repository defines the contract for the remote file-storage provider.
// Implementations return the error taxonomy from errors.go and never
// partially mutate remote state.
type Repository interface {
	// List fetches a single page of files matching the query.
	List(ctx context.Context, q ListQuery) (*FileList, error)
	// ListAll follows pagination tokens until exhausted and returns the
	// union of all pages.
	ListAll(ctx context.Context, query, orderBy string) ([]*FileRecord, error)
	// Get fetches metadata for a single file.
	Get(ctx context.Context, fileID string) (*FileRecord, error)
	// Download fetches metadata and raw content. It fails atomically:
	// either both calls succeed or no result is returned.
	Download(ctx context.Context, fileID string) (*FileContent, error)
	// Upload creates a file. The parent folder is set only when
	// req.FolderID is non-empty.
	Upload(ctx context.Context, req *UploadRequest) (*FileRecord, error)
	// Update sends only the fields supplied in req.
	Update(ctx context.Context, fileID string, req *UpdateRequest) (*FileRecord, error)
	// Delete removes a file.
	Delete(ctx context.Context, fileID string) error
	// CreateFolder creates a folder, optionally inside parentID.
	CreateFolder(ctx context.Context, name, parentID string) (*FolderRecord, error)
}
