package gallery

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"drivegallery/internal/domain/drive"
)

// TestFolderPermissions checks write access to a folder by creating and
// immediately deleting a uniquely-named marker file. It never returns
// an error: every failure is classified and reported as data.
func (s *service) TestFolderPermissions(ctx context.Context, folderID string) *drive.PermissionResult {
	markerName := fmt.Sprintf(".permission-probe-%d-%s.txt", time.Now().UnixNano(), uuid.New().String())

	created, err := s.repo.Upload(ctx, &drive.UploadRequest{
		Name:     markerName,
		MimeType: "text/plain",
		Data:     []byte("permission probe"),
		FolderID: folderID,
	})
	if err != nil {
		var denied *drive.PermissionDeniedError
		if errors.As(err, &denied) {
			return &drive.PermissionResult{CanCreate: false, Message: denied.Message}
		}
		return &drive.PermissionResult{
			CanCreate: false,
			Message:   fmt.Sprintf("cannot create files in this folder: %v", err),
		}
	}

	// A failed cleanup leaks one marker file; the probe result stands.
	if err := s.repo.Delete(ctx, created.ID); err != nil {
		s.log.Warn().Err(err).Str("marker_id", created.ID).Msg("probe marker cleanup failed")
	}

	return &drive.PermissionResult{CanCreate: true, Message: "Folder is writable"}
}
