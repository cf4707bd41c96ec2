package upload

import (
	"context"
	"log/slog"
)

// Result summarizes one Upload call.
type Result struct {
	Files   int
	Batches int
	Message string
}

// Uploader is the collaborator that moves a prepared manifest to its
// destination. Transport, authentication and retry policy live behind this
// seam, outside this module.
type Uploader interface {
	Upload(ctx context.Context, manifest *Manifest) (Result, error)
}

// NopUploader accepts manifests without transferring anything. It stands in
// when no transport is configured and reports what would have been uploaded.
type NopUploader struct {
	Logger *slog.Logger
}

// Upload logs the prepared manifest and reports its shape.
func (u *NopUploader) Upload(ctx context.Context, manifest *Manifest) (Result, error) {
	u.Logger.Info("upload manifest prepared",
		"root", manifest.Root,
		"files", len(manifest.Files),
		"batches", len(manifest.Batches),
		"skipped", manifest.SkippedCount,
		"envExample", manifest.EnvExample != "",
	)
	return Result{
		Files:   len(manifest.Files),
		Batches: len(manifest.Batches),
		Message: "manifest prepared; no transport configured",
	}, nil
}
