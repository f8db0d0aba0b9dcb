package adapters

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"buildstage/internal/ports"
	"buildstage/internal/types"
)

const defaultCopyWorkers = 4

// StagerFSAdapter stages shared libraries from the package cache into
// the build staging directory.
type StagerFSAdapter struct {
	Workers int
}

func NewStagerFSAdapter() StagerFSAdapter {
	return StagerFSAdapter{Workers: defaultCopyWorkers}
}

// ListArtifacts reads the artifact directories of one resolved
// dependency. A directory that does not exist is skipped: a dependency
// without staged artifacts is not an error.
func (a StagerFSAdapter) ListArtifacts(dep types.ResolvedDependency) ([]types.ArtifactListing, error) {
	var listings []types.ArtifactListing
	for _, dir := range dep.ArtifactDirs {
		entries, err := os.ReadDir(dir)
		if os.IsNotExist(err) {
			continue
		}
		if err != nil {
			return nil, stagingError(fmt.Sprintf("cannot read artifact dir %s", dir), err)
		}
		listing := types.ArtifactListing{Name: dep.Name, Version: dep.Version, Dir: dir}
		for _, entry := range entries {
			if entry.IsDir() {
				continue
			}
			listing.Files = append(listing.Files, entry.Name())
		}
		listings = append(listings, listing)
	}
	return listings, nil
}

// CopyArtifacts copies the planned files concurrently. The count of
// files copied is returned even on failure so the caller can report
// how far a partially staged run got.
func (a StagerFSAdapter) CopyArtifacts(ctx context.Context, operations []types.StagedArtifact) (int, error) {
	if len(operations) == 0 {
		return 0, nil
	}
	destDirs := map[string]struct{}{}
	for _, operation := range operations {
		destDirs[filepath.Dir(operation.Destination)] = struct{}{}
	}
	for dir := range destDirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return 0, stagingError(fmt.Sprintf("cannot create staging dir %s", dir), err)
		}
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	workerCount := a.Workers
	if workerCount <= 0 {
		workerCount = defaultCopyWorkers
	}
	if len(operations) < workerCount {
		workerCount = len(operations)
	}
	copied := 0
	var mu sync.Mutex
	var errMu sync.Mutex
	var firstErr error
	sem := make(chan struct{}, workerCount)
	var wg sync.WaitGroup
	for _, operation := range operations {
		operation := operation
		wg.Add(1)
		go func() {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()
			if ctx.Err() != nil {
				return
			}
			if err := copyArtifactFile(operation.Source, operation.Destination); err != nil {
				errMu.Lock()
				if firstErr == nil {
					firstErr = err
					cancel()
				}
				errMu.Unlock()
				return
			}
			mu.Lock()
			copied++
			mu.Unlock()
		}()
	}
	wg.Wait()
	if firstErr != nil {
		return copied, firstErr
	}
	return copied, nil
}

func copyArtifactFile(srcPath string, destPath string) error {
	srcFile, err := os.Open(srcPath)
	if err != nil {
		return stagingError(fmt.Sprintf("cannot open %s", srcPath), err)
	}
	defer srcFile.Close()
	destFile, err := os.Create(destPath)
	if err != nil {
		return stagingError(fmt.Sprintf("cannot create %s", destPath), err)
	}
	defer destFile.Close()
	if _, err := io.Copy(destFile, srcFile); err != nil {
		return stagingError(fmt.Sprintf("cannot copy %s", destPath), err)
	}
	return nil
}

func stagingError(msg string, cause error) error {
	return errbuilder.New().
		WithCode(errbuilder.CodeInternal).
		WithMsg("staging failed: " + msg).
		WithCause(cause)
}

var _ ports.ArtifactStagerPort = StagerFSAdapter{}
