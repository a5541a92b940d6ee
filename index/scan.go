package index

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sync"
)

// IndexWorkspace clears the index and scans the directory tree under
// rootPath. Directory walking applies the exclusion rules and the size
// ceiling; surviving files are stat'ed by a bounded worker pool, one worker
// per CPU. A file that cannot be stat'ed is skipped; the scan as a whole
// never fails because of one bad file.
//
// Returns ErrDirectoryNotFound if rootPath does not exist. On cancellation
// the entries inserted so far remain in place but the index does not reach
// the Indexed state.
func (fi *FileIndex) IndexWorkspace(ctx context.Context, rootPath string) error {
	root := normalizePath(rootPath)

	info, err := os.Stat(root)
	if err != nil || !info.IsDir() {
		return fmt.Errorf("%w: %s", ErrDirectoryNotFound, rootPath)
	}

	fi.mu.Lock()
	fi.files = make(map[string]*FileEntry)
	fi.sortedPaths = make([]string, 0)
	fi.state = stateIndexing
	fi.rootDir = root
	fi.mu.Unlock()

	workerCount := runtime.NumCPU()
	jobs := make(chan string, 128)

	var wg sync.WaitGroup
	for i := 0; i < workerCount; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for path := range jobs {
				stat, statErr := os.Stat(path)
				if statErr != nil || stat.IsDir() {
					continue // vanished or unreadable mid-scan
				}
				if fi.matcher != nil && fi.matcher.IsFileTooLarge(stat.Size()) {
					continue
				}
				fi.insert(buildEntry(path, root, stat))
			}
		}()
	}

	walkErr := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if ctx.Err() != nil {
			return filepath.SkipAll
		}
		if err != nil {
			return nil // unreadable entry, skip
		}
		if d.IsDir() {
			if path != root && fi.matcher != nil && fi.matcher.ShouldIgnoreDir(path) {
				return filepath.SkipDir
			}
			return nil
		}
		if fi.matcher != nil && fi.matcher.ShouldIgnore(path) {
			return nil
		}
		jobs <- normalizePath(path)
		return nil
	})

	close(jobs)
	wg.Wait()

	if ctx.Err() != nil {
		return ctx.Err()
	}
	if walkErr != nil {
		return walkErr
	}

	fi.mu.Lock()
	fi.state = stateIndexed
	fi.mu.Unlock()
	return nil
}
