package pipeline

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/backmassage/reviewtool/internal/display"
	"github.com/backmassage/reviewtool/internal/logging"
	"github.com/backmassage/reviewtool/internal/term"
)

// copier executes the copy jobs of a plan and remembers every file it
// creates so a failed run can be rolled back. Files that already existed
// are replaced atomically and never recorded, so rollback leaves them.
type copier struct {
	log     *logging.Logger
	mu      sync.Mutex
	created []string
	dirs    []string // created folders, innermost last
	copied  int
	bytes   int64
}

// dropMissing removes the jobs whose source file no longer exists and
// returns how many distinct sources were dropped.
func dropMissing(p *Plan, log *logging.Logger) int {
	missing := make(map[string]bool)
	kept := p.Jobs[:0]
	for _, j := range p.Jobs {
		gone, seen := missing[j.Src]
		if !seen {
			_, err := os.Stat(j.Src)
			gone = err != nil
			missing[j.Src] = gone
			if gone {
				log.Warn("Source file missing, skipped: %s", filepath.Base(j.Src))
			}
		}
		if !gone {
			kept = append(kept, j)
		}
	}
	p.Jobs = kept
	n := 0
	for _, gone := range missing {
		if gone {
			n++
		}
	}
	return n
}

// run copies jobs on at most workers goroutines. The first failure cancels
// the remaining copies.
func (c *copier) run(ctx context.Context, jobs []CopyJob, workers int) error {
	if len(jobs) == 0 {
		return ctx.Err()
	}
	progress := display.NewProgress(progressWriter(), len(jobs), "Copying")
	defer progress.Finish()

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for _, job := range jobs {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			n, err := c.copyFile(job.Src, job.Dst)
			if err != nil {
				return fmt.Errorf("copy %s to %s: %w", filepath.Base(job.Src), job.Dst, err)
			}
			c.mu.Lock()
			c.copied++
			c.bytes += n
			c.mu.Unlock()
			progress.Add(1)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	return ctx.Err()
}

// copyFile writes src to a temporary file beside dst and renames it into
// place, so a failed copy never truncates an existing dst.
func (c *copier) copyFile(src, dst string) (int64, error) {
	in, err := os.Open(src)
	if err != nil {
		return 0, err
	}
	defer in.Close()
	fi, err := in.Stat()
	if err != nil {
		return 0, err
	}
	_, statErr := os.Lstat(dst)
	existed := statErr == nil

	out, err := os.CreateTemp(filepath.Dir(dst), ".reviewtool-*.tmp")
	if err != nil {
		return 0, err
	}
	tmp := out.Name()
	n, err := io.Copy(out, in)
	if cerr := out.Close(); err == nil {
		err = cerr
	}
	if err == nil {
		err = os.Chmod(tmp, 0o644)
	}
	if err != nil {
		os.Remove(tmp)
		return n, err
	}
	if err := os.Chtimes(tmp, fi.ModTime(), fi.ModTime()); err != nil {
		c.log.Debug("Modification time not kept on %s: %v", filepath.Base(dst), err)
	}
	if err := os.Rename(tmp, dst); err != nil {
		os.Remove(tmp)
		return n, err
	}
	if !existed {
		c.mu.Lock()
		c.created = append(c.created, dst)
		c.mu.Unlock()
	}
	return n, nil
}

// mkdir creates dir when missing and remembers it for rollback.
func (c *copier) mkdir(dir string) error {
	if _, err := os.Stat(dir); err == nil {
		return nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	c.dirs = append(c.dirs, dir)
	return nil
}

// rollback removes every file and folder this copier created. Folders are
// only removed when empty.
func (c *copier) rollback(log *logging.Logger) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, f := range c.created {
		if err := os.Remove(f); err != nil && !os.IsNotExist(err) {
			log.Warn("Cleanup failed: %v", err)
		}
	}
	for i := len(c.dirs) - 1; i >= 0; i-- {
		_ = os.Remove(c.dirs[i])
	}
	log.Warn("Removed %d partial output files", len(c.created))
	c.created = nil
	c.dirs = nil
}

func progressWriter() io.Writer {
	if term.IsTerminal(os.Stderr) {
		return os.Stderr
	}
	return io.Discard
}
