package services

import (
	"context"
	"fmt"
	"mime/multipart"
	"strings"
	"vitrine_server/storage"

	"github.com/MonkyMars/gecho"
)

// pendingUploads tracks blobs written while handling a single request so they
// can be removed when persistence fails later in the same request.
type pendingUploads struct {
	paths []string
}

func (p *pendingUploads) add(path string) {
	p.paths = append(p.paths, path)
}

// cleanup removes every tracked blob. Failures are logged and swallowed since
// cleanup already runs on an error path.
func (p *pendingUploads) cleanup(store storage.Store, logger *gecho.Logger) {
	for _, path := range p.paths {
		if err := store.Delete(path); err != nil {
			logger.Warn("Failed to clean up pending upload",
				gecho.Field("path", path),
				gecho.Field("error", err),
			)
		}
	}
	p.paths = nil
}

// uploadHeader stores a single multipart file under prefix and tracks it.
func uploadHeader(ctx context.Context, store storage.Store, pending *pendingUploads, prefix string, fh *multipart.FileHeader) (string, error) {
	f, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer f.Close()

	path, err := store.Put(ctx, prefix, fh.Filename, f)
	if err != nil {
		return "", fmt.Errorf("failed to store uploaded file: %w", err)
	}
	pending.add(path)
	return path, nil
}

// uploadHeaders stores each file in order under prefix, tracking every blob.
func uploadHeaders(ctx context.Context, store storage.Store, pending *pendingUploads, prefix string, fhs []*multipart.FileHeader) ([]string, error) {
	paths := make([]string, 0, len(fhs))
	for _, fh := range fhs {
		path, err := uploadHeader(ctx, store, pending, prefix, fh)
		if err != nil {
			return nil, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// normalizeRefs canonicalizes client-supplied image references, dropping
// entries that normalize to empty.
func normalizeRefs(refs []string) []string {
	out := make([]string, 0, len(refs))
	for _, ref := range refs {
		if normalized := storage.NormalizePath(ref); normalized != "" {
			out = append(out, normalized)
		}
	}
	return out
}

// diffRetained returns the paths in current that are absent from retained,
// preserving current's order. These are the blobs to delete after a
// successful update.
func diffRetained(current, retained []string) []string {
	keep := make(map[string]struct{}, len(retained))
	for _, path := range retained {
		keep[path] = struct{}{}
	}

	var removed []string
	for _, path := range current {
		if _, ok := keep[path]; !ok {
			removed = append(removed, path)
		}
	}
	return removed
}

// removeFirst returns paths without the first occurrence of target. The
// second return reports whether target was present at all.
func removeFirst(paths []string, target string) ([]string, bool) {
	remaining := make([]string, 0, len(paths))
	found := false
	for _, path := range paths {
		if !found && path == target {
			found = true
			continue
		}
		remaining = append(remaining, path)
	}
	return remaining, found
}

// deleteBlobs best-effort deletes paths from the store, logging failures.
func deleteBlobs(store storage.Store, logger *gecho.Logger, paths []string) {
	for _, path := range paths {
		if path == "" {
			continue
		}
		if err := store.Delete(path); err != nil {
			logger.Warn("Failed to delete blob",
				gecho.Field("path", path),
				gecho.Field("error", err),
			)
		}
	}
}

// ServiceItemInput is one submitted item row on a service update. A missing
// ID means create; the delete marker forces removal even when the ID is
// resubmitted.
type ServiceItemInput struct {
	ID     *int64 `json:"id,omitempty"`
	Title  string `json:"title"`
	Delete bool   `json:"_delete,omitempty"`
}

// itemReconciliation is the plan produced by reconcileItems.
type itemReconciliation struct {
	ToCreate []string
	ToUpdate map[int64]string
	ToDelete []int64
}

// reconcileItems computes the item changes for a service update: id-matched
// rows update in place, id-less rows create, rows flagged for deletion or not
// resubmitted at all are deleted. Unknown resubmitted IDs are ignored.
func reconcileItems(existing []int64, submitted []ServiceItemInput) itemReconciliation {
	known := make(map[int64]struct{}, len(existing))
	for _, id := range existing {
		known[id] = struct{}{}
	}

	plan := itemReconciliation{ToUpdate: make(map[int64]string)}
	seen := make(map[int64]struct{}, len(submitted))

	for _, item := range submitted {
		title := strings.TrimSpace(item.Title)

		if item.ID == nil {
			if !item.Delete && title != "" {
				plan.ToCreate = append(plan.ToCreate, title)
			}
			continue
		}

		id := *item.ID
		if _, ok := known[id]; !ok {
			continue
		}
		seen[id] = struct{}{}

		if item.Delete {
			plan.ToDelete = append(plan.ToDelete, id)
			continue
		}
		plan.ToUpdate[id] = title
	}

	for _, id := range existing {
		if _, ok := seen[id]; !ok {
			plan.ToDelete = append(plan.ToDelete, id)
		}
	}

	return plan
}
