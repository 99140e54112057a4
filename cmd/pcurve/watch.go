package main

import (
	"context"

	"github.com/Dicklesworthstone/progress_curve/pkg/model"
	"github.com/Dicklesworthstone/progress_curve/pkg/watcher"
)

func newDatasetWatcher(path string) (*watcher.FileWatcher, error) {
	opts := []watcher.Option{
		watcher.WithDebounce(cfg.Debounce),
		watcher.WithPollInterval(cfg.PollInterval),
		watcher.WithLogger(logger),
	}
	if cfg.Poll {
		opts = append(opts, watcher.WithPolling())
	}
	return watcher.NewFileWatcher(path, opts...)
}

// watchDataset reloads path after every change and hands the result to
// apply until ctx is done.
func watchDataset(ctx context.Context, w *watcher.FileWatcher, path string, apply func([]model.Project, error)) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case _, ok := <-w.Changes():
			if !ok {
				return nil
			}
			projects, err := loadDataset(path)
			apply(projects, err)
		}
	}
}
