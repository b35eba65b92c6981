package config

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watch reloads the configuration whenever its file changes, until ctx is
// done. The parent directory is watched so editors that replace the file on
// save are followed. With no config file in use Watch just waits for ctx.
func (m *Manager) Watch(ctx context.Context) error {
	file := m.File()
	if file == "" {
		<-ctx.Done()
		return nil
	}
	file = filepath.Clean(file)

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer w.Close()

	if err := w.Add(filepath.Dir(file)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", filepath.Dir(file), err)
	}
	m.log.Debug().Str("file", file).Msg("watching config")

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != file || ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if err := m.reload(); err != nil {
				m.log.Warn().Err(err).Msg("failed to reload config")
				continue
			}
			m.log.Info().Str("file", file).Msg("config reloaded")
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			m.log.Warn().Err(err).Msg("config watcher error")
		}
	}
}
