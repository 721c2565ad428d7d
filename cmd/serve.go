package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/codemateteam/php-handbook-sub005/internal/config"
	"github.com/codemateteam/php-handbook-sub005/internal/logging"
)

var serverPort int

const debounceDuration = 500 * time.Millisecond

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serves the site locally and rebuilds on changes",
	Long: `The serve command performs an initial build, serves the output directory
under the configured base path and watches the content, layouts and static
directories plus the site config for changes, rebuilding automatically.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		logger := logs.GetLogger("serve")

		result, err := runBuildProcess(ctx, appConfig, logs.GetLogger("build"))
		if err != nil {
			return fmt.Errorf("initial build failed: %w", err)
		}

		watcher, err := fsnotify.NewWatcher()
		if err != nil {
			return fmt.Errorf("failed to create file watcher: %w", err)
		}
		defer watcher.Close()

		watchPaths(watcher, appConfig, logger)
		go watchLoop(ctx, watcher, appConfig, logger)

		srv := &http.Server{
			Addr:    fmt.Sprintf(":%d", serverPort),
			Handler: previewHandler(appConfig.OutputDir, result.Site.Base),
		}
		go func() {
			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		}()

		logger.Info("serve.listening", "url", fmt.Sprintf("http://localhost:%d%s", serverPort, result.Site.Base), "dir", appConfig.OutputDir)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("failed to start HTTP server: %w", err)
		}
		return nil
	},
}

// watchPaths adds every directory under the watched roots. fsnotify is not
// recursive, so subdirectories are added one by one.
func watchPaths(watcher *fsnotify.Watcher, cfg config.Config, logger logging.Logger) {
	if err := watcher.Add(filepath.Dir(cfg.SiteConfig)); err != nil {
		logger.Warn("serve.watch_failed", "path", cfg.SiteConfig, "error", err)
	}
	for _, root := range []string{cfg.ContentDir, cfg.LayoutsDir, cfg.StaticDir} {
		if _, err := os.Stat(root); os.IsNotExist(err) {
			logger.Debug("serve.watch_skipped", "dir", root)
			continue
		}
		err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
			if err != nil {
				logger.Warn("serve.walk_failed", "path", path, "error", err)
				return nil
			}
			if d.IsDir() {
				if watchErr := watcher.Add(path); watchErr != nil {
					logger.Warn("serve.watch_failed", "path", path, "error", watchErr)
				}
			}
			return nil
		})
		if err != nil {
			logger.Warn("serve.walk_failed", "path", root, "error", err)
		}
	}
}

func watchLoop(ctx context.Context, watcher *fsnotify.Watcher, cfg config.Config, logger logging.Logger) {
	var mu sync.Mutex
	var buildTimer *time.Timer
	siteConfig := filepath.Clean(cfg.SiteConfig)
	output := filepath.Clean(cfg.OutputDir)

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if !relevant(event, siteConfig, output) {
				continue
			}
			logger.Debug("serve.change_detected", "path", event.Name, "op", event.Op.String())

			if event.Has(fsnotify.Create) && isDir(event.Name) {
				if err := watcher.Add(event.Name); err != nil {
					logger.Warn("serve.watch_failed", "path", event.Name, "error", err)
				}
			}

			mu.Lock()
			if buildTimer != nil {
				buildTimer.Stop()
			}
			buildTimer = time.AfterFunc(debounceDuration, func() {
				mu.Lock()
				defer mu.Unlock()
				logger.Info("serve.rebuilding")
				if _, err := runBuildProcess(ctx, cfg, logs.GetLogger("build")); err != nil {
					logger.Error("serve.rebuild_failed", "error", err)
				}
			})
			mu.Unlock()
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			logger.Warn("serve.watcher_error", "error", err)
		}
	}
}

// relevant filters watcher noise: only content changing operations count,
// and in the site config's directory only the site config itself.
func relevant(event fsnotify.Event, siteConfig, output string) bool {
	if !(event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename)) {
		return false
	}
	name := filepath.Clean(event.Name)
	if name == output || strings.HasPrefix(name, output+string(filepath.Separator)) {
		return false
	}
	if filepath.Dir(name) == filepath.Dir(siteConfig) {
		return name == siteConfig || isDir(name)
	}
	return true
}

// previewHandler serves dir under base with caching disabled. Unknown paths
// get the generated 404 page.
func previewHandler(dir, base string) http.Handler {
	files := http.FileServer(http.Dir(dir))
	prefix := strings.TrimSuffix(base, "/")

	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
		w.Header().Set("Pragma", "no-cache")
		w.Header().Set("Expires", "0")

		if prefix != "" && r.URL.Path == prefix {
			http.Redirect(w, r, prefix+"/", http.StatusMovedPermanently)
			return
		}
		if !strings.HasPrefix(r.URL.Path, prefix+"/") {
			serveNotFound(w, dir)
			return
		}
		rel := strings.TrimPrefix(r.URL.Path, prefix)
		target := filepath.Join(dir, filepath.FromSlash(rel))
		if strings.HasSuffix(rel, "/") {
			target = filepath.Join(target, "index.html")
		}
		if _, err := os.Stat(target); err != nil {
			serveNotFound(w, dir)
			return
		}
		http.StripPrefix(prefix, files).ServeHTTP(w, r)
	})
	return mux
}

func serveNotFound(w http.ResponseWriter, dir string) {
	page, err := os.ReadFile(filepath.Join(dir, "404.html"))
	if err != nil {
		http.Error(w, "404 page not found", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusNotFound)
	_, _ = w.Write(page)
}

func isDir(path string) bool {
	fileInfo, err := os.Stat(path)
	if err != nil {
		return false
	}
	return fileInfo.IsDir()
}

func init() {
	serveCmd.Flags().IntVarP(&serverPort, "port", "p", 1313, "Port to serve the site on")
	rootCmd.AddCommand(serveCmd)
}
