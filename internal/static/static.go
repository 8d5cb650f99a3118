// Package static embeds the notification icon and copies it to the data
// directory where desktop notifications look for it
package static

import (
	"embed"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"

	"github.com/ggoeuh/DAL-sub000/internal/osutil"
)

const (
	filesDir = "files"
)

//go:embed files/*
var embeddedFiles embed.FS

// Install copies the embedded files into the xdg data directory appDir.
// Files that already exist are left alone so that users can replace them.
func Install(appDir string) error {
	return install(func(rel string) (string, error) {
		return xdg.DataFile(filepath.Join(appDir, rel))
	})
}

func install(dest func(rel string) (string, error)) error {
	return fs.WalkDir(
		embeddedFiles,
		filesDir,
		func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}

			if d.IsDir() {
				return nil
			}

			destPath, err := dest(strings.TrimPrefix(path, filesDir+"/"))
			if err != nil {
				return err
			}

			// Only write if file does not already exist
			if _, err := os.Stat(destPath); !os.IsNotExist(err) {
				return err
			}

			b, err := embeddedFiles.ReadFile(path)
			if err != nil {
				return err
			}

			if err := os.MkdirAll(filepath.Dir(destPath), osutil.DirPermission); err != nil {
				return err
			}

			return os.WriteFile(destPath, b, osutil.FilePermission)
		},
	)
}
