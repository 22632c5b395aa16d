package meme

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"statmeme/parallel"

	"github.com/alecthomas/kong"
)

type BatchCmd struct {
	Scan   string `help:"Source folder to scan" default:"."`
	Dest   string `help:"Destination folder for memes. Relative to scan dir if not absolute." default:"memes"`
	Format string `help:"Output format of the memes" enum:"png,jpeg,gif,bmp,tiff" default:"png"`

	Options `embed:""`
}

func (c *BatchCmd) Validate(kctx *kong.Context) error {
	scanDir, err := filepath.Abs(c.Scan)
	var info os.FileInfo
	if err == nil {
		if info, err = os.Stat(scanDir); err == nil && !info.IsDir() {
			err = fmt.Errorf("not a directory")
		}
	}
	if err != nil {
		return fmt.Errorf("invalid scan path %q: %w", c.Scan, err)
	}
	c.Scan = scanDir

	if !filepath.IsAbs(c.Dest) {
		c.Dest = filepath.Join(scanDir, c.Dest)
	}

	return c.Options.validate()
}

func (c *BatchCmd) Run(pool *parallel.Pool) error {
	if err := ensureDir(c.Dest); err != nil {
		return err
	}

	files, err := os.ReadDir(c.Scan)
	if err != nil {
		return fmt.Errorf("unable to read folder %q: %w", c.Scan, err)
	}

	for _, file := range files {
		if file.IsDir() {
			continue
		}

		pool.Do(func(fileName string) func() error {
			return func() error {
				srcPath := filepath.Join(c.Scan, fileName)
				destPath := filepath.Join(c.Dest, memeName(fileName, c.Format))
				logger := slog.Default().With("file", srcPath)

				// Options are read only past validation, runs share nothing else.
				if err := Create(logger, srcPath, "", destPath, &c.Options); err != nil {
					logger.Error("could not create meme", "error", err)
					return err
				}
				return nil
			}
		}(file.Name()))
	}

	pool.Wait(true)

	processed, errors := pool.Stats()
	slog.Info("stats", "processed", processed, "errors", errors,
		"total", processed+errors)

	if errors > 0 {
		return fmt.Errorf("error processing %d files", errors)
	}
	return nil
}

// memeName maps photo.jpg to photo_meme.<format>.
func memeName(srcName, format string) string {
	ext := filepath.Ext(srcName)
	return fmt.Sprintf("%s_meme.%s", srcName[:len(srcName)-len(ext)], format)
}
