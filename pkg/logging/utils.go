/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: utils.go
Description: Log file management for the Akaylee fuzzy engine. Applies the retention policy
to the timestamped log files written by Logger.
*/

package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// LogManager applies the retention policy to a log directory
type LogManager struct {
	logDir   string
	maxFiles int
}

// NewLogManager creates a new log manager
func NewLogManager(logDir string, maxFiles int) *LogManager {
	return &LogManager{
		logDir:   logDir,
		maxFiles: maxFiles,
	}
}

func (lm *LogManager) files() ([]string, error) {
	files, err := filepath.Glob(filepath.Join(lm.logDir, filePrefix+"*.log"))
	if err != nil {
		return nil, fmt.Errorf("failed to glob log files: %w", err)
	}
	return files, nil
}

// CleanupOldLogs removes the oldest log files beyond maxFiles
func (lm *LogManager) CleanupOldLogs() error {
	files, err := lm.files()
	if err != nil {
		return err
	}
	if lm.maxFiles <= 0 || len(files) <= lm.maxFiles {
		return nil
	}

	// Timestamped names sort oldest first
	sort.Strings(files)

	for _, f := range files[:len(files)-lm.maxFiles] {
		if err := os.Remove(f); err != nil {
			return fmt.Errorf("failed to remove file %s: %w", f, err)
		}
	}
	return nil
}
