/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: result_writer.go
Description: Utility for writing compute and sweep results to a results directory.
Handles timestamped, kind-specific subdirectory naming.
Ensures directories exist and writes JSON files for easy analysis.
*/

package utils

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// WriteResult writes a result under dir/kind with a timestamped name and returns the path
func WriteResult(dir, kind, name string, result interface{}) (string, error) {
	// Generate filename: 2024-06-11_01-30-00_tomorrow.json
	timestamp := time.Now().Format("2006-01-02_15-04-05")
	filename := fmt.Sprintf("%s_%s.json", timestamp, name)
	filePath := filepath.Join(dir, kind, filename)

	if err := WriteJSON(filePath, result); err != nil {
		return "", err
	}
	return filePath, nil
}

// WriteJSON writes an indented JSON document, creating parent directories
func WriteJSON(path string, v interface{}) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create results directory: %w", err)
	}

	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal result: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write result file: %w", err)
	}
	return nil
}
