// Package fileutils provides the file operations shared by the commands:
// locating export files and creating report outputs.
package fileutils

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"fjacquet/split-insights/internal/models"
)

// FileExists checks if a file exists and is not a directory
func FileExists(filePath string) bool {
	info, err := os.Stat(filePath)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// DirectoryExists checks if a directory exists
func DirectoryExists(dirPath string) bool {
	info, err := os.Stat(dirPath)
	if err != nil {
		return false
	}
	return info.IsDir()
}

// EnsureDirectoryExists creates a directory if it doesn't exist
func EnsureDirectoryExists(dirPath string) error {
	if !DirectoryExists(dirPath) {
		if err := os.MkdirAll(dirPath, models.PermissionDirectory); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}
	return nil
}

// CreateFile creates or truncates a report file, creating parent directories
// as needed.
func CreateFile(filePath string) (*os.File, error) {
	if err := EnsureDirectoryExists(filepath.Dir(filePath)); err != nil {
		return nil, err
	}

	file, err := os.OpenFile(filePath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, models.PermissionReportFile) // #nosec G304 -- output path chosen by the user
	if err != nil {
		return nil, fmt.Errorf("failed to create file: %w", err)
	}
	return file, nil
}

// ListFilesWithExtension returns the files under dirPath whose extension
// matches one of extensions, case-insensitively, in lexical order.
func ListFilesWithExtension(dirPath string, extensions ...string) ([]string, error) {
	if !DirectoryExists(dirPath) {
		return nil, fmt.Errorf("directory does not exist: %s", dirPath)
	}

	wanted := make(map[string]bool, len(extensions))
	for _, ext := range extensions {
		wanted[strings.ToLower(ext)] = true
	}

	var files []string
	err := filepath.WalkDir(dirPath, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && wanted[strings.ToLower(filepath.Ext(path))] {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list files: %w", err)
	}

	sort.Strings(files)
	return files, nil
}

// ExportFiles splits the expense exports found under dirPath into JSON and
// CSV files.
func ExportFiles(dirPath string) (jsonFiles, csvFiles []string, err error) {
	files, err := ListFilesWithExtension(dirPath, ".json", ".csv")
	if err != nil {
		return nil, nil, err
	}
	for _, f := range files {
		if strings.EqualFold(filepath.Ext(f), ".csv") {
			csvFiles = append(csvFiles, f)
		} else {
			jsonFiles = append(jsonFiles, f)
		}
	}
	return jsonFiles, csvFiles, nil
}
