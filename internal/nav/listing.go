package nav

import (
	"os"

	"github.com/Neiron07/pixel-project/internal/model"
)

// ListFiles returns the regular files directly under path with their sizes,
// or nil when the path cannot be read.
func ListFiles(path string) []model.FileInfo {
	entries, err := os.ReadDir(path)
	if err != nil {
		return nil
	}

	files := []model.FileInfo{}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		files = append(files, model.FileInfo{Name: entry.Name(), Size: info.Size()})
	}

	return files
}

// ListFolders returns the names of the directories directly under path, or
// nil when the path cannot be read.
func ListFolders(path string) []string {
	entries, err := os.ReadDir(path)
	if err != nil {
		return nil
	}

	folders := []string{}
	for _, entry := range entries {
		if entry.IsDir() {
			folders = append(folders, entry.Name())
		}
	}

	return folders
}
