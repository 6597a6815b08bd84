package discovery

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
)

const (
	// DefaultConfigurationFileName is the descriptor file looked up in every directory.
	DefaultConfigurationFileName = "pom.xml"
	// DefaultExcludedDirectoryName is the build output directory pruned from traversal.
	DefaultExcludedDirectoryName = "target"

	rootWalkErrorTemplateConstant = "unable to scan %s: %w"
)

// FilesystemConfigurationDiscoverer locates project descriptors on disk.
type FilesystemConfigurationDiscoverer struct {
	configurationFileName  string
	excludedDirectoryNames map[string]struct{}
}

// NewFilesystemConfigurationDiscoverer constructs a discoverer backed by filepath.WalkDir.
// Empty arguments fall back to DefaultConfigurationFileName and DefaultExcludedDirectoryName.
func NewFilesystemConfigurationDiscoverer(configurationFileName string, excludedDirectoryNames []string) *FilesystemConfigurationDiscoverer {
	trimmedFileName := strings.TrimSpace(configurationFileName)
	if len(trimmedFileName) == 0 {
		trimmedFileName = DefaultConfigurationFileName
	}

	excluded := make(map[string]struct{})
	for _, directoryName := range excludedDirectoryNames {
		trimmedDirectoryName := strings.TrimSpace(directoryName)
		if len(trimmedDirectoryName) == 0 {
			continue
		}
		excluded[trimmedDirectoryName] = struct{}{}
	}
	if len(excluded) == 0 {
		excluded[DefaultExcludedDirectoryName] = struct{}{}
	}

	return &FilesystemConfigurationDiscoverer{
		configurationFileName:  trimmedFileName,
		excludedDirectoryNames: excluded,
	}
}

// DiscoverConfigurationFiles walks root and returns the sorted paths of every
// descriptor that sits directly inside a visited directory. Excluded directories
// below root are never entered. Failing to read root itself is an error;
// unreadable nested directories are skipped.
func (discoverer *FilesystemConfigurationDiscoverer) DiscoverConfigurationFiles(root string) ([]string, error) {
	configurationFiles := []string{}

	walkError := filepath.WalkDir(root, func(path string, directoryEntry fs.DirEntry, walkError error) error {
		if walkError != nil {
			if path == root {
				return walkError
			}
			if directoryEntry != nil && directoryEntry.IsDir() {
				return fs.SkipDir
			}
			return nil
		}

		if directoryEntry.IsDir() {
			if path == root {
				return nil
			}
			if _, excluded := discoverer.excludedDirectoryNames[directoryEntry.Name()]; excluded {
				return fs.SkipDir
			}
			return nil
		}

		if directoryEntry.Name() == discoverer.configurationFileName && directoryEntry.Type().IsRegular() {
			configurationFiles = append(configurationFiles, path)
		}
		return nil
	})
	if walkError != nil {
		return nil, fmt.Errorf(rootWalkErrorTemplateConstant, root, walkError)
	}

	sort.Strings(configurationFiles)
	return configurationFiles, nil
}
