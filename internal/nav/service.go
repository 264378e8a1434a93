// Package nav computes what an account may see when browsing the storage
// tree. It only reads the filesystem and keeps no state between requests.
package nav

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/Neiron07/pixel-project/internal/logger"
	"github.com/Neiron07/pixel-project/internal/model"
	apperrors "github.com/Neiron07/pixel-project/pkg/errors"

	"github.com/rs/zerolog"
)

type Service struct {
	root string
	log  zerolog.Logger
}

func NewService(storageRoot string) (*Service, error) {
	root, err := filepath.Abs(storageRoot)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve storage root: %w", err)
	}

	return &Service{
		root: root,
		log:  logger.Get(),
	}, nil
}

// Resolve joins a requested path onto the storage root and rejects anything
// that escapes it. The guard applies to every account, admins included, and
// runs before any filesystem access.
func (s *Service) Resolve(requestedPath string) (string, error) {
	fullPath := filepath.Join(s.root, requestedPath)

	rel, err := filepath.Rel(s.root, fullPath)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		s.log.Warn().Str("path", requestedPath).Msg("Rejected path outside storage root")
		return "", apperrors.ErrPathOutsideRoot
	}

	return fullPath, nil
}

// List returns the files and folders of requestedPath visible to account.
//
// Decision order: admin bypass, navigate gate, show-list, hide-list,
// unrestricted. A denied account gets an empty listing, not an error.
func (s *Service) List(requestedPath string, account model.Account) (model.Listing, error) {
	fullPath, err := s.Resolve(requestedPath)
	if err != nil {
		return model.EmptyListing(), err
	}

	if account.Admin {
		s.log.Debug().Str("path", fullPath).Str("account", account.Name).Msg("Admin navigation")
		return s.fullListing(fullPath), nil
	}

	if !account.Permissions.Navigate {
		s.log.Warn().Str("path", fullPath).Str("account", account.Name).Msg("Account has no navigate permission")
		return model.EmptyListing(), nil
	}

	if len(account.Show) > 0 {
		return s.showListing(fullPath, account.Show), nil
	}

	if len(account.Hide) > 0 {
		return s.hideListing(fullPath, account.Hide), nil
	}

	return s.fullListing(fullPath), nil
}

// showListing restricts by top-level category: at the root only allow-listed
// folder names are visible and files never are; inside an allowed folder the
// account sees everything. The asymmetry is deliberate.
func (s *Service) showListing(fullPath string, show []string) model.Listing {
	if fullPath == s.root {
		allFolders := ListFolders(fullPath)
		if allFolders == nil {
			return model.EmptyListing()
		}

		folders := []string{}
		for _, folder := range allFolders {
			for _, item := range show {
				if strings.HasPrefix(folder, item) {
					folders = append(folders, folder)
					break
				}
			}
		}
		return model.Listing{Files: []model.FileInfo{}, Folders: folders}
	}

	for _, item := range show {
		if strings.HasPrefix(fullPath, filepath.Join(s.root, item)) {
			return s.fullListing(fullPath)
		}
	}

	return model.EmptyListing()
}

// hideListing removes every entry whose absolute path starts with a deny
// prefix. Prefixes are resolved against the root once per request.
func (s *Service) hideListing(fullPath string, hide []string) model.Listing {
	hidden := make([]string, len(hide))
	for i, item := range hide {
		hidden[i] = filepath.Join(s.root, item)
	}

	excluded := func(name string) bool {
		itemPath := filepath.Join(fullPath, name)
		for _, h := range hidden {
			if strings.HasPrefix(itemPath, h) {
				return true
			}
		}
		return false
	}

	files := []model.FileInfo{}
	for _, file := range ListFiles(fullPath) {
		if !excluded(file.Name) {
			files = append(files, file)
		}
	}

	folders := []string{}
	for _, folder := range ListFolders(fullPath) {
		if !excluded(folder) {
			folders = append(folders, folder)
		}
	}

	return model.Listing{Files: files, Folders: folders}
}

func (s *Service) fullListing(fullPath string) model.Listing {
	listing := model.EmptyListing()
	if files := ListFiles(fullPath); files != nil {
		listing.Files = files
	}
	if folders := ListFolders(fullPath); folders != nil {
		listing.Folders = folders
	}
	return listing
}
