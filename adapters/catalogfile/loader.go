// Package catalogfile loads client catalogs from HCL and JSON files.
// Files only describe client types; validation is left to the catalog.
package catalogfile

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"

	"pricing-calculator/core/catalog"
	"pricing-calculator/core/types"
	"pricing-calculator/internal/errors"
	"pricing-calculator/internal/logging"
)

// Decoder turns file contents into client types
type Decoder interface {
	Decode(src []byte, filename string) ([]types.ClientType, error)
}

// DecoderFor returns the decoder for a file extension
func DecoderFor(path string) (Decoder, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".hcl":
		return NewHCLDecoder(), nil
	case ".json":
		return NewJSONDecoder(), nil
	default:
		return nil, errors.NotSupported("catalog file extension " + filepath.Ext(path))
	}
}

// Load reads a catalog file, or every .hcl and .json file in a directory
func Load(path string) (*catalog.Catalog, error) {
	c := catalog.NewCatalog()
	if err := LoadInto(c, path); err != nil {
		return nil, err
	}
	return c, nil
}

// LoadInto registers the client types found at path into c. A client id
// that is already registered is an error.
func LoadInto(c *catalog.Catalog, path string) error {
	files, err := catalogFiles(path)
	if err != nil {
		return err
	}

	for _, file := range files {
		clients, err := ReadFile(file)
		if err != nil {
			return err
		}
		for _, client := range clients {
			if err := c.Register(client); err != nil {
				return errors.Wrapf(errors.TypeCatalog, err, "%s", file)
			}
		}
		logging.Debug("loaded catalog file",
			zap.String("file", file),
			zap.Int("clients", len(clients)))
	}
	return nil
}

// ReadFile decodes a single catalog file
func ReadFile(path string) ([]types.ClientType, error) {
	decoder, err := DecoderFor(path)
	if err != nil {
		return nil, err
	}
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(errors.TypeCatalog, err, "failed to read %s", path)
	}
	return decoder.Decode(src, path)
}

func catalogFiles(path string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, errors.Wrapf(errors.TypeCatalog, err, "catalog path %s", path)
	}
	if !info.IsDir() {
		return []string{path}, nil
	}

	var files []string
	err = filepath.Walk(path, func(p string, fi os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if fi.IsDir() {
			return nil
		}
		switch strings.ToLower(filepath.Ext(p)) {
		case ".hcl", ".json":
			files = append(files, p)
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(errors.TypeCatalog, err, "failed to walk %s", path)
	}
	sort.Strings(files)
	return files, nil
}
