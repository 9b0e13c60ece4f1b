// Package k8sfile parses Kubernetes manifest files, which may hold several
// resources joined by document separators.
package k8sfile

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/checkdk/checkdk/internal/domain"
)

// Loader implements domain.KubernetesLoader.
type Loader struct{}

// New creates a Loader.
func New() *Loader { return &Loader{} }

// Load reads every document from the manifest at path, in file order,
// skipping empty documents. Parse problems become critical issues.
func (l *Loader) Load(path string) ([]domain.Resource, []domain.Issue) {
	data, err := os.ReadFile(path)
	if err != nil {
		msg := fmt.Sprintf("Error reading manifest: %v", err)
		if errors.Is(err, os.ErrNotExist) {
			msg = fmt.Sprintf("Manifest file not found: %s", path)
		}
		return nil, []domain.Issue{invalidManifest(msg, path)}
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	var resources []domain.Resource
	for {
		var doc map[string]any
		err := dec.Decode(&doc)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, []domain.Issue{invalidManifest(fmt.Sprintf("YAML parsing error: %v", err), path)}
		}
		if len(doc) == 0 {
			continue
		}
		resources = append(resources, domain.Resource{Raw: doc})
	}

	if len(resources) == 0 {
		return nil, []domain.Issue{invalidManifest("No Kubernetes resources found in manifest", path)}
	}
	return resources, nil
}

func invalidManifest(message, path string) domain.Issue {
	return domain.Issue{
		Kind:     domain.KindInvalidManifest,
		Severity: domain.SeverityCritical,
		Message:  message,
		FilePath: path,
	}
}
