// Package documents is the blob/template collaborator: copy a named template
// into a scoped working area, substitute placeholders, export the result as a
// PDF into a destination folder. The working area must be trashed on every
// exit path; receipt generation relies on that.
package documents

import (
	"os"
	"path/filepath"
	"strings"

	"coachdesk-backend/apperr"

	"github.com/google/uuid"
)

// Document is an editable working copy of a template.
type Document struct {
	// WorkDir is the scoped temp area holding the copy; callers trash it.
	WorkDir string
	Name    string
	content string
}

// Replace substitutes every literal occurrence of {{key}}. No escaping is
// performed; template input is operator-controlled.
func (d *Document) Replace(key, value string) {
	d.content = strings.ReplaceAll(d.content, "{{"+key+"}}", value)
}

func (d *Document) Content() string { return d.content }

type Store interface {
	CopyTemplate(template, name string) (*Document, error)
	EnsureFolder(name string) (string, error)
	ExportPDF(doc *Document, folder, filename string) (string, error)
	Trash(path string) error
}

// LocalStore keeps folders under a root directory on disk and resolves
// templates from a registered set, with an on-disk templates/ dir taking
// precedence when present.
type LocalStore struct {
	root      string
	templates map[string]string
}

func NewLocalStore(root string, templates map[string]string) *LocalStore {
	return &LocalStore{root: root, templates: templates}
}

func (s *LocalStore) CopyTemplate(template, name string) (*Document, error) {
	content, err := s.templateContent(template)
	if err != nil {
		return nil, err
	}
	workDir, err := os.MkdirTemp("", "coachdesk_work_"+uuid.NewString()[:8]+"_")
	if err != nil {
		return nil, apperr.Externalf(err, "create working folder")
	}
	return &Document{WorkDir: workDir, Name: name, content: content}, nil
}

func (s *LocalStore) templateContent(template string) (string, error) {
	onDisk := filepath.Join(s.root, "templates", template)
	if raw, err := os.ReadFile(onDisk); err == nil {
		return string(raw), nil
	}
	if content, ok := s.templates[template]; ok {
		return content, nil
	}
	return "", apperr.Configurationf("template %q not found", template)
}

func (s *LocalStore) EnsureFolder(name string) (string, error) {
	path := filepath.Join(s.root, name)
	if err := os.MkdirAll(path, 0o755); err != nil {
		return "", apperr.Externalf(err, "create folder %s", name)
	}
	return path, nil
}

func (s *LocalStore) ExportPDF(doc *Document, folder, filename string) (string, error) {
	path := filepath.Join(folder, filename)
	f, err := os.Create(path)
	if err != nil {
		return "", apperr.Externalf(err, "export %s", filename)
	}
	defer f.Close()
	lines := strings.Split(doc.Content(), "\n")
	if err := writePDF(f, lines); err != nil {
		return "", apperr.Externalf(err, "export %s", filename)
	}
	return path, nil
}

func (s *LocalStore) Trash(path string) error {
	if path == "" {
		return nil
	}
	return os.RemoveAll(path)
}
