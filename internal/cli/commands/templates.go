package commands

import (
	"bytes"
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
	"text/template"
)

//go:embed all:templates
var templateFS embed.FS

// scaffoldData fills the placeholders of a project template.
type scaffoldData struct {
	// Model is the value written for the model setting.
	Model string
}

// scaffoldFile reports one file of a template and whether init wrote it.
type scaffoldFile struct {
	Name    string
	Written bool
}

// embed drops dotfiles, so they are stored without the dot.
var dotfiles = map[string]string{
	"gitignore": ".gitignore",
}

// targetName maps a template path (slash separated) to the file it becomes.
func targetName(rel string) string {
	dir, base := path.Split(rel)
	if name, ok := dotfiles[base]; ok {
		base = name
	}
	return filepath.FromSlash(dir + base)
}

// writeScaffold renders the named template into targetDir. Files that exist
// are reported but left alone unless force is set.
func writeScaffold(name, targetDir string, data scaffoldData, force bool) ([]scaffoldFile, error) {
	root, err := fs.Sub(templateFS, path.Join("templates", name))
	if err != nil {
		return nil, err
	}

	var files []scaffoldFile
	err = fs.WalkDir(root, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if p == "." {
				return nil
			}
			return os.MkdirAll(filepath.Join(targetDir, filepath.FromSlash(p)), 0750)
		}

		rel := targetName(p)
		dest := filepath.Join(targetDir, rel)
		if _, err := os.Stat(dest); err == nil && !force {
			files = append(files, scaffoldFile{Name: rel})
			return nil
		}

		content, err := renderTemplateFile(root, p, data)
		if err != nil {
			return err
		}
		if err := os.WriteFile(dest, content, 0600); err != nil {
			return err
		}
		files = append(files, scaffoldFile{Name: rel, Written: true})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}

// renderTemplateFile executes one template file. Single-brace naming
// templates such as {model} pass through untouched.
func renderTemplateFile(root fs.FS, name string, data scaffoldData) ([]byte, error) {
	raw, err := fs.ReadFile(root, name)
	if err != nil {
		return nil, err
	}
	if !strings.Contains(string(raw), "{{") {
		return raw, nil
	}

	tmpl, err := template.New(name).Option("missingkey=error").Parse(string(raw))
	if err != nil {
		return nil, fmt.Errorf("template %s: %w", name, err)
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("template %s: %w", name, err)
	}
	return buf.Bytes(), nil
}
