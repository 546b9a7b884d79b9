package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/abhissng/expirywatch/blame"
)

// WriteTemplate writes the default configuration as a YAML file for the
// operator to edit. It refuses to overwrite an existing file.
func WriteTemplate(path string) blame.Blame {
	if _, err := os.Stat(path); err == nil {
		return blame.NewBlame(blame.ErrTemplateUnwritable, "configuration file already exists").
			WithComponent(blame.Configuration).
			WithField("path", path)
	}

	out, err := yaml.Marshal(Default())
	if err != nil {
		return blame.NewBlame(blame.ErrTemplateUnwritable, "cannot render configuration template").
			WithComponent(blame.Configuration).
			WithCause(err)
	}

	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return blame.NewBlame(blame.ErrTemplateUnwritable, "cannot create configuration directory").
				WithComponent(blame.Configuration).
				WithField("path", path).
				WithCause(err)
		}
	}

	header := []byte("# expirywatch configuration. Fill in real SMTP credentials before running.\n")
	if err := os.WriteFile(path, append(header, out...), 0o600); err != nil {
		return blame.NewBlame(blame.ErrTemplateUnwritable, "cannot write configuration template").
			WithComponent(blame.Configuration).
			WithField("path", path).
			WithCause(err)
	}
	return nil
}
