package salonRepo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"salonbook/models"
)

const (
	templatesFile = "packageTemplates.json"
	packagesFile  = "clientPackages.json"
)

// FileSalonRepo persists package templates and client packages as two JSON
// arrays on disk. Other kinds are kept in memory only by this backend.
type FileSalonRepo struct {
	dir       string
	mu        sync.Mutex
	templates []models.PackageTemplate
	packages  []models.ClientPackage
}

func NewFileSalonRepo(dir string) *FileSalonRepo {
	return &FileSalonRepo{dir: dir}
}

func readJSON[T any](path string) ([]T, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	var out []T
	if len(data) == 0 {
		return out, nil
	}
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return out, nil
}

// writeJSON replaces path through a rename so readers never see a partial file.
func writeJSON[T any](path string, items []T) error {
	if items == nil {
		items = []T{}
	}
	data, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return err
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", tmp, err)
	}
	return os.Rename(tmp, path)
}

func (r *FileSalonRepo) Load(_ context.Context) (*models.Snapshot, error) {
	if err := os.MkdirAll(r.dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	templates, err := readJSON[models.PackageTemplate](filepath.Join(r.dir, templatesFile))
	if err != nil {
		return nil, err
	}
	pkgs, err := readJSON[models.ClientPackage](filepath.Join(r.dir, packagesFile))
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	r.templates = templates
	r.packages = pkgs
	r.mu.Unlock()

	return &models.Snapshot{PackageTemplates: templates, ClientPackages: pkgs}, nil
}

func (r *FileSalonRepo) Apply(_ context.Context, evt models.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	switch evt.Kind {
	case models.KindPackageTemplate:
		var next []models.PackageTemplate
		for _, t := range r.templates {
			if t.ID != evt.ID {
				next = append(next, t)
			}
		}
		if evt.Action == models.ActionUpsert {
			t, ok := evt.Payload.(models.PackageTemplate)
			if !ok {
				return fmt.Errorf("unexpected payload %T for %s", evt.Payload, evt.Kind)
			}
			next = append(next, t)
		}
		if err := writeJSON(filepath.Join(r.dir, templatesFile), next); err != nil {
			return err
		}
		r.templates = next

	case models.KindClientPackage:
		var next []models.ClientPackage
		replaced := false
		for _, p := range r.packages {
			if p.ID != evt.ID {
				next = append(next, p)
				continue
			}
			if evt.Action == models.ActionUpsert {
				pkg, ok := evt.Payload.(models.ClientPackage)
				if !ok {
					return fmt.Errorf("unexpected payload %T for %s", evt.Payload, evt.Kind)
				}
				next = append(next, pkg)
				replaced = true
			}
		}
		if evt.Action == models.ActionUpsert && !replaced {
			pkg, ok := evt.Payload.(models.ClientPackage)
			if !ok {
				return fmt.Errorf("unexpected payload %T for %s", evt.Payload, evt.Kind)
			}
			next = append(next, pkg)
		}
		if err := writeJSON(filepath.Join(r.dir, packagesFile), next); err != nil {
			return err
		}
		r.packages = next
	}
	return nil
}
