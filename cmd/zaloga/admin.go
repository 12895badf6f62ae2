package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/erazemk/zaloga/internal/store"
)

// cmdReset replaces the organizations document with an empty one. It is the
// way out of a corrupt document and refuses to run without -confirm.
func cmdReset(opts options) error {
	if !opts.confirm {
		return errors.New("reset deletes every organization and item; pass -confirm to proceed")
	}

	backend, closeBackend, err := openBackend(opts.Config)
	if err != nil {
		return fmt.Errorf("opening %s backend: %w", opts.Backend, err)
	}
	defer closeBackend()

	docs := store.NewOrganizationDocs(backend)
	if err := docs.Reset(context.Background()); err != nil {
		return err
	}

	slog.Info("organizations document reset", "backend", opts.Backend, "location", location(opts.Config))
	return nil
}

// cmdExport writes the organizations document as indented JSON.
func cmdExport(opts options) (retErr error) {
	backend, closeBackend, err := openBackend(opts.Config)
	if err != nil {
		return fmt.Errorf("opening %s backend: %w", opts.Backend, err)
	}
	defer closeBackend()

	orgs, err := store.NewOrganizations(store.NewOrganizationDocs(backend)).List(context.Background())
	if err != nil {
		return err
	}

	var w io.Writer = os.Stdout
	if opts.out != "" {
		f, err := os.Create(opts.out)
		if err != nil {
			return fmt.Errorf("creating export file: %w", err)
		}
		defer func() {
			if err := f.Close(); err != nil && retErr == nil {
				retErr = fmt.Errorf("closing export file: %w", err)
			}
		}()
		w = f
	}

	if err := writeExport(w, orgs); err != nil {
		return err
	}
	if opts.out != "" {
		slog.Info("organizations exported", "path", opts.out, "organizations", len(orgs))
	}
	return nil
}

func writeExport(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("writing export: %w", err)
	}
	return nil
}
