package cli

import (
	"fmt"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"
	"github.com/wI2L/jsondiff"

	"github.com/mesh-intelligence/layoutcore/internal/document"
	"github.com/mesh-intelligence/layoutcore/internal/sqlite"
	"github.com/mesh-intelligence/layoutcore/pkg/types"
)

// session is one opened design: the attached backend and the document
// loaded from it.
type session struct {
	backend *sqlite.Backend
	doc     *document.Document
	changes int
}

// open attaches the backend in the configured data directory and loads the
// document. Callers must call close.
func (a *app) open() (*session, error) {
	backend := sqlite.NewBackend(sqlite.WithLogger(a.logger))
	if err := backend.Attach(a.config); err != nil {
		return nil, fmt.Errorf("attach %s: %w", a.config.DataDir, err)
	}

	s := &session{backend: backend}
	hook := types.ChangeHookFunc(func() {
		s.changes++
		a.logger.Debug().Int("changes", s.changes).Msg("document changed")
	})
	doc, err := backend.LoadDocument(
		document.WithLogger(a.logger),
		document.WithChangeHook(hook),
	)
	if err != nil {
		backend.Detach()
		return nil, fmt.Errorf("load document: %w", err)
	}
	s.doc = doc
	return s, nil
}

// close saves the document if it changed and detaches the backend.
func (s *session) close() error {
	var saveErr error
	if s.doc != nil && s.doc.NeedsSave() {
		saveErr = s.backend.SaveDocument(s.doc)
	}
	if err := s.backend.Detach(); err != nil && saveErr == nil {
		return err
	}
	if saveErr != nil {
		return fmt.Errorf("save document: %w", saveErr)
	}
	return nil
}

// withSession runs fn against the opened design and saves afterwards. The
// document is saved even when fn reports skipped references, since the
// remaining edits were applied. With --dry-run nothing is saved; the
// changes fn made are printed as a JSON patch instead.
func (a *app) withSession(cmd *cobra.Command, fn func(s *session) error) error {
	s, err := a.open()
	if err != nil {
		return err
	}
	if !a.dryRun {
		fnErr := fn(s)
		if err := s.close(); err != nil {
			return err
		}
		return fnErr
	}

	before, err := snapshot(s.doc)
	if err != nil {
		s.close()
		return err
	}
	fnErr := fn(s)
	s.doc.MarkSaved()
	if err := s.close(); err != nil {
		return err
	}
	after, err := snapshot(s.doc)
	if err != nil {
		return err
	}
	patch, err := jsondiff.CompareJSON(before, after)
	if err != nil {
		return fmt.Errorf("diff document: %w", err)
	}
	if len(patch) > 0 {
		if a.jsonMode {
			if err := printJSON(cmd.OutOrStdout(), patch); err != nil {
				return err
			}
		} else {
			fmt.Fprintln(cmd.OutOrStdout(), patch.String())
		}
	}
	return fnErr
}

// snapshot encodes the document as {kind: {id: object}} for diffing.
func snapshot(doc *document.Document) ([]byte, error) {
	out := make(map[string]map[string]any)
	for _, kind := range types.ObjectKinds() {
		ids := doc.IDs(kind)
		if len(ids) == 0 {
			continue
		}
		objs := make(map[string]any, len(ids))
		for _, id := range ids {
			obj, err := doc.Object(kind, id)
			if err != nil {
				continue
			}
			objs[id.String()] = obj
		}
		out[kind.String()] = objs
	}
	if doc.Block != nil {
		out["block"] = map[string]any{doc.Block.ID.String(): doc.Block}
	}
	data, err := json.Marshal(out)
	if err != nil {
		return nil, fmt.Errorf("encode snapshot: %w", err)
	}
	return data, nil
}
