package app

import (
	"log"

	"github.com/TheJusticeMan/flick/internal/dispatch"
	"github.com/TheJusticeMan/flick/internal/gesture"
	"github.com/TheJusticeMan/flick/internal/store"
)

// templateSource adapts the store's template repository to the engine's
// TemplateSource. It reads the database on every call so templates
// assigned mid-session are matchable immediately, and skips rows whose
// stored path no longer decodes.
type templateSource struct {
	store *store.Store
}

// Templates implements gesture.TemplateSource.
func (s *templateSource) Templates() ([]*gesture.Template, error) {
	if s.store == nil {
		return nil, nil
	}

	records, err := s.store.Templates().List()
	if err != nil {
		return nil, err
	}

	templates := make([]*gesture.Template, 0, len(records))
	for _, record := range records {
		path, err := gesture.DecodePath(record.Path)
		if err != nil {
			// Corrupt templates degrade gracefully instead of
			// breaking classification
			log.Printf("app: skipping template %q with undecodable path: %v", record.Name, err)
			continue
		}

		templates = append(templates, &gesture.Template{
			ID:        record.ID,
			Name:      record.Name,
			CommandID: record.CommandID,
			Path:      path,
		})
	}

	return templates, nil
}

// bindingSource adapts the store's binding repository to the
// dispatcher's BindingSource.
type bindingSource struct {
	store *store.Store
}

// BindingForCommand implements dispatch.BindingSource.
func (s *bindingSource) BindingForCommand(commandID string) (*dispatch.Binding, error) {
	if s.store == nil {
		return nil, nil
	}

	record, err := s.store.Bindings().GetByCommandID(commandID)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, nil
	}

	return &dispatch.Binding{
		CommandID:  record.CommandID,
		PluginName: record.PluginName,
		ActionName: record.ActionName,
		Config:     record.Config,
		Enabled:    record.Enabled,
	}, nil
}
