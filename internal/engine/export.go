package engine

import "github.com/edusync/coursemap/internal/config"

// ExportConfig serializes the live schema set, defaults, ignore patterns,
// and transformer tables back into the canonical document shape. Feeding
// the result back into New reproduces an equivalent processor; the output
// is meant for configuration backup and editing tools.
func (p *Processor) ExportConfig() *config.Document {
	visible := p.defaults.Visible

	doc := &config.Document{
		Version: config.Version,
		Defaults: config.DefaultsConfig{
			CourseFormat: p.defaults.CourseFormat,
			NumSections:  p.defaults.NumSections,
			Visible:      &visible,
		},
		IgnorePatterns: p.IgnorePatterns(),
		Transformers:   p.transformer.Maps(),
	}

	for _, s := range p.schemas {
		priority := s.Priority
		enabled := s.Enabled

		roleMap := make(map[string]string, len(s.RoleMap))
		for k, v := range s.RoleMap {
			roleMap[k] = v
		}

		doc.Schemas = append(doc.Schemas, config.SchemaConfig{
			ID:             s.ID,
			Description:    s.Description,
			Priority:       &priority,
			Pattern:        s.Pattern,
			CourseName:     s.CourseNameTemplate,
			Shortname:      s.ShortnameTemplate,
			CategoryPath:   s.CategoryPathTemplate,
			IDNumberPrefix: s.IDNumberPrefix,
			RoleMap:        roleMap,
			Enabled:        &enabled,
		})
	}

	return doc
}
