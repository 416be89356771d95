package engine

import "github.com/edusync/coursemap/internal/config"

// DefaultDocument returns the built-in schema set, tuned for the German
// school naming convention the surrounding sync was built for: subject
// departments ("p_alle_mathe"), per-grade teacher courses
// ("p_ab_mathe_10a"), class groups ("10a-students"), and generic project
// groups ("p_ag_robotik"). It doubles as an illustration of the document
// shape for operators writing their own.
func DefaultDocument() *config.Document {
	intp := func(i int) *int { return &i }
	truep := true

	return &config.Document{
		Version: config.Version,
		Defaults: config.DefaultsConfig{
			CourseFormat: "topics",
			NumSections:  4,
			Visible:      &truep,
		},
		IgnorePatterns: []string{
			"-parents$",
			"^role-",
		},
		Transformers: map[string]map[string]string{
			"subject_map": {
				"mathe":      "Mathematik",
				"deutsch":    "Deutsch",
				"englisch":   "Englisch",
				"franz":      "Französisch",
				"physik":     "Physik",
				"chemie":     "Chemie",
				"bio":        "Biologie",
				"geschichte": "Geschichte",
				"erdkunde":   "Erdkunde",
				"informatik": "Informatik",
				"sport":      "Sport",
				"musik":      "Musik",
				"kunst":      "Kunst",
			},
		},
		Schemas: []config.SchemaConfig{
			{
				ID:             "fachschaft",
				Description:    "Subject-department groups shared by all teachers of a subject",
				Priority:       intp(10),
				Pattern:        `^p_alle[_-](?P<fach>[a-zA-Z0-9]+)$`,
				CourseName:     "Fachschaft {fach|map:subject_map}",
				Shortname:      "FS_{fach|upper}",
				CategoryPath:   "Fachschaften",
				IDNumberPrefix: "fs_",
				RoleMap: map[string]string{
					"default": "editingteacher",
				},
			},
			{
				ID:             "lehrer_fach_stufe",
				Description:    "Per-grade subject courses run by a teacher work group",
				Priority:       intp(20),
				Pattern:        `^p_ab_(?P<fach>[a-z]+)_(?P<stufe>[0-9]+[a-z]*)$`,
				CourseName:     "{fach|map:subject_map} Stufe {stufe|extract_grade}",
				Shortname:      "{fach|upper|truncate:4}_{stufe|upper}",
				CategoryPath:   "Kurse/Stufe {stufe|extract_grade}",
				IDNumberPrefix: "kurs_",
				RoleMap: map[string]string{
					"default": "student",
					"teacher": "editingteacher",
				},
			},
			{
				ID:             "klasse",
				Description:    "Class groups exported per school class",
				Priority:       intp(30),
				Pattern:        `^(?P<klasse>[0-9]+[a-z]*)-students$`,
				CourseName:     "Klasse {klasse|upper}",
				Shortname:      "K{klasse|upper}",
				CategoryPath:   "Klassen/Stufe {klasse|extract_grade}",
				IDNumberPrefix: "klasse_",
				RoleMap: map[string]string{
					"default": "student",
					"teacher": "editingteacher",
				},
			},
			{
				ID:             "projekt",
				Description:    "Catch-all for remaining project groups",
				Priority:       intp(90),
				Pattern:        `^p_(?P<projekt>[a-zA-Z0-9_-]+)$`,
				CourseName:     "Projekt {projekt|clean|titlecase}",
				Shortname:      "P_{projekt|upper|truncate:20}",
				CategoryPath:   "Projekte",
				IDNumberPrefix: "projekt_",
				RoleMap: map[string]string{
					"default": "student",
					"teacher": "editingteacher",
				},
			},
		},
	}
}
