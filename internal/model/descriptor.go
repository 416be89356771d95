package model

// CourseDefaults carries processor-wide course creation defaults. They are
// opaque pass-through configuration, not computed by the engine.
type CourseDefaults struct {
	CourseFormat string `json:"course_format"`
	NumSections  int    `json:"num_sections"`
	Visible      bool   `json:"visible"`
}

// CourseDescriptor is the structured output of processing one group.
type CourseDescriptor struct {
	SchemaID        string            `json:"schema_id"`
	GroupName       string            `json:"group_name"`
	GroupID         string            `json:"group_id"`
	CapturedGroups  map[string]string `json:"captured_groups"`
	CourseFullname  string            `json:"course_fullname"`
	CourseShortname string            `json:"course_shortname"`
	CategoryPath    string            `json:"category_path"`
	CourseIDNumber  string            `json:"course_idnumber"`
	RoleMap         map[string]string `json:"role_map"`
	Defaults        CourseDefaults    `json:"defaults"`
}
