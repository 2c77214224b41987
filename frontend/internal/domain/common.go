package frontend_domain

// CommonTemplateData holds fields that are common to all page templates.
// Available in templates as .Common via the TemplateData wrapper.
type CommonTemplateData struct {
	Error            string
	Success          string
	CSRFToken        string
	EmailPlaceholder string // pre-filled email for auth forms, from cookie rather than URL
	Validation       ValidationData
}

// ValidationData mirrors the backend limits so forms can set maxlength.
type ValidationData struct {
	NameMaxLen int
	NickMaxLen int
}
