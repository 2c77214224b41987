package frontend_domain

import "html/template"

type SignupPageData struct {
	FormID               string
	FieldName            string
	FieldNick            string
	FieldEmail           string
	FieldPassword        string
	FieldConfirmPassword string
	WasmPath             string
	WasmExecPath         string
}

type TermsPageData struct {
	Content template.HTML
}
