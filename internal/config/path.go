package config

const (
	//? These paths must match the embed directives in internal/server

	StaticLocalDir = "static"
	StaticUrlPath  = "/" + StaticLocalDir + "/"

	TemplatesLocalDir = "templates"

	TemplateLayout   = "layout.html"
	TemplateIndex    = "index.html"
	TemplatePost     = "post.html"
	TemplateNotFound = "notfound.html"

	PostFileExt = ".md"
)
