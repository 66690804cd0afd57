package models

// ModuleRef locates one input module: a declaration file, its sibling
// implementation package and the router file generated from them.
type ModuleRef struct {
	DeclFile       string // controllers/api/users.go
	SourcePath     string // DeclFile relative to the project root, slash separated
	ImplDir        string // controllers/api/users
	RelPath        string // api/users, slash separated, no extension
	OutputPath     string // routes/api/users.go
	ContractImport string // import path of the declaration package
	ImplImport     string // import path of the implementation package
}

// BasePath is the logical mount point of the module, derived from its location
func (m ModuleRef) BasePath() string {
	return "/" + m.RelPath
}

// GeneratedRouterModule is the rendered router for one input module
type GeneratedRouterModule struct {
	SourcePath  string
	OutputPath  string
	PackageName string
	Routes      int
	Content     []byte
}
