package parser

const (
	// Field names recognized on route declarations. They must be exported so
	// generated routers in another package can bind into them.
	FieldBody     = "Body"
	FieldParams   = "Params"
	FieldQuery    = "Query"
	FieldResponse = "Response"
)
