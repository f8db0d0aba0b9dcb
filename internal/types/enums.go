package types

type DependencyKind string

const (
	DependencyKindLibrary DependencyKind = "library"
	DependencyKindTool    DependencyKind = "tool"
)

type ConstraintOp string

const (
	ConstraintOpNone ConstraintOp = ""
	ConstraintOpEq   ConstraintOp = "="
	ConstraintOpEq2  ConstraintOp = "=="
	ConstraintOpGte  ConstraintOp = ">="
	ConstraintOpLte  ConstraintOp = "<="
	ConstraintOpGt   ConstraintOp = ">"
	ConstraintOpLt   ConstraintOp = "<"
)

type CatalogFormat string

const (
	CatalogFormatYAML   CatalogFormat = "yaml"
	CatalogFormatSQLite CatalogFormat = "sqlite"
)
