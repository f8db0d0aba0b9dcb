package types

type Constraint struct {
	Name    string
	Op      ConstraintOp
	Version string
	Source  string
}

// String renders the constraint term the way it was declared, e.g.
// ">=3.4" or "==1.84.0".
func (c Constraint) String() string {
	return string(c.Op) + c.Version
}

type Requirement struct {
	Name        string
	Constraints []Constraint
	Kind        DependencyKind
}
