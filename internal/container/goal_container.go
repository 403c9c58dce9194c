package container

// GoalContainer has the same shape as FactContainer but is kept as a
// distinct type for clarity at call sites (§3): a goal is conceptually a
// target state, not working memory.
type GoalContainer struct {
	*FactContainer
}

// NewGoalContainer returns an empty goal container.
func NewGoalContainer() *GoalContainer {
	return &GoalContainer{FactContainer: NewFactContainer()}
}

// Clone returns a deep copy.
func (gc *GoalContainer) Clone() *GoalContainer {
	return &GoalContainer{FactContainer: gc.FactContainer.Clone()}
}
