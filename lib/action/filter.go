package action

// Filter decides which actions can be proposed or executed.
type Filter interface {
	Contains(Action) bool
}

type FilterFunc func(Action) bool

func (f FilterFunc) Contains(a Action) bool {
	return f(a)
}

var AllowAll Filter = FilterFunc(func(Action) bool { return true })

// AllowTypes allows only the given action types.
func AllowTypes(types ...ActionType) Filter {
	allowed := map[ActionType]bool{}
	for _, t := range types {
		allowed[t] = true
	}

	return FilterFunc(func(a Action) bool {
		return allowed[a.H.Type]
	})
}
