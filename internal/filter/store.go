package filter

// ActionType 筛选动作类型
type ActionType string

const (
	ActionSetFilter   ActionType = "SET_FILTER"
	ActionResetFilter ActionType = "RESET_FILTER"
)

// Action 筛选动作，SET_FILTER 携带局部条件
type Action struct {
	Type    ActionType
	Partial Partial
}

// SetFilter 构造局部更新动作
func SetFilter(p Partial) Action {
	return Action{Type: ActionSetFilter, Partial: p}
}

// ResetFilter 构造重置动作
func ResetFilter() Action {
	return Action{Type: ActionResetFilter}
}

// Dispatcher 接收筛选动作
type Dispatcher interface {
	Dispatch(a Action) Filter
}

// Store 持有一份筛选条件，只能通过 Dispatch 修改
type Store struct {
	filter Filter
}

func NewStore(initial Filter) *Store {
	return &Store{filter: initial}
}

// Filter 返回当前条件
func (s *Store) Filter() Filter {
	return s.filter
}

// Dispatch 应用动作并返回新的条件，未知动作不改变状态
func (s *Store) Dispatch(a Action) Filter {
	switch a.Type {
	case ActionSetFilter:
		s.filter = s.filter.Merge(a.Partial)
	case ActionResetFilter:
		s.filter = Filter{}
	}
	return s.filter
}
