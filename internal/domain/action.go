package domain

// MenuAction identifies an inline menu button
type MenuAction string

const (
	ActionCatalog  MenuAction = "catalog"
	ActionRequest  MenuAction = "request"
	ActionQuestion MenuAction = "question"
	ActionContact  MenuAction = "contact"
	ActionMenu     MenuAction = "menu"
)

// ParseMenuAction maps callback data to a known action
func ParseMenuAction(data string) (MenuAction, bool) {
	switch a := MenuAction(data); a {
	case ActionCatalog, ActionRequest, ActionQuestion, ActionContact, ActionMenu:
		return a, true
	}
	return "", false
}

// AwaitingState returns the state an action puts the user in, if any
func (a MenuAction) AwaitingState() (UserState, bool) {
	switch a {
	case ActionRequest:
		return StateAwaitingRequest, true
	case ActionQuestion:
		return StateAwaitingQuestion, true
	}
	return StateIdle, false
}
