package knowledge

// ConsistencyError reports a logically impossible state in the knowledge
// base, e.g. a sentence claiming more mines than it has cells. It should
// never occur unless the clue source misreports or the caller feeds clues
// for mined cells.
type ConsistencyError struct {
	message string
}

// [ConsistencyError] implements [error]
func (e ConsistencyError) Error() string {
	return e.message
}
