package service

// Status of a query or mutation.
type Status int

const (
	StatusIdle Status = iota
	StatusLoading
	StatusSuccess
	StatusError
)

// State is what the UI renders for one query or mutation. Data keeps the
// last successful result while a new load is running or after it failed.
type State[T any] struct {
	Data   T
	Status Status
	// ErrMessage is the displayable failure text when Status is StatusError.
	ErrMessage string
	Err        error
}

func (s State[T]) IsIdle() bool    { return s.Status == StatusIdle }
func (s State[T]) IsLoading() bool { return s.Status == StatusLoading }
func (s State[T]) IsSuccess() bool { return s.Status == StatusSuccess }
func (s State[T]) IsError() bool   { return s.Status == StatusError }

func (s *State[T]) start() {
	s.Status = StatusLoading
	s.ErrMessage = ""
	s.Err = nil
}

func (s *State[T]) finish(data T, err error) {
	if err != nil {
		s.Status = StatusError
		s.ErrMessage = Message(err)
		s.Err = err
		return
	}

	s.Data = data
	s.Status = StatusSuccess
}
