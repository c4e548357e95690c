package conversation

type Status string

const (
	StatusOpen   Status = "open"
	StatusSolved Status = "solved"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	return s == StatusOpen || s == StatusSolved
}

func (s Status) IsTerminal() bool {
	return s == StatusSolved
}
