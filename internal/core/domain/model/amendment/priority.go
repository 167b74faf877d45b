package amendment

// Priority orders amendments for the approver; higher values are more urgent.
type Priority int

const (
	PriorityUnknown Priority = iota
	PriorityLow
	PriorityMedium
	PriorityHigh
	PriorityUrgent
)

func getPriorityStrings() map[Priority]string {
	return map[Priority]string{
		PriorityLow:    "low",
		PriorityMedium: "medium",
		PriorityHigh:   "high",
		PriorityUrgent: "urgent",
	}
}

func ParsePriority(s string) (Priority, error) {
	return parseEnum(getPriorityStrings(), "amendment priority", s)
}

func (p Priority) String() string {
	return enumName(getPriorityStrings(), p)
}

func (p Priority) Validate() error {
	return validateEnum(getPriorityStrings(), "amendment priority", p)
}
