package scheduling

import "strings"

// Wire form of a recurring template reference, e.g.
// "recurring-7c0e...". Parsed exactly once at the boundary.
const recurringPrefix = "recurring-"

type RefKind int

const (
	RefReal RefKind = iota
	RefRecurring
)

// SlotRef identifies a booking target: either a persisted Slot or a
// RecurringAvailability template that still needs a date to become one.
type SlotRef struct {
	kind RefKind
	id   string
}

func RealRef(slotID string) SlotRef {
	return SlotRef{kind: RefReal, id: slotID}
}

func RecurringRef(templateID string) SlotRef {
	return SlotRef{kind: RefRecurring, id: templateID}
}

// ParseSlotRef decodes the wire form used by clients. Anything without
// the recurring prefix is treated as a real slot id.
func ParseSlotRef(raw string) SlotRef {
	if strings.HasPrefix(raw, recurringPrefix) {
		return RecurringRef(strings.TrimPrefix(raw, recurringPrefix))
	}
	return RealRef(raw)
}

func (r SlotRef) Kind() RefKind     { return r.kind }
func (r SlotRef) ID() string        { return r.id }
func (r SlotRef) IsRecurring() bool { return r.kind == RefRecurring }

// String returns the wire form.
func (r SlotRef) String() string {
	if r.kind == RefRecurring {
		return recurringPrefix + r.id
	}
	return r.id
}

// RecurringSlotID tags a template id the way virtual slot views expose
// it to clients.
func RecurringSlotID(templateID string) string {
	return recurringPrefix + templateID
}
