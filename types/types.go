package types

type ChangeEventType int

const (
	Insert ChangeEventType = iota
	Update
	Delete
)

func (t ChangeEventType) String() string {
	switch t {
	case Insert:
		return "INSERT"
	case Update:
		return "UPDATE"
	case Delete:
		return "DELETE"
	}
	return "UNKNOWN"
}

// SubscriptionStatus The lifecycle states a change-feed subscription can report.
type SubscriptionStatus int

const (
	Disconnected SubscriptionStatus = iota
	Connecting
	Subscribed
	ChannelError
	TimedOut
	Closed
)

func (s SubscriptionStatus) String() string {
	switch s {
	case Disconnected:
		return "disconnected"
	case Connecting:
		return "connecting"
	case Subscribed:
		return "subscribed"
	case ChannelError:
		return "channel-error"
	case TimedOut:
		return "timed-out"
	case Closed:
		return "closed"
	}
	return "unknown"
}
