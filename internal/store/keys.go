package store

const (
	// SlotUsers holds the email -> user mapping.
	SlotUsers = "users"
	// SlotSession holds a copy of the active user record.
	SlotSession = "current_session"
	// SlotChat holds the global chat log.
	SlotChat = "chat_messages"

	// DefaultKeyPrefix namespaces the slots inside a shared medium.
	DefaultKeyPrefix = "linkvault:"
)

// Key returns the medium key for a slot.
func Key(prefix, slot string) string {
	return prefix + slot
}
