package domain

// ConversationKey derives the canonical identifier for the unordered
// pair of usernames exchanging messages. Both argument orders produce
// the same key, so subscription lookups and fan-out resolution never
// depend on who is sender and who is recipient.
func ConversationKey(userX, userY string) string {
	if userX > userY {
		userX, userY = userY, userX
	}
	return userX + "|" + userY
}
