package redis

import "fmt"

func prefixedKey(prefix, key string) string {
	if prefix == "" {
		return key
	}
	return fmt.Sprintf("%s:%s", prefix, key)
}

// pendingListKey is the key for the list of IDs for messages ready to be
// handled.
func pendingListKey(prefix, queueName string) string {
	return prefixedKey(prefix, fmt.Sprintf("%s:pending", queueName))
}

// messagesHashKey is the key for the hash of messages indexed by message ID.
func messagesHashKey(prefix, queueName string) string {
	return prefixedKey(prefix, fmt.Sprintf("%s:messages", queueName))
}

// activeListKey is the key for the list of IDs for messages a specific
// consumer has claimed but not yet acknowledged.
func activeListKey(prefix, queueName, consumerID string) string {
	return prefixedKey(
		prefix,
		fmt.Sprintf("%s:active:%s", queueName, consumerID),
	)
}
