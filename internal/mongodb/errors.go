package mongodb

import "go.mongodb.org/mongo-driver/mongo"

const duplicateKeyErrorCode = 11000

// IsDuplicateKeyError returns true if the given error is a write exception
// raised because a unique index rejected the write.
func IsDuplicateKeyError(err error) bool {
	writeException, ok := err.(mongo.WriteException)
	if !ok {
		return false
	}
	for _, writeErr := range writeException.WriteErrors {
		if writeErr.Code == duplicateKeyErrorCode {
			return true
		}
	}
	return false
}
