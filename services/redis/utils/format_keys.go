package utils

/**
 * This file contains utility functions to format the keys for Redis
 * (key, value) pairs, so the key layout is defined in one place instead
 * of scattered "fmt.Sprintf(...)" calls.
 */

import "fmt"

func FormatInteractionKey(messageID string) string {
	return fmt.Sprintf("interaction:%s", messageID)
}
