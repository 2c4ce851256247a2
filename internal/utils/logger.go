package utils

import (
	"log"
	"strings"
)

// LogEvent prints a standardized line with module/action/request_id. Keep the
// message summarized; tokens and credentials must never end up here.
func LogEvent(requestID, module, action, message string) {
	if module == "" {
		module = "app"
	}
	log.Printf("[%s] action=%s request_id=%s msg=%s",
		strings.ToUpper(module), action, strings.TrimSpace(requestID), message)
}
