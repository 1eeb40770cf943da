package platform

import (
	"fmt"
	"strings"
)

// EventName returns the type name of ev for logs, e.g. "Resized".
func EventName(ev Event) string {
	name := fmt.Sprintf("%T", ev)
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		name = name[i+1:]
	}
	return name
}
