//go:build !wasip1 && !js

package main

import _ "github.com/1broseidon/winloop/internal/platform/terminal"
