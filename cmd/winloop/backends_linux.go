//go:build linux

package main

import _ "github.com/1broseidon/winloop/internal/platform/x11"
