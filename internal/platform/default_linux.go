//go:build linux

package platform

const defaultBackendName = "x11"
