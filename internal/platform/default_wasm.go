//go:build wasip1 || js

package platform

const defaultBackendName = "headless"
