//go:build !linux && !wasip1 && !js

package platform

const defaultBackendName = "terminal"
