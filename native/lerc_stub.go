//go:build !cgo || !lerc

package native

// Available reports whether the cgo binding to liblerc is compiled in.
func Available() bool {
	return false
}
