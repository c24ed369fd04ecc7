//go:build cgo && lerc

package blob

import "github.com/arloliu/lerc/native"

func defaultLibrary() native.Library {
	return native.NewCLibrary()
}
