//go:build !cgo || !lerc

package blob

import (
	"github.com/arloliu/lerc/lerc2"
	"github.com/arloliu/lerc/native"
)

func defaultLibrary() native.Library {
	return lerc2.NewCodec()
}
