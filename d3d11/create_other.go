//go:build !windows && !((darwin || freebsd || linux || netbsd) && !android)

package d3d11

import "github.com/gogpu/dxbind"

func loadCreateDevice() (uintptr, error) {
	return 0, dxbind.ErrUnsupported
}
