//go:build (darwin || freebsd || linux || netbsd) && !android

package d3d11

import (
	"errors"
	"fmt"
	"sync"

	"github.com/ebitengine/purego"

	"github.com/gogpu/dxbind"
)

// DXVK native builds export the Windows entry points from a shared
// library.
var dxvkLibraries = []string{
	"libdxvk_d3d11.so.0",
	"libdxvk_d3d11.so",
}

var (
	loadOnce sync.Once
	loadFn   uintptr
	loadErr  error
)

func loadCreateDevice() (uintptr, error) {
	loadOnce.Do(func() {
		var errs []error
		for _, name := range dxvkLibraries {
			lib, err := purego.Dlopen(name, purego.RTLD_NOW|purego.RTLD_LOCAL)
			if err != nil {
				errs = append(errs, err)
				continue
			}
			fn, err := purego.Dlsym(lib, "D3D11CreateDevice")
			if err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", name, err))
				continue
			}
			loadFn = fn
			return
		}
		loadErr = fmt.Errorf("%w: %w", dxbind.ErrUnsupported, errors.Join(errs...))
	})
	return loadFn, loadErr
}
