package d3d11

import (
	"fmt"
	"sync"

	"golang.org/x/sys/windows"

	"github.com/gogpu/dxbind"
)

var (
	d3d11DLL              = windows.NewLazySystemDLL("d3d11.dll")
	procD3D11CreateDevice = d3d11DLL.NewProc("D3D11CreateDevice")

	loadOnce sync.Once
	loadErr  error
)

func loadCreateDevice() (uintptr, error) {
	loadOnce.Do(func() {
		if err := procD3D11CreateDevice.Find(); err != nil {
			loadErr = fmt.Errorf("%w: %v", dxbind.ErrUnsupported, err)
		}
	})
	if loadErr != nil {
		return 0, loadErr
	}
	return procD3D11CreateDevice.Addr(), nil
}
