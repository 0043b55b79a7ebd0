// Package d2d1 binds Direct2D effect creation and the indexed effect
// property table.
//
// An [Effect] is created from a [DeviceContext] by CLSID and exposes its
// properties by index with typed accessors:
//
//	blur, err := d2d1.NewGaussianBlur(ctx)
//	if err != nil {
//		return err
//	}
//	defer blur.Release()
//	err = blur.SetStandardDeviation(4)
//
// Property indices are not range-checked locally; the native property
// table rejects bad indices and the failure is returned as a
// *dxbind.NativeError.
package d2d1
