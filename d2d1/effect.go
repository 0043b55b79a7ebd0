package d2d1

import (
	"fmt"

	ole "github.com/go-ole/go-ole"

	"github.com/gogpu/dxbind"
	"github.com/gogpu/dxbind/com"
	"github.com/gogpu/dxbind/internal/marshal"
)

// PropertyType is D2D1_PROPERTY_TYPE.
type PropertyType uint32

const (
	PropertyTypeUnknown   PropertyType = 0
	PropertyTypeString    PropertyType = 1
	PropertyTypeBool      PropertyType = 2
	PropertyTypeUint32    PropertyType = 3
	PropertyTypeInt32     PropertyType = 4
	PropertyTypeFloat     PropertyType = 5
	PropertyTypeVector2   PropertyType = 6
	PropertyTypeVector3   PropertyType = 7
	PropertyTypeVector4   PropertyType = 8
	PropertyTypeBlob      PropertyType = 9
	PropertyTypeIUnknown  PropertyType = 10
	PropertyTypeEnum      PropertyType = 11
	PropertyTypeArray     PropertyType = 12
	PropertyTypeCLSID     PropertyType = 13
	PropertyTypeMatrix3x2 PropertyType = 14
)

// Vector2 is D2D1_VECTOR_2F.
type Vector2 [2]float32

// Vector4 is D2D1_VECTOR_4F.
type Vector4 [4]float32

// DeviceContext wraps the effect factory of ID2D1DeviceContext.
type DeviceContext struct {
	obj   *com.Object
	abi   ABI
	table *com.Table
}

// WrapDeviceContext adds a reference to the device context at addr.
func WrapDeviceContext(addr uintptr, opts ...Option) (*DeviceContext, error) {
	o := buildOptions(opts)
	obj, err := o.table.Wrap(addr)
	if err != nil {
		return nil, err
	}
	return &DeviceContext{obj: obj, abi: o.abi, table: o.table}, nil
}

// Object returns the underlying proxy.
func (c *DeviceContext) Object() *com.Object {
	if c == nil {
		return nil
	}
	return c.obj
}

// Release drops this wrapper's reference.
func (c *DeviceContext) Release() error { return c.Object().Release() }

// CreateEffect creates an effect of the type identified by clsid.
func (c *DeviceContext) CreateEffect(clsid *ole.GUID) (*Effect, error) {
	const op = "CreateEffect"
	if c == nil {
		return nil, dxbind.NewArgumentError(op, "context", dxbind.ErrNullArgument)
	}
	this, err := c.obj.Live()
	if err != nil {
		return nil, dxbind.NewArgumentError(op, "context", dxbind.ErrUseAfterRelease)
	}
	if clsid == nil {
		return nil, dxbind.NewArgumentError(op, "clsid", dxbind.ErrNullArgument)
	}
	var out uintptr
	if r := c.abi.CreateEffect(this, clsid, &out); r.Failed() {
		return nil, r.Err(op)
	}
	obj, err := c.table.Attach(out)
	if err != nil {
		return nil, err
	}
	return &Effect{obj: obj, abi: c.abi, clsid: *clsid}, nil
}

// Effect wraps ID2D1Effect.
type Effect struct {
	obj   *com.Object
	abi   ABI
	clsid ole.GUID
}

// Object returns the underlying proxy.
func (e *Effect) Object() *com.Object {
	if e == nil {
		return nil
	}
	return e.obj
}

// Address returns the native interface pointer.
func (e *Effect) Address() uintptr { return e.Object().Address() }

// Release drops this wrapper's reference.
func (e *Effect) Release() error { return e.Object().Release() }

// CLSID returns the effect type the effect was created from.
func (e *Effect) CLSID() ole.GUID { return e.clsid }

func (e *Effect) live(op string) (uintptr, error) {
	if e == nil {
		return 0, dxbind.NewArgumentError(op, "effect", dxbind.ErrNullArgument)
	}
	addr, err := e.obj.Live()
	if err != nil {
		return 0, dxbind.NewArgumentError(op, "effect", dxbind.ErrUseAfterRelease)
	}
	return addr, nil
}

// PropertyCount returns the number of top-level properties.
func (e *Effect) PropertyCount() (uint32, error) {
	this, err := e.live("GetPropertyCount")
	if err != nil {
		return 0, err
	}
	return e.abi.GetPropertyCount(this), nil
}

func setValue[T marshal.Value](e *Effect, index uint32, typ PropertyType, v T) error {
	const op = "SetValue"
	this, err := e.live(op)
	if err != nil {
		return err
	}
	a := marshal.Acquire()
	defer a.Release()

	p, size := marshal.Stage(a, v)
	if r := e.abi.SetValue(this, index, uint32(typ), p, size); r.Failed() {
		return r.Err(fmt.Sprintf("%s(%d)", op, index))
	}
	return nil
}

func getValue[T marshal.Value](e *Effect, index uint32, typ PropertyType) (T, error) {
	const op = "GetValue"
	var zero T
	this, err := e.live(op)
	if err != nil {
		return zero, err
	}
	a := marshal.Acquire()
	defer a.Release()

	p, size := marshal.Scratch[T](a)
	if r := e.abi.GetValue(this, index, uint32(typ), p, size); r.Failed() {
		return zero, r.Err(fmt.Sprintf("%s(%d)", op, index))
	}
	return marshal.Load[T](p), nil
}

// SetFloat sets a float property.
func (e *Effect) SetFloat(index uint32, v float32) error {
	return setValue(e, index, PropertyTypeFloat, v)
}

// Float reads a float property.
func (e *Effect) Float(index uint32) (float32, error) {
	return getValue[float32](e, index, PropertyTypeFloat)
}

// SetUint32 sets a uint32 property.
func (e *Effect) SetUint32(index uint32, v uint32) error {
	return setValue(e, index, PropertyTypeUint32, v)
}

// Uint32 reads a uint32 property.
func (e *Effect) Uint32(index uint32) (uint32, error) {
	return getValue[uint32](e, index, PropertyTypeUint32)
}

// SetEnum sets an enumeration property.
func (e *Effect) SetEnum(index uint32, v uint32) error {
	return setValue(e, index, PropertyTypeEnum, v)
}

// Enum reads an enumeration property.
func (e *Effect) Enum(index uint32) (uint32, error) {
	return getValue[uint32](e, index, PropertyTypeEnum)
}

// SetBool sets a BOOL property.
func (e *Effect) SetBool(index uint32, v bool) error {
	var b uint32
	if v {
		b = 1
	}
	return setValue(e, index, PropertyTypeBool, b)
}

// Bool reads a BOOL property.
func (e *Effect) Bool(index uint32) (bool, error) {
	b, err := getValue[uint32](e, index, PropertyTypeBool)
	return b != 0, err
}

// SetVector2 sets a two-component vector property.
func (e *Effect) SetVector2(index uint32, v Vector2) error {
	return setValue(e, index, PropertyTypeVector2, v)
}

// Vector2 reads a two-component vector property.
func (e *Effect) Vector2(index uint32) (Vector2, error) {
	return getValue[Vector2](e, index, PropertyTypeVector2)
}

// SetVector4 sets a four-component vector property.
func (e *Effect) SetVector4(index uint32, v Vector4) error {
	return setValue(e, index, PropertyTypeVector4, v)
}

// Vector4 reads a four-component vector property.
func (e *Effect) Vector4(index uint32) (Vector4, error) {
	return getValue[Vector4](e, index, PropertyTypeVector4)
}
