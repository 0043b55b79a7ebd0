// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package fakenative

import (
	"fmt"
	"unsafe"

	ole "github.com/go-ole/go-ole"

	"github.com/gogpu/dxbind"
)

// D2D1_PROPERTY_TYPE values understood by the fake property table.
const (
	PropertyUnknown uint32 = 0
	PropertyBool    uint32 = 2
	PropertyUint32  uint32 = 3
	PropertyInt32   uint32 = 4
	PropertyFloat   uint32 = 5
	PropertyVector2 uint32 = 6
	PropertyVector3 uint32 = 7
	PropertyVector4 uint32 = 8
	PropertyEnum    uint32 = 11
)

// Property declares one entry of a fake effect's property table.
type Property struct {
	Name string
	Type uint32
	Size uint32
}

// Float, Uint32, Bool, Enum, Vector2 and Vector4 declare properties of
// the matching type and native size.
func Float(name string) Property   { return Property{name, PropertyFloat, 4} }
func Uint32(name string) Property  { return Property{name, PropertyUint32, 4} }
func Bool(name string) Property    { return Property{name, PropertyBool, 4} }
func Enum(name string) Property    { return Property{name, PropertyEnum, 4} }
func Vector2(name string) Property { return Property{name, PropertyVector2, 8} }
func Vector4(name string) Property { return Property{name, PropertyVector4, 16} }

// EffectSchema is the property table of one effect type.
type EffectSchema []Property

type effectState struct {
	clsid  string
	schema EffectSchema
	values [][]byte
}

// RegisterEffect declares the effect type clsid with the given property
// table. CreateEffect rejects unregistered types.
func (n *Native) RegisterEffect(clsid *ole.GUID, props ...Property) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.effects[clsid.String()] = append(EffectSchema(nil), props...)
}

// NewD2DContext creates a fake ID2D1DeviceContext.
func (n *Native) NewD2DContext() uintptr {
	return n.NewObject(KindD2DDeviceContext)
}

// EffectType returns the CLSID string an effect was created from.
func (n *Native) EffectType(effect uintptr) string {
	n.mu.Lock()
	defer n.mu.Unlock()
	if obj, ok := n.objects[effect]; ok && obj.effect != nil {
		return obj.effect.clsid
	}
	return ""
}

// CreateEffect implements ID2D1DeviceContext::CreateEffect.
func (n *Native) CreateEffect(this uintptr, clsid *ole.GUID, out *uintptr) dxbind.Result {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.objectLocked(this, KindD2DDeviceContext)
	if clsid == nil || out == nil {
		n.recordLocked("CreateEffect", this, []uint64{nonNull(unsafe.Pointer(clsid)), nonNull(unsafe.Pointer(out))})
		return dxbind.EPointer
	}
	n.recordLocked("CreateEffect", this, []uint64{1, 1}, copyBytes(unsafe.Pointer(clsid), int(unsafe.Sizeof(*clsid))))
	if r, ok := n.failureLocked("CreateEffect"); ok {
		*out = 0
		return r
	}
	schema, ok := n.effects[clsid.String()]
	if !ok {
		*out = 0
		return dxbind.EInvalidArg
	}
	obj := n.newObjectLocked(KindEffect)
	obj.effect = &effectState{clsid: clsid.String(), schema: schema, values: make([][]byte, len(schema))}
	for i, p := range schema {
		obj.effect.values[i] = make([]byte, p.Size)
	}
	*out = obj.Addr
	return dxbind.SOK
}

func (n *Native) effectLocked(this uintptr) *effectState {
	obj := n.objectLocked(this, KindEffect)
	if obj == nil || obj.effect == nil {
		return &effectState{}
	}
	return obj.effect
}

// GetPropertyCount implements ID2D1Properties::GetPropertyCount.
func (n *Native) GetPropertyCount(this uintptr) uint32 {
	n.mu.Lock()
	defer n.mu.Unlock()
	e := n.effectLocked(this)
	n.recordLocked("GetPropertyCount", this, nil)
	return uint32(len(e.schema))
}

func (e *effectState) check(index, typ uint32, data unsafe.Pointer, size uint32) error {
	if int(index) >= len(e.schema) {
		return fmt.Errorf("index %d out of range", index)
	}
	p := e.schema[index]
	if typ != PropertyUnknown && typ != p.Type {
		return fmt.Errorf("property %s has type %d, got %d", p.Name, p.Type, typ)
	}
	if size != p.Size {
		return fmt.Errorf("property %s has size %d, got %d", p.Name, p.Size, size)
	}
	if data == nil {
		return fmt.Errorf("property %s: null data", p.Name)
	}
	return nil
}

// SetValue implements ID2D1Properties::SetValue.
func (n *Native) SetValue(this uintptr, index, typ uint32, data unsafe.Pointer, size uint32) dxbind.Result {
	n.mu.Lock()
	defer n.mu.Unlock()
	e := n.effectLocked(this)
	n.recordLocked("SetValue", this, []uint64{uint64(index), uint64(typ), nonNull(data), uint64(size)},
		copyBytes(data, int(size)))
	if r, ok := n.failureLocked("SetValue"); ok {
		return r
	}
	if err := e.check(index, typ, data, size); err != nil {
		return dxbind.EInvalidArg
	}
	copy(e.values[index], unsafe.Slice((*byte)(data), size))
	return dxbind.SOK
}

// GetValue implements ID2D1Properties::GetValue.
func (n *Native) GetValue(this uintptr, index, typ uint32, data unsafe.Pointer, size uint32) dxbind.Result {
	n.mu.Lock()
	defer n.mu.Unlock()
	e := n.effectLocked(this)
	n.recordLocked("GetValue", this, []uint64{uint64(index), uint64(typ), nonNull(data), uint64(size)})
	if r, ok := n.failureLocked("GetValue"); ok {
		return r
	}
	if err := e.check(index, typ, data, size); err != nil {
		return dxbind.EInvalidArg
	}
	copy(unsafe.Slice((*byte)(data), size), e.values[index])
	return dxbind.SOK
}
