package debugui

import (
	"fmt"
	"reflect"
	"sync"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/ruzzle/ecs"
)

// FieldInfo describes one exported struct field shown by the inspector.
type FieldInfo struct {
	Name      string
	Type      reflect.Type
	Index     int
	IsPointer bool
}

var fieldCache sync.Map // reflect.Type -> []FieldInfo

// Fields returns the exported fields of t, looking through pointers.
// Results are cached per type.
func Fields(t reflect.Type) []FieldInfo {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if cached, ok := fieldCache.Load(t); ok {
		return cached.([]FieldInfo)
	}

	var fields []FieldInfo
	if t.Kind() == reflect.Struct {
		for i := range t.NumField() {
			f := t.Field(i)
			if !f.IsExported() {
				continue
			}
			ft := f.Type
			isPointer := ft.Kind() == reflect.Pointer
			if isPointer {
				ft = ft.Elem()
			}
			fields = append(fields, FieldInfo{Name: f.Name, Type: ft, Index: i, IsPointer: isPointer})
		}
	}
	fieldCache.Store(t, fields)
	return fields
}

// SetField assigns value to a settable scalar field, converting between
// numeric kinds. It reports false when the kinds are incompatible or the
// value overflows the field.
func SetField(field reflect.Value, value any) bool {
	if !field.CanSet() {
		return false
	}
	v := reflect.ValueOf(value)
	switch field.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		var n int64
		switch {
		case v.CanInt():
			n = v.Int()
		case v.CanUint():
			n = int64(v.Uint())
		default:
			return false
		}
		if field.OverflowInt(n) {
			return false
		}
		field.SetInt(n)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		var n uint64
		switch {
		case v.CanUint():
			n = v.Uint()
		case v.CanInt() && v.Int() >= 0:
			n = uint64(v.Int())
		default:
			return false
		}
		if field.OverflowUint(n) {
			return false
		}
		field.SetUint(n)
	case reflect.Float32, reflect.Float64:
		if !v.CanFloat() {
			return false
		}
		field.SetFloat(v.Float())
	case reflect.Bool:
		if v.Kind() != reflect.Bool {
			return false
		}
		field.SetBool(v.Bool())
	case reflect.String:
		if v.Kind() != reflect.String {
			return false
		}
		field.SetString(v.String())
	default:
		return false
	}
	return true
}

// Inspector renders the components of the entity selected in a browser and
// writes edits straight into the storage.
type Inspector struct {
	browser *EntityBrowser
}

func NewInspector(browser *EntityBrowser) *Inspector {
	return &Inspector{browser: browser}
}

func (ci *Inspector) Render(storage *ecs.Storage) {
	imgui.SetNextWindowPosV(imgui.NewVec2(790, 340), imgui.CondOnce, imgui.NewVec2(0, 0))
	imgui.SetNextWindowSizeV(imgui.NewVec2(320, 260), imgui.CondOnce)
	if !imgui.BeginV("Component Inspector", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	id := ci.browser.Selected
	types := storage.ComponentTypes(id)
	if id == 0 || types == nil {
		imgui.Text("No entity selected")
		imgui.End()
		return
	}

	imgui.Text(fmt.Sprintf("Entity ID: %d", id))
	imgui.Separator()
	for _, t := range types {
		component := storage.GetComponent(id, t)
		if component == nil {
			continue
		}
		if imgui.TreeNodeStr(t.String()) {
			ci.renderStruct(reflect.ValueOf(component).Elem(), t.String())
			imgui.TreePop()
		}
	}

	imgui.End()
}

func (ci *Inspector) renderStruct(val reflect.Value, path string) {
	for _, field := range Fields(val.Type()) {
		fv := val.Field(field.Index)
		if field.IsPointer {
			if fv.IsNil() {
				imgui.Text(fmt.Sprintf("%s: nil", field.Name))
				continue
			}
			fv = fv.Elem()
		}
		ci.renderField(field.Name, fv, path+"."+field.Name)
	}
}

func (ci *Inspector) renderField(name string, val reflect.Value, path string) {
	id := "##" + path
	switch val.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		var v int32
		if val.CanInt() {
			v = int32(val.Int())
		} else {
			v = int32(val.Uint())
		}
		imgui.Text(name + ":")
		imgui.SameLine()
		imgui.SetNextItemWidth(150)
		if imgui.InputInt(id, &v) {
			SetField(val, int64(v))
		}

	case reflect.Float32, reflect.Float64:
		v := float32(val.Float())
		imgui.Text(name + ":")
		imgui.SameLine()
		imgui.SetNextItemWidth(150)
		if imgui.InputFloat(id, &v) {
			SetField(val, float64(v))
		}

	case reflect.Bool:
		v := val.Bool()
		if imgui.Checkbox(name+id, &v) {
			SetField(val, v)
		}

	case reflect.String:
		v := val.String()
		imgui.Text(name + ":")
		imgui.SameLine()
		imgui.SetNextItemWidth(200)
		if imgui.InputTextWithHint(id, "", &v, imgui.InputTextFlagsNone, nil) {
			SetField(val, v)
		}

	case reflect.Struct:
		if imgui.TreeNodeStr(name) {
			ci.renderStruct(val, path)
			imgui.TreePop()
		}

	case reflect.Slice, reflect.Array:
		imgui.Text(fmt.Sprintf("%s: [%d items]", name, val.Len()))

	case reflect.Map:
		imgui.Text(fmt.Sprintf("%s: map[%d items]", name, val.Len()))

	default:
		if val.CanInterface() {
			imgui.Text(fmt.Sprintf("%s: %v", name, val.Interface()))
		}
	}
}
