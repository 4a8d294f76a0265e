package engine

import "bytes"

// Minimal guest modules, assembled by hand. Every length used below fits
// in a single LEB128 byte.

const (
	i32       = 0x7f
	funcType  = 0x60
	kindFunc  = 0x00
	kindMem   = 0x02
	opEnd     = 0x0b
	opCall    = 0x10
	opLocal   = 0x20
	opGlobal  = 0x23
	opSetGlob = 0x24
	opConst   = 0x41
	opAdd     = 0x6a
)

func wasmModule(sections ...[]byte) []byte {
	return bytes.Join(append([][]byte{{0x00, 'a', 's', 'm', 0x01, 0x00, 0x00, 0x00}}, sections...), nil)
}

func section(id byte, items ...[]byte) []byte {
	content := append([]byte{byte(len(items))}, bytes.Join(items, nil)...)
	return append([]byte{id, byte(len(content))}, content...)
}

func name(s string) []byte {
	return append([]byte{byte(len(s))}, s...)
}

func export(n string, kind, index byte) []byte {
	return append(name(n), kind, index)
}

func body(code ...byte) []byte {
	b := append([]byte{0x00}, code...) // no locals
	return append([]byte{byte(len(b))}, b...)
}

var (
	abortType = []byte{funcType, 4, i32, i32, i32, i32, 0}
	voidType  = []byte{funcType, 0, 0}
	unaryType = []byte{funcType, 1, i32, 1, i32}

	importAbort = append(append(name("env"), name("abort")...), kindFunc, 0)
	oneMemory   = []byte{0x00, 0x01}

	// fail calls abort(0, 0, 1, 2)
	failBody = body(opConst, 0, opConst, 0, opConst, 1, opConst, 2, opCall, 0, opEnd)
)

// bareModule exports its memory and fail(), and has no allocator.
var bareModule = wasmModule(
	section(0x01, abortType, voidType),
	section(0x02, importAbort),
	section(0x03, []byte{1}),
	section(0x05, oneMemory),
	section(0x07, export("memory", kindMem, 0), export("fail", kindFunc, 1)),
	section(0x0a, failBody),
)

// allocModule adds allocate(size) bumping a global that starts at 1024,
// and id_of_type(index) returning index+100.
var allocModule = wasmModule(
	section(0x01, abortType, voidType, unaryType),
	section(0x02, importAbort),
	section(0x03, []byte{1}, []byte{2}, []byte{2}),
	section(0x05, oneMemory),
	section(0x06, []byte{i32, 0x01, opConst, 0x80, 0x08, opEnd}),
	section(0x07,
		export("memory", kindMem, 0),
		export("fail", kindFunc, 1),
		export("allocate", kindFunc, 2),
		export("id_of_type", kindFunc, 3),
	),
	section(0x0a,
		failBody,
		body(opGlobal, 0, opGlobal, 0, opLocal, 0, opAdd, opSetGlob, 0, opEnd),
		body(opLocal, 0, opConst, 0xe4, 0x00, opAdd, opEnd),
	),
)

// noMemoryModule defines nothing at all.
var noMemoryModule = wasmModule()
