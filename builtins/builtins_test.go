package builtins_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/viant/fegraph/builtins"
)

func TestAllIntegers_NamesAreBitExact(t *testing.T) {
	want := map[builtins.Integer]string{
		builtins.U8: "u8", builtins.U16: "u16", builtins.U32: "u32",
		builtins.U64: "u64", builtins.U128: "u128", builtins.U256: "u256",
		builtins.I8: "i8", builtins.I16: "i16", builtins.I32: "i32",
		builtins.I64: "i64", builtins.I128: "i128", builtins.I256: "i256",
	}
	all := builtins.AllIntegers()
	assert.Len(t, all, len(want))
	for _, i := range all {
		assert.Equal(t, want[i], i.String())
	}
}

func TestBase_Name(t *testing.T) {
	assert.Equal(t, "bool", builtins.BaseBool().Name())
	assert.Equal(t, "address", builtins.BaseAddress().Name())
	assert.Equal(t, "u256", builtins.BaseInt(builtins.U256).Name())
}

func TestBase_IsInt(t *testing.T) {
	assert.False(t, builtins.BaseBool().IsInt())
	assert.False(t, builtins.BaseAddress().IsInt())
	assert.True(t, builtins.BaseInt(builtins.U8).IsInt())
}

func TestGenericType_ArityAndName(t *testing.T) {
	assert.Equal(t, "Array", builtins.Array.String())
	assert.Equal(t, 2, builtins.Array.Arity())
	assert.Equal(t, "Map", builtins.Map.String())
	assert.Equal(t, 2, builtins.Map.Arity())
	assert.ElementsMatch(t, []builtins.GenericType{builtins.Array, builtins.Map}, builtins.AllGenericTypes())
}

func TestGlobalFunction_Name(t *testing.T) {
	assert.Equal(t, "keccak256", builtins.Keccak256.String())
	assert.Equal(t, []builtins.GlobalFunction{builtins.Keccak256}, builtins.AllGlobalFunctions())
}

func TestIntrinsic_Names(t *testing.T) {
	want := map[builtins.Intrinsic]string{
		builtins.IntrinsicMLoad:  "__mload",
		builtins.IntrinsicMStore: "__mstore",
		builtins.IntrinsicSLoad:  "__sload",
		builtins.IntrinsicSStore: "__sstore",
	}
	for _, i := range builtins.AllIntrinsics() {
		assert.Equal(t, want[i], i.String())
	}
}

func TestGlobalObject_Names(t *testing.T) {
	want := map[builtins.GlobalObject]string{
		builtins.Block: "block", builtins.Msg: "msg", builtins.Tx: "tx", builtins.Chain: "chain",
	}
	for _, o := range builtins.AllGlobalObjects() {
		assert.Equal(t, want[o], o.String())
	}
}
