// Package builtins enumerates the fixed tags behind every built-in Item
// variant: primitive types, generic type constructors, built-in functions,
// intrinsics, and built-in objects. The prelude (analyzer's buildPrelude) is
// built by iterating these lists; their names must be bit-exact per spec §6.
package builtins

// Integer is every primitive integer width/signedness.
type Integer int

const (
	U8 Integer = iota
	U16
	U32
	U64
	U128
	U256
	I8
	I16
	I32
	I64
	I128
	I256
)

var integerNames = map[Integer]string{
	U8: "u8", U16: "u16", U32: "u32", U64: "u64", U128: "u128", U256: "u256",
	I8: "i8", I16: "i16", I32: "i32", I64: "i64", I128: "i128", I256: "i256",
}

func (i Integer) String() string { return integerNames[i] }

// AllIntegers lists every primitive integer width in declaration order.
func AllIntegers() []Integer {
	return []Integer{U8, U16, U32, U64, U128, U256, I8, I16, I32, I64, I128, I256}
}

// Base is a primitive type: bool, address, or one of the integer widths.
type Base struct {
	Bool    bool
	Address bool
	Numeric Integer
	isInt   bool
}

func BaseBool() Base    { return Base{Bool: true} }
func BaseAddress() Base { return Base{Address: true} }
func BaseInt(i Integer) Base { return Base{Numeric: i, isInt: true} }

func (b Base) IsInt() bool { return b.isInt }

func (b Base) Name() string {
	switch {
	case b.Bool:
		return "bool"
	case b.Address:
		return "address"
	default:
		return b.Numeric.String()
	}
}

// GenericType is a built-in generic type constructor, eg Array<T, N> or
// Map<K, V>.
type GenericType int

const (
	Array GenericType = iota
	Map
)

var genericNames = map[GenericType]string{Array: "Array", Map: "Map"}

func (g GenericType) String() string { return genericNames[g] }

// Arity returns how many type parameters the constructor takes.
func (g GenericType) Arity() int {
	switch g {
	case Array:
		return 2 // element type, fixed length
	case Map:
		return 2 // key type, value type
	default:
		return 0
	}
}

func AllGenericTypes() []GenericType { return []GenericType{Array, Map} }

// GlobalFunction is a built-in free function, eg keccak256.
type GlobalFunction int

const (
	Keccak256 GlobalFunction = iota
)

var globalFunctionNames = map[GlobalFunction]string{Keccak256: "keccak256"}

func (g GlobalFunction) String() string { return globalFunctionNames[g] }

func AllGlobalFunctions() []GlobalFunction { return []GlobalFunction{Keccak256} }

// Intrinsic is a compiler intrinsic not representable as a normal function.
type Intrinsic int

const (
	IntrinsicMLoad Intrinsic = iota
	IntrinsicMStore
	IntrinsicSLoad
	IntrinsicSStore
)

var intrinsicNames = map[Intrinsic]string{
	IntrinsicMLoad:  "__mload",
	IntrinsicMStore: "__mstore",
	IntrinsicSLoad:  "__sload",
	IntrinsicSStore: "__sstore",
}

func (i Intrinsic) String() string { return intrinsicNames[i] }

func AllIntrinsics() []Intrinsic {
	return []Intrinsic{IntrinsicMLoad, IntrinsicMStore, IntrinsicSLoad, IntrinsicSStore}
}

// GlobalObject is a built-in runtime context object, eg block/msg.
type GlobalObject int

const (
	Block GlobalObject = iota
	Msg
	Tx
	Chain
)

var globalObjectNames = map[GlobalObject]string{
	Block: "block", Msg: "msg", Tx: "tx", Chain: "chain",
}

func (g GlobalObject) String() string { return globalObjectNames[g] }

func AllGlobalObjects() []GlobalObject { return []GlobalObject{Block, Msg, Tx, Chain} }
