package hir

import (
	"reactc/internal/source"
)

// ValueKind enumerates HIR instruction value kinds.
type ValueKind uint8

const (
	// ValuePrimitive represents literals comparable by identity (numbers,
	// strings, booleans, null, undefined).
	ValuePrimitive ValueKind = iota
	// ValueTemplateLiteral represents an untagged template literal.
	ValueTemplateLiteral
	// ValueJsxText represents literal text inside JSX.
	ValueJsxText
	// ValueBinary represents binary operators (+, -, ===, etc.).
	ValueBinary
	// ValueUnary represents unary operators (-, !, typeof, etc.).
	ValueUnary
	// ValueLoadGlobal reads a module-level or global binding.
	ValueLoadGlobal
	// ValueLoadLocal reads a local binding into a temporary.
	ValueLoadLocal
	// ValueDeclareLocal declares a local binding without a value.
	ValueDeclareLocal
	// ValueStoreLocal writes a value into a local binding.
	ValueStoreLocal
	// ValueDestructure destructures a value into a pattern of bindings.
	ValueDestructure
	// ValueTypeCast represents a type assertion (expr as T).
	ValueTypeCast
	// ValueConditional represents a ternary with nested values.
	ValueConditional
	// ValueLogical represents && / || / ?? with nested values.
	ValueLogical
	// ValueSequence represents a comma sequence with nested instructions.
	ValueSequence
	// ValuePropertyLoad reads a named property (obj.key).
	ValuePropertyLoad
	// ValueComputedLoad reads a computed property (obj[key]).
	ValueComputedLoad
	// ValuePropertyStore writes a named property (obj.key = v).
	ValuePropertyStore
	// ValueComputedStore writes a computed property (obj[key] = v).
	ValueComputedStore
	// ValuePropertyDelete deletes a named property.
	ValuePropertyDelete
	// ValueComputedDelete deletes a computed property.
	ValueComputedDelete
	// ValueArray represents an array literal.
	ValueArray
	// ValueObject represents an object literal.
	ValueObject
	// ValueNew represents a constructor call.
	ValueNew
	// ValueCall represents a function call.
	ValueCall
	// ValueMethodCall represents a method call (obj.fn(...)).
	ValueMethodCall
	// ValueOptionalCall represents an optional call (fn?.(...)).
	ValueOptionalCall
	// ValueFunction represents a function expression with captured context.
	ValueFunction
	// ValueRegExp represents a regular expression literal.
	ValueRegExp
	// ValueTaggedTemplate represents a tagged template literal.
	ValueTaggedTemplate
	// ValueJsx represents a JSX element.
	ValueJsx
	// ValueJsxFragment represents a JSX fragment.
	ValueJsxFragment
	// ValueUnsupported marks an HIR node the pipeline cannot handle.
	ValueUnsupported
)

// String returns a human-readable name for the value kind.
func (k ValueKind) String() string {
	switch k {
	case ValuePrimitive:
		return "Primitive"
	case ValueTemplateLiteral:
		return "Template"
	case ValueJsxText:
		return "JsxText"
	case ValueBinary:
		return "Binary"
	case ValueUnary:
		return "Unary"
	case ValueLoadGlobal:
		return "LoadGlobal"
	case ValueLoadLocal:
		return "LoadLocal"
	case ValueDeclareLocal:
		return "DeclareLocal"
	case ValueStoreLocal:
		return "StoreLocal"
	case ValueDestructure:
		return "Destructure"
	case ValueTypeCast:
		return "TypeCast"
	case ValueConditional:
		return "Conditional"
	case ValueLogical:
		return "Logical"
	case ValueSequence:
		return "Sequence"
	case ValuePropertyLoad:
		return "PropertyLoad"
	case ValueComputedLoad:
		return "ComputedLoad"
	case ValuePropertyStore:
		return "PropertyStore"
	case ValueComputedStore:
		return "ComputedStore"
	case ValuePropertyDelete:
		return "PropertyDelete"
	case ValueComputedDelete:
		return "ComputedDelete"
	case ValueArray:
		return "Array"
	case ValueObject:
		return "Object"
	case ValueNew:
		return "New"
	case ValueCall:
		return "Call"
	case ValueMethodCall:
		return "MethodCall"
	case ValueOptionalCall:
		return "OptionalCall"
	case ValueFunction:
		return "Function"
	case ValueRegExp:
		return "RegExp"
	case ValueTaggedTemplate:
		return "TaggedTemplate"
	case ValueJsx:
		return "Jsx"
	case ValueJsxFragment:
		return "JsxFragment"
	case ValueUnsupported:
		return "Unsupported"
	default:
		return "Unknown"
	}
}

// Value represents an HIR instruction value.
type Value struct {
	Kind ValueKind
	Span source.Span
	Data ValueData // Kind-specific payload
}

// ValueData is the interface for value-specific data.
type ValueData interface {
	valueData()
}

// PrimitiveData holds data for ValuePrimitive.
type PrimitiveData struct {
	Raw string // literal text (42, "x", true, null, undefined)
}

func (PrimitiveData) valueData() {}

// TemplateLiteralData holds data for ValueTemplateLiteral.
type TemplateLiteralData struct {
	Quasis   []string
	Subexprs []*Place
}

func (TemplateLiteralData) valueData() {}

// JsxTextData holds data for ValueJsxText.
type JsxTextData struct {
	Text string
}

func (JsxTextData) valueData() {}

// BinaryData holds data for ValueBinary.
type BinaryData struct {
	Op    string
	Left  *Place
	Right *Place
}

func (BinaryData) valueData() {}

// UnaryData holds data for ValueUnary.
type UnaryData struct {
	Op      string
	Operand *Place
}

func (UnaryData) valueData() {}

// LoadGlobalData holds data for ValueLoadGlobal.
type LoadGlobalData struct {
	Name string
}

func (LoadGlobalData) valueData() {}

// LoadLocalData holds data for ValueLoadLocal.
type LoadLocalData struct {
	Place *Place // the binding being read
}

func (LoadLocalData) valueData() {}

// DeclareLocalData holds data for ValueDeclareLocal.
type DeclareLocalData struct {
	LValue *Place // the binding being declared
}

func (DeclareLocalData) valueData() {}

// StoreLocalData holds data for ValueStoreLocal.
type StoreLocalData struct {
	LValue *Place // the binding being written
	Value  *Place
}

func (StoreLocalData) valueData() {}

// PatternKind distinguishes destructuring pattern shapes.
type PatternKind uint8

const (
	// PatternArray is [a, b, ...rest].
	PatternArray PatternKind = iota
	// PatternObject is {a, b, ...rest}.
	PatternObject
)

// ArrayItemKind distinguishes array pattern slots.
type ArrayItemKind uint8

const (
	// ArrayItemIdentifier is a plain identifier slot.
	ArrayItemIdentifier ArrayItemKind = iota
	// ArrayItemSpread is a ...rest slot.
	ArrayItemSpread
	// ArrayItemHole is an elided slot.
	ArrayItemHole
)

// ArrayPatternItem is one slot of an array pattern.
type ArrayPatternItem struct {
	Kind  ArrayItemKind
	Place *Place // nil for holes
}

// ObjectPropKind distinguishes object pattern slots.
type ObjectPropKind uint8

const (
	// ObjectPropIdentifier is an ordinary property slot.
	ObjectPropIdentifier ObjectPropKind = iota
	// ObjectPropSpread is a ...rest slot.
	ObjectPropSpread
)

// ObjectPatternProp is one slot of an object pattern.
type ObjectPatternProp struct {
	Kind  ObjectPropKind
	Key   string // empty for spreads
	Place *Place
}

// Pattern is a destructuring pattern.
type Pattern struct {
	Kind  PatternKind
	Items []ArrayPatternItem  // PatternArray
	Props []ObjectPatternProp // PatternObject
}

// DestructureData holds data for ValueDestructure.
type DestructureData struct {
	Pattern Pattern
	Value   *Place
}

func (DestructureData) valueData() {}

// TypeCastData holds data for ValueTypeCast.
type TypeCastData struct {
	Value *Place
}

func (TypeCastData) valueData() {}

// ConditionalData holds data for ValueConditional. The branches are nested
// values, not places: reactive lowering keeps ternaries unflattened.
type ConditionalData struct {
	Test       *Value
	Consequent *Value
	Alternate  *Value
}

func (ConditionalData) valueData() {}

// LogicalData holds data for ValueLogical.
type LogicalData struct {
	Op    string // && || ??
	Left  *Value
	Right *Value
}

func (LogicalData) valueData() {}

// SequenceData holds data for ValueSequence. The sequence evaluates nested
// instructions for effect and yields the final value.
type SequenceData struct {
	Instructions []*Instruction
	Value        *Value
}

func (SequenceData) valueData() {}

// PropertyLoadData holds data for ValuePropertyLoad.
type PropertyLoadData struct {
	Object   *Place
	Property string
}

func (PropertyLoadData) valueData() {}

// ComputedLoadData holds data for ValueComputedLoad.
type ComputedLoadData struct {
	Object   *Place
	Property *Place
}

func (ComputedLoadData) valueData() {}

// PropertyStoreData holds data for ValuePropertyStore.
type PropertyStoreData struct {
	Object   *Place
	Property string
	Value    *Place
}

func (PropertyStoreData) valueData() {}

// ComputedStoreData holds data for ValueComputedStore.
type ComputedStoreData struct {
	Object   *Place
	Property *Place
	Value    *Place
}

func (ComputedStoreData) valueData() {}

// PropertyDeleteData holds data for ValuePropertyDelete.
type PropertyDeleteData struct {
	Object   *Place
	Property string
}

func (PropertyDeleteData) valueData() {}

// ComputedDeleteData holds data for ValueComputedDelete.
type ComputedDeleteData struct {
	Object   *Place
	Property *Place
}

func (ComputedDeleteData) valueData() {}

// ElementKind distinguishes array literal slots.
type ElementKind uint8

const (
	// ElementValue is an ordinary element.
	ElementValue ElementKind = iota
	// ElementSpread is a ...spread element.
	ElementSpread
	// ElementHole is an elided element.
	ElementHole
)

// ArrayElement is one slot of an array literal.
type ArrayElement struct {
	Kind  ElementKind
	Place *Place // nil for holes
}

// ArrayData holds data for ValueArray.
type ArrayData struct {
	Elements []ArrayElement
}

func (ArrayData) valueData() {}

// ObjectEntry is one property of an object literal.
type ObjectEntry struct {
	Key    string // empty for spreads
	Value  *Place
	Spread bool
}

// ObjectData holds data for ValueObject.
type ObjectData struct {
	Properties []ObjectEntry
}

func (ObjectData) valueData() {}

// CallArg is one argument of a call-like value.
type CallArg struct {
	Place  *Place
	Spread bool
}

// NewData holds data for ValueNew.
type NewData struct {
	Callee *Place
	Args   []CallArg
}

func (NewData) valueData() {}

// CallData holds data for ValueCall.
type CallData struct {
	Callee *Place
	Args   []CallArg
}

func (CallData) valueData() {}

// MethodCallData holds data for ValueMethodCall.
type MethodCallData struct {
	Receiver *Place
	Property *Place
	Args     []CallArg
}

func (MethodCallData) valueData() {}

// OptionalCallData holds data for ValueOptionalCall.
type OptionalCallData struct {
	Callee *Place
	Args   []CallArg
}

func (OptionalCallData) valueData() {}

// FunctionData holds data for ValueFunction. Dependencies are the places
// captured from the enclosing function.
type FunctionData struct {
	Name         string
	Dependencies []*Place
}

func (FunctionData) valueData() {}

// RegExpData holds data for ValueRegExp.
type RegExpData struct {
	Pattern string
	Flags   string
}

func (RegExpData) valueData() {}

// TaggedTemplateData holds data for ValueTaggedTemplate.
type TaggedTemplateData struct {
	Tag      *Place
	Quasis   []string
	Subexprs []*Place
}

func (TaggedTemplateData) valueData() {}

// JsxAttribute is one attribute of a JSX element. An empty Name marks a spread
// attribute whose argument is Value.
type JsxAttribute struct {
	Name  string // empty for spreads
	Value *Place
}

// JsxData holds data for ValueJsx. Tag is nil for intrinsic elements, whose
// name is carried in TagName.
type JsxData struct {
	Tag      *Place
	TagName  string
	Attrs    []JsxAttribute
	Children []*Place
}

func (JsxData) valueData() {}

// JsxFragmentData holds data for ValueJsxFragment.
type JsxFragmentData struct {
	Children []*Place
}

func (JsxFragmentData) valueData() {}

// UnsupportedData holds data for ValueUnsupported.
type UnsupportedData struct {
	Description string
}

func (UnsupportedData) valueData() {}
