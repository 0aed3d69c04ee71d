// package manipulator implements an interactive camera controller for a 3D
// geospatial viewer. It binds pointer, keyboard, scroll, and multi-touch
// input to semantic actions, integrates continuous motion across frames, and
// applies numerically stable orbit/pan/zoom transforms on a globe or a
// projected plane.
package manipulator

// ActionType is a semantic camera operation that input can be bound to.
type ActionType int

const (
	ActionNull ActionType = iota
	ActionHome
	ActionGoto
	ActionPan
	ActionPanLeft
	ActionPanRight
	ActionPanUp
	ActionPanDown
	ActionRotate
	ActionRotateLeft
	ActionRotateRight
	ActionRotateUp
	ActionRotateDown
	ActionZoom
	ActionZoomIn
	ActionZoomOut
	ActionToggleProjection
)

// actionNames is the diagnostic name table, indexed by ActionType.
var actionNames = [...]string{
	"null",
	"home",
	"goto",
	"pan",
	"pan-left",
	"pan-right",
	"pan-up",
	"pan-down",
	"rotate",
	"rotate-left",
	"rotate-right",
	"rotate-up",
	"rotate-down",
	"zoom",
	"zoom-in",
	"zoom-out",
	"toggle-projection",
}

func (t ActionType) String() string {
	if t < 0 || int(t) >= len(actionNames) {
		return "unknown"
	}
	return actionNames[t]
}

// Direction is the semantic direction of a directional action, or of a
// scroll gesture.
type Direction int

const (
	DirNA Direction = iota
	DirLeft
	DirRight
	DirUp
	DirDown
)

// directionOf maps an action type to its fixed direction.
func directionOf(t ActionType) Direction {
	switch t {
	case ActionPanLeft, ActionRotateLeft:
		return DirLeft
	case ActionPanRight, ActionRotateRight:
		return DirRight
	case ActionPanUp, ActionRotateUp, ActionZoomIn:
		return DirUp
	case ActionPanDown, ActionRotateDown, ActionZoomOut:
		return DirDown
	default:
		return DirNA
	}
}

// ActionOption is a typed tuning key attached to a bound Action.
type ActionOption int

const (
	OptionScaleX ActionOption = iota
	OptionScaleY
	OptionContinuous
	OptionSingleAxis
	OptionGotoRangeFactor
	OptionDuration
)

// actionOptionNames is the diagnostic name table, indexed by ActionOption.
var actionOptionNames = [...]string{
	"scale-x",
	"scale-y",
	"continuous",
	"single-axis",
	"goto-range-factor",
	"duration",
}

func (o ActionOption) String() string {
	if o < 0 || int(o) >= len(actionOptionNames) {
		return "unknown"
	}
	return actionOptionNames[o]
}

// optionValue is one (key, typed value) pair in an ActionOptions list.
type optionValue struct {
	option     ActionOption
	boolValue  bool
	floatValue float64
}

// ActionOptions is an ordered list of option values. Lookup returns the
// first match, so earlier entries win over later duplicates.
type ActionOptions struct {
	values []optionValue
}

// AddBool appends a boolean-valued option.
//
// Parameters:
//   - option: the option key
//   - value: the boolean value
//
// Returns:
//   - ActionOptions: the options with the value appended, for chaining
func (o ActionOptions) AddBool(option ActionOption, value bool) ActionOptions {
	o.values = append(o.values, optionValue{option: option, boolValue: value})
	return o
}

// AddFloat appends a float-valued option.
//
// Parameters:
//   - option: the option key
//   - value: the float value
//
// Returns:
//   - ActionOptions: the options with the value appended, for chaining
func (o ActionOptions) AddFloat(option ActionOption, value float64) ActionOptions {
	o.values = append(o.values, optionValue{option: option, floatValue: value})
	return o
}

// Action is a semantic operation bound to input, with tuning options.
// Actions are immutable once constructed; the direction is fixed from the
// type at construction time.
type Action struct {
	typ     ActionType
	dir     Direction
	options ActionOptions
}

// NullAction is the no-op action returned by binding lookups that match
// nothing.
var NullAction = Action{typ: ActionNull}

// NewAction creates an Action of the given type.
//
// Parameters:
//   - typ: the action type
//   - options: optional tuning values
//
// Returns:
//   - Action: the immutable action
func NewAction(typ ActionType, options ...ActionOptions) Action {
	a := Action{typ: typ, dir: directionOf(typ)}
	if len(options) > 0 {
		a.options = options[0]
	}
	return a
}

// Type returns the action's semantic type.
//
// Returns:
//   - ActionType: the action type
func (a Action) Type() ActionType {
	return a.typ
}

// Direction returns the direction fixed from the action's type.
//
// Returns:
//   - Direction: the action direction, DirNA for non-directional actions
func (a Action) Direction() Direction {
	return a.dir
}

// BoolOption returns the first bound value for a boolean option, or the
// provided default when the option is absent.
//
// Parameters:
//   - option: the option key
//   - def: value to return when the option is not set
//
// Returns:
//   - bool: the option value or def
func (a Action) BoolOption(option ActionOption, def bool) bool {
	for _, v := range a.options.values {
		if v.option == option {
			return v.boolValue
		}
	}
	return def
}

// FloatOption returns the first bound value for a float option, or the
// provided default when the option is absent.
//
// Parameters:
//   - option: the option key
//   - def: value to return when the option is not set
//
// Returns:
//   - float64: the option value or def
func (a Action) FloatOption(option ActionOption, def float64) float64 {
	for _, v := range a.options.values {
		if v.option == option {
			return v.floatValue
		}
	}
	return def
}

func (a Action) String() string {
	return a.typ.String()
}
