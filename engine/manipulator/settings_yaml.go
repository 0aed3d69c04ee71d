package manipulator

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/Carmen-Shannon/terra-go/common"
	"gopkg.in/yaml.v3"
)

// settingsFile is the YAML schema for LoadSettings.
type settingsFile struct {
	Sensitivity struct {
		Mouse    *float64 `yaml:"mouse"`
		Keyboard *float64 `yaml:"keyboard"`
		Scroll   *float64 `yaml:"scroll"`
		Touch    *float64 `yaml:"touch"`
	} `yaml:"sensitivity"`
	Pitch struct {
		Min *float64 `yaml:"min"`
		Max *float64 `yaml:"max"`
	} `yaml:"pitch"`
	Distance struct {
		Min *float64 `yaml:"min"`
		Max *float64 `yaml:"max"`
	} `yaml:"distance"`
	ZoomToMouse      *bool         `yaml:"zoom_to_mouse"`
	ArcTransitions   *bool         `yaml:"arc_transitions"`
	LockAzimuth      *bool         `yaml:"lock_azimuth_while_panning"`
	TerrainAvoidance *bool         `yaml:"terrain_avoidance"`
	Bindings         []bindingFile `yaml:"bindings"`
}

type bindingFile struct {
	Event     string   `yaml:"event"`
	Input     string   `yaml:"input"`
	Modifiers []string `yaml:"modifiers"`
	Action    string   `yaml:"action"`
	Options   struct {
		Continuous      *bool    `yaml:"continuous"`
		SingleAxis      *bool    `yaml:"single_axis"`
		ScaleX          *float64 `yaml:"scale_x"`
		ScaleY          *float64 `yaml:"scale_y"`
		Duration        *float64 `yaml:"duration"`
		GotoRangeFactor *float64 `yaml:"goto_range_factor"`
	} `yaml:"options"`
}

// LoadSettings reads a YAML settings document and builds a Settings from it.
// The document starts from the stock binding table; listed bindings are
// added on top, so a binding to the "null" action masks a stock one.
//
// Parameters:
//   - r: the YAML document
//
// Returns:
//   - Settings: the loaded settings
//   - error: decode or validation failure
func LoadSettings(r io.Reader) (Settings, error) {
	var file settingsFile
	if err := yaml.NewDecoder(r).Decode(&file); err != nil && err != io.EOF {
		return nil, fmt.Errorf("decoding settings: %w", err)
	}

	s := DefaultSettings()
	if v := file.Sensitivity.Mouse; v != nil {
		s.SetMouseSensitivity(*v)
	}
	if v := file.Sensitivity.Keyboard; v != nil {
		s.SetKeyboardSensitivity(*v)
	}
	if v := file.Sensitivity.Scroll; v != nil {
		s.SetScrollSensitivity(*v)
	}
	if v := file.Sensitivity.Touch; v != nil {
		s.SetTouchSensitivity(*v)
	}
	if v := file.Pitch.Min; v != nil {
		s.SetMinPitch(*v)
	}
	if v := file.Pitch.Max; v != nil {
		s.SetMaxPitch(*v)
	}
	if v := file.Distance.Min; v != nil {
		s.SetMinDistance(*v)
	}
	if v := file.Distance.Max; v != nil {
		s.SetMaxDistance(*v)
	}
	if v := file.ZoomToMouse; v != nil {
		s.SetZoomToMouse(*v)
	}
	if v := file.ArcTransitions; v != nil {
		s.SetArcViewpointTransitions(*v)
	}
	if v := file.LockAzimuth; v != nil {
		s.SetLockAzimuthWhilePanning(*v)
	}
	if v := file.TerrainAvoidance; v != nil {
		s.SetTerrainAvoidance(*v)
	}

	for i, b := range file.Bindings {
		if err := applyBinding(s, b); err != nil {
			return nil, fmt.Errorf("bindings[%d]: %w", i, err)
		}
	}
	return s, nil
}

func applyBinding(s Settings, b bindingFile) error {
	typ, err := parseActionType(b.Action)
	if err != nil {
		return err
	}
	options := ActionOptions{}
	if v := b.Options.Continuous; v != nil {
		options = options.AddBool(OptionContinuous, *v)
	}
	if v := b.Options.SingleAxis; v != nil {
		options = options.AddBool(OptionSingleAxis, *v)
	}
	if v := b.Options.ScaleX; v != nil {
		options = options.AddFloat(OptionScaleX, *v)
	}
	if v := b.Options.ScaleY; v != nil {
		options = options.AddFloat(OptionScaleY, *v)
	}
	if v := b.Options.Duration; v != nil {
		options = options.AddFloat(OptionDuration, *v)
	}
	if v := b.Options.GotoRangeFactor; v != nil {
		options = options.AddFloat(OptionGotoRangeFactor, *v)
	}
	action := NewAction(typ, options)

	mod, err := parseModifiers(b.Modifiers)
	if err != nil {
		return err
	}

	switch b.Event {
	case "key":
		key, err := parseKey(b.Input)
		if err != nil {
			return err
		}
		s.BindKey(action, key, mod)
	case "drag":
		buttons, err := parseButtons(b.Input)
		if err != nil {
			return err
		}
		s.BindMouse(action, buttons, mod)
	case "click":
		button, err := parseButtons(b.Input)
		if err != nil {
			return err
		}
		s.BindMouseClick(action, button, mod)
	case "double-click":
		button, err := parseButtons(b.Input)
		if err != nil {
			return err
		}
		s.BindMouseDoubleClick(action, button, mod)
	case "scroll":
		dir, err := parseDirection(b.Input)
		if err != nil {
			return err
		}
		s.BindScroll(action, dir, mod)
	case "pinch":
		s.BindPinch(action, mod)
	case "twist":
		s.BindTwist(action, mod)
	case "multi-drag":
		s.BindMultiDrag(action, mod)
	default:
		return fmt.Errorf("unknown event type %q", b.Event)
	}
	return nil
}

func parseActionType(name string) (ActionType, error) {
	for i, n := range actionNames {
		if n == name {
			return ActionType(i), nil
		}
	}
	return ActionNull, fmt.Errorf("unknown action %q", name)
}

func parseModifiers(names []string) (common.ModMask, error) {
	var mod common.ModMask
	for _, name := range names {
		switch strings.ToLower(name) {
		case "shift":
			mod |= common.ModShift
		case "control", "ctrl":
			mod |= common.ModControl
		case "alt":
			mod |= common.ModAlt
		case "super":
			mod |= common.ModSuper
		default:
			return 0, fmt.Errorf("unknown modifier %q", name)
		}
	}
	return mod, nil
}

func parseButtons(input string) (common.InputMask, error) {
	var buttons common.InputMask
	for _, part := range strings.Split(input, "+") {
		switch strings.TrimSpace(part) {
		case "left":
			buttons |= common.MouseLeftButton
		case "middle":
			buttons |= common.MouseMiddleButton
		case "right":
			buttons |= common.MouseRightButton
		default:
			return 0, fmt.Errorf("unknown button %q", part)
		}
	}
	return buttons, nil
}

func parseKey(input string) (common.InputMask, error) {
	switch strings.ToLower(input) {
	case "space":
		return common.KeySpace, nil
	case "left":
		return common.KeyLeft, nil
	case "right":
		return common.KeyRight, nil
	case "up":
		return common.KeyUp, nil
	case "down":
		return common.KeyDown, nil
	}
	if len(input) == 1 && input[0] >= 'a' && input[0] <= 'z' {
		return common.InputMask(input[0] - 'a' + 'A'), nil
	}
	if code, err := strconv.Atoi(input); err == nil {
		return common.InputMask(code), nil
	}
	return 0, fmt.Errorf("unknown key %q", input)
}

func parseDirection(input string) (Direction, error) {
	switch strings.ToLower(input) {
	case "up":
		return DirUp, nil
	case "down":
		return DirDown, nil
	case "left":
		return DirLeft, nil
	case "right":
		return DirRight, nil
	}
	return DirNA, fmt.Errorf("unknown scroll direction %q", input)
}
