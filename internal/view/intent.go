package view

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"slices"
	"strconv"

	"github.com/mitchellh/mapstructure"

	"github.com/rocketscienceinc/tictactoe-history/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-history/internal/tictactoe"
)

const (
	IntentSquareClick = "square:click"
	IntentHistoryJump = "history:jump"
)

var ErrMissingField = errors.New("missing field")

type dispatcher interface {
	Dispatch(action tictactoe.Action) (bool, error)
}

type intentHeader struct {
	Type string `mapstructure:"type"`
}

// ParseIntent - turns a raw view event into a reducer action.
// Numeric fields may arrive as integers, whole floats or base-10 strings.
func ParseIntent(raw map[string]any) (tictactoe.Action, error) {
	var header intentHeader
	if err := mapstructure.Decode(raw, &header); err != nil {
		return nil, fmt.Errorf("%w: %w", apperror.ErrMalformedInput, err)
	}

	switch header.Type {
	case IntentSquareClick:
		var action tictactoe.MoveAction
		if err := decodeField(raw, "cell", &action); err != nil {
			return nil, err
		}
		return action, nil
	case IntentHistoryJump:
		var action tictactoe.JumpAction
		if err := decodeField(raw, "step", &action); err != nil {
			return nil, err
		}
		return action, nil
	default:
		return nil, fmt.Errorf("%w: %q", apperror.ErrUnknownIntent, header.Type)
	}
}

func decodeField(raw map[string]any, field string, target any) error {
	var meta mapstructure.Metadata

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: strictIntHook,
		Metadata:   &meta,
		Result:     target,
	})
	if err != nil {
		return fmt.Errorf("failed to create decoder: %w", err)
	}

	if err = decoder.Decode(raw); err != nil {
		return fmt.Errorf("%w: %w", apperror.ErrMalformedInput, err)
	}

	if !slices.Contains(meta.Keys, field) {
		return fmt.Errorf("%w: %s", ErrMissingField, field)
	}

	return nil
}

// strictIntHook - converts the input of int fields. Anything that is not a whole
// base-10 number is rejected instead of being coerced.
func strictIntHook(_ reflect.Type, to reflect.Type, data any) (any, error) {
	if to.Kind() != reflect.Int {
		return data, nil
	}

	switch value := data.(type) {
	case string:
		number, err := strconv.Atoi(value)
		if err != nil {
			return nil, fmt.Errorf("%w: %q is not a number", apperror.ErrMalformedInput, value)
		}
		return number, nil
	case float32:
		return wholeFloat(float64(value))
	case float64:
		return wholeFloat(value)
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return value, nil
	default:
		return nil, fmt.Errorf("%w: unexpected %T", apperror.ErrMalformedInput, data)
	}
}

func wholeFloat(value float64) (any, error) {
	if value != math.Trunc(value) || math.IsInf(value, 0) {
		return nil, fmt.Errorf("%w: %v is not a whole number", apperror.ErrMalformedInput, value)
	}
	return int(value), nil
}

// Dispatch - parses the intent and forwards the resulting action to the store.
func Dispatch(store dispatcher, raw map[string]any) (bool, error) {
	action, err := ParseIntent(raw)
	if err != nil {
		return false, fmt.Errorf("failed to parse intent: %w", err)
	}

	changed, err := store.Dispatch(action)
	if err != nil {
		return false, fmt.Errorf("failed to dispatch intent: %w", err)
	}

	return changed, nil
}
