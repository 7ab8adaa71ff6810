package decode

import (
	"bytes"
	"encoding/json"
	"reflect"

	"ChatProject/tools/errs"

	"github.com/go-playground/validator/v10"
	"github.com/mitchellh/mapstructure"
)

// Options customise Decode behaviour.
type Options struct {
	// WeaklyTypedInput lets "123" decode into an int64 and 1 into a string.
	WeaklyTypedInput bool
	// Validate runs `validate` struct tags after decoding.
	Validate bool
}

func DefaultOptions() Options {
	return Options{WeaklyTypedInput: true, Validate: true}
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// DecodeMap decodes a loosely typed payload into T using `json` tags.
func DecodeMap[T any](m map[string]any, opts ...Options) (*T, error) {
	if m == nil {
		return nil, errs.ErrArgs.WrapMsg("payload is empty")
	}
	cfg := DefaultOptions()
	if len(opts) > 0 {
		cfg = opts[0]
	}

	var out T
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "json",
		Result:           &out,
		WeaklyTypedInput: cfg.WeaklyTypedInput,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			jsonNumberHook(),
			jsonRawStringToMapHook(),
		),
	})
	if err != nil {
		return nil, errs.Wrap(err)
	}
	if err := dec.Decode(m); err != nil {
		return nil, errs.ErrArgs.WrapMsg("decode payload", "err", err)
	}
	if cfg.Validate {
		if err := validate.Struct(&out); err != nil {
			return nil, errs.ErrArgs.WrapMsg("invalid payload", "err", err)
		}
	}
	return &out, nil
}

// DecodeJSON unmarshals raw into a generic map and decodes it into T.
// Numbers stay json.Number so that large ids survive unharmed.
func DecodeJSON[T any](raw []byte, opts ...Options) (*T, error) {
	if len(raw) == 0 {
		return nil, errs.ErrArgs.WrapMsg("payload is empty")
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var m map[string]any
	if err := dec.Decode(&m); err != nil {
		return nil, errs.ErrArgs.WrapMsg("payload is not a json object", "err", err)
	}
	return DecodeMap[T](m, opts...)
}

// jsonNumberHook turns json.Number into the numeric kind the field wants.
func jsonNumberHook() mapstructure.DecodeHookFuncType {
	return func(from, to reflect.Type, data any) (any, error) {
		n, ok := data.(json.Number)
		if !ok {
			return data, nil
		}
		switch to.Kind() {
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			return n.Int64()
		case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
			i, err := n.Int64()
			return uint64(i), err
		case reflect.Float32, reflect.Float64:
			return n.Float64()
		case reflect.String:
			return n.String(), nil
		case reflect.Interface:
			if i, err := n.Int64(); err == nil {
				return i, nil
			}
			return n.Float64()
		}
		return data, nil
	}
}

// jsonRawStringToMapHook decodes a string holding a JSON object into a map field.
func jsonRawStringToMapHook() mapstructure.DecodeHookFuncKind {
	return func(from, to reflect.Kind, data any) (any, error) {
		if from != reflect.String || to != reflect.Map {
			return data, nil
		}
		var m map[string]any
		if err := json.Unmarshal([]byte(data.(string)), &m); err == nil {
			return m, nil
		}
		return data, nil
	}
}
