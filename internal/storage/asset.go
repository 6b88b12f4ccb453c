package storage

import (
	"encoding/json"
	"fmt"
	"reflect"
	"regexp"

	"github.com/pixil98/go-errors"
)

// Identifiers are optionally namespaced: "sword" or "bk:sword".
var identifierPattern = regexp.MustCompile(`^[a-zA-Z0-9_-]+(:[a-zA-Z0-9_-]+)?$`)

type ValidatingSpec interface {
	Validate() error
}

type Identifier string

func (id Identifier) String() string {
	return string(id)
}

// Valid reports whether the identifier matches the asset id convention.
func (id Identifier) Valid() bool {
	return identifierPattern.MatchString(string(id))
}

type Asset[T ValidatingSpec] struct {
	Version    uint       `json:"version"`
	Identifier Identifier `json:"id"`
	Spec       T          `json:"spec"`
}

func (a *Asset[T]) Id() Identifier {
	return a.Identifier
}

func (a *Asset[T]) Validate() error {
	el := errors.NewErrorList()

	if a.Version == 0 {
		el.Add(fmt.Errorf("version must be set"))
	}

	if a.Identifier == "" {
		el.Add(fmt.Errorf("id must be set"))
	} else if !a.Identifier.Valid() {
		el.Add(fmt.Errorf("id %q must be alphanumeric with an optional namespace", a.Identifier))
	}

	el.Add(a.Spec.Validate())

	return el.Err()
}

// SmartIdentifier is an id that can be resolved to the record it names.
// It marshals as the bare key.
type SmartIdentifier[T ValidatingSpec] struct {
	key string
	val T
}

func NewSmartIdentifier[T ValidatingSpec](key string) SmartIdentifier[T] {
	return SmartIdentifier[T]{key: key}
}

func NewResolvedSmartIdentifier[T ValidatingSpec](key string, val T) SmartIdentifier[T] {
	return SmartIdentifier[T]{key: key, val: val}
}

func (id *SmartIdentifier[T]) UnmarshalJSON(b []byte) error {
	return json.Unmarshal(b, &id.key)
}

func (id SmartIdentifier[T]) MarshalJSON() ([]byte, error) {
	return json.Marshal(id.key)
}

func (id SmartIdentifier[T]) Validate() error {
	if id.key == "" {
		return fmt.Errorf("%s identifier is required", typeName[T]())
	}
	return nil
}

// Resolve looks the key up in st. It fails if the key is unknown.
func (id *SmartIdentifier[T]) Resolve(st Storer[T]) error {
	id.val = st.Get(id.key)
	if v := reflect.ValueOf(id.val); !v.IsValid() || (v.Kind() == reflect.Pointer && v.IsNil()) {
		return fmt.Errorf("%s %q not found", typeName[T](), id.key)
	}
	return nil
}

// Key returns the raw identifier.
func (id SmartIdentifier[T]) Key() string {
	return id.key
}

// Get returns the resolved record, or the zero value when unresolved.
func (id SmartIdentifier[T]) Get() T {
	return id.val
}

func typeName[T any]() string {
	t := reflect.TypeFor[T]()
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t.Name()
}
