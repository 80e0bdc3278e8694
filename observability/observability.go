// Package observability defines the logging seam used by every attachkit
// component. The library emits tagged, leveled messages through the Logger
// interface; sinks and formatting are the caller's concern. NopLogger is the
// default everywhere a Logger is optional.
package observability

type Logger interface {
	Debug(msg string, fields ...Field)
	Info(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Error(msg string, fields ...Field)
	With(fields ...Field) Logger
}

type Field interface {
	Key() string
	Value() interface{}
}

type stringField struct{ key, val string }

func (f stringField) Key() string        { return f.key }
func (f stringField) Value() interface{} { return f.val }

type intField struct {
	key string
	val int
}

func (f intField) Key() string        { return f.key }
func (f intField) Value() interface{} { return f.val }

type intsField struct {
	key string
	val []int
}

func (f intsField) Key() string        { return f.key }
func (f intsField) Value() interface{} { return f.val }

type boolField struct {
	key string
	val bool
}

func (f boolField) Key() string        { return f.key }
func (f boolField) Value() interface{} { return f.val }

type errorField struct {
	key string
	err error
}

func (f errorField) Key() string        { return f.key }
func (f errorField) Value() interface{} { return f.err }

func String(key, value string) Field     { return stringField{key, value} }
func Int(key string, value int) Field    { return intField{key, value} }
func Ints(key string, value []int) Field { return intsField{key, value} }
func Bool(key string, value bool) Field  { return boolField{key, value} }
func Error(key string, err error) Field  { return errorField{key, err} }

// Component returns the field every attachkit component attaches to its
// logger via With, so interleaved pipeline output stays attributable.
func Component(name string) Field { return stringField{"component", name} }

type NopLogger struct{}

func (NopLogger) Debug(string, ...Field) {}
func (NopLogger) Info(string, ...Field)  {}
func (NopLogger) Warn(string, ...Field)  {}
func (NopLogger) Error(string, ...Field) {}
func (NopLogger) With(...Field) Logger   { return NopLogger{} }
