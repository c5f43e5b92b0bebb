/*
Package adapter bridges a zap logger into the go-kit log.Logger accepted by
the rest of this module, for host applications that standardize on zap.
*/
package adapter

import (
	"fmt"

	"go.uber.org/zap"
)

// Logger adapts a *zap.Logger onto go-kit's log.Logger.
type Logger struct {
	*zap.Logger
}

// Log folds the go-kit keyvals into zap fields and emits a single entry.
// A trailing key with no value is paired with a nil value.
func (l Logger) Log(keyvals ...interface{}) error {
	fields := make([]zap.Field, 0, (len(keyvals)+1)/2)
	for i := 0; i < len(keyvals); i += 2 {
		key, ok := keyvals[i].(string)
		if !ok {
			key = fmt.Sprint(keyvals[i])
		}

		var value interface{}
		if i+1 < len(keyvals) {
			value = keyvals[i+1]
		}

		fields = append(fields, zap.Any(key, value))
	}

	l.Logger.Info("", fields...)
	return nil
}
