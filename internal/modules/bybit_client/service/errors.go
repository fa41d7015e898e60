package service

import (
	"errors"
	"fmt"
)

// ErrNoData: общий признак "результата нет". Все ошибки клиента матчатся на него через errors.Is.
var ErrNoData = errors.New("bybit: no data")

// TransportError: сеть или HTTP-статус не 200.
type TransportError struct {
	Op         string
	StatusCode int
	Err        error
}

func (e *TransportError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: transport: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s: http %d", e.Op, e.StatusCode)
}

func (e *TransportError) Unwrap() error        { return e.Err }
func (e *TransportError) Is(target error) bool { return target == ErrNoData }

// ExchangeError: биржа ответила retCode != 0.
type ExchangeError struct {
	Op      string
	RetCode int
	RetMsg  string
}

func (e *ExchangeError) Error() string {
	return fmt.Sprintf("%s: retCode=%d retMsg=%s", e.Op, e.RetCode, e.RetMsg)
}

func (e *ExchangeError) Is(target error) bool { return target == ErrNoData }

// DataShapeError: в успешном ответе нет ожидаемого поля или записи.
type DataShapeError struct {
	Op     string
	Field  string
	Reason string
}

func (e *DataShapeError) Error() string {
	return fmt.Sprintf("%s: bad response field %q: %s", e.Op, e.Field, e.Reason)
}

func (e *DataShapeError) Is(target error) bool { return target == ErrNoData }
