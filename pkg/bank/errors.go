package bank

import (
	"errors"
	"fmt"
)

// ErrUnknownCategory la categoría no existe en el banco
var ErrUnknownCategory = errors.New("categoría desconocida")

// FileError archivo de categoría ausente, ilegible o corrupto.
// El banco se recupera usando una lista vacía.
type FileError struct {
	Category string
	Path     string
	Err      error
}

func (e *FileError) Error() string {
	return fmt.Sprintf("archivo de preguntas %s (%s): %v", e.Path, e.Category, e.Err)
}

func (e *FileError) Unwrap() error { return e.Err }

// ValidationError pregunta rechazada antes de tocar el disco
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// WriteError no se pudo guardar el archivo de la categoría
type WriteError struct {
	Category string
	Path     string
	Err      error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("no se pudo guardar %s: %v", e.Path, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }
