package storage

import "errors"

// ErrTooLarge возвращается, когда файл превышает допустимый размер.
var ErrTooLarge = errors.New("storage: файл слишком большой")
