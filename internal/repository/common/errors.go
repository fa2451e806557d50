package common

import "errors"

// ErrNotFound общая ошибка отсутствия записи для GetByField.
var ErrNotFound = errors.New("entity not found")
