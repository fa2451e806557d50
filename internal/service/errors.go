package service

import "errors"

// ErrInvalidVisibility значение видимости вне public/friends/private.
var ErrInvalidVisibility = errors.New("неверное значение видимости")
