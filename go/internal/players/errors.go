package players

import "errors"

var ErrEmptyLogin = errors.New("login is empty")
