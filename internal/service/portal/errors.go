package portal

import "errors"

var ErrLeadNotFound = errors.New("lead not found")
