// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"

	"github.com/danielhkuo/fieldwork/db"
)

func isNotFound(err error) bool {
	return errors.Is(err, db.ErrNotFound)
}

func isStatusConflict(err error) bool {
	return errors.Is(err, db.ErrStatusConflict)
}
