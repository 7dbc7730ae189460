package service

import (
	"github.com/ccfreem/sickfits/internal/apperr"
	"github.com/ccfreem/sickfits/internal/infra/repository/db"
)

// storeErr maps a store failure: no rows becomes NotFound with notFoundMsg, anything else Internal.
func storeErr(err error, notFoundMsg string) error {
	if db.IsNoRows(err) {
		return apperr.New(apperr.KindNotFound, notFoundMsg)
	}
	return apperr.Wrap(apperr.KindInternal, err, notFoundMsg)
}

func internalErr(err error, msg string) error {
	return apperr.Wrap(apperr.KindInternal, err, msg)
}
